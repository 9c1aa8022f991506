// Package web holds the HTML templates rendered by the writing handlers.
// Each page file defines one named template: main, write, detail, edit.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded template set.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}

// MustTemplates is Templates for program start and tests.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
