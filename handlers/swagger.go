package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the writing pages.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>writingpad — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// OpenAPI description of the HTML routes. Responses are pages, not JSON.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "writingpad", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "WritingForm": { "type": "object", "properties": { "title": { "type": "string" }, "contents": { "type": "string" } } }
    },
    "parameters": {
      "id": { "name": "id", "in": "path", "required": true, "schema": { "type": "string", "pattern": "^[0-9a-f]{24}$" } }
    }
  },
  "paths": {
    "/": { "get": { "summary": "List writings, newest first", "responses": { "200": { "description": "list page" }, "500": { "description": "store error" } } } },
    "/write": {
      "get": { "summary": "New writing form", "responses": { "200": { "description": "form page" } } },
      "post": {
        "summary": "Create a writing",
        "requestBody": { "content": {
          "application/x-www-form-urlencoded": { "schema": { "$ref": "#/components/schemas/WritingForm" } },
          "application/json": { "schema": { "$ref": "#/components/schemas/WritingForm" } } } },
        "responses": { "200": { "description": "detail page, or the form again when saving failed" } }
      }
    },
    "/detail/{id}": {
      "get": { "summary": "Show a writing", "parameters": [{ "$ref": "#/components/parameters/id" }],
        "responses": { "200": { "description": "detail page" }, "404": { "description": "not found" }, "500": { "description": "store error" } } }
    },
    "/edit/{id}": {
      "get": { "summary": "Edit form", "parameters": [{ "$ref": "#/components/parameters/id" }],
        "responses": { "200": { "description": "edit page" }, "404": { "description": "not found" }, "500": { "description": "store error" } } },
      "post": { "summary": "Update title and contents", "parameters": [{ "$ref": "#/components/parameters/id" }],
        "requestBody": { "content": { "application/x-www-form-urlencoded": { "schema": { "$ref": "#/components/schemas/WritingForm" } } } },
        "responses": { "302": { "description": "redirect to /detail/{id}" }, "404": { "description": "not found" }, "500": { "description": "store error" } } }
    },
    "/delete/{id}": {
      "post": { "summary": "Delete a writing (idempotent)", "parameters": [{ "$ref": "#/components/parameters/id" }],
        "responses": { "302": { "description": "redirect to /" }, "500": { "description": "store error" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition format" } } } }
  }
}`
