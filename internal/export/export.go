// Package export writes point-in-time JSON snapshots of all writings to
// object storage.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/writingpad/writingpad/internal/writing"
)

// Lister is the read side of the writing service.
type Lister interface {
	List(ctx context.Context) ([]*writing.Writing, error)
}

// Uploader stores one object. *storage.MinIOStorage satisfies it.
type Uploader interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}

// Snapshot is the exported document.
type Snapshot struct {
	ExportedAt time.Time          `json:"exportedAt"`
	Count      int                `json:"count"`
	Writings   []*writing.Writing `json:"writings"`
}

// Key names the snapshot object taken at the given time.
func Key(prefix string, at time.Time) string {
	return path.Join(prefix, "writings-"+at.UTC().Format("20060102T150405Z")+".json")
}

// Export lists every writing and uploads them as one JSON object under
// Key(prefix, now). It returns the key and the number of writings.
func Export(ctx context.Context, src Lister, dst Uploader, prefix string, now time.Time) (string, int, error) {
	ws, err := src.List(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("list writings: %w", err)
	}
	if ws == nil {
		ws = []*writing.Writing{}
	}
	snap := Snapshot{ExportedAt: now.UTC(), Count: len(ws), Writings: ws}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", 0, fmt.Errorf("encode snapshot: %w", err)
	}
	key := Key(prefix, now)
	if err := dst.UploadFile(ctx, key, bytes.NewReader(b), int64(len(b)), "application/json"); err != nil {
		return "", 0, fmt.Errorf("upload snapshot: %w", err)
	}
	return key, len(ws), nil
}
