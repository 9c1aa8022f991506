package repository

import (
	"context"
	"errors"

	"github.com/writingpad/writingpad/internal/writing"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound = errors.New("writing not found")
)

// Repository defines persistence operations for writings.
type Repository interface {
	Create(ctx context.Context, title, contents string) (*writing.Writing, error)
	List(ctx context.Context) ([]*writing.Writing, error)
	Get(ctx context.Context, id string) (*writing.Writing, error)
	Update(ctx context.Context, id, title, contents string) (*writing.Writing, error)
	Delete(ctx context.Context, id string) error
}

// parseID converts a hex id from a URL. Malformed ids behave like ids that
// match nothing, so callers map the error to ErrNotFound.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}
