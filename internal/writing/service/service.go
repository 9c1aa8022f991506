package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/writingpad/writingpad/internal/writing"
	"github.com/writingpad/writingpad/internal/writing/repository"
	"github.com/writingpad/writingpad/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Service defines the writing operations used by the handler layer.
// Errors are either ErrNotFound or wrap ErrStoreUnavailable.
type Service interface {
	Create(ctx context.Context, title, contents string) (*writing.Writing, error)
	List(ctx context.Context) ([]*writing.Writing, error)
	Get(ctx context.Context, id string) (*writing.Writing, error)
	Update(ctx context.Context, id, title, contents string) (*writing.Writing, error)
	Delete(ctx context.Context, id string) error
}

// New returns a Service on top of any repository.
func New(repo repository.Repository) Service {
	return &writingService{repo: repo}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller owns the client behind col.
func NewMongoService(col *mongo.Collection) Service {
	return New(repository.NewMongoRepo(col))
}

type writingService struct {
	repo repository.Repository
}

func (s *writingService) Create(ctx context.Context, title, contents string) (*writing.Writing, error) {
	w, err := s.repo.Create(ctx, title, contents)
	if err := s.classify("create", err); err != nil {
		return nil, err
	}
	return w, nil
}

// List always returns writings newest first, whatever order the repository used.
func (s *writingService) List(ctx context.Context) ([]*writing.Writing, error) {
	ws, err := s.repo.List(ctx)
	if err := s.classify("list", err); err != nil {
		return nil, err
	}
	repository.SortNewestFirst(ws)
	return ws, nil
}

func (s *writingService) Get(ctx context.Context, id string) (*writing.Writing, error) {
	w, err := s.repo.Get(ctx, id)
	if err := s.classify("get", err); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *writingService) Update(ctx context.Context, id, title, contents string) (*writing.Writing, error) {
	w, err := s.repo.Update(ctx, id, title, contents)
	if err := s.classify("update", err); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *writingService) Delete(ctx context.Context, id string) error {
	return s.classify("delete", s.repo.Delete(ctx, id))
}

// classify maps repository errors onto the service error kinds and records
// the outcome of op.
func (s *writingService) classify(op string, err error) error {
	switch {
	case err == nil:
		metrics.StoreOperations.WithLabelValues(op, "ok").Inc()
		return nil
	case errors.Is(err, repository.ErrNotFound):
		metrics.StoreOperations.WithLabelValues(op, "not_found").Inc()
		return ErrNotFound
	default:
		metrics.StoreOperations.WithLabelValues(op, "error").Inc()
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}
