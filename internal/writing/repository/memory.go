package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/writingpad/writingpad/internal/writing"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory repository used by unit tests and by local
// runs without a MongoDB instance.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]writing.Writing
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]writing.Writing)}
}

func (m *MemoryRepo) Create(ctx context.Context, title, contents string) (*writing.Writing, error) {
	w := writing.Writing{
		ID:       primitive.NewObjectID(),
		Title:    title,
		Contents: contents,
		Date:     writing.Now(),
	}
	m.mu.Lock()
	m.store[w.ID] = w
	m.mu.Unlock()
	return &w, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*writing.Writing, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.store[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return &w, nil
}

// List returns copies sorted by date, newest first.
func (m *MemoryRepo) List(ctx context.Context) ([]*writing.Writing, error) {
	m.mu.RLock()
	out := make([]*writing.Writing, 0, len(m.store))
	for _, w := range m.store {
		w := w
		out = append(out, &w)
	}
	m.mu.RUnlock()
	SortNewestFirst(out)
	return out, nil
}

func (m *MemoryRepo) Update(ctx context.Context, id, title, contents string) (*writing.Writing, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.store[oid]
	if !ok {
		return nil, ErrNotFound
	}
	w.Title = title
	w.Contents = contents
	m.store[oid] = w
	return &w, nil
}

// Delete is idempotent: missing and malformed ids are not errors.
func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return nil
	}
	m.mu.Lock()
	delete(m.store, oid)
	m.mu.Unlock()
	return nil
}

// SortNewestFirst orders by Date descending, then by ID descending.
func SortNewestFirst(ws []*writing.Writing) {
	sort.SliceStable(ws, func(i, j int) bool {
		if !ws[i].Date.Equal(ws[j].Date) {
			return ws[i].Date.After(ws[j].Date)
		}
		return ws[i].ID.Hex() > ws[j].ID.Hex()
	})
}
