package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/writingpad/writingpad/internal/writing"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryRepoCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	w, err := r.Create(ctx, "T", "C")
	require.NoError(t, err)
	require.False(t, w.ID.IsZero())
	require.False(t, w.Date.IsZero())

	got, err := r.Get(ctx, w.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "T", got.Title)
	require.Equal(t, "C", got.Contents)
	require.True(t, got.Date.Equal(w.Date))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	upd, err := r.Update(ctx, w.ID.Hex(), "T2", "C2")
	require.NoError(t, err)
	require.Equal(t, "T2", upd.Title)
	require.Equal(t, "C2", upd.Contents)
	require.True(t, upd.Date.Equal(w.Date), "date must survive edits")

	require.NoError(t, r.Delete(ctx, w.ID.Hex()))
	_, err = r.Get(ctx, w.ID.Hex())
	require.ErrorIs(t, err, ErrNotFound)

	// second delete is still fine
	require.NoError(t, r.Delete(ctx, w.ID.Hex()))
}

func TestMemoryRepoNotFound(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	unknown := primitive.NewObjectID().Hex()

	for _, id := range []string{unknown, "not-an-object-id", ""} {
		_, err := r.Get(ctx, id)
		require.ErrorIs(t, err, ErrNotFound, "get %q", id)
		_, err = r.Update(ctx, id, "x", "y")
		require.ErrorIs(t, err, ErrNotFound, "update %q", id)
		require.NoError(t, r.Delete(ctx, id), "delete %q", id)
	}
}

func TestMemoryRepoListEmpty(t *testing.T) {
	list, err := NewMemoryRepo().List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestMemoryRepoListNewestFirst(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	base := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	// seed directly so dates are deterministic
	for i, title := range []string{"t1", "t2", "t3"} {
		w := writing.Writing{ID: primitive.NewObjectID(), Title: title, Date: base.Add(time.Duration(i) * time.Hour)}
		r.store[w.ID] = w
	}

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "t3", list[0].Title)
	require.Equal(t, "t2", list[1].Title)
	require.Equal(t, "t1", list[2].Title)
}

func TestMemoryRepoListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	w, err := r.Create(ctx, "orig", "")
	require.NoError(t, err)

	list, err := r.List(ctx)
	require.NoError(t, err)
	list[0].Title = "mutated"

	got, err := r.Get(ctx, w.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "orig", got.Title)
}

func TestSortNewestFirstTieBreaksOnID(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older := primitive.NewObjectIDFromTimestamp(d)
	newer := primitive.NewObjectIDFromTimestamp(d.Add(time.Second))
	ws := []*writing.Writing{{ID: older, Date: d}, {ID: newer, Date: d}}

	SortNewestFirst(ws)
	require.Equal(t, newer, ws[0].ID)
}
