package workspace

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintcompany/internal/modal"
	"paintcompany/internal/models"
)

func TestListOperations(t *testing.T) {
	var l List[models.NewArrival]
	_, loaded := l.Items()
	assert.False(t, loaded)

	l.Load([]models.NewArrival{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}})
	l.Prepend(models.NewArrival{ID: 3, Name: "C"})
	assert.True(t, l.Replace(models.NewArrival{ID: 2, Name: "B2"}))
	assert.False(t, l.Replace(models.NewArrival{ID: 9}))

	items, loaded := l.Items()
	assert.True(t, loaded)
	assert.Equal(t, []models.NewArrival{{ID: 3, Name: "C"}, {ID: 1, Name: "A"}, {ID: 2, Name: "B2"}}, items)

	assert.True(t, l.Remove(1))
	assert.False(t, l.Remove(1))
	items, _ = l.Items()
	assert.Len(t, items, 2)

	got, ok := l.Find(3)
	assert.True(t, ok)
	assert.Equal(t, "C", got.Name)

	assert.True(t, l.Update(2, func(a *models.NewArrival) { a.Name = "B3" }))
	got, _ = l.Find(2)
	assert.Equal(t, "B3", got.Name)
}

func TestRegistryGetAndDrop(t *testing.T) {
	r := NewRegistry(3)
	w := r.Get("s1")
	assert.Same(t, w, r.Get("s1"))
	assert.Equal(t, 1, r.Len())

	var confirmed int32
	require.NoError(t, w.Confirm.Open(modal.Request{Confirm: func(context.Context) error {
		atomic.AddInt32(&confirmed, 1)
		return nil
	}}))
	w.Notify("Saved", "ok")

	r.Drop("s1")
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, modal.Closed, w.Confirm.State())
	assert.Error(t, w.Context().Err())
	assert.Equal(t, int32(0), atomic.LoadInt32(&confirmed))
	assert.NotSame(t, w, r.Get("s1"))
}

func TestFlashAndDrafts(t *testing.T) {
	w := NewRegistry(3).Get("s")
	w.SetError("products", "Server error. Please try again.")
	assert.Equal(t, "Server error. Please try again.", w.TakeError("products"))
	assert.Empty(t, w.TakeError("products"))

	w.SetDraft("products", "draft")
	v, ok := w.TakeDraft("products")
	assert.True(t, ok)
	assert.Equal(t, "draft", v)
	_, ok = w.TakeDraft("products")
	assert.False(t, ok)
}

func TestSweep(t *testing.T) {
	r := NewRegistry(3)
	old := r.Get("old")
	old.touch(time.Now().Add(-2 * time.Hour))
	r.Get("fresh")

	assert.Equal(t, 1, r.Sweep(time.Hour))
	assert.Equal(t, 1, r.Len())
	assert.Error(t, old.Context().Err())

	r.Close()
	assert.Equal(t, 0, r.Len())
}
