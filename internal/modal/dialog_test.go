package modal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmRunsActionAndCloses(t *testing.T) {
	var d Dialog
	calls := 0
	require.NoError(t, d.Open(Request{
		Title:   "Confirm",
		Message: "Save this product?",
		Confirm: func(context.Context) error { calls++; return nil },
		Cancel:  func() { t.Fatal("cancel must not run") },
	}))

	v, ok := d.View()
	require.True(t, ok)
	assert.Equal(t, "Save this product?", v.Message)

	require.NoError(t, d.Confirm(context.Background()))
	assert.Equal(t, 1, calls)
	assert.Equal(t, Closed, d.State())
	assert.ErrorIs(t, d.Confirm(context.Background()), ErrNotOpen)
	assert.Equal(t, 1, calls)
}

func TestCancelRunsCallbackOnly(t *testing.T) {
	var d Dialog
	cancelled := false
	require.NoError(t, d.Open(Request{
		Confirm: func(context.Context) error { t.Fatal("confirm must not run"); return nil },
		Cancel:  func() { cancelled = true },
	}))
	d.Cancel()
	assert.True(t, cancelled)
	_, ok := d.View()
	assert.False(t, ok)

	d.Cancel()
}

func TestConfirmErrorStillCloses(t *testing.T) {
	var d Dialog
	boom := errors.New("boom")
	require.NoError(t, d.Open(Request{Confirm: func(context.Context) error { return boom }}))
	assert.ErrorIs(t, d.Confirm(context.Background()), boom)
	assert.Equal(t, Closed, d.State())
}

func TestSecondConfirmWhileRunningIsRejected(t *testing.T) {
	var d Dialog
	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	require.NoError(t, d.Open(Request{Confirm: func(context.Context) error {
		calls++
		close(started)
		<-release
		return nil
	}}))

	done := make(chan error)
	go func() { done <- d.Confirm(context.Background()) }()
	<-started

	assert.ErrorIs(t, d.Confirm(context.Background()), ErrBusy)
	assert.ErrorIs(t, d.Open(Request{}), ErrBusy)
	v, ok := d.View()
	assert.True(t, ok)
	assert.True(t, v.Busy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, calls)
}
