package modal

import (
	"context"
	"sync"
	"time"
)

// DefaultCountdown is how long the Save toast stays up.
const DefaultCountdown = 3

// ToastView is the template snapshot of the Save toast.
type ToastView struct {
	Title     string
	Message   string
	Remaining int
}

// Toast is the Save modal: it closes itself after a countdown, ticking once
// per second, and then runs its close callback.
type Toast struct {
	seconds  int
	interval time.Duration

	mu        sync.Mutex
	open      bool
	gen       uint64
	title     string
	message   string
	remaining int
	onClose   func()
	stop      context.CancelFunc
}

// NewToast returns a toast that stays open for seconds.
func NewToast(seconds int) *Toast {
	if seconds <= 0 {
		seconds = DefaultCountdown
	}
	return &Toast{seconds: seconds, interval: time.Second}
}

// Open shows the toast and starts the countdown. The countdown stops early
// when ctx is done, without calling onClose. Opening again restarts it.
func (t *Toast) Open(ctx context.Context, title, message string, onClose func()) {
	runCtx, stop := context.WithCancel(ctx)

	t.mu.Lock()
	if t.stop != nil {
		t.stop()
	}
	t.gen++
	gen := t.gen
	t.open = true
	t.title = title
	t.message = message
	t.remaining = t.seconds
	t.onClose = onClose
	t.stop = stop
	t.mu.Unlock()

	go t.countdown(runCtx, gen)
}

func (t *Toast) countdown(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.gen != gen || !t.open || ctx.Err() != nil {
				t.mu.Unlock()
				return
			}
			t.remaining--
			if t.remaining > 0 {
				t.mu.Unlock()
				continue
			}
			onClose := t.reset()
			t.mu.Unlock()
			if onClose != nil {
				onClose()
			}
			return
		}
	}
}

// reset closes the toast; callers hold t.mu.
func (t *Toast) reset() func() {
	onClose := t.onClose
	if t.stop != nil {
		t.stop()
	}
	t.open = false
	t.onClose = nil
	t.stop = nil
	t.remaining = 0
	return onClose
}

// Close dismisses the toast now and runs its close callback.
func (t *Toast) Close() {
	t.mu.Lock()
	if !t.open {
		t.mu.Unlock()
		return
	}
	onClose := t.reset()
	t.mu.Unlock()
	if onClose != nil {
		onClose()
	}
}

// View returns the toast snapshot while it is open.
func (t *Toast) View() (ToastView, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return ToastView{}, false
	}
	return ToastView{Title: t.title, Message: t.message, Remaining: t.remaining}, true
}

// Seconds is the configured countdown length.
func (t *Toast) Seconds() int { return t.seconds }
