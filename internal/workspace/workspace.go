// Package workspace holds the per-session state of the admin back-office:
// the open dialogs, the Save toast, flash errors, form drafts and the
// in-memory lists of the manager pages.
package workspace

import (
	"context"
	"sync"
	"time"

	"paintcompany/internal/modal"
	"paintcompany/internal/models"
)

// Workspace is the admin UI state of one session.
type Workspace struct {
	ID      string
	Confirm *modal.Dialog
	Delete  *modal.Dialog
	Save    *modal.Toast

	Products    List[models.Product]
	Popular     List[models.PopularProduct]
	Arrivals    List[models.NewArrival]
	News        List[models.NewsEvent]
	Submissions List[models.ContactSubmission]

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	errors   map[string]string
	drafts   map[string]any
	lastSeen time.Time
}

func newWorkspace(id string, saveSeconds int) *Workspace {
	ctx, cancel := context.WithCancel(context.Background())
	return &Workspace{
		ID:       id,
		Confirm:  &modal.Dialog{},
		Delete:   &modal.Dialog{},
		Save:     modal.NewToast(saveSeconds),
		ctx:      ctx,
		cancel:   cancel,
		errors:   map[string]string{},
		drafts:   map[string]any{},
		lastSeen: time.Now(),
	}
}

// Context lives as long as the workspace. Timers started for it use this
// context so they stop when the session ends.
func (w *Workspace) Context() context.Context { return w.ctx }

// Notify opens the Save toast.
func (w *Workspace) Notify(title, message string) {
	w.Save.Open(w.ctx, title, message, nil)
}

// SetError stores an error banner for page.
func (w *Workspace) SetError(page, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errors[page] = msg
}

// TakeError returns and clears the banner of page.
func (w *Workspace) TakeError(page string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg := w.errors[page]
	delete(w.errors, page)
	return msg
}

// SetDraft keeps form values of page so a failed save can re-render them.
func (w *Workspace) SetDraft(page string, v any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.drafts[page] = v
}

// TakeDraft returns and clears the draft of page.
func (w *Workspace) TakeDraft(page string) (any, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	v, ok := w.drafts[page]
	delete(w.drafts, page)
	return v, ok
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

func (w *Workspace) close() {
	w.Confirm.Cancel()
	w.Delete.Cancel()
	w.cancel()
}

// Registry maps session ids to workspaces.
type Registry struct {
	saveSeconds int

	mu   sync.Mutex
	byID map[string]*Workspace
}

// NewRegistry creates workspaces whose Save toast counts saveSeconds.
func NewRegistry(saveSeconds int) *Registry {
	return &Registry{saveSeconds: saveSeconds, byID: map[string]*Workspace{}}
}

// Get returns the workspace of id, creating it on first use.
func (r *Registry) Get(id string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byID[id]
	if !ok {
		w = newWorkspace(id, r.saveSeconds)
		r.byID[id] = w
	}
	w.touch(time.Now())
	return w
}

// Drop tears down the workspace of id, stopping its timers.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	w, ok := r.byID[id]
	delete(r.byID, id)
	r.mu.Unlock()
	if ok {
		w.close()
	}
}

// Len is the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// Sweep drops workspaces idle for longer than maxIdle and reports how many
// were removed.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	r.mu.Lock()
	var stale []*Workspace
	for id, w := range r.byID {
		if w.idleSince().Before(cutoff) {
			stale = append(stale, w)
			delete(r.byID, id)
		}
	}
	r.mu.Unlock()
	for _, w := range stale {
		w.close()
	}
	return len(stale)
}

// Janitor sweeps every interval until ctx is done.
func (r *Registry) Janitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(maxIdle)
		}
	}
}

// Close drops every workspace.
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.byID
	r.byID = map[string]*Workspace{}
	r.mu.Unlock()
	for _, w := range all {
		w.close()
	}
}
