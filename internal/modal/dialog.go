// Package modal implements the Confirm, Delete and Save dialogs of the admin
// back-office. Dialogs move closed → open → confirmed or cancelled → closed;
// the Save toast closes on its own after a countdown.
package modal

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotOpen = errors.New("modal: dialog is not open")
	ErrBusy    = errors.New("modal: action already in progress")
)

// State of a dialog.
type State int

const (
	Closed State = iota
	Open
	Running
)

// Request describes what a dialog asks and what happens on each answer.
type Request struct {
	Title   string
	Message string
	// Detail is extra view data, e.g. a summary of the pending record.
	Detail  any
	Confirm func(ctx context.Context) error
	Cancel  func()
}

// View is a template-friendly snapshot of an open dialog.
type View struct {
	Title   string
	Message string
	Detail  any
	Busy    bool
}

// Dialog is a confirm-style modal. It is safe for concurrent use.
type Dialog struct {
	mu    sync.Mutex
	state State
	req   Request
}

// Open shows the dialog. An open dialog is replaced; a running one is not.
func (d *Dialog) Open(r Request) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Running {
		return ErrBusy
	}
	d.state = Open
	d.req = r
	return nil
}

// Confirm runs the confirm action and closes the dialog. A second Confirm
// while the first is still running gets ErrBusy.
func (d *Dialog) Confirm(ctx context.Context) error {
	d.mu.Lock()
	switch d.state {
	case Running:
		d.mu.Unlock()
		return ErrBusy
	case Closed:
		d.mu.Unlock()
		return ErrNotOpen
	}
	d.state = Running
	action := d.req.Confirm
	d.mu.Unlock()

	var err error
	if action != nil {
		err = action(ctx)
	}

	d.mu.Lock()
	d.state = Closed
	d.req = Request{}
	d.mu.Unlock()
	return err
}

// Cancel closes an open dialog and runs its cancel callback.
func (d *Dialog) Cancel() {
	d.mu.Lock()
	if d.state != Open {
		d.mu.Unlock()
		return
	}
	cancel := d.req.Cancel
	d.state = Closed
	d.req = Request{}
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// State returns the current state.
func (d *Dialog) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// View returns the snapshot of an open or running dialog.
func (d *Dialog) View() (View, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Closed {
		return View{}, false
	}
	return View{
		Title:   d.req.Title,
		Message: d.req.Message,
		Detail:  d.req.Detail,
		Busy:    d.state == Running,
	}, true
}
