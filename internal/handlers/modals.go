package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"paintcompany/internal/media"
	"paintcompany/internal/modal"
	"paintcompany/internal/session"
	"paintcompany/internal/workspace"
)

// Texts of the shared dialogs.
const (
	confirmTitle   = "Confirm Action"
	confirmMessage = "Are you sure you want to save this product?"
	deleteTitle    = "Delete Confirmation"
	deleteMessage  = "Are you sure you want to delete this item?"
	saveTitle      = "Success"
	busyMessage    = "Another request is still in progress. Please wait."
	msgInvalidForm = "Invalid form data. Check all fields."
)

// validationError is a form problem found before any request is sent.
type validationError string

func (e validationError) Error() string { return string(e) }

type summaryLine struct {
	Label string
	Value string
}

// pendingChange is the detail of an open Confirm or Delete dialog: what is
// about to be sent and where to go afterwards.
type pendingChange struct {
	Page    string
	Action  string
	Return  string
	Back    string
	Summary []summaryLine
	Draft   any

	mu    sync.Mutex
	image *media.Image
}

func (p *pendingChange) Image() *media.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.image
}

// HasImage and Preview feed the image preview of the Confirm dialog.
func (p *pendingChange) HasImage() bool { return p.Image() != nil }

func (p *pendingChange) Preview() string {
	if img := p.Image(); img != nil {
		return img.DataURL()
	}
	return ""
}

// RemoveImage drops the pending upload.
func (p *pendingChange) RemoveImage() {
	p.mu.Lock()
	p.image = nil
	p.mu.Unlock()
}

// cachedView marks a manager URL so the page renders the in-memory list.
func cachedView(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set("view", "cached")
	u.RawQuery = q.Encode()
	return u.String()
}

func wantsCached(c *gin.Context) bool {
	return c.Query("view") == "cached"
}

// loadList returns the records of a manager page: the in-memory list when
// the page is shown after a mutation, a fresh fetch otherwise.
func loadList[T workspace.Keyed](c *gin.Context, h *Handler, list *workspace.List[T], action string, fetch func(context.Context) ([]T, error)) (items []T, errMsg string, loggedOut bool) {
	if wantsCached(c) {
		if items, ok := list.Items(); ok {
			return items, "", false
		}
	}
	items, err := fetch(c.Request.Context())
	if err != nil {
		msg, out := h.apiFailure(c, err, action)
		return nil, msg, out
	}
	list.Load(items)
	return items, "", false
}

// renderAdmin renders an admin page together with whatever dialog is open.
func (h *Handler) renderAdmin(c *gin.Context, status int, page string, data gin.H) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")

	data["path"] = c.Request.URL.Path
	data["return"] = c.Request.URL.RequestURI()
	if s, ok := session.FromContext(c); ok {
		data["user"] = s.User
		ws := h.workspaces.Get(s.ID)
		if v, open := ws.Confirm.View(); open {
			data["confirm"] = v
		}
		if v, open := ws.Delete.View(); open {
			data["delete"] = v
		}
		if v, open := ws.Save.View(); open {
			data["toast"] = v
		}
	}
	c.HTML(status, page, data)
}

// invalid re-shows the form of p with msg, without contacting the API.
func (h *Handler) invalid(c *gin.Context, ws *workspace.Workspace, page, back string, draft any, msg string) {
	ws.SetError(page, msg)
	ws.SetDraft(page, draft)
	c.Redirect(http.StatusSeeOther, cachedView(back))
}

// openConfirm asks the admin to confirm a save; run is sent only on confirm.
func (h *Handler) openConfirm(c *gin.Context, ws *workspace.Workspace, p *pendingChange, run func(context.Context) error) {
	err := ws.Confirm.Open(modal.Request{
		Title:   confirmTitle,
		Message: confirmMessage,
		Detail:  p,
		Confirm: run,
		Cancel:  func() { ws.SetDraft(p.Page, p.Draft) },
	})
	if err != nil {
		ws.SetError(p.Page, busyMessage)
	}
	c.Redirect(http.StatusSeeOther, cachedView(p.Back))
}

// openDelete asks the admin to confirm a delete.
func (h *Handler) openDelete(c *gin.Context, ws *workspace.Workspace, p *pendingChange, run func(context.Context) error) {
	if err := ws.Delete.Open(modal.Request{
		Title:   deleteTitle,
		Message: deleteMessage,
		Detail:  p,
		Confirm: run,
	}); err != nil {
		ws.SetError(p.Page, busyMessage)
	}
	c.Redirect(http.StatusSeeOther, cachedView(p.Back))
}

func pendingOf(d *modal.Dialog) *pendingChange {
	if v, ok := d.View(); ok {
		if p, ok := v.Detail.(*pendingChange); ok {
			return p
		}
	}
	return nil
}

// ConfirmSave answers the Confirm dialog with yes.
func (h *Handler) ConfirmSave(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	h.runDialog(c, ws, ws.Confirm)
}

// CancelSave closes the Confirm dialog; the form keeps its values.
func (h *Handler) CancelSave(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	p := pendingOf(ws.Confirm)
	ws.Confirm.Cancel()
	h.back(c, p)
}

// RemoveImage drops the pending upload shown in the Confirm dialog.
func (h *Handler) RemoveImage(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	p := pendingOf(ws.Confirm)
	if p != nil {
		p.RemoveImage()
	}
	h.back(c, p)
}

// ConfirmDelete answers the Delete dialog with yes.
func (h *Handler) ConfirmDelete(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	h.runDialog(c, ws, ws.Delete)
}

// CancelDelete closes the Delete dialog without sending anything.
func (h *Handler) CancelDelete(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	p := pendingOf(ws.Delete)
	ws.Delete.Cancel()
	h.back(c, p)
}

// CloseSave closes the Save toast before its countdown ends.
func (h *Handler) CloseSave(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	ws.Save.Close()
	target := c.PostForm("return")
	if !strings.HasPrefix(target, "/admin/") {
		target = "/admin/dashboard"
	}
	c.Redirect(http.StatusSeeOther, target)
}

// SaveStatus reports the Save toast countdown for the page script.
func (h *Handler) SaveStatus(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	v, open := ws.Save.View()
	c.JSON(http.StatusOK, gin.H{
		"open":      open,
		"title":     v.Title,
		"message":   v.Message,
		"remaining": v.Remaining,
	})
}

func (h *Handler) back(c *gin.Context, p *pendingChange) {
	if p == nil {
		c.Redirect(http.StatusSeeOther, "/admin/dashboard")
		return
	}
	c.Redirect(http.StatusSeeOther, cachedView(p.Back))
}

func (h *Handler) runDialog(c *gin.Context, ws *workspace.Workspace, d *modal.Dialog) {
	p := pendingOf(d)
	if p == nil {
		c.Redirect(http.StatusSeeOther, "/admin/dashboard")
		return
	}

	err := d.Confirm(c.Request.Context())
	var invalid validationError
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, cachedView(p.Return))
	case errors.Is(err, modal.ErrBusy), errors.Is(err, modal.ErrNotOpen):
		c.Redirect(http.StatusSeeOther, cachedView(p.Back))
	case errors.As(err, &invalid):
		h.invalid(c, ws, p.Page, p.Back, p.Draft, string(invalid))
	default:
		msg, loggedOut := h.apiFailure(c, err, p.Action)
		if loggedOut {
			return
		}
		ws.SetError(p.Page, msg)
		if p.Draft != nil {
			ws.SetDraft(p.Page, p.Draft)
		}
		c.Redirect(http.StatusSeeOther, cachedView(p.Back))
	}
}

// recordID reads the :id path parameter.
func recordID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	return id, err == nil && id > 0
}

// formImage reads the optional "image" upload.
func formImage(c *gin.Context) (*media.Image, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return media.ReadImage(fh)
}

// imageMessage is the banner text for a rejected upload.
func imageMessage(err error) string {
	if errors.Is(err, media.ErrImageTooLarge) {
		return media.ErrImageTooLarge.Error()
	}
	return media.ErrImageType.Error()
}
