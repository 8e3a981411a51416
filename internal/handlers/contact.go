package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"paintcompany/internal/models"
)

const contactPath = "/admin/contact"

type contactInfoForm struct {
	Email     string `form:"email"`
	Phone     string `form:"phone"`
	Corporate string `form:"corporate_address"`
	Factory   string `form:"factory_address"`
}

func contactInfoFormOf(info models.ContactInfo) contactInfoForm {
	corporate, factory := info.AddressLines()
	return contactInfoForm{Email: info.Email, Phone: info.Phone, Corporate: corporate, Factory: factory}
}

// ContactPage shows the contact record and the submitted messages.
func (h *Handler) ContactPage(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	api := h.adminAPI(c)

	var (
		info     models.ContactInfo
		messages []models.ContactSubmission
		loadErr  error
	)
	cached, loaded := ws.Submissions.Items()
	if wantsCached(c) && loaded {
		messages = cached
		info, loadErr = api.AdminContactInfo(c.Request.Context())
	} else {
		// Either failure cancels the other fetch; Wait reports the first.
		g, ctx := errgroup.WithContext(c.Request.Context())
		g.Go(func() (err error) {
			info, err = api.AdminContactInfo(ctx)
			return err
		})
		g.Go(func() (err error) {
			messages, err = api.ContactSubmissions(ctx)
			return err
		})
		if loadErr = g.Wait(); loadErr == nil {
			ws.Submissions.Load(messages)
		}
	}

	var errMsg string
	if loadErr != nil {
		msg, loggedOut := h.apiFailure(c, loadErr, "load data")
		if loggedOut {
			return
		}
		errMsg = msg
	}
	if msg := ws.TakeError("contact"); msg != "" {
		errMsg = msg
	}

	form := contactInfoFormOf(info)
	if draft, ok := ws.TakeDraft("contact"); ok {
		if d, ok := draft.(contactInfoForm); ok {
			form = d
		}
	}

	unread := 0
	for _, m := range messages {
		if !m.ReadStatus {
			unread++
		}
	}
	var selected *models.ContactSubmission
	if id, err := strconv.Atoi(c.Query("message")); err == nil {
		if m, ok := ws.Submissions.Find(id); ok {
			selected = &m
		}
	}

	h.renderAdmin(c, http.StatusOK, "admin_contact.html", gin.H{
		"title":    "Contact",
		"form":     form,
		"messages": messages,
		"unread":   unread,
		"selected": selected,
		"error":    errMsg,
	})
}

// SaveContactInfo updates the public contact record.
func (h *Handler) SaveContactInfo(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	var form contactInfoForm
	if err := c.ShouldBind(&form); err != nil {
		h.invalid(c, ws, "contact", contactPath, form, msgInvalidForm)
		return
	}

	if strings.TrimSpace(form.Email) == "" || strings.TrimSpace(form.Phone) == "" {
		h.invalid(c, ws, "contact", contactPath, form, "Email and phone are required")
		return
	}

	_, err := h.adminAPI(c).UpdateContactInfo(c.Request.Context(), models.ContactInfo{
		Email:   strings.TrimSpace(form.Email),
		Phone:   strings.TrimSpace(form.Phone),
		Address: models.JoinAddress(form.Corporate, form.Factory),
	})
	if err != nil {
		msg, loggedOut := h.apiFailure(c, err, "update contact information")
		if loggedOut {
			return
		}
		h.invalid(c, ws, "contact", contactPath, form, msg)
		return
	}
	ws.Notify(saveTitle, "Contact information updated successfully!")
	c.Redirect(http.StatusSeeOther, cachedView(contactPath))
}

// MarkRead marks a contact message as read.
func (h *Handler) MarkRead(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	id, ok := recordID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, contactPath)
		return
	}
	if err := h.adminAPI(c).MarkSubmissionRead(c.Request.Context(), id); err != nil {
		msg, loggedOut := h.apiFailure(c, err, "update message status")
		if loggedOut {
			return
		}
		ws.SetError("contact", msg)
	} else {
		ws.Submissions.Update(id, func(m *models.ContactSubmission) { m.ReadStatus = true })
	}
	c.Redirect(http.StatusSeeOther, cachedView(contactPath))
}

// DeleteMessage opens the Delete dialog for a contact message.
func (h *Handler) DeleteMessage(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	api := h.adminAPI(c)
	id, ok := recordID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, contactPath)
		return
	}

	p := &pendingChange{Page: "contact", Action: "delete message", Return: contactPath, Back: contactPath}
	if m, found := ws.Submissions.Find(id); found {
		p.Summary = []summaryLine{{"From", m.FullName}, {"Email", m.Email}}
	}
	h.openDelete(c, ws, p, func(ctx context.Context) error {
		if err := api.DeleteSubmission(ctx, id); err != nil {
			return err
		}
		ws.Submissions.Remove(id)
		ws.Notify(saveTitle, "Message deleted successfully.")
		return nil
	})
}
