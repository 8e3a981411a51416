package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"paintcompany/internal/models"
)

const newsPath = "/admin/news"

type newsForm struct {
	ID          int    `form:"-"`
	Title       string `form:"title"`
	Type        string `form:"type"`
	Content     string `form:"content"`
	Date        string `form:"date"`
	EndDate     string `form:"end_date"`
	Highlighted bool   `form:"highlighted"`
}

func (f newsForm) validate() string {
	var problems []string
	if strings.TrimSpace(f.Title) == "" {
		problems = append(problems, "Title is required")
	}
	if f.Type != models.KindNews && f.Type != models.KindEvent {
		problems = append(problems, "Type is required")
	}
	if strings.TrimSpace(f.Content) == "" {
		problems = append(problems, "Content is required")
	}
	if strings.TrimSpace(f.Date) == "" {
		problems = append(problems, "Date is required")
	}
	return strings.Join(problems, ", ")
}

func (f newsForm) input() models.NewsEventInput {
	return models.NewsEventInput{
		Title:       strings.TrimSpace(f.Title),
		Type:        f.Type,
		Content:     strings.TrimSpace(f.Content),
		Date:        strings.TrimSpace(f.Date),
		EndDate:     strings.TrimSpace(f.EndDate),
		Highlighted: f.Highlighted,
	}
}

// NewsPage lists news and events.
func (h *Handler) NewsPage(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	api := h.adminAPI(c)

	items, errMsg, loggedOut := loadList(c, h, &ws.News, "fetch news/events", api.AdminNewsEvents)
	if loggedOut {
		return
	}
	if msg := ws.TakeError("news"); msg != "" {
		errMsg = msg
	}

	form := newsForm{Type: models.KindNews, Date: h.now().Format("2006-01-02")}
	if id, err := strconv.Atoi(c.Query("edit")); err == nil {
		if n, ok := ws.News.Find(id); ok {
			form = newsForm{
				ID:          n.ID,
				Title:       n.Title,
				Type:        n.Type,
				Content:     n.Content,
				Date:        n.Day(),
				EndDate:     n.EndDay(),
				Highlighted: n.Highlighted,
			}
		}
	}
	if draft, ok := ws.TakeDraft("news"); ok {
		if d, ok := draft.(newsForm); ok {
			form = d
		}
	}

	h.renderAdmin(c, http.StatusOK, "admin_news.html", gin.H{
		"title": "News & Events",
		"items": items,
		"form":  form,
		"error": errMsg,
	})
}

// SaveNews validates the form and opens the Confirm dialog.
func (h *Handler) SaveNews(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	api := h.adminAPI(c)

	var form newsForm
	if err := c.ShouldBind(&form); err != nil {
		h.invalid(c, ws, "news", newsPath, form, msgInvalidForm)
		return
	}

	id, editing := recordID(c)
	back := newsPath
	if editing {
		form.ID = id
		back = newsPath + "?edit=" + strconv.Itoa(id)
	}
	if msg := form.validate(); msg != "" {
		h.invalid(c, ws, "news", back, form, msg)
		return
	}

	in := form.input()
	p := &pendingChange{
		Page:   "news",
		Return: newsPath,
		Back:   back,
		Summary: []summaryLine{
			{"Title", in.Title},
			{"Type", in.Type},
			{"Date", in.Date},
		},
		Draft: form,
	}
	if in.EndDate != "" {
		p.Summary = append(p.Summary, summaryLine{"End Date", in.EndDate})
	}
	if !editing {
		p.Action = "create news/event"
		h.openConfirm(c, ws, p, func(ctx context.Context) error {
			created, err := api.CreateNewsEvent(ctx, in)
			if err != nil {
				return err
			}
			ws.News.Prepend(created)
			ws.Notify(saveTitle, "Operation completed successfully!")
			return nil
		})
		return
	}

	p.Action = "update news/event"
	h.openConfirm(c, ws, p, func(ctx context.Context) error {
		updated, err := api.UpdateNewsEvent(ctx, id, in)
		if err != nil {
			return err
		}
		ws.News.Replace(updated)
		ws.Notify(saveTitle, "Operation completed successfully!")
		return nil
	})
}

// DeleteNews opens the Delete dialog for a news item.
func (h *Handler) DeleteNews(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	api := h.adminAPI(c)
	id, ok := recordID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, newsPath)
		return
	}

	p := &pendingChange{Page: "news", Action: "delete news/event", Return: newsPath, Back: newsPath}
	if existing, found := ws.News.Find(id); found {
		p.Summary = []summaryLine{{"Title", existing.Title}}
	}
	h.openDelete(c, ws, p, func(ctx context.Context) error {
		if err := api.DeleteNewsEvent(ctx, id); err != nil {
			return err
		}
		ws.News.Remove(id)
		ws.Notify(saveTitle, "Operation completed successfully!")
		return nil
	})
}
