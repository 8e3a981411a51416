package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"paintcompany/internal/media"
	"paintcompany/internal/models"
)

const arrivalsPath = "/admin/new-arrivals"

type arrivalForm struct {
	ID          int    `form:"-"`
	Name        string `form:"name"`
	Description string `form:"description"`
	ReleaseDate string `form:"release_date"`
	ImageURL    string `form:"-"`
}

func (f arrivalForm) validate(creating bool, img *media.Image) string {
	var problems []string
	if strings.TrimSpace(f.Name) == "" {
		problems = append(problems, "Product Name is required")
	}
	if strings.TrimSpace(f.Description) == "" {
		problems = append(problems, "Description is required")
	}
	if strings.TrimSpace(f.ReleaseDate) == "" {
		problems = append(problems, "Release Date is required")
	}
	if creating && img == nil {
		problems = append(problems, "Product Image is required")
	}
	return strings.Join(problems, ", ")
}

func (f arrivalForm) input() models.NewArrivalInput {
	return models.NewArrivalInput{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		ReleaseDate: models.DatePart(strings.TrimSpace(f.ReleaseDate)),
	}
}

// ArrivalsPage lists the new arrivals.
func (h *Handler) ArrivalsPage(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	api := h.adminAPI(c)

	items, errMsg, loggedOut := loadList(c, h, &ws.Arrivals, "fetch new arrivals", api.AdminNewArrivals)
	if loggedOut {
		return
	}
	if msg := ws.TakeError("arrivals"); msg != "" {
		errMsg = msg
	}
	image := h.image(media.NewArrivals)
	for i := range items {
		items[i].ImageURL = image(items[i].ImageURL)
	}

	var form arrivalForm
	if id, err := strconv.Atoi(c.Query("edit")); err == nil {
		if a, ok := ws.Arrivals.Find(id); ok {
			form = arrivalForm{
				ID:          a.ID,
				Name:        a.Name,
				Description: a.Description,
				ReleaseDate: a.ReleaseDay(),
				ImageURL:    image(a.ImageURL),
			}
		}
	}
	if draft, ok := ws.TakeDraft("arrivals"); ok {
		if d, ok := draft.(arrivalForm); ok {
			form = d
		}
	}

	h.renderAdmin(c, http.StatusOK, "admin_arrivals.html", gin.H{
		"title":    "New Arrivals",
		"arrivals": items,
		"form":     form,
		"error":    errMsg,
	})
}

// SaveArrival validates the form and opens the Confirm dialog.
func (h *Handler) SaveArrival(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	api := h.adminAPI(c)

	var form arrivalForm
	if err := c.ShouldBind(&form); err != nil {
		h.invalid(c, ws, "arrivals", arrivalsPath, form, msgInvalidForm)
		return
	}

	id, editing := recordID(c)
	back := arrivalsPath
	if editing {
		form.ID = id
		back = arrivalsPath + "?edit=" + strconv.Itoa(id)
		if a, ok := ws.Arrivals.Find(id); ok {
			form.ImageURL = h.image(media.NewArrivals)(a.ImageURL)
		}
	}

	img, err := formImage(c)
	if err != nil {
		h.invalid(c, ws, "arrivals", back, form, imageMessage(err))
		return
	}
	if msg := form.validate(!editing, img); msg != "" {
		h.invalid(c, ws, "arrivals", back, form, msg)
		return
	}

	in := form.input()
	p := &pendingChange{
		Page:   "arrivals",
		Return: arrivalsPath,
		Back:   back,
		Summary: []summaryLine{
			{"Product Name", in.Name},
			{"Release Date", in.ReleaseDate},
		},
		Draft: form,
		image: img,
	}
	if !editing {
		p.Action = "create new arrival"
		h.openConfirm(c, ws, p, func(ctx context.Context) error {
			image := p.Image()
			if image == nil {
				return validationError("Product Image is required")
			}
			created, err := api.CreateNewArrival(ctx, in, image)
			if err != nil {
				return err
			}
			ws.Arrivals.Prepend(created)
			ws.Notify(saveTitle, "Product saved successfully!")
			return nil
		})
		return
	}

	p.Action = "update new arrival"
	h.openConfirm(c, ws, p, func(ctx context.Context) error {
		updated, err := api.UpdateNewArrival(ctx, id, in, p.Image())
		if err != nil {
			return err
		}
		ws.Arrivals.Replace(updated)
		ws.Notify(saveTitle, "Product saved successfully!")
		return nil
	})
}

// DeleteArrival opens the Delete dialog for a new arrival.
func (h *Handler) DeleteArrival(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	api := h.adminAPI(c)
	id, ok := recordID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, arrivalsPath)
		return
	}

	p := &pendingChange{Page: "arrivals", Action: "delete new arrival", Return: arrivalsPath, Back: arrivalsPath}
	if existing, found := ws.Arrivals.Find(id); found {
		p.Summary = []summaryLine{{"Product Name", existing.Name}}
	}
	h.openDelete(c, ws, p, func(ctx context.Context) error {
		if err := api.DeleteNewArrival(ctx, id); err != nil {
			return err
		}
		ws.Arrivals.Remove(id)
		ws.Notify(saveTitle, "Product deleted successfully.")
		return nil
	})
}
