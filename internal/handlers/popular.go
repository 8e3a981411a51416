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

const popularPath = "/admin/popular"

type popularForm struct {
	ID          int     `form:"-"`
	Name        string  `form:"name"`
	Type        string  `form:"type"`
	Description string  `form:"description"`
	Features    string  `form:"features"`
	Rating      float64 `form:"rating"`
	ImageURL    string  `form:"-"`
}

func popularFormOf(p models.PopularProduct) popularForm {
	return popularForm{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Description: p.Description,
		Features:    p.Features.String(),
		Rating:      p.Rating,
		ImageURL:    p.ImageURL,
	}
}

func (f popularForm) input() models.PopularProductInput {
	return models.PopularProductInput{
		Name:        strings.TrimSpace(f.Name),
		Type:        f.Type,
		Description: strings.TrimSpace(f.Description),
		Features:    models.ParseFeatures(f.Features),
		Rating:      models.FormatRating(models.ClampRating(f.Rating)),
	}
}

func (f popularForm) validate(creating bool, img *media.Image) string {
	missing := strings.TrimSpace(f.Name) == "" || f.Type == "" || len(models.ParseFeatures(f.Features)) == 0
	if creating && (missing || img == nil) {
		return "Please fill in all required fields (Name, Type, Features, Image)."
	}
	if missing {
		return "Please fill in all required fields (Name, Type, Features)."
	}
	return ""
}

// PopularPage lists the curated popular products.
func (h *Handler) PopularPage(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	api := h.adminAPI(c)

	items, errMsg, loggedOut := loadList(c, h, &ws.Popular, "fetch popular products", api.AdminPopularProducts)
	if loggedOut {
		return
	}
	if msg := ws.TakeError("popular"); msg != "" {
		errMsg = msg
	}
	image := h.image(media.PopularProducts)
	for i := range items {
		items[i].ImageURL = image(items[i].ImageURL)
	}

	form := popularForm{Rating: models.DefaultRating}
	if id, err := strconv.Atoi(c.Query("edit")); err == nil {
		if p, ok := ws.Popular.Find(id); ok {
			form = popularFormOf(p)
			form.ImageURL = image(p.ImageURL)
		}
	}
	if draft, ok := ws.TakeDraft("popular"); ok {
		if d, ok := draft.(popularForm); ok {
			form = d
		}
	}

	h.renderAdmin(c, http.StatusOK, "admin_popular.html", gin.H{
		"title":    "Popular Products",
		"products": items,
		"form":     form,
		"types":    models.PopularTypes,
		"error":    errMsg,
	})
}

// SavePopular validates the form and opens the Confirm dialog.
func (h *Handler) SavePopular(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	api := h.adminAPI(c)

	form := popularForm{Rating: models.DefaultRating}
	if err := c.ShouldBind(&form); err != nil {
		h.invalid(c, ws, "popular", popularPath, form, "Rating must be a number between 1.0 and 5.0")
		return
	}
	if form.Rating == 0 {
		form.Rating = models.DefaultRating
	}
	form.Rating = models.ClampRating(form.Rating)

	id, editing := recordID(c)
	back := popularPath
	if editing {
		form.ID = id
		back = popularPath + "?edit=" + strconv.Itoa(id)
		if p, ok := ws.Popular.Find(id); ok {
			form.ImageURL = h.image(media.PopularProducts)(p.ImageURL)
		}
	}

	img, err := formImage(c)
	if err != nil {
		h.invalid(c, ws, "popular", back, form, imageMessage(err))
		return
	}
	if msg := form.validate(!editing, img); msg != "" {
		h.invalid(c, ws, "popular", back, form, msg)
		return
	}

	in := form.input()
	p := &pendingChange{
		Page:   "popular",
		Return: popularPath,
		Back:   back,
		Summary: []summaryLine{
			{"Name", in.Name},
			{"Type", in.Type},
			{"Features", in.Features.String()},
			{"Rating", in.Rating},
		},
		Draft: form,
		image: img,
	}
	if !editing {
		p.Action = "create product"
		h.openConfirm(c, ws, p, func(ctx context.Context) error {
			image := p.Image()
			if image == nil {
				return validationError("Please fill in all required fields (Name, Type, Features, Image).")
			}
			created, err := api.CreatePopularProduct(ctx, in, image)
			if err != nil {
				return err
			}
			ws.Popular.Prepend(created)
			ws.Notify(saveTitle, "Product saved successfully!")
			return nil
		})
		return
	}

	p.Action = "update product"
	h.openConfirm(c, ws, p, func(ctx context.Context) error {
		updated, err := api.UpdatePopularProduct(ctx, id, in, p.Image())
		if err != nil {
			return err
		}
		ws.Popular.Replace(updated)
		ws.Notify(saveTitle, "Product saved successfully!")
		return nil
	})
}

// DeletePopular opens the Delete dialog for a popular product.
func (h *Handler) DeletePopular(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	api := h.adminAPI(c)
	id, ok := recordID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, popularPath)
		return
	}

	p := &pendingChange{Page: "popular", Action: "delete product", Return: popularPath, Back: popularPath}
	if existing, found := ws.Popular.Find(id); found {
		p.Summary = []summaryLine{{"Name", existing.Name}}
	}
	h.openDelete(c, ws, p, func(ctx context.Context) error {
		if err := api.DeletePopularProduct(ctx, id); err != nil {
			return err
		}
		ws.Popular.Remove(id)
		ws.Notify(saveTitle, "Product deleted successfully.")
		return nil
	})
}
