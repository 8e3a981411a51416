package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin/render"

	"paintcompany/internal/catalog"
	"paintcompany/internal/models"
)

// layout is the template every page extends.
const layout = "base"

// templateFiles lists, per page, the files its template set is parsed from.
var templateFiles = map[string][]string{
	"home.html":       {"templates/base.html", "templates/partials.html", "templates/home.html"},
	"products.html":   {"templates/base.html", "templates/partials.html", "templates/products.html"},
	"find_store.html": {"templates/base.html", "templates/partials.html", "templates/find_store.html"},

	"login.html":           {"templates/admin/base.html", "templates/admin/modals.html", "templates/admin/login.html"},
	"forgot_password.html": {"templates/admin/base.html", "templates/admin/modals.html", "templates/admin/forgot_password.html"},
	"docs.html":            {"templates/admin/base.html", "templates/admin/modals.html", "templates/admin/docs.html"},
	"dashboard.html":       {"templates/admin/base.html", "templates/admin/modals.html", "templates/admin/dashboard.html"},
	"password.html":        {"templates/admin/base.html", "templates/admin/modals.html", "templates/admin/password.html"},
	"admin_products.html":  {"templates/admin/base.html", "templates/admin/modals.html", "templates/admin/products.html"},
	"admin_popular.html":   {"templates/admin/base.html", "templates/admin/modals.html", "templates/admin/popular.html"},
	"admin_arrivals.html":  {"templates/admin/base.html", "templates/admin/modals.html", "templates/admin/arrivals.html"},
	"admin_news.html":      {"templates/admin/base.html", "templates/admin/modals.html", "templates/admin/news.html"},
	"admin_contact.html":   {"templates/admin/base.html", "templates/admin/modals.html", "templates/admin/contact.html"},
}

// LoadTemplates parses one template set per page from fsys.
func LoadTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(templateFiles))
	for name, files := range templateFiles {
		tmpl, err := template.New(name).Funcs(TemplateFuncs).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}

// HTMLRenderer keeps a separate template set for every page.
type HTMLRenderer struct {
	Templates map[string]*template.Template
}

// Instance renders the page's layout with data.
func (r *HTMLRenderer) Instance(name string, data interface{}) render.Render {
	tmpl, ok := r.Templates[name]
	if !ok {
		return missingTemplate(name)
	}
	return render.HTML{
		Template: tmpl,
		Name:     layout,
		Data:     data,
	}
}

type missingTemplate string

func (m missingTemplate) Render(w http.ResponseWriter) error {
	return fmt.Errorf("template %q not loaded", string(m))
}

func (m missingTemplate) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

// TemplateFuncs are available to every page.
var TemplateFuncs = template.FuncMap{
	"upper": strings.ToUpper,
	"slug":  catalog.Slug,
	"join":  strings.Join,
	"add":   func(a, b int) int { return a + b },
	"stars": func(rating float64) []bool {
		stars := make([]bool, 5)
		for i := range stars {
			stars[i] = float64(i+1) <= rating+0.25
		}
		return stars
	},
	"rating": func(r float64) string {
		return fmt.Sprintf("%.1f", r)
	},
	"lines": func(s string) []string {
		var out []string
		for _, l := range strings.Split(s, "\n") {
			if l = strings.TrimSpace(l); l != "" {
				out = append(out, l)
			}
		}
		return out
	},
	"excerpt": func(s string, n int) string {
		r := []rune(s)
		if len(r) <= n {
			return s
		}
		return strings.TrimSpace(string(r[:n])) + "..."
	},
	"priceFields": func() []models.PriceField { return models.AllPriceFields },
	"hasUnit": func(category string, f models.PriceField) bool {
		for _, u := range catalog.ParseKind(category).Units() {
			if u == f {
				return true
			}
		}
		return false
	},
	"unitKeys": func(category string) string {
		var keys []string
		for _, u := range catalog.ParseKind(category).Units() {
			keys = append(keys, u.Key())
		}
		return strings.Join(keys, " ")
	},
	"contains": func(list []string, s string) bool {
		for _, v := range list {
			if v == s {
				return true
			}
		}
		return false
	},
}
