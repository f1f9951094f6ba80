// Package web serves the HTML views: landing page, book table, author and
// year lists, and the search form.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"bookcatalog/internal/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"index", "book-table", "authors", "years", "search-bar"}

// Handler renders the server-side views over the catalog service.
type Handler struct {
	svc  *catalog.Service
	tmpl map[string]*template.Template
}

// NewHandler parses the embedded templates. Each page template provides the
// "body" block inside the shared base layout.
func NewHandler(svc *catalog.Service) (*Handler, error) {
	tmpl := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		tmpl[name] = t
	}
	return &Handler{svc: svc, tmpl: tmpl}, nil
}

// Index handles GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, "index", nil)
}

// Books handles GET /books
func (h *Handler) Books(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.List(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.render(w, "book-table", books)
}

// Authors handles GET /authors
func (h *Handler) Authors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.svc.DistinctAuthors(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.render(w, "authors", authors)
}

// Years handles GET /years
func (h *Handler) Years(w http.ResponseWriter, r *http.Request) {
	years, err := h.svc.DistinctYears(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.render(w, "years", years)
}

// Search handles GET /search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	h.render(w, "search-bar", nil)
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	d := struct {
		Data any
	}{
		Data: data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl[name].ExecuteTemplate(w, "base.html", d); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

func (h *Handler) storeError(w http.ResponseWriter, err error) {
	log.Printf("view query failed: %v", err)
	http.Error(w, "store unavailable", http.StatusInternalServerError)
}
