package catalog

import (
	"errors"
	"fmt"
	"net/http"

	"bookcatalog/internal/httpx"
)

// HTTPHandler exposes the catalog operations under /api/books.
type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// List handles GET /api/books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if books == nil {
		books = []Book{}
	}
	httpx.JSON(w, http.StatusOK, books)
}

// Create handles POST /api/books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := DecodePayload(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := h.svc.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{
		"message": "Book created successfully.",
		"id":      id,
	})
}

// Update handles PUT /api/books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	payload, err := DecodePayload(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.svc.Update(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	message := "Book updated successfully."
	if res.Modified == 0 {
		message = "Book found, but no changes were applied."
	}
	httpx.JSON(w, http.StatusOK, map[string]string{
		"message": message,
		"id":      id,
	})
}

// Delete handles DELETE /api/books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	n, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Deleted %d book(s) with ID '%s'", n, id),
	})
}

// writeError translates the catalog error taxonomy into HTTP statuses.
// Store failures are never retried and surface as opaque 500s.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalid):
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDuplicate):
		httpx.JSONError(w, http.StatusConflict, err.Error())
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
	}
}
