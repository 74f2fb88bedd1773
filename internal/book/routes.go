package book

import "net/http"

// Register mounts the book routes on mux. Writes go through protect.
func (h *HTTPHandler) Register(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /v1/books", h.List)
	mux.HandleFunc("GET /v1/books/by_rating", h.ListByRating)
	mux.HandleFunc("GET /v1/books/by_date", h.ListByPublishDate)
	mux.HandleFunc("GET /v1/books/{id}", h.GetByID)

	mux.Handle("POST /v1/books", protect(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /v1/books/{id}", protect(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /v1/books/{id}", protect(http.HandlerFunc(h.Delete)))
}
