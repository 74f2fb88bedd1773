package book

import (
	"errors"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/platform/validation"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /v1/books
// @Summary List books
// @Description Get every book in insertion order
// @Tags books
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, map[string]any{"total": len(books)})
}

// GetByID handles GET /v1/books/{id}
// @Summary Get book by id
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/books/{id} [get]
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// ListByRating handles GET /v1/books/by_rating?rating=N
// @Summary Filter books by rating
// @Tags books
// @Produce json
// @Param rating query int true "Exact rating"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/books/by_rating [get]
func (h *HTTPHandler) ListByRating(w http.ResponseWriter, r *http.Request) {
	rating, ok := readIntQuery(w, r, "rating")
	if !ok {
		return
	}

	books, err := h.service.ListByRating(r.Context(), rating)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, map[string]any{"total": len(books)})
}

// ListByPublishDate handles GET /v1/books/by_date?date=YYYY
// @Summary Filter books by publish year
// @Tags books
// @Produce json
// @Param date query int true "Publish year"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/books/by_date [get]
func (h *HTTPHandler) ListByPublishDate(w http.ResponseWriter, r *http.Request) {
	year, ok := readIntQuery(w, r, "date")
	if !ok {
		return
	}

	books, err := h.service.ListByPublishDate(r.Context(), year)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, map[string]any{"total": len(books)})
}

// Create handles POST /v1/books
// @Summary Create book
// @Description The service assigns the id; any id in the body is ignored
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body Request true "Book"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /v1/books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req Request
	if !readRequest(w, r, &req) {
		return
	}

	b, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/books/"+strconv.FormatInt(b.ID, 10))
	httpx.JSONSuccessCreated(w, r, b)
}

// Update handles PUT /v1/books/{id}
// @Summary Replace book
// @Description Overwrites every field; the id itself cannot change
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Book ID"
// @Param request body Request true "Book"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}
	var req Request
	if !readRequest(w, r, &req) {
		return
	}

	b, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Delete handles DELETE /v1/books/{id}
// @Summary Delete book
// @Tags books
// @Security Bearer
// @Param id path int true "Book ID"
// @Success 204 "No Content"
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", httpx.DetailsFrom(verr))
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case errors.Is(err, ErrIDMismatch):
		httpx.JSONError(w, r, http.StatusBadRequest, "ID_MISMATCH", "Body id does not match path id", []httpx.ErrorDetail{
			{Field: "id", Message: "id cannot be changed"},
		})
	default:
		h.service.logger.ErrorContext(r.Context(), "book request failed", "error", err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

func readID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid book id", nil)
		return 0, false
	}
	return id, true
}

func readIntQuery(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", key+" query parameter is required", []httpx.ErrorDetail{
			{Field: key, Message: key + " is required"},
		})
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", key+" must be an integer", []httpx.ErrorDetail{
			{Field: key, Message: key + " must be an integer"},
		})
		return 0, false
	}
	return v, true
}

func readRequest(w http.ResponseWriter, r *http.Request, dst *Request) bool {
	if err := httpx.DecodeJSON(r, dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
			return false
		}
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return false
	}
	return true
}
