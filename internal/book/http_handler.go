package book

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"booksapi/internal/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const msgNotFound = "Book not found"

type HTTPHandler struct {
	service *Service
	log     zerolog.Logger
}

func NewHTTPHandler(service *Service, log zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

// BookReq is the body of create and update requests.
type BookReq struct {
	Title         string `json:"title" validate:"required,max=500"`
	Author        string `json:"author" validate:"required,max=500"`
	ISBN          string `json:"isbn" validate:"max=32"`
	PublishedYear *int   `json:"published_year" validate:"omitempty,gte=0,lte=9999"`
}

func (req BookReq) fields() Fields {
	return Fields{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		PublishedYear: req.PublishedYear,
	}
}

func decodeBookReq(r *http.Request) (BookReq, error) {
	var req BookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if httpx.IsBodyTooLarge(err) {
			return BookReq{}, err
		}
		return BookReq{}, httpx.NewValidationError("body", "request body must be a JSON object")
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	req.ISBN = strings.TrimSpace(req.ISBN)

	if err := httpx.ValidateStruct(req); err != nil {
		return BookReq{}, err
	}
	return req, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, httpx.NewValidationError("id", "id must be a positive integer")
	}
	return id, nil
}

// fail maps an error that reached the handler boundary to its response.
func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *httpx.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.JSONValidationError(w, verr)
	case httpx.IsBodyTooLarge(err):
		httpx.JSONBodyTooLarge(w)
	case errors.Is(err, ErrNotFound):
		httpx.JSONMessage(w, http.StatusNotFound, msgNotFound)
	default:
		h.log.Error().Err(err).
			Str("request_id", httpx.RequestIDFrom(r)).
			Str("username", httpx.UsernameFrom(r)).
			Msg("book request failed")
		httpx.JSONInternalError(w)
	}
}

// Create handles POST /books
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param book body BookReq true "Book"
// @Success 201 {object} Book
// @Failure 400 {object} httpx.MessageResponse
// @Failure 401 {object} httpx.MessageResponse
// @Failure 403 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.MessageResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBookReq(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	b, err := h.service.Create(r.Context(), req.fields())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, b)
}

// Update handles PUT /books/{id}
// @Summary Replace a book
// @Description Overwrites every field; an omitted published_year becomes null
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Book ID"
// @Param book body BookReq true "Book"
// @Success 200 {object} Book
// @Failure 400 {object} httpx.MessageResponse
// @Failure 404 {object} httpx.MessageResponse
// @Failure 500 {object} httpx.MessageResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	req, err := decodeBookReq(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	b, err := h.service.Update(r.Context(), id, req.fields())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book
// @Tags books
// @Security Bearer
// @Param id path int true "Book ID"
// @Success 204 "No Content"
// @Failure 404 {object} httpx.MessageResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// Search handles GET /books
// @Summary Search books
// @Description Title and author match case-insensitive substrings, isbn matches exactly; filters combine with AND
// @Tags books
// @Produce json
// @Security Bearer
// @Param title query string false "Title contains"
// @Param author query string false "Author contains"
// @Param isbn query string false "Exact ISBN"
// @Success 200 {array} Book
// @Failure 500 {object} httpx.MessageResponse
// @Router /books [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	f := Filter{
		Title:  query.Get("title"),
		Author: query.Get("author"),
		ISBN:   query.Get("isbn"),
	}

	books, err := h.service.Search(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}
