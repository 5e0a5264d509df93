package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookvault/book-api/internal/api/metrics"
	"github.com/bookvault/book-api/internal/core/domain"
	"github.com/bookvault/book-api/internal/core/ports"
)

// BookHandler handles HTTP requests for the caller's own books.
type BookHandler struct {
	service  ports.BookService
	recorder ActivityRecorder
}

func NewBookHandler(service ports.BookService, recorder ActivityRecorder) *BookHandler {
	return &BookHandler{service: service, recorder: recorder}
}

// List handles GET /api/books.
//
// @Summary      List the caller's books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   bookResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/books [get]
func (h *BookHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListOwned(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	resp := make([]bookResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toBookResponse(v))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/books/:id.
//
// @Summary      Get one of the caller's books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book id"
// @Success      200  {object}  bookResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBookResponse(*view))
}

// Create handles POST /api/books. The owner is always the caller; a client
// cannot create a book into another account.
//
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookRequest  true  "Book fields"
// @Success      201   {object}  bookResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Create(c.Request().Context(), identity, ports.BookInput{
		Title:  req.Title,
		Author: req.Author,
	})
	if err != nil {
		return err
	}

	metrics.BooksCreatedTotal.Inc()
	h.recorder.Enqueue(ports.ActivityInput{
		Username:  identity.Subject,
		Action:    domain.ActionBookCreated,
		Subject:   view.ID,
		Timestamp: time.Now().UTC(),
	})

	return c.JSON(http.StatusCreated, toBookResponse(*view))
}

// Update handles PUT /api/books/:id.
//
// @Summary      Update one of the caller's books
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Book id"
// @Param        body  body      bookRequest  true  "New book fields"
// @Success      200   {object}  bookResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Update(c.Request().Context(), identity, c.Param("id"), ports.BookInput{
		Title:  req.Title,
		Author: req.Author,
	})
	if err != nil {
		return err
	}

	h.recorder.Enqueue(ports.ActivityInput{
		Username:  identity.Subject,
		Action:    domain.ActionBookUpdated,
		Subject:   view.ID,
		Timestamp: time.Now().UTC(),
	})

	return c.JSON(http.StatusOK, toBookResponse(*view))
}

// Delete handles DELETE /api/books/:id.
//
// @Summary      Delete one of the caller's books
// @Tags         books
// @Security     BearerAuth
// @Param        id  path  string  true  "Book id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	bookID := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), identity, bookID); err != nil {
		return err
	}

	h.recorder.Enqueue(ports.ActivityInput{
		Username:  identity.Subject,
		Action:    domain.ActionBookDeleted,
		Subject:   bookID,
		Timestamp: time.Now().UTC(),
	})

	return c.NoContent(http.StatusNoContent)
}

func toBookResponse(v ports.BookView) bookResponse {
	return bookResponse{
		ID:        v.ID,
		Title:     v.Title,
		Author:    v.Author,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
