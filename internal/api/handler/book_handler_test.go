package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bookvault/book-api/internal/api/handler"
	"github.com/bookvault/book-api/internal/api/middleware"
	"github.com/bookvault/book-api/internal/core/domain"
	"github.com/bookvault/book-api/internal/core/ports"
)

type stubBookService struct {
	listFn   func(ctx context.Context, identity domain.Identity) ([]ports.BookView, error)
	getFn    func(ctx context.Context, identity domain.Identity, bookID string) (*ports.BookView, error)
	createFn func(ctx context.Context, identity domain.Identity, input ports.BookInput) (*ports.BookView, error)
	updateFn func(ctx context.Context, identity domain.Identity, bookID string, input ports.BookInput) (*ports.BookView, error)
	deleteFn func(ctx context.Context, identity domain.Identity, bookID string) error
}

func (s *stubBookService) ListOwned(ctx context.Context, identity domain.Identity) ([]ports.BookView, error) {
	return s.listFn(ctx, identity)
}

func (s *stubBookService) Get(ctx context.Context, identity domain.Identity, bookID string) (*ports.BookView, error) {
	return s.getFn(ctx, identity, bookID)
}

func (s *stubBookService) Create(ctx context.Context, identity domain.Identity, input ports.BookInput) (*ports.BookView, error) {
	return s.createFn(ctx, identity, input)
}

func (s *stubBookService) Update(ctx context.Context, identity domain.Identity, bookID string, input ports.BookInput) (*ports.BookView, error) {
	return s.updateFn(ctx, identity, bookID, input)
}

func (s *stubBookService) Delete(ctx context.Context, identity domain.Identity, bookID string) error {
	return s.deleteFn(ctx, identity, bookID)
}

// authedContext builds an echo context carrying the identity the Auth
// middleware would have injected.
func authedContext(e *echo.Echo, method, path, body, username string, role domain.Role) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUsername, username)
	c.Set(middleware.CtxRole, role)
	return c, rec
}

func TestBookHandler_Create_OwnerFromToken(t *testing.T) {
	e := newTestEcho()
	recorder := &nopRecorder{}
	stub := &stubBookService{
		createFn: func(ctx context.Context, identity domain.Identity, input ports.BookInput) (*ports.BookView, error) {
			// The owner must come from the middleware-injected identity, not
			// from anything in the payload.
			if identity.Subject != "alice" {
				t.Fatalf("identity subject = %q, want alice", identity.Subject)
			}
			if input.Title != "Dune" || input.Author != "Herbert" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.BookView{ID: "book-1", Title: input.Title, Author: input.Author}, nil
		},
	}
	h := handler.NewBookHandler(stub, recorder)

	// The payload tries to smuggle an owner; the schema has no such field.
	body := `{"title":"Dune","author":"Herbert","owner_id":"bob"}`
	c, rec := authedContext(e, http.MethodPost, "/api/books", body, "alice", domain.RoleUser)

	if err := h.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(recorder.inputs) != 1 || recorder.inputs[0].Action != domain.ActionBookCreated || recorder.inputs[0].Subject != "book-1" {
		t.Fatalf("expected book_created activity, got %+v", recorder.inputs)
	}
}

func TestBookHandler_Create_MissingFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		createFn: func(ctx context.Context, identity domain.Identity, input ports.BookInput) (*ports.BookView, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := handler.NewBookHandler(stub, &nopRecorder{})

	for _, body := range []string{`{}`, `{"title":"Dune"}`, `{"author":"Herbert"}`} {
		c, rec := authedContext(e, http.MethodPost, "/api/books", body, "alice", domain.RoleUser)
		if err := h.Create(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestBookHandler_Get_NotFoundOrNotOwned(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		getFn: func(ctx context.Context, identity domain.Identity, bookID string) (*ports.BookView, error) {
			return nil, domain.ErrBookNotFound
		},
	}
	h := handler.NewBookHandler(stub, &nopRecorder{})

	c, rec := authedContext(e, http.MethodGet, "/api/books/someone-elses", "", "bob", domain.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues("someone-elses")

	if err := h.Get(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	// 404, never 403: the response must not confirm the id exists.
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestBookHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		listFn: func(ctx context.Context, identity domain.Identity) ([]ports.BookView, error) {
			return []ports.BookView{
				{ID: "b1", Title: "T1", Author: "A1"},
				{ID: "b2", Title: "T2", Author: "A2"},
			}, nil
		},
	}
	h := handler.NewBookHandler(stub, &nopRecorder{})

	c, rec := authedContext(e, http.MethodGet, "/api/books", "", "alice", domain.RoleUser)
	if err := h.List(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["id"] != "b1" || resp[1]["id"] != "b2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestBookHandler_Delete_NoContent(t *testing.T) {
	e := newTestEcho()
	recorder := &nopRecorder{}
	stub := &stubBookService{
		deleteFn: func(ctx context.Context, identity domain.Identity, bookID string) error {
			if bookID != "b1" {
				t.Fatalf("unexpected book id %q", bookID)
			}
			return nil
		},
	}
	h := handler.NewBookHandler(stub, recorder)

	c, rec := authedContext(e, http.MethodDelete, "/api/books/b1", "", "alice", domain.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := h.Delete(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(recorder.inputs) != 1 || recorder.inputs[0].Action != domain.ActionBookDeleted {
		t.Fatalf("expected book_deleted activity, got %+v", recorder.inputs)
	}
}

func TestBookHandler_MissingIdentity(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		listFn: func(ctx context.Context, identity domain.Identity) ([]ports.BookView, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := handler.NewBookHandler(stub, &nopRecorder{})

	// No identity in context: the middleware did not run.
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
