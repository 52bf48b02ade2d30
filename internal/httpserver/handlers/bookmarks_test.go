package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/marks/internal/catalog"
	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/store"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()

	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	d := deps.Deps{
		Logger:    logger.New("error", false),
		Catalog:   catalog.New(s),
		StartTime: time.Now(),
		TimeNow:   time.Now,
	}

	r := chi.NewRouter()
	r.Get("/bookmarks", ListBookmarks(d))
	r.Post("/bookmarks", CreateBookmark(d))
	r.Delete("/bookmarks/{id}", DeleteBookmark(d))
	return r
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListEmptyStore(t *testing.T) {
	r := setupRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/bookmarks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data  []domain.Bookmark `json:"data"`
		Count int               `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Count != 0 || len(resp.Data) != 0 {
		t.Errorf("Expected empty data and count 0, got %+v", resp)
	}
	if resp.Data == nil {
		t.Error("Expected data to be an empty array, not null")
	}
}

func TestCreateAndList(t *testing.T) {
	r := setupRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/bookmarks",
		`{"label":"Example","url":"http://example.com/a"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var created domain.Bookmark
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode created bookmark: %v", err)
	}
	if created.ID == 0 {
		t.Error("Expected non-zero id")
	}
	if created.URL != "http://example.com/a" {
		t.Errorf("Expected normalized URL, got %s", created.URL)
	}
	if created.DateCreated.IsZero() || created.DateModified.IsZero() {
		t.Error("Expected both timestamps to be set")
	}

	rec = doRequest(t, r, http.MethodGet, "/bookmarks", "")
	var resp struct {
		Data  []domain.Bookmark `json:"data"`
		Count int               `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode list: %v", err)
	}
	if resp.Count != 1 || len(resp.Data) != 1 {
		t.Fatalf("Expected one bookmark, got %+v", resp)
	}
	if resp.Data[0].Label != "Example" || resp.Data[0].URL != "http://example.com/a" {
		t.Errorf("Round-trip mismatch: %+v", resp.Data[0])
	}
}

func TestCreateDuplicateReturns409(t *testing.T) {
	r := setupRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/bookmarks",
		`{"label":"Docs","url":"https://docs.rs"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("First create: expected 200, got %d", rec.Code)
	}

	rec = doRequest(t, r, http.MethodPost, "/bookmarks",
		`{"label":"Docs2","url":"https://docs.rs"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", rec.Code)
	}

	var resp struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error: %v", err)
	}
	want := "[Server Error] Bookmark with label: Docs already exists for https://docs.rs"
	if resp.Detail != want {
		t.Errorf("Detail = %q, want %q", resp.Detail, want)
	}

	// The conflict must not have grown the store.
	rec = doRequest(t, r, http.MethodGet, "/bookmarks", "")
	var list struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("Failed to decode list: %v", err)
	}
	if list.Count != 1 {
		t.Errorf("Expected count 1 after duplicate, got %d", list.Count)
	}
}

func TestCreateMalformedURLReturns422(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing scheme",
			body: `{"url":"example.com"}`,
		},
		{
			name: "empty url",
			body: `{"url":""}`,
		},
		{
			name: "invalid json",
			body: `{"url":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, r, http.MethodPost, "/bookmarks", tt.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("Expected 422, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestDeleteBookmark(t *testing.T) {
	r := setupRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/bookmarks",
		`{"label":"Example","url":"http://example.com/a"}`)
	var created domain.Bookmark
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode created bookmark: %v", err)
	}

	rec = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/bookmarks/%d", created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	want := fmt.Sprintf("Bookmark Deleted: ID: %d\tlabel: Example\turl: http://example.com/a", created.ID)
	if rec.Body.String() != want {
		t.Errorf("Confirmation = %q, want %q", rec.Body.String(), want)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Expected text/plain confirmation, got %s", ct)
	}

	rec = doRequest(t, r, http.MethodGet, "/bookmarks", "")
	var list struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("Failed to decode list: %v", err)
	}
	if list.Count != 0 {
		t.Errorf("Expected empty store after delete, got count %d", list.Count)
	}
}

func TestDeleteMissingReturns404(t *testing.T) {
	r := setupRouter(t)

	rec := doRequest(t, r, http.MethodDelete, "/bookmarks/999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}

	want := `{"detail":"Bookmark not found"}`
	if strings.TrimSpace(rec.Body.String()) != want {
		t.Errorf("Body = %q, want %q", strings.TrimSpace(rec.Body.String()), want)
	}
}

func TestDeleteNonIntegerIDReturns422(t *testing.T) {
	r := setupRouter(t)

	rec := doRequest(t, r, http.MethodDelete, "/bookmarks/abc", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d", rec.Code)
	}
}
