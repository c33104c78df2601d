package feedback

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := NewMemoryRepo()
	handler := NewHandler(NewService(repo))
	r := gin.New()
	api := r.Group("/api/v1")
	handler.RegisterRoutes(api)
	return r, repo
}

func TestSubmitHandlerAcceptsAnonymous(t *testing.T) {
	r, repo := newTestRouter(t)

	body := `{"rating": 4, "message": "helpful", "category": "ui"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var entry Feedback
	if err := json.Unmarshal(w.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if entry.Rating != 4 || entry.Category != "ui" {
		t.Fatalf("unexpected response: %+v", entry)
	}
	items := repo.All()
	if len(items) != 1 || items[0].UserID != "" {
		t.Fatalf("expected one anonymous entry, got %+v", items)
	}
}

func TestSubmitHandlerRejectsOutOfRangeRating(t *testing.T) {
	r, _ := newTestRouter(t)

	body := `{"rating": 9, "message": "helpful"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "rating must be between 1 and 5") {
		t.Fatalf("expected rating validation message, got %s", w.Body.String())
	}
}

func TestSubmitHandlerRequiresBodyFields(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
