package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-match/internal/shared/auth"
)

func newAuthRouter(t *testing.T, signer *auth.Signer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(signer))
	r.GET("/api/v1/analyses", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserIDFromContext(c)})
	})
	r.POST("/api/v1/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST("/api/v1/feedback", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserIDFromContext(c)})
	})
	return r
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r := newAuthRouter(t, auth.NewSigner("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthRejectsForgedToken(t *testing.T) {
	signer := auth.NewSigner("test-secret")
	other := auth.NewSigner("other-secret")
	token, err := other.Sign("user-1", "a@b.com", "ab")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	r := newAuthRouter(t, signer)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthAcceptsValidToken(t *testing.T) {
	signer := auth.NewSigner("test-secret")
	token, err := signer.Sign("user-1", "a@b.com", "ab")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	r := newAuthRouter(t, signer)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAuthAllowsAnonymousFeedback(t *testing.T) {
	r := newAuthRouter(t, auth.NewSigner("test-secret"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected anonymous feedback to pass, got %d", resp.Code)
	}
	if got := resp.Body.String(); got != `{"userId":""}` {
		t.Fatalf("expected empty identity, got %s", got)
	}
}

func TestAuthAttachesIdentityOnFeedbackWhenTokenValid(t *testing.T) {
	signer := auth.NewSigner("test-secret")
	token, err := signer.Sign("user-1", "a@b.com", "ab")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	r := newAuthRouter(t, signer)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Body.String(); got != `{"userId":"user-1"}` {
		t.Fatalf("expected identity attached, got %s", got)
	}
}

func TestAuthSkipsOpenPaths(t *testing.T) {
	r := newAuthRouter(t, auth.NewSigner("test-secret"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 on open path, got %d", resp.Code)
	}
}
