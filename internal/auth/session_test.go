package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewManager("test-secret")

	token, err := manager.GenerateToken("user-1", "fr", true)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	session, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if session.UserID != "user-1" {
		t.Errorf("Expected user-1, got %s", session.UserID)
	}
	if session.Locale != "fr" {
		t.Errorf("Expected locale fr, got %s", session.Locale)
	}
	if !session.Admin {
		t.Error("Expected admin flag to round trip")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").GenerateToken("user-1", "en", false)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := NewManager("secret-b").ValidateToken(token); err == nil {
		t.Error("Expected validation to fail with wrong secret")
	}
}

func TestMiddlewareResolvesSession(t *testing.T) {
	manager := NewManager("test-secret")
	token, err := manager.GenerateToken("user-1", "en", false)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := manager.Middleware()(func(c echo.Context) error {
		session, ok := SessionFrom(c)
		if !ok {
			t.Fatal("Expected session on context")
		}
		if session.UserID != "user-1" {
			t.Errorf("Expected user-1, got %s", session.UserID)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	manager := NewManager("test-secret")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := manager.Middleware()(func(c echo.Context) error {
		t.Fatal("Handler should not run without a token")
		return nil
	})

	err := handler(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %v", err)
	}
}
