package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

const testToken = "nw_secret_token_1234"

func runAuth(t *testing.T, m *APITokenAuthMiddleware, req *http.Request) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerCalled := false
	handler := func(c echo.Context) error {
		handlerCalled = true
		return c.String(http.StatusOK, "OK")
	}

	if err := m.Authenticate()(handler)(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	return rec, handlerCalled
}

func TestAPITokenAuth_Success(t *testing.T) {
	e := echo.New()
	m := NewAPITokenAuthMiddleware(testToken)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerCalled := false
	handler := func(c echo.Context) error {
		handlerCalled = true
		if !IsAPITokenAuth(c) {
			t.Error("Expected IsAPITokenAuth to be true")
		}
		if key := GetClientKey(c); key != "token:****1234" {
			t.Errorf("Expected token client key, got %s", key)
		}
		return c.String(http.StatusOK, "OK")
	}

	if err := m.Authenticate()(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !handlerCalled {
		t.Error("Handler was not called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestAPITokenAuth_DisabledWhenEmpty(t *testing.T) {
	m := NewAPITokenAuthMiddleware("")
	if m.Enabled() {
		t.Fatal("Expected middleware to be disabled")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil)
	rec, called := runAuth(t, m, req)
	if !called {
		t.Error("Handler should be called when no token is configured")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestAPITokenAuth_MissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil)
	rec, called := runAuth(t, NewAPITokenAuthMiddleware(testToken), req)
	if called {
		t.Error("Handler should not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestAPITokenAuth_InvalidFormat(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil)
	req.Header.Set("Authorization", "Invalid format")
	rec, called := runAuth(t, NewAPITokenAuthMiddleware(testToken), req)
	if called {
		t.Error("Handler should not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestAPITokenAuth_WrongToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil)
	req.Header.Set("Authorization", "Bearer not-the-token")
	rec, called := runAuth(t, NewAPITokenAuthMiddleware(testToken), req)
	if called {
		t.Error("Handler should not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestAPITokenAuth_QueryParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ws?token="+testToken, nil)
	rec, called := runAuth(t, NewAPITokenAuthMiddleware(testToken), req)
	if !called {
		t.Error("Handler should be called for a valid query token")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestGetClientKey_FallsBackToIP(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	c := e.NewContext(req, httptest.NewRecorder())

	if key := GetClientKey(c); key != "ip:10.1.2.3" {
		t.Errorf("Expected ip client key, got %s", key)
	}
	if IsAPITokenAuth(c) {
		t.Error("Expected IsAPITokenAuth to be false")
	}
}
