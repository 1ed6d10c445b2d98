package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"charge-finder/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, isAdmin bool, expiresIn time.Duration) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID:  "user-1",
		Email:   "user@example.com",
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func doRequest(t *testing.T, authHeader string, adminGate bool) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()

	handler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"user": c.Get("userID").(string)})
	}
	middlewares := []echo.MiddlewareFunc{JWTAuth(testSecret)}
	if adminGate {
		middlewares = append(middlewares, AdminRequired())
	}
	e.GET("/protected", handler, middlewares...)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec := doRequest(t, "", false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	rec := doRequest(t, "Bearer "+signedToken(t, false, time.Hour), false)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with valid token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	rec := doRequest(t, "Bearer "+signedToken(t, false, -time.Hour), false)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for expired token, got %d", rec.Code)
	}
}

func TestJWTAuthGarbageToken(t *testing.T) {
	rec := doRequest(t, "Bearer not.a.token", false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for malformed token, got %d", rec.Code)
	}
}

func TestAdminRequiredRejectsPlainUser(t *testing.T) {
	rec := doRequest(t, "Bearer "+signedToken(t, false, time.Hour), true)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin, got %d", rec.Code)
	}
}

func TestAdminRequiredAllowsAdmin(t *testing.T) {
	rec := doRequest(t, "Bearer "+signedToken(t, true, time.Hour), true)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d: %s", rec.Code, rec.Body.String())
	}
}
