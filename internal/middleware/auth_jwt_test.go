package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ozgunabanoz/shopping-site-project/internal/config"
	"github.com/ozgunabanoz/shopping-site-project/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, sub interface{}, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	s, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return s
}

func callWithAuth(t *testing.T, setup func(req *http.Request)) (*httptest.ResponseRecorder, int64) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	setup(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUserID int64
	next := func(c echo.Context) error {
		gotUserID, _ = c.Get(middleware.CtxUserIDKey).(int64)
		return c.NoContent(http.StatusOK)
	}

	mw := middleware.AuthJWT(config.Config{JWTSecret: testSecret})
	assert.NoError(t, mw(next)(c))
	return rec, gotUserID
}

func TestAuthJWT_SessionCookie(t *testing.T) {
	token := signToken(t, testSecret, 7, time.Hour)

	rec, userID := callWithAuth(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), userID)
}

func TestAuthJWT_BearerHeader(t *testing.T) {
	token := signToken(t, testSecret, 7, time.Hour)

	rec, userID := callWithAuth(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), userID)
}

func TestAuthJWT_MissingToken(t *testing.T) {
	rec, _ := callWithAuth(t, func(req *http.Request) {})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, 7, -time.Hour)

	rec, _ := callWithAuth(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", 7, time.Hour)

	rec, _ := callWithAuth(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
