package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging(t *testing.T) {
	t.Run("Success - Propagates incoming request id", func(t *testing.T) {
		var seen string

		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.RequestIDFromContext(r.Context())
			require.NotNil(t, middleware.LoggerFromContext(r.Context()))
			w.WriteHeader(http.StatusAccepted)
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/home", nil)
		req.Header.Set("X-Request-ID", "req-42")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusAccepted, rr.Code)
		assert.Equal(t, "req-42", rr.Header().Get("X-Request-ID"))
		assert.Equal(t, "req-42", seen)
	})

	t.Run("Success - Generates request id", func(t *testing.T) {
		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})
}

func TestSessionCookies(t *testing.T) {
	rr := httptest.NewRecorder()

	middleware.SetSessionCookie(rr, middleware.CookieOptions{Name: "access_token", MaxAge: 3600e9, Secure: true}, "tok")

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.GuestCartCookie, Value: "guest-1"})
	assert.Equal(t, "guest-1", middleware.GuestCartID(req))
}
