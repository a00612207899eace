package middleware

import (
	"net/http"
	"time"
)

const (
	DefaultSessionCookie = "access_token"
	GuestCartCookie      = "guest_cart_id"
)

type CookieOptions struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// SetSessionCookie stores the access token for browser sessions.
func SetSessionCookie(w http.ResponseWriter, opts CookieOptions, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func GuestCartID(r *http.Request) string {
	if cookie, err := r.Cookie(GuestCartCookie); err == nil {
		return cookie.Value
	}

	return ""
}

func SetGuestCartCookie(w http.ResponseWriter, id string, maxAge time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     GuestCartCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearGuestCartCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   GuestCartCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
