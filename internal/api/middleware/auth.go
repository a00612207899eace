package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey uuid.UUID

var (
	UserContextKey  = contextKey(uuid.New())
	tokenContextKey = contextKey(uuid.New())
	requestIDKey    = contextKey(uuid.New())
)

// AdminChecker resolves admin rights for tokens that lack the is_admin claim.
type AdminChecker interface {
	IsAdmin(ctx context.Context, claims *models.Claims) (bool, error)
}

type AuthMiddleware struct {
	jwtKey     []byte
	cookieName string
}

func NewAuthMiddleware(jwtKey []byte, cookieName string) *AuthMiddleware {

	if cookieName == "" {
		cookieName = DefaultSessionCookie
	}

	return &AuthMiddleware{jwtKey: jwtKey, cookieName: cookieName}

}

// Authenticate requires a valid session, taken from the Authorization header or the session cookie.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		tokenString, err := m.extractToken(r)
		if err != nil {
			logger.Warn("Missing or malformed credentials", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		claims, err := m.parse(r.Context(), tokenString)
		if err != nil {
			if appErr, ok := errors.IsAppError(err); ok && appErr.StatusCode == http.StatusUnauthorized {
				ClearSessionCookie(w, m.cookieName)
			}
			response.Error(w, err)
			return
		}

		sw := &sessionWriter{ResponseWriter: w, cookieName: m.cookieName}
		next.ServeHTTP(sw, r.WithContext(m.withClaims(r.Context(), claims, tokenString)))
	}
}

// sessionWriter drops the session cookie when a backend service rejects the token.
type sessionWriter struct {
	http.ResponseWriter
	cookieName string
}

func (sw *sessionWriter) WriteHeader(code int) {
	if code == http.StatusUnauthorized {
		ClearSessionCookie(sw.ResponseWriter, sw.cookieName)
	}

	sw.ResponseWriter.WriteHeader(code)
}

// OptionalAuth attaches the session when one is present and valid, and otherwise lets the request through as a guest.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		tokenString, err := m.extractToken(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.parse(r.Context(), tokenString)
		if err != nil {
			LoggerFromContext(r.Context()).Debug("Ignoring invalid session on optional route", slog.String("error", err.Error()))
			next.ServeHTTP(w, r)
			return
		}

		sw := &sessionWriter{ResponseWriter: w, cookieName: m.cookieName}
		next.ServeHTTP(sw, r.WithContext(m.withClaims(r.Context(), claims, tokenString)))
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(checker AdminChecker, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		isAdmin := claims.IsAdmin
		if !isAdmin && checker != nil {
			var err error

			isAdmin, err = checker.IsAdmin(r.Context(), claims)
			if err != nil {
				logger.Error("Failed to resolve admin access", slog.String("error", err.Error()))
				response.Error(w, err)
				return
			}
		}

		if !isAdmin {
			logger.Warn("Non-admin user attempted admin access")
			response.Error(w, errors.ForbiddenError(errors.MsgAccessDenied))
			return
		}

		next.ServeHTTP(w, r)
	}
}

func (m *AuthMiddleware) extractToken(r *http.Request) (string, error) {

	// Token is of format : "Bearer <token>"
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return "", errors.UnauthorizedError("Invalid authorization format")
		}

		return tokenParts[1], nil
	}

	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", errors.UnauthorizedError("Authorization header is required")
}

func (m *AuthMiddleware) parse(ctx context.Context, tokenString string) (*models.Claims, error) {

	logger := LoggerFromContext(ctx)

	// Stores the decoded information
	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		// check the signing method
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			logger.Error("Unexpected signing method used in JWT", slog.Any("alg", t.Header["alg"]))
			return nil, errors.BadRequestError("unexpected signing method")
		}

		return m.jwtKey, nil
	})

	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}

		logger.Warn("JWT parsing failed", slog.String("error", err.Error()))
		return nil, errors.UnauthorizedError("Invalid or expired token")
	}

	if !token.Valid {
		logger.Warn("Invalid token")
		return nil, errors.UnauthorizedError("Invalid token")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		logger.Warn("Expired token", slog.String("userId", claims.UserID))
		return nil, errors.UnauthorizedError("Token expired")
	}

	if claims.UserID == "" {
		logger.Warn("Token without user id")
		return nil, errors.UnauthorizedError("Invalid token")
	}

	return claims, nil
}

func (m *AuthMiddleware) withClaims(ctx context.Context, claims *models.Claims, token string) context.Context {

	ctx = context.WithValue(ctx, UserContextKey, claims)
	ctx = context.WithValue(ctx, tokenContextKey, token)

	requestScopedLogger := LoggerFromContext(ctx).With(slog.String("userId", claims.UserID))
	ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

	requestScopedLogger.Debug("User authenticated")

	return ctx
}

func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)

	return claims, ok && claims != nil
}

// WithToken stores the raw bearer token forwarded to backend services.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)

	return token
}

// WithSession attaches a freshly issued session, e.g. right after login.
func WithSession(ctx context.Context, claims *models.Claims, token string) context.Context {
	ctx = context.WithValue(ctx, UserContextKey, claims)

	return WithToken(ctx, token)
}
