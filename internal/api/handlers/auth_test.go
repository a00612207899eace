package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var sessionCookie = middleware.CookieOptions{Name: "access_token", MaxAge: time.Hour}

func tokenFor(userID string) *models.TokenResponse {
	return &models.TokenResponse{
		AccessToken: "issued-token",
		User:        models.UserResponse{ID: userID, Email: "jane@example.com", FullName: "Jane Doe"},
	}
}

func TestLogin(t *testing.T) {
	loginReq := models.LoginRequest{Email: "jane@example.com", Password: "Secret123"}

	t.Run("Success - Session cookie set", func(t *testing.T) {
		// Arrange
		mockAuthService := mocks.NewAuthService(t)
		mockCartService := mocks.NewCartService(t)
		authHandler := handlers.NewAuthHandler(mockAuthService, mockCartService, sessionCookie)

		mockAuthService.On("Login", mock.Anything, &loginReq).Return(tokenFor("u-1"), nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/auth/login", jsonBody(t, loginReq), nil)
		rr := httptest.NewRecorder()

		// Act
		authHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var login models.LoginResponse
		resp := decodeResponse(t, rr, &login)
		assert.True(t, resp.Success)
		assert.Equal(t, "issued-token", login.Token)
		assert.Equal(t, "bearer", login.TokenType)
		assert.Nil(t, login.Cart)

		cookie := findCookie(rr, "access_token")
		require.NotNil(t, cookie)
		assert.Equal(t, "issued-token", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, 3600, cookie.MaxAge)
	})

	t.Run("Success - Guest cart merged", func(t *testing.T) {
		mockAuthService := mocks.NewAuthService(t)
		mockCartService := mocks.NewCartService(t)
		authHandler := handlers.NewAuthHandler(mockAuthService, mockCartService, sessionCookie)

		merged := &models.Cart{Items: []models.CartItemResponse{{ProductID: 7, Quantity: 2}}, ItemCount: 2, Synced: true}

		mockAuthService.On("Login", mock.Anything, &loginReq).Return(tokenFor("u-1"), nil).Once()
		mockCartService.On("MergeGuestCart", mock.MatchedBy(func(ctx context.Context) bool {
			claims, ok := middleware.ClaimsFromContext(ctx)
			return ok && claims.UserID == "u-1" && middleware.TokenFromContext(ctx) == "issued-token"
		}), "guest-1").Return(merged, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/auth/login", jsonBody(t, loginReq), nil)
		req.AddCookie(&http.Cookie{Name: middleware.GuestCartCookie, Value: "guest-1"})
		rr := httptest.NewRecorder()

		authHandler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var login models.LoginResponse
		decodeResponse(t, rr, &login)
		require.NotNil(t, login.Cart)
		assert.Equal(t, 2, login.Cart.ItemCount)

		guestCookie := findCookie(rr, middleware.GuestCartCookie)
		require.NotNil(t, guestCookie)
		assert.Equal(t, -1, guestCookie.MaxAge)
	})

	t.Run("Success - Merge failure keeps login", func(t *testing.T) {
		mockAuthService := mocks.NewAuthService(t)
		mockCartService := mocks.NewCartService(t)
		authHandler := handlers.NewAuthHandler(mockAuthService, mockCartService, sessionCookie)

		mockAuthService.On("Login", mock.Anything, &loginReq).Return(tokenFor("u-1"), nil).Once()
		mockCartService.On("MergeGuestCart", mock.Anything, "guest-1").
			Return(nil, appErrors.Unavailable("cart", assert.AnError)).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/auth/login", jsonBody(t, loginReq), nil)
		req.AddCookie(&http.Cookie{Name: middleware.GuestCartCookie, Value: "guest-1"})
		rr := httptest.NewRecorder()

		authHandler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, findCookie(rr, middleware.GuestCartCookie), "guest cart is kept for a later retry")
	})

	t.Run("Failure - Rate limited", func(t *testing.T) {
		mockAuthService := mocks.NewAuthService(t)
		authHandler := handlers.NewAuthHandler(mockAuthService, mocks.NewCartService(t), sessionCookie)

		mockAuthService.On("Login", mock.Anything, &loginReq).
			Return(nil, appErrors.TooManyRequestsError("Too many login attempts. Please try again in 60 seconds.").WithRetryAfter(60)).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/auth/login", jsonBody(t, loginReq), nil)
		rr := httptest.NewRecorder()

		authHandler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "60", rr.Header().Get("Retry-After"))
		assert.Nil(t, findCookie(rr, "access_token"))
	})

	t.Run("Failure - Invalid email", func(t *testing.T) {
		authHandler := handlers.NewAuthHandler(mocks.NewAuthService(t), mocks.NewCartService(t), sessionCookie)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/auth/login",
			jsonBody(t, models.LoginRequest{Email: "not-an-email", Password: "x"}), nil)
		rr := httptest.NewRecorder()

		authHandler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResponse(t, rr, nil)
		assert.Equal(t, []string{"Field email must be a valid email address"}, resp.Error.Details)
	})
}

func TestRegister(t *testing.T) {
	t.Run("Success - Account created", func(t *testing.T) {
		mockAuthService := mocks.NewAuthService(t)
		authHandler := handlers.NewAuthHandler(mockAuthService, mocks.NewCartService(t), sessionCookie)

		registerReq := models.RegisterRequest{
			FullName:        "Jane Doe",
			Email:           "jane@example.com",
			Password:        "Secret123",
			ConfirmPassword: "Secret123",
		}

		mockAuthService.On("Register", mock.Anything, &registerReq).Return(tokenFor("u-2"), nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/auth/register", jsonBody(t, registerReq), nil)
		rr := httptest.NewRecorder()

		authHandler.Register().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, findCookie(rr, "access_token"))
	})

	t.Run("Failure - Passwords do not match", func(t *testing.T) {
		authHandler := handlers.NewAuthHandler(mocks.NewAuthService(t), mocks.NewCartService(t), sessionCookie)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/auth/register", jsonBody(t, models.RegisterRequest{
			FullName:        "Jane Doe",
			Email:           "jane@example.com",
			Password:        "Secret123",
			ConfirmPassword: "Secret321",
		}), nil)
		rr := httptest.NewRecorder()

		authHandler.Register().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResponse(t, rr, nil)
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
	})
}

func TestLogoutAndMe(t *testing.T) {
	t.Run("Success - Logout clears cookie", func(t *testing.T) {
		authHandler := handlers.NewAuthHandler(mocks.NewAuthService(t), mocks.NewCartService(t), sessionCookie)

		rr := httptest.NewRecorder()
		authHandler.Logout().ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodPost, "/auth/logout", nil, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		cookie := findCookie(rr, "access_token")
		require.NotNil(t, cookie)
		assert.Equal(t, -1, cookie.MaxAge)
	})

	t.Run("Success - Profile", func(t *testing.T) {
		mockAuthService := mocks.NewAuthService(t)
		authHandler := handlers.NewAuthHandler(mockAuthService, mocks.NewCartService(t), sessionCookie)

		mockAuthService.On("Me", mock.Anything, mock.MatchedBy(func(c *models.Claims) bool { return c.UserID == "u-1" })).
			Return(&models.UserResponse{ID: "u-1", Email: "jane@example.com"}, nil).Once()

		rr := httptest.NewRecorder()
		authHandler.Me().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodGet, "/auth/me", nil, "u-1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)

		var user models.UserResponse
		decodeResponse(t, rr, &user)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("Failure - Profile without session", func(t *testing.T) {
		authHandler := handlers.NewAuthHandler(mocks.NewAuthService(t), mocks.NewCartService(t), sessionCookie)

		rr := httptest.NewRecorder()
		authHandler.Me().ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodGet, "/auth/me", nil, nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
