package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	service "github.com/aaravmahajanofficial/shophub-storefront/internal/services"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService service.AuthService
	cartService service.CartService
	cookie      middleware.CookieOptions
	validator   *validator.Validate
}

func NewAuthHandler(authService service.AuthService, cartService service.CartService, cookie middleware.CookieOptions) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = middleware.DefaultSessionCookie
	}

	if cookie.MaxAge <= 0 {
		cookie.MaxAge = 7 * 24 * time.Hour
	}

	return &AuthHandler{authService: authService, cartService: cartService, cookie: cookie, validator: utils.NewValidator()}
}

// Register godoc
//	@Summary		Register a new account
//	@Description	Creates the account, starts a session cookie and merges any guest cart into it.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	models.LoginResponse
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or email already registered"
//	@Failure		503		{object}	response.ErrorResponse	"Auth service unreachable"
//	@Router			/auth/register [post]
func (h *AuthHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid registration input")
			return
		}

		token, err := h.authService.Register(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to register user", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User registered", slog.String("userId", token.User.ID))
		response.Success(w, http.StatusCreated, h.startSession(w, r, token))
	}
}

// Login godoc
//	@Summary		Sign in
//	@Description	Authenticates with email and password. Repeated failures are rate limited per email.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest	true	"Login credentials"
//	@Success		200			{object}	models.LoginResponse
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		401			{object}	response.ErrorResponse	"Invalid email or password"
//	@Failure		429			{object}	response.ErrorResponse	"Too many login attempts"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		token, err := h.authService.Login(r.Context(), &req)
		if err != nil {
			logger.Warn("Login failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User logged in", slog.String("userId", token.User.ID))
		response.Success(w, http.StatusOK, h.startSession(w, r, token))
	}
}

// GoogleLogin godoc
//	@Summary		Sign in with Google
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			token	body		models.GoogleAuthRequest	true	"Google ID token"
//	@Success		200		{object}	models.LoginResponse
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Google token rejected"
//	@Router			/auth/google [post]
func (h *AuthHandler) GoogleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.GoogleAuthRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid google login input")
			return
		}

		token, err := h.authService.GoogleLogin(r.Context(), &req)
		if err != nil {
			logger.Warn("Google login failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User logged in with google", slog.String("userId", token.User.ID))
		response.Success(w, http.StatusOK, h.startSession(w, r, token))
	}
}

// Logout godoc
//	@Summary	Sign out
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/auth/logout [post]
func (h *AuthHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		middleware.ClearSessionCookie(w, h.cookie.Name)

		middleware.LoggerFromContext(r.Context()).Info("User logged out")
		response.Success(w, http.StatusOK, map[string]string{"message": "Logged out"})
	}
}

// Me godoc
//	@Summary	Current user profile
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	models.UserResponse
//	@Failure	401	{object}	response.ErrorResponse	"Authentication required"
//	@Security	BearerAuth
//	@Router		/auth/me [get]
func (h *AuthHandler) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized profile access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		user, err := h.authService.Me(r.Context(), claims)
		if err != nil {
			logger.Error("Failed to fetch profile", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

// startSession sets the session cookie and moves the guest cart, if any, to the new account.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, token *models.TokenResponse) *models.LoginResponse {

	logger := middleware.LoggerFromContext(r.Context())

	middleware.SetSessionCookie(w, h.cookie, token.AccessToken)

	tokenType := token.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}

	resp := &models.LoginResponse{
		Token:     token.AccessToken,
		TokenType: tokenType,
		User:      token.User,
	}

	guestID := middleware.GuestCartID(r)
	if guestID == "" {
		return resp
	}

	claims := &models.Claims{UserID: token.User.ID, Email: token.User.Email, IsAdmin: token.User.IsAdmin}
	ctx := middleware.WithSession(r.Context(), claims, token.AccessToken)

	cart, err := h.cartService.MergeGuestCart(ctx, guestID)
	if err != nil {
		logger.Warn("Failed to merge guest cart", slog.String("guestCartId", guestID), slog.Any("error", err))
		return resp
	}

	middleware.ClearGuestCartCookie(w)
	resp.Cart = cart

	return resp
}
