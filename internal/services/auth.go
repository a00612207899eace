package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/cache"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/clients"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/shophub-storefront/internal/repositories"
)

const msgInvalidCredentials = "Invalid email or password"

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error)
	GoogleLogin(ctx context.Context, req *models.GoogleAuthRequest) (*models.TokenResponse, error)
	Me(ctx context.Context, claims *models.Claims) (*models.UserResponse, error)
	IsAdmin(ctx context.Context, claims *models.Claims) (bool, error)
}

type authService struct {
	auth       clients.AuthAPI
	rateLimit  repository.RateLimitRepository
	cache      cache.Cache
	profileTTL time.Duration
}

func NewAuthService(auth clients.AuthAPI, rateLimit repository.RateLimitRepository, store cache.Cache, profileTTL time.Duration) AuthService {
	return &authService{auth: auth, rateLimit: rateLimit, cache: store, profileTTL: profileTTL}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error) {

	resp, err := s.auth.Register(ctx, &models.UserCreate{
		Email:    strings.TrimSpace(req.Email),
		FullName: strings.TrimSpace(req.FullName),
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	s.storeProfile(ctx, &resp.User)

	return resp, nil
}

// Login is rate limited per email. A successful login resets the counter.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	allowed, remaining, retryAfter, err := s.rateLimit.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		logger.Warn("Login rate limit exceeded", slog.Int("retryAfter", retryAfter))
		return nil, errors.TooManyRequestsError(
			fmt.Sprintf("Too many login attempts. Please try again in %d seconds.", retryAfter),
		).WithRetryAfter(retryAfter)
	}

	resp, err := s.auth.Login(ctx, &models.LoginRequest{Email: strings.TrimSpace(req.Email), Password: req.Password})
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && (appErr.StatusCode == 401 || appErr.StatusCode == 400) {
			return nil, errors.UnauthorizedError(msgInvalidCredentials).
				WithDetail(fmt.Sprintf("%d attempts remaining", remaining)).
				WithError(err)
		}

		return nil, err
	}

	if err := s.rateLimit.ResetLoginAttempts(ctx, req.Email); err != nil {
		logger.Warn("Failed to reset login attempts", slog.Any("error", err))
	}

	s.storeProfile(ctx, &resp.User)

	return resp, nil
}

func (s *authService) GoogleLogin(ctx context.Context, req *models.GoogleAuthRequest) (*models.TokenResponse, error) {

	resp, err := s.auth.Google(ctx, req)
	if err != nil {
		return nil, err
	}

	s.storeProfile(ctx, &resp.User)

	return resp, nil
}

// Me returns the profile of the token in ctx, cached per user.
func (s *authService) Me(ctx context.Context, claims *models.Claims) (*models.UserResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	if claims != nil && claims.UserID != "" {
		var profile models.UserResponse

		found, err := s.cache.Get(ctx, cache.Key(cache.ProfileKeyPrefix, claims.UserID), &profile)
		if err != nil {
			logger.Warn("Cache read failed", slog.String("key", cache.ProfileKeyPrefix), slog.Any("error", err))
		}

		if found {
			return &profile, nil
		}
	}

	profile, err := s.auth.Me(ctx)
	if err != nil {
		return nil, err
	}

	s.storeProfile(ctx, profile)

	return profile, nil
}

// IsAdmin trusts the is_admin claim and falls back to the profile.
func (s *authService) IsAdmin(ctx context.Context, claims *models.Claims) (bool, error) {

	if claims == nil {
		return false, nil
	}

	if claims.IsAdmin {
		return true, nil
	}

	profile, err := s.Me(ctx, claims)
	if err != nil {
		return false, err
	}

	return profile.IsAdmin, nil
}

func (s *authService) storeProfile(ctx context.Context, profile *models.UserResponse) {

	if profile == nil || profile.ID == "" {
		return
	}

	if err := s.cache.Set(ctx, cache.Key(cache.ProfileKeyPrefix, profile.ID), profile, s.profileTTL); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cache write failed", slog.String("key", cache.ProfileKeyPrefix), slog.Any("error", err))
	}
}
