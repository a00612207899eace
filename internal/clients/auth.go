package clients

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
)

type AuthClient struct {
	*Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{Client: c}
}

func (a *AuthClient) Register(ctx context.Context, user *models.UserCreate) (*models.TokenResponse, error) {
	return a.token(ctx, "/api/auth/register", user)
}

func (a *AuthClient) Login(ctx context.Context, credentials *models.LoginRequest) (*models.TokenResponse, error) {
	return a.token(ctx, "/api/auth/login", credentials)
}

func (a *AuthClient) Google(ctx context.Context, req *models.GoogleAuthRequest) (*models.TokenResponse, error) {
	return a.token(ctx, "/api/auth/google", req)
}

// Me returns the profile of the token carried by ctx.
func (a *AuthClient) Me(ctx context.Context) (*models.UserResponse, error) {

	var user models.UserResponse
	if err := a.Do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (a *AuthClient) token(ctx context.Context, path string, body any) (*models.TokenResponse, error) {

	var resp models.TokenResponse
	if err := a.Do(ctx, http.MethodPost, path, nil, body, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
