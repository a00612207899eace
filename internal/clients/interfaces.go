package clients

import (
	"context"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
)

// Service layers depend on these so tests can swap in mocks.

type ProductAPI interface {
	List(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type AuthAPI interface {
	Register(ctx context.Context, user *models.UserCreate) (*models.TokenResponse, error)
	Login(ctx context.Context, credentials *models.LoginRequest) (*models.TokenResponse, error)
	Google(ctx context.Context, req *models.GoogleAuthRequest) (*models.TokenResponse, error)
	Me(ctx context.Context) (*models.UserResponse, error)
}

type CartAPI interface {
	Get(ctx context.Context) (*models.CartResponse, error)
	Add(ctx context.Context, item models.CartItem) error
	Remove(ctx context.Context, productID int) error
	UpdateQuantity(ctx context.Context, productID, quantity int) error
}

type OrderAPI interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.OrderCreate) (string, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}

type PaymentAPI interface {
	CreateOrder(ctx context.Context) (*models.PaymentOrder, error)
	Verify(ctx context.Context, verification *models.PaymentVerification) (*models.PaymentVerificationResponse, error)
}

type AdminAPI interface {
	Dashboard(ctx context.Context) (*models.DashboardResponse, error)
	Users(ctx context.Context) ([]models.AdminUser, error)
	Orders(ctx context.Context) ([]models.AdminOrder, error)
	CreateProduct(ctx context.Context, product *models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, product *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
}

// Pinger is satisfied by every *Client.
type Pinger interface {
	Service() string
	Ping(ctx context.Context) error
}

var (
	_ ProductAPI = (*ProductClient)(nil)
	_ AuthAPI    = (*AuthClient)(nil)
	_ CartAPI    = (*CartClient)(nil)
	_ OrderAPI   = (*OrderClient)(nil)
	_ PaymentAPI = (*PaymentClient)(nil)
	_ AdminAPI   = (*AdminClient)(nil)
	_ Pinger     = (*Client)(nil)
)
