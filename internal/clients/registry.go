package clients

import (
	"github.com/aaravmahajanofficial/shophub-storefront/internal/config"
)

// Registry bundles the clients of every backend service.
type Registry struct {
	Products *ProductClient
	Auth     *AuthClient
	Cart     *CartClient
	Orders   *OrderClient
	Payments *PaymentClient
	Admin    *AdminClient
}

func NewRegistry(cfg *config.Services) *Registry {

	opts := Options{
		Timeout:       cfg.Timeout,
		RetryAttempts: cfg.RetryAttempts,
		RetryDelay:    cfg.RetryDelay,
	}

	return &Registry{
		Products: NewProductClient(New("product", cfg.ProductURL, opts)),
		Auth:     NewAuthClient(New("auth", cfg.AuthURL, opts)),
		Cart:     NewCartClient(New("cart", cfg.CartURL, opts)),
		Orders:   NewOrderClient(New("order", cfg.OrderURL, opts)),
		Payments: NewPaymentClient(New("payment", cfg.PaymentURL, opts)),
		Admin:    NewAdminClient(New("admin", cfg.AdminURL, opts)),
	}
}

// All lists every client, used for health reporting.
func (r *Registry) All() []Pinger {
	return []Pinger{
		r.Products.Client,
		r.Auth.Client,
		r.Cart.Client,
		r.Orders.Client,
		r.Payments.Client,
		r.Admin.Client,
	}
}
