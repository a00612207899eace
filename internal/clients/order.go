package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
)

type OrderClient struct {
	*Client
}

func NewOrderClient(c *Client) *OrderClient {
	return &OrderClient{Client: c}
}

func (o *OrderClient) List(ctx context.Context) ([]models.Order, error) {

	orders := []models.Order{}
	if err := o.Do(ctx, http.MethodGet, "/api/orders", nil, nil, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (o *OrderClient) Get(ctx context.Context, id string) (*models.Order, error) {

	var order models.Order
	if err := o.Do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, nil, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// Create returns the id of the new order.
func (o *OrderClient) Create(ctx context.Context, order *models.OrderCreate) (string, error) {

	var resp struct {
		OrderID string `json:"order_id"`
		Message string `json:"message"`
	}

	if err := o.Do(ctx, http.MethodPost, "/api/orders", nil, order, &resp); err != nil {
		return "", err
	}

	return resp.OrderID, nil
}

// UpdateStatus only succeeds for orders owned by the caller.
func (o *OrderClient) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {

	params := url.Values{}
	params.Set("status", string(status))

	return o.Do(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(id)+"/status", params, nil, nil)
}
