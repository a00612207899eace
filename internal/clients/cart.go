package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
)

type CartClient struct {
	*Client
}

func NewCartClient(c *Client) *CartClient {
	return &CartClient{Client: c}
}

func (c *CartClient) Get(ctx context.Context) (*models.CartResponse, error) {

	var cart models.CartResponse
	if err := c.Do(ctx, http.MethodGet, "/api/cart/", nil, nil, &cart); err != nil {
		return nil, err
	}

	if cart.Items == nil {
		cart.Items = []models.CartItemResponse{}
	}

	return &cart, nil
}

func (c *CartClient) Add(ctx context.Context, item models.CartItem) error {
	return c.Do(ctx, http.MethodPost, "/api/cart/add", nil, item, nil)
}

func (c *CartClient) Remove(ctx context.Context, productID int) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/remove/%d", productID), nil, nil, nil)
}

func (c *CartClient) UpdateQuantity(ctx context.Context, productID, quantity int) error {
	return c.Do(ctx, http.MethodPut, fmt.Sprintf("/api/cart/update/%d/%d", productID, quantity), nil, nil, nil)
}
