package clients

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
)

type PaymentClient struct {
	*Client
}

func NewPaymentClient(c *Client) *PaymentClient {
	return &PaymentClient{Client: c}
}

// CreateOrder opens a razorpay order for the caller's current cart.
func (p *PaymentClient) CreateOrder(ctx context.Context) (*models.PaymentOrder, error) {

	var order models.PaymentOrder
	if err := p.Do(ctx, http.MethodPost, "/api/payments/create-order", nil, nil, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// Verify checks the razorpay signature. On success the payment service records
// the order and empties the cart.
func (p *PaymentClient) Verify(ctx context.Context, verification *models.PaymentVerification) (*models.PaymentVerificationResponse, error) {

	var resp models.PaymentVerificationResponse
	if err := p.Do(ctx, http.MethodPost, "/api/payments/verify", nil, verification, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
