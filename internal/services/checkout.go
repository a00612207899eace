package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/clients"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/events"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
)

type CheckoutService interface {
	Start(ctx context.Context, claims *models.Claims, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
	Verify(ctx context.Context, claims *models.Claims, verification *models.PaymentVerification) (*models.CheckoutResponse, error)
}

type checkoutService struct {
	carts         CartService
	orders        clients.OrderAPI
	payments      clients.PaymentAPI
	notifications NotificationService
	publisher     events.Publisher
}

func NewCheckoutService(carts CartService, orders clients.OrderAPI, payments clients.PaymentAPI, notifications NotificationService, publisher events.Publisher) CheckoutService {
	return &checkoutService{
		carts:         carts,
		orders:        orders,
		payments:      payments,
		notifications: notifications,
		publisher:     publisher,
	}
}

// Start validates the cart and either opens a razorpay order or, for cash on
// delivery, places the order right away.
func (s *checkoutService) Start(ctx context.Context, claims *models.Claims, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {

	cart, err := s.carts.GetCart(ctx)
	if err != nil {
		return nil, err
	}

	if err := validateCheckoutCart(cart); err != nil {
		return nil, err
	}

	switch req.PaymentMethod {
	case models.PaymentMethodRazorpay:
		payment, err := s.payments.CreateOrder(ctx)
		if err != nil {
			return nil, err
		}

		return &models.CheckoutResponse{PaymentMethod: models.PaymentMethodRazorpay, Payment: payment, Total: cart.Total}, nil

	case models.PaymentMethodCOD:
		order, err := s.placeCashOnDelivery(ctx, claims, cart)
		if err != nil {
			return nil, err
		}

		s.afterOrderPlaced(ctx, claims, order, models.PaymentMethodCOD, &req.ShippingAddress)

		return &models.CheckoutResponse{PaymentMethod: models.PaymentMethodCOD, Order: order, Total: cart.Total}, nil
	}

	return nil, errors.ValidationError(fmt.Sprintf("Unsupported payment method: %s", req.PaymentMethod))
}

// Verify confirms a razorpay payment. The payment service records the order
// and clears the cart.
func (s *checkoutService) Verify(ctx context.Context, claims *models.Claims, verification *models.PaymentVerification) (*models.CheckoutResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	resp, err := s.payments.Verify(ctx, verification)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.Get(ctx, resp.OrderID)
	if err != nil {
		logger.Warn("Failed to load verified order", slog.String("orderId", resp.OrderID), slog.Any("error", err))
		order = &models.Order{OrderID: resp.OrderID, Status: models.OrderStatusConfirmed}
	}

	s.afterOrderPlaced(ctx, claims, order, models.PaymentMethodRazorpay, nil)

	return &models.CheckoutResponse{PaymentMethod: models.PaymentMethodRazorpay, Order: order, Total: order.TotalAmount}, nil
}

func (s *checkoutService) placeCashOnDelivery(ctx context.Context, claims *models.Claims, cart *models.Cart) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	create := &models.OrderCreate{
		UserID:      claims.UserID,
		TotalAmount: cart.Total,
		Status:      models.OrderStatusPending,
	}

	for _, line := range cart.Items {
		create.Items = append(create.Items, models.OrderItem{
			ProductID: strconv.Itoa(line.ProductID),
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
	}

	orderID, err := s.orders.Create(ctx, create)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		logger.Warn("Failed to load created order", slog.String("orderId", orderID), slog.Any("error", err))
		order = &models.Order{
			OrderID:     orderID,
			UserID:      claims.UserID,
			Items:       create.Items,
			TotalAmount: create.TotalAmount,
			Status:      models.OrderStatusPending,
		}
	}

	if _, err := s.carts.Clear(ctx); err != nil {
		logger.Warn("Failed to clear cart after order", slog.String("orderId", orderID), slog.Any("error", err))
	}

	return order, nil
}

// afterOrderPlaced publishes the event and sends the confirmation email. Neither
// can fail the checkout.
func (s *checkoutService) afterOrderPlaced(ctx context.Context, claims *models.Claims, order *models.Order, method models.PaymentMethod, shipping *models.Address) {

	logger := middleware.LoggerFromContext(ctx)

	payload := map[string]any{
		"payment_method": string(method),
		"total_amount":   order.TotalAmount,
		"item_count":     len(order.Items),
	}

	if shipping != nil {
		payload["ship_to_city"] = shipping.City
		payload["ship_to_country"] = shipping.Country
	}

	publishEvent(ctx, s.publisher, models.NewEvent(models.EventOrderPlaced, order.OrderID, claims.UserID, payload))

	if claims.Email == "" {
		return
	}

	if _, err := s.notifications.SendEmail(ctx, orderConfirmationEmail(claims.Email, order, method)); err != nil {
		logger.Warn("Order confirmation email not sent", slog.String("orderId", order.OrderID), slog.Any("error", err))
	}
}

func validateCheckoutCart(cart *models.Cart) error {

	if len(cart.Items) == 0 {
		return errors.BadRequestError("Your cart is empty")
	}

	for _, line := range cart.Items {
		if line.Product == nil {
			return errors.BadRequestError(fmt.Sprintf("Product %d is no longer available", line.ProductID))
		}

		if line.Product.Stock < line.Quantity {
			return errors.BadRequestError(fmt.Sprintf("Insufficient stock for %s", line.Product.Name))
		}
	}

	return nil
}

func orderConfirmationEmail(to string, order *models.Order, method models.PaymentMethod) *models.EmailNotificationRequest {

	var b strings.Builder

	fmt.Fprintf(&b, "Thank you for shopping with ShopHub.\n\nOrder: %s\n", order.OrderID)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "- product %s x %d @ %.2f\n", item.ProductID, item.Quantity, item.Price)
	}

	fmt.Fprintf(&b, "\nTotal: %.2f\n", order.TotalAmount)

	if method == models.PaymentMethodCOD {
		b.WriteString("Please keep the amount ready for cash on delivery.\n")
	}

	return &models.EmailNotificationRequest{
		Type:     models.NotificationOrderConfirmation,
		To:       to,
		Subject:  fmt.Sprintf("Your ShopHub order %s", order.OrderID),
		Content:  b.String(),
		Metadata: map[string]string{"order_id": order.OrderID, "payment_method": string(method)},
	}
}
