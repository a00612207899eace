package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/clients"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/events"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
)

const defaultListPageSize = 10

type OrderService interface {
	ListOrders(ctx context.Context, page, size int) (*models.PaginatedResponse, error)
	GetOrder(ctx context.Context, claims *models.Claims, id string) (*models.Order, error)
	CancelOrder(ctx context.Context, claims *models.Claims, id string) (*models.Order, error)
}

type orderService struct {
	orders    clients.OrderAPI
	publisher events.Publisher
}

func NewOrderService(orders clients.OrderAPI, publisher events.Publisher) OrderService {
	return &orderService{orders: orders, publisher: publisher}
}

// ListOrders pages the caller's order history, newest first.
func (s *orderService) ListOrders(ctx context.Context, page, size int) (*models.PaginatedResponse, error) {

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	SortNewestFirst(orders, func(o models.Order) string { return o.CreatedAt })

	page, size = normalizePage(page, size)

	return models.NewPaginatedResponse(Paginate(orders, page, size), len(orders), page, size), nil
}

func (s *orderService) GetOrder(ctx context.Context, claims *models.Claims, id string) (*models.Order, error) {

	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !ownsOrder(claims, order) {
		return nil, errors.ForbiddenError("Not authorized to view this order")
	}

	return order, nil
}

// CancelOrder is only possible while the order is pending or confirmed.
func (s *orderService) CancelOrder(ctx context.Context, claims *models.Claims, id string) (*models.Order, error) {

	order, err := s.GetOrder(ctx, claims, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.Cancellable() {
		return nil, errors.BadRequestError(fmt.Sprintf("Order cannot be cancelled once it is %s", order.Status))
	}

	if err := s.orders.UpdateStatus(ctx, id, models.OrderStatusCancelled); err != nil {
		return nil, err
	}

	previous := order.Status
	order.Status = models.OrderStatusCancelled

	publishEvent(ctx, s.publisher, models.NewEvent(models.EventOrderCancelled, order.OrderID, claims.UserID, map[string]any{
		"previous_status": string(previous),
		"total_amount":    order.TotalAmount,
	}))

	return order, nil
}

// SortNewestFirst orders by created_at descending. Timestamps are ISO 8601
// so they compare lexically.
func SortNewestFirst[T any](items []T, createdAt func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		return strings.Compare(createdAt(b), createdAt(a))
	})
}

func ownsOrder(claims *models.Claims, order *models.Order) bool {

	if claims == nil {
		return false
	}

	return claims.IsAdmin || order.UserID == claims.UserID
}

func normalizePage(page, size int) (int, int) {

	if page < 1 {
		page = 1
	}

	if size < 1 {
		size = defaultListPageSize
	}

	return page, size
}
