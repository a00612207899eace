package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/clients"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/events"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/shophub-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"
)

const healthCheckTimeout = 3 * time.Second

type AdminService interface {
	Dashboard(ctx context.Context) (*models.DashboardResponse, error)
	ListUsers(ctx context.Context, page, size int) (*models.PaginatedResponse, error)
	ListOrders(ctx context.Context, filter *models.AdminOrderFilter, page, size int) (*models.PaginatedResponse, error)
	GetOrder(ctx context.Context, id string) (*models.AdminOrder, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.AdminOrder, error)

	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListContactMessages(ctx context.Context, page, size int, openOnly bool) (*models.PaginatedResponse, error)
	ResolveContactMessage(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error)
	ListNotifications(ctx context.Context, page, size int) (*models.PaginatedResponse, error)

	ServicesHealth(ctx context.Context) []models.ServiceHealth
}

type adminService struct {
	admin         clients.AdminAPI
	catalog       CatalogService
	contacts      repository.ContactRepository
	notifications NotificationService
	publisher     events.Publisher
	services      []clients.Pinger
	ugc           *bluemonday.Policy
	strict        *bluemonday.Policy
}

func NewAdminService(
	admin clients.AdminAPI,
	catalog CatalogService,
	contacts repository.ContactRepository,
	notifications NotificationService,
	publisher events.Publisher,
	services []clients.Pinger,
) AdminService {
	return &adminService{
		admin:         admin,
		catalog:       catalog,
		contacts:      contacts,
		notifications: notifications,
		publisher:     publisher,
		services:      services,
		ugc:           bluemonday.UGCPolicy(),
		strict:        bluemonday.StrictPolicy(),
	}
}

func (s *adminService) Dashboard(ctx context.Context) (*models.DashboardResponse, error) {
	return s.admin.Dashboard(ctx)
}

func (s *adminService) ListUsers(ctx context.Context, page, size int) (*models.PaginatedResponse, error) {

	users, err := s.admin.Users(ctx)
	if err != nil {
		return nil, err
	}

	page, size = normalizePage(page, size)

	return models.NewPaginatedResponse(Paginate(users, page, size), len(users), page, size), nil
}

func (s *adminService) ListOrders(ctx context.Context, filter *models.AdminOrderFilter, page, size int) (*models.PaginatedResponse, error) {

	orders, err := s.admin.Orders(ctx)
	if err != nil {
		return nil, err
	}

	if filter != nil && filter.Status != "" {
		filtered := make([]models.AdminOrder, 0, len(orders))
		for _, order := range orders {
			if order.Status == filter.Status {
				filtered = append(filtered, order)
			}
		}
		orders = filtered
	}

	SortNewestFirst(orders, func(o models.AdminOrder) string { return o.CreatedAt })

	page, size = normalizePage(page, size)

	return models.NewPaginatedResponse(Paginate(orders, page, size), len(orders), page, size), nil
}

// GetOrder scans the admin order list, the admin service has no single order lookup.
func (s *adminService) GetOrder(ctx context.Context, id string) (*models.AdminOrder, error) {

	orders, err := s.admin.Orders(ctx)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].OrderID == id {
			return &orders[i], nil
		}
	}

	return nil, errors.NotFoundError("Order not found")
}

func (s *adminService) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.AdminOrder, error) {

	if !status.Valid() {
		return nil, errors.ValidationError(fmt.Sprintf("Invalid order status: %s", status))
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.admin.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, err
	}

	previous := order.Status
	order.Status = status

	publishEvent(ctx, s.publisher, models.NewEvent(models.EventOrderStatusChanged, id, actorID(ctx), map[string]any{
		"previous_status": string(previous),
		"status":          string(status),
	}))

	return order, nil
}

func (s *adminService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	clean := *req
	clean.Name = strings.TrimSpace(s.strict.Sanitize(req.Name))
	clean.Category = strings.TrimSpace(s.strict.Sanitize(req.Category))
	clean.Description = s.ugc.Sanitize(req.Description)

	if clean.Name == "" {
		return nil, errors.ValidationError("Product name contains no readable text")
	}

	product, err := s.admin.CreateProduct(ctx, &clean)
	if err != nil {
		return nil, err
	}

	s.productChanged(ctx, product.ID, "created")

	return product, nil
}

func (s *adminService) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {

	clean := *req

	if req.Name != nil {
		name := strings.TrimSpace(s.strict.Sanitize(*req.Name))
		if name == "" {
			return nil, errors.ValidationError("Product name contains no readable text")
		}
		clean.Name = &name
	}

	if req.Category != nil {
		category := strings.TrimSpace(s.strict.Sanitize(*req.Category))
		clean.Category = &category
	}

	if req.Description != nil {
		description := s.ugc.Sanitize(*req.Description)
		clean.Description = &description
	}

	product, err := s.admin.UpdateProduct(ctx, id, &clean)
	if err != nil {
		return nil, err
	}

	s.productChanged(ctx, id, "updated")

	return product, nil
}

func (s *adminService) DeleteProduct(ctx context.Context, id string) error {

	if err := s.admin.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.productChanged(ctx, id, "deleted")

	return nil
}

func (s *adminService) ListContactMessages(ctx context.Context, page, size int, openOnly bool) (*models.PaginatedResponse, error) {

	page, size = normalizePage(page, size)

	messages, total, err := s.contacts.List(ctx, page, size, openOnly)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list contact messages").WithError(err)
	}

	return models.NewPaginatedResponse(messages, total, page, size), nil
}

func (s *adminService) ResolveContactMessage(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {

	msg, err := s.contacts.Resolve(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrContactMessageNotFound) {
			return nil, errors.NotFoundError("Contact message not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to resolve contact message").WithError(err)
	}

	return msg, nil
}

func (s *adminService) ListNotifications(ctx context.Context, page, size int) (*models.PaginatedResponse, error) {
	return s.notifications.ListNotifications(ctx, page, size)
}

// ServicesHealth pings every backend concurrently. Results keep the
// registration order.
func (s *adminService) ServicesHealth(ctx context.Context) []models.ServiceHealth {

	results := make([]models.ServiceHealth, len(s.services))

	var g errgroup.Group

	for i, svc := range s.services {
		g.Go(func() error {
			pingCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
			defer cancel()

			start := time.Now()
			err := svc.Ping(pingCtx)

			results[i] = models.ServiceHealth{
				Service:   svc.Service(),
				Healthy:   err == nil,
				LatencyMS: time.Since(start).Milliseconds(),
			}

			if err != nil {
				results[i].Error = err.Error()
			}

			return nil
		})
	}

	_ = g.Wait()

	return results
}

func (s *adminService) productChanged(ctx context.Context, productID, action string) {

	s.catalog.Invalidate(ctx, productID)

	middleware.LoggerFromContext(ctx).Info("Product changed", slog.String("productId", productID), slog.String("action", action))

	publishEvent(ctx, s.publisher, models.NewEvent(models.EventProductChanged, productID, actorID(ctx), map[string]any{
		"action": action,
	}))
}
