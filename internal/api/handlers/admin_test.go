package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func adminRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	claims := &models.Claims{UserID: "admin-1", Email: "admin@example.com", IsAdmin: true}

	return testutils.CreateTestRequestWithClaims(method, target, body, claims, pathParams)
}

func TestAdminDashboard(t *testing.T) {
	mockAdminService := mocks.NewAdminService(t)
	adminHandler := handlers.NewAdminHandler(mockAdminService)

	mockAdminService.On("Dashboard", mock.Anything).Return(&models.DashboardResponse{
		Stats: models.DashboardStats{TotalUsers: 12, TotalOrders: 40, TotalRevenue: 1234.5},
	}, nil).Once()

	rr := httptest.NewRecorder()
	adminHandler.Dashboard().ServeHTTP(rr, adminRequest(http.MethodGet, "/admin/dashboard", nil, nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var dashboard models.DashboardResponse
	decodeResponse(t, rr, &dashboard)
	assert.Equal(t, 12, dashboard.Stats.TotalUsers)
}

func TestAdminListOrders(t *testing.T) {
	t.Run("Success - Filtered by status", func(t *testing.T) {
		mockAdminService := mocks.NewAdminService(t)
		adminHandler := handlers.NewAdminHandler(mockAdminService)

		mockAdminService.On("ListOrders", mock.Anything, &models.AdminOrderFilter{Status: models.OrderStatusShipped}, 1, 20).
			Return(models.NewPaginatedResponse([]models.AdminOrder{}, 0, 1, 20), nil).Once()

		rr := httptest.NewRecorder()
		adminHandler.ListOrders().ServeHTTP(rr, adminRequest(http.MethodGet, "/admin/orders?status=shipped", nil, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Unknown status", func(t *testing.T) {
		adminHandler := handlers.NewAdminHandler(mocks.NewAdminService(t))

		rr := httptest.NewRecorder()
		adminHandler.ListOrders().ServeHTTP(rr, adminRequest(http.MethodGet, "/admin/orders?status=lost", nil, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	t.Run("Success - Status changed", func(t *testing.T) {
		mockAdminService := mocks.NewAdminService(t)
		adminHandler := handlers.NewAdminHandler(mockAdminService)

		updated := &models.AdminOrder{Order: models.Order{OrderID: "ord-1", Status: models.OrderStatusShipped}}
		mockAdminService.On("UpdateOrderStatus", mock.Anything, "ord-1", models.OrderStatusShipped).Return(updated, nil).Once()

		req := adminRequest(http.MethodPut, "/admin/orders/ord-1/status",
			jsonBody(t, models.UpdateOrderStatusRequest{Status: models.OrderStatusShipped}), map[string]string{"id": "ord-1"})
		rr := httptest.NewRecorder()

		adminHandler.UpdateOrderStatus().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var order models.AdminOrder
		decodeResponse(t, rr, &order)
		assert.Equal(t, models.OrderStatusShipped, order.Status)
	})

	t.Run("Failure - Invalid status", func(t *testing.T) {
		adminHandler := handlers.NewAdminHandler(mocks.NewAdminService(t))

		req := adminRequest(http.MethodPut, "/admin/orders/ord-1/status",
			jsonBody(t, map[string]string{"status": "teleported"}), map[string]string{"id": "ord-1"})
		rr := httptest.NewRecorder()

		adminHandler.UpdateOrderStatus().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Order not found", func(t *testing.T) {
		mockAdminService := mocks.NewAdminService(t)
		adminHandler := handlers.NewAdminHandler(mockAdminService)

		mockAdminService.On("UpdateOrderStatus", mock.Anything, "ord-404", models.OrderStatusDelivered).
			Return(nil, appErrors.NotFoundError("Order not found")).Once()

		req := adminRequest(http.MethodPut, "/admin/orders/ord-404/status",
			jsonBody(t, models.UpdateOrderStatusRequest{Status: models.OrderStatusDelivered}), map[string]string{"id": "ord-404"})
		rr := httptest.NewRecorder()

		adminHandler.UpdateOrderStatus().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAdminProducts(t *testing.T) {
	t.Run("Success - Product created", func(t *testing.T) {
		mockAdminService := mocks.NewAdminService(t)
		adminHandler := handlers.NewAdminHandler(mockAdminService)

		createReq := models.CreateProductRequest{Name: "Kettle", Price: 1299, Category: "kitchen", Stock: 10}
		mockAdminService.On("CreateProduct", mock.Anything, &createReq).
			Return(&models.Product{ID: "p-1", Name: "Kettle", Price: 1299, Category: "kitchen", Stock: 10}, nil).Once()

		rr := httptest.NewRecorder()
		adminHandler.CreateProduct().ServeHTTP(rr, adminRequest(http.MethodPost, "/admin/products", jsonBody(t, createReq), nil))

		assert.Equal(t, http.StatusCreated, rr.Code)

		var product models.Product
		decodeResponse(t, rr, &product)
		assert.Equal(t, "p-1", product.ID)
	})

	t.Run("Failure - Negative price", func(t *testing.T) {
		adminHandler := handlers.NewAdminHandler(mocks.NewAdminService(t))

		rr := httptest.NewRecorder()
		adminHandler.CreateProduct().ServeHTTP(rr, adminRequest(http.MethodPost, "/admin/products",
			jsonBody(t, models.CreateProductRequest{Name: "Kettle", Price: -1, Category: "kitchen"}), nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Success - Product updated", func(t *testing.T) {
		mockAdminService := mocks.NewAdminService(t)
		adminHandler := handlers.NewAdminHandler(mockAdminService)

		mockAdminService.On("UpdateProduct", mock.Anything, "p-1", mock.MatchedBy(func(r *models.UpdateProductRequest) bool {
			return r.Stock != nil && *r.Stock == 3 && r.Name == nil
		})).Return(&models.Product{ID: "p-1", Stock: 3}, nil).Once()

		rr := httptest.NewRecorder()
		adminHandler.UpdateProduct().ServeHTTP(rr, adminRequest(http.MethodPut, "/admin/products/p-1",
			jsonBody(t, map[string]int{"stock": 3}), map[string]string{"id": "p-1"}))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Success - Product deleted", func(t *testing.T) {
		mockAdminService := mocks.NewAdminService(t)
		adminHandler := handlers.NewAdminHandler(mockAdminService)

		mockAdminService.On("DeleteProduct", mock.Anything, "p-1").Return(nil).Once()

		rr := httptest.NewRecorder()
		adminHandler.DeleteProduct().ServeHTTP(rr, adminRequest(http.MethodDelete, "/admin/products/p-1", nil, map[string]string{"id": "p-1"}))

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestAdminContactMessages(t *testing.T) {
	t.Run("Success - Open messages only", func(t *testing.T) {
		mockAdminService := mocks.NewAdminService(t)
		adminHandler := handlers.NewAdminHandler(mockAdminService)

		mockAdminService.On("ListContactMessages", mock.Anything, 2, 5, true).
			Return(models.NewPaginatedResponse([]models.ContactMessage{}, 0, 2, 5), nil).Once()

		rr := httptest.NewRecorder()
		adminHandler.ListContactMessages().ServeHTTP(rr, adminRequest(http.MethodGet, "/admin/contact-messages?open=true&page=2&pageSize=5", nil, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Success - Message resolved", func(t *testing.T) {
		mockAdminService := mocks.NewAdminService(t)
		adminHandler := handlers.NewAdminHandler(mockAdminService)

		id := uuid.New()
		mockAdminService.On("ResolveContactMessage", mock.Anything, id).
			Return(&models.ContactMessage{ID: id, Resolved: true}, nil).Once()

		rr := httptest.NewRecorder()
		adminHandler.ResolveContactMessage().ServeHTTP(rr, adminRequest(http.MethodPost, "/admin/contact-messages/"+id.String()+"/resolve",
			nil, map[string]string{"id": id.String()}))

		assert.Equal(t, http.StatusOK, rr.Code)

		var msg models.ContactMessage
		decodeResponse(t, rr, &msg)
		assert.True(t, msg.Resolved)
	})

	t.Run("Failure - Invalid message ID", func(t *testing.T) {
		adminHandler := handlers.NewAdminHandler(mocks.NewAdminService(t))

		rr := httptest.NewRecorder()
		adminHandler.ResolveContactMessage().ServeHTTP(rr, adminRequest(http.MethodPost, "/admin/contact-messages/nope/resolve",
			nil, map[string]string{"id": "nope"}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAdminServicesHealth(t *testing.T) {
	mockAdminService := mocks.NewAdminService(t)
	adminHandler := handlers.NewAdminHandler(mockAdminService)

	mockAdminService.On("ServicesHealth", mock.Anything).Return([]models.ServiceHealth{
		{Service: "product", Healthy: true, LatencyMS: 4},
		{Service: "payment", Healthy: false, Error: "connection refused"},
	}).Once()

	rr := httptest.NewRecorder()
	adminHandler.ServicesHealth().ServeHTTP(rr, adminRequest(http.MethodGet, "/admin/services/health", nil, nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var health []models.ServiceHealth
	decodeResponse(t, rr, &health)
	require.Len(t, health, 2)
	assert.False(t, health[1].Healthy)
}

func TestAdminListUsersAndNotifications(t *testing.T) {
	mockAdminService := mocks.NewAdminService(t)
	adminHandler := handlers.NewAdminHandler(mockAdminService)

	mockAdminService.On("ListUsers", mock.Anything, 1, 20).
		Return(models.NewPaginatedResponse([]models.AdminUser{{ID: "u-1"}}, 1, 1, 20), nil).Once()
	mockAdminService.On("ListNotifications", mock.Anything, 1, 20).
		Return(nil, appErrors.DatabaseError("Failed to list notifications")).Once()

	rr := httptest.NewRecorder()
	adminHandler.ListUsers().ServeHTTP(rr, adminRequest(http.MethodGet, "/admin/users", nil, nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	adminHandler.ListNotifications().ServeHTTP(rr, adminRequest(http.MethodGet, "/admin/notifications", nil, nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
