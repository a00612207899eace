package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListOrders(t *testing.T) {
	t.Run("Success - Default page size", func(t *testing.T) {
		// Arrange
		mockOrderService := new(mocks.OrderService)
		orderHandler := handlers.NewOrderHandler(mockOrderService)

		orders := []models.Order{{OrderID: "ord-2"}, {OrderID: "ord-1"}}
		mockOrderService.On("ListOrders", mock.Anything, 1, 10).
			Return(models.NewPaginatedResponse(orders, 2, 1, 10), nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/orders", nil, "u-1", nil)
		rr := httptest.NewRecorder()

		// Act
		orderHandler.ListOrders().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var page models.PaginatedResponse
		resp := decodeResponse(t, rr, &page)
		assert.True(t, resp.Success)
		assert.Equal(t, 2, page.Total)

		mockOrderService.AssertExpectations(t)
	})

	t.Run("Success - Page size capped", func(t *testing.T) {
		mockOrderService := new(mocks.OrderService)
		orderHandler := handlers.NewOrderHandler(mockOrderService)

		mockOrderService.On("ListOrders", mock.Anything, 3, 50).
			Return(models.NewPaginatedResponse([]models.Order{}, 0, 3, 50), nil).Once()

		rr := httptest.NewRecorder()
		orderHandler.ListOrders().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodGet, "/orders?page=3&size=500", nil, "u-1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		mockOrderService.AssertExpectations(t)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		orderHandler := handlers.NewOrderHandler(new(mocks.OrderService))

		rr := httptest.NewRecorder()
		orderHandler.ListOrders().ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodGet, "/orders", nil, nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGetOrder(t *testing.T) {
	t.Run("Success - Order found", func(t *testing.T) {
		mockOrderService := new(mocks.OrderService)
		orderHandler := handlers.NewOrderHandler(mockOrderService)

		mockOrderService.On("GetOrder", mock.Anything, mock.MatchedBy(func(c *models.Claims) bool { return c.UserID == "u-1" }), "ord-1").
			Return(&models.Order{OrderID: "ord-1", UserID: "u-1", Status: models.OrderStatusShipped}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/orders/ord-1", nil, "u-1", map[string]string{"id": "ord-1"})
		rr := httptest.NewRecorder()

		orderHandler.GetOrder().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var order models.Order
		decodeResponse(t, rr, &order)
		assert.Equal(t, models.OrderStatusShipped, order.Status)

		mockOrderService.AssertExpectations(t)
	})

	t.Run("Failure - Not the owner", func(t *testing.T) {
		mockOrderService := new(mocks.OrderService)
		orderHandler := handlers.NewOrderHandler(mockOrderService)

		mockOrderService.On("GetOrder", mock.Anything, mock.Anything, "ord-1").
			Return(nil, appErrors.ForbiddenError("Not authorized to view this order")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/orders/ord-1", nil, "u-2", map[string]string{"id": "ord-1"})
		rr := httptest.NewRecorder()

		orderHandler.GetOrder().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockOrderService.AssertExpectations(t)
	})

	t.Run("Failure - Missing ID", func(t *testing.T) {
		orderHandler := handlers.NewOrderHandler(new(mocks.OrderService))

		rr := httptest.NewRecorder()
		orderHandler.GetOrder().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodGet, "/orders/", nil, "u-1", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCancelOrder(t *testing.T) {
	t.Run("Success - Pending order cancelled", func(t *testing.T) {
		mockOrderService := new(mocks.OrderService)
		orderHandler := handlers.NewOrderHandler(mockOrderService)

		mockOrderService.On("CancelOrder", mock.Anything, mock.Anything, "ord-1").
			Return(&models.Order{OrderID: "ord-1", Status: models.OrderStatusCancelled}, nil).Once()

		rr := httptest.NewRecorder()
		orderHandler.CancelOrder().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodPost, "/orders/ord-1/cancel", nil, "u-1", map[string]string{"id": "ord-1"}))

		assert.Equal(t, http.StatusOK, rr.Code)

		var order models.Order
		decodeResponse(t, rr, &order)
		assert.Equal(t, models.OrderStatusCancelled, order.Status)

		mockOrderService.AssertExpectations(t)
	})

	t.Run("Failure - Already shipped", func(t *testing.T) {
		mockOrderService := new(mocks.OrderService)
		orderHandler := handlers.NewOrderHandler(mockOrderService)

		mockOrderService.On("CancelOrder", mock.Anything, mock.Anything, "ord-1").
			Return(nil, appErrors.BadRequestError("Order cannot be cancelled once it is shipped")).Once()

		rr := httptest.NewRecorder()
		orderHandler.CancelOrder().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodPost, "/orders/ord-1/cancel", nil, "u-1", map[string]string{"id": "ord-1"}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		resp := decodeResponse(t, rr, nil)
		assert.Equal(t, "Order cannot be cancelled once it is shipped", resp.Error.Message)

		mockOrderService.AssertExpectations(t)
	})
}
