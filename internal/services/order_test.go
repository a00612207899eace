package service_test

import (
	"context"
	"net/http"
	"testing"

	clientMocks "github.com/aaravmahajanofficial/shophub-storefront/internal/clients/mocks"
	appErrors "github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	eventMocks "github.com/aaravmahajanofficial/shophub-storefront/internal/events/mocks"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	service "github.com/aaravmahajanofficial/shophub-storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupOrderServiceTest(t *testing.T) (service.OrderService, *clientMocks.OrderAPI, *eventMocks.Publisher) {
	orders := clientMocks.NewOrderAPI(t)
	publisher := eventMocks.NewPublisher(t)

	return service.NewOrderService(orders, publisher), orders, publisher
}

func TestOrderService_ListOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Newest first", func(t *testing.T) {
		// Arrange
		svc, orders, _ := setupOrderServiceTest(t)
		orders.On("List", mock.Anything).Return([]models.Order{
			{OrderID: "a", CreatedAt: "2024-01-01T10:00:00"},
			{OrderID: "c", CreatedAt: "2024-03-01T10:00:00"},
			{OrderID: "b", CreatedAt: "2024-02-01T10:00:00"},
		}, nil).Once()

		// Act
		resp, err := svc.ListOrders(ctx, 1, 2)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Total)
		assert.Equal(t, 2, resp.TotalPages)
		page := resp.Data.([]models.Order)
		require.Len(t, page, 2)
		assert.Equal(t, "c", page[0].OrderID)
		assert.Equal(t, "b", page[1].OrderID)
	})

	t.Run("Success - Defaults applied", func(t *testing.T) {
		// Arrange
		svc, orders, _ := setupOrderServiceTest(t)
		orders.On("List", mock.Anything).Return([]models.Order{}, nil).Once()

		// Act
		resp, err := svc.ListOrders(ctx, 0, 0)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, 10, resp.PageSize)
		assert.Zero(t, resp.Total)
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()
	claims := &models.Claims{UserID: "u1"}

	t.Run("Success - Owner", func(t *testing.T) {
		// Arrange
		svc, orders, _ := setupOrderServiceTest(t)
		orders.On("Get", mock.Anything, "o1").Return(&models.Order{OrderID: "o1", UserID: "u1"}, nil).Once()

		// Act
		order, err := svc.GetOrder(ctx, claims, "o1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "o1", order.OrderID)
	})

	t.Run("Failure - Another customer's order", func(t *testing.T) {
		// Arrange
		svc, orders, _ := setupOrderServiceTest(t)
		orders.On("Get", mock.Anything, "o2").Return(&models.Order{OrderID: "o2", UserID: "u9"}, nil).Once()

		// Act
		order, err := svc.GetOrder(ctx, claims, "o2")

		// Assert
		assert.Nil(t, order)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, appErr.StatusCode)
	})

	t.Run("Failure - Order without owner", func(t *testing.T) {
		// Arrange
		svc, orders, _ := setupOrderServiceTest(t)
		orders.On("Get", mock.Anything, "o3").Return(&models.Order{OrderID: "o3"}, nil).Once()

		// Act
		order, err := svc.GetOrder(ctx, claims, "o3")

		// Assert
		assert.Nil(t, order)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, appErr.StatusCode)
	})

	t.Run("Success - Admin may read any order", func(t *testing.T) {
		// Arrange
		svc, orders, _ := setupOrderServiceTest(t)
		orders.On("Get", mock.Anything, "o2").Return(&models.Order{OrderID: "o2", UserID: "u9"}, nil).Once()

		// Act
		order, err := svc.GetOrder(ctx, &models.Claims{UserID: "admin", IsAdmin: true}, "o2")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "u9", order.UserID)
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		// Arrange
		svc, orders, _ := setupOrderServiceTest(t)
		orders.On("Get", mock.Anything, "missing").Return(nil, appErrors.FromUpstream("order", http.StatusNotFound, nil)).Once()

		// Act
		order, err := svc.GetOrder(ctx, claims, "missing")

		// Assert
		assert.Nil(t, order)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestOrderService_CancelOrder(t *testing.T) {
	ctx := context.Background()
	claims := &models.Claims{UserID: "u1"}

	t.Run("Success - Pending order cancelled", func(t *testing.T) {
		// Arrange
		svc, orders, publisher := setupOrderServiceTest(t)
		orders.On("Get", mock.Anything, "o1").Return(&models.Order{OrderID: "o1", UserID: "u1", Status: models.OrderStatusPending}, nil).Once()
		orders.On("UpdateStatus", mock.Anything, "o1", models.OrderStatusCancelled).Return(nil).Once()
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e models.StorefrontEvent) bool {
			return e.Type == models.EventOrderCancelled && e.Key == "o1" && e.Payload["previous_status"] == "pending"
		})).Return(nil).Once()

		// Act
		order, err := svc.CancelOrder(ctx, claims, "o1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCancelled, order.Status)
	})

	t.Run("Failure - Already shipped", func(t *testing.T) {
		// Arrange
		svc, orders, _ := setupOrderServiceTest(t)
		orders.On("Get", mock.Anything, "o1").Return(&models.Order{OrderID: "o1", UserID: "u1", Status: models.OrderStatusShipped}, nil).Once()

		// Act
		order, err := svc.CancelOrder(ctx, claims, "o1")

		// Assert
		assert.Nil(t, order)
		assert.EqualError(t, err, "Order cannot be cancelled once it is shipped")
		orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Upstream rejects update", func(t *testing.T) {
		// Arrange
		svc, orders, _ := setupOrderServiceTest(t)
		orders.On("Get", mock.Anything, "o1").Return(&models.Order{OrderID: "o1", UserID: "u1", Status: models.OrderStatusConfirmed}, nil).Once()
		orders.On("UpdateStatus", mock.Anything, "o1", models.OrderStatusCancelled).
			Return(appErrors.FromUpstream("order", http.StatusInternalServerError, nil)).Once()

		// Act
		order, err := svc.CancelOrder(ctx, claims, "o1")

		// Assert
		assert.Nil(t, order)
		require.Error(t, err)
	})
}
