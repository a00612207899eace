package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const guestTTL = 24 * time.Hour

func TestGetCart(t *testing.T) {
	t.Run("Success - Signed in cart", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService, guestTTL, false)

		mockCartService.On("GetCart", mock.Anything).Return(&models.Cart{ItemCount: 3, Synced: true}, nil).Once()

		rr := httptest.NewRecorder()
		cartHandler.GetCart().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodGet, "/cart", nil, "u-1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)

		var cart models.Cart
		decodeResponse(t, rr, &cart)
		assert.Equal(t, 3, cart.ItemCount)
	})

	t.Run("Success - Guest cart from cookie", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService, guestTTL, false)

		mockCartService.On("GetGuestCart", mock.Anything, "guest-1").
			Return(&models.Cart{Items: []models.CartItemResponse{}, Guest: true}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/cart", nil, nil)
		req.AddCookie(&http.Cookie{Name: middleware.GuestCartCookie, Value: "guest-1"})
		rr := httptest.NewRecorder()

		cartHandler.GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var cart models.Cart
		decodeResponse(t, rr, &cart)
		assert.True(t, cart.Guest)
	})
}

func TestAddItem(t *testing.T) {
	item := models.CartItem{ProductID: 5, Quantity: 2}

	t.Run("Success - Signed in", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService, guestTTL, false)

		mockCartService.On("AddItem", mock.Anything, item).Return(&models.Cart{ItemCount: 2, Synced: true}, nil).Once()

		rr := httptest.NewRecorder()
		cartHandler.AddItem().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodPost, "/cart/items", jsonBody(t, item), "u-1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, findCookie(rr, middleware.GuestCartCookie))
	})

	t.Run("Success - First guest add issues cookie", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService, guestTTL, true)

		var issued string
		mockCartService.On("AddGuestItem", mock.Anything, mock.AnythingOfType("string"), item).
			Run(func(args mock.Arguments) { issued = args.String(1) }).
			Return(&models.Cart{ItemCount: 2, Guest: true}, nil).Once()

		rr := httptest.NewRecorder()
		cartHandler.AddItem().ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodPost, "/cart/items", jsonBody(t, item), nil))

		assert.Equal(t, http.StatusOK, rr.Code)

		_, err := uuid.Parse(issued)
		require.NoError(t, err)

		cookie := findCookie(rr, middleware.GuestCartCookie)
		require.NotNil(t, cookie)
		assert.Equal(t, issued, cookie.Value)
		assert.True(t, cookie.Secure)
		assert.Equal(t, int(guestTTL.Seconds()), cookie.MaxAge)
	})

	t.Run("Failure - Out of stock", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService, guestTTL, false)

		mockCartService.On("AddGuestItem", mock.Anything, "guest-1", item).
			Return(nil, appErrors.BadRequestError("Only 1 of Kettle left in stock")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/cart/items", jsonBody(t, item), nil)
		req.AddCookie(&http.Cookie{Name: middleware.GuestCartCookie, Value: "guest-1"})
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Nil(t, findCookie(rr, middleware.GuestCartCookie))

		resp := decodeResponse(t, rr, nil)
		assert.Equal(t, "Only 1 of Kettle left in stock", resp.Error.Message)
	})

	t.Run("Failure - Quantity over limit", func(t *testing.T) {
		cartHandler := handlers.NewCartHandler(mocks.NewCartService(t), guestTTL, false)

		rr := httptest.NewRecorder()
		cartHandler.AddItem().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodPost, "/cart/items",
			jsonBody(t, models.CartItem{ProductID: 5, Quantity: 100}), "u-1", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("Success - Zero quantity accepted", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService, guestTTL, false)

		mockCartService.On("UpdateQuantity", mock.Anything, 5, 0).Return(&models.Cart{Items: []models.CartItemResponse{}}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/cart/items/5",
			jsonBody(t, map[string]int{"quantity": 0}), "u-1", map[string]string{"productId": "5"})
		rr := httptest.NewRecorder()

		cartHandler.UpdateQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Invalid product ID", func(t *testing.T) {
		cartHandler := handlers.NewCartHandler(mocks.NewCartService(t), guestTTL, false)

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/cart/items/abc",
			jsonBody(t, map[string]int{"quantity": 1}), "u-1", map[string]string{"productId": "abc"})
		rr := httptest.NewRecorder()

		cartHandler.UpdateQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResponse(t, rr, nil)
		assert.Equal(t, "Invalid product ID format", resp.Error.Message)
	})

	t.Run("Failure - Missing quantity", func(t *testing.T) {
		cartHandler := handlers.NewCartHandler(mocks.NewCartService(t), guestTTL, false)

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/cart/items/5",
			jsonBody(t, map[string]string{}), "u-1", map[string]string{"productId": "5"})
		rr := httptest.NewRecorder()

		cartHandler.UpdateQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRemoveAndClear(t *testing.T) {
	t.Run("Success - Guest line removed", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService, guestTTL, false)

		mockCartService.On("RemoveGuestItem", mock.Anything, "guest-1", 5).Return(&models.Cart{Guest: true}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodDelete, "/cart/items/5", nil, map[string]string{"productId": "5"})
		req.AddCookie(&http.Cookie{Name: middleware.GuestCartCookie, Value: "guest-1"})
		rr := httptest.NewRecorder()

		cartHandler.RemoveItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Success - Guest cart cleared", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService, guestTTL, false)

		mockCartService.On("ClearGuestCart", mock.Anything, "guest-1").Return(nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodDelete, "/cart", nil, nil)
		req.AddCookie(&http.Cookie{Name: middleware.GuestCartCookie, Value: "guest-1"})
		rr := httptest.NewRecorder()

		cartHandler.ClearCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var cart models.Cart
		decodeResponse(t, rr, &cart)
		assert.Empty(t, cart.Items)
		assert.True(t, cart.Guest)

		cookie := findCookie(rr, middleware.GuestCartCookie)
		require.NotNil(t, cookie)
		assert.Equal(t, -1, cookie.MaxAge)
	})

	t.Run("Success - Signed in cart cleared", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService, guestTTL, false)

		mockCartService.On("Clear", mock.Anything).Return(&models.Cart{Items: []models.CartItemResponse{}, Synced: true}, nil).Once()

		rr := httptest.NewRecorder()
		cartHandler.ClearCart().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodDelete, "/cart", nil, "u-1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestSyncCart(t *testing.T) {
	t.Run("Success - Local lines pushed", func(t *testing.T) {
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService, guestTTL, false)

		syncReq := models.SyncCartRequest{Items: []models.CartItem{{ProductID: 1, Quantity: 1}}}

		mockCartService.On("Sync", mock.Anything, &syncReq).Return(&models.Cart{ItemCount: 1, Synced: true}, nil).Once()

		rr := httptest.NewRecorder()
		cartHandler.SyncCart().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodPost, "/cart/sync", jsonBody(t, syncReq), "u-1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)

		var cart models.Cart
		decodeResponse(t, rr, &cart)
		assert.True(t, cart.Synced)
	})

	t.Run("Failure - Guest cannot sync", func(t *testing.T) {
		cartHandler := handlers.NewCartHandler(mocks.NewCartService(t), guestTTL, false)

		rr := httptest.NewRecorder()
		cartHandler.SyncCart().ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodPost, "/cart/sync",
			jsonBody(t, models.SyncCartRequest{}), nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
