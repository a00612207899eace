package clients_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/clients"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductClient(t *testing.T) {
	t.Run("List - Pushes filters down", func(t *testing.T) {
		c := clients.NewProductClient(newTestClient(t, "product", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products/", r.URL.Path)
			assert.Equal(t, "Electronics", r.URL.Query().Get("category"))
			assert.Equal(t, "head", r.URL.Query().Get("search"))
			assert.Empty(t, r.URL.Query().Get("sortBy"))
			writeJSON(t, w, http.StatusOK, []models.Product{{ID: "1"}, {ID: "2"}})
		}))

		minPrice := 10.0
		products, err := c.List(t.Context(), &models.ProductFilter{Category: "Electronics", Search: "head", MinPrice: &minPrice, SortBy: models.SortByPrice})

		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("List - No filters", func(t *testing.T) {
		c := clients.NewProductClient(newTestClient(t, "product", func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.RawQuery)
			writeJSON(t, w, http.StatusOK, []models.Product{})
		}))

		products, err := c.List(t.Context(), &models.ProductFilter{})

		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestCartClient(t *testing.T) {
	t.Run("UpdateQuantity - Uses path parameters", func(t *testing.T) {
		c := clients.NewCartClient(newTestClient(t, "cart", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/cart/update/7/3", r.URL.Path)
			writeJSON(t, w, http.StatusOK, map[string]string{"message": "ok"})
		}))

		assert.NoError(t, c.UpdateQuantity(t.Context(), 7, 3))
	})

	t.Run("Get - Empty cart has non-nil items", func(t *testing.T) {
		c := clients.NewCartClient(newTestClient(t, "cart", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"items": null, "total": 0}`))
		}))

		cart, err := c.Get(t.Context())

		require.NoError(t, err)
		assert.NotNil(t, cart.Items)
	})
}

func TestOrderClient(t *testing.T) {
	t.Run("Create - Returns order id", func(t *testing.T) {
		c := clients.NewOrderClient(newTestClient(t, "order", func(w http.ResponseWriter, r *http.Request) {
			var body models.OrderCreate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, models.OrderStatusPending, body.Status)
			writeJSON(t, w, http.StatusOK, map[string]string{"order_id": "ord-9", "message": "Order created successfully"})
		}))

		id, err := c.Create(t.Context(), &models.OrderCreate{UserID: "u1", Status: models.OrderStatusPending})

		require.NoError(t, err)
		assert.Equal(t, "ord-9", id)
	})

	t.Run("UpdateStatus - Sends status as query", func(t *testing.T) {
		c := clients.NewOrderClient(newTestClient(t, "order", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/api/orders/ord-9/status", r.URL.Path)
			assert.Equal(t, "cancelled", r.URL.Query().Get("status"))
			writeJSON(t, w, http.StatusOK, map[string]string{"message": "ok"})
		}))

		assert.NoError(t, c.UpdateStatus(t.Context(), "ord-9", models.OrderStatusCancelled))
	})
}

func TestAdminClient(t *testing.T) {
	t.Run("Orders - Decodes customer", func(t *testing.T) {
		c := clients.NewAdminClient(newTestClient(t, "admin", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"id": "o1", "status": "pending", "total_amount": 20, "user": {"id": "u1", "email": "a@b.com"}}]`))
		}))

		orders, err := c.Orders(t.Context())

		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "o1", orders[0].OrderID)
		assert.Equal(t, "a@b.com", orders[0].User.Email)
	})

	t.Run("UpdateOrderStatus - Sends JSON body", func(t *testing.T) {
		c := clients.NewAdminClient(newTestClient(t, "admin", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/admin/orders/o1/status", r.URL.Path)
			var body models.UpdateOrderStatusRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, models.OrderStatusShipped, body.Status)
			writeJSON(t, w, http.StatusOK, map[string]string{"message": "ok"})
		}))

		assert.NoError(t, c.UpdateOrderStatus(t.Context(), "o1", models.OrderStatusShipped))
	})
}

func TestPaymentClient(t *testing.T) {
	c := clients.NewPaymentClient(newTestClient(t, "payment", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payments/create-order", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.PaymentOrder{OrderID: "order_abc", Amount: 39998, Currency: "INR", KeyID: "rzp_test"})
	}))

	order, err := c.CreateOrder(t.Context())

	require.NoError(t, err)
	assert.Equal(t, int64(39998), order.Amount)
	assert.Equal(t, "INR", order.Currency)
}
