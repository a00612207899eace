package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	service "github.com/aaravmahajanofficial/shophub-storefront/internal/services"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils/response"
)

const (
	defaultOrderPageSize = 10
	maxOrderPageSize     = 50
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrders godoc
//	@Summary		List my orders
//	@Description	Retrieves the authenticated user's orders, newest first.
//	@Tags			Orders
//	@Produce		json
//	@Param			page		query		int						false	"Page number"	default(1)
//	@Param			pageSize	query		int						false	"Page size"		default(10)
//	@Success		200			{object}	models.PaginatedResponse{data=[]models.Order}
//	@Failure		401			{object}	response.ErrorResponse	"Authentication required"
//	@Failure		503			{object}	response.ErrorResponse	"Order service unreachable"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
			logger.Warn("Unauthorized order listing attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, size := utils.ParsePagination(r, defaultOrderPageSize, maxOrderPageSize)

		orders, err := h.orderService.ListOrders(r.Context(), page, size)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Orders listed", slog.Int("total", orders.Total))
		response.Success(w, http.StatusOK, orders)
	}
}

// GetOrder godoc
//	@Summary		Get an order by ID
//	@Description	Retrieves an order placed by the authenticated user.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID"
//	@Success		200	{object}	models.Order
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"User does not own this order"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParsePathID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("orderId", id))

		order, err := h.orderService.GetOrder(r.Context(), claims, id)
		if err != nil {
			logger.Error("Failed to fetch order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// CancelOrder godoc
//	@Summary		Cancel an order
//	@Description	Only pending or confirmed orders can be cancelled.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID"
//	@Success		200	{object}	models.Order
//	@Failure		400	{object}	response.ErrorResponse	"Order can no longer be cancelled"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"User does not own this order"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order cancellation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParsePathID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("orderId", id))

		order, err := h.orderService.CancelOrder(r.Context(), claims, id)
		if err != nil {
			logger.Warn("Failed to cancel order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order cancelled")
		response.Success(w, http.StatusOK, order)
	}
}
