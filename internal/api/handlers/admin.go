package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	service "github.com/aaravmahajanofficial/shophub-storefront/internal/services"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const (
	defaultAdminPageSize = 20
	maxAdminPageSize     = 100
)

// AdminHandler routes are mounted behind Authenticate and RequireAdmin.
type AdminHandler struct {
	adminService service.AdminService
	validator    *validator.Validate
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService, validator: utils.NewValidator()}
}

// Dashboard godoc
//	@Summary	Admin dashboard
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	models.DashboardResponse
//	@Failure	403	{object}	response.ErrorResponse	"Admin access required"
//	@Security	BearerAuth
//	@Router		/admin/dashboard [get]
func (h *AdminHandler) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		dashboard, err := h.adminService.Dashboard(r.Context())
		if err != nil {
			logger.Error("Failed to load dashboard", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, dashboard)
	}
}

// ListUsers godoc
//	@Summary	List users
//	@Tags		Admin
//	@Produce	json
//	@Param		page		query		int	false	"Page number"	default(1)
//	@Param		pageSize	query		int	false	"Page size"		default(20)
//	@Success	200			{object}	models.PaginatedResponse{data=[]models.AdminUser}
//	@Failure	403			{object}	response.ErrorResponse	"Admin access required"
//	@Security	BearerAuth
//	@Router		/admin/users [get]
func (h *AdminHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, size := utils.ParsePagination(r, defaultAdminPageSize, maxAdminPageSize)

		users, err := h.adminService.ListUsers(r.Context(), page, size)
		if err != nil {
			logger.Error("Failed to list users", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, users)
	}
}

// ListOrders godoc
//	@Summary	List all orders
//	@Tags		Admin
//	@Produce	json
//	@Param		status		query		string	false	"Order status"	Enums(pending, confirmed, processing, shipped, delivered, cancelled)
//	@Param		page		query		int		false	"Page number"	default(1)
//	@Param		pageSize	query		int		false	"Page size"		default(20)
//	@Success	200			{object}	models.PaginatedResponse{data=[]models.AdminOrder}
//	@Failure	400			{object}	response.ErrorResponse	"Invalid status"
//	@Failure	403			{object}	response.ErrorResponse	"Admin access required"
//	@Security	BearerAuth
//	@Router		/admin/orders [get]
func (h *AdminHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		filter := &models.AdminOrderFilter{Status: models.OrderStatus(r.URL.Query().Get("status"))}
		if err := h.validator.Struct(filter); err != nil {
			if validationErrs, ok := err.(validator.ValidationErrors); ok {
				response.ValidationError(w, validationErrs)
				return
			}
			response.Error(w, err)
			return
		}

		page, size := utils.ParsePagination(r, defaultAdminPageSize, maxAdminPageSize)

		orders, err := h.adminService.ListOrders(r.Context(), filter, page, size)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// GetOrder godoc
//	@Summary	Get any order
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	models.AdminOrder
//	@Failure	404	{object}	response.ErrorResponse	"Order not found"
//	@Security	BearerAuth
//	@Router		/admin/orders/{id} [get]
func (h *AdminHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParsePathID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.adminService.GetOrder(r.Context(), id)
		if err != nil {
			logger.Error("Failed to fetch order", slog.String("orderId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// UpdateOrderStatus godoc
//	@Summary	Change an order's status
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Order ID"
//	@Param		status	body		models.UpdateOrderStatusRequest	true	"New status"
//	@Success	200		{object}	models.AdminOrder
//	@Failure	400		{object}	response.ErrorResponse	"Invalid status"
//	@Failure	404		{object}	response.ErrorResponse	"Order not found"
//	@Security	BearerAuth
//	@Router		/admin/orders/{id}/status [put]
func (h *AdminHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParsePathID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid order status input")
			return
		}

		logger = logger.With(slog.String("orderId", id), slog.String("status", string(req.Status)))

		order, err := h.adminService.UpdateOrderStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Error("Failed to update order status", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated")
		response.Success(w, http.StatusOK, order)
	}
}

// CreateProduct godoc
//	@Summary	Create a product
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		product	body		models.CreateProductRequest	true	"Product details"
//	@Success	201		{object}	models.Product
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Security	BearerAuth
//	@Router		/admin/products [post]
func (h *AdminHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid product input")
			return
		}

		product, err := h.adminService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created", slog.String("productId", product.ID))
		response.Success(w, http.StatusCreated, product)
	}
}

// UpdateProduct godoc
//	@Summary	Update a product
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Product ID"
//	@Param		product	body		models.UpdateProductRequest	true	"Fields to change"
//	@Success	200		{object}	models.Product
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Failure	404		{object}	response.ErrorResponse	"Product not found"
//	@Security	BearerAuth
//	@Router		/admin/products/{id} [put]
func (h *AdminHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParsePathID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid product update input")
			return
		}

		logger = logger.With(slog.String("productId", id))

		product, err := h.adminService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated")
		response.Success(w, http.StatusOK, product)
	}
}

// DeleteProduct godoc
//	@Summary	Delete a product
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{object}	map[string]string
//	@Failure	404	{object}	response.ErrorResponse	"Product not found"
//	@Security	BearerAuth
//	@Router		/admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParsePathID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("productId", id))

		if err := h.adminService.DeleteProduct(r.Context(), id); err != nil {
			logger.Error("Failed to delete product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted")
		response.Success(w, http.StatusOK, map[string]string{"message": "Product deleted"})
	}
}

// ListContactMessages godoc
//	@Summary	List contact messages
//	@Tags		Admin
//	@Produce	json
//	@Param		open		query		bool	false	"Only unresolved messages"
//	@Param		page		query		int		false	"Page number"	default(1)
//	@Param		pageSize	query		int		false	"Page size"		default(20)
//	@Success	200			{object}	models.PaginatedResponse{data=[]models.ContactMessage}
//	@Security	BearerAuth
//	@Router		/admin/contact-messages [get]
func (h *AdminHandler) ListContactMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, size := utils.ParsePagination(r, defaultAdminPageSize, maxAdminPageSize)
		openOnly, _ := strconv.ParseBool(r.URL.Query().Get("open"))

		messages, err := h.adminService.ListContactMessages(r.Context(), page, size, openOnly)
		if err != nil {
			logger.Error("Failed to list contact messages", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, messages)
	}
}

// ResolveContactMessage godoc
//	@Summary	Mark a contact message as resolved
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Message ID"	Format(uuid)
//	@Success	200	{object}	models.ContactMessage
//	@Failure	400	{object}	response.ErrorResponse	"Invalid ID format"
//	@Failure	404	{object}	response.ErrorResponse	"Message not found"
//	@Security	BearerAuth
//	@Router		/admin/contact-messages/{id}/resolve [post]
func (h *AdminHandler) ResolveContactMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseUUID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("messageId", id.String()))

		msg, err := h.adminService.ResolveContactMessage(r.Context(), id)
		if err != nil {
			logger.Error("Failed to resolve contact message", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Contact message resolved")
		response.Success(w, http.StatusOK, msg)
	}
}

// ListNotifications godoc
//	@Summary	List sent notifications
//	@Tags		Admin
//	@Produce	json
//	@Param		page		query		int	false	"Page number"	default(1)
//	@Param		pageSize	query		int	false	"Page size"		default(20)
//	@Success	200			{object}	models.PaginatedResponse{data=[]models.Notification}
//	@Security	BearerAuth
//	@Router		/admin/notifications [get]
func (h *AdminHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, size := utils.ParsePagination(r, defaultAdminPageSize, maxAdminPageSize)

		notifications, err := h.adminService.ListNotifications(r.Context(), page, size)
		if err != nil {
			logger.Error("Failed to list notifications", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, notifications)
	}
}

// ServicesHealth godoc
//	@Summary		Backend service reachability
//	@Description	Pings every backend service. Always answers 200, unhealthy services are reported in the body.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{array}	models.ServiceHealth
//	@Security		BearerAuth
//	@Router			/admin/services/health [get]
func (h *AdminHandler) ServicesHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		health := h.adminService.ServicesHealth(r.Context())

		unhealthy := 0
		for _, s := range health {
			if !s.Healthy {
				unhealthy++
			}
		}

		middleware.LoggerFromContext(r.Context()).Info("Service health checked", slog.Int("unhealthy", unhealthy))
		response.Success(w, http.StatusOK, health)
	}
}
