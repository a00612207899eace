package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	service "github.com/aaravmahajanofficial/shophub-storefront/internal/services"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: utils.NewValidator()}
}

// Checkout godoc
//	@Summary		Place an order from the cart
//	@Description	Cash on delivery creates the order directly. Razorpay returns a payment order to complete in the browser.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			checkout	body		models.CheckoutRequest	true	"Addresses and payment method"
//	@Success		200			{object}	models.CheckoutResponse	"Razorpay payment order created"
//	@Success		201			{object}	models.CheckoutResponse	"Cash on delivery order placed"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error, empty cart or insufficient stock"
//	@Failure		401			{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/checkout [post]
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized checkout attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")
			return
		}

		logger = logger.With(slog.String("paymentMethod", string(req.PaymentMethod)))

		result, err := h.checkoutService.Start(r.Context(), claims, &req)
		if err != nil {
			logger.Error("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if result.Order != nil {
			logger.Info("Order placed", slog.String("orderId", result.Order.OrderID))
			response.Success(w, http.StatusCreated, result)
			return
		}

		logger.Info("Payment order created", slog.Float64("total", result.Total))
		response.Success(w, http.StatusOK, result)
	}
}

// VerifyPayment godoc
//	@Summary		Confirm a razorpay payment
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		models.PaymentVerification	true	"Razorpay callback fields"
//	@Success		200		{object}	models.CheckoutResponse
//	@Failure		400		{object}	response.ErrorResponse	"Signature mismatch"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/checkout/verify [post]
func (h *CheckoutHandler) VerifyPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized payment verification attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.PaymentVerification
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid payment verification input")
			return
		}

		logger = logger.With(slog.String("razorpayOrderId", req.RazorpayOrderID))

		result, err := h.checkoutService.Verify(r.Context(), claims, &req)
		if err != nil {
			logger.Error("Payment verification failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment verified")
		response.Success(w, http.StatusOK, result)
	}
}
