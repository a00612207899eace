package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	service "github.com/aaravmahajanofficial/shophub-storefront/internal/services"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CartHandler serves both signed-in carts and guest carts. Guest carts are
// keyed by the guest_cart_id cookie.
type CartHandler struct {
	cartService  service.CartService
	guestTTL     time.Duration
	secureCookie bool
	validator    *validator.Validate
}

func NewCartHandler(cartService service.CartService, guestTTL time.Duration, secureCookie bool) *CartHandler {
	return &CartHandler{cartService: cartService, guestTTL: guestTTL, secureCookie: secureCookie, validator: utils.NewValidator()}
}

// GetCart godoc
//	@Summary		Get the current cart
//	@Description	Returns the signed-in user's cart, or the guest cart when no session is present.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.Cart
//	@Failure		503	{object}	response.ErrorResponse	"Cart service unreachable"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var (
			cart *models.Cart
			err  error
		)

		if _, ok := middleware.ClaimsFromContext(r.Context()); ok {
			cart, err = h.cartService.GetCart(r.Context())
		} else {
			cart, err = h.cartService.GetGuestCart(r.Context(), middleware.GuestCartID(r))
		}

		if err != nil {
			logger.Error("Failed to fetch cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//	@Summary		Add an item to the cart
//	@Description	Adds a product after checking stock. Guests get a guest cart cookie on first add.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.CartItem	true	"Product and quantity"
//	@Success		200		{object}	models.Cart
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or insufficient stock"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CartItem
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		logger = logger.With(slog.Int("productId", req.ProductID), slog.Int("quantity", req.Quantity))

		var (
			cart *models.Cart
			err  error
		)

		if _, ok := middleware.ClaimsFromContext(r.Context()); ok {
			cart, err = h.cartService.AddItem(r.Context(), req)
		} else {
			guestID := middleware.GuestCartID(r)
			if guestID == "" {
				guestID = uuid.NewString()
			}

			cart, err = h.cartService.AddGuestItem(r.Context(), guestID, req)
			if err == nil {
				middleware.SetGuestCartCookie(w, guestID, h.guestTTL, h.secureCookie)
			}
		}

		if err != nil {
			logger.Warn("Failed to add item to cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.Int("itemCount", cart.ItemCount))
		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateQuantity godoc
//	@Summary		Change the quantity of a cart line
//	@Description	A quantity of zero removes the line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			productId	path		int								true	"Product ID"
//	@Param			quantity	body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200			{object}	models.Cart
//	@Failure		400			{object}	response.ErrorResponse	"Invalid product ID, validation error or insufficient stock"
//	@Failure		404			{object}	response.ErrorResponse	"Item not found in cart"
//	@Router			/cart/items/{productId} [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.ParseProductID(r, "productId")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart quantity input")
			return
		}

		logger = logger.With(slog.Int("productId", productID), slog.Int("quantity", *req.Quantity))

		var cart *models.Cart

		if _, ok := middleware.ClaimsFromContext(r.Context()); ok {
			cart, err = h.cartService.UpdateQuantity(r.Context(), productID, *req.Quantity)
		} else {
			cart, err = h.cartService.UpdateGuestQuantity(r.Context(), middleware.GuestCartID(r), productID, *req.Quantity)
		}

		if err != nil {
			logger.Warn("Failed to update cart quantity", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart quantity updated")
		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//	@Summary	Remove a cart line
//	@Tags		Cart
//	@Produce	json
//	@Param		productId	path		int	true	"Product ID"
//	@Success	200			{object}	models.Cart
//	@Failure	400			{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure	404			{object}	response.ErrorResponse	"Item not found in cart"
//	@Router		/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.ParseProductID(r, "productId")
		if err != nil {
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.Int("productId", productID))

		var cart *models.Cart

		if _, ok := middleware.ClaimsFromContext(r.Context()); ok {
			cart, err = h.cartService.RemoveItem(r.Context(), productID)
		} else {
			cart, err = h.cartService.RemoveGuestItem(r.Context(), middleware.GuestCartID(r), productID)
		}

		if err != nil {
			logger.Warn("Failed to remove cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart item removed")
		response.Success(w, http.StatusOK, cart)
	}
}

// ClearCart godoc
//	@Summary	Empty the cart
//	@Tags		Cart
//	@Produce	json
//	@Success	200	{object}	models.Cart
//	@Failure	503	{object}	response.ErrorResponse	"Cart service unreachable"
//	@Router		/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := middleware.ClaimsFromContext(r.Context()); ok {
			cart, err := h.cartService.Clear(r.Context())
			if err != nil {
				logger.Error("Failed to clear cart", slog.Any("error", err))
				response.Error(w, err)
				return
			}

			logger.Info("Cart cleared")
			response.Success(w, http.StatusOK, cart)
			return
		}

		if err := h.cartService.ClearGuestCart(r.Context(), middleware.GuestCartID(r)); err != nil {
			logger.Error("Failed to clear guest cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		middleware.ClearGuestCartCookie(w)
		response.Success(w, http.StatusOK, &models.Cart{Items: []models.CartItemResponse{}, Guest: true})
	}
}

// SyncCart godoc
//	@Summary		Sync a locally kept cart
//	@Description	Pushes lines the browser kept offline to the cart service. The server quantity wins for lines it already has.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			cart	body		models.SyncCartRequest	true	"Local cart lines"
//	@Success		200		{object}	models.Cart
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/cart/sync [post]
func (h *CartHandler) SyncCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
			logger.Warn("Unauthorized cart sync attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.SyncCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart sync input")
			return
		}

		cart, err := h.cartService.Sync(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to sync cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart synced", slog.Int("localItems", len(req.Items)), slog.Bool("synced", cart.Synced))
		response.Success(w, http.StatusOK, cart)
	}
}
