package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/clients"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/events"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/shophub-storefront/internal/repositories"
	"golang.org/x/sync/errgroup"
)

const maxLineQuantity = 99

// enrichConcurrency bounds parallel product lookups per cart.
const enrichConcurrency = 4

type CartService interface {
	GetCart(ctx context.Context) (*models.Cart, error)
	AddItem(ctx context.Context, item models.CartItem) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, productID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, productID int) (*models.Cart, error)
	Clear(ctx context.Context) (*models.Cart, error)
	Sync(ctx context.Context, req *models.SyncCartRequest) (*models.Cart, error)
	MergeGuestCart(ctx context.Context, guestID string) (*models.Cart, error)

	GetGuestCart(ctx context.Context, guestID string) (*models.Cart, error)
	AddGuestItem(ctx context.Context, guestID string, item models.CartItem) (*models.Cart, error)
	UpdateGuestQuantity(ctx context.Context, guestID string, productID, quantity int) (*models.Cart, error)
	RemoveGuestItem(ctx context.Context, guestID string, productID int) (*models.Cart, error)
	ClearGuestCart(ctx context.Context, guestID string) error
}

type cartService struct {
	cart      clients.CartAPI
	catalog   CatalogService
	guests    repository.GuestCartRepository
	publisher events.Publisher
}

func NewCartService(cart clients.CartAPI, catalog CatalogService, guests repository.GuestCartRepository, publisher events.Publisher) CartService {
	return &cartService{cart: cart, catalog: catalog, guests: guests, publisher: publisher}
}

// GetCart reads the signed-in shopper's cart. The caller's token travels in ctx.
func (s *cartService) GetCart(ctx context.Context) (*models.Cart, error) {

	resp, err := s.cart.Get(ctx)
	if err != nil {
		return nil, err
	}

	items := s.enrich(ctx, resp.Items)

	cart := &models.Cart{Items: items, Synced: true}
	cart.Recalculate()

	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, item models.CartItem) (*models.Cart, error) {

	current, err := s.cart.Get(ctx)
	if err != nil {
		return nil, err
	}

	existing := 0
	for _, line := range current.Items {
		if line.ProductID == item.ProductID {
			existing = line.Quantity
		}
	}

	if err := checkLineQuantity(existing + item.Quantity); err != nil {
		return nil, err
	}

	if _, err := s.checkStock(ctx, item.ProductID, existing+item.Quantity); err != nil {
		return nil, err
	}

	if err := s.cart.Add(ctx, item); err != nil {
		return nil, err
	}

	return s.GetCart(ctx)
}

// UpdateQuantity removes the line when quantity is zero.
func (s *cartService) UpdateQuantity(ctx context.Context, productID, quantity int) (*models.Cart, error) {

	if quantity <= 0 {
		return s.RemoveItem(ctx, productID)
	}

	if _, err := s.checkStock(ctx, productID, quantity); err != nil {
		return nil, err
	}

	if err := s.cart.UpdateQuantity(ctx, productID, quantity); err != nil {
		return nil, err
	}

	return s.GetCart(ctx)
}

func (s *cartService) RemoveItem(ctx context.Context, productID int) (*models.Cart, error) {

	if err := s.cart.Remove(ctx, productID); err != nil {
		return nil, err
	}

	return s.GetCart(ctx)
}

// Clear removes every line. The cart service has no bulk delete.
func (s *cartService) Clear(ctx context.Context) (*models.Cart, error) {

	current, err := s.cart.Get(ctx)
	if err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)

	for _, line := range current.Items {
		productID := line.ProductID
		g.Go(func() error {
			return s.cart.Remove(gCtx, productID)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.Cart{Items: []models.CartItemResponse{}, Synced: true}, nil
}

// Sync pushes local lines the server does not know about, then returns the
// authoritative cart. When the final read fails the shopper gets an empty,
// unsynced cart rather than stale local state.
func (s *cartService) Sync(ctx context.Context, req *models.SyncCartRequest) (*models.Cart, error) {

	logger := middleware.LoggerFromContext(ctx)

	var local []models.CartItem
	if req != nil {
		local = req.Items
	}

	server, err := s.cart.Get(ctx)
	if err != nil {
		if isSessionError(err) {
			return nil, err
		}

		logger.Warn("Failed to read server cart during sync", slog.Any("error", err))
		return unsyncedCart(), nil
	}

	adds := Reconcile(local, server.Items)
	applied := 0

	for _, add := range adds {
		if err := s.cart.Add(ctx, add); err != nil {
			if isSessionError(err) {
				return nil, err
			}

			logger.Warn("Skipping cart line during sync", slog.Int("productId", add.ProductID), slog.Any("error", err))
			continue
		}

		applied++
	}

	cart, err := s.GetCart(ctx)
	if err != nil {
		if isSessionError(err) {
			return nil, err
		}

		logger.Warn("Failed to re-read cart after sync", slog.Any("error", err))
		return unsyncedCart(), nil
	}

	if applied > 0 {
		userID := actorID(ctx)
		publishEvent(ctx, s.publisher, models.NewEvent(models.EventCartSynced, userID, userID, map[string]any{"added_lines": applied, "item_count": cart.ItemCount}))
	}

	return cart, nil
}

// MergeGuestCart moves a guest cart into the account cart after sign in.
func (s *cartService) MergeGuestCart(ctx context.Context, guestID string) (*models.Cart, error) {

	logger := middleware.LoggerFromContext(ctx)

	guest, err := s.guests.Get(ctx, guestID)
	if err != nil {
		return nil, errors.InternalError("Failed to load guest cart").WithError(err)
	}

	req := &models.SyncCartRequest{}
	if guest != nil {
		for _, line := range guest.Items {
			req.Items = append(req.Items, models.CartItem{ProductID: line.ProductID, Quantity: line.Quantity})
		}
	}

	cart, err := s.Sync(ctx, req)
	if err != nil {
		return nil, err
	}

	if guest != nil {
		if err := s.guests.Delete(ctx, guestID); err != nil {
			logger.Warn("Failed to delete merged guest cart", slog.String("guestCartId", guestID), slog.Any("error", err))
		}
	}

	return cart, nil
}

func (s *cartService) GetGuestCart(ctx context.Context, guestID string) (*models.Cart, error) {

	guest, err := s.loadGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}

	return guestView(guest), nil
}

func (s *cartService) AddGuestItem(ctx context.Context, guestID string, item models.CartItem) (*models.Cart, error) {

	guest, err := s.loadGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}

	view := guestView(guest)

	quantity := item.Quantity
	idx := view.Find(item.ProductID)
	if idx >= 0 {
		quantity += view.Items[idx].Quantity
	}

	if err := checkLineQuantity(quantity); err != nil {
		return nil, err
	}

	product, err := s.checkStock(ctx, item.ProductID, quantity)
	if err != nil {
		return nil, err
	}

	if idx >= 0 {
		guest.Items[idx].Quantity = quantity
		guest.Items[idx].Product = product
	} else {
		guest.Items = append(guest.Items, models.CartItemResponse{ProductID: item.ProductID, Quantity: quantity, Product: product})
	}

	return s.saveGuest(ctx, guest)
}

func (s *cartService) UpdateGuestQuantity(ctx context.Context, guestID string, productID, quantity int) (*models.Cart, error) {

	if quantity <= 0 {
		return s.RemoveGuestItem(ctx, guestID, productID)
	}

	guest, err := s.loadGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}

	idx := guestView(guest).Find(productID)
	if idx < 0 {
		return nil, errors.NotFoundError("Item not found in cart")
	}

	product, err := s.checkStock(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}

	guest.Items[idx].Quantity = quantity
	guest.Items[idx].Product = product

	return s.saveGuest(ctx, guest)
}

func (s *cartService) RemoveGuestItem(ctx context.Context, guestID string, productID int) (*models.Cart, error) {

	guest, err := s.loadGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}

	idx := guestView(guest).Find(productID)
	if idx < 0 {
		return nil, errors.NotFoundError("Item not found in cart")
	}

	guest.Items = append(guest.Items[:idx], guest.Items[idx+1:]...)

	return s.saveGuest(ctx, guest)
}

func (s *cartService) ClearGuestCart(ctx context.Context, guestID string) error {

	if guestID == "" {
		return nil
	}

	if err := s.guests.Delete(ctx, guestID); err != nil {
		return errors.InternalError("Failed to clear guest cart").WithError(err)
	}

	return nil
}

// Reconcile returns the adds that bring local lines missing from the server
// cart to the server. Lines already on the server keep the server quantity.
// Duplicate local lines are merged.
func Reconcile(local []models.CartItem, server []models.CartItemResponse) []models.CartItem {

	onServer := make(map[int]struct{}, len(server))
	for _, line := range server {
		onServer[line.ProductID] = struct{}{}
	}

	merged := make(map[int]int, len(local))
	order := make([]int, 0, len(local))

	for _, line := range local {
		if line.ProductID <= 0 || line.Quantity <= 0 {
			continue
		}

		if _, ok := onServer[line.ProductID]; ok {
			continue
		}

		if _, seen := merged[line.ProductID]; !seen {
			order = append(order, line.ProductID)
		}

		merged[line.ProductID] = min(merged[line.ProductID]+line.Quantity, maxLineQuantity)
	}

	adds := make([]models.CartItem, 0, len(order))
	for _, productID := range order {
		adds = append(adds, models.CartItem{ProductID: productID, Quantity: merged[productID]})
	}

	return adds
}

// enrich fills in missing product details. Lines whose product cannot be
// loaded stay without details and count zero towards the total.
func (s *cartService) enrich(ctx context.Context, items []models.CartItemResponse) []models.CartItemResponse {

	logger := middleware.LoggerFromContext(ctx)

	enriched := make([]models.CartItemResponse, len(items))
	copy(enriched, items)

	var g errgroup.Group
	g.SetLimit(enrichConcurrency)

	for i := range enriched {
		if enriched[i].Product != nil {
			continue
		}

		g.Go(func() error {
			product, err := s.catalog.GetProduct(ctx, strconv.Itoa(enriched[i].ProductID))
			if err != nil {
				logger.Warn("Failed to load product for cart line", slog.Int("productId", enriched[i].ProductID), slog.Any("error", err))
				return nil
			}

			enriched[i].Product = product
			return nil
		})
	}

	_ = g.Wait()

	return enriched
}

func (s *cartService) checkStock(ctx context.Context, productID, quantity int) (*models.Product, error) {

	product, err := s.catalog.GetProduct(ctx, strconv.Itoa(productID))
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeNotFound {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, err
	}

	if product.Stock < quantity {
		if product.Stock <= 0 {
			return nil, errors.BadRequestError(fmt.Sprintf("%s is out of stock", product.Name))
		}

		return nil, errors.BadRequestError(fmt.Sprintf("Only %d of %s left in stock", product.Stock, product.Name))
	}

	return product, nil
}

func (s *cartService) loadGuest(ctx context.Context, guestID string) (*models.GuestCart, error) {

	if guestID == "" {
		return &models.GuestCart{Items: []models.CartItemResponse{}}, nil
	}

	guest, err := s.guests.Get(ctx, guestID)
	if err != nil {
		return nil, errors.InternalError("Failed to load guest cart").WithError(err)
	}

	if guest == nil {
		guest = &models.GuestCart{ID: guestID, Items: []models.CartItemResponse{}}
	}

	return guest, nil
}

func (s *cartService) saveGuest(ctx context.Context, guest *models.GuestCart) (*models.Cart, error) {

	if err := s.guests.Save(ctx, guest); err != nil {
		return nil, errors.InternalError("Failed to save guest cart").WithError(err)
	}

	return guestView(guest), nil
}

func guestView(guest *models.GuestCart) *models.Cart {

	items := guest.Items
	if items == nil {
		items = []models.CartItemResponse{}
	}

	cart := &models.Cart{Items: items, Synced: true, Guest: true}
	cart.Recalculate()

	return cart
}

func checkLineQuantity(quantity int) error {
	if quantity > maxLineQuantity {
		return errors.BadRequestError(fmt.Sprintf("Quantity cannot exceed %d", maxLineQuantity))
	}

	return nil
}

func unsyncedCart() *models.Cart {
	return &models.Cart{Items: []models.CartItemResponse{}, Synced: false}
}

// isSessionError reports failures that must reach the client so it can sign in again.
func isSessionError(err error) bool {
	appErr, ok := errors.IsAppError(err)
	return ok && (appErr.StatusCode == 401 || appErr.StatusCode == 403)
}
