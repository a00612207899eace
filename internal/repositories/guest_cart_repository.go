package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/cache"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
)

type GuestCartRepository interface {
	// Get returns nil when no cart is stored under id.
	Get(ctx context.Context, id string) (*models.GuestCart, error)
	Save(ctx context.Context, cart *models.GuestCart) error
	Delete(ctx context.Context, id string) error
}

type guestCartRepository struct {
	store cache.Cache
	ttl   time.Duration
}

func NewGuestCartRepo(store cache.Cache, ttl time.Duration) GuestCartRepository {
	return &guestCartRepository{store: store, ttl: ttl}
}

func guestCartKey(id string) string {
	return cache.CompositeKey(cache.CartKeyPrefix, "guest", id)
}

func (r *guestCartRepository) Get(ctx context.Context, id string) (*models.GuestCart, error) {

	var cart models.GuestCart

	found, err := r.store.Get(ctx, guestCartKey(id), &cart)
	if err != nil {
		return nil, fmt.Errorf("failed to load guest cart: %w", err)
	}

	if !found {
		return nil, nil
	}

	return &cart, nil
}

// Save refreshes the TTL on every write.
func (r *guestCartRepository) Save(ctx context.Context, cart *models.GuestCart) error {

	cart.UpdatedAt = time.Now().UTC()

	if err := r.store.Set(ctx, guestCartKey(cart.ID), cart, r.ttl); err != nil {
		return fmt.Errorf("failed to save guest cart: %w", err)
	}

	return nil
}

func (r *guestCartRepository) Delete(ctx context.Context, id string) error {

	if err := r.store.Delete(ctx, guestCartKey(id)); err != nil {
		return fmt.Errorf("failed to delete guest cart: %w", err)
	}

	return nil
}
