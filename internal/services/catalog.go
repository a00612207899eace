package service

import (
	"cmp"
	"context"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/cache"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/clients"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/config"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils"
	"golang.org/x/sync/errgroup"
)

type CatalogService interface {
	Home(ctx context.Context) (*models.HomeResponse, error)
	ListProducts(ctx context.Context, filter *models.ProductFilter) (*models.PaginatedResponse, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	// Invalidate drops the cached product and every cached listing.
	Invalidate(ctx context.Context, productID string)
}

type catalogService struct {
	products   clients.ProductAPI
	cache      cache.Cache
	cacheCfg   *config.CacheConfig
	catalogCfg *config.Catalog
}

func NewCatalogService(products clients.ProductAPI, store cache.Cache, cacheCfg *config.CacheConfig, catalogCfg *config.Catalog) CatalogService {
	return &catalogService{products: products, cache: store, cacheCfg: cacheCfg, catalogCfg: catalogCfg}
}

func (s *catalogService) Home(ctx context.Context) (*models.HomeResponse, error) {

	var products []models.Product
	var categories []string

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		products, err = s.listAll(gCtx, "", "")
		return err
	})

	g.Go(func() error {
		var err error
		categories, err = s.Categories(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	featured := products
	if len(featured) > s.catalogCfg.FeaturedCount {
		featured = featured[:s.catalogCfg.FeaturedCount]
	}

	return &models.HomeResponse{Featured: featured, Categories: categories}, nil
}

// ListProducts pushes category and search down to the product service and
// applies the price range, sorting and paging locally.
func (s *catalogService) ListProducts(ctx context.Context, filter *models.ProductFilter) (*models.PaginatedResponse, error) {

	if filter == nil {
		filter = &models.ProductFilter{}
	}

	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, errors.ValidationError("Minimum price cannot be greater than maximum price")
	}

	products, err := s.listAll(ctx, filter.Category, filter.Search)
	if err != nil {
		return nil, err
	}

	filtered := FilterByPrice(products, filter.MinPrice, filter.MaxPrice)
	SortProducts(filtered, filter.SortBy, filter.SortOrder)

	page, size := s.pageBounds(filter.Page, filter.PageSize)

	return models.NewPaginatedResponse(Paginate(filtered, page, size), len(filtered), page, size), nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {

	key := cache.Key(cache.ProductKeyPrefix, id)

	var product models.Product
	if s.cached(ctx, key, &product) {
		return &product, nil
	}

	fetched, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, fetched, s.cacheCfg.DefaultTTL)

	return fetched, nil
}

func (s *catalogService) Categories(ctx context.Context) ([]string, error) {

	key := cache.Key(cache.CategoriesKeyPrefix, "all")

	var categories []string
	if s.cached(ctx, key, &categories) {
		return categories, nil
	}

	categories, err := s.products.Categories(ctx)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, categories, s.cacheCfg.CatalogTTL)

	return categories, nil
}

func (s *catalogService) Invalidate(ctx context.Context, productID string) {

	logger := middleware.LoggerFromContext(ctx)

	if productID != "" {
		if err := s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, productID)); err != nil {
			logger.Warn("Failed to drop cached product", slog.String("productId", productID), slog.Any("error", err))
		}
	}

	if err := s.cache.DeletePrefix(ctx, cache.CatalogKeyPrefix); err != nil {
		logger.Warn("Failed to drop cached listings", slog.Any("error", err))
	}

	if err := s.cache.DeletePrefix(ctx, cache.CategoriesKeyPrefix); err != nil {
		logger.Warn("Failed to drop cached categories", slog.Any("error", err))
	}
}

func (s *catalogService) listAll(ctx context.Context, category, search string) ([]models.Product, error) {

	key := cache.CompositeKey(cache.CatalogKeyPrefix, "list", url.QueryEscape(category), url.QueryEscape(strings.ToLower(search)))

	var products []models.Product
	if s.cached(ctx, key, &products) {
		return products, nil
	}

	products, err := s.products.List(ctx, &models.ProductFilter{Category: category, Search: search})
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, products, s.cacheCfg.CatalogTTL)

	return products, nil
}

func (s *catalogService) pageBounds(page, size int) (int, int) {

	if page < 1 {
		page = 1
	}

	if size < 1 {
		size = s.catalogCfg.DefaultPageSize
	}

	if size > s.catalogCfg.MaxPageSize {
		size = s.catalogCfg.MaxPageSize
	}

	return page, size
}

// cached treats cache failures as misses.
func (s *catalogService) cached(ctx context.Context, key string, value any) bool {

	found, err := s.cache.Get(ctx, key, value)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cache read failed", slog.String("key", key), slog.Any("error", err))
		return false
	}

	return found
}

func (s *catalogService) store(ctx context.Context, key string, value any, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

// FilterByPrice keeps products inside the inclusive [min, max] range. Nil bounds are open.
func FilterByPrice(products []models.Product, minPrice, maxPrice *float64) []models.Product {

	filtered := make([]models.Product, 0, len(products))

	for _, p := range products {
		if minPrice != nil && p.Price < *minPrice {
			continue
		}

		if maxPrice != nil && p.Price > *maxPrice {
			continue
		}

		filtered = append(filtered, p)
	}

	return filtered
}

// SortProducts sorts in place and is stable. Names compare case-insensitively.
// The product service lists oldest first, so created_at keeps or reverses that order.
func SortProducts(products []models.Product, sortBy models.ProductSortField, order models.SortOrder) {

	desc := order == models.SortDesc

	switch sortBy {
	case models.SortByName:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
			if desc {
				return -c
			}
			return c
		})
	case models.SortByPrice:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			c := cmp.Compare(a.Price, b.Price)
			if desc {
				return -c
			}
			return c
		})
	case models.SortByCreatedAt:
		if desc {
			slices.Reverse(products)
		}
	}
}

// Paginate returns the 1-based page of items. Pages past the end are empty.
func Paginate[T any](items []T, page, size int) []T {

	start, ok := utils.PageOffset(page, size, len(items))
	if !ok {
		return []T{}
	}

	end := min(start+size, len(items))

	return items[start:end]
}
