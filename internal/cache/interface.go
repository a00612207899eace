package cache

import (
	"context"
	"strings"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key under prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

// CompositeKey joins parts under a prefix, e.g. Key("catalog", "list", "shoes").
func CompositeKey(prefix string, parts ...string) string {
	return Key(prefix, strings.Join(parts, ":"))
}

const (
	ProductKeyPrefix    = "product"
	CatalogKeyPrefix    = "catalog"
	CategoriesKeyPrefix = "categories"
	CartKeyPrefix       = "cart"
	ProfileKeyPrefix    = "profile"
)
