// Package catalog provides a read-through product lookup in front of the
// database. Order creation hits it once per line item, so product rows are
// kept in a small in-process ristretto cache with a short TTL.
package catalog

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"gorm.io/gorm"

	"github.com/base-14/order-fulfillment/internal/models"
)

const (
	defaultTTL      = time.Minute
	defaultMaxItems = 1024
)

type Cache struct {
	db  *gorm.DB
	c   *ristretto.Cache[string, *models.Product]
	ttl time.Duration
}

func NewCache(db *gorm.DB) (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, *models.Product]{
		NumCounters: defaultMaxItems * 10, // ~10x expected items
		MaxCost:     defaultMaxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{db: db, c: c, ttl: defaultTTL}, nil
}

// Lookup returns the product for a SKU, consulting the cache before the
// database. A miss on both returns gorm.ErrRecordNotFound.
func (c *Cache) Lookup(ctx context.Context, sku string) (*models.Product, error) {
	if p, found := c.c.Get(sku); found {
		return p, nil
	}

	var product models.Product
	if err := c.db.WithContext(ctx).Where("sku = ?", sku).First(&product).Error; err != nil {
		return nil, err
	}

	c.c.SetWithTTL(sku, &product, 1, c.ttl)
	return &product, nil
}

// Invalidate drops a SKU from the cache, for callers that mutate products.
func (c *Cache) Invalidate(sku string) {
	c.c.Del(sku)
}

func (c *Cache) Close() {
	c.c.Close()
}
