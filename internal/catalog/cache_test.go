package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/base-14/order-fulfillment/internal/models"
)

func TestLookup_CacheHit(t *testing.T) {
	// No database behind the cache: a hit must be served without touching it.
	c, err := NewCache(nil)
	require.NoError(t, err)
	defer c.Close()

	widget := &models.Product{SKU: "prod-1", Name: "Widget A", Price: 29.99}
	c.c.SetWithTTL("prod-1", widget, 1, c.ttl)
	c.c.Wait()

	got, err := c.Lookup(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Equal(t, 29.99, got.Price)
}

func TestInvalidate(t *testing.T) {
	c, err := NewCache(nil)
	require.NoError(t, err)
	defer c.Close()

	c.c.SetWithTTL("prod-2", &models.Product{SKU: "prod-2", Price: 49.99}, 1, c.ttl)
	c.c.Wait()
	c.Invalidate("prod-2")

	_, found := c.c.Get("prod-2")
	require.False(t, found)
}
