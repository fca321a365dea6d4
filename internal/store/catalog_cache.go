package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/ayush/storefront/backend/internal/models"
)

const (
	productListKey   = "catalog:products"
	productKeyPrefix = "catalog:product:"
)

// Cache is the key/value cache the catalog reads through.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ProductStore is the persistent product collection.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error)
	SetProductPicture(ctx context.Context, id, picture string) (*models.Product, error)
}

// CachedCatalog serves product reads from a cache and drops the affected
// keys on every write. A failing cache is logged and bypassed; it never fails
// a request on its own.
//
// Every key carries a generation that invalidate bumps. A read only fills
// the cache when the generation it saw before hitting the store is still
// current, so a read overlapping a write cannot put the old value back.
type CachedCatalog struct {
	next  ProductStore
	cache Cache
	ttl   time.Duration
	log   *slog.Logger

	mu          sync.Mutex
	generations map[string]uint64
}

func NewCachedCatalog(next ProductStore, cache Cache, ttl time.Duration, log *slog.Logger) *CachedCatalog {
	return &CachedCatalog{next: next, cache: cache, ttl: ttl, log: log, generations: map[string]uint64{}}
}

func (c *CachedCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if c.lookup(ctx, productListKey, &products) {
		return products, nil
	}
	gen := c.generation(productListKey)
	products, err := c.next.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, productListKey, gen, products)
	return products, nil
}

func (c *CachedCatalog) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	key := productKeyPrefix + id
	var p models.Product
	if c.lookup(ctx, key, &p) {
		return &p, nil
	}
	gen := c.generation(key)
	got, err := c.next.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, gen, got)
	return got, nil
}

func (c *CachedCatalog) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	created, err := c.next.CreateProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, productListKey)
	return created, nil
}

func (c *CachedCatalog) UpdateProduct(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	updated, err := c.next.UpdateProduct(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, productListKey, productKeyPrefix+id)
	return updated, nil
}

func (c *CachedCatalog) SetProductPicture(ctx context.Context, id, picture string) (*models.Product, error) {
	updated, err := c.next.SetProductPicture(ctx, id, picture)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, productListKey, productKeyPrefix+id)
	return updated, nil
}

func (c *CachedCatalog) lookup(ctx context.Context, key string, dst interface{}) bool {
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.WarnContext(ctx, "catalog cache read failed", "key", key, "err", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.WarnContext(ctx, "catalog cache entry corrupt", "key", key, "err", err)
		return false
	}
	return true
}

func (c *CachedCatalog) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key]
}

// store writes v under key unless key was invalidated after gen was read.
func (c *CachedCatalog) store(ctx context.Context, key string, gen uint64, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[key] != gen {
		return
	}
	if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
		c.log.WarnContext(ctx, "catalog cache write failed", "key", key, "err", err)
	}
}

func (c *CachedCatalog) invalidate(ctx context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		c.generations[k]++
	}
	if err := c.cache.Delete(ctx, keys...); err != nil {
		c.log.WarnContext(ctx, "catalog cache invalidation failed", "keys", keys, "err", err)
	}
}
