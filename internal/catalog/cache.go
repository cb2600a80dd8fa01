package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/devaraji08/HarvestHubFinal/internal/domain"
)

const activeProductsKey = "catalog:active"

// CachedCatalog caches the storefront listing in redis. Concurrent
// misses for the listing are collapsed through singleflight so a cold
// cache does not stampede the remote table. Writes pass through and
// invalidate the listing.
type CachedCatalog struct {
	inner   Catalog
	client  *redis.Client
	baseTTL time.Duration
	logger  zerolog.Logger
	sfg     singleflight.Group
}

func NewCachedCatalog(inner Catalog, client *redis.Client, logger zerolog.Logger) *CachedCatalog {
	return &CachedCatalog{
		inner:   inner,
		client:  client,
		baseTTL: 5 * time.Minute,
		logger:  logger,
	}
}

func (c *CachedCatalog) ListActive(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := c.sfg.Do(activeProductsKey, func() (interface{}, error) {
		data, err := c.client.Get(ctx, activeProductsKey).Bytes()
		if err == nil {
			var products []domain.Product
			if err2 := json.Unmarshal(data, &products); err2 == nil {
				return products, nil
			}
			c.logger.Warn().Msg("discarding unreadable catalog cache entry")
		} else if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Msg("catalog cache get failed")
		}

		products, err := c.inner.ListActive(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			data, err := json.Marshal(products)
			if err != nil {
				return
			}
			jitter := time.Duration(rand.Intn(60)) * time.Second
			if err := c.client.Set(context.Background(), activeProductsKey, data, c.baseTTL+jitter).Err(); err != nil {
				c.logger.Warn().Err(err).Msg("catalog cache set failed")
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (c *CachedCatalog) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	created, err := c.inner.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	c.invalidate()
	return created, nil
}

func (c *CachedCatalog) Update(ctx context.Context, farmerID string, p domain.Product) (*domain.Product, error) {
	updated, err := c.inner.Update(ctx, farmerID, p)
	if err != nil {
		return nil, err
	}
	c.invalidate()
	return updated, nil
}

func (c *CachedCatalog) Delete(ctx context.Context, farmerID, id string) error {
	if err := c.inner.Delete(ctx, farmerID, id); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

func (c *CachedCatalog) ListByFarmer(ctx context.Context, farmerID string) ([]domain.Product, error) {
	return c.inner.ListByFarmer(ctx, farmerID)
}

func (c *CachedCatalog) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return c.inner.GetByID(ctx, id)
}

func (c *CachedCatalog) invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.client.Del(ctx, activeProductsKey).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("catalog cache invalidate failed")
	}
}

var _ Catalog = (*CachedCatalog)(nil)
