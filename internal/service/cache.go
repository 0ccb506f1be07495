package service

import (
	"context"
	"encoding/json"
	"time"

	"boskoback/internal/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CatalogCache is a small read-through cache for product detail responses.
// All operations are best-effort: a redis error degrades to a DB read, never
// to a request failure.
type CatalogCache interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, bool)
	SetProduct(ctx context.Context, id uuid.UUID, resp *dto.ProductResponse)
	InvalidateProduct(ctx context.Context, id uuid.UUID)
	// InvalidateCatalog drops every cached product — category renames change
	// the denormalized category_name on many entries at once.
	InvalidateCatalog(ctx context.Context)
}

const (
	productKeyPrefix = "cache:product:"
	productCacheTTL  = 5 * time.Minute
)

type catalogCache struct {
	rdb *redis.Client
}

func NewCatalogCache(rdb *redis.Client) CatalogCache {
	return &catalogCache{rdb: rdb}
}

func (c *catalogCache) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, bool) {
	raw, err := c.rdb.Get(ctx, productKeyPrefix+id.String()).Bytes()
	if err != nil {
		return nil, false
	}
	var resp dto.ProductResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (c *catalogCache) SetProduct(ctx context.Context, id uuid.UUID, resp *dto.ProductResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, productKeyPrefix+id.String(), raw, productCacheTTL).Err(); err != nil {
		log.Debug().Err(err).Msg("product cache set failed")
	}
}

func (c *catalogCache) InvalidateProduct(ctx context.Context, id uuid.UUID) {
	if err := c.rdb.Del(ctx, productKeyPrefix+id.String()).Err(); err != nil {
		log.Debug().Err(err).Msg("product cache invalidation failed")
	}
}

func (c *catalogCache) InvalidateCatalog(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, productKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Debug().Err(err).Msg("catalog cache invalidation failed")
			return
		}
	}
	if err := iter.Err(); err != nil {
		log.Debug().Err(err).Msg("catalog cache scan failed")
	}
}
