package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/phambaophuc/guru-scan/internal/config"
	"github.com/phambaophuc/guru-scan/internal/models"
)

// ResultCache keeps normalized search results keyed by the hosted image URL,
// so re-scanning the same hosted image skips the provider round trip. All
// operations are best-effort; a broken cache never affects a scan.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewResultCache(cfg config.RedisConfig, logger *zap.Logger) *ResultCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &ResultCache{
		client: client,
		ttl:    cfg.CacheTTL,
		logger: logger,
	}
}

// Get returns cached results for the hosted URL, or false on a miss or any
// cache failure.
func (c *ResultCache) Get(ctx context.Context, hostedURL string) ([]models.MatchResult, bool) {
	data, err := c.client.Get(ctx, cacheKey(hostedURL)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Cache get failed", zap.Error(err))
		}
		return nil, false
	}

	var results []models.MatchResult
	if err := json.Unmarshal(data, &results); err != nil {
		c.logger.Warn("Discarding unreadable cache entry", zap.Error(err))
		return nil, false
	}
	return results, true
}

// Set stores results for the hosted URL. Demo fallback results must not be
// cached; callers enforce that.
func (c *ResultCache) Set(ctx context.Context, hostedURL string, results []models.MatchResult) {
	data, err := json.Marshal(results)
	if err != nil {
		c.logger.Warn("Cache set failed", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, cacheKey(hostedURL), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache set failed", zap.Error(err))
	}
}

// Ping reports cache reachability for health checks.
func (c *ResultCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func cacheKey(hostedURL string) string {
	return fmt.Sprintf("scan_cache:%x", md5.Sum([]byte(hostedURL)))
}
