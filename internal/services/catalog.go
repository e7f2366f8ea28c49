package services

import (
	"context"
	"sync"
	"time"

	"fliptips/backend-go/internal/config"
	"fliptips/backend-go/internal/models"
)

// CatalogCache holds the parsed item catalog for the lifetime of the
// process, indexed by item id. The mutex is held across a refresh so
// concurrent callers arriving during one all observe the same refresh
// completing instead of fetching the mapping feed in parallel.
type CatalogCache struct {
	feeds *FeedClient
	ttl   time.Duration

	mu        sync.Mutex
	byID      map[int]models.MappingItem
	fetchedAt time.Time
}

func NewCatalogCache(cfg config.Config, feeds *FeedClient) *CatalogCache {
	return &CatalogCache{
		feeds: feeds,
		ttl:   cfg.CacheTTL,
	}
}

// Get returns the catalog indexed by id, refreshing it synchronously when
// empty or older than the TTL. The returned map is replaced wholesale on
// refresh and must be treated as read-only by callers.
func (c *CatalogCache) Get(ctx context.Context) (map[int]models.MappingItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.byID) > 0 && time.Since(c.fetchedAt) < c.ttl {
		return c.byID, nil
	}

	var items []models.MappingItem
	if err := c.feeds.FetchJSON(ctx, "/mapping", &items); err != nil {
		return nil, err
	}

	byID := make(map[int]models.MappingItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	c.byID = byID
	c.fetchedAt = time.Now()
	return c.byID, nil
}
