package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nvoss/linkstash/internal/domain"
)

const (
	tagCachePrefix = "tags:"
	tagCacheTTL    = 2 * time.Minute
)

// TagCache fronts the unfiltered per-user tag listing. Filtered or
// workspace-scoped queries always go to the store; only the common
// autocomplete-priming read is cached.
type TagCache struct {
	client *Client
}

// NewTagCache creates a new tag cache
func NewTagCache(client *Client) *TagCache {
	return &TagCache{client: client}
}

// Get retrieves the cached tag listing for a user
func (c *TagCache) Get(ctx context.Context, userID uuid.UUID) ([]domain.TagWithCount, error) {
	key := fmt.Sprintf("%s%s", tagCachePrefix, userID.String())

	data, err := c.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, nil // Cache miss
	}

	var tags []domain.TagWithCount
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}

	return tags, nil
}

// Set caches the tag listing for a user
func (c *TagCache) Set(ctx context.Context, userID uuid.UUID, tags []domain.TagWithCount) error {
	key := fmt.Sprintf("%s%s", tagCachePrefix, userID.String())

	data, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	return c.client.rdb.Set(ctx, key, data, tagCacheTTL).Err()
}

// Invalidate removes the cached tag listing for a user
func (c *TagCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	key := fmt.Sprintf("%s%s", tagCachePrefix, userID.String())
	return c.client.rdb.Del(ctx, key).Err()
}
