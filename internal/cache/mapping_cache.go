package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"forcepulse/internal/model"

	"github.com/redis/go-redis/v9"
)

// MappingCache memoizes question-force mappings in front of MongoDB.
// Mappings are immutable once created, so a long TTL is safe.
type MappingCache interface {
	Get(ctx context.Context, questionID string) (*model.QuestionForceMapping, error)
	Set(ctx context.Context, mapping *model.QuestionForceMapping) error
}

type mappingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMappingCache creates a new mapping cache
func NewMappingCache(client *redis.Client) MappingCache {
	return &mappingCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *mappingCache) key(questionID string) string {
	return fmt.Sprintf("q:%s:mapping", questionID)
}

func (c *mappingCache) Get(ctx context.Context, questionID string) (*model.QuestionForceMapping, error) {
	data, err := c.client.Get(ctx, c.key(questionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var mapping model.QuestionForceMapping
	if err := json.Unmarshal([]byte(data), &mapping); err != nil {
		return nil, err
	}
	return &mapping, nil
}

func (c *mappingCache) Set(ctx context.Context, mapping *model.QuestionForceMapping) error {
	data, err := json.Marshal(mapping)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(mapping.QuestionID), data, c.ttl).Err()
}
