package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"forcepulse/internal/model"

	"github.com/redis/go-redis/v9"
)

// AggregateCache keeps the latest survey aggregate hot for dashboard reads.
// MongoDB stays the source of truth; the cache is refreshed on every
// aggregation run.
type AggregateCache interface {
	Get(ctx context.Context, surveyID string) (*model.AggregateForceScore, error)
	Set(ctx context.Context, agg *model.AggregateForceScore) error
	Invalidate(ctx context.Context, surveyID string) error
}

type aggregateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAggregateCache creates a new aggregate cache
func NewAggregateCache(client *redis.Client) AggregateCache {
	return &aggregateCache{
		client: client,
		ttl:    1 * time.Hour,
	}
}

func (c *aggregateCache) key(surveyID string) string {
	return fmt.Sprintf("survey:%s:aggregate", surveyID)
}

func (c *aggregateCache) Get(ctx context.Context, surveyID string) (*model.AggregateForceScore, error) {
	data, err := c.client.Get(ctx, c.key(surveyID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var agg model.AggregateForceScore
	if err := json.Unmarshal([]byte(data), &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

func (c *aggregateCache) Set(ctx context.Context, agg *model.AggregateForceScore) error {
	data, err := json.Marshal(agg)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(agg.SurveyID), data, c.ttl).Err()
}

func (c *aggregateCache) Invalidate(ctx context.Context, surveyID string) error {
	return c.client.Del(ctx, c.key(surveyID)).Err()
}
