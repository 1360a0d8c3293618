package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/redis/go-redis/v9"
)

const activePlansKey = "novafunded:plans:active"

type PlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPlanCache(client *redis.Client, ttl time.Duration) *PlanCache {
	return &PlanCache{client: client, ttl: ttl}
}

// ActivePlans reports ok=false on a miss.
func (c *PlanCache) ActivePlans(ctx context.Context) ([]domain.TradingPlan, bool, error) {
	b, err := c.client.Get(ctx, activePlansKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var plans []domain.TradingPlan
	if err := json.Unmarshal(b, &plans); err != nil {
		return nil, false, err
	}
	return plans, true, nil
}

func (c *PlanCache) SetActivePlans(ctx context.Context, plans []domain.TradingPlan) error {
	b, err := json.Marshal(plans)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, activePlansKey, b, c.ttl).Err()
}

func (c *PlanCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, activePlansKey).Err()
}
