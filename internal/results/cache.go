package results

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mind-engage/mindengage-psychometrics/internal/scoring"
)

// DefinitionCache fronts definition lookups. Misses and cache failures are
// indistinguishable to callers; the store stays authoritative.
type DefinitionCache interface {
	Get(ctx context.Context, id string) (scoring.Definition, bool)
	Set(ctx context.Context, def scoring.Definition)
	Delete(ctx context.Context, id string)
}

type NopCache struct{}

func (NopCache) Get(context.Context, string) (scoring.Definition, bool) { return scoring.Definition{}, false }
func (NopCache) Set(context.Context, scoring.Definition)                {}
func (NopCache) Delete(context.Context, string)                         {}

// RedisCache stores definitions as JSON under "psy:def:<id>".
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func defKey(id string) string { return "psy:def:" + id }

func (c *RedisCache) Get(ctx context.Context, id string) (scoring.Definition, bool) {
	raw, err := c.client.Get(ctx, defKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("definition cache get %s: %v", id, err)
		}
		return scoring.Definition{}, false
	}
	var def scoring.Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		log.Printf("definition cache decode %s: %v", id, err)
		return scoring.Definition{}, false
	}
	return def, true
}

func (c *RedisCache) Set(ctx context.Context, def scoring.Definition) {
	val, err := json.Marshal(def)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, defKey(def.ID), val, c.ttl).Err(); err != nil {
		log.Printf("definition cache set %s: %v", def.ID, err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, defKey(id)).Err(); err != nil {
		log.Printf("definition cache delete %s: %v", id, err)
	}
}
