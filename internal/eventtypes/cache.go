package eventtypes

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	iconKeyPrefix = "evtype:icon:" // Icon for a category value: evtype:icon:{value}
	catalogKey    = "evtype:catalog"
	cacheTTL      = 10 * time.Minute

	// Stored in place of a missing icon so repeated lookups for unknown
	// categories do not hit Firestore every time.
	missSentinel = "\x00none"
)

// Catalog is what chat provisioning and the HTTP layer read event types
// through. Both the raw Repo and the Cache satisfy it.
type Catalog interface {
	List(ctx context.Context) ([]EventType, error)
	IconFor(ctx context.Context, value string) (string, error)
}

// Cache is a read-through Redis cache in front of the Firestore catalog.
// Cache failures degrade to direct reads, they never fail a lookup.
type Cache struct {
	source Catalog
	client *redis.Client
}

func NewCache(source Catalog, client *redis.Client) *Cache {
	return &Cache{source: source, client: client}
}

func (c *Cache) List(ctx context.Context) ([]EventType, error) {
	data, err := c.client.Get(ctx, catalogKey).Result()
	if err == nil {
		var types []EventType
		if jsonErr := json.Unmarshal([]byte(data), &types); jsonErr == nil {
			return types, nil
		}
		// Corrupt entry, fall through and repopulate.
	} else if err != redis.Nil {
		log.Printf("[error] event type cache read failed: %v", err)
	}

	types, err := c.source.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(types); jsonErr == nil {
		if setErr := c.client.Set(ctx, catalogKey, data, cacheTTL).Err(); setErr != nil {
			log.Printf("[error] event type cache write failed: %v", setErr)
		}
	}
	return types, nil
}

func (c *Cache) IconFor(ctx context.Context, value string) (string, error) {
	key := iconKey(value)

	icon, err := c.client.Get(ctx, key).Result()
	if err == nil {
		if icon == missSentinel {
			return "", nil
		}
		return icon, nil
	}
	if err != redis.Nil {
		log.Printf("[error] event type cache read failed: %v", err)
	}

	icon, err = c.source.IconFor(ctx, value)
	if err != nil {
		return "", err
	}

	stored := icon
	if stored == "" {
		stored = missSentinel
	}
	if setErr := c.client.Set(ctx, key, stored, cacheTTL).Err(); setErr != nil {
		log.Printf("[error] event type cache write failed: %v", setErr)
	}
	return icon, nil
}

func iconKey(value string) string {
	return fmt.Sprintf("%s%s", iconKeyPrefix, value)
}
