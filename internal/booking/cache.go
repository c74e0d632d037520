package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// SlotCache caches the booked-slot listing per (ground, date). The listing is
// polled by the booking page, so even a short TTL takes real load off the
// database. A nil SlotCache (or nil client) disables caching entirely; all
// methods degrade to no-ops.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotCache(client *redis.Client, ttl time.Duration) *SlotCache {
	if client == nil {
		return nil
	}
	return &SlotCache{client: client, ttl: ttl}
}

func slotKey(groundID string, date time.Time) string {
	return fmt.Sprintf("slots:%s:%s", groundID, date.Format("2006-01-02"))
}

// Get returns the cached slots and whether the key was present.
func (c *SlotCache) Get(ctx context.Context, groundID string, date time.Time) ([]string, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, slotKey(groundID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, groundID string, date time.Time, slots []string) {
	if c == nil {
		return
	}
	if slots == nil {
		slots = []string{}
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, slotKey(groundID, date), raw, c.ttl).Err(); err != nil {
		log.Printf("slot cache set failed: %v", err)
	}
}

// Invalidate drops the cached listing after a write touching (ground, date).
func (c *SlotCache) Invalidate(ctx context.Context, groundID string, date time.Time) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, slotKey(groundID, date)).Err(); err != nil {
		log.Printf("slot cache invalidate failed: %v", err)
	}
}
