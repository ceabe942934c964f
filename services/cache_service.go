package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheService invalidates read-model keys for entities flagged stale
// by the write paths. Core logic never calls redis directly; it emits
// StaleEntity values and the HTTP layer hands them here.
type CacheService struct {
	Client *redis.Client
}

func NewCacheService(client *redis.Client) *CacheService {
	return &CacheService{Client: client}
}

func entityKey(e StaleEntity) string {
	return fmt.Sprintf("triply:%s:%d", e.EntityType, e.EntityID)
}

// Invalidate drops the read-model keys for the given stale entities.
// Best-effort: a nil client or a redis failure only logs.
func (s *CacheService) Invalidate(ctx context.Context, events ...*StaleEntity) {
	if s == nil || s.Client == nil {
		return
	}
	keys := make([]string, 0, len(events))
	for _, e := range events {
		if e != nil {
			keys = append(keys, entityKey(*e))
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := s.Client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("warning: cache invalidation failed for %v: %v", keys, err)
	}
}

// GetJSON reads a cached read-model blob; a miss returns ("", nil).
func (s *CacheService) GetJSON(ctx context.Context, e StaleEntity) (string, error) {
	if s == nil || s.Client == nil {
		return "", nil
	}
	val, err := s.Client.Get(ctx, entityKey(e)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("cache get: %w", err)
	}
	return val, nil
}

// SetJSON stores a read-model blob with a TTL.
func (s *CacheService) SetJSON(ctx context.Context, e StaleEntity, payload string, ttl time.Duration) error {
	if s == nil || s.Client == nil {
		return nil
	}
	if err := s.Client.Set(ctx, entityKey(e), payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
