package app

import (
	"context"
	"encoding/json"
	"errors"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
	"github.com/collabhub/coordinator/internal/services/coordinator/storage"
)

// readThroughCache fetches fresh remote state and snapshots it on success.
// When the backend is unreachable it falls back to the last snapshot, so a
// network outage degrades reads to recent data instead of failing them.
// Errors other than unreachability propagate untouched.
func readThroughCache[T any](ctx context.Context, c *Coordinator, kind, key string, fetch func(context.Context) (T, error)) (T, error) {
	value, err := fetch(ctx)
	if err == nil {
		c.cacheStore(ctx, kind, key, value)
		return value, nil
	}
	if c.cache == nil || apperrors.CodeOf(err) != apperrors.CodeNetworkUnavailable {
		return value, err
	}

	snapshot, cacheErr := c.cache.Snapshot(ctx, kind, key)
	if cacheErr != nil {
		if !errors.Is(cacheErr, storage.ErrNotFound) {
			c.logger.Printf("[coordinator] snapshot load %s/%s failed: %v", kind, key, cacheErr)
		}
		return value, err
	}

	var cached T
	if unmarshalErr := json.Unmarshal(snapshot.Payload, &cached); unmarshalErr != nil {
		c.logger.Printf("[coordinator] snapshot decode %s/%s failed: %v", kind, key, unmarshalErr)
		return value, err
	}
	c.logger.Printf("[coordinator] backend unreachable, serving %s/%s snapshot from %s", kind, key, snapshot.StoredAt.Format("2006-01-02T15:04:05Z07:00"))
	return cached, nil
}

func (c *Coordinator) cacheStore(ctx context.Context, kind, key string, value any) {
	if c.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Printf("[coordinator] snapshot encode %s/%s failed: %v", kind, key, err)
		return
	}
	if err := c.cache.SaveSnapshot(ctx, storage.Snapshot{
		Kind:     kind,
		Key:      key,
		Payload:  payload,
		StoredAt: c.now().UTC(),
	}); err != nil {
		c.logger.Printf("[coordinator] snapshot save %s/%s failed: %v", kind, key, err)
	}
}
