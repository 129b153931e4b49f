package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"greenhouse_monitor/internal/models"
)

// LatestSnapshotKey holds the JSON of the most recent snapshot.
const LatestSnapshotKey = "greenhouse:snapshot:latest"

// SnapshotRedis caches the latest snapshot under a single key, so several
// dashboard replicas can serve the same reading set.
type SnapshotRedis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotRedis uses ttl as key expiry; zero keeps the key forever.
func NewSnapshotRedis(client *redis.Client, ttl time.Duration) *SnapshotRedis {
	return &SnapshotRedis{client: client, ttl: ttl}
}

func (r *SnapshotRedis) Save(ctx context.Context, s models.Snapshot) error {
	data, err := encodeSnapshot(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, LatestSnapshotKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", LatestSnapshotKey, err)
	}
	return nil
}

func (r *SnapshotRedis) Latest(ctx context.Context) (models.Snapshot, error) {
	data, err := r.client.Get(ctx, LatestSnapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Snapshot{}, ErrNotFound
		}
		return models.Snapshot{}, fmt.Errorf("redis get %s: %w", LatestSnapshotKey, err)
	}
	return decodeSnapshot(data)
}

func encodeSnapshot(s models.Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (models.Snapshot, error) {
	var s models.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	s.GeneratedAt = s.GeneratedAt.UTC()
	return s, nil
}
