// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package importer

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Checkpoint persists the catalog offset a run reached, so an interrupted
// import can resume instead of re-walking the whole listing.
type Checkpoint interface {
	// Load returns the saved offset, or 0 when no checkpoint exists.
	Load(ctx context.Context) (int, error)

	// Save records the offset of the page about to be fetched.
	Save(ctx context.Context, offset int) error

	// Clear removes the checkpoint after a run completes.
	Clear(ctx context.Context) error
}

const (
	checkpointKey = "importer:offset"

	// checkpointTTL bounds staleness: a checkpoint older than this refers
	// to a listing snapshot too old to be worth resuming into.
	checkpointTTL = 48 * time.Hour
)

// RedisCheckpoint stores the offset under a single Redis key.
type RedisCheckpoint struct {
	client *redis.Client
}

// NewRedisCheckpoint constructs a Redis-backed [Checkpoint].
func NewRedisCheckpoint(client *redis.Client) *RedisCheckpoint {
	return &RedisCheckpoint{client: client}
}

func (checkpoint *RedisCheckpoint) Load(ctx context.Context) (int, error) {
	value, err := checkpoint.client.Get(ctx, checkpointKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	offset, err := strconv.Atoi(value)
	if err != nil || offset < 0 {
		// A corrupt checkpoint restarts from the top.
		return 0, nil
	}

	return offset, nil
}

func (checkpoint *RedisCheckpoint) Save(ctx context.Context, offset int) error {
	return checkpoint.client.Set(ctx, checkpointKey, strconv.Itoa(offset), checkpointTTL).Err()
}

func (checkpoint *RedisCheckpoint) Clear(ctx context.Context) error {
	return checkpoint.client.Del(ctx, checkpointKey).Err()
}

// NoopCheckpoint is used when no Redis instance is configured: every run
// starts from offset 0.
type NoopCheckpoint struct{}

func (NoopCheckpoint) Load(context.Context) (int, error) { return 0, nil }
func (NoopCheckpoint) Save(context.Context, int) error   { return nil }
func (NoopCheckpoint) Clear(context.Context) error       { return nil }
