package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"nxn_tictactoe/internal/domain/board"
)

const moveKeyPrefix = "nxn:move:"

// MoveCacheRedis keeps engine results as compact board keys.
type MoveCacheRedis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMoveCacheRedis(client *redis.Client, ttl time.Duration) *MoveCacheRedis {
	return &MoveCacheRedis{
		client: client,
		ttl:    ttl,
	}
}

func (m *MoveCacheRedis) GetMove(ctx context.Context, key string) (board.Board, bool, error) {
	v, err := m.client.Get(ctx, moveKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return board.Board{}, false, nil
	}
	if err != nil {
		return board.Board{}, false, err
	}
	b, err := board.ParseKey(v)
	if err != nil {
		return board.Board{}, false, fmt.Errorf("corrupt move cache entry %s: %w", key, err)
	}
	return b, true, nil
}

func (m *MoveCacheRedis) SaveMove(ctx context.Context, key string, b board.Board) error {
	return m.client.Set(ctx, moveKeyPrefix+key, b.Key(), m.ttl).Err()
}
