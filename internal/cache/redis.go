package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/mtslabs/mts/internal/model"
)

const latestCommitTTL = time.Hour

func latestCommitKey(unitID string) string {
	return "unit:latest:" + unitID
}

var _ CommitCache = (*RedisCommitCache)(nil)

type RedisCommitCache struct {
	client *redis.Client
}

func NewRedisCommitCache(addr string) *RedisCommitCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // No password set
		DB:       0,  // Use default DB
		Protocol: 2,  // Connection protocol
	})

	return &RedisCommitCache{client: client}
}

func (r *RedisCommitCache) GetLatestCommit(ctx context.Context, unitID uuid.UUID) (*model.Commit, error) {
	res := r.client.Get(ctx, latestCommitKey(unitID.String()))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, nil
		}
		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	commit := &model.Commit{}
	if err := json.Unmarshal(buf, commit); err != nil {
		return nil, err
	}

	return commit, nil
}

func (r *RedisCommitCache) SetLatestCommit(ctx context.Context, commit *model.Commit) error {
	marshal, err := json.Marshal(commit)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, latestCommitKey(commit.UnitID.String()), marshal, latestCommitTTL).Err()
}

func (r *RedisCommitCache) DeleteLatestCommit(ctx context.Context, unitID uuid.UUID) error {
	return r.client.Del(ctx, latestCommitKey(unitID.String())).Err()
}
