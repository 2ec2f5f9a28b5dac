package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"professor-registry/internal/config"
	"professor-registry/internal/domain/professor"
	interfaces "professor-registry/internal/interfaces/infrastructure"

	"github.com/go-redis/redis/v8"
)

const professorListKey = "professors:all"

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCache{
		client: rdb,
	}
}

func NewRedisCacheWithConfig(cfg *config.CacheConfig) *RedisCache {
	return NewRedisCache(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), cfg.Password, cfg.DB)
}

func professorKey(id uint) string {
	return fmt.Sprintf("professor:%d", id)
}

func (r *RedisCache) GetProfessor(ctx context.Context, id uint) (*professor.Professor, error) {
	var p professor.Professor
	if err := r.getJSON(ctx, professorKey(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *RedisCache) SetProfessor(ctx context.Context, p *professor.Professor, ttl time.Duration) error {
	return r.setJSON(ctx, professorKey(p.ID), p, ttl)
}

func (r *RedisCache) InvalidateProfessor(ctx context.Context, id uint) error {
	err := r.client.Del(ctx, professorKey(id), professorListKey).Err()
	if err != nil {
		return fmt.Errorf("failed to invalidate professor %d: %w", id, err)
	}
	return nil
}

func (r *RedisCache) GetProfessorList(ctx context.Context) ([]*professor.Professor, error) {
	professors := []*professor.Professor{}
	if err := r.getJSON(ctx, professorListKey, &professors); err != nil {
		return nil, err
	}
	return professors, nil
}

func (r *RedisCache) SetProfessorList(ctx context.Context, professors []*professor.Professor, ttl time.Duration) error {
	return r.setJSON(ctx, professorListKey, professors, ttl)
}

func (r *RedisCache) InvalidateProfessorList(ctx context.Context) error {
	err := r.client.Del(ctx, professorListKey).Err()
	if err != nil {
		return fmt.Errorf("failed to invalidate professor list: %w", err)
	}
	return nil
}

func (r *RedisCache) getJSON(ctx context.Context, key string, dest any) error {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return interfaces.ErrCacheMiss
		}
		return fmt.Errorf("failed to get %s from cache: %w", key, err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

var _ interfaces.ProfessorCache = (*RedisCache)(nil)
