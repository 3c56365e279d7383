package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ecomers/internal/app/storefront/entity"
	"ecomers/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	categoriesCacheKey = "categories:all"
	brandsCacheKey     = "brands:all"

	serviceName = "storefront"
)

// RedisClient кеширует справочники каталога (категории и бренды)
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient подключается к Redis и проверяет соединение через ping
func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// NewRedisClientFromExisting оборачивает существующее соединение (используется в тестах)
func NewRedisClientFromExisting(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

// Client возвращает нижележащее соединение для переиспользования
// (хранилище refresh токенов живет в том же Redis)
func (r *RedisClient) Client() *redis.Client {
	return r.client
}

func (r *RedisClient) SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error {
	return r.setList(ctx, categoriesCacheKey, categories, ttl)
}

func (r *RedisClient) GetCategories(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	if err := r.getList(ctx, categoriesCacheKey, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *RedisClient) DeleteCategories(ctx context.Context) error {
	return r.deleteKey(ctx, categoriesCacheKey)
}

func (r *RedisClient) SetBrands(ctx context.Context, brands []entity.Brand, ttl time.Duration) error {
	return r.setList(ctx, brandsCacheKey, brands, ttl)
}

func (r *RedisClient) GetBrands(ctx context.Context) ([]entity.Brand, error) {
	var brands []entity.Brand
	if err := r.getList(ctx, brandsCacheKey, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *RedisClient) DeleteBrands(ctx context.Context) error {
	return r.deleteKey(ctx, brandsCacheKey)
}

// setList сериализует список в JSON и кладет его в кеш с TTL
func (r *RedisClient) setList(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}

	return nil
}

// getList читает список из кеша; отсутствие ключа оставляет dst пустым
func (r *RedisClient) getList(ctx context.Context, key string, dst interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(serviceName, key)
			return nil
		}
		return fmt.Errorf("failed to get %s from cache: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	metrics.RecordCacheHit(serviceName, key)
	return nil
}

func (r *RedisClient) deleteKey(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s from cache: %w", key, err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
