package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"devlavka/internal/app/store/entity"
	"devlavka/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	publicCategoriesKey = "catalog:public:categories"
	publicProductsKey   = "catalog:public:products"

	cacheService = "store-api"
)

// RedisClient кеширует публичные выдачи каталога.
// Кеш инвалидируется при любой мутации категории или товара.
type RedisClient struct {
	client *redis.Client
}

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

// NewRedisClientWith оборачивает готовый клиент (используется в тестах)
func NewRedisClientWith(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

func (r *RedisClient) SetPublicCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error {
	return r.set(ctx, publicCategoriesKey, categories, ttl)
}

func (r *RedisClient) GetPublicCategories(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	ok, err := r.get(ctx, publicCategoriesKey, &categories)
	if err != nil || !ok {
		return nil, err
	}
	return categories, nil
}

func (r *RedisClient) SetPublicProducts(ctx context.Context, products []entity.Product, ttl time.Duration) error {
	return r.set(ctx, publicProductsKey, products, ttl)
}

func (r *RedisClient) GetPublicProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	ok, err := r.get(ctx, publicProductsKey, &products)
	if err != nil || !ok {
		return nil, err
	}
	return products, nil
}

// InvalidateCatalog сбрасывает оба публичных ключа.
// Товары включают категории, поэтому мутация категории трогает обе выдачи.
func (r *RedisClient) InvalidateCatalog(ctx context.Context) error {
	if err := r.client.Del(ctx, publicCategoriesKey, publicProductsKey).Err(); err != nil {
		metrics.RecordRedisError(cacheService, metrics.RedisOpDel)
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		metrics.RecordRedisError(cacheService, metrics.RedisOpSet)
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

// get возвращает (false, nil) при промахе кеша
func (r *RedisClient) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(cacheService, key)
			return false, nil
		}
		metrics.RecordRedisError(cacheService, metrics.RedisOpGet)
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	metrics.RecordCacheHit(cacheService, key)
	return true, nil
}
