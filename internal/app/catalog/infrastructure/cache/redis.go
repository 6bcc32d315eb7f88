package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/catalog/entity"
	"github.com/dawnthivakar/e-com-product-catalog/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	productKeyPrefix = "products"
	serviceName      = "product-catalog"
)

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

// NewRedisClientWithConn создает обертку над уже подключенным клиентом
// Используется в тестах с miniredis
func NewRedisClientWithConn(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

func productKey(id int64) string {
	return fmt.Sprintf("%s:%d", productKeyPrefix, id)
}

// SetProduct кладет товар в кеш с TTL
func (r *RedisClient) SetProduct(ctx context.Context, product *entity.Product, ttl time.Duration) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	if err := r.client.Set(ctx, productKey(product.ID), data, ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set product in cache: %w", err)
	}

	return nil
}

// GetProduct достает товар из кеша
// Возвращает nil, nil при промахе
func (r *RedisClient) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	data, err := r.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(serviceName, productKeyPrefix)
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get product from cache: %w", err)
	}

	var product entity.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	metrics.RecordCacheHit(serviceName, productKeyPrefix)
	return &product, nil
}

// DeleteProduct убирает товар из кеша
func (r *RedisClient) DeleteProduct(ctx context.Context, id int64) error {
	if err := r.client.Del(ctx, productKey(id)).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete product from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
