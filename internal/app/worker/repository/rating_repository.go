package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/worker/entity"
)

// ratingRepository реализует RatingRepository для работы с Redis
// Агрегат хранится как hash: count, sum и updated_at (unix-секунды)
type ratingRepository struct {
	client *redis.Client
}

// NewRatingRepository создает новый репозиторий агрегатов рейтингов
func NewRatingRepository(client *redis.Client) RatingRepository {
	return &ratingRepository{client: client}
}

// IncrementRating инкрементально применяет один отзыв к агрегату товара
func (r *ratingRepository) IncrementRating(ctx context.Context, productID int64, rating int) error {
	key := entity.RatingKey(productID)

	// Pipeline: count, sum и updated_at обновляются одной отправкой
	pipe := r.client.Pipeline()
	pipe.HIncrBy(ctx, key, "count", 1)
	pipe.HIncrBy(ctx, key, "sum", int64(rating))
	pipe.HSet(ctx, key, "updated_at", time.Now().Unix())

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment rating summary: %w", err)
	}

	return nil
}

// GetSummary получает агрегат рейтинга товара
// Возвращает nil, nil если агрегата еще нет
func (r *ratingRepository) GetSummary(ctx context.Context, productID int64) (*entity.RatingSummary, error) {
	key := entity.RatingKey(productID)

	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get rating summary from redis: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	summary := &entity.RatingSummary{ProductID: productID}
	if _, err := fmt.Sscan(fields["count"], &summary.ReviewCount); err != nil {
		return nil, fmt.Errorf("invalid count field for product %d: %w", productID, err)
	}
	if _, err := fmt.Sscan(fields["sum"], &summary.RatingSum); err != nil {
		return nil, fmt.Errorf("invalid sum field for product %d: %w", productID, err)
	}
	if raw, ok := fields["updated_at"]; ok {
		var unix int64
		if _, err := fmt.Sscan(raw, &unix); err == nil {
			summary.UpdatedAt = time.Unix(unix, 0)
		}
	}

	return summary, nil
}

// SetSummary перезаписывает агрегат целиком (используется при сверке)
func (r *ratingRepository) SetSummary(ctx context.Context, summary *entity.RatingSummary) error {
	key := entity.RatingKey(summary.ProductID)

	err := r.client.HSet(ctx, key,
		"count", summary.ReviewCount,
		"sum", summary.RatingSum,
		"updated_at", time.Now().Unix(),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to set rating summary in redis: %w", err)
	}

	return nil
}

// Close закрывает соединение с Redis
func (r *ratingRepository) Close() error {
	return r.client.Close()
}
