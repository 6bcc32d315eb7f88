package repository

import (
	"context"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/worker/entity"
)

// RatingRepository - интерфейс для работы с агрегатами рейтингов в Redis
type RatingRepository interface {
	IncrementRating(ctx context.Context, productID int64, rating int) error
	GetSummary(ctx context.Context, productID int64) (*entity.RatingSummary, error)
	SetSummary(ctx context.Context, summary *entity.RatingSummary) error
	Close() error
}

// ReviewReader - интерфейс чтения отзывов из MongoDB для сверки агрегатов
type ReviewReader interface {
	AggregateRatings(ctx context.Context) ([]entity.ProductRatingAggregate, error)
}
