package service

import (
	"context"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/worker/entity"
)

// RatingServiceInterface - интерфейс сервиса агрегации рейтингов
type RatingServiceInterface interface {
	ApplyReviewEvent(ctx context.Context, event *entity.ReviewAddedEvent) error
	Reconcile(ctx context.Context) error
	GetSummary(ctx context.Context, productID int64) (*entity.RatingSummary, error)
}
