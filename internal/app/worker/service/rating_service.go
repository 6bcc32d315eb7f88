package service

import (
	"context"
	"fmt"
	"log"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/worker/entity"
	"github.com/dawnthivakar/e-com-product-catalog/internal/app/worker/repository"
	"github.com/dawnthivakar/e-com-product-catalog/pkg/metrics"
)

// RatingService поддерживает агрегаты рейтингов товаров в Redis.
// События применяются инкрементально, а cron-сверка пересчитывает
// агрегаты из MongoDB и исправляет расхождения после повторных доставок
type RatingService struct {
	ratingRepo   repository.RatingRepository
	reviewReader repository.ReviewReader
}

// NewRatingService создает новый сервис агрегации рейтингов
func NewRatingService(
	ratingRepo repository.RatingRepository,
	reviewReader repository.ReviewReader,
) *RatingService {
	return &RatingService{
		ratingRepo:   ratingRepo,
		reviewReader: reviewReader,
	}
}

// ApplyReviewEvent применяет одно событие review-added к агрегату товара
func (s *RatingService) ApplyReviewEvent(ctx context.Context, event *entity.ReviewAddedEvent) error {
	if event.Rating < 1 || event.Rating > 5 {
		// Событие с невалидным рейтингом пропускаем, сверка все равно
		// пересчитает агрегат из MongoDB
		log.Printf("Skipping event %s with invalid rating %d", event.ReviewID, event.Rating)
		return nil
	}

	if err := s.ratingRepo.IncrementRating(ctx, event.ProductID, event.Rating); err != nil {
		return fmt.Errorf("failed to apply review event %s: %w", event.ReviewID, err)
	}

	metrics.RatingSummariesUpdated.WithLabelValues("event").Inc()
	return nil
}

// Reconcile пересчитывает все агрегаты из MongoDB и перезаписывает их в Redis
func (s *RatingService) Reconcile(ctx context.Context) error {
	aggregates, err := s.reviewReader.AggregateRatings(ctx)
	if err != nil {
		return fmt.Errorf("failed to read rating aggregates: %w", err)
	}

	for _, agg := range aggregates {
		summary := &entity.RatingSummary{
			ProductID:   agg.ProductID,
			ReviewCount: agg.ReviewCount,
			RatingSum:   agg.RatingSum,
		}

		if err := s.ratingRepo.SetSummary(ctx, summary); err != nil {
			return fmt.Errorf("failed to store summary for product %d: %w", agg.ProductID, err)
		}

		metrics.RatingSummariesUpdated.WithLabelValues("reconcile").Inc()
	}

	log.Printf("Reconciled rating summaries for %d products", len(aggregates))
	return nil
}

// GetSummary возвращает текущий агрегат рейтинга товара
func (s *RatingService) GetSummary(ctx context.Context, productID int64) (*entity.RatingSummary, error) {
	summary, err := s.ratingRepo.GetSummary(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating summary: %w", err)
	}

	return summary, nil
}
