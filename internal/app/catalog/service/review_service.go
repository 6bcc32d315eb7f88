package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/catalog/entity"
	"github.com/dawnthivakar/e-com-product-catalog/internal/app/catalog/infrastructure"
	"github.com/dawnthivakar/e-com-product-catalog/internal/app/catalog/repository"
	"github.com/dawnthivakar/e-com-product-catalog/pkg/logger"
	"github.com/dawnthivakar/e-com-product-catalog/pkg/metrics"
)

var (
	// ErrUserServiceUnavailable - user-service недоступен, клиент может
	// повторить запрос позже. Никогда не схлопывается с "не зарегистрирован"
	ErrUserServiceUnavailable = errors.New("user verification service is temporarily unavailable")

	// ErrUserNotRegistered - пользователь с таким ID не существует,
	// повторять запрос бессмысленно
	ErrUserNotRegistered = errors.New("user is not registered")

	// ErrUserVerificationFailed - вернувшийся пользователь не совпадает
	// с автором отзыва
	ErrUserVerificationFailed = errors.New("user verification failed: user ID does not match")
)

// ReviewService обрабатывает бизнес-логику отзывов
// Путь записи: проверка пользователя в user-service -> сохранение в
// MongoDB -> отправка события в Kafka. Отзыв никогда не сохраняется
// без разрешившейся проверки пользователя
type ReviewService struct {
	reviewRepo    repository.ReviewRepository
	userClient    infrastructure.UserServiceClient
	kafkaProducer infrastructure.MessagePublisher
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	userClient infrastructure.UserServiceClient,
	kafkaProducer infrastructure.MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		userClient:    userClient,
		kafkaProducer: kafkaProducer,
	}
}

// AddReview создает новый отзыв
// 1. Проверяет автора через user-service (с fallback на маркерный ID)
// 2. Проставляет ReviewDate и сохраняет отзыв в MongoDB
// 3. Отправляет событие в Kafka; сбой отправки не откатывает сохранение
// До успешной проверки не выполняется ни одной записи и ни одной отправки
func (s *ReviewService) AddReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error) {
	user, err := s.userClient.GetUserByID(ctx, req.UserID)
	if err != nil {
		// Неожиданная ошибка клиента (fallback должен был ее поглотить)
		// нормализуется в недоступность, а не протекает наружу
		logger.Error().Err(err).Int64("user_id", req.UserID).Msg("Unexpected user verification error")
		metrics.ReviewsRejected.WithLabelValues("user_service_unavailable").Inc()
		return nil, ErrUserServiceUnavailable
	}

	if user.IsFallback() {
		metrics.ReviewsRejected.WithLabelValues("user_service_unavailable").Inc()
		return nil, ErrUserServiceUnavailable
	}

	if user.ID == nil {
		metrics.ReviewsRejected.WithLabelValues("user_not_registered").Inc()
		return nil, ErrUserNotRegistered
	}

	if *user.ID != req.UserID {
		metrics.ReviewsRejected.WithLabelValues("user_mismatch").Inc()
		return nil, ErrUserVerificationFailed
	}

	review := &entity.Review{
		ProductID:  req.ProductID,
		UserID:     req.UserID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		ReviewDate: time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	metrics.ReviewsCreated.Inc()

	// Событие строится из сохраненного отзыва; граница успеха для
	// клиента - сохранение, не доставка события
	event := entity.ReviewAddedEvent{
		ReviewID:   review.ID.Hex(),
		ProductID:  review.ProductID,
		UserID:     review.UserID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		ReviewDate: review.ReviewDate,
	}

	if err := s.publishReviewEvent(ctx, event); err != nil {
		logger.Error().
			Err(err).
			Str("review_id", event.ReviewID).
			Msg("Failed to publish review added event")
	}

	return review, nil
}

// GetReviewsByProduct получает все отзывы по ID товара
// Чистое чтение без кеширования и побочных эффектов
func (s *ReviewService) GetReviewsByProduct(ctx context.Context, productID int64) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}

// GetUserReviews получает все отзывы пользователя
func (s *ReviewService) GetUserReviews(ctx context.Context, userID int64) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user reviews: %w", err)
	}

	return reviews, nil
}

// publishReviewEvent отправляет событие об отзыве в Kafka
// Ключ = ReviewID для партиционирования
func (s *ReviewService) publishReviewEvent(ctx context.Context, event entity.ReviewAddedEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal review event: %w", err)
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.ReviewID, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
