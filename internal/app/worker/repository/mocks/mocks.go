package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/worker/entity"
)

// MockRatingRepository мок для RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) IncrementRating(ctx context.Context, productID int64, rating int) error {
	args := m.Called(ctx, productID, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) GetSummary(ctx context.Context, productID int64) (*entity.RatingSummary, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RatingSummary), args.Error(1)
}

func (m *MockRatingRepository) SetSummary(ctx context.Context, summary *entity.RatingSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockRatingRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockReviewReader мок для ReviewReader
type MockReviewReader struct {
	mock.Mock
}

func (m *MockReviewReader) AggregateRatings(ctx context.Context) ([]entity.ProductRatingAggregate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProductRatingAggregate), args.Error(1)
}
