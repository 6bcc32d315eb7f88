package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/worker/entity"
)

// RatingRepositoryTestSuite тестовый suite для Redis repository
type RatingRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	repo      RatingRepository
}

func TestRatingRepositorySuite(t *testing.T) {
	suite.Run(t, new(RatingRepositoryTestSuite))
}

func (s *RatingRepositoryTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	})

	s.repo = NewRatingRepository(s.client)
}

func (s *RatingRepositoryTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *RatingRepositoryTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

// ===================== IncrementRating Tests =====================

func (s *RatingRepositoryTestSuite) TestIncrementRating_CreatesSummary() {
	ctx := context.Background()

	// Act
	err := s.repo.IncrementRating(ctx, 1, 5)

	// Assert
	s.NoError(err)

	summary, err := s.repo.GetSummary(ctx, 1)
	s.NoError(err)
	s.Require().NotNil(summary)
	s.Equal(int64(1), summary.ProductID)
	s.Equal(int64(1), summary.ReviewCount)
	s.Equal(int64(5), summary.RatingSum)
}

func (s *RatingRepositoryTestSuite) TestIncrementRating_Accumulates() {
	ctx := context.Background()

	// Arrange - три отзыва на один товар
	s.NoError(s.repo.IncrementRating(ctx, 1, 5))
	s.NoError(s.repo.IncrementRating(ctx, 1, 3))
	s.NoError(s.repo.IncrementRating(ctx, 1, 4))

	// Act
	summary, err := s.repo.GetSummary(ctx, 1)

	// Assert
	s.NoError(err)
	s.Require().NotNil(summary)
	s.Equal(int64(3), summary.ReviewCount)
	s.Equal(int64(12), summary.RatingSum)
	s.Equal(4.0, summary.Average())
}

func (s *RatingRepositoryTestSuite) TestIncrementRating_SeparateProducts() {
	ctx := context.Background()

	s.NoError(s.repo.IncrementRating(ctx, 1, 5))
	s.NoError(s.repo.IncrementRating(ctx, 2, 1))

	first, err := s.repo.GetSummary(ctx, 1)
	s.NoError(err)
	s.Require().NotNil(first)
	s.Equal(int64(5), first.RatingSum)

	second, err := s.repo.GetSummary(ctx, 2)
	s.NoError(err)
	s.Require().NotNil(second)
	s.Equal(int64(1), second.RatingSum)
}

// ===================== GetSummary Tests =====================

func (s *RatingRepositoryTestSuite) TestGetSummary_NotFound() {
	ctx := context.Background()

	// Act - агрегата для товара еще нет
	summary, err := s.repo.GetSummary(ctx, 99)

	// Assert
	s.NoError(err)
	s.Nil(summary)
}

// ===================== SetSummary Tests =====================

func (s *RatingRepositoryTestSuite) TestSetSummary_OverwritesIncrements() {
	ctx := context.Background()

	// Arrange - инкременты разошлись с источником истины
	s.NoError(s.repo.IncrementRating(ctx, 1, 5))
	s.NoError(s.repo.IncrementRating(ctx, 1, 5))

	// Act - сверка перезаписывает агрегат
	err := s.repo.SetSummary(ctx, &entity.RatingSummary{
		ProductID:   1,
		ReviewCount: 1,
		RatingSum:   5,
	})

	// Assert
	s.NoError(err)

	summary, err := s.repo.GetSummary(ctx, 1)
	s.NoError(err)
	s.Require().NotNil(summary)
	s.Equal(int64(1), summary.ReviewCount)
	s.Equal(int64(5), summary.RatingSum)
	s.False(summary.UpdatedAt.IsZero())
}
