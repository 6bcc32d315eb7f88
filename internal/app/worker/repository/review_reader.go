package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/worker/entity"
)

const reviewsCollection = "reviews"

// reviewReader читает отзывы из MongoDB для пересчета агрегатов
type reviewReader struct {
	collection *mongo.Collection
}

// NewReviewReader создает ReviewReader поверх коллекции отзывов
func NewReviewReader(db *mongo.Database) ReviewReader {
	return &reviewReader{
		collection: db.Collection(reviewsCollection),
	}
}

// AggregateRatings группирует все отзывы по товару и считает count и sum рейтингов
func (r *reviewReader) AggregateRatings(ctx context.Context) ([]entity.ProductRatingAggregate, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$product_id"},
			{Key: "review_count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "rating_sum", Value: bson.D{{Key: "$sum", Value: "$rating"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var aggregates []entity.ProductRatingAggregate
	if err := cursor.All(ctx, &aggregates); err != nil {
		return nil, fmt.Errorf("failed to decode rating aggregates: %w", err)
	}

	return aggregates, nil
}
