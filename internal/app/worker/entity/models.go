package entity

import (
	"fmt"
	"time"
)

// ReviewAddedEvent - событие из топика review-added-events
// Доставка at-least-once: событие может прийти повторно, поэтому
// периодическая сверка с MongoDB является источником истины
type ReviewAddedEvent struct {
	ReviewID   string    `json:"review_id"`
	ProductID  int64     `json:"product_id"`
	UserID     int64     `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	ReviewDate time.Time `json:"review_date"`
}

// RatingSummary - агрегат рейтинга товара в Redis
type RatingSummary struct {
	ProductID   int64     `json:"product_id"`
	ReviewCount int64     `json:"review_count"`
	RatingSum   int64     `json:"rating_sum"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Average возвращает средний рейтинг товара
func (s *RatingSummary) Average() float64 {
	if s.ReviewCount == 0 {
		return 0
	}
	return float64(s.RatingSum) / float64(s.ReviewCount)
}

// ProductRatingAggregate - результат сверки по MongoDB
type ProductRatingAggregate struct {
	ProductID   int64 `bson:"_id"`
	ReviewCount int64 `bson:"review_count"`
	RatingSum   int64 `bson:"rating_sum"`
}

// RatingKey возвращает ключ Redis для агрегата рейтинга товара
func RatingKey(productID int64) string {
	return fmt.Sprintf("ratings:%d", productID)
}
