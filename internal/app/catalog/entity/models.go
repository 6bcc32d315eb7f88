package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product представляет товар в каталоге
// Авторитетная копия хранится в PostgreSQL, кеш в Redis держит
// только временную копию с TTL
type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Review представляет отзыв о товаре
// ReviewDate проставляется сервисом после успешной проверки пользователя,
// никогда - клиентом
type Review struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProductID  int64              `json:"product_id" bson:"product_id"`
	UserID     int64              `json:"user_id" bson:"user_id"`
	Rating     int                `json:"rating" bson:"rating"` // Оценка от 1 до 5
	Comment    string             `json:"comment" bson:"comment"`
	ReviewDate time.Time          `json:"review_date" bson:"review_date"`
}

// User - ответ user-service на запрос проверки пользователя
// Нулевой указатель ID означает "пользователь не зарегистрирован",
// FallbackUserID - "user-service недоступен"; эти два случая нельзя смешивать
type User struct {
	ID    *int64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FallbackUserID - маркер деградированного ответа user-service
const FallbackUserID int64 = -1

// IsFallback сообщает, что ответ пришёл из fallback, а не от user-service
func (u *User) IsFallback() bool {
	return u.ID != nil && *u.ID == FallbackUserID
}

// ReviewAddedEvent - событие для Kafka, снимок сохранённого отзыва
type ReviewAddedEvent struct {
	ReviewID   string    `json:"review_id"`
	ProductID  int64     `json:"product_id"`
	UserID     int64     `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	ReviewDate time.Time `json:"review_date"`
}
