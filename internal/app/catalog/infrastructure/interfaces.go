package infrastructure

import (
	"context"
	"time"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/catalog/entity"
)

// UserServiceClient интерфейс для проверки пользователя в user-service
// Используется для dependency injection и упрощения тестирования
type UserServiceClient interface {
	GetUserByID(ctx context.Context, userID int64) (*entity.User, error)
}

// ProductCache интерфейс для работы с Redis кешем товаров
type ProductCache interface {
	SetProduct(ctx context.Context, product *entity.Product, ttl time.Duration) error
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
