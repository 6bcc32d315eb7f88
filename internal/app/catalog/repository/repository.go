package repository

import (
	"context"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/catalog/entity"
)

// ProductRepository определяет методы для работы с товарами в PostgreSQL
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
}

// ReviewRepository определяет методы для работы с отзывами в MongoDB
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByProductID(ctx context.Context, productID int64) ([]entity.Review, error)
	GetByUserID(ctx context.Context, userID int64) ([]entity.Review, error)
}
