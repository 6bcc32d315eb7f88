package service

import (
	"context"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/catalog/entity"
)

type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetProductByID(ctx context.Context, id int64) (*entity.Product, error)
	GetAllProducts(ctx context.Context) ([]entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type ReviewServiceInterface interface {
	AddReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error)
	GetReviewsByProduct(ctx context.Context, productID int64) ([]entity.Review, error)
	GetUserReviews(ctx context.Context, userID int64) ([]entity.Review, error)
}
