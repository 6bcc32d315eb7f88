package service

import (
	"context"
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
	// Ошибки бизнес-логики для обработки в handlers
	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product with this name already exists")
)

// ProductService обрабатывает бизнес-логику каталога товаров
// Координирует репозиторий PostgreSQL и Redis кеш по схеме cache-aside:
// чтение наполняет кеш при промахе, каждая успешная запись в хранилище
// сразу отражается в кеше
type ProductService struct {
	productRepo repository.ProductRepository
	cache       infrastructure.ProductCache
	cacheTTL    time.Duration
}

// NewProductService создает новый сервис каталога с внедрением зависимостей
func NewProductService(
	productRepo repository.ProductRepository,
	cache infrastructure.ProductCache,
	cacheTTL time.Duration,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// CreateProduct создает новый товар
// ID назначает хранилище, результат сразу кладется в кеш (write-through)
func (s *ProductService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	now := time.Now()
	product := &entity.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductAlreadyExists) {
			return nil, ErrProductAlreadyExists
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	// Товар уже сохранен, проблемы с кешем не критичны
	if err := s.cache.SetProduct(ctx, product, s.cacheTTL); err != nil {
		logger.Warn().Err(err).Int64("product_id", product.ID).Msg("Failed to cache created product")
	}

	metrics.ProductsCreated.Inc()

	return product, nil
}

// GetProductByID получает товар по ID по схеме cache-aside
// Сначала кеш, при промахе - PostgreSQL с наполнением кеша на TTL
func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := s.cache.GetProduct(ctx, id)
	if err != nil {
		// Ошибка кеша равносильна промаху, авторитетное хранилище - БД
		logger.Warn().Err(err).Int64("product_id", id).Msg("Product cache read failed")
	}
	if product != nil {
		return product, nil
	}

	product, err = s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if err := s.cache.SetProduct(ctx, product, s.cacheTTL); err != nil {
		logger.Warn().Err(err).Int64("product_id", id).Msg("Failed to cache product")
	}

	return product, nil
}

// GetAllProducts получает все товары напрямую из PostgreSQL
// Списки не кешируются: у неограниченной выборки нет разумных правил
// инвалидации
func (s *ProductService) GetAllProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

// UpdateProduct обновляет товар и заменяет запись в кеше
// Если товара нет, кеш не трогаем
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	// Обновляем только переданные поля (частичное обновление)
	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		if errors.Is(err, repository.ErrProductAlreadyExists) {
			return nil, ErrProductAlreadyExists
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	// Write-through: устаревшая запись в кеше заменяется свежей
	if err := s.cache.SetProduct(ctx, product, s.cacheTTL); err != nil {
		logger.Warn().Err(err).Int64("product_id", id).Msg("Failed to refresh cached product")
	}

	return product, nil
}

// DeleteProduct удаляет товар из хранилища и убирает его из кеша
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to get product: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("product_id", id).Msg("Failed to evict deleted product from cache")
	}

	return nil
}
