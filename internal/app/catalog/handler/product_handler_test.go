package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/catalog/entity"
	"github.com/dawnthivakar/e-com-product-catalog/internal/app/catalog/service"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) GetProductByID(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) GetAllProducts(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id int64, req *entity.UpdateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupProductRouter(svc service.ProductServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewProductHandler(svc)
	router.GET("/api/products", h.GetAllProducts)
	router.GET("/api/products/:id", h.GetProduct)
	router.POST("/api/products", h.CreateProduct)
	router.PUT("/api/products/:id", h.UpdateProduct)
	router.DELETE("/api/products/:id", h.DeleteProduct)

	return router
}

// ===================== GetAllProducts Tests =====================

func TestProductHandler_GetAllProducts_Success(t *testing.T) {
	mockSvc := new(MockProductService)
	mockSvc.On("GetAllProducts", mock.Anything).Return([]entity.Product{
		{ID: 1, Name: "Laptop"},
		{ID: 2, Name: "Phone"},
	}, nil)

	router := setupProductRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Products, 2)
}

// ===================== GetProduct Tests =====================

func TestProductHandler_GetProduct_Success(t *testing.T) {
	mockSvc := new(MockProductService)
	mockSvc.On("GetProductByID", mock.Anything, int64(1)).
		Return(&entity.Product{ID: 1, Name: "Laptop", Price: 1499.99}, nil)

	router := setupProductRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodGet, "/api/products/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var product entity.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "Laptop", product.Name)
}

func TestProductHandler_GetProduct_NotFound(t *testing.T) {
	mockSvc := new(MockProductService)
	mockSvc.On("GetProductByID", mock.Anything, int64(99)).
		Return(nil, service.ErrProductNotFound)

	router := setupProductRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodGet, "/api/products/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_GetProduct_InvalidID(t *testing.T) {
	mockSvc := new(MockProductService)
	router := setupProductRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodGet, "/api/products/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
}

// ===================== CreateProduct Tests =====================

func TestProductHandler_CreateProduct_Success(t *testing.T) {
	mockSvc := new(MockProductService)
	mockSvc.On("CreateProduct", mock.Anything, mock.AnythingOfType("*entity.CreateProductRequest")).
		Return(&entity.Product{ID: 1, Name: "Laptop", Price: 1499.99, Category: "electronics"}, nil)

	router := setupProductRouter(mockSvc)

	body, _ := json.Marshal(entity.CreateProductRequest{
		Name:     "Laptop",
		Price:    1499.99,
		Category: "electronics",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestProductHandler_CreateProduct_DuplicateName(t *testing.T) {
	mockSvc := new(MockProductService)
	mockSvc.On("CreateProduct", mock.Anything, mock.Anything).
		Return(nil, service.ErrProductAlreadyExists)

	router := setupProductRouter(mockSvc)

	body, _ := json.Marshal(entity.CreateProductRequest{
		Name:     "Laptop",
		Price:    1499.99,
		Category: "electronics",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProductHandler_CreateProduct_ValidationError(t *testing.T) {
	mockSvc := new(MockProductService)
	router := setupProductRouter(mockSvc)

	// Цена отрицательная, имя слишком короткое
	body, _ := json.Marshal(entity.CreateProductRequest{
		Name:     "L",
		Price:    -5,
		Category: "electronics",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestProductHandler_CreateProduct_InvalidBody(t *testing.T) {
	mockSvc := new(MockProductService)
	router := setupProductRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ===================== UpdateProduct Tests =====================

func TestProductHandler_UpdateProduct_Success(t *testing.T) {
	mockSvc := new(MockProductService)
	mockSvc.On("UpdateProduct", mock.Anything, int64(1), mock.AnythingOfType("*entity.UpdateProductRequest")).
		Return(&entity.Product{ID: 1, Name: "Laptop", Price: 1299.99}, nil)

	router := setupProductRouter(mockSvc)

	body, _ := json.Marshal(entity.UpdateProductRequest{Price: 1299.99})
	req, _ := http.NewRequest(http.MethodPut, "/api/products/1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var product entity.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, 1299.99, product.Price)
}

func TestProductHandler_UpdateProduct_NotFound(t *testing.T) {
	mockSvc := new(MockProductService)
	mockSvc.On("UpdateProduct", mock.Anything, int64(99), mock.Anything).
		Return(nil, service.ErrProductNotFound)

	router := setupProductRouter(mockSvc)

	body, _ := json.Marshal(entity.UpdateProductRequest{Price: 999.99})
	req, _ := http.NewRequest(http.MethodPut, "/api/products/99", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ===================== DeleteProduct Tests =====================

func TestProductHandler_DeleteProduct_Success(t *testing.T) {
	mockSvc := new(MockProductService)
	mockSvc.On("DeleteProduct", mock.Anything, int64(1)).Return(nil)

	router := setupProductRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodDelete, "/api/products/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestProductHandler_DeleteProduct_NotFound(t *testing.T) {
	mockSvc := new(MockProductService)
	mockSvc.On("DeleteProduct", mock.Anything, int64(99)).Return(service.ErrProductNotFound)

	router := setupProductRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodDelete, "/api/products/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_DeleteProduct_InternalError(t *testing.T) {
	mockSvc := new(MockProductService)
	mockSvc.On("DeleteProduct", mock.Anything, int64(1)).Return(errors.New("db down"))

	router := setupProductRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodDelete, "/api/products/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
