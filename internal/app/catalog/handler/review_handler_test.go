package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/catalog/entity"
	"github.com/dawnthivakar/e-com-product-catalog/internal/app/catalog/service"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) AddReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewService) GetReviewsByProduct(ctx context.Context, productID int64) ([]entity.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewService) GetUserReviews(ctx context.Context, userID int64) ([]entity.Review, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func setupReviewRouter(svc service.ReviewServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewReviewHandler(svc)
	router.POST("/api/reviews", h.AddReview)
	router.GET("/api/reviews/product/:product_id", h.GetReviewsByProduct)
	router.GET("/api/reviews/user/:user_id", h.GetUserReviews)

	return router
}

func validReviewBody() []byte {
	body, _ := json.Marshal(entity.CreateReviewRequest{
		ProductID: 1,
		UserID:    42,
		Rating:    5,
		Comment:   "Great laptop",
	})
	return body
}

// ===================== AddReview Tests =====================

func TestReviewHandler_AddReview_Success(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("AddReview", mock.Anything, mock.AnythingOfType("*entity.CreateReviewRequest")).
		Return(&entity.Review{
			ID:         primitive.NewObjectID(),
			ProductID:  1,
			UserID:     42,
			Rating:     5,
			Comment:    "Great laptop",
			ReviewDate: time.Now(),
		}, nil)

	router := setupReviewRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodPost, "/api/reviews", bytes.NewBuffer(validReviewBody()))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var review entity.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &review))
	assert.Equal(t, int64(1), review.ProductID)
	assert.False(t, review.ReviewDate.IsZero())
}

func TestReviewHandler_AddReview_UserServiceUnavailable(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("AddReview", mock.Anything, mock.Anything).
		Return(nil, service.ErrUserServiceUnavailable)

	router := setupReviewRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodPost, "/api/reviews", bytes.NewBuffer(validReviewBody()))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// 503 - клиент может повторить запрос позже
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "User verification unavailable", resp.Error)
}

func TestReviewHandler_AddReview_UserNotRegistered(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("AddReview", mock.Anything, mock.Anything).
		Return(nil, service.ErrUserNotRegistered)

	router := setupReviewRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodPost, "/api/reviews", bytes.NewBuffer(validReviewBody()))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// 422 - повтор не поможет
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "User not registered", resp.Error)
}

func TestReviewHandler_AddReview_UserVerificationFailed(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("AddReview", mock.Anything, mock.Anything).
		Return(nil, service.ErrUserVerificationFailed)

	router := setupReviewRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodPost, "/api/reviews", bytes.NewBuffer(validReviewBody()))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "User verification failed", resp.Error)
}

func TestReviewHandler_AddReview_InvalidRating(t *testing.T) {
	mockSvc := new(MockReviewService)
	router := setupReviewRouter(mockSvc)

	body, _ := json.Marshal(entity.CreateReviewRequest{
		ProductID: 1,
		UserID:    42,
		Rating:    6,
		Comment:   "Too good",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Рейтинг вне 1..5 отклоняется на границе запроса
	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "AddReview", mock.Anything, mock.Anything)
}

func TestReviewHandler_AddReview_InvalidBody(t *testing.T) {
	mockSvc := new(MockReviewService)
	router := setupReviewRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodPost, "/api/reviews", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ===================== GetReviewsByProduct Tests =====================

func TestReviewHandler_GetReviewsByProduct_Success(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("GetReviewsByProduct", mock.Anything, int64(1)).Return([]entity.Review{
		{ProductID: 1, UserID: 42, Rating: 5, Comment: "Great"},
		{ProductID: 1, UserID: 43, Rating: 3, Comment: "Okay"},
	}, nil)

	router := setupReviewRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodGet, "/api/reviews/product/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.ReviewListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
}

func TestReviewHandler_GetReviewsByProduct_InvalidID(t *testing.T) {
	mockSvc := new(MockReviewService)
	router := setupReviewRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodGet, "/api/reviews/product/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "GetReviewsByProduct", mock.Anything, mock.Anything)
}

// ===================== GetUserReviews Tests =====================

func TestReviewHandler_GetUserReviews_Success(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("GetUserReviews", mock.Anything, int64(42)).Return([]entity.Review{
		{ProductID: 1, UserID: 42, Rating: 5},
	}, nil)

	router := setupReviewRouter(mockSvc)

	req, _ := http.NewRequest(http.MethodGet, "/api/reviews/user/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.ReviewListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}
