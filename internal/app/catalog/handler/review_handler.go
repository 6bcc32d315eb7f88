package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/catalog/entity"
	"github.com/dawnthivakar/e-com-product-catalog/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ReviewHandler обрабатывает HTTP запросы отзывов
type ReviewHandler struct {
	reviewService service.ReviewServiceInterface
	validator     *validator.Validate
}

// NewReviewHandler создает новый обработчик отзывов
func NewReviewHandler(reviewService service.ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// AddReview обрабатывает POST /api/reviews
// Разные причины отказа проверки пользователя возвращаются разными
// статусами: недоступность user-service - 503 (можно повторить),
// незарегистрированный или чужой пользователь - 422
func (h *ReviewHandler) AddReview(c *gin.Context) {
	var req entity.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return
	}

	review, err := h.reviewService.AddReview(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserServiceUnavailable):
			c.JSON(http.StatusServiceUnavailable, entity.ErrorResponse{
				Error:   "User verification unavailable",
				Message: "Unable to process your review at this time. Please try again later.",
			})
		case errors.Is(err, service.ErrUserNotRegistered):
			c.JSON(http.StatusUnprocessableEntity, entity.ErrorResponse{
				Error:   "User not registered",
				Message: "You are not registered with us. Please register to add a review.",
			})
		case errors.Is(err, service.ErrUserVerificationFailed):
			c.JSON(http.StatusUnprocessableEntity, entity.ErrorResponse{
				Error:   "User verification failed",
				Message: "The user ID does not match our records.",
			})
		default:
			c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to create review"})
		}
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetReviewsByProduct обрабатывает GET /api/reviews/product/:product_id
func (h *ReviewHandler) GetReviewsByProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid product ID"})
		return
	}

	reviews, err := h.reviewService.GetReviewsByProduct(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, entity.ReviewListResponse{
		Reviews: reviews,
		Total:   len(reviews),
	})
}

// GetUserReviews обрабатывает GET /api/reviews/user/:user_id
func (h *ReviewHandler) GetUserReviews(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	reviews, err := h.reviewService.GetUserReviews(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to get user reviews"})
		return
	}

	c.JSON(http.StatusOK, entity.ReviewListResponse{
		Reviews: reviews,
		Total:   len(reviews),
	})
}
