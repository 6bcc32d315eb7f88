package entity

// CreateProductRequest - запрос на создание товара
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Category    string  `json:"category" validate:"required,min=2,max=100"`
}

// UpdateProductRequest - запрос на обновление товара
type UpdateProductRequest struct {
	Name        string  `json:"name" validate:"omitempty,min=2,max=200"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Price       float64 `json:"price" validate:"omitempty,gte=0"`
	Category    string  `json:"category" validate:"omitempty,min=2,max=100"`
}

// CreateReviewRequest - запрос на создание отзыва
type CreateReviewRequest struct {
	ProductID int64  `json:"product_id" validate:"required"`
	UserID    int64  `json:"user_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required,min=3,max=1000"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ProductListResponse - ответ со списком товаров
type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// ReviewListResponse - ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}
