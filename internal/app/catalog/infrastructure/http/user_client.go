package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/catalog/entity"
	"github.com/dawnthivakar/e-com-product-catalog/internal/app/catalog/infrastructure"
	"github.com/dawnthivakar/e-com-product-catalog/pkg/logger"
	"github.com/dawnthivakar/e-com-product-catalog/pkg/metrics"
)

// UserClient клиент для взаимодействия с User Service
// Используется для проверки пользователя перед сохранением отзыва
type UserClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewUserClient создает новый клиент User Service
// timeout ограничивает весь запрос: вызов стоит на синхронном пути записи
func NewUserClient(baseURL string, timeout time.Duration) *UserClient {
	return &UserClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetUserByID получает пользователя из User Service
// 404 означает "пользователь не зарегистрирован" и возвращается как
// пользователь с пустым ID, а не как ошибка
func (c *UserClient) GetUserByID(ctx context.Context, userID int64) (*entity.User, error) {
	url := fmt.Sprintf("%s/api/users/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &entity.User{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var user entity.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &user, nil
}

// FallbackUserClient оборачивает UserServiceClient и превращает ошибки
// транспорта в деградированный ответ с маркерным ID
// Недоступность user-service становится обычным значением, которое
// сервис отзывов разбирает как данные, а не как исключение
type FallbackUserClient struct {
	client infrastructure.UserServiceClient
}

// NewFallbackUserClient создает обертку с fallback над клиентом User Service
func NewFallbackUserClient(client infrastructure.UserServiceClient) *FallbackUserClient {
	return &FallbackUserClient{client: client}
}

// GetUserByID никогда не возвращает ошибку транспорта
// При любом сбое возвращается fallback-пользователь с ID = FallbackUserID
func (c *FallbackUserClient) GetUserByID(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := c.client.GetUserByID(ctx, userID)
	if err != nil {
		logger.Warn().
			Err(err).
			Int64("user_id", userID).
			Msg("User service unavailable, returning fallback user")
		metrics.UserServiceFallbacks.Inc()

		fallbackID := entity.FallbackUserID
		return &entity.User{
			ID:    &fallbackID,
			Name:  "Fallback User",
			Email: "fallback@system.internal",
		}, nil
	}

	return user, nil
}
