package identityservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/karlseguin/ccache/v3"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с IdentityService
// Профили пользователей кэшируются локально: identity-сервис отдаёт
// медленно меняющиеся данные, и повторные запросы в рамках одной сессии
// бронирования не должны ходить по сети
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *ccache.Cache[*User]
	cacheTTL   time.Duration
	log        Logger
}

// NewClient создает новый экземпляр клиента IdentityService
func NewClient(baseURL string, timeout time.Duration, cacheTTL time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:    ccache.New(ccache.Configure[*User]().MaxSize(1000)),
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// GetUser получает профиль пользователя по ID
func (c *Client) GetUser(ctx context.Context, userID int64) (*User, error) {
	cacheKey := fmt.Sprintf("user:%d", userID)
	if item := c.cache.Get(cacheKey); item != nil && !item.Expired() {
		return item.Value(), nil
	}

	url := fmt.Sprintf("%s/internal/users/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.cache.Set(cacheKey, &user, c.cacheTTL)

	return &user, nil
}

// GetUserWithGracefulDegradation получает профиль пользователя с graceful degradation
// При недоступности IdentityService возвращает ErrServiceDegraded: вызывающая сторона
// может продолжить с контактными данными, переданными в запросе бронирования
func (c *Client) GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*User, error) {
	c.log.Info("Fetching identity profile for user_id=%d", userID)

	user, err := c.GetUser(ctx, userID)
	if err != nil {
		// Критичная бизнес-ошибка (пользователь не существует) пробрасывается дальше
		if err == ErrUserNotFound {
			c.log.Warn("No identity profile found for user_id=%d", userID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("IdentityService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}

	c.log.Info("Successfully fetched identity profile for user_id=%d", userID)
	return user, nil
}
