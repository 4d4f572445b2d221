package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const (
	// maxAttempts повтор только для временных ответов шлюза
	maxAttempts  = 2
	retryBackoff = 100 * time.Millisecond

	maxErrorBody = 1024
)

// Client клиент каталога услуг
type Client struct {
	baseURL    string
	httpClient *http.Client
	backoff    time.Duration
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		backoff:    retryBackoff,
		log:        log,
	}
}

// GetService получает длительность и цену услуги
// Результат не кэшируется: цена и длительность копируются в бронирование в момент создания
func (c *Client) GetService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	var service Service
	path := fmt.Sprintf("/internal/services/%d", serviceID)

	if err := c.get(ctx, path, &service); err != nil {
		if err == ErrServiceNotFound {
			c.log.Warn("Catalog: service id=%d not found", serviceID)
		}
		return nil, err
	}

	if service.ID != serviceID {
		return nil, fmt.Errorf("%w: requested service %d, got %d", ErrInvalidResponse, serviceID, service.ID)
	}

	return service.ToDomain(), nil
}

// get выполняет GET и декодирует JSON ответ в dst
func (c *Client) get(ctx context.Context, path string, dst interface{}) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v (last error: %v)", ErrInternal, ctx.Err(), lastErr)
			case <-time.After(c.backoff):
			}
		}

		retry, err := c.do(ctx, path, dst)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}

		c.log.Warn("Catalog: GET %s attempt %d failed: %v", path, attempt, err)
		lastErr = err
	}

	return lastErr
}

// do возвращает retry=true, если ошибку имеет смысл повторить
func (c *Client) do(ctx context.Context, path string, dst interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return false, ErrServiceNotFound
	case http.StatusBadRequest:
		return false, fmt.Errorf("%w: invalid service ID format", ErrInvalidResponse)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true, fmt.Errorf("%w: catalog unavailable, status %d", ErrInvalidResponse, resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return false, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return false, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return false, nil
}
