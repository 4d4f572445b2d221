package catalogservice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL+"/", time.Second, logger.NewDiscard())
}

func TestGetService(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/services/10", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":10,"name":"Окрашивание","durationMinutes":90,"price":"3500.50"}`))
	})

	svc, err := client.GetService(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 90, svc.DurationMinutes)
	assert.True(t, decimal.RequireFromString("3500.50").Equal(svc.Price))
}

func TestGetService_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetService(context.Background(), 10)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGetService_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "db down", http.StatusInternalServerError)
	})

	_, err := client.GetService(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestGetService_MismatchedID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":11,"name":"x","durationMinutes":30,"price":0}`))
	})

	_, err := client.GetService(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetService_RetriesUnavailable(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"id":10,"name":"Стрижка","durationMinutes":60,"price":"1500"}`))
	})
	client.backoff = time.Millisecond

	svc, err := client.GetService(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Стрижка", svc.Name)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetService_GivesUpAfterRetry(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})
	client.backoff = time.Millisecond

	_, err := client.GetService(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Equal(t, int32(maxAttempts), calls.Load())
}

func TestGetService_NoRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.GetService(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Equal(t, int32(1), calls.Load())
}
