package list_bookings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonService/internal/service/overlap"
	"github.com/m04kA/SMC-SalonService/internal/testutil"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/token"
)

func TestHandle_ScopesByActor(t *testing.T) {
	store := testutil.NewStore()
	svc := bookings.NewService(store, store.PersonRepo(), overlap.NewGuard(store), store, store,
		token.NewIssuer("handler-secret", time.Hour), &testutil.Notifier{}, nil, time.UTC, logger.NewDiscard())
	h := NewHandler(svc, logger.NewDiscard())

	first := store.PutPerson(domain.Person{Name: "Ирина", Email: "irina@example.com", Role: domain.RoleCustomer})
	second := store.PutPerson(domain.Person{Name: "Олег", Email: "oleg@example.com", Role: domain.RoleCustomer})
	for i, customer := range []*domain.Person{first, second, first} {
		store.PutBooking(domain.Booking{
			CustomerID:      customer.ID,
			ServiceID:       1,
			ServiceName:     "Стрижка",
			StartTime:       time.Date(2024, 1, 1, 10+i, 0, 0, 0, time.UTC),
			DurationMinutes: 60,
			Price:           decimal.NewFromInt(1500),
			Status:          domain.StatusConfirmed,
			PaymentStatus:   domain.PaymentUnpaid,
		})
	}

	list := func(actor domain.Actor, query string) (int, *models.BookingListResponse) {
		r := httptest.NewRequest(http.MethodGet, "/bookings"+query, nil)
		rec := httptest.NewRecorder()
		h.Handle(rec, r.WithContext(middleware.WithActor(r.Context(), actor)))
		if rec.Code != http.StatusOK {
			return rec.Code, nil
		}
		var resp models.BookingListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		return rec.Code, &resp
	}

	code, resp := list(domain.Actor{ID: first.ID, Role: domain.RoleCustomer}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Bookings, 2)

	code, resp = list(domain.Actor{ID: 1000, Role: domain.RoleAdmin}, "?from=2024-01-01T10:30:00Z")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Bookings, 2)

	code, _ = list(domain.Actor{ID: first.ID, Role: domain.RoleCustomer}, "?from=yesterday")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = list(domain.Actor{ID: first.ID, Role: domain.RoleCustomer}, "?status=unknown")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHandle_RequiresActor(t *testing.T) {
	h := NewHandler(nil, logger.NewDiscard())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
