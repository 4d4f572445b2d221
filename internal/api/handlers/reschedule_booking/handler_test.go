package reschedule_booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
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

type fixture struct {
	store    *testutil.Store
	tokens   *token.Issuer
	router   *mux.Router
	customer domain.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewStore()
	tokens := token.NewIssuer("handler-secret", time.Hour)
	svc := bookings.NewService(store, store.PersonRepo(), overlap.NewGuard(store), store, store, tokens,
		&testutil.Notifier{}, nil, time.UTC, logger.NewDiscard())
	h := NewHandler(svc, time.UTC, logger.NewDiscard())

	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}/reschedule", h.Handle).Methods(http.MethodPatch)
	router.HandleFunc("/reschedule", h.HandleByToken).Methods(http.MethodPost)

	customer := store.PutPerson(domain.Person{Name: "Ирина", Email: "irina@example.com", Role: domain.RoleCustomer})
	return &fixture{
		store:    store,
		tokens:   tokens,
		router:   router,
		customer: domain.Actor{ID: customer.ID, Role: domain.RoleCustomer},
	}
}

func (f *fixture) put(status domain.BookingStatus, hour int) *domain.Booking {
	return f.store.PutBooking(domain.Booking{
		CustomerID:      f.customer.ID,
		ServiceID:       1,
		ServiceName:     "Стрижка",
		StartTime:       time.Date(2024, 1, 1, hour, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Price:           decimal.NewFromInt(1500),
		Status:          status,
		PaymentStatus:   domain.PaymentUnpaid,
	})
}

func (f *fixture) serve(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, r)
	return rec
}

func (f *fixture) patch(id int64, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, "/bookings/"+strconv.FormatInt(id, 10)+"/reschedule", strings.NewReader(body))
	return f.serve(r.WithContext(middleware.WithActor(r.Context(), f.customer)))
}

func TestHandle_MovesBooking(t *testing.T) {
	f := newFixture(t)
	b := f.put(domain.StatusConfirmed, 10)

	rec := f.patch(b.ID, `{"date":"2024-01-02","startTime":"15:00"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC), resp.StartTime.UTC())
}

func TestHandle_Conflict(t *testing.T) {
	f := newFixture(t)
	f.put(domain.StatusConfirmed, 12)
	b := f.put(domain.StatusConfirmed, 10)

	rec := f.patch(b.ID, `{"date":"2024-01-01","startTime":"12:30"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), msgCustomerOverlap)
}

func TestHandle_TerminalBooking(t *testing.T) {
	f := newFixture(t)
	b := f.put(domain.StatusCompleted, 10)

	assert.Equal(t, http.StatusConflict, f.patch(b.ID, `{"date":"2024-01-02","startTime":"15:00"}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.patch(b.ID, `{"date":"2024-01-02"}`).Code)
}

func TestHandleByToken(t *testing.T) {
	f := newFixture(t)
	b := f.put(domain.StatusMissed, 10)

	raw, err := f.tokens.Issue(b.ID)
	require.NoError(t, err)

	body := `{"token":"` + raw + `","date":"2024-01-03","startTime":"11:00"}`
	rec := f.serve(httptest.NewRequest(http.MethodPost, "/reschedule", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	rec = f.serve(httptest.NewRequest(http.MethodPost, "/reschedule",
		strings.NewReader(`{"token":"forged","date":"2024-01-03","startTime":"11:00"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidToken)
}
