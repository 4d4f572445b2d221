package create_booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonService/internal/service/overlap"
	"github.com/m04kA/SMC-SalonService/internal/testutil"
	createBooking "github.com/m04kA/SMC-SalonService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fixture struct {
	store    *testutil.Store
	handler  *Handler
	customer domain.Actor
	staff    domain.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewStore()
	store.PutService(domain.Service{ID: 1, Name: "Маникюр", DurationMinutes: 60, Price: decimal.NewFromInt(2000)})
	customer := store.PutPerson(domain.Person{Name: "Ольга", Email: "olga@example.com", Role: domain.RoleCustomer})
	staff := store.PutPerson(domain.Person{Name: "Мастер", Email: "master@example.com", Role: domain.RoleStaff})

	loc := time.FixedZone("MSK", 3*60*60)

	uc := createBooking.NewUseCase(store, store.PersonRepo(), overlap.NewGuard(store), store, store, store,
		&testutil.Notifier{}, nil, loc, logger.NewDiscard())

	return &fixture{
		store:    store,
		handler:  NewHandler(uc, loc, logger.NewDiscard()),
		customer: domain.Actor{ID: customer.ID, Role: domain.RoleCustomer},
		staff:    domain.Actor{ID: staff.ID, Role: domain.RoleStaff},
	}
}

func do(h http.HandlerFunc, actor *domain.Actor, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if actor != nil {
		r = r.WithContext(middleware.WithActor(r.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}

func TestHandle_CreatesBookingInSalonTimezone(t *testing.T) {
	f := newFixture(t)

	rec := do(f.handler.Handle, &f.customer, `{"serviceId":1,"date":"2025-10-15","startTime":"10:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, f.customer.ID, resp.CustomerID)
	assert.Equal(t, time.Date(2025, 10, 15, 7, 0, 0, 0, time.UTC), resp.StartTime.UTC())
	assert.Equal(t, "Маникюр", resp.ServiceName)
}

func TestHandle_OverlapIsConflict(t *testing.T) {
	f := newFixture(t)

	require.Equal(t, http.StatusCreated,
		do(f.handler.Handle, &f.customer, `{"serviceId":1,"date":"2025-10-15","startTime":"10:00"}`).Code)

	rec := do(f.handler.Handle, &f.customer, `{"serviceId":1,"date":"2025-10-15","startTime":"10:30"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), msgCustomerOverlap)
}

func TestHandle_Errors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		actor  *domain.Actor
		body   string
		status int
	}{
		{"no actor", nil, `{}`, http.StatusUnauthorized},
		{"unknown field", &f.customer, `{"serviceId":1,"date":"2025-10-15","startTime":"10:00","x":1}`, http.StatusBadRequest},
		{"missing service", &f.customer, `{"date":"2025-10-15","startTime":"10:00"}`, http.StatusBadRequest},
		{"bad time", &f.customer, `{"serviceId":1,"date":"2025-10-15","startTime":"25:00"}`, http.StatusBadRequest},
		{"bad date", &f.customer, `{"serviceId":1,"date":"15.10.2025","startTime":"10:00"}`, http.StatusBadRequest},
		{"service not found", &f.customer, `{"serviceId":9,"date":"2025-10-15","startTime":"10:00"}`, http.StatusNotFound},
		{"other customer", &f.customer, `{"customerId":999,"serviceId":1,"date":"2025-10-15","startTime":"10:00"}`, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(f.handler.Handle, tt.actor, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
	assert.Empty(t, f.store.Bookings())
}

func TestHandle_ValidationReportsFields(t *testing.T) {
	f := newFixture(t)

	rec := do(f.handler.Handle, &f.customer, `{"serviceId":0,"date":"2025-10-15","startTime":"9"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Fields, "serviceId")
	assert.Contains(t, body.Fields, "startTime")
}

func TestHandleWalkIn(t *testing.T) {
	f := newFixture(t)

	rec := do(f.handler.HandleWalkIn, &f.staff,
		`{"name":"Гость","phone":"+79990001122","serviceId":1,"date":"2025-10-15","startTime":"12:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(f.handler.HandleWalkIn, &f.customer,
		`{"name":"Гость","serviceId":1,"date":"2025-10-15","startTime":"14:00"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(f.handler.HandleWalkIn, &f.staff,
		`{"name":"Гость","email":"not-an-email","serviceId":1,"date":"2025-10-15","startTime":"14:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSelf(t *testing.T) {
	f := newFixture(t)

	rec := do(f.handler.HandleSelf, &f.staff, `{"serviceId":1,"date":"2025-10-16","startTime":"11:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, f.staff.ID, resp.CustomerID)

	rec = do(f.handler.HandleSelf, &f.customer, `{"serviceId":1,"date":"2025-10-16","startTime":"13:00"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
