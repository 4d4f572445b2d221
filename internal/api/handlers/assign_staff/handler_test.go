package assign_staff

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
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

func TestHandle(t *testing.T) {
	store := testutil.NewStore()
	svc := bookings.NewService(store, store.PersonRepo(), overlap.NewGuard(store), store, store,
		token.NewIssuer("handler-secret", time.Hour), &testutil.Notifier{}, nil, time.UTC, logger.NewDiscard())

	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}/assign-staff", NewHandler(svc, logger.NewDiscard()).Handle).Methods(http.MethodPatch)

	customer := store.PutPerson(domain.Person{Name: "Ирина", Email: "irina@example.com", Role: domain.RoleCustomer})
	staff := store.PutPerson(domain.Person{Name: "Анна", Email: "anna@example.com", Role: domain.RoleStaff})
	admin := domain.Actor{ID: 100, Role: domain.RoleAdmin}

	put := func(status domain.BookingStatus, hour int) *domain.Booking {
		return store.PutBooking(domain.Booking{
			CustomerID:      customer.ID,
			ServiceID:       1,
			StartTime:       time.Date(2024, 1, 1, hour, 0, 0, 0, time.UTC),
			DurationMinutes: 60,
			Status:          status,
		})
	}
	patch := func(actor domain.Actor, id int64, body string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPatch, "/bookings/"+strconv.FormatInt(id, 10)+"/assign-staff", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, r.WithContext(middleware.WithActor(r.Context(), actor)))
		return rec
	}
	staffBody := `{"staffId":` + strconv.FormatInt(staff.ID, 10) + `}`

	pending := put(domain.StatusPending, 10)
	rec := patch(admin, pending.ID, staffBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.StaffID)
	assert.Equal(t, staff.ID, *resp.StaffID)

	// второй клиент на то же время: сотрудник уже занят
	other := store.PutBooking(domain.Booking{
		CustomerID:      store.PutPerson(domain.Person{Name: "Олег", Email: "oleg@example.com", Role: domain.RoleCustomer}).ID,
		ServiceID:       1,
		StartTime:       time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	})
	assert.Equal(t, http.StatusConflict, patch(admin, other.ID, staffBody).Code)

	completed := put(domain.StatusCompleted, 14)
	assert.Equal(t, http.StatusConflict, patch(admin, completed.ID, staffBody).Code)

	assert.Equal(t, http.StatusNotFound, patch(admin, pending.ID, `{"staffId":999}`).Code)
	assert.Equal(t, http.StatusNotFound, patch(admin, 404, staffBody).Code)
	assert.Equal(t, http.StatusForbidden, patch(domain.Actor{ID: staff.ID, Role: domain.RoleStaff}, pending.ID, staffBody).Code)
	assert.Equal(t, http.StatusBadRequest, patch(admin, pending.ID, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(admin, pending.ID, `{"staffId":1,"extra":true}`).Code)
}
