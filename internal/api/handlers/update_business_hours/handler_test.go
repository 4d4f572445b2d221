package update_business_hours

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers/get_business_hours"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/hours"
	"github.com/m04kA/SMC-SalonService/internal/service/hours/models"
	"github.com/m04kA/SMC-SalonService/internal/testutil"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

func TestHandle_UpdateThenGet(t *testing.T) {
	store := testutil.NewStore()
	staff := store.PutPerson(domain.Person{Name: "Мастер", Email: "m@example.com", Role: domain.RoleStaff})
	svc := hours.NewService(store.HoursRepo(), store.PersonRepo(), store,
		domain.BusinessHours{StartHour: domain.DefaultStartHour, EndHour: domain.DefaultEndHour}, logger.NewDiscard())

	update := NewHandler(svc, logger.NewDiscard())
	get := get_business_hours.NewHandler(svc, logger.NewDiscard())

	put := func(actor domain.Actor, body string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPut, "/business-hours", strings.NewReader(body))
		rec := httptest.NewRecorder()
		update.Handle(rec, r.WithContext(middleware.WithActor(r.Context(), actor)))
		return rec
	}
	admin := domain.Actor{ID: 100, Role: domain.RoleAdmin}

	rec := put(admin, `{"startHour":10,"endHour":20}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	get.Handle(rec, httptest.NewRequest(http.MethodGet, "/business-hours", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.HoursResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 10, resp.StartHour)
	assert.Equal(t, 20, resp.EndHour)
	assert.Equal(t, models.SourceSalon, resp.Source)

	assert.Equal(t, http.StatusForbidden, put(domain.Actor{ID: staff.ID, Role: domain.RoleStaff}, `{"startHour":10,"endHour":20}`).Code)
	assert.Equal(t, http.StatusNotFound, put(admin, `{"staffId":999,"startHour":10,"endHour":20}`).Code)
	assert.Equal(t, http.StatusBadRequest, put(admin, `{"startHour":20,"endHour":10}`).Code)
	assert.Equal(t, http.StatusBadRequest, put(admin, `{"endHour":10}`).Code)
	assert.Equal(t, http.StatusOK, put(admin, `{"staffId":`+jsonID(staff.ID)+`,"startHour":0,"endHour":6}`).Code)
}

func TestGet_InvalidStaffID(t *testing.T) {
	get := get_business_hours.NewHandler(nil, logger.NewDiscard())
	rec := httptest.NewRecorder()
	get.Handle(rec, httptest.NewRequest(http.MethodGet, "/business-hours?staffId=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
