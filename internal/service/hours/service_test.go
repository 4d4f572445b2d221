package hours

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/hours/models"
	"github.com/m04kA/SMC-SalonService/internal/testutil"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

var admin = domain.Actor{ID: 1, Role: domain.RoleAdmin}

func newService(store *testutil.Store) *Service {
	return NewService(store.HoursRepo(), store.PersonRepo(), store,
		domain.BusinessHours{StartHour: domain.DefaultStartHour, EndHour: domain.DefaultEndHour}, logger.NewDiscard())
}

func TestResolve_Defaults(t *testing.T) {
	svc := newService(testutil.NewStore())

	h, err := svc.Get(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 9, h.StartHour)
	assert.Equal(t, 18, h.EndHour)
	assert.Equal(t, models.SourceDefault, h.Source)
}

func TestUpdate_StaffOverridesSalon(t *testing.T) {
	store := testutil.NewStore()
	staff := store.PutPerson(domain.Person{Name: "Мастер", Email: "m@example.com", Role: domain.RoleStaff})
	svc := newService(store)
	ctx := context.Background()

	_, err := svc.Update(ctx, admin, &models.UpdateHoursRequest{StartHour: 10, EndHour: 20})
	require.NoError(t, err)
	_, err = svc.Update(ctx, admin, &models.UpdateHoursRequest{StaffID: &staff.ID, StartHour: 12, EndHour: 16})
	require.NoError(t, err)

	h, err := svc.Get(ctx, &staff.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, h.StartHour)
	assert.Equal(t, models.SourceStaff, h.Source)

	other, err := svc.Get(ctx, ptr.Ptr(int64(999)))
	require.NoError(t, err)
	assert.Equal(t, 10, other.StartHour)
	assert.Equal(t, models.SourceSalon, other.Source)
}

func TestUpdate_Validation(t *testing.T) {
	svc := newService(testutil.NewStore())

	_, err := svc.Update(context.Background(), admin, &models.UpdateHoursRequest{StartHour: 18, EndHour: 9})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Update(context.Background(), admin, &models.UpdateHoursRequest{StartHour: 9, EndHour: 25})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_AdminOnly(t *testing.T) {
	svc := newService(testutil.NewStore())

	_, err := svc.Update(context.Background(), domain.Actor{ID: 2, Role: domain.RoleStaff}, &models.UpdateHoursRequest{StartHour: 9, EndHour: 18})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_UnknownStaff(t *testing.T) {
	store := testutil.NewStore()
	customer := store.PutPerson(domain.Person{Name: "Клиент", Email: "c@example.com", Role: domain.RoleCustomer})
	svc := newService(store)

	_, err := svc.Update(context.Background(), admin, &models.UpdateHoursRequest{StaffID: ptr.Ptr(int64(999)), StartHour: 9, EndHour: 18})
	assert.ErrorIs(t, err, ErrStaffNotFound)

	_, err = svc.Update(context.Background(), admin, &models.UpdateHoursRequest{StaffID: &customer.ID, StartHour: 9, EndHour: 18})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
