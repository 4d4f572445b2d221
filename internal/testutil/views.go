package testutil

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// PersonRepo представление Store с методами репозитория людей
func (s *Store) PersonRepo() *PersonView {
	return &PersonView{s: s}
}

// HoursRepo представление Store с методами репозитория рабочих часов
func (s *Store) HoursRepo() *HoursView {
	return &HoursView{s: s}
}

type PersonView struct {
	s *Store
}

func (v *PersonView) Create(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	return v.s.CreatePerson(ctx, p)
}

func (v *PersonView) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	return v.s.GetPerson(ctx, id)
}

func (v *PersonView) FindByEmail(ctx context.Context, email string) (*domain.Person, error) {
	return v.s.FindPersonByEmail(ctx, email)
}

func (v *PersonView) FindByPhone(ctx context.Context, phone string) (*domain.Person, error) {
	return v.s.FindPersonByPhone(ctx, phone)
}

func (v *PersonView) UpdateContact(ctx context.Context, id int64, name, phone *string) error {
	return v.s.UpdateContact(ctx, id, name, phone)
}

type HoursView struct {
	s *Store
}

func (v *HoursView) Get(ctx context.Context, staffID *int64) (*domain.BusinessHours, error) {
	return v.s.GetHours(ctx, staffID)
}

func (v *HoursView) GetWithHierarchy(ctx context.Context, staffID *int64) (*domain.BusinessHours, error) {
	return v.s.GetHoursWithHierarchy(ctx, staffID)
}

func (v *HoursView) Upsert(ctx context.Context, h *domain.BusinessHours) (*domain.BusinessHours, error) {
	return v.s.UpsertHours(ctx, h)
}
