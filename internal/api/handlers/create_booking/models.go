package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonService/internal/usecase/create_booking"
)

// slotFields дата и время начала записи в часовом поясе салона
type slotFields struct {
	ServiceID int64  `json:"serviceId" validate:"required,gt=0"`
	StaffID   *int64 `json:"staffId,omitempty" validate:"omitempty,gt=0"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"` // "2025-10-15"
	StartTime string `json:"startTime" validate:"required,hhmm"`           // "10:00"
}

func (s slotFields) start(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat+" "+domain.TimeFormat, s.Date+" "+s.StartTime, loc)
}

// CreateBookingRequest запись клиента
// customerId можно не указывать, тогда клиентом считается текущий пользователь
type CreateBookingRequest struct {
	CustomerID *int64 `json:"customerId,omitempty" validate:"omitempty,gt=0"`
	slotFields
}

// SelfBookingRequest запись сотрудника на себя
type SelfBookingRequest struct {
	slotFields
}

// WalkInBookingRequest запись клиента без регистрации
type WalkInBookingRequest struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	slotFields
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor, loc *time.Location) (*createBooking.Request, error) {
	start, err := r.start(loc)
	if err != nil {
		return nil, err
	}

	customerID := actor.ID
	if r.CustomerID != nil {
		customerID = *r.CustomerID
	}

	return &createBooking.Request{
		CustomerID: customerID,
		ServiceID:  r.ServiceID,
		StartTime:  start,
		StaffID:    r.StaffID,
	}, nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SelfBookingRequest) ToUseCaseRequest(loc *time.Location) (*createBooking.SelfRequest, error) {
	start, err := r.start(loc)
	if err != nil {
		return nil, err
	}

	return &createBooking.SelfRequest{
		ServiceID: r.ServiceID,
		StartTime: start,
		StaffID:   r.StaffID,
	}, nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *WalkInBookingRequest) ToUseCaseRequest(loc *time.Location) (*createBooking.WalkInRequest, error) {
	start, err := r.start(loc)
	if err != nil {
		return nil, err
	}

	return &createBooking.WalkInRequest{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		ServiceID: r.ServiceID,
		StartTime: start,
		StaffID:   r.StaffID,
	}, nil
}
