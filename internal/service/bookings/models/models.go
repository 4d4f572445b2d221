package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// TransitionRequest запрос на изменение статуса бронирования
type TransitionRequest struct {
	BookingID int64
	Action    domain.Action
}

// RescheduleRequest запрос на перенос бронирования
type RescheduleRequest struct {
	BookingID int64
	StartTime time.Time
}

// RescheduleByTokenRequest перенос по ссылке из уведомления о пропуске
type RescheduleByTokenRequest struct {
	Token     string
	StartTime time.Time
}

// AssignStaffRequest назначение сотрудника на запись
type AssignStaffRequest struct {
	BookingID int64
	StaffID   int64
}

// ListBookingsRequest запрос списка бронирований
type ListBookingsRequest struct {
	Status     *string    // Фильтр по статусу (опционально)
	StartFrom  *time.Time // Начало периода (опционально)
	StartTo    *time.Time // Конец периода, не включительно (опционально)
	StaffID    *int64     // Только для администратора
	CustomerID *int64     // Только для сотрудника и администратора
}

// ToDomainFilter конвертирует request в domain фильтр, ограниченный правами actor
// Клиент видит только свои записи, сотрудник - назначенные ему, администратор - все
func (r *ListBookingsRequest) ToDomainFilter(actor domain.Actor) (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		StartFrom:   r.StartFrom,
		StartBefore: r.StartTo,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	switch actor.Role {
	case domain.RoleCustomer:
		filter.CustomerID = &actor.ID
	case domain.RoleStaff:
		filter.StaffID = &actor.ID
		filter.CustomerID = r.CustomerID
	case domain.RoleAdmin:
		filter.StaffID = r.StaffID
		filter.CustomerID = r.CustomerID
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64     `json:"id"`
	CustomerID      int64     `json:"customerId"`
	StaffID         *int64    `json:"staffId,omitempty"`
	ServiceID       int64     `json:"serviceId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`

	// Данные услуги на момент записи
	ServiceName string          `json:"serviceName"`
	Price       decimal.Decimal `json:"price"`

	PaymentStatus string `json:"paymentStatus"`
	CheckedIn     bool   `json:"checkedIn"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		StaffID:         b.StaffID,
		ServiceID:       b.ServiceID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		Price:           b.Price,
		PaymentStatus:   string(b.PaymentStatus),
		CheckedIn:       b.CheckedIn,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}
	return result
}
