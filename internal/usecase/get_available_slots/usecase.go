package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo BookingRepository
	hours       HoursResolver
	catalog     CatalogClient
	location    *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	hours HoursResolver,
	catalog CatalogClient,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo: bookingRepo,
		hours:       hours,
		catalog:     catalog,
		location:    location,
		logger:      logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s, staff=%v",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StaffID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if err := service.Validate(); err != nil {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not schedulable: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Получаем рабочие часы (сотрудник -> салон -> по умолчанию)
	hours, err := uc.hours.Resolve(ctx, req.StaffID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve business hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve business hours: %v", ErrInternal, err)
	}

	// 4. Получаем бронирования, которые могут пересекаться с рабочим днем
	// Запись, начавшаяся до открытия, может заходить в рабочие часы
	day := req.Date.In(uc.location)
	opening := hours.Opening(day, uc.location)
	closing := hours.Closing(day, uc.location)
	from := opening.Add(-domain.MaxBookingDurationMinutes * time.Minute)

	filter := domain.BookingFilter{
		StaffID:         req.StaffID,
		StartFrom:       &from,
		StartBefore:     &closing,
		ExcludeStatuses: domain.SlotExcludedStatuses,
	}

	bookings, err := uc.bookingRepo.Find(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты
	slots := GenerateSlots(service, day, hours, bookings, uc.location)

	uc.logger.Info("GetAvailableSlots: %d slots for service=%d on %s (%d bookings considered)",
		len(slots), req.ServiceID, day.Format(domain.DateFormat), len(bookings))

	return &Response{
		Date:            time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, uc.location),
		ServiceID:       req.ServiceID,
		StaffID:         req.StaffID,
		DurationMinutes: service.DurationMinutes,
		StartHour:       hours.StartHour,
		EndHour:         hours.EndHour,
		Slots:           slots,
	}, nil
}
