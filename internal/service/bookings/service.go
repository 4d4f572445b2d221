package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: чтение, смена статуса и перенос
type Service struct {
	bookingRepo BookingRepository
	personRepo  PersonRepository
	guard       OverlapGuard
	locker      Locker
	txManager   TransactionManager
	tokens      TokenParser
	notifier    Notifier
	metrics     Metrics
	location    *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	personRepo PersonRepository,
	guard OverlapGuard,
	locker Locker,
	txManager TransactionManager,
	tokens TokenParser,
	notifier Notifier,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		bookingRepo: bookingRepo,
		personRepo:  personRepo,
		guard:       guard,
		locker:      locker,
		txManager:   txManager,
		tokens:      tokens,
		notifier:    notifier,
		metrics:     metrics,
		location:    location,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Клиент видит только свои записи, сотрудник - свои и назначенные ему
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d(%s)", id, actor.ID, actor.Role)

	booking, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !canView(actor, booking) {
		s.logger.Warn("GetByID: access denied for actor=%d to booking id=%d", actor.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// List возвращает бронирования в пределах прав actor
func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: actor=%d(%s), status=%v, staff=%v, customer=%v", actor.ID, actor.Role, req.Status, req.StaffID, req.CustomerID)

	if req.StartFrom != nil && req.StartTo != nil && !req.StartFrom.Before(*req.StartTo) {
		return nil, fmt.Errorf("%w: period start must be before its end", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter(actor)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.Find(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings for actor=%d", len(bookings), actor.ID)
	return models.FromDomainBookingList(bookings), nil
}

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// notifyCustomer отправляет уведомление клиенту записи, ошибки только логируются
func (s *Service) notifyCustomer(ctx context.Context, b *domain.Booking, build func(to domain.Contact) notifier.Message) {
	customer, err := s.personRepo.GetByID(ctx, b.CustomerID)
	if err != nil {
		s.logger.Warn("notify: cannot load customer id=%d for booking id=%d: %v", b.CustomerID, b.ID, err)
		return
	}
	s.notifier.Notify(ctx, build(customer.Contact()))
}

func (s *Service) observe(action domain.Action, result string) {
	if s.metrics != nil {
		s.metrics.ObserveTransition(string(action), result)
	}
}

func canView(actor domain.Actor, b *domain.Booking) bool {
	switch {
	case actor.IsAdmin():
		return true
	case b.CustomerID == actor.ID:
		return true
	case actor.IsStaff():
		return b.HasStaff() && *b.StaffID == actor.ID
	}
	return false
}
