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
	"github.com/m04kA/SMC-SalonService/pkg/token"
)

const actionReschedule domain.Action = "reschedule"

// Reschedule переносит запись на новое время
// Услуга, длительность и цена остаются из снимка, пропущенная запись снова становится confirmed
func (s *Service) Reschedule(ctx context.Context, actor domain.Actor, req *models.RescheduleRequest) (*models.BookingResponse, error) {
	s.logger.Info("Reschedule: booking id=%d, start=%s, actor=%d(%s)",
		req.BookingID, req.StartTime.Format(time.RFC3339), actor.ID, actor.Role)

	booking, err := s.load(ctx, "Reschedule", req.BookingID)
	if err != nil {
		return nil, err
	}

	if !canTransition(actor, booking, domain.ActionCancel) {
		s.logger.Warn("Reschedule: actor=%d is not allowed to move booking id=%d", actor.ID, booking.ID)
		return nil, ErrAccessDenied
	}

	return s.reschedule(ctx, req.BookingID, req.StartTime, false)
}

// RescheduleByToken переносит запись по ссылке из уведомления о пропуске
// Ссылка действует, пока запись в статусе missed: первый перенос делает ее confirmed
func (s *Service) RescheduleByToken(ctx context.Context, req *models.RescheduleByTokenRequest) (*models.BookingResponse, error) {
	bookingID, err := s.tokens.Parse(req.Token)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			s.logger.Warn("RescheduleByToken: token expired")
		} else {
			s.logger.Warn("RescheduleByToken: invalid token: %v", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	s.logger.Info("RescheduleByToken: booking id=%d, start=%s", bookingID, req.StartTime.Format(time.RFC3339))
	return s.reschedule(ctx, bookingID, req.StartTime, true)
}

func (s *Service) reschedule(ctx context.Context, bookingID int64, newStart time.Time, onlyMissed bool) (*models.BookingResponse, error) {
	if newStart.IsZero() {
		return nil, fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	var moved *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Читаем запись в транзакции
		booking, err := s.load(txCtx, "Reschedule", bookingID)
		if err != nil {
			return err
		}

		if onlyMissed && booking.Status != domain.StatusMissed {
			s.logger.Warn("RescheduleByToken: booking id=%d is %s, link already used", booking.ID, booking.Status)
			return fmt.Errorf("%w: booking is %s", ErrInvalidToken, booking.Status)
		}

		if !domain.CanReschedule(booking.Status) {
			s.logger.Warn("Reschedule: booking id=%d is %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: cannot reschedule a %s booking", ErrInvalidTransition, booking.Status)
		}

		// 2. Блокируем клиента и сотрудника
		keys := []string{domain.FieldCustomer.LockKey(booking.CustomerID)}
		if booking.HasStaff() {
			keys = append(keys, domain.FieldStaff.LockKey(*booking.StaffID))
		}
		if err := s.locker.Lock(txCtx, keys...); err != nil {
			s.logger.Error("Reschedule: failed to lock %v: %v", keys, err)
			return fmt.Errorf("%w: failed to lock: %v", ErrInternal, err)
		}

		// 3. Проверяем пересечения без учета самой записи
		overlap, err := s.guard.HasOverlap(txCtx, domain.FieldCustomer, booking.CustomerID, newStart, booking.DurationMinutes, &booking.ID)
		if err != nil {
			s.logger.Error("Reschedule: failed to check customer overlap for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to check customer overlap: %v", ErrInternal, err)
		}
		if overlap {
			s.logger.Warn("Reschedule: customer=%d is busy at %s", booking.CustomerID, newStart.Format(time.RFC3339))
			return ErrCustomerOverlap
		}

		if booking.HasStaff() {
			overlap, err := s.guard.HasOverlap(txCtx, domain.FieldStaff, *booking.StaffID, newStart, booking.DurationMinutes, &booking.ID)
			if err != nil {
				s.logger.Error("Reschedule: failed to check staff overlap for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to check staff overlap: %v", ErrInternal, err)
			}
			if overlap {
				s.logger.Warn("Reschedule: staff=%d is busy at %s", *booking.StaffID, newStart.Format(time.RFC3339))
				return ErrStaffOverlap
			}
		}

		// 4. Условная запись
		next := booking.Status
		if next == domain.StatusMissed {
			next = domain.StatusConfirmed
		}
		if err := s.bookingRepo.Reschedule(txCtx, booking.ID, booking.Status, newStart, next); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				s.logger.Warn("Reschedule: booking id=%d changed concurrently", booking.ID)
				return fmt.Errorf("%w: booking changed concurrently", ErrInvalidTransition)
			}
			s.logger.Error("Reschedule: failed to move booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
		}

		moved, err = s.load(txCtx, "Reschedule", booking.ID)
		return err
	})
	if err != nil {
		s.observe(actionReschedule, resultOf(err))
		return nil, err
	}

	s.observe(actionReschedule, resultSuccess)
	s.logger.Info("Reschedule: booking id=%d moved to %s", moved.ID, moved.StartTime.Format(time.RFC3339))

	s.notifyCustomer(ctx, moved, func(to domain.Contact) notifier.Message {
		return notifier.RescheduledMessage(moved, to, s.location)
	})

	return models.FromDomainBooking(moved), nil
}

func resultOf(err error) string {
	if errors.Is(err, domain.ErrInfrastructure) {
		return resultError
	}
	return resultRejected
}
