package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

const (
	resultSuccess  = "success"
	resultRejected = "rejected"
	resultError    = "error"
)

// Transition применяет действие check_in, complete или cancel
// Отмена доступна клиенту записи, остальные действия только сотрудникам
func (s *Service) Transition(ctx context.Context, actor domain.Actor, req *models.TransitionRequest) (*models.BookingResponse, error) {
	s.logger.Info("Transition: booking id=%d, action=%s, actor=%d(%s)", req.BookingID, req.Action, actor.ID, actor.Role)

	if req.Action == domain.ActionMarkMissed {
		s.logger.Warn("Transition: action %s is reserved for the scanner", req.Action)
		return nil, fmt.Errorf("%w: action %s is not available", ErrInvalidInput, req.Action)
	}

	booking, err := s.load(ctx, "Transition", req.BookingID)
	if err != nil {
		return nil, err
	}

	if !canTransition(actor, booking, req.Action) {
		s.logger.Warn("Transition: actor=%d is not allowed to %s booking id=%d", actor.ID, req.Action, booking.ID)
		s.observe(req.Action, resultRejected)
		return nil, ErrAccessDenied
	}

	updated, err := s.apply(ctx, "Transition", booking, req.Action)
	if err != nil {
		return nil, err
	}

	if req.Action == domain.ActionCancel {
		s.notifyCustomer(ctx, updated, func(to domain.Contact) notifier.Message {
			return notifier.CancelledMessage(updated, to, s.location)
		})
	}

	return models.FromDomainBooking(updated), nil
}

// MarkMissed переводит просроченную запись в missed
// Вызывается сканером, права не проверяются
func (s *Service) MarkMissed(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.load(ctx, "MarkMissed", bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CheckedIn {
		s.logger.Warn("MarkMissed: booking id=%d is checked in", bookingID)
		s.observe(domain.ActionMarkMissed, resultRejected)
		return nil, fmt.Errorf("%w: booking is checked in", ErrInvalidTransition)
	}
	return s.apply(ctx, "MarkMissed", booking, domain.ActionMarkMissed)
}

// apply вычисляет новый статус и пишет его, только если статус в базе не изменился
// При проигранной гонке запись не меняется и возвращается ErrInvalidTransition
func (s *Service) apply(ctx context.Context, op string, booking *domain.Booking, action domain.Action) (*domain.Booking, error) {
	// 1. Проверяем переход по автомату статусов
	next, err := domain.NextStatus(booking.Status, action)
	if err != nil {
		s.logger.Warn("%s: booking id=%d: %v", op, booking.ID, err)
		s.observe(action, resultRejected)
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Условная запись по текущему статусу
	err = s.bookingRepo.UpdateStatus(ctx, booking.ID, booking.Status, next, action == domain.ActionCheckIn)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			current, loadErr := s.load(ctx, op, booking.ID)
			if loadErr != nil {
				return nil, loadErr
			}
			s.logger.Warn("%s: booking id=%d changed concurrently to %s", op, booking.ID, current.Status)
			s.observe(action, resultRejected)
			return nil, fmt.Errorf("%w: booking is now %s", ErrInvalidTransition, current.Status)
		}
		s.logger.Error("%s: failed to update status of booking id=%d: %v", op, booking.ID, err)
		s.observe(action, resultError)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.observe(action, resultSuccess)
	s.logger.Info("%s: booking id=%d %s -> %s", op, booking.ID, booking.Status, next)

	// 3. Статус уже записан, поэтому сбой перечитывания не превращается в ошибку перехода
	updated := *booking
	updated.Status = next
	if action == domain.ActionCheckIn {
		updated.CheckedIn = true
	}

	current, err := s.bookingRepo.GetByID(ctx, booking.ID)
	if err != nil {
		s.logger.Warn("%s: booking id=%d updated but reload failed, returning applied state: %v", op, booking.ID, err)
		return &updated, nil
	}
	return current, nil
}

func canTransition(actor domain.Actor, b *domain.Booking, action domain.Action) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.IsStaff() && (!b.HasStaff() || *b.StaffID == actor.ID) {
		return true
	}
	return action == domain.ActionCancel && b.CustomerID == actor.ID
}
