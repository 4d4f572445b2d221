package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	personRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/person"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

const actionAssignStaff domain.Action = "assign_staff"

// AssignStaff назначает сотрудника на запись, доступно только администратору
// Время, услуга и статус не меняются, пересечение у сотрудника проверяется без учета самой записи
func (s *Service) AssignStaff(ctx context.Context, actor domain.Actor, req *models.AssignStaffRequest) (*models.BookingResponse, error) {
	s.logger.Info("AssignStaff: booking id=%d, staff=%d, actor=%d(%s)", req.BookingID, req.StaffID, actor.ID, actor.Role)

	if !actor.IsAdmin() {
		s.logger.Warn("AssignStaff: actor=%d with role %s is not admin", actor.ID, actor.Role)
		return nil, ErrAccessDenied
	}
	if req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
	}

	var assigned *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Запись и ее статус
		booking, err := s.load(txCtx, "AssignStaff", req.BookingID)
		if err != nil {
			return err
		}
		if booking.IsTerminal() {
			s.logger.Warn("AssignStaff: booking id=%d is %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: cannot assign staff to a %s booking", ErrInvalidTransition, booking.Status)
		}

		// 2. Блокируем клиента и нового сотрудника
		keys := []string{domain.FieldCustomer.LockKey(booking.CustomerID), domain.FieldStaff.LockKey(req.StaffID)}
		if err := s.locker.Lock(txCtx, keys...); err != nil {
			s.logger.Error("AssignStaff: failed to lock %v: %v", keys, err)
			return fmt.Errorf("%w: failed to lock: %v", ErrInternal, err)
		}

		// 3. Сотрудник существует и имеет роль staff или admin
		staff, err := s.personRepo.GetByID(txCtx, req.StaffID)
		if err != nil {
			if errors.Is(err, personRepo.ErrPersonNotFound) {
				s.logger.Warn("AssignStaff: staff id=%d not found", req.StaffID)
				return ErrStaffNotFound
			}
			s.logger.Error("AssignStaff: failed to get staff id=%d: %v", req.StaffID, err)
			return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		if staff.Role != domain.RoleStaff && staff.Role != domain.RoleAdmin {
			s.logger.Warn("AssignStaff: person id=%d is %s", staff.ID, staff.Role)
			return fmt.Errorf("%w: person %d is not a staff member", ErrStaffNotFound, staff.ID)
		}

		// 4. Сотрудник свободен в окне записи
		overlap, err := s.guard.HasOverlap(txCtx, domain.FieldStaff, req.StaffID, booking.StartTime, booking.DurationMinutes, &booking.ID)
		if err != nil {
			s.logger.Error("AssignStaff: failed to check staff overlap for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to check staff overlap: %v", ErrInternal, err)
		}
		if overlap {
			s.logger.Warn("AssignStaff: staff=%d is busy for booking id=%d", req.StaffID, booking.ID)
			return ErrStaffOverlap
		}

		// 5. Условная запись
		if err := s.bookingRepo.AssignStaff(txCtx, booking.ID, booking.Status, req.StaffID); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				s.logger.Warn("AssignStaff: booking id=%d changed concurrently", booking.ID)
				return fmt.Errorf("%w: booking changed concurrently", ErrInvalidTransition)
			}
			s.logger.Error("AssignStaff: failed to assign staff to booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: AssignStaff - repository error: %v", ErrInternal, err)
		}

		assigned, err = s.load(txCtx, "AssignStaff", booking.ID)
		return err
	})
	if err != nil {
		s.observe(actionAssignStaff, resultOf(err))
		return nil, err
	}

	s.observe(actionAssignStaff, resultSuccess)
	s.logger.Info("AssignStaff: booking id=%d assigned to staff=%d", assigned.ID, req.StaffID)

	return models.FromDomainBooking(assigned), nil
}
