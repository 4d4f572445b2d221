package hours

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	hoursRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/hours"
	personRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/person"
	"github.com/m04kA/SMC-SalonService/internal/service/hours/models"
)

// Service сервис рабочих часов
// Порядок применения: часы сотрудника, часы салона, значения из конфигурации
type Service struct {
	hoursRepo  HoursRepository
	personRepo PersonRepository
	txManager  TransactionManager
	defaults   domain.BusinessHours
	logger     Logger
}

// NewService создает новый экземпляр сервиса рабочих часов
func NewService(
	hoursRepo HoursRepository,
	personRepo PersonRepository,
	txManager TransactionManager,
	defaults domain.BusinessHours,
	logger Logger,
) *Service {
	return &Service{
		hoursRepo:  hoursRepo,
		personRepo: personRepo,
		txManager:  txManager,
		defaults:   defaults,
		logger:     logger,
	}
}

// Resolve возвращает действующие часы для staffID (nil - часы салона)
func (s *Service) Resolve(ctx context.Context, staffID *int64) (*domain.BusinessHours, error) {
	h, err := s.hoursRepo.GetWithHierarchy(ctx, staffID)
	if err == nil {
		return h, nil
	}
	if !errors.Is(err, hoursRepo.ErrHoursNotFound) {
		s.logger.Error("Resolve: failed to get business hours for staff=%v: %v", staffID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	defaults := s.defaults
	return &defaults, nil
}

// Get возвращает действующие часы с указанием источника
func (s *Service) Get(ctx context.Context, staffID *int64) (*models.HoursResponse, error) {
	h, err := s.Resolve(ctx, staffID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainHours(h, staffID), nil
}

// Update сохраняет часы салона или сотрудника
// Доступно только администратору
func (s *Service) Update(ctx context.Context, actor domain.Actor, req *models.UpdateHoursRequest) (*models.HoursResponse, error) {
	s.logger.Info("Update: business hours staff=%v %d..%d by user=%d", req.StaffID, req.StartHour, req.EndHour, actor.ID)

	if !actor.IsAdmin() {
		s.logger.Warn("Update: user=%d with role=%s is not an admin", actor.ID, actor.Role)
		return nil, ErrAccessDenied
	}

	h := &domain.BusinessHours{StaffID: req.StaffID, StartHour: req.StartHour, EndHour: req.EndHour}
	if err := h.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.StaffID != nil {
		staff, err := s.personRepo.GetByID(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, personRepo.ErrPersonNotFound) {
				s.logger.Warn("Update: staff id=%d not found", *req.StaffID)
				return nil, ErrStaffNotFound
			}
			s.logger.Error("Update: failed to get staff id=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		if staff.Role == domain.RoleCustomer {
			s.logger.Warn("Update: person id=%d is not a staff member", *req.StaffID)
			return nil, ErrStaffNotFound
		}
	}

	var saved *domain.BusinessHours
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.hoursRepo.Upsert(txCtx, h)
		return err
	})
	if err != nil {
		s.logger.Error("Update: failed to save business hours for staff=%v: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: business hours id=%d saved", saved.ID)
	return models.FromDomainHours(saved, req.StaffID), nil
}
