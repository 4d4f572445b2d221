package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}
	return validateSlot(req.ServiceID, req.StartTime, req.StaffID)
}

func validateSlot(serviceID int64, start time.Time, staffID *int64) error {
	if serviceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if start.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if staffID != nil && *staffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateWalkIn проверяет данные клиента без регистрации
func validateWalkIn(req *WalkInRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return validateSlot(req.ServiceID, req.StartTime, req.StaffID)
}

// validateStaffRole проверяет, что запись справочника - сотрудник
func validateStaffRole(p *domain.Person) error {
	if p.Role != domain.RoleStaff && p.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: person %d is not a staff member", ErrStaffNotFound, p.ID)
	}
	return nil
}
