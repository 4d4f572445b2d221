package update_business_hours

import "github.com/m04kA/SMC-SalonService/internal/service/hours/models"

// UpdateHoursRequest HTTP request model
type UpdateHoursRequest struct {
	StaffID   *int64 `json:"staffId,omitempty" validate:"omitempty,gt=0"`
	StartHour *int   `json:"startHour" validate:"required,gte=0,lte=23"`
	EndHour   *int   `json:"endHour" validate:"required,gte=1,lte=24"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateHoursRequest) ToServiceRequest() *models.UpdateHoursRequest {
	return &models.UpdateHoursRequest{
		StaffID:   r.StaffID,
		StartHour: *r.StartHour,
		EndHour:   *r.EndHour,
	}
}
