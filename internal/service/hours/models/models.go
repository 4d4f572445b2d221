package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Источник, из которого взяты часы
const (
	SourceStaff   = "staff"
	SourceSalon   = "salon"
	SourceDefault = "default"
)

// UpdateHoursRequest запрос на изменение часов салона или сотрудника
type UpdateHoursRequest struct {
	StaffID   *int64 // nil - часы салона
	StartHour int
	EndHour   int
}

// HoursResponse действующие рабочие часы
type HoursResponse struct {
	StaffID   *int64     `json:"staffId,omitempty"`
	StartHour int        `json:"startHour"`
	EndHour   int        `json:"endHour"`
	Source    string     `json:"source"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainHours конвертирует часы в ответ с указанием источника
func FromDomainHours(h *domain.BusinessHours, requestedStaff *int64) *HoursResponse {
	resp := &HoursResponse{
		StaffID:   requestedStaff,
		StartHour: h.StartHour,
		EndHour:   h.EndHour,
		Source:    SourceSalon,
	}

	switch {
	case h.ID == 0:
		resp.Source = SourceDefault
	case h.StaffID != nil:
		resp.Source = SourceStaff
	}

	if !h.UpdatedAt.IsZero() {
		updatedAt := h.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
