package update_business_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/hours"
	"github.com/m04kA/SMC-SalonService/pkg/validator"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "изменять рабочие часы может только администратор"
	msgStaffNotFound      = "сотрудник не найден"
	msgInvalidHours       = "некорректные рабочие часы"
)

type Handler struct {
	service   HoursService
	validator *validator.Validator
	logger    Logger
}

func NewHandler(service HoursService, logger Logger) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// Handle PUT /api/v1/business-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /business-hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /business-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.logger.Warn("PUT /business-hours - Validation failed: %v", err)
		handlers.RespondValidation(w, h.validator.FormatErrors(err))
		return
	}

	result, err := h.service.Update(r.Context(), actor, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, hours.ErrAccessDenied):
			h.logger.Warn("PUT /business-hours - Access denied: user_id=%d", actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, hours.ErrStaffNotFound):
			h.logger.Warn("PUT /business-hours - Staff not found: staff_id=%v", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, hours.ErrInvalidInput):
			h.logger.Warn("PUT /business-hours - Invalid hours: %v", err)
			handlers.RespondBadRequest(w, msgInvalidHours)

		default:
			h.logger.Error("PUT /business-hours - Failed to update business hours: user_id=%d, error=%v", actor.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /business-hours - Business hours updated: user_id=%d, staff_id=%v, %d..%d",
		actor.ID, req.StaffID, result.StartHour, result.EndHour)
	handlers.RespondJSON(w, http.StatusOK, result)
}
