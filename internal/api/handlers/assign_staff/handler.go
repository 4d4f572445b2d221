package assign_staff

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonService/pkg/validator"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgStaffNotFound      = "сотрудник не найден"
	msgForbidden          = "доступ запрещен"
	msgNotAllowed         = "на это бронирование нельзя назначить сотрудника"
	msgStaffOverlap       = "сотрудник занят в это время"
	msgInvalidStaffID     = "некорректный ID сотрудника"
)

type Handler struct {
	service   BookingService
	validator *validator.Validator
	logger    Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/assign-staff
// Только для администратора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /bookings/{id}/assign-staff"

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AssignStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondValidation(w, h.validator.FormatErrors(err))
		return
	}

	result, err := h.service.AssignStaff(r.Context(), actor, &models.AssignStaffRequest{
		BookingID: bookingID,
		StaffID:   *req.StaffID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%d", route, bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrStaffNotFound):
			h.logger.Warn("%s - Staff not found: staff_id=%d", route, *req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: user_id=%d", route, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("%s - Not allowed: %v", route, err)
			handlers.RespondConflict(w, msgNotAllowed)

		case errors.Is(err, bookings.ErrStaffOverlap):
			h.logger.Warn("%s - Staff overlap: booking_id=%d, staff_id=%d", route, bookingID, *req.StaffID)
			handlers.RespondConflict(w, msgStaffOverlap)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)

		default:
			h.logger.Error("%s - Failed to assign staff: booking_id=%d, error=%v", route, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Staff assigned: booking_id=%d, staff_id=%d", route, bookingID, *req.StaffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
