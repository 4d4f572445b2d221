package transition_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
	msgInvalidAction    = "действие недоступно"
	msgNotAllowed       = "действие недопустимо для текущего статуса бронирования"
)

// Handler обрабатывает одно действие жизненного цикла: check-in, complete или cancel
type Handler struct {
	service BookingService
	action  domain.Action
	route   string
	logger  Logger
}

func NewHandler(service BookingService, action domain.Action, logger Logger) *Handler {
	return &Handler{
		service: service,
		action:  action,
		route:   fmt.Sprintf("PATCH /bookings/{id}/%s", action),
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", h.route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", h.route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Transition(r.Context(), actor, &models.TransitionRequest{
		BookingID: bookingID,
		Action:    h.action,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%d", h.route, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: booking_id=%d, user_id=%d", h.route, bookingID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("%s - Not allowed: booking_id=%d, error=%v", h.route, bookingID, err)
			handlers.RespondConflict(w, msgNotAllowed)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("%s - Invalid action: booking_id=%d, error=%v", h.route, bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidAction)

		default:
			h.logger.Error("%s - Failed to apply action: booking_id=%d, error=%v", h.route, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking updated: booking_id=%d, user_id=%d, status=%s",
		h.route, bookingID, actor.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
