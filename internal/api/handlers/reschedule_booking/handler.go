package reschedule_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonService/pkg/validator"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректные дата или время начала"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotAllowed         = "бронирование нельзя перенести"
	msgInvalidToken       = "ссылка на перенос недействительна или устарела"
	msgCustomerOverlap    = "у клиента уже есть запись на это время"
	msgStaffOverlap       = "сотрудник занят в это время"
)

type Handler struct {
	service   BookingService
	validator *validator.Validator
	location  *time.Location
	logger    Logger
}

func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:   service,
		validator: validator.New(),
		location:  location,
		logger:    logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /bookings/{id}/reschedule"

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

	var req RescheduleRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	start, err := req.start(h.location)
	if err != nil {
		h.logger.Warn("%s - Failed to parse start time: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.service.Reschedule(r.Context(), actor, &models.RescheduleRequest{
		BookingID: bookingID,
		StartTime: start,
	})
	h.respond(w, route, result, err)
}

// HandleByToken POST /api/v1/reschedule
// Публичный маршрут, право на перенос подтверждается подписанным токеном
func (h *Handler) HandleByToken(w http.ResponseWriter, r *http.Request) {
	const route = "POST /reschedule"

	var req RescheduleByTokenRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	start, err := req.start(h.location)
	if err != nil {
		h.logger.Warn("%s - Failed to parse start time: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.service.RescheduleByToken(r.Context(), &models.RescheduleByTokenRequest{
		Token:     req.Token,
		StartTime: start,
	})
	h.respond(w, route, result, err)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string, dst interface{}) bool {
	if err := handlers.DecodeJSON(r, dst); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}
	if err := h.validator.Validate(dst); err != nil {
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondValidation(w, h.validator.FormatErrors(err))
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, route string, result *models.BookingResponse, err error) {
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidToken):
			h.logger.Warn("%s - Invalid token: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidToken)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found", route)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: %v", route, err)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("%s - Not allowed: %v", route, err)
			handlers.RespondConflict(w, msgNotAllowed)

		case errors.Is(err, bookings.ErrCustomerOverlap):
			h.logger.Warn("%s - Customer overlap: %v", route, err)
			handlers.RespondConflict(w, msgCustomerOverlap)

		case errors.Is(err, bookings.ErrStaffOverlap):
			h.logger.Warn("%s - Staff overlap: %v", route, err)
			handlers.RespondConflict(w, msgStaffOverlap)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidStartTime)

		default:
			h.logger.Error("%s - Failed to reschedule booking: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking rescheduled: booking_id=%d, start=%s",
		route, result.ID, result.StartTime.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, result)
}
