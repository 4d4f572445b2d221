package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SalonService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonService/pkg/validator"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректные дата или время начала"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgServiceNotFound    = "услуга не найдена"
	msgCustomerNotFound   = "клиент не найден"
	msgStaffNotFound      = "сотрудник не найден"
	msgCustomerOverlap    = "у клиента уже есть запись на это время"
	msgStaffOverlap       = "сотрудник занят в это время"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase   CreateBookingUseCase
	validator *validator.Validator
	location  *time.Location
	logger    Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:   useCase,
		validator: validator.New(),
		location:  location,
		logger:    logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	const route = "POST /bookings"

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, h.location)
	if err != nil {
		h.logger.Warn("%s - Failed to parse start time: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), actor, useCaseReq)
	h.respond(w, route, result, err)
}

// HandleSelf POST /api/v1/bookings/self
func (h *Handler) HandleSelf(w http.ResponseWriter, r *http.Request) {
	const route = "POST /bookings/self"

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SelfBookingRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("%s - Failed to parse start time: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.BookForSelf(r.Context(), actor, useCaseReq)
	h.respond(w, route, result, err)
}

// HandleWalkIn POST /api/v1/bookings/walk-in
func (h *Handler) HandleWalkIn(w http.ResponseWriter, r *http.Request) {
	const route = "POST /bookings/walk-in"

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req WalkInBookingRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("%s - Failed to parse start time: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.BookForWalkIn(r.Context(), actor, useCaseReq)
	h.respond(w, route, result, err)
}

// decode читает и валидирует тело, при ошибке ответ уже записан
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
		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: %v", route, err)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("%s - Service not found", route)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrCustomerNotFound):
			h.logger.Warn("%s - Customer not found", route)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createBooking.ErrStaffNotFound):
			h.logger.Warn("%s - Staff not found", route)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createBooking.ErrCustomerOverlap):
			h.logger.Warn("%s - Customer overlap: %v", route, err)
			handlers.RespondConflict(w, msgCustomerOverlap)

		case errors.Is(err, createBooking.ErrStaffOverlap):
			h.logger.Warn("%s - Staff overlap: %v", route, err)
			handlers.RespondConflict(w, msgStaffOverlap)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("%s - Failed to create booking: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking created: booking_id=%d, customer_id=%d, start=%s",
		route, result.ID, result.CustomerID, result.StartTime.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusCreated, result)
}
