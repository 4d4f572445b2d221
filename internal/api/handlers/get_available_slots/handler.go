package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidStaffID   = "некорректный ID сотрудника"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound  = "услуга не найдена"
	msgInvalidService   = "услуга не может быть записана"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD), staffId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Извлекаем serviceId
	serviceIDStr := query.Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /available-slots - Invalid service ID: %q", serviceIDStr)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	staffID, err := handlers.QueryInt64(r, "staffId")
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, staffID, dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidService)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved: service_id=%d, date=%s, slots_count=%d",
		serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
