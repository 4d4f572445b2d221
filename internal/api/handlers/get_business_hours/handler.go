package get_business_hours

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const msgInvalidStaffID = "некорректный ID сотрудника"

type Handler struct {
	service HoursService
	logger  Logger
}

func NewHandler(service HoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/business-hours
// Query params: staffId (опционально, без него возвращаются часы салона)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.QueryInt64(r, "staffId")
	if err != nil {
		h.logger.Warn("GET /business-hours - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	hours, err := h.service.Get(r.Context(), staffID)
	if err != nil {
		h.logger.Error("GET /business-hours - Failed to get business hours: staff_id=%v, error=%v", staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /business-hours - Business hours retrieved: staff_id=%v, source=%s", staffID, hours.Source)
	handlers.RespondJSON(w, http.StatusOK, hours)
}
