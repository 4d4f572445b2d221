package reschedule_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

type BookingService interface {
	Reschedule(ctx context.Context, actor domain.Actor, req *models.RescheduleRequest) (*models.BookingResponse, error)
	RescheduleByToken(ctx context.Context, req *models.RescheduleByTokenRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
