package assign_staff

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

type BookingService interface {
	AssignStaff(ctx context.Context, actor domain.Actor, req *models.AssignStaffRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
