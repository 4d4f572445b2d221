package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// RescheduleRequest новое время записи в часовом поясе салона
type RescheduleRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,hhmm"`
}

// RescheduleByTokenRequest перенос по ссылке из уведомления о пропуске
type RescheduleByTokenRequest struct {
	Token string `json:"token" validate:"required"`
	RescheduleRequest
}

func (r *RescheduleRequest) start(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat+" "+domain.TimeFormat, r.Date+" "+r.StartTime, loc)
}
