package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64
	Date      time.Time // Дата, время суток не учитывается
	StaffID   *int64    // nil - учитываются все бронирования салона
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	ServiceID       int64
	StaffID         *int64
	DurationMinutes int
	StartHour       int
	EndHour         int
	Slots           []types.TimeString // По возрастанию, без повторов
}
