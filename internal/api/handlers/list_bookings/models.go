package list_bookings

import (
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

// ToServiceRequest собирает фильтр из query параметров
// from и to принимаются в RFC3339
func ToServiceRequest(r *http.Request) (*models.ListBookingsRequest, error) {
	query := r.URL.Query()
	req := &models.ListBookingsRequest{}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	var err error
	if req.StartFrom, err = parseTime(query.Get("from")); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if req.StartTo, err = parseTime(query.Get("to")); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	if req.StaffID, err = handlers.QueryInt64(r, "staffId"); err != nil {
		return nil, err
	}
	if req.CustomerID, err = handlers.QueryInt64(r, "customerId"); err != nil {
		return nil, err
	}

	return req, nil
}

func parseTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
