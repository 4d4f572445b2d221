package catalogservice

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Service модель услуги из каталога
type Service struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
}

// ToDomain конвертирует ответ каталога в доменную модель
func (s *Service) ToDomain() *domain.Service {
	return &domain.Service{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}
