package create_booking

import "time"

// Request запрос на запись клиента
type Request struct {
	CustomerID int64
	ServiceID  int64
	StartTime  time.Time
	StaffID    *int64
}

// SelfRequest запись сотрудника или администратора на себя как клиента
type SelfRequest struct {
	ServiceID int64
	StartTime time.Time
	StaffID   *int64
}

// WalkInRequest запись клиента, пришедшего без регистрации
// Клиент ищется по email, затем по телефону и создается, только если не найден
type WalkInRequest struct {
	Name      string
	Email     *string
	Phone     *string
	ServiceID int64
	StartTime time.Time
	StaffID   *int64
}
