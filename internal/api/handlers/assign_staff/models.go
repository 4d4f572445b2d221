package assign_staff

// AssignStaffRequest тело запроса назначения сотрудника
type AssignStaffRequest struct {
	StaffID *int64 `json:"staffId" validate:"required,gt=0"`
}
