package models

import "time"

// SickLeave is a sick leave record owned by exactly one employee.
type SickLeave struct {
	ID         string     `json:"id,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	DoctorNote bool       `json:"doctor_note"`
	EmployeeID string     `json:"employee_id"          validate:"required,uuid"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Employee *Employee `json:"employee,omitempty" validate:"-"`
}

// SickLeaveQuery narrows a sick leave list request.
type SickLeaveQuery struct {
	GetQuery

	ID         string `json:"id,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
}
