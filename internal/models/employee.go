package models

import "time"

// Employee represents an employee entity.
type Employee struct {
	ID        string     `json:"id,omitempty"`
	FullName  string     `json:"full_name"           validate:"required,max=255"`
	Position  string     `json:"position"            validate:"max=255"`
	Email     string     `json:"email"               validate:"required,email,max=255"`
	Phone     string     `json:"phone"               validate:"omitempty,max=32,phone"`
	HireDate  *time.Time `json:"hire_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Count *EmployeeCount `json:"_count,omitempty" validate:"-"`
}

// EmployeeCount holds relation counters returned with employee lists.
type EmployeeCount struct {
	SickLeave int `json:"sick_leave"`
}

// EmployeeQuery narrows an employee list request.
type EmployeeQuery struct {
	GetQuery

	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
}
