package form

import (
	"github.com/UnknownOlympus/athena/internal/access"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/validation"
)

const (
	// EmployeeOptionsURL serves the employee async select.
	EmployeeOptionsURL = "/api/employees/options"
	// EmployeeOptionsLimit caps the employees offered per type-ahead search.
	EmployeeOptionsLimit = 20
)

// SickLeaveDefinition declares the sick leave form.
func SickLeaveDefinition(schema *validation.Schema[models.SickLeave]) Definition[models.SickLeave] {
	return Definition[models.SickLeave]{
		Entity:   access.EntitySickLeave,
		ListPath: "/sick-leaves",
		Fields: []Field{
			{Name: "start_date", Label: "field.start_date", Kind: KindDate},
			{Name: "end_date", Label: "field.end_date", Kind: KindDate},
			{Name: "doctor_note", Label: "field.doctor_note", Kind: KindSwitch},
			{
				Name:         "employee_id",
				Label:        "field.employee_id",
				Kind:         KindAsyncSelect,
				Required:     true,
				OptionsURL:   EmployeeOptionsURL,
				LabelField:   "email",
				OptionsLimit: EmployeeOptionsLimit,
			},
		},
		Schema: schema,
		Decode: func(d *Decoder) models.SickLeave {
			return models.SickLeave{
				StartDate:  d.Date("start_date"),
				EndDate:    d.Date("end_date"),
				DoctorNote: d.Bool("doctor_note"),
				EmployeeID: d.String("employee_id"),
			}
		},
		Encode: func(rec models.SickLeave) map[string]string {
			values := map[string]string{
				"start_date":  FormatDate(rec.StartDate),
				"end_date":    FormatDate(rec.EndDate),
				"doctor_note": FormatBool(rec.DoctorNote),
				"employee_id": rec.EmployeeID,
			}
			if rec.Employee != nil {
				values[LabelKey("employee_id")] = rec.Employee.Email
			}
			return values
		},
	}
}

// EmployeeDefinition declares the employee form.
func EmployeeDefinition(schema *validation.Schema[models.Employee]) Definition[models.Employee] {
	return Definition[models.Employee]{
		Entity:   access.EntityEmployee,
		ListPath: "/employees",
		Fields: []Field{
			{Name: "full_name", Label: "field.full_name", Kind: KindText, Required: true},
			{Name: "position", Label: "field.position", Kind: KindText},
			{Name: "email", Label: "field.email", Kind: KindText, Required: true},
			{Name: "phone", Label: "field.phone", Kind: KindText},
			{Name: "hire_date", Label: "field.hire_date", Kind: KindDate},
		},
		Schema: schema,
		Decode: func(d *Decoder) models.Employee {
			return models.Employee{
				FullName: d.String("full_name"),
				Position: d.String("position"),
				Email:    d.String("email"),
				Phone:    d.String("phone"),
				HireDate: d.Date("hire_date"),
			}
		},
		Encode: func(rec models.Employee) map[string]string {
			return map[string]string{
				"full_name": rec.FullName,
				"position":  rec.Position,
				"email":     rec.Email,
				"phone":     rec.Phone,
				"hire_date": FormatDate(rec.HireDate),
			}
		},
	}
}
