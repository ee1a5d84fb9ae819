package validation_test

import (
	"context"
	"testing"
	"time"

	"github.com/UnknownOlympus/athena/internal/i18n"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

func newSchemas(t *testing.T) (*validation.Schema[models.SickLeave], *validation.Schema[models.Employee]) {
	t.Helper()

	tr, err := i18n.New("en")
	require.NoError(t, err)

	engine := validation.NewEngine()
	return validation.NewSchema[models.SickLeave](engine, tr), validation.NewSchema[models.Employee](engine, tr)
}

func TestSickLeaveSchema(t *testing.T) {
	t.Parallel()

	sickLeaves, _ := newSchemas(t)
	ctx := context.Background()
	day := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)

	t.Run("accepts a complete record", func(t *testing.T) {
		t.Parallel()

		in := models.SickLeave{StartDate: &day, EndDate: &day, EmployeeID: employeeID}
		out, errs := sickLeaves.Validate(ctx, in)

		assert.Nil(t, errs)
		assert.Equal(t, in, out)
	})

	t.Run("employee is required", func(t *testing.T) {
		t.Parallel()

		_, errs := sickLeaves.Validate(ctx, models.SickLeave{StartDate: &day, EndDate: &day})

		require.Len(t, errs, 1)
		assert.Equal(t, "Employee is a required field", errs["employee_id"])
	})

	t.Run("employee must be a uuid", func(t *testing.T) {
		t.Parallel()

		_, errs := sickLeaves.Validate(ctx, models.SickLeave{EmployeeID: "42"})

		assert.Equal(t, "Employee must be a valid identifier", errs["employee_id"])
	})

	t.Run("dates are optional", func(t *testing.T) {
		t.Parallel()

		_, errs := sickLeaves.Validate(ctx, models.SickLeave{EmployeeID: employeeID})

		assert.Nil(t, errs)
	})

	t.Run("end date before start date", func(t *testing.T) {
		t.Parallel()

		before := day.AddDate(0, 0, -1)
		_, errs := sickLeaves.Validate(ctx, models.SickLeave{StartDate: &day, EndDate: &before, EmployeeID: employeeID})

		require.Len(t, errs, 1)
		assert.Equal(t, "End Date must not be before the start date", errs["end_date"])
	})
}

func TestSickLeaveSchema_Localized(t *testing.T) {
	t.Parallel()

	sickLeaves, _ := newSchemas(t)
	ctx := i18n.WithLocale(context.Background(), "uk")

	_, errs := sickLeaves.Validate(ctx, models.SickLeave{})

	assert.Equal(t, "Поле «Працівник» обов'язкове", errs["employee_id"])
}

func TestEmployeeSchema(t *testing.T) {
	t.Parallel()

	_, employees := newSchemas(t)
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		_, errs := employees.Validate(ctx, models.Employee{
			FullName: "Olena Kovalenko",
			Email:    "olena@example.com",
			Phone:    "+380 67-123-4567",
		})
		assert.Nil(t, errs)
	})

	t.Run("invalid fields", func(t *testing.T) {
		t.Parallel()

		_, errs := employees.Validate(ctx, models.Employee{
			Email: "not-an-email",
			Phone: "+invalid_number",
		})

		assert.Equal(t, "Full Name is a required field", errs["full_name"])
		assert.Equal(t, "Email must be a valid email", errs["email"])
		assert.Equal(t, "Phone must be a valid phone number", errs["phone"])
	})

	t.Run("phone longer than the column", func(t *testing.T) {
		t.Parallel()

		_, errs := employees.Validate(ctx, models.Employee{
			FullName: "Olena Kovalenko",
			Email:    "olena@example.com",
			Phone:    "+1 - 2 - 3 - 4 - 5 - 6 - 7 - 8 - 9 - 0",
		})

		require.Len(t, errs, 1)
		assert.Equal(t, "Phone must be at most 32 characters", errs["phone"])
	})
}

func TestIsValidPhoneNumber(t *testing.T) {
	t.Parallel()

	assert.True(t, validation.IsValidPhoneNumber("+345678765432"))
	assert.True(t, validation.IsValidPhoneNumber("096 123-45-67"))
	assert.False(t, validation.IsValidPhoneNumber("+invalid_number"))
	assert.False(t, validation.IsValidPhoneNumber(""))
}

func TestFieldErrors(t *testing.T) {
	t.Parallel()

	fe := validation.FieldErrors{"b": "second", "a": "first"}
	assert.Equal(t, "validation failed: a: first; b: second", fe.Error())

	merged := validation.FieldErrors(nil).Merge(fe).Merge(validation.FieldErrors{"a": "ignored", "c": "third"})
	assert.Equal(t, validation.FieldErrors{"a": "first", "b": "second", "c": "third"}, merged)
}
