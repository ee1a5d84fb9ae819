package repository

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `
	e.id, e.full_name, e.position, e.email, e.phone, e.hire_date, e.created_at, e.updated_at,
	(SELECT count(*) FROM sick_leaves s WHERE s.employee_id = e.id)`

var employeeOrder = map[string]string{
	"created_at": "e.created_at",
	"full_name":  "e.full_name",
	"email":      "e.email",
	"hire_date":  "e.hire_date",
}

var employeeSearch = map[string]string{
	"full_name": "e.full_name",
	"email":     "e.email",
	"position":  "e.position",
}

var employeeSearchKeys = []string{"full_name", "email", "position"}

// CreateEmployee inserts a new employee record.
func (r *Repository) CreateEmployee(ctx context.Context, employee models.Employee) error {
	defer r.observe("create_employee", time.Now())

	query := `
		INSERT INTO employees (id, full_name, position, email, phone, hire_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.db.Exec(ctx, query, employee.ID, employee.FullName, employee.Position, employee.Email,
		employee.Phone, employee.HireDate, employee.CreatedAt, employee.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", classify(err))
	}

	return nil
}

// UpdateEmployee updates an employee's information in the database.
func (r *Repository) UpdateEmployee(ctx context.Context, employee models.Employee) error {
	defer r.observe("update_employee", time.Now())

	query := `
		UPDATE employees
		SET full_name = $2, position = $3, email = $4, phone = $5, hire_date = $6, updated_at = $7
		WHERE id = $1;
	`

	tag, err := r.db.Exec(ctx, query, employee.ID, employee.FullName, employee.Position, employee.Email,
		employee.Phone, employee.HireDate, employee.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update employee data: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update employee %s: %w", employee.ID, ErrNotFound)
	}

	return nil
}

// GetEmployeeByID retrieves an employee from the database by their ID.
func (r *Repository) GetEmployeeByID(ctx context.Context, id string) (models.Employee, error) {
	defer r.observe("get_employee_by_id", time.Now())

	query := `SELECT` + employeeColumns + `
	FROM employees e WHERE e.id = $1`

	employee, err := scanEmployee(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by id: %w", classify(err))
	}

	return employee, nil
}

// DeleteEmployee removes an employee; their sick leave records go with them.
func (r *Repository) DeleteEmployee(ctx context.Context, id string) error {
	defer r.observe("delete_employee", time.Now())

	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete employee %s: %w", id, ErrNotFound)
	}

	return nil
}

// FindEmployees returns one page of employees and the total number of matches.
func (r *Repository) FindEmployees(ctx context.Context, q models.EmployeeQuery) ([]models.Employee, int, error) {
	defer r.observe("find_employees", time.Now())

	page := q.GetQuery.Normalize(employeeOrder, "created_at")

	var where whereBuilder
	if q.ID != "" {
		where.add("e.id = ?", q.ID)
	}
	if q.Email != "" {
		where.add("lower(e.email) = lower(?)", q.Email)
	}
	where.search(page.SearchTerm, page.SearchTermKeys, employeeSearch, employeeSearchKeys)

	var total int
	countArgs := slices.Clone(where.args)
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM employees e`+where.sql(), countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := `SELECT` + employeeColumns + `
	FROM employees e` + where.sql() + where.page(page, employeeOrder, "e.id")
	rows, err := r.db.Query(ctx, query, where.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0, page.Limit)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, employee)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, total, nil
}

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var (
		employee models.Employee
		count    int
	)

	err := row.Scan(&employee.ID, &employee.FullName, &employee.Position, &employee.Email, &employee.Phone,
		&employee.HireDate, &employee.CreatedAt, &employee.UpdatedAt, &count)
	if err != nil {
		return models.Employee{}, err
	}
	employee.Count = &models.EmployeeCount{SickLeave: count}

	return employee, nil
}
