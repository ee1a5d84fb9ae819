package repository

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/jackc/pgx/v5"
)

const sickLeaveColumns = `
	sl.id, sl.start_date, sl.end_date, sl.doctor_note, sl.employee_id, sl.created_at, sl.updated_at,
	e.full_name, e.email`

const sickLeaveFrom = `
	FROM sick_leaves sl
	JOIN employees e ON e.id = sl.employee_id`

var sickLeaveOrder = map[string]string{
	"created_at": "sl.created_at",
	"updated_at": "sl.updated_at",
	"start_date": "sl.start_date",
	"end_date":   "sl.end_date",
}

var sickLeaveSearch = map[string]string{
	"employee.full_name": "e.full_name",
	"employee.email":     "e.email",
}

var sickLeaveSearchKeys = []string{"employee.full_name", "employee.email"}

// CreateSickLeave inserts a new sick leave record.
func (r *Repository) CreateSickLeave(ctx context.Context, leave models.SickLeave) error {
	defer r.observe("create_sick_leave", time.Now())

	query := `
		INSERT INTO sick_leaves (id, start_date, end_date, doctor_note, employee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	_, err := r.db.Exec(ctx, query,
		leave.ID, leave.StartDate, leave.EndDate, leave.DoctorNote, leave.EmployeeID, leave.CreatedAt, leave.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create sick leave: %w", classify(err))
	}

	return nil
}

// UpdateSickLeave overwrites the editable fields of an existing sick leave record.
func (r *Repository) UpdateSickLeave(ctx context.Context, leave models.SickLeave) error {
	defer r.observe("update_sick_leave", time.Now())

	query := `
		UPDATE sick_leaves
		SET start_date = $2, end_date = $3, doctor_note = $4, employee_id = $5, updated_at = $6
		WHERE id = $1;
	`

	tag, err := r.db.Exec(ctx, query,
		leave.ID, leave.StartDate, leave.EndDate, leave.DoctorNote, leave.EmployeeID, leave.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update sick leave: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update sick leave %s: %w", leave.ID, ErrNotFound)
	}

	return nil
}

// GetSickLeaveByID retrieves a sick leave record together with its employee.
func (r *Repository) GetSickLeaveByID(ctx context.Context, id string) (models.SickLeave, error) {
	defer r.observe("get_sick_leave_by_id", time.Now())

	query := `SELECT` + sickLeaveColumns + sickLeaveFrom + `
	WHERE sl.id = $1`

	leave, err := scanSickLeave(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return models.SickLeave{}, fmt.Errorf("failed to get sick leave by id: %w", classify(err))
	}

	return leave, nil
}

// DeleteSickLeave removes a sick leave record.
func (r *Repository) DeleteSickLeave(ctx context.Context, id string) error {
	defer r.observe("delete_sick_leave", time.Now())

	tag, err := r.db.Exec(ctx, `DELETE FROM sick_leaves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sick leave: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete sick leave %s: %w", id, ErrNotFound)
	}

	return nil
}

// FindSickLeaves returns one page of sick leave records and the total number of matches.
func (r *Repository) FindSickLeaves(ctx context.Context, q models.SickLeaveQuery) ([]models.SickLeave, int, error) {
	defer r.observe("find_sick_leaves", time.Now())

	page := q.GetQuery.Normalize(sickLeaveOrder, "created_at")

	var where whereBuilder
	if q.ID != "" {
		where.add("sl.id = ?", q.ID)
	}
	if q.EmployeeID != "" {
		where.add("sl.employee_id = ?", q.EmployeeID)
	}
	where.search(page.SearchTerm, page.SearchTermKeys, sickLeaveSearch, sickLeaveSearchKeys)

	var total int
	countArgs := slices.Clone(where.args)
	if err := r.db.QueryRow(ctx, `SELECT count(*)`+sickLeaveFrom+where.sql(), countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sick leaves: %w", err)
	}

	query := `SELECT` + sickLeaveColumns + sickLeaveFrom + where.sql() + where.page(page, sickLeaveOrder, "sl.id")
	rows, err := r.db.Query(ctx, query, where.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find sick leaves: %w", err)
	}
	defer rows.Close()

	leaves := make([]models.SickLeave, 0, page.Limit)
	for rows.Next() {
		leave, err := scanSickLeave(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan sick leave: %w", err)
		}
		leaves = append(leaves, leave)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate sick leaves: %w", err)
	}

	return leaves, total, nil
}

func scanSickLeave(row pgx.Row) (models.SickLeave, error) {
	var (
		leave    models.SickLeave
		employee models.Employee
	)

	err := row.Scan(
		&leave.ID, &leave.StartDate, &leave.EndDate, &leave.DoctorNote, &leave.EmployeeID,
		&leave.CreatedAt, &leave.UpdatedAt, &employee.FullName, &employee.Email,
	)
	if err != nil {
		return models.SickLeave{}, err
	}

	employee.ID = leave.EmployeeID
	leave.Employee = &employee

	return leave, nil
}
