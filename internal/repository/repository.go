package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrConflict         = errors.New("record conflicts with an existing one")
)

// Postgres error codes the repository translates into sentinels.
const (
	pgForeignKeyViolation       = "23503"
	pgUniqueViolation           = "23505"
	pgInvalidTextRepresentation = "22P02"
)

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// SickLeaveRepoIface represents the interface for interacting with sick leave data in the repository.
type SickLeaveRepoIface interface {
	CreateSickLeave(ctx context.Context, leave models.SickLeave) error
	UpdateSickLeave(ctx context.Context, leave models.SickLeave) error
	GetSickLeaveByID(ctx context.Context, id string) (models.SickLeave, error)
	DeleteSickLeave(ctx context.Context, id string) error
	FindSickLeaves(ctx context.Context, query models.SickLeaveQuery) ([]models.SickLeave, int, error)
}

func NewSickLeaveRepository(db Database, m *metrics.Metrics) SickLeaveRepoIface {
	return &Repository{db: db, metrics: m}
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	CreateEmployee(ctx context.Context, employee models.Employee) error
	UpdateEmployee(ctx context.Context, employee models.Employee) error
	GetEmployeeByID(ctx context.Context, id string) (models.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	FindEmployees(ctx context.Context, query models.EmployeeQuery) ([]models.Employee, int, error)
}

func NewEmployeeRepository(db Database, m *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: m}
}

func (r *Repository) observe(queryType string, startTime time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(startTime).Seconds())
}

// classify replaces driver errors the callers act on with repository sentinels.
func classify(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrInvalidReference, pgErr.ConstraintName)
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		case pgInvalidTextRepresentation:
			return fmt.Errorf("%w: %s", ErrNotFound, pgErr.Message)
		}
	}

	return err
}
