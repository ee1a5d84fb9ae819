package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testLeaveID    = "7d3c2a4e-5b1f-4c8e-9a6d-2f0b1e3c4d5a"
	testEmployeeID = "0b9a8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d"
)

var (
	createSickLeaveQuery = `
		INSERT INTO sick_leaves (id, start_date, end_date, doctor_note, employee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	updateSickLeaveQuery = `
		UPDATE sick_leaves
		SET start_date = $2, end_date = $3, doctor_note = $4, employee_id = $5, updated_at = $6
		WHERE id = $1;
	`
	sickLeaveRowColumns = []string{
		"id", "start_date", "end_date", "doctor_note", "employee_id", "created_at", "updated_at",
		"full_name", "email",
	}
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mock.Close)

	return mock
}

func sampleLeave() models.SickLeave {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	end := day.AddDate(0, 0, 4)
	ts := time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)

	return models.SickLeave{
		ID:         testLeaveID,
		StartDate:  &day,
		EndDate:    &end,
		DoctorNote: true,
		EmployeeID: testEmployeeID,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
}

func TestCreateSickLeave_Success(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	leave := sampleLeave()

	mock.ExpectExec(regexp.QuoteMeta(createSickLeaveQuery)).
		WithArgs(leave.ID, leave.StartDate, leave.EndDate, leave.DoctorNote, leave.EmployeeID,
			leave.CreatedAt, leave.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := repository.NewSickLeaveRepository(mock, metrics.NewMetrics(prometheus.NewRegistry()))
	err := repo.CreateSickLeave(context.Background(), leave)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSickLeave_QueryError(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	leave := sampleLeave()

	mock.ExpectExec(regexp.QuoteMeta(createSickLeaveQuery)).
		WithArgs(leave.ID, leave.StartDate, leave.EndDate, leave.DoctorNote, leave.EmployeeID,
			leave.CreatedAt, leave.UpdatedAt).
		WillReturnError(assert.AnError)

	repo := repository.NewSickLeaveRepository(mock, nil)
	err := repo.CreateSickLeave(context.Background(), leave)

	require.Error(t, err)
	assert.Equal(t, "failed to create sick leave: "+assert.AnError.Error(), err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSickLeave_UnknownEmployee(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	leave := sampleLeave()

	mock.ExpectExec(regexp.QuoteMeta(createSickLeaveQuery)).
		WithArgs(leave.ID, leave.StartDate, leave.EndDate, leave.DoctorNote, leave.EmployeeID,
			leave.CreatedAt, leave.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "sick_leaves_employee_id_fkey"})

	repo := repository.NewSickLeaveRepository(mock, nil)
	err := repo.CreateSickLeave(context.Background(), leave)

	require.ErrorIs(t, err, repository.ErrInvalidReference)
	assert.Contains(t, err.Error(), "sick_leaves_employee_id_fkey")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSickLeave(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		mock := newMock(t)
		leave := sampleLeave()
		mock.ExpectExec(regexp.QuoteMeta(updateSickLeaveQuery)).
			WithArgs(leave.ID, leave.StartDate, leave.EndDate, leave.DoctorNote, leave.EmployeeID, leave.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := repository.NewSickLeaveRepository(mock, nil)
		require.NoError(t, repo.UpdateSickLeave(context.Background(), leave))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		t.Parallel()

		mock := newMock(t)
		leave := sampleLeave()
		mock.ExpectExec(regexp.QuoteMeta(updateSickLeaveQuery)).
			WithArgs(leave.ID, leave.StartDate, leave.EndDate, leave.DoctorNote, leave.EmployeeID, leave.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := repository.NewSickLeaveRepository(mock, nil)
		err := repo.UpdateSickLeave(context.Background(), leave)
		require.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetSickLeaveByID(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		mock := newMock(t)
		leave := sampleLeave()
		rows := pgxmock.NewRows(sickLeaveRowColumns).AddRow(
			leave.ID, leave.StartDate, leave.EndDate, leave.DoctorNote, leave.EmployeeID,
			leave.CreatedAt, leave.UpdatedAt, "Olena Kovalenko", "olena@example.com")
		mock.ExpectQuery(`(?s)SELECT\s+sl\.id.+WHERE sl\.id = \$1`).WithArgs(leave.ID).WillReturnRows(rows)

		repo := repository.NewSickLeaveRepository(mock, nil)
		got, err := repo.GetSickLeaveByID(context.Background(), leave.ID)

		require.NoError(t, err)
		assert.Equal(t, leave.ID, got.ID)
		assert.True(t, got.DoctorNote)
		assert.Equal(t, *leave.StartDate, *got.StartDate)
		require.NotNil(t, got.Employee)
		assert.Equal(t, testEmployeeID, got.Employee.ID)
		assert.Equal(t, "olena@example.com", got.Employee.Email)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		mock := newMock(t)
		mock.ExpectQuery(`WHERE sl\.id = \$1`).WithArgs(testLeaveID).WillReturnError(pgx.ErrNoRows)

		repo := repository.NewSickLeaveRepository(mock, nil)
		_, err := repo.GetSickLeaveByID(context.Background(), testLeaveID)

		require.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()

		mock := newMock(t)
		mock.ExpectQuery(`WHERE sl\.id = \$1`).WithArgs("not-a-uuid").
			WillReturnError(&pgconn.PgError{
				Code:    "22P02",
				Message: `invalid input syntax for type uuid: "not-a-uuid"`,
			})

		repo := repository.NewSickLeaveRepository(mock, nil)
		_, err := repo.GetSickLeaveByID(context.Background(), "not-a-uuid")

		require.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteSickLeave(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sick_leaves WHERE id = $1`)).
		WithArgs(testLeaveID).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sick_leaves WHERE id = $1`)).
		WithArgs(testLeaveID).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := repository.NewSickLeaveRepository(mock, nil)
	require.NoError(t, repo.DeleteSickLeave(context.Background(), testLeaveID))
	require.ErrorIs(t, repo.DeleteSickLeave(context.Background(), testLeaveID), repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindSickLeaves(t *testing.T) {
	t.Parallel()

	t.Run("filters and pages", func(t *testing.T) {
		t.Parallel()

		mock := newMock(t)
		leave := sampleLeave()

		mock.ExpectQuery(`(?s)` + regexp.QuoteMeta(`SELECT count(*)`) + `.+` +
			regexp.QuoteMeta(`WHERE sl.employee_id = $1 AND (e.full_name ILIKE $2 OR e.email ILIKE $3)`)).
			WithArgs(testEmployeeID, "%olena%", "%olena%").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(31))
		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY sl.start_date ASC, sl.id ASC LIMIT $4 OFFSET $5`)).
			WithArgs(testEmployeeID, "%olena%", "%olena%", 10, 20).
			WillReturnRows(pgxmock.NewRows(sickLeaveRowColumns).AddRow(
				leave.ID, leave.StartDate, leave.EndDate, leave.DoctorNote, leave.EmployeeID,
				leave.CreatedAt, leave.UpdatedAt, "Olena Kovalenko", "olena@example.com"))

		repo := repository.NewSickLeaveRepository(mock, nil)
		got, total, err := repo.FindSickLeaves(context.Background(), models.SickLeaveQuery{
			GetQuery: models.GetQuery{
				SearchTerm: "olena",
				OrderBy:    "start_date",
				Order:      models.SortAsc,
				Limit:      10,
				Offset:     20,
			},
			EmployeeID: testEmployeeID,
		})

		require.NoError(t, err)
		assert.Equal(t, 31, total)
		require.Len(t, got, 1)
		assert.Equal(t, "Olena Kovalenko", got[0].Employee.FullName)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("escapes like wildcards", func(t *testing.T) {
		t.Parallel()

		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE (e.full_name ILIKE $1)`)).
			WithArgs(`%50\%%`).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY sl.created_at DESC, sl.id ASC LIMIT $2 OFFSET $3`)).
			WithArgs(`%50\%%`, models.DefaultPageSize, 0).
			WillReturnRows(pgxmock.NewRows(sickLeaveRowColumns))

		repo := repository.NewSickLeaveRepository(mock, nil)
		got, total, err := repo.FindSickLeaves(context.Background(), models.SickLeaveQuery{
			GetQuery: models.GetQuery{SearchTerm: "50%", SearchTermKeys: []string{"employee.full_name", "bogus"}},
		})

		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count error", func(t *testing.T) {
		t.Parallel()

		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*)`)).WillReturnError(assert.AnError)

		repo := repository.NewSickLeaveRepository(mock, nil)
		_, _, err := repo.FindSickLeaves(context.Background(), models.SickLeaveQuery{})

		require.ErrorIs(t, err, assert.AnError)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
