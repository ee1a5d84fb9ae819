package sickleaves_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/repository"
	"github.com/UnknownOlympus/athena/internal/services/sickleaves"
	mocks "github.com/UnknownOlympus/athena/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	fixedID    = "5f0c3b1a-2d4e-4f6a-8b9c-0d1e2f3a4b5c"
	employeeID = "0b9a8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d"
)

var fixedNow = time.Date(2026, time.October, 18, 14, 25, 0, 0, time.UTC)

func newService(repo repository.SickLeaveRepoIface) *sickleaves.Service {
	return sickleaves.NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		repo,
		sickleaves.WithClock(func() time.Time { return fixedNow }),
		sickleaves.WithIDGenerator(func() string { return fixedID }),
	)
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	got := newService(mocks.NewSickLeaveRepoIface(t)).Defaults()

	today := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)
	require.NotNil(t, got.StartDate)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, today, *got.StartDate)
	assert.Equal(t, today, *got.EndDate)
	assert.False(t, got.DoctorNote)
	assert.Empty(t, got.EmployeeID)
}

func TestCreate(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.October, 1, 16, 0, 0, 0, time.UTC)
	input := models.SickLeave{StartDate: &start, DoctorNote: true, EmployeeID: employeeID}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewSickLeaveRepoIface(t)
		repo.On("CreateSickLeave", mock.Anything, mock.MatchedBy(func(l models.SickLeave) bool {
			return l.ID == fixedID &&
				l.CreatedAt.Equal(fixedNow) &&
				l.StartDate.Equal(time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)) &&
				l.EndDate == nil &&
				l.DoctorNote &&
				l.EmployeeID == employeeID
		})).Return(nil).Once()

		got, err := newService(repo).Create(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, fixedID, got.ID)
		assert.Equal(t, fixedNow, got.UpdatedAt)
	})

	t.Run("repository failure", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewSickLeaveRepoIface(t)
		repo.On("CreateSickLeave", mock.Anything, mock.Anything).Return(repository.ErrInvalidReference).Once()

		_, err := newService(repo).Create(context.Background(), input)

		require.ErrorIs(t, err, repository.ErrInvalidReference)
		assert.Contains(t, err.Error(), "SickLeave.Create")
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	repo := mocks.NewSickLeaveRepoIface(t)
	repo.On("UpdateSickLeave", mock.Anything, mock.MatchedBy(func(l models.SickLeave) bool {
		return l.ID == fixedID && l.UpdatedAt.Equal(fixedNow) && l.Employee == nil
	})).Return(nil).Once()

	got, err := newService(repo).Update(context.Background(), fixedID, models.SickLeave{
		EmployeeID: employeeID,
		Employee:   &models.Employee{ID: employeeID},
	})

	require.NoError(t, err)
	assert.Equal(t, fixedID, got.ID)
}

func TestGetByIDAndDelete(t *testing.T) {
	t.Parallel()

	repo := mocks.NewSickLeaveRepoIface(t)
	repo.On("GetSickLeaveByID", mock.Anything, employeeID).Return(models.SickLeave{}, repository.ErrNotFound).Once()
	repo.On("DeleteSickLeave", mock.Anything, fixedID).Return(nil).Once()

	svc := newService(repo)

	_, err := svc.GetByID(context.Background(), employeeID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), fixedID))
}

func TestFindManyWithCount(t *testing.T) {
	t.Parallel()

	query := models.SickLeaveQuery{EmployeeID: employeeID}
	rows := []models.SickLeave{{ID: "1"}, {ID: "2"}}

	repo := mocks.NewSickLeaveRepoIface(t)
	repo.On("FindSickLeaves", mock.Anything, query).Return(rows, 42, nil).Once()

	got, err := newService(repo).FindManyWithCount(context.Background(), query)

	require.NoError(t, err)
	assert.Equal(t, 42, got.TotalCount)
	assert.Equal(t, rows, got.Data)
}

func TestMalformedIDSkipsRepository(t *testing.T) {
	t.Parallel()

	svc := newService(mocks.NewSickLeaveRepoIface(t))
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "not-a-uuid")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Update(ctx, "not-a-uuid", models.SickLeave{EmployeeID: employeeID})
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, "not-a-uuid"), repository.ErrNotFound)

	for _, query := range []models.SickLeaveQuery{{ID: "x"}, {EmployeeID: "not-a-uuid"}} {
		list, err := svc.FindManyWithCount(ctx, query)
		require.NoError(t, err)
		assert.Empty(t, list.Data)
		assert.Zero(t, list.TotalCount)
	}
}
