package sickleaves

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/repository"
	"github.com/google/uuid"
)

const queryTimeout = 5 * time.Second

var errMalformedID = fmt.Errorf("%w: malformed id", repository.ErrNotFound)

type Service struct {
	log   *slog.Logger
	repo  repository.SickLeaveRepoIface
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

// WithClock replaces the time source used for defaults and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the generator of new record identifiers.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

func NewService(log *slog.Logger, repo repository.SickLeaveRepoIface, opts ...Option) *Service {
	s := &Service{log: log, repo: repo, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) initLogger(opn string) *slog.Logger {
	return sl.Component(s.log, "sick_leave", opn)
}

// Defaults returns the initial values of a new sick leave: both dates set
// to the current day and no doctor's note.
func (s *Service) Defaults() models.SickLeave {
	today := s.now()
	return models.SickLeave{
		StartDate:  models.DatePtr(today),
		EndDate:    models.DatePtr(today),
		DoctorNote: false,
	}
}

// Create stores a new sick leave record and returns it with its identifier and timestamps.
func (s *Service) Create(ctx context.Context, leave models.SickLeave) (models.SickLeave, error) {
	const opn = "SickLeave.Create"
	log := s.initLogger(opn)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ts := s.now()
	leave.ID = s.newID()
	leave.CreatedAt = ts
	leave.UpdatedAt = ts
	leave.Employee = nil
	normalizeDates(&leave)

	if err := s.repo.CreateSickLeave(ctx, leave); err != nil {
		log.ErrorContext(ctx, "failed to create sick leave", "employee_id", leave.EmployeeID, sl.Err(err))
		return models.SickLeave{}, fmt.Errorf("%s: %w", opn, err)
	}
	log.InfoContext(ctx, "sick leave created", "id", leave.ID, "employee_id", leave.EmployeeID)

	return leave, nil
}

// Update replaces the editable fields of sick leave id.
func (s *Service) Update(ctx context.Context, id string, leave models.SickLeave) (models.SickLeave, error) {
	const opn = "SickLeave.Update"
	log := s.initLogger(opn)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if !validID(id) {
		return models.SickLeave{}, fmt.Errorf("%s: %w", opn, errMalformedID)
	}

	leave.ID = id
	leave.UpdatedAt = s.now()
	leave.Employee = nil
	normalizeDates(&leave)

	if err := s.repo.UpdateSickLeave(ctx, leave); err != nil {
		log.ErrorContext(ctx, "failed to update sick leave", "id", id, sl.Err(err))
		return models.SickLeave{}, fmt.Errorf("%s: %w", opn, err)
	}
	log.InfoContext(ctx, "sick leave updated", "id", id)

	return leave, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (models.SickLeave, error) {
	if !validID(id) {
		return models.SickLeave{}, fmt.Errorf("SickLeave.GetByID: %w", errMalformedID)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	leave, err := s.repo.GetSickLeaveByID(ctx, id)
	if err != nil {
		return models.SickLeave{}, fmt.Errorf("SickLeave.GetByID: %w", err)
	}
	return leave, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	const opn = "SickLeave.Delete"
	log := s.initLogger(opn)

	if !validID(id) {
		return fmt.Errorf("%s: %w", opn, errMalformedID)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := s.repo.DeleteSickLeave(ctx, id); err != nil {
		log.ErrorContext(ctx, "failed to delete sick leave", "id", id, sl.Err(err))
		return fmt.Errorf("%s: %w", opn, err)
	}
	log.InfoContext(ctx, "sick leave deleted", "id", id)

	return nil
}

// FindManyWithCount returns a page of sick leaves and the total number of matches.
func (s *Service) FindManyWithCount(
	ctx context.Context,
	query models.SickLeaveQuery,
) (models.List[models.SickLeave], error) {
	if (query.ID != "" && !validID(query.ID)) || (query.EmployeeID != "" && !validID(query.EmployeeID)) {
		return models.List[models.SickLeave]{Data: []models.SickLeave{}}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	leaves, total, err := s.repo.FindSickLeaves(ctx, query)
	if err != nil {
		return models.List[models.SickLeave]{}, fmt.Errorf("SickLeave.FindManyWithCount: %w", err)
	}
	return models.List[models.SickLeave]{Data: leaves, TotalCount: total}, nil
}

func normalizeDates(leave *models.SickLeave) {
	if leave.StartDate != nil {
		leave.StartDate = models.DatePtr(*leave.StartDate)
	}
	if leave.EndDate != nil {
		leave.EndDate = models.DatePtr(*leave.EndDate)
	}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
