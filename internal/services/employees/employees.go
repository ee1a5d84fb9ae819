package employees

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/repository"
	"github.com/google/uuid"
	"github.com/tamathecxder/randomail"
)

const (
	queryTimeout      = 5 * time.Second
	defaultOptionsCap = 20
)

var errMalformedID = fmt.Errorf("%w: malformed id", repository.ErrNotFound)

type Staff struct {
	log   *slog.Logger
	repo  repository.EmployeeRepoIface
	now   func() time.Time
	newID func() string
}

type Option func(*Staff)

// WithClock replaces the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Staff) { s.now = now }
}

func NewStaff(log *slog.Logger, repo repository.EmployeeRepoIface, opts ...Option) *Staff {
	s := &Staff{log: log, repo: repo, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return sl.Component(s.log, "employee", opn)
}

// Defaults returns the initial values of a new employee.
func (s *Staff) Defaults() models.Employee {
	return models.Employee{HireDate: models.DatePtr(s.now())}
}

// Create stores a new employee and returns it with its identifier and timestamps.
func (s *Staff) Create(ctx context.Context, employee models.Employee) (models.Employee, error) {
	const opn = "Employee.Create"
	log := s.initLogger(opn)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ts := s.now()
	employee = normalize(employee)
	employee.ID = s.newID()
	employee.CreatedAt = ts
	employee.UpdatedAt = ts

	if err := s.repo.CreateEmployee(ctx, employee); err != nil {
		log.ErrorContext(ctx, "failed to create employee", "email", employee.Email, sl.Err(err))
		return models.Employee{}, fmt.Errorf("%s: %w", opn, err)
	}
	log.InfoContext(ctx, "employee created", "id", employee.ID, "fullname", employee.FullName)

	return employee, nil
}

// Update replaces the editable fields of employee id.
func (s *Staff) Update(ctx context.Context, id string, employee models.Employee) (models.Employee, error) {
	const opn = "Employee.Update"
	log := s.initLogger(opn)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if !validID(id) {
		return models.Employee{}, fmt.Errorf("%s: %w", opn, errMalformedID)
	}

	employee = normalize(employee)
	employee.ID = id
	employee.UpdatedAt = s.now()

	if err := s.repo.UpdateEmployee(ctx, employee); err != nil {
		log.ErrorContext(ctx, "failed to update employee", "id", id, sl.Err(err))
		return models.Employee{}, fmt.Errorf("%s: %w", opn, err)
	}
	log.InfoContext(ctx, "employee updated", "id", id)

	return employee, nil
}

func (s *Staff) GetByID(ctx context.Context, id string) (models.Employee, error) {
	if !validID(id) {
		return models.Employee{}, fmt.Errorf("Employee.GetByID: %w", errMalformedID)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	employee, err := s.repo.GetEmployeeByID(ctx, id)
	if err != nil {
		return models.Employee{}, fmt.Errorf("Employee.GetByID: %w", err)
	}
	return employee, nil
}

// Delete removes an employee together with their sick leave records.
func (s *Staff) Delete(ctx context.Context, id string) error {
	const opn = "Employee.Delete"
	log := s.initLogger(opn)

	if !validID(id) {
		return fmt.Errorf("%s: %w", opn, errMalformedID)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := s.repo.DeleteEmployee(ctx, id); err != nil {
		log.ErrorContext(ctx, "failed to delete employee", "id", id, sl.Err(err))
		return fmt.Errorf("%s: %w", opn, err)
	}
	log.InfoContext(ctx, "employee deleted", "id", id)

	return nil
}

// FindManyWithCount returns a page of employees and the total number of matches.
func (s *Staff) FindManyWithCount(
	ctx context.Context,
	query models.EmployeeQuery,
) (models.List[models.Employee], error) {
	if query.ID != "" && !validID(query.ID) {
		return models.List[models.Employee]{Data: []models.Employee{}}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	employees, total, err := s.repo.FindEmployees(ctx, query)
	if err != nil {
		return models.List[models.Employee]{}, fmt.Errorf("Employee.FindManyWithCount: %w", err)
	}
	return models.List[models.Employee]{Data: employees, TotalCount: total}, nil
}

// Options lists employees matching search by email, labelled by email.
func (s *Staff) Options(ctx context.Context, search string, limit int) (models.List[models.Option], error) {
	if limit <= 0 {
		limit = defaultOptionsCap
	}

	list, err := s.FindManyWithCount(ctx, models.EmployeeQuery{
		GetQuery: models.GetQuery{
			SearchTerm:     search,
			SearchTermKeys: []string{"email"},
			OrderBy:        "email",
			Order:          models.SortAsc,
			Limit:          limit,
		},
	})
	if err != nil {
		return models.List[models.Option]{}, err
	}

	options := make([]models.Option, 0, len(list.Data))
	for _, employee := range list.Data {
		options = append(options, models.Option{Value: employee.ID, Label: employee.Email})
	}
	return models.List[models.Option]{Data: options, TotalCount: list.TotalCount}, nil
}

// Seed creates n demo employees with generated email addresses.
func (s *Staff) Seed(ctx context.Context, n int) ([]models.Employee, error) {
	const opn = "Employee.Seed"
	log := s.initLogger(opn)

	created := make([]models.Employee, 0, n)
	for i := range n {
		employee, err := s.Create(ctx, models.Employee{
			FullName: fmt.Sprintf("Demo Employee %02d", i+1),
			Position: "Staff",
			Email:    randomail.GenerateRandomEmail(),
			HireDate: models.DatePtr(s.now()),
		})
		if err != nil {
			return created, fmt.Errorf("%s: %w", opn, err)
		}
		created = append(created, employee)
	}
	log.InfoContext(ctx, "demo employees created", "value", len(created))

	return created, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func normalize(employee models.Employee) models.Employee {
	employee.FullName = strings.TrimSpace(employee.FullName)
	employee.Position = strings.TrimSpace(employee.Position)
	employee.Email = strings.ToLower(strings.TrimSpace(employee.Email))
	employee.Phone = strings.TrimSpace(employee.Phone)
	employee.Count = nil
	if employee.HireDate != nil {
		employee.HireDate = models.DatePtr(*employee.HireDate)
	}
	return employee
}
