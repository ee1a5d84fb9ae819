package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/athena/internal/access"
	"github.com/UnknownOlympus/athena/internal/appconfig"
	"github.com/UnknownOlympus/athena/internal/form"
	"github.com/UnknownOlympus/athena/internal/i18n"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/validation"
)

// SickLeaveService is the backend client for sick leave records.
type SickLeaveService interface {
	Defaults() models.SickLeave
	Create(ctx context.Context, leave models.SickLeave) (models.SickLeave, error)
	Update(ctx context.Context, id string, leave models.SickLeave) (models.SickLeave, error)
	GetByID(ctx context.Context, id string) (models.SickLeave, error)
	Delete(ctx context.Context, id string) error
	FindManyWithCount(ctx context.Context, query models.SickLeaveQuery) (models.List[models.SickLeave], error)
}

// EmployeeService is the backend client for employee records.
type EmployeeService interface {
	Defaults() models.Employee
	Create(ctx context.Context, employee models.Employee) (models.Employee, error)
	Update(ctx context.Context, id string, employee models.Employee) (models.Employee, error)
	GetByID(ctx context.Context, id string) (models.Employee, error)
	Delete(ctx context.Context, id string) error
	FindManyWithCount(ctx context.Context, query models.EmployeeQuery) (models.List[models.Employee], error)
	Options(ctx context.Context, search string, limit int) (models.List[models.Option], error)
}

const defaultSessionTTL = 8 * time.Hour

// Deps wires the web server to the rest of the application.
type Deps struct {
	Log        *slog.Logger
	Metrics    *metrics.Metrics
	Translator *i18n.Translator
	AppConfig  *appconfig.AppConfig
	Authorizer *access.Authorizer
	SickLeaves SickLeaveService
	Employees  EmployeeService
	Inflight   *form.Inflight

	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool

	// ShowErrorDetail adds the returned error text under a form's error panel.
	ShowErrorDetail bool
}

type Server struct {
	Deps

	pages         *pages
	sickLeaveForm *form.Controller[models.SickLeave]
	employeeForm  *form.Controller[models.Employee]
}

// New builds the web server: templates, validation schemas and form controllers.
func New(deps Deps) (*Server, error) {
	switch {
	case deps.JWTSecret == "":
		return nil, errors.New("server: jwt secret is empty")
	case deps.Translator == nil:
		return nil, errors.New("server: translator is required")
	case deps.Authorizer == nil:
		return nil, errors.New("server: authorizer is required")
	case deps.AppConfig == nil:
		return nil, errors.New("server: app config is required")
	}
	if deps.Log == nil {
		deps.Log = slog.New(slog.DiscardHandler)
	}
	if deps.SessionTTL <= 0 {
		deps.SessionTTL = defaultSessionTTL
	}
	if deps.Inflight == nil {
		deps.Inflight = form.NewInflight(0)
	}

	pg, err := newPages()
	if err != nil {
		return nil, err
	}

	engine := validation.NewEngine()
	sickLeaveSchema := validation.NewSchema[models.SickLeave](engine, deps.Translator)
	employeeSchema := validation.NewSchema[models.Employee](engine, deps.Translator)

	return &Server{
		Deps:  deps,
		pages: pg,
		sickLeaveForm: form.NewController(
			form.SickLeaveDefinition(sickLeaveSchema), deps.Inflight, deps.Metrics, deps.Log),
		employeeForm: form.NewController(
			form.EmployeeDefinition(employeeSchema), deps.Inflight, deps.Metrics, deps.Log),
	}, nil
}

// Handler returns the application routes behind the request middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleLoginPage)
	mux.HandleFunc("POST /{$}", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)

	sickLeave := func(op access.Operation, h http.HandlerFunc) http.Handler {
		return s.gate(s.forbiddenFor(access.EntitySickLeave, op), h, capability(access.EntitySickLeave, op))
	}
	mux.Handle("GET /sick-leaves", sickLeave(access.OperationRead, s.handleSickLeaveList))
	mux.Handle("GET /sick-leaves/create", sickLeave(access.OperationCreate, s.handleSickLeaveCreatePage))
	mux.Handle("POST /sick-leaves/create", sickLeave(access.OperationCreate, s.handleSickLeaveCreate))
	mux.Handle("GET /sick-leaves/view/{id}", sickLeave(access.OperationRead, s.handleSickLeaveView))
	mux.Handle("GET /sick-leaves/edit/{id}", sickLeave(access.OperationUpdate, s.handleSickLeaveEditPage))
	mux.Handle("POST /sick-leaves/edit/{id}", sickLeave(access.OperationUpdate, s.handleSickLeaveEdit))
	mux.Handle("POST /sick-leaves/delete/{id}", sickLeave(access.OperationDelete, s.handleSickLeaveDelete))

	employee := func(op access.Operation, h http.HandlerFunc) http.Handler {
		return s.gate(s.forbiddenFor(access.EntityEmployee, op), h, capability(access.EntityEmployee, op))
	}
	mux.Handle("GET /employees", employee(access.OperationRead, s.handleEmployeeList))
	mux.Handle("GET /employees/create", employee(access.OperationCreate, s.handleEmployeeCreatePage))
	mux.Handle("POST /employees/create", employee(access.OperationCreate, s.handleEmployeeCreate))
	mux.Handle("GET /employees/view/{id}", employee(access.OperationRead, s.handleEmployeeView))
	mux.Handle("GET /employees/edit/{id}", employee(access.OperationUpdate, s.handleEmployeeEditPage))
	mux.Handle("POST /employees/edit/{id}", employee(access.OperationUpdate, s.handleEmployeeEdit))
	mux.Handle("POST /employees/delete/{id}", employee(access.OperationDelete, s.handleEmployeeDelete))

	// the sick leave forms pick employees through this endpoint
	mux.Handle("GET "+form.EmployeeOptionsURL, s.gate(http.HandlerFunc(s.forbiddenJSON), s.handleEmployeeOptions,
		capability(access.EntityEmployee, access.OperationRead),
		capability(access.EntitySickLeave, access.OperationCreate),
		capability(access.EntitySickLeave, access.OperationUpdate),
	))

	var h http.Handler = mux
	h = s.observe(h)
	h = s.Translator.Middleware(h)
	h = s.recoverer(h)
	return h
}

func (s *Server) gate(forbidden http.Handler, h http.HandlerFunc, caps ...access.Capability) http.Handler {
	return access.Compose(
		access.RequireAuth(s.JWTSecret, "/", s.Log),
		access.WithAuthorization(s.Authorizer, forbidden, s.Log, caps...),
	)(h)
}

func capability(entity string, op access.Operation) access.Capability {
	return access.Capability{Service: access.ServiceProject, Entity: entity, Operation: op}
}
