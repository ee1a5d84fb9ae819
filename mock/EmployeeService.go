package mocks

import (
	"context"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/stretchr/testify/mock"
)

// EmployeeService is a mock type for the server.EmployeeService type.
type EmployeeService struct {
	mock.Mock
}

func (_m *EmployeeService) Defaults() models.Employee {
	ret := _m.Called()
	return ret.Get(0).(models.Employee)
}

func (_m *EmployeeService) Create(ctx context.Context, employee models.Employee) (models.Employee, error) {
	ret := _m.Called(ctx, employee)
	return ret.Get(0).(models.Employee), ret.Error(1)
}

func (_m *EmployeeService) Update(ctx context.Context, id string, employee models.Employee) (models.Employee, error) {
	ret := _m.Called(ctx, id, employee)
	return ret.Get(0).(models.Employee), ret.Error(1)
}

func (_m *EmployeeService) GetByID(ctx context.Context, id string) (models.Employee, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(models.Employee), ret.Error(1)
}

func (_m *EmployeeService) Delete(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *EmployeeService) FindManyWithCount(
	ctx context.Context,
	query models.EmployeeQuery,
) (models.List[models.Employee], error) {
	ret := _m.Called(ctx, query)
	return ret.Get(0).(models.List[models.Employee]), ret.Error(1)
}

func (_m *EmployeeService) Options(ctx context.Context, search string, limit int) (models.List[models.Option], error) {
	ret := _m.Called(ctx, search, limit)
	return ret.Get(0).(models.List[models.Option]), ret.Error(1)
}

// NewEmployeeService creates a new instance of EmployeeService and asserts its expectations on cleanup.
func NewEmployeeService(t interface {
	mock.TestingT
	Cleanup(func())
}) *EmployeeService {
	m := &EmployeeService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
