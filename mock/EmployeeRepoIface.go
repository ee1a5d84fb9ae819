package mocks

import (
	"context"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/stretchr/testify/mock"
)

// EmployeeRepoIface is a mock type for the repository.EmployeeRepoIface type.
type EmployeeRepoIface struct {
	mock.Mock
}

func (_m *EmployeeRepoIface) CreateEmployee(ctx context.Context, employee models.Employee) error {
	ret := _m.Called(ctx, employee)
	return ret.Error(0)
}

func (_m *EmployeeRepoIface) UpdateEmployee(ctx context.Context, employee models.Employee) error {
	ret := _m.Called(ctx, employee)
	return ret.Error(0)
}

func (_m *EmployeeRepoIface) GetEmployeeByID(ctx context.Context, id string) (models.Employee, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(models.Employee), ret.Error(1)
}

func (_m *EmployeeRepoIface) DeleteEmployee(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *EmployeeRepoIface) FindEmployees(
	ctx context.Context,
	query models.EmployeeQuery,
) ([]models.Employee, int, error) {
	ret := _m.Called(ctx, query)

	var employees []models.Employee
	if v := ret.Get(0); v != nil {
		employees = v.([]models.Employee)
	}
	return employees, ret.Int(1), ret.Error(2)
}

// NewEmployeeRepoIface creates a new instance of EmployeeRepoIface and asserts its expectations on cleanup.
func NewEmployeeRepoIface(t interface {
	mock.TestingT
	Cleanup(func())
}) *EmployeeRepoIface {
	m := &EmployeeRepoIface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
