package mocks

import (
	"context"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/stretchr/testify/mock"
)

// SickLeaveService is a mock type for the server.SickLeaveService type.
type SickLeaveService struct {
	mock.Mock
}

func (_m *SickLeaveService) Defaults() models.SickLeave {
	ret := _m.Called()
	return ret.Get(0).(models.SickLeave)
}

func (_m *SickLeaveService) Create(ctx context.Context, leave models.SickLeave) (models.SickLeave, error) {
	ret := _m.Called(ctx, leave)
	return ret.Get(0).(models.SickLeave), ret.Error(1)
}

func (_m *SickLeaveService) Update(ctx context.Context, id string, leave models.SickLeave) (models.SickLeave, error) {
	ret := _m.Called(ctx, id, leave)
	return ret.Get(0).(models.SickLeave), ret.Error(1)
}

func (_m *SickLeaveService) GetByID(ctx context.Context, id string) (models.SickLeave, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(models.SickLeave), ret.Error(1)
}

func (_m *SickLeaveService) Delete(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *SickLeaveService) FindManyWithCount(
	ctx context.Context,
	query models.SickLeaveQuery,
) (models.List[models.SickLeave], error) {
	ret := _m.Called(ctx, query)
	return ret.Get(0).(models.List[models.SickLeave]), ret.Error(1)
}

// NewSickLeaveService creates a new instance of SickLeaveService and asserts its expectations on cleanup.
func NewSickLeaveService(t interface {
	mock.TestingT
	Cleanup(func())
}) *SickLeaveService {
	m := &SickLeaveService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
