package mocks

import (
	"context"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/stretchr/testify/mock"
)

// SickLeaveRepoIface is a mock type for the repository.SickLeaveRepoIface type.
type SickLeaveRepoIface struct {
	mock.Mock
}

func (_m *SickLeaveRepoIface) CreateSickLeave(ctx context.Context, leave models.SickLeave) error {
	ret := _m.Called(ctx, leave)
	return ret.Error(0)
}

func (_m *SickLeaveRepoIface) UpdateSickLeave(ctx context.Context, leave models.SickLeave) error {
	ret := _m.Called(ctx, leave)
	return ret.Error(0)
}

func (_m *SickLeaveRepoIface) GetSickLeaveByID(ctx context.Context, id string) (models.SickLeave, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(models.SickLeave), ret.Error(1)
}

func (_m *SickLeaveRepoIface) DeleteSickLeave(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *SickLeaveRepoIface) FindSickLeaves(
	ctx context.Context,
	query models.SickLeaveQuery,
) ([]models.SickLeave, int, error) {
	ret := _m.Called(ctx, query)

	var leaves []models.SickLeave
	if v := ret.Get(0); v != nil {
		leaves = v.([]models.SickLeave)
	}
	return leaves, ret.Int(1), ret.Error(2)
}

// NewSickLeaveRepoIface creates a new instance of SickLeaveRepoIface and asserts its expectations on cleanup.
func NewSickLeaveRepoIface(t interface {
	mock.TestingT
	Cleanup(func())
}) *SickLeaveRepoIface {
	m := &SickLeaveRepoIface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
