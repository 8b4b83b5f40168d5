package mocks

import (
	"github.com/stretchr/testify/mock"

	"gamereview/internal/interfaces"
)

type MockDatabaseManager struct {
	mock.Mock
}

func (m *MockDatabaseManager) GetPool() interfaces.PgxPoolIface {
	args := m.Called()
	return args.Get(0).(interfaces.PgxPoolIface)
}

// NewMockDatabaseManager returns a MockDatabaseManager that hands out pool on every call.
func NewMockDatabaseManager(pool interfaces.PgxPoolIface) *MockDatabaseManager {
	m := &MockDatabaseManager{}
	m.On("GetPool").Return(pool)
	return m
}
