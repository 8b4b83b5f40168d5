// Package mocks provides testify mocks of the managers' resources.
package mocks

import "github.com/stretchr/testify/mock"

type MockMailManager struct {
	mock.Mock
}

func (m *MockMailManager) SendActivationMail(email, nickName, token, serviceName string) error {
	args := m.Called(email, nickName, token, serviceName)
	return args.Error(0)
}

func (m *MockMailManager) SendConfirmationMail(email, nickName, serviceName string) error {
	args := m.Called(email, nickName, serviceName)
	return args.Error(0)
}
