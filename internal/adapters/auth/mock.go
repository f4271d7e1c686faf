package auth

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockAuthChecker struct {
	mock.Mock
}

func NewMockAuthChecker() *MockAuthChecker {
	return &MockAuthChecker{}
}

func (m *MockAuthChecker) IsAuthenticated(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}
