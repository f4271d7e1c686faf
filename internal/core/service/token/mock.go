package token

import (
	"context"
	"filepress/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockTokenBroker struct {
	mock.Mock
}

func NewMockTokenBroker() *MockTokenBroker {
	return &MockTokenBroker{}
}

func (m *MockTokenBroker) Issue(ctx context.Context, filename string) (*domain.DownloadToken, error) {
	args := m.Called(ctx, filename)
	var token *domain.DownloadToken
	if v := args.Get(0); v != nil {
		token = v.(*domain.DownloadToken)
	}
	return token, args.Error(1)
}

func (m *MockTokenBroker) Redeem(ctx context.Context, filename string, salt string) (bool, error) {
	args := m.Called(ctx, filename, salt)
	return args.Bool(0), args.Error(1)
}
