package file

import (
	"context"
	"filepress/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockFileService is a mock implementation of FileService
type MockFileService struct {
	mock.Mock
}

// NewMockFileService creates a new MockFileService
func NewMockFileService() *MockFileService {
	return &MockFileService{}
}

func (m *MockFileService) Create(ctx context.Context, upload domain.Upload) (uuid.UUID, error) {
	args := m.Called(ctx, upload)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockFileService) Get(ctx context.Context, id uuid.UUID) (*domain.DownloadGrant, error) {
	args := m.Called(ctx, id)
	var grant *domain.DownloadGrant
	if v := args.Get(0); v != nil {
		grant = v.(*domain.DownloadGrant)
	}
	return grant, args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, filter domain.ListFilter) ([]domain.FileRecord, int, error) {
	args := m.Called(ctx, filter)
	var records []domain.FileRecord
	if v := args.Get(0); v != nil {
		records = v.([]domain.FileRecord)
	}
	return records, args.Int(1), args.Error(2)
}

func (m *MockFileService) Delete(ctx context.Context, id uuid.UUID, force bool) (*domain.DeleteResult, error) {
	args := m.Called(ctx, id, force)
	var result *domain.DeleteResult
	if v := args.Get(0); v != nil {
		result = v.(*domain.DeleteResult)
	}
	return result, args.Error(1)
}

func (m *MockFileService) Deliver(ctx context.Context, filename string, salt string) (*domain.Delivery, error) {
	args := m.Called(ctx, filename, salt)
	var delivery *domain.Delivery
	if v := args.Get(0); v != nil {
		delivery = v.(*domain.Delivery)
	}
	return delivery, args.Error(1)
}

func (m *MockFileService) AuthCheck(ctx context.Context) (*domain.AuthStatus, error) {
	args := m.Called(ctx)
	var status *domain.AuthStatus
	if v := args.Get(0); v != nil {
		status = v.(*domain.AuthStatus)
	}
	return status, args.Error(1)
}
