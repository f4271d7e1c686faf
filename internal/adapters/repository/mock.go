package repository

import (
	"context"
	"filepress/internal/core/domain"
	"filepress/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockFileRecordRepository struct {
	mock.Mock
}

func NewMockFileRecordRepository() *MockFileRecordRepository {
	return &MockFileRecordRepository{}
}

func (m *MockFileRecordRepository) Create(ctx context.Context, record domain.FileRecord) (uuid.UUID, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockFileRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FileRecord, error) {
	args := m.Called(ctx, id)
	var record *domain.FileRecord
	if v := args.Get(0); v != nil {
		record = v.(*domain.FileRecord)
	}
	return record, args.Error(1)
}

func (m *MockFileRecordRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.FileRecord, int, error) {
	args := m.Called(ctx, filter)
	var records []domain.FileRecord
	if v := args.Get(0); v != nil {
		records = v.([]domain.FileRecord)
	}
	return records, args.Int(1), args.Error(2)
}

func (m *MockFileRecordRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RecordStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockFileRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFileRecordRepository) FindTrashedBefore(ctx context.Context, before time.Time) ([]domain.FileRecord, error) {
	args := m.Called(ctx, before)
	var records []domain.FileRecord
	if v := args.Get(0); v != nil {
		records = v.([]domain.FileRecord)
	}
	return records, args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
	fileRepo *MockFileRecordRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		fileRepo: &MockFileRecordRepository{},
	}
}

func (m *MockUnitOfWork) FileRepo() port.FileRecordRepository {
	return m.fileRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetFileRepoMock() *MockFileRecordRepository {
	return m.fileRepo
}
