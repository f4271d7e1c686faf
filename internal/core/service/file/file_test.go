package file_test

import (
	"filepress/internal/adapters/auth"
	"filepress/internal/adapters/eventbroker"
	"filepress/internal/adapters/repository"
	"filepress/internal/adapters/storage"
	"filepress/internal/core/port"
	"filepress/internal/core/service/file"
	"filepress/internal/core/service/token"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type mocks struct {
	uow     *repository.MockUnitOfWork
	repo    *repository.MockFileRecordRepository
	storage *storage.MockStorage
	tokens  *token.MockTokenBroker
	auth    *auth.MockAuthChecker
	events  *eventbroker.MockPublisher
}

// newService wires a file service on mocks. Authentication is set per test.
func newService(authenticated bool) (port.FileService, *mocks) {
	m := &mocks{
		uow:     repository.NewMockUnitOfWork(),
		storage: storage.NewMockStorage(),
		tokens:  token.NewMockTokenBroker(),
		auth:    auth.NewMockAuthChecker(),
		events:  eventbroker.NewMockPublisher(),
	}
	m.repo = m.uow.GetFileRepoMock()
	m.auth.On("IsAuthenticated", mock.Anything).Return(authenticated)

	service := file.NewFileService(m.uow, m.storage, m.tokens, m.auth, m.events, discardLogger)
	return service, m
}
