// Package mocks provides mock implementations of the application ports for
// testing.
package mocks

import (
	"context"

	"accounts-backend/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks ports.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Add(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// MockPasswordHasher mocks ports.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(plain, hash string) bool {
	args := m.Called(plain, hash)
	return args.Bool(0)
}

// MockLogRepository mocks ports.LogRepository.
type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) LogTrace(ctx context.Context, trace *entities.Trace) error {
	args := m.Called(ctx, trace)
	return args.Error(0)
}

func (m *MockLogRepository) LogRequest(ctx context.Context, log *entities.RequestLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockLogRepository) UpdateRequestLog(ctx context.Context, log *entities.RequestLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// MockTelemetrySink mocks ports.TelemetrySink, recording every sent record.
type MockTelemetrySink struct {
	mock.Mock
}

func (m *MockTelemetrySink) Send(record interface{}) {
	m.Called(record)
}
