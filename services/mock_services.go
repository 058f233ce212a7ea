package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fest-registration/models"
)

// Ensure the mocks implement their interfaces
var (
	_ UserServiceInterface  = (*MockUserService)(nil)
	_ EventServiceInterface = (*MockEventService)(nil)
	_ AdminServiceInterface = (*MockAdminService)(nil)
	_ AuthServiceInterface  = (*MockAuthService)(nil)
)

// MockUserService is a mock implementation for testing and extends `mock.Mock`
type MockUserService struct {
	mock.Mock
}

// Create (Mocked)
func (m *MockUserService) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// List (Mocked)
func (m *MockUserService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

// DeleteByName (Mocked)
func (m *MockUserService) DeleteByName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

// DeleteByID (Mocked)
func (m *MockUserService) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventService is a mock implementation for testing and extends `mock.Mock`
type MockEventService struct {
	mock.Mock
}

// Create (Mocked)
func (m *MockEventService) Create(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// List (Mocked)
func (m *MockEventService) List(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	events, _ := args.Get(0).([]models.Event)
	return events, args.Error(1)
}

// Get (Mocked)
func (m *MockEventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	args := m.Called(ctx, id)
	event, _ := args.Get(0).(*models.Event)
	return event, args.Error(1)
}

// DeleteByName (Mocked)
func (m *MockEventService) DeleteByName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

// DeleteByID (Mocked)
func (m *MockEventService) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAdminService is a mock implementation for testing and extends `mock.Mock`
type MockAdminService struct {
	mock.Mock
}

// FindByUsername (Mocked)
func (m *MockAdminService) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	args := m.Called(ctx, username)
	admin, _ := args.Get(0).(*models.Admin)
	return admin, args.Error(1)
}

// Create (Mocked)
func (m *MockAdminService) Create(ctx context.Context, username, passwordHash string) (*models.Admin, error) {
	args := m.Called(ctx, username, passwordHash)
	admin, _ := args.Get(0).(*models.Admin)
	return admin, args.Error(1)
}

// UpdatePassword (Mocked)
func (m *MockAdminService) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	args := m.Called(ctx, username, passwordHash)
	return args.Error(0)
}

// MockAuthService is a mock implementation for testing and extends `mock.Mock`
type MockAuthService struct {
	mock.Mock
}

// Authenticate (Mocked)
func (m *MockAuthService) Authenticate(ctx context.Context, username, password string) (*models.Admin, error) {
	args := m.Called(ctx, username, password)
	admin, _ := args.Get(0).(*models.Admin)
	return admin, args.Error(1)
}
