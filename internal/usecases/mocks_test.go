package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cardreg.backend/internal/domain/entities"
)

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) MarkRegistered(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

// Mock DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Document, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Document), args.Error(1)
}

// Mock FormControlRepository
type MockFormControlRepository struct {
	mock.Mock
}

func (m *MockFormControlRepository) ListByGroup(ctx context.Context, controlName string) ([]*entities.FormControl, error) {
	args := m.Called(ctx, controlName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.FormControl), args.Error(1)
}

// Mock WorkflowStateStore
type MockWorkflowStateStore struct {
	mock.Mock
}

func (m *MockWorkflowStateStore) Save(ctx context.Context, sessionID string, state *entities.WorkflowState) error {
	args := m.Called(ctx, sessionID, state)
	return args.Error(0)
}

func (m *MockWorkflowStateStore) Load(ctx context.Context, sessionID string) (*entities.WorkflowState, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WorkflowState), args.Error(1)
}

func (m *MockWorkflowStateStore) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// Mock content store
type MockContentStore struct {
	mock.Mock
}

func (m *MockContentStore) Save(ctx context.Context, data []byte, ext string) (string, error) {
	args := m.Called(ctx, data, ext)
	return args.String(0), args.Error(1)
}

func (m *MockContentStore) Remove(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
