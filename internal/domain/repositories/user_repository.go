package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cardreg.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	// Create inserts a new user. A unique-index collision on email is
	// reported as domain ErrDuplicateEmail.
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// MarkRegistered stamps the finalize timestamp set by the confirmation stage.
	MarkRegistered(ctx context.Context, id uuid.UUID, at time.Time) error
	List(ctx context.Context) ([]*entities.User, error)
}

// DocumentRepository defines document metadata operations
type DocumentRepository interface {
	Create(ctx context.Context, doc *entities.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Document, error)
}
