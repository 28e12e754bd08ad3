package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"cardreg.backend/internal/domain/entities"
	domainerrors "cardreg.backend/internal/domain/errors"
	"cardreg.backend/internal/infrastructure/models"
	"cardreg.backend/pkg/utils"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The email unique index resolves cross-session
// registration races; the loser surfaces ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = utils.GenerateUUIDv7()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	m := &models.User{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		PhoneNumber:  user.PhoneNumber.Ptr(),
		DateOfBirth:  user.DateOfBirth,
		Gender:       user.Gender,
		Country:      user.Country,
		CreatedAt:    user.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// GetByEmail gets a user by exact email match
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// MarkRegistered stamps the confirmation finalize timestamp
func (r *UserRepository) MarkRegistered(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("registered_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users, newest first
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	var userModels []models.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, toUserEntity(&userModels[i]))
	}
	return users, nil
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		PhoneNumber:  null.StringFromPtr(m.PhoneNumber),
		DateOfBirth:  m.DateOfBirth,
		Gender:       m.Gender,
		Country:      m.Country,
		CreatedAt:    m.CreatedAt,
		RegisteredAt: null.TimeFromPtr(m.RegisteredAt),
	}
}

// isUniqueViolation matches unique-index errors across the postgres and
// sqlite drivers.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
