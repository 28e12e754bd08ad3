package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cardreg.backend/internal/domain/entities"
	domainerrors "cardreg.backend/internal/domain/errors"
	"cardreg.backend/internal/infrastructure/models"
	"cardreg.backend/pkg/utils"
)

// DocumentRepository implements document metadata operations
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts document metadata for an already-stored binary
func (r *DocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = utils.GenerateUUIDv7()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}

	m := &models.Document{
		ID:           doc.ID,
		UserID:       doc.UserID,
		DocumentName: doc.DocumentName,
		DocumentType: doc.DocumentType,
		StoragePath:  doc.StoragePath,
		FileSize:     doc.FileSize,
		FileType:     doc.FileType,
		UploadedAt:   doc.UploadedAt,
	}

	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	var m models.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toDocumentEntity(&m), nil
}

// ListByUserID lists a user's documents, newest upload first
func (r *DocumentRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Document, error) {
	var docModels []models.Document
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&docModels).Error; err != nil {
		return nil, err
	}

	docs := make([]*entities.Document, 0, len(docModels))
	for i := range docModels {
		docs = append(docs, toDocumentEntity(&docModels[i]))
	}
	return docs, nil
}

func toDocumentEntity(m *models.Document) *entities.Document {
	return &entities.Document{
		ID:           m.ID,
		UserID:       m.UserID,
		DocumentName: m.DocumentName,
		DocumentType: m.DocumentType,
		StoragePath:  m.StoragePath,
		FileSize:     m.FileSize,
		FileType:     m.FileType,
		UploadedAt:   m.UploadedAt,
	}
}
