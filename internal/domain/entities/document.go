package entities

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	domainerrors "cardreg.backend/internal/domain/errors"
)

// Upload constraints for the document stage.
const (
	MaxDocumentSize    = 5 * 1024 * 1024 // 5 MiB
	MaxDocumentNameLen = 255
	MaxDocumentTypeLen = 50
	MaxFileTypeLen     = 100
)

// AllowedDocumentExtensions lists the accepted upload extensions,
// lower-cased with leading dot.
var AllowedDocumentExtensions = []string{".pdf", ".jpg", ".jpeg", ".png"}

// Document represents an uploaded identity document
type Document struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	DocumentName string    `json:"documentName"`
	DocumentType string    `json:"documentType"`
	StoragePath  string    `json:"storagePath"`
	FileSize     int64     `json:"fileSize"`
	FileType     string    `json:"fileType"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// DocumentUploadInput carries the document stage form fields. The file
// bytes travel separately as a multipart part.
type DocumentUploadInput struct {
	DocumentType string `form:"documentType" json:"documentType"`
	FileName     string `form:"-" json:"-"`
	FileSize     int64  `form:"-" json:"-"`
	ContentType  string `form:"-" json:"-"`
}

// Validate checks the upload metadata and returns violations in field order.
// Document-type membership in the active option set is checked by the caller
// against reference data.
func (in *DocumentUploadInput) Validate() domainerrors.ValidationErrors {
	var v domainerrors.ValidationErrors

	if in.DocumentType == "" {
		v = append(v, domainerrors.FieldViolation{Field: "documentType", Message: "Please select a document type"})
	} else if len(in.DocumentType) > MaxDocumentTypeLen {
		v = append(v, domainerrors.FieldViolation{Field: "documentType", Message: "Document type cannot exceed 50 characters"})
	}

	switch {
	case in.FileName == "" || in.FileSize == 0:
		v = append(v, domainerrors.FieldViolation{Field: "documentFile", Message: "The uploaded file is empty"})
	case in.FileSize > MaxDocumentSize:
		v = append(v, domainerrors.FieldViolation{Field: "documentFile", Message: "The file size exceeds the 5MB limit"})
	case !ExtensionAllowed(in.FileName):
		v = append(v, domainerrors.FieldViolation{Field: "documentFile", Message: "Only PDF, JPG, JPEG, and PNG files are allowed"})
	}

	return v
}

// ExtensionAllowed reports whether the client filename carries an accepted
// extension, case-insensitively.
func ExtensionAllowed(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range AllowedDocumentExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
