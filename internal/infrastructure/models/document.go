package models

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null"`
	DocumentName string    `gorm:"type:varchar(255);not null"`
	DocumentType string    `gorm:"type:varchar(50);not null"`
	StoragePath  string    `gorm:"type:varchar(500);not null"`
	FileSize     int64     `gorm:"not null"`
	FileType     string    `gorm:"type:varchar(100);not null"`
	UploadedAt   time.Time `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
