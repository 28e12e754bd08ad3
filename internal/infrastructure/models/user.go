package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FirstName    string     `gorm:"type:varchar(50);not null"`
	LastName     string     `gorm:"type:varchar(50);not null"`
	Email        string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	PhoneNumber  *string    `gorm:"type:varchar(20)"`
	DateOfBirth  time.Time  `gorm:"not null"`
	Gender       string     `gorm:"type:varchar(10);not null"`
	Country      string     `gorm:"type:varchar(50);not null"`
	RegisteredAt *time.Time `gorm:"type:timestamp"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Documents   []Document   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreditCards []CreditCard `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
