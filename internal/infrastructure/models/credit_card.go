package models

import (
	"time"

	"github.com/google/uuid"
)

type CreditCard struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null"`
	CardNumber string    `gorm:"type:varchar(19);not null"`
	CardType   string    `gorm:"type:varchar(20);not null"`
	ExpiryDate time.Time `gorm:"not null"`
	CVV        string    `gorm:"type:varchar(4);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
