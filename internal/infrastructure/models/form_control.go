package models

import (
	"time"

	"github.com/google/uuid"
)

type FormControl struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ControlType  string    `gorm:"type:varchar(20);not null"`
	ControlName  string    `gorm:"type:varchar(50);index;not null"`
	OptionValue  string    `gorm:"type:varchar(100);not null"`
	DisplayText  *string   `gorm:"type:varchar(200)"`
	DisplayOrder int       `gorm:"default:0"`
	IsActive     bool      `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
