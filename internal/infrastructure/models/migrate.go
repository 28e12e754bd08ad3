package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cardreg.backend/internal/domain/entities"
)

// Migrate creates or updates the schema for all persistent models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Document{},
		&CreditCard{},
		&FormControl{},
	)
}

type seedOption struct {
	group string
	value string
	order int
}

var defaultFormControls = []seedOption{
	{entities.ControlGroupDocumentTypes, "Passport", 1},
	{entities.ControlGroupDocumentTypes, "Driver's License", 2},
	{entities.ControlGroupDocumentTypes, "National ID", 3},
	{entities.ControlGroupGenders, "Female", 1},
	{entities.ControlGroupGenders, "Male", 2},
	{entities.ControlGroupGenders, "Other", 3},
	{entities.ControlGroupCountries, "UK", 1},
	{entities.ControlGroupCountries, "USA", 2},
	{entities.ControlGroupCountries, "Germany", 3},
	{entities.ControlGroupCountries, "France", 4},
	{entities.ControlGroupCountries, "Indonesia", 5},
	{entities.ControlGroupCountries, "India", 6},
}

// SeedFormControls inserts the default reference options. Groups that
// already contain rows are left untouched.
func SeedFormControls(db *gorm.DB) error {
	for _, opt := range defaultFormControls {
		var count int64
		if err := db.Model(&FormControl{}).
			Where("control_name = ? AND option_value = ?", opt.group, opt.value).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		row := &FormControl{
			ID:           uuid.New(),
			ControlType:  "select",
			ControlName:  opt.group,
			OptionValue:  opt.value,
			DisplayOrder: opt.order,
			IsActive:     true,
		}
		if err := db.Create(row).Error; err != nil {
			return err
		}
	}
	return nil
}
