package repositories

import (
	"context"

	"gorm.io/gorm"

	"cardreg.backend/internal/domain/entities"
	"cardreg.backend/internal/infrastructure/models"
)

// FormControlRepository implements form reference data access
type FormControlRepository struct {
	db *gorm.DB
}

// NewFormControlRepository creates a new form control repository
func NewFormControlRepository(db *gorm.DB) *FormControlRepository {
	return &FormControlRepository{db: db}
}

// ListByGroup returns the active options of a control group ordered by
// ascending display order.
func (r *FormControlRepository) ListByGroup(ctx context.Context, controlName string) ([]*entities.FormControl, error) {
	var rows []models.FormControl
	if err := r.db.WithContext(ctx).
		Where("control_name = ? AND is_active = ?", controlName, true).
		Order("display_order ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	controls := make([]*entities.FormControl, 0, len(rows))
	for i := range rows {
		controls = append(controls, toFormControlEntity(&rows[i]))
	}
	return controls, nil
}

func toFormControlEntity(m *models.FormControl) *entities.FormControl {
	displayText := ""
	if m.DisplayText != nil {
		displayText = *m.DisplayText
	}
	return &entities.FormControl{
		ID:           m.ID,
		ControlType:  m.ControlType,
		ControlName:  m.ControlName,
		OptionValue:  m.OptionValue,
		DisplayText:  displayText,
		DisplayOrder: m.DisplayOrder,
		IsActive:     m.IsActive,
	}
}
