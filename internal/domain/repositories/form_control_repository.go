package repositories

import (
	"context"

	"cardreg.backend/internal/domain/entities"
)

// FormControlRepository defines read access to form reference data.
// Listings return active options in ascending display order.
type FormControlRepository interface {
	ListByGroup(ctx context.Context, controlName string) ([]*entities.FormControl, error)
}
