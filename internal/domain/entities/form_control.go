package entities

import "github.com/google/uuid"

// Form control groups used by the registration wizard.
const (
	ControlGroupCountries     = "CountryList"
	ControlGroupGenders       = "GenderOptions"
	ControlGroupDocumentTypes = "DocumentTypes"
)

// FormControl is a selectable option rendered on a wizard form. Options are
// reference data: read-only from the workflow's perspective.
type FormControl struct {
	ID           uuid.UUID `json:"id"`
	ControlType  string    `json:"controlType"`
	ControlName  string    `json:"controlName"`
	OptionValue  string    `json:"optionValue"`
	DisplayText  string    `json:"displayText,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
}

// OptionValues projects controls to their selectable values, preserving order.
func OptionValues(controls []*FormControl) []string {
	values := make([]string, 0, len(controls))
	for _, c := range controls {
		values = append(values, c.OptionValue)
	}
	return values
}
