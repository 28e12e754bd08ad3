package entities

import (
	"time"

	"github.com/google/uuid"
)

// CreditCard represents a card on file for a registered user. Card capture
// is not part of the onboarding wizard; the record exists so documents and
// cards share the same user lifecycle (cascade on user removal).
type CreditCard struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	CardNumber string    `json:"-"`
	CardType   string    `json:"cardType"`
	ExpiryDate time.Time `json:"expiryDate"`
	CVV        string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}
