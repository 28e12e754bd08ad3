package entities

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	domainerrors "cardreg.backend/internal/domain/errors"
)

// Field length caps and age rule for registration data.
const (
	MaxNameLen     = 50
	MaxEmailLen    = 100
	MaxPhoneLen    = 20
	MaxGenderLen   = 10
	MaxCountryLen  = 50
	MinPasswordLen = 8
	MinimumAge     = 18
)

// DateOfBirthLayout is the wire format for the dateOfBirth form field.
const DateOfBirthLayout = "2006-01-02"

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{5,}$`)

// User represents a registered user
type User struct {
	ID           uuid.UUID   `json:"id"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	PhoneNumber  null.String `json:"phoneNumber,omitempty"`
	DateOfBirth  time.Time   `json:"dateOfBirth"`
	Gender       string      `json:"gender"`
	Country      string      `json:"country"`
	CreatedAt    time.Time   `json:"createdAt"`
	RegisteredAt null.Time   `json:"registeredAt,omitempty"`
}

// FullName returns the display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// RegistrationInput carries the registration form fields
type RegistrationInput struct {
	FirstName   string `form:"firstName" json:"firstName"`
	LastName    string `form:"lastName" json:"lastName"`
	Email       string `form:"email" json:"email"`
	Password    string `form:"password" json:"password"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber"`
	DateOfBirth string `form:"dateOfBirth" json:"dateOfBirth"`
	Gender      string `form:"gender" json:"gender"`
	Country     string `form:"country" json:"country"`
}

// Validate checks the registration fields and returns violations in field
// order. An empty result means the input is acceptable.
func (in *RegistrationInput) Validate(now time.Time) domainerrors.ValidationErrors {
	var v domainerrors.ValidationErrors

	v = appendNameViolations(v, "firstName", "First name", in.FirstName)
	v = appendNameViolations(v, "lastName", "Last name", in.LastName)
	v = appendEmailViolations(v, in.Email)
	v = appendPasswordViolations(v, in.Password)

	if in.PhoneNumber != "" {
		if len(in.PhoneNumber) > MaxPhoneLen {
			v = append(v, domainerrors.FieldViolation{Field: "phoneNumber", Message: "Phone number cannot exceed 20 characters"})
		} else if !phonePattern.MatchString(in.PhoneNumber) {
			v = append(v, domainerrors.FieldViolation{Field: "phoneNumber", Message: "Invalid phone number format"})
		}
	}

	if in.DateOfBirth == "" {
		v = append(v, domainerrors.FieldViolation{Field: "dateOfBirth", Message: "Date of birth is required"})
	} else if dob, err := time.Parse(DateOfBirthLayout, in.DateOfBirth); err != nil {
		v = append(v, domainerrors.FieldViolation{Field: "dateOfBirth", Message: "Date of birth must be in YYYY-MM-DD format"})
	} else if !OldEnough(dob, now) {
		v = append(v, domainerrors.FieldViolation{Field: "dateOfBirth", Message: "You must be at least 18 years old"})
	}

	if in.Gender == "" {
		v = append(v, domainerrors.FieldViolation{Field: "gender", Message: "Gender is required"})
	} else if len(in.Gender) > MaxGenderLen {
		v = append(v, domainerrors.FieldViolation{Field: "gender", Message: "Gender cannot exceed 10 characters"})
	}

	if in.Country == "" {
		v = append(v, domainerrors.FieldViolation{Field: "country", Message: "Country is required"})
	} else if len(in.Country) > MaxCountryLen {
		v = append(v, domainerrors.FieldViolation{Field: "country", Message: "Country cannot exceed 50 characters"})
	}

	return v
}

// ParsedDateOfBirth returns the parsed dateOfBirth field. Call only after
// Validate has passed.
func (in *RegistrationInput) ParsedDateOfBirth() time.Time {
	dob, _ := time.Parse(DateOfBirthLayout, in.DateOfBirth)
	return dob
}

// OldEnough reports whether dob yields an age of at least MinimumAge at now.
func OldEnough(dob, now time.Time) bool {
	return !dob.AddDate(MinimumAge, 0, 0).After(now)
}

func appendNameViolations(v domainerrors.ValidationErrors, field, label, value string) domainerrors.ValidationErrors {
	if strings.TrimSpace(value) == "" {
		return append(v, domainerrors.FieldViolation{Field: field, Message: label + " is required"})
	}
	if len(value) > MaxNameLen {
		return append(v, domainerrors.FieldViolation{Field: field, Message: label + " cannot exceed 50 characters"})
	}
	return v
}

func appendEmailViolations(v domainerrors.ValidationErrors, email string) domainerrors.ValidationErrors {
	if email == "" {
		return append(v, domainerrors.FieldViolation{Field: "email", Message: "Email is required"})
	}
	if len(email) > MaxEmailLen {
		return append(v, domainerrors.FieldViolation{Field: "email", Message: "Email cannot exceed 100 characters"})
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return append(v, domainerrors.FieldViolation{Field: "email", Message: "Invalid email format"})
	}
	return v
}

func appendPasswordViolations(v domainerrors.ValidationErrors, password string) domainerrors.ValidationErrors {
	if password == "" {
		return append(v, domainerrors.FieldViolation{Field: "password", Message: "Password is required"})
	}
	if len(password) < MinPasswordLen {
		return append(v, domainerrors.FieldViolation{Field: "password", Message: "Password must be at least 8 characters"})
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return append(v, domainerrors.FieldViolation{Field: "password", Message: "Password must contain uppercase, lowercase and number"})
	}
	return v
}
