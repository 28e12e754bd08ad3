package entities

import (
	"time"

	"github.com/google/uuid"

	domainerrors "cardreg.backend/internal/domain/errors"
)

// WorkflowStage tags the workflow state union
type WorkflowStage string

const (
	StageEmpty              WorkflowStage = "EMPTY"
	StageHasUser            WorkflowStage = "HAS_USER"
	StageHasUserAndDocument WorkflowStage = "HAS_USER_AND_DOCUMENT"
)

// UserDraft is the registration-stage output held in session until the
// workflow completes. It carries the password only as a one-way hash.
type UserDraft struct {
	UserID       uuid.UUID `json:"userId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
	Gender       string    `json:"gender"`
	Country      string    `json:"country"`
}

// Validate re-checks the draft's field constraints. The confirmation stage
// runs this against the reconstituted session payload as a defense against
// tampered or stale state.
func (d *UserDraft) Validate(now time.Time) domainerrors.ValidationErrors {
	var v domainerrors.ValidationErrors

	if d.UserID == uuid.Nil {
		v = append(v, domainerrors.FieldViolation{Field: "userId", Message: "User identifier is missing"})
	}
	v = appendNameViolations(v, "firstName", "First name", d.FirstName)
	v = appendNameViolations(v, "lastName", "Last name", d.LastName)
	v = appendEmailViolations(v, d.Email)
	if d.PasswordHash == "" {
		v = append(v, domainerrors.FieldViolation{Field: "password", Message: "Password hash is missing"})
	}
	if d.PhoneNumber != "" && len(d.PhoneNumber) > MaxPhoneLen {
		v = append(v, domainerrors.FieldViolation{Field: "phoneNumber", Message: "Phone number cannot exceed 20 characters"})
	}
	if d.DateOfBirth.IsZero() {
		v = append(v, domainerrors.FieldViolation{Field: "dateOfBirth", Message: "Date of birth is required"})
	} else if !OldEnough(d.DateOfBirth, now) {
		v = append(v, domainerrors.FieldViolation{Field: "dateOfBirth", Message: "You must be at least 18 years old"})
	}
	if d.Gender == "" || len(d.Gender) > MaxGenderLen {
		v = append(v, domainerrors.FieldViolation{Field: "gender", Message: "Gender is required"})
	}
	if d.Country == "" || len(d.Country) > MaxCountryLen {
		v = append(v, domainerrors.FieldViolation{Field: "country", Message: "Country is required"})
	}

	return v
}

// DocumentDraft is the document-stage output held in session until the
// workflow completes. The binary itself lives in the content store; the
// draft carries metadata only.
type DocumentDraft struct {
	DocumentType string `json:"documentType"`
	DocumentName string `json:"documentName"`
	FileType     string `json:"fileType"`
	FileSize     int64  `json:"fileSizeBytes"`
}

// Validate checks the draft deserialized from session against its expected shape.
func (d *DocumentDraft) Validate() domainerrors.ValidationErrors {
	var v domainerrors.ValidationErrors

	if d.DocumentType == "" || len(d.DocumentType) > MaxDocumentTypeLen {
		v = append(v, domainerrors.FieldViolation{Field: "documentType", Message: "Document type is required"})
	}
	if d.DocumentName == "" || len(d.DocumentName) > MaxDocumentNameLen {
		v = append(v, domainerrors.FieldViolation{Field: "documentName", Message: "Document name is required"})
	}
	if d.FileType == "" || len(d.FileType) > MaxFileTypeLen {
		v = append(v, domainerrors.FieldViolation{Field: "fileType", Message: "File type is required"})
	}
	if d.FileSize < 0 {
		v = append(v, domainerrors.FieldViolation{Field: "fileSize", Message: "File size must be positive"})
	}

	return v
}

// WorkflowState is the per-session wizard state: a tagged union persisted by
// the session store as one opaque blob. Handlers match on Stage instead of
// probing individual keys.
type WorkflowState struct {
	Stage         WorkflowStage  `json:"stage"`
	UserDraft     *UserDraft     `json:"userDraft,omitempty"`
	DocumentDraft *DocumentDraft `json:"documentDraft,omitempty"`
}

// EmptyWorkflowState returns the initial state.
func EmptyWorkflowState() *WorkflowState {
	return &WorkflowState{Stage: StageEmpty}
}

// WithUser returns the HAS_USER state holding the registration draft.
func (s *WorkflowState) WithUser(draft *UserDraft) *WorkflowState {
	return &WorkflowState{Stage: StageHasUser, UserDraft: draft}
}

// WithDocument advances HAS_USER to HAS_USER_AND_DOCUMENT. The transition
// consumes the stage-one variant: a state that already carries a document
// cannot take it again.
func (s *WorkflowState) WithDocument(draft *DocumentDraft) (*WorkflowState, error) {
	if s.Stage != StageHasUser || s.UserDraft == nil {
		return nil, domainerrors.ErrStateCorrupt
	}
	return &WorkflowState{
		Stage:         StageHasUserAndDocument,
		UserDraft:     s.UserDraft,
		DocumentDraft: draft,
	}, nil
}

// HasUser reports whether a registration draft is present.
func (s *WorkflowState) HasUser() bool {
	return s != nil && s.UserDraft != nil &&
		(s.Stage == StageHasUser || s.Stage == StageHasUserAndDocument)
}

// ReadyToConfirm reports whether both drafts are present.
func (s *WorkflowState) ReadyToConfirm() bool {
	return s != nil && s.Stage == StageHasUserAndDocument &&
		s.UserDraft != nil && s.DocumentDraft != nil
}

// CheckShape verifies the tag matches the populated fields. A mismatch means
// the session payload was tampered with or truncated.
func (s *WorkflowState) CheckShape() error {
	if s == nil {
		return domainerrors.ErrStateCorrupt
	}
	switch s.Stage {
	case StageEmpty:
		if s.UserDraft != nil || s.DocumentDraft != nil {
			return domainerrors.ErrStateCorrupt
		}
	case StageHasUser:
		if s.UserDraft == nil || s.DocumentDraft != nil {
			return domainerrors.ErrStateCorrupt
		}
	case StageHasUserAndDocument:
		if s.UserDraft == nil || s.DocumentDraft == nil {
			return domainerrors.ErrStateCorrupt
		}
	default:
		return domainerrors.ErrStateCorrupt
	}
	return nil
}
