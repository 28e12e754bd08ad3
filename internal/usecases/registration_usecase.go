package usecases

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cardreg.backend/internal/domain/entities"
	domainerrors "cardreg.backend/internal/domain/errors"
	"cardreg.backend/internal/domain/repositories"
	"cardreg.backend/internal/infrastructure/content"
	"cardreg.backend/internal/metrics"
	"cardreg.backend/pkg/crypto"
	"cardreg.backend/pkg/logger"
	"cardreg.backend/pkg/utils"
)

// ErrDocumentAlreadyAttached signals a replayed document submission against a
// workflow that already carries one. The handler forwards to confirmation.
var ErrDocumentAlreadyAttached = errors.New("document already attached to workflow")

// WorkflowStateStore persists per-session wizard state.
type WorkflowStateStore interface {
	Save(ctx context.Context, sessionID string, state *entities.WorkflowState) error
	Load(ctx context.Context, sessionID string) (*entities.WorkflowState, error)
	Clear(ctx context.Context, sessionID string) error
}

var hashPassword = crypto.HashPassword

// RegistrationUsecase drives the three-stage onboarding workflow
type RegistrationUsecase struct {
	userRepo     repositories.UserRepository
	documentRepo repositories.DocumentRepository
	optionRepo   repositories.FormControlRepository
	states       WorkflowStateStore
	contentStore content.Store
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewRegistrationUsecase creates a new registration usecase
func NewRegistrationUsecase(
	userRepo repositories.UserRepository,
	documentRepo repositories.DocumentRepository,
	optionRepo repositories.FormControlRepository,
	states WorkflowStateStore,
	contentStore content.Store,
	m *metrics.Metrics,
) *RegistrationUsecase {
	return &RegistrationUsecase{
		userRepo:     userRepo,
		documentRepo: documentRepo,
		optionRepo:   optionRepo,
		states:       states,
		contentStore: contentStore,
		metrics:      m,
		now:          time.Now,
	}
}

// RegistrationOptions is the stage-one form payload.
type RegistrationOptions struct {
	Countries []string `json:"countries"`
	Genders   []string `json:"genders"`
}

// DocumentOptions is the stage-two form payload.
type DocumentOptions struct {
	DocumentTypes []string `json:"documentTypes"`
}

// ConfirmationSummary echoes both drafts back for review. The password never
// appears here, hashed or otherwise.
type ConfirmationSummary struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	DateOfBirth  string `json:"dateOfBirth"`
	Gender       string `json:"gender"`
	Country      string `json:"country"`
	DocumentType string `json:"documentType"`
	DocumentName string `json:"documentName"`
	FileType     string `json:"fileType"`
	FileSize     int64  `json:"fileSizeBytes"`
}

// GetRegistrationOptions returns the selectable values for the stage-one form
func (u *RegistrationUsecase) GetRegistrationOptions(ctx context.Context) (*RegistrationOptions, error) {
	countries, err := u.optionRepo.ListByGroup(ctx, entities.ControlGroupCountries)
	if err != nil {
		return nil, err
	}
	genders, err := u.optionRepo.ListByGroup(ctx, entities.ControlGroupGenders)
	if err != nil {
		return nil, err
	}
	return &RegistrationOptions{
		Countries: entities.OptionValues(countries),
		Genders:   entities.OptionValues(genders),
	}, nil
}

// SubmitRegistration validates the stage-one form, inserts the user and
// parks the draft in the session store. Returns the new user's ID.
func (u *RegistrationUsecase) SubmitRegistration(ctx context.Context, sessionID string, input *entities.RegistrationInput) (uuid.UUID, error) {
	if violations := input.Validate(u.now()); len(violations) > 0 {
		u.metrics.IncrementStage("register", "validation_failed")
		return uuid.Nil, domainerrors.ValidationFailed(violations)
	}

	// Exact-match duplicate gate ahead of the insert. The unique index
	// still backstops concurrent submissions of the same email.
	existing, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return uuid.Nil, domainerrors.InternalError(err)
	}
	if existing != nil {
		u.metrics.IncrementStage("register", "duplicate_email")
		return uuid.Nil, duplicateEmailError()
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return uuid.Nil, domainerrors.InternalError(err)
	}

	user := &entities.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		DateOfBirth:  input.ParsedDateOfBirth(),
		Gender:       input.Gender,
		Country:      input.Country,
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber.SetValid(input.PhoneNumber)
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateEmail) {
			u.metrics.IncrementStage("register", "duplicate_email")
			return uuid.Nil, duplicateEmailError()
		}
		u.metrics.IncrementStage("register", "storage_failed")
		return uuid.Nil, domainerrors.InternalError(err)
	}

	draft := &entities.UserDraft{
		UserID:       user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		PhoneNumber:  input.PhoneNumber,
		DateOfBirth:  user.DateOfBirth,
		Gender:       user.Gender,
		Country:      user.Country,
	}
	state := entities.EmptyWorkflowState().WithUser(draft)
	if err := u.states.Save(ctx, sessionID, state); err != nil {
		logger.Error(ctx, "failed to persist workflow state after insert",
			zap.String("userId", user.ID.String()), zap.Error(err))
		return uuid.Nil, domainerrors.InternalError(err)
	}

	u.metrics.IncrementStage("register", "success")
	logger.Info(ctx, "registration draft created",
		zap.String("userId", user.ID.String()))
	return user.ID, nil
}

// GetDocumentOptions returns the stage-two form payload. The workflow must
// already hold a registration draft.
func (u *RegistrationUsecase) GetDocumentOptions(ctx context.Context, sessionID string) (*DocumentOptions, error) {
	state, err := u.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.HasUser() {
		return nil, domainerrors.ErrSessionExpired
	}

	types, err := u.optionRepo.ListByGroup(ctx, entities.ControlGroupDocumentTypes)
	if err != nil {
		return nil, err
	}
	return &DocumentOptions{DocumentTypes: entities.OptionValues(types)}, nil
}

// SubmitDocument validates the stage-two upload, stores the binary, records
// the document and advances the workflow state.
func (u *RegistrationUsecase) SubmitDocument(ctx context.Context, sessionID string, input *entities.DocumentUploadInput, data []byte) error {
	state, err := u.loadState(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrSessionExpired) {
			u.metrics.IncrementFailure("session-expired")
		}
		return err
	}
	if state.Stage == entities.StageHasUserAndDocument {
		return ErrDocumentAlreadyAttached
	}
	if !state.HasUser() {
		u.metrics.IncrementFailure("session-expired")
		return domainerrors.ErrSessionExpired
	}

	violations := input.Validate()
	if len(violations) == 0 {
		ok, err := u.documentTypeActive(ctx, input.DocumentType)
		if err != nil {
			return domainerrors.InternalError(err)
		}
		if !ok {
			violations = append(violations, domainerrors.FieldViolation{
				Field: "documentType", Message: "Please select a document type",
			})
		}
	}
	if len(violations) > 0 {
		u.metrics.IncrementStage("document", "validation_failed")
		return domainerrors.ValidationFailed(violations)
	}

	storagePath, err := u.contentStore.Save(ctx, data, utils.FileExtension(input.FileName))
	if err != nil {
		u.metrics.IncrementStage("document", "storage_failed")
		return domainerrors.NewAppError(http.StatusInternalServerError,
			domainerrors.CodeStorageFailure, "failed to store document", err)
	}

	doc := &entities.Document{
		UserID:       state.UserDraft.UserID,
		DocumentName: input.FileName,
		DocumentType: input.DocumentType,
		StoragePath:  storagePath,
		FileSize:     input.FileSize,
		FileType:     input.ContentType,
		UploadedAt:   u.now(),
	}
	if err := u.documentRepo.Create(ctx, doc); err != nil {
		if removeErr := u.contentStore.Remove(ctx, storagePath); removeErr != nil {
			logger.Warn(ctx, "failed to remove orphaned document object",
				zap.String("path", storagePath), zap.Error(removeErr))
		}
		u.metrics.IncrementStage("document", "storage_failed")
		return domainerrors.InternalError(err)
	}
	u.metrics.IncrementDocumentStored()

	next, err := state.WithDocument(&entities.DocumentDraft{
		DocumentType: input.DocumentType,
		DocumentName: input.FileName,
		FileType:     input.ContentType,
		FileSize:     input.FileSize,
	})
	if err != nil {
		return domainerrors.InternalError(err)
	}
	if err := u.states.Save(ctx, sessionID, next); err != nil {
		return domainerrors.InternalError(err)
	}

	u.metrics.IncrementStage("document", "success")
	logger.Info(ctx, "document attached to workflow",
		zap.String("userId", doc.UserID.String()),
		zap.String("documentId", doc.ID.String()))
	return nil
}

// GetConfirmation re-validates the complete workflow state and returns the
// review summary shown before finalizing.
func (u *RegistrationUsecase) GetConfirmation(ctx context.Context, sessionID string) (*ConfirmationSummary, error) {
	state, err := u.confirmableState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	user := state.UserDraft
	doc := state.DocumentDraft
	return &ConfirmationSummary{
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		PhoneNumber:  user.PhoneNumber,
		DateOfBirth:  user.DateOfBirth.Format(entities.DateOfBirthLayout),
		Gender:       user.Gender,
		Country:      user.Country,
		DocumentType: doc.DocumentType,
		DocumentName: doc.DocumentName,
		FileType:     doc.FileType,
		FileSize:     doc.FileSize,
	}, nil
}

// ConfirmRegistration runs the confirmation gate once more, stamps the
// finalize timestamp on the canonical record and clears the workflow state.
func (u *RegistrationUsecase) ConfirmRegistration(ctx context.Context, sessionID string) error {
	state, err := u.confirmableState(ctx, sessionID)
	if err != nil {
		return err
	}

	userID := state.UserDraft.UserID
	if err := u.userRepo.MarkRegistered(ctx, userID, u.now()); err != nil {
		u.metrics.IncrementStage("confirm", "storage_failed")
		logger.Error(ctx, "failed to finalize registration",
			zap.String("userId", userID.String()), zap.Error(err))
		return domainerrors.InternalError(err)
	}

	if err := u.states.Clear(ctx, sessionID); err != nil {
		// The record is final; a lingering session blob only risks a
		// harmless replay that the duplicate gate rejects.
		logger.Warn(ctx, "failed to clear workflow state after finalize",
			zap.String("userId", userID.String()), zap.Error(err))
	}

	u.metrics.IncrementStage("confirm", "success")
	u.metrics.IncrementCompleted()
	logger.Info(ctx, "registration finalized", zap.String("userId", userID.String()))
	return nil
}

// ListOptions returns the active options for one control group.
func (u *RegistrationUsecase) ListOptions(ctx context.Context, group string) ([]*entities.FormControl, error) {
	controls, err := u.optionRepo.ListByGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	if len(controls) == 0 {
		return nil, domainerrors.NotFound("unknown option group")
	}
	return controls, nil
}

// loadState maps a corrupt blob to the expired-session outcome so callers
// restart the wizard rather than surface an internal error.
func (u *RegistrationUsecase) loadState(ctx context.Context, sessionID string) (*entities.WorkflowState, error) {
	state, err := u.states.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrStateCorrupt) {
			logger.Warn(ctx, "discarding corrupt workflow state", zap.Error(err))
			return nil, domainerrors.ErrSessionExpired
		}
		if errors.Is(err, domainerrors.ErrSessionExpired) {
			return nil, err
		}
		return nil, domainerrors.InternalError(err)
	}
	return state, nil
}

// confirmableState is the shared gate for both confirmation operations:
// complete state, re-validated drafts, and a canonical record that still
// matches the reserved draft identity.
func (u *RegistrationUsecase) confirmableState(ctx context.Context, sessionID string) (*entities.WorkflowState, error) {
	state, err := u.loadState(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrSessionExpired) {
			u.metrics.IncrementFailure("session-expired")
		}
		return nil, err
	}
	if !state.ReadyToConfirm() {
		u.metrics.IncrementFailure("session-expired")
		return nil, domainerrors.ErrSessionExpired
	}

	if v := state.UserDraft.Validate(u.now()); len(v) > 0 {
		u.metrics.IncrementFailure("data-validation-failed")
		return nil, domainerrors.ErrDataValidation
	}
	if v := state.DocumentDraft.Validate(); len(v) > 0 {
		u.metrics.IncrementFailure("data-validation-failed")
		return nil, domainerrors.ErrDataValidation
	}

	record, err := u.userRepo.GetByEmail(ctx, state.UserDraft.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// The stage-one insert is gone; the draft is stale.
			u.metrics.IncrementFailure("data-validation-failed")
			return nil, domainerrors.ErrDataValidation
		}
		return nil, domainerrors.InternalError(err)
	}
	if record.ID != state.UserDraft.UserID {
		u.metrics.IncrementFailure("data-validation-failed")
		return nil, domainerrors.ErrDataValidation
	}

	return state, nil
}

func (u *RegistrationUsecase) documentTypeActive(ctx context.Context, documentType string) (bool, error) {
	types, err := u.optionRepo.ListByGroup(ctx, entities.ControlGroupDocumentTypes)
	if err != nil {
		return false, err
	}
	for _, t := range types {
		if t.OptionValue == documentType {
			return true, nil
		}
	}
	return false, nil
}

func duplicateEmailError() *domainerrors.AppError {
	return &domainerrors.AppError{
		Status:  http.StatusBadRequest,
		Code:    domainerrors.CodeDuplicateEmail,
		Message: "email already registered",
		Violations: domainerrors.ValidationErrors{
			{Field: "email", Message: "This email address is already registered"},
		},
		Err: domainerrors.ErrDuplicateEmail,
	}
}
