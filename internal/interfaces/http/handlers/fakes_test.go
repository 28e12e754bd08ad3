package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"cardreg.backend/internal/domain/entities"
	domainerrors "cardreg.backend/internal/domain/errors"
	"cardreg.backend/pkg/utils"
)

// In-memory collaborators backing full-stack handler tests.

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*entities.User
	markErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entities.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return domainerrors.ErrDuplicateEmail
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now().UTC()
	clone := *user
	r.byEmail[user.Email] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) MarkRegistered(_ context.Context, id uuid.UUID, at time.Time) error {
	if r.markErr != nil {
		return r.markErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			u.RegisteredAt.SetValid(at)
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*entities.User, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		clone := *u
		users = append(users, &clone)
	}
	return users, nil
}

func (r *fakeUserRepo) delete(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byEmail, email)
}

type fakeDocumentRepo struct {
	mu   sync.Mutex
	docs []*entities.Document
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *entities.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	clone := *doc
	r.docs = append(r.docs, &clone)
	return nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if d.ID == id {
			clone := *d
			return &clone, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r *fakeDocumentRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Document
	for _, d := range r.docs {
		if d.UserID == userID {
			clone := *d
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeOptionRepo struct{}

func (fakeOptionRepo) ListByGroup(_ context.Context, controlName string) ([]*entities.FormControl, error) {
	groups := map[string][]string{
		entities.ControlGroupDocumentTypes: {"Passport", "Driver's License", "National ID"},
		entities.ControlGroupGenders:       {"Female", "Male", "Other"},
		entities.ControlGroupCountries:     {"United Kingdom", "Indonesia", "Singapore"},
	}
	values, ok := groups[controlName]
	if !ok {
		return []*entities.FormControl{}, nil
	}
	controls := make([]*entities.FormControl, 0, len(values))
	for i, v := range values {
		controls = append(controls, &entities.FormControl{
			ID: uuid.New(), ControlName: controlName, OptionValue: v,
			DisplayOrder: i + 1, IsActive: true,
		})
	}
	return controls, nil
}

type fakeStateStore struct {
	mu     sync.Mutex
	states map[string]*entities.WorkflowState
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{states: make(map[string]*entities.WorkflowState)}
}

func (s *fakeStateStore) Save(_ context.Context, sessionID string, state *entities.WorkflowState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sessionID] = state
	return nil
}

func (s *fakeStateStore) Load(_ context.Context, sessionID string) (*entities.WorkflowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[sessionID]
	if !ok {
		return nil, domainerrors.ErrSessionExpired
	}
	return state, nil
}

func (s *fakeStateStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
	return nil
}

func (s *fakeStateStore) get(sessionID string) *entities.WorkflowState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[sessionID]
}

type fakeContentStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	saveErr error
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{objects: make(map[string][]byte)}
}

func (s *fakeContentStore) Save(_ context.Context, data []byte, ext string) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	path := "mem/" + utils.GenerateStoredName(ext)
	s.objects[path] = data
	return path, nil
}

func (s *fakeContentStore) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	return nil
}
