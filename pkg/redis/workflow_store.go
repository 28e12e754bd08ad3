package redis

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"cardreg.backend/internal/domain/entities"
	domainerrors "cardreg.backend/internal/domain/errors"
	"cardreg.backend/pkg/logger"
)

// WorkflowStore persists encrypted registration workflow state in Redis,
// keyed by the visitor's session identifier.
type WorkflowStore struct {
	encryptionKey []byte
	ttl           time.Duration
}

var (
	setWorkflowValue    = Set
	getWorkflowValue    = Get
	delWorkflowValue    = Del
	expireWorkflowValue = Expire
)

// NewWorkflowStore creates a new workflow state store
func NewWorkflowStore(encryptionKeyHex string, ttl time.Duration) (*WorkflowStore, error) {
	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		return nil, errors.New("invalid encryption key hex")
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex chars)")
	}
	return &WorkflowStore{encryptionKey: key, ttl: ttl}, nil
}

// Save stores the encrypted workflow state under the session key
func (s *WorkflowStore) Save(ctx context.Context, sessionID string, state *entities.WorkflowState) error {
	jsonData, err := json.Marshal(state)
	if err != nil {
		return err
	}

	encryptedData, err := s.encrypt(jsonData)
	if err != nil {
		return err
	}

	return setWorkflowValue(ctx, workflowKey(sessionID), encryptedData, s.ttl)
}

// Load retrieves and decrypts the workflow state for a session. A missing
// key maps to ErrSessionExpired; an undecryptable or malformed record maps
// to ErrStateCorrupt.
func (s *WorkflowStore) Load(ctx context.Context, sessionID string) (*entities.WorkflowState, error) {
	encryptedDataStr, err := getWorkflowValue(ctx, workflowKey(sessionID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domainerrors.ErrSessionExpired
		}
		return nil, err
	}

	decryptedData, err := s.decrypt(encryptedDataStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrStateCorrupt, err)
	}

	var state entities.WorkflowState
	if err := json.Unmarshal(decryptedData, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrStateCorrupt, err)
	}
	if err := state.CheckShape(); err != nil {
		return nil, err
	}

	// Sliding expiry: each load re-arms the TTL so an active wizard session
	// does not expire between stages. If the refresh fails the old deadline
	// still applies.
	if err := expireWorkflowValue(ctx, workflowKey(sessionID), s.ttl); err != nil {
		logger.Warn(ctx, "failed to refresh workflow state TTL", zap.Error(err))
	}

	return &state, nil
}

// Clear removes the workflow state for a session
func (s *WorkflowStore) Clear(ctx context.Context, sessionID string) error {
	return delWorkflowValue(ctx, workflowKey(sessionID))
}

func workflowKey(sessionID string) string {
	return "workflow:" + sessionID
}

func (s *WorkflowStore) encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return hex.EncodeToString(ciphertext), nil
}

func (s *WorkflowStore) decrypt(ciphertextHex string) ([]byte, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
