package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GenerateStoredName returns a collision-resistant object name for an
// upload: a fresh UUID plus the normalized extension. The client filename
// never takes part in addressing.
func GenerateStoredName(ext string) string {
	return uuid.New().String() + NormalizeExtension(ext)
}

// NormalizeExtension lower-cases an extension and ensures a leading dot.
// Empty input stays empty.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// FileExtension extracts the lower-cased extension of a client filename.
func FileExtension(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}
