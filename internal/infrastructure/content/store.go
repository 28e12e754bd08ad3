// Package content stores uploaded document binaries. Objects are addressed
// by generated, collision-resistant names; client-supplied filenames are
// never used for addressing.
package content

import "context"

// Store persists uploaded binaries and returns an opaque handle for each.
type Store interface {
	// Save writes data under a generated name carrying ext (".pdf", ".png",
	// ...) and returns the handle to record as the document's storage path.
	Save(ctx context.Context, data []byte, ext string) (string, error)
	// Remove deletes a previously saved object. Used to back out a stored
	// binary when the metadata insert fails.
	Remove(ctx context.Context, path string) error
}
