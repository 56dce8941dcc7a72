package ports

import (
	"context"

	"github.com/aretw0/morph/pkg/value"
)

// ResultStore persists named transform results.
type ResultStore interface {
	// Save stores result under name, replacing any previous result.
	Save(ctx context.Context, name string, result value.Map) error

	// Load retrieves a result.
	// Returns domain.ErrResultNotFound if name does not exist.
	Load(ctx context.Context, name string) (value.Map, error)

	// Delete removes a result. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of stored results.
	List(ctx context.Context) ([]string, error)
}
