package domain

import (
	"github.com/aretw0/morph/pkg/value"
)

// ResultDiff holds the entries that differ between two results. Removed keys
// are present with an opaque nil value, which encodes as null, so clients can
// merge a diff into their copy of the previous result.
type ResultDiff struct {
	Name    string    `json:"name,omitempty"`
	Changes value.Map `json:"changes,omitempty"`
}

// Diff calculates the difference between oldResult and newResult.
// A nil oldResult yields every entry of newResult (initial load). It returns
// nil when nothing changed.
func Diff(name string, oldResult, newResult value.Map) *ResultDiff {
	changes := make(value.Map)

	// Added or modified
	for k, newVal := range newResult {
		oldVal, exists := oldResult[k]
		if !exists || !value.Equal(oldVal, newVal) {
			changes[k] = newVal
		}
	}

	// Deleted
	for k := range oldResult {
		if _, exists := newResult[k]; !exists {
			changes[k] = value.Other(nil)
		}
	}

	if len(changes) == 0 {
		return nil
	}
	return &ResultDiff{Name: name, Changes: changes}
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *ResultDiff) IsEmpty() bool {
	return d == nil || len(d.Changes) == 0
}
