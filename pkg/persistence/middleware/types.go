// Package middleware wraps a ports.ResultStore with cross-cutting behavior
// such as masking or encryption of stored results.
package middleware

import "github.com/aretw0/morph/pkg/ports"

// Middleware allows wrapping a ResultStore to add behavior.
type Middleware func(ports.ResultStore) ports.ResultStore

// Chain applies mws to store so that the first middleware sees calls first.
func Chain(store ports.ResultStore, mws ...Middleware) ports.ResultStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
