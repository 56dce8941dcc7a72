package domain

import "errors"

// ErrResultNotFound is returned when a named transform result cannot be found in the store.
var ErrResultNotFound = errors.New("result not found")

// ErrNoStore is returned when a result operation is attempted on an engine without a store.
var ErrNoStore = errors.New("no result store configured")
