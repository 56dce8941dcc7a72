// Package domain holds the shared vocabulary of the morph engine: lifecycle
// events emitted while transforming a configuration, result diffs, and the
// sentinel errors returned by result operations.
package domain
