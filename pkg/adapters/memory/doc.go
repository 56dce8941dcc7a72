// Package memory provides an in-process ports.ResultStore, used by default by
// the CLI and in tests.
package memory
