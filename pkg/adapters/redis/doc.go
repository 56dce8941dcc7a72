// Package redis provides a ports.ResultStore backed by Redis, for sharing
// transform results between CLI invocations and server replicas.
package redis
