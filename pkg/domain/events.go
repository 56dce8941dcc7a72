package domain

import (
	"context"
	"time"

	"github.com/aretw0/morph/pkg/value"
)

// EventType defines the category of the event.
type EventType string

const (
	EventEntry EventType = "entry"
	EventPass  EventType = "pass"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	PassID    string    `json:"pass_id"`
}

// EntryEvent describes one transformed configuration entry.
type EntryEvent struct {
	EventBase
	Key    string      `json:"key"`
	Kind   value.Kind  `json:"kind"`
	Input  value.Value `json:"input"`
	Output value.Value `json:"output"`
}

// PassEvent describes a completed transformation pass.
type PassEvent struct {
	EventBase
	Entries  int           `json:"entries"`
	Duration time.Duration `json:"duration"`
}

// Hooks defines callbacks for engine observability.
type Hooks struct {
	OnEntry func(context.Context, *EntryEvent)
	OnPass  func(context.Context, *PassEvent)
}
