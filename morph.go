package morph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/morph/pkg/codec"
	"github.com/aretw0/morph/pkg/domain"
	"github.com/aretw0/morph/pkg/metrics"
	"github.com/aretw0/morph/pkg/ports"
	"github.com/aretw0/morph/pkg/schema"
	"github.com/aretw0/morph/pkg/transform"
	"github.com/aretw0/morph/pkg/value"
)

// Version is the current release of morph.
const Version = "0.3.0"

// Engine is the high-level entry point for the morph library.
// It wraps the pure transform with validation, observability and storage.
type Engine struct {
	logger  *slog.Logger
	hooks   domain.Hooks
	metrics *metrics.Collector
	store   ports.ResultStore
	schema  schema.Schema
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMetrics records entry and pass metrics on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Engine) {
		e.metrics = c
	}
}

// WithStore enables Publish and Result using s.
func WithStore(s ports.ResultStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithSchema makes Transform reject configurations that don't conform to s.
func WithSchema(s schema.Schema) Option {
	return func(e *Engine) {
		e.schema = s
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return eng
}

// Transform validates cfg against the configured schema, if any, and returns
// the transformed configuration. The only error source is validation.
func (e *Engine) Transform(ctx context.Context, cfg value.Map) (value.Map, error) {
	if err := schema.Validate(e.schema, cfg); err != nil {
		e.logger.Warn("configuration rejected", "error", err, "entries", len(cfg))
		return nil, err
	}

	passID := uuid.NewString()
	logger := e.logger.With("pass_id", passID)
	start := time.Now()

	result := transform.Transform(cfg, transform.WithObserver(func(key string, in, out value.Value) {
		logger.Debug("entry transformed", "key", key, "kind", in.Kind().String())

		if e.metrics != nil {
			e.metrics.ObserveEntry(in.Kind())
		}
		if e.hooks.OnEntry != nil {
			e.hooks.OnEntry(ctx, &domain.EntryEvent{
				EventBase: domain.EventBase{
					Timestamp: time.Now(),
					Type:      domain.EventEntry,
					PassID:    passID,
				},
				Key:    key,
				Kind:   in.Kind(),
				Input:  in,
				Output: out,
			})
		}
	}))

	elapsed := time.Since(start)
	logger.Info("configuration transformed", "entries", len(result), "duration", elapsed)

	if e.metrics != nil {
		e.metrics.ObservePass(elapsed)
	}
	if e.hooks.OnPass != nil {
		e.hooks.OnPass(ctx, &domain.PassEvent{
			EventBase: domain.EventBase{
				Timestamp: time.Now(),
				Type:      domain.EventPass,
				PassID:    passID,
			},
			Entries:  len(result),
			Duration: elapsed,
		})
	}

	return result, nil
}

// TransformDocument decodes data in the given format and transforms it.
func (e *Engine) TransformDocument(ctx context.Context, data []byte, format codec.Format) (value.Map, error) {
	cfg, err := codec.Decode(data, format)
	if err != nil {
		return nil, err
	}
	return e.Transform(ctx, cfg)
}

// TransformFile reads a YAML or JSON file and transforms it.
func (e *Engine) TransformFile(ctx context.Context, path string) (value.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return e.TransformDocument(ctx, data, codec.FormatFromPath(path))
}

// Publish stores result under name.
func (e *Engine) Publish(ctx context.Context, name string, result value.Map) error {
	if e.store == nil {
		return domain.ErrNoStore
	}
	if name == "" {
		return fmt.Errorf("result name is required")
	}
	if err := e.store.Save(ctx, name, result); err != nil {
		return fmt.Errorf("failed to publish %q: %w", name, err)
	}
	e.logger.Debug("result published", "name", name, "entries", len(result))
	return nil
}

// Result loads a previously published result.
func (e *Engine) Result(ctx context.Context, name string) (value.Map, error) {
	if e.store == nil {
		return nil, domain.ErrNoStore
	}
	return e.store.Load(ctx, name)
}

// Results lists the names of published results.
func (e *Engine) Results(ctx context.Context) ([]string, error) {
	if e.store == nil {
		return nil, domain.ErrNoStore
	}
	return e.store.List(ctx)
}
