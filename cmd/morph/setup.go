package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/morph"
	"github.com/aretw0/morph/internal/config"
	"github.com/aretw0/morph/internal/logging"
	"github.com/aretw0/morph/pkg/adapters/file"
	"github.com/aretw0/morph/pkg/adapters/memory"
	"github.com/aretw0/morph/pkg/adapters/redis"
	"github.com/aretw0/morph/pkg/metrics"
	"github.com/aretw0/morph/pkg/persistence/middleware"
	"github.com/aretw0/morph/pkg/ports"
	"github.com/aretw0/morph/pkg/schema"
)

// app bundles what every command builds from settings and flags.
type app struct {
	settings config.Settings
	logger   *slog.Logger
	registry *prometheus.Registry
	engine   *morph.Engine
	close    func() error
}

// loadSettings reads the settings file and applies the persistent and
// command flags on top of it.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	settings, err := config.Load(path)
	if err != nil {
		return config.Settings{}, err
	}

	overrides := map[string]*string{
		"log-level":  &settings.LogLevel,
		"format":     &settings.Format,
		"schema":     &settings.Schema,
		"listen":     &settings.Listen,
		"redis-addr": &settings.Redis.Addr,
		"store-dir":  &settings.StoreDir,
	}
	for name, field := range overrides {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			*field = f.Value.String()
		}
	}

	return settings, settings.Validate()
}

func newApp(cmd *cobra.Command) (*app, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)

	registry := prometheus.NewRegistry()
	opts := []morph.Option{
		morph.WithLogger(logger),
		morph.WithMetrics(metrics.New(registry)),
	}

	if settings.Schema != "" {
		s, err := loadSchema(settings.Schema)
		if err != nil {
			return nil, err
		}
		opts = append(opts, morph.WithSchema(s))
	}

	store, closeStore := newStore(settings, logger)
	store, err = protectStore(store, settings.Results)
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	opts = append(opts, morph.WithStore(store))

	return &app{
		settings: settings,
		logger:   logger,
		registry: registry,
		engine:   morph.New(opts...),
		close:    closeStore,
	}, nil
}

// newStore picks Redis when an address is set, then a result directory, then
// process memory.
func newStore(settings config.Settings, logger *slog.Logger) (ports.ResultStore, func() error) {
	nop := func() error { return nil }

	switch {
	case settings.Redis.Addr != "":
		logger.Debug("using redis result store", "addr", settings.Redis.Addr, "db", settings.Redis.DB)
		store := redis.New(settings.Redis.Addr, settings.Redis.Password, settings.Redis.DB,
			redis.WithPrefix(settings.Redis.Prefix),
			redis.WithTTL(settings.Redis.TTL),
		)
		return store, store.Close
	case settings.StoreDir != "":
		logger.Debug("using file result store", "dir", settings.StoreDir)
		return file.New(settings.StoreDir), nop
	default:
		return memory.NewStore(), nop
	}
}

// protectStore masks configured keys and then encrypts, so the backend
// never sees either.
func protectStore(store ports.ResultStore, rs config.ResultSettings) (ports.ResultStore, error) {
	var mws []middleware.Middleware
	if len(rs.Mask) > 0 {
		mws = append(mws, middleware.NewPIIMiddleware(rs.Mask))
	}

	key, err := rs.Key()
	if err != nil {
		return nil, err
	}
	if key != nil {
		enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			return nil, err
		}
		mws = append(mws, enc)
	}

	return middleware.Chain(store, mws...), nil
}

// loadSchema reads a type map such as {"port": "int", "hosts": "[text]"}.
// YAML is a superset of JSON, so both file types parse here.
func loadSchema(path string) (schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	var s schema.Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", path, err)
	}
	return s, nil
}
