// Package config loads CLI settings from an optional YAML file and the
// environment.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/morph/pkg/codec"
)

// DefaultPath is the settings file looked up when none is given.
const DefaultPath = "morph.yaml"

// Settings holds the tunables shared by every command.
type Settings struct {
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// Format is the output encoding: yaml or json.
	Format string `yaml:"format" mapstructure:"format"`
	Listen string `yaml:"listen" mapstructure:"listen"`
	// Schema is an optional path to a type map every input must satisfy.
	Schema string `yaml:"schema" mapstructure:"schema"`
	// StoreDir keeps published results as JSON files when Redis is not set.
	StoreDir string         `yaml:"store_dir" mapstructure:"store_dir"`
	Redis    RedisSettings  `yaml:"redis" mapstructure:"redis"`
	Results  ResultSettings `yaml:"results" mapstructure:"results"`
}

// ResultSettings controls what published results look like at rest.
type ResultSettings struct {
	// Mask lists key patterns whose values are replaced before storing.
	Mask []string `yaml:"mask" mapstructure:"mask"`
	// EncryptionKey is a base64 AES-256 key. Empty disables encryption.
	EncryptionKey string `yaml:"encryption_key" mapstructure:"encryption_key"`
}

// Key decodes EncryptionKey. It returns nil when encryption is disabled.
func (r ResultSettings) Key() ([]byte, error) {
	if r.EncryptionKey == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(r.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("results.encryption_key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("results.encryption_key must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}

// RedisSettings configures the optional Redis result store.
type RedisSettings struct {
	Addr     string        `yaml:"addr" mapstructure:"addr"`
	Password string        `yaml:"password" mapstructure:"password"`
	DB       int           `yaml:"db" mapstructure:"db"`
	Prefix   string        `yaml:"prefix" mapstructure:"prefix"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		LogLevel: "info",
		Format:   string(codec.FormatYAML),
		Listen:   ":8080",
		Redis: RedisSettings{
			Prefix: "morph:result:",
		},
	}
}

// Load reads settings from path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, &s); err != nil {
			return Settings{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	applyEnv(&s)

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func decode(data []byte, s *Settings) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           s,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func applyEnv(s *Settings) {
	overrides := map[string]*string{
		"MORPH_LOG_LEVEL":      &s.LogLevel,
		"MORPH_FORMAT":         &s.Format,
		"MORPH_LISTEN":         &s.Listen,
		"MORPH_SCHEMA":         &s.Schema,
		"MORPH_STORE_DIR":      &s.StoreDir,
		"MORPH_REDIS_ADDR":     &s.Redis.Addr,
		"MORPH_ENCRYPTION_KEY": &s.Results.EncryptionKey,
	}
	for env, field := range overrides {
		if v, ok := os.LookupEnv(env); ok {
			*field = v
		}
	}
}

// OutputFormat resolves Format, accepting aliases such as "yml" or "JSON".
func (s Settings) OutputFormat() (codec.Format, error) {
	f, err := codec.ParseFormat(s.Format)
	if err != nil {
		return "", fmt.Errorf("format: %w", err)
	}
	return f, nil
}

// Validate checks settings that can't be caught by decoding.
func (s Settings) Validate() error {
	if _, err := s.OutputFormat(); err != nil {
		return err
	}
	if s.Redis.DB < 0 {
		return fmt.Errorf("redis.db must not be negative")
	}
	if s.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must not be negative")
	}
	if _, err := s.Results.Key(); err != nil {
		return err
	}
	for _, p := range s.Results.Mask {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("results.mask: %w", err)
		}
	}
	return nil
}
