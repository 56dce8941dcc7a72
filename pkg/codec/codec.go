// Package codec reads and writes configuration documents as value.Map, in
// YAML or JSON. Integers stay integers in both formats.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/morph/pkg/value"
)

// Format identifies a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	// ErrUnknownFormat is returned for format names other than yaml or json.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrNotMapping is returned when a document's top level is not a mapping.
	ErrNotMapping = errors.New("document is not a mapping")

	// ErrMalformed wraps syntax errors from the underlying parser.
	ErrMalformed = errors.New("malformed document")
)

// ParseFormat resolves a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath picks a format from the file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses data into a Map. An empty document yields an empty Map.
func Decode(data []byte, format Format) (value.Map, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return value.Map{}, nil
	}

	var raw any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: json: %w", ErrMalformed, err)
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, fmt.Errorf("%w: json: trailing data after document", ErrMalformed)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: yaml: %w", ErrMalformed, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if raw == nil {
		return value.Map{}, nil
	}

	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, raw)
	}
	return value.MapFromNative(doc), nil
}

// Encode renders m in the given format. JSON output is indented.
func Encode(m value.Map, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		if err := m.CheckFinite(); err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		data, err := json.MarshalIndent(m.Native(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m.Native()); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// LoadFile reads and decodes a document, choosing the format by extension.
func LoadFile(path string) (value.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return doc, nil
}
