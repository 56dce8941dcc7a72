package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/morph/pkg/ports"
	"github.com/aretw0/morph/pkg/value"
)

// Mask replaces the value of every masked key.
const Mask = "***"

type piiMiddleware struct {
	next     ports.ResultStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks values of keys matching
// the patterns, at any depth, before they reach the store. It panics on an
// invalid pattern.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.ResultStore) ports.ResultStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, name string, result value.Map) error {
	return m.next.Save(ctx, name, m.maskMap(result))
}

func (m *piiMiddleware) Load(ctx context.Context, name string) (value.Map, error) {
	return m.next.Load(ctx, name)
}

func (m *piiMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// maskMap returns a masked copy; the input is left untouched.
func (m *piiMiddleware) maskMap(in value.Map) value.Map {
	out := make(value.Map, len(in))
	for k, v := range in {
		if m.matches(k) {
			out[k] = value.Text(Mask)
			continue
		}
		out[k] = m.mask(v)
	}
	return out
}

func (m *piiMiddleware) mask(v value.Value) value.Value {
	switch v.Kind() {
	case value.KindMapping:
		fields, _ := v.AsMapping()
		return value.Mapping(m.maskMap(fields))
	case value.KindSequence:
		items, _ := v.AsSequence()
		masked := make([]value.Value, len(items))
		for i, item := range items {
			masked[i] = m.mask(item)
		}
		return value.Sequence(masked...)
	default:
		return v
	}
}

func (m *piiMiddleware) matches(key string) bool {
	for _, p := range m.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
