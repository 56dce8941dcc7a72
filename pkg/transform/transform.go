package transform

import (
	"github.com/aretw0/morph/pkg/rules"
	"github.com/aretw0/morph/pkg/value"
)

// shortSequenceLimit is the largest sequence rewritten element by element.
const shortSequenceLimit = 5

// Observer is notified once per entry with its input and computed output.
type Observer func(key string, in, out value.Value)

type options struct {
	observer Observer
}

// Option configures a Transform call.
type Option func(*options)

// WithObserver registers fn to be called after each entry is transformed.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// Transform applies Entry to every entry of cfg and returns a new Map with the
// same keys. A nil cfg yields an empty Map.
func Transform(cfg value.Map, opts ...Option) value.Map {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	result := make(value.Map, len(cfg))
	for key, in := range cfg {
		out := Entry(key, in)
		result[key] = out
		if o.observer != nil {
			o.observer(key, in, out)
		}
	}
	return result
}

// Entry transforms a single entry. The key doubles as the operation selector
// for top-level integers.
func Entry(key string, v value.Value) value.Value {
	switch v.Kind() {
	case value.KindText:
		s, _ := v.AsText()
		return value.Text(rules.Text(s))
	case value.KindInteger:
		n, _ := v.AsInteger()
		return value.Integer(rules.Number(rules.Operation(key), n))
	case value.KindSequence:
		items, _ := v.AsSequence()
		if len(items) > shortSequenceLimit {
			return doubleNumeric(items)
		}
		return rewriteShort(items)
	case value.KindMapping:
		fields, _ := v.AsMapping()
		return rewriteMapping(fields)
	default:
		// floats and opaque payloads
		return v
	}
}

func doubleNumeric(items []value.Value) value.Value {
	out := make([]value.Value, 0, len(items))
	for _, item := range items {
		switch item.Kind() {
		case value.KindInteger:
			n, _ := item.AsInteger()
			out = append(out, value.Integer(n*2))
		case value.KindFloat:
			f, _ := item.AsFloat()
			out = append(out, value.Float(f*2))
		}
	}
	return value.Sequence(out...)
}

func rewriteShort(items []value.Value) value.Value {
	out := make([]value.Value, len(items))
	for i, item := range items {
		out[i] = scalar(item, rules.Multiply)
	}
	return value.Sequence(out...)
}

func rewriteMapping(fields value.Map) value.Value {
	out := make(value.Map, len(fields))
	for k, field := range fields {
		out[k] = scalar(field, rules.Add)
	}
	return value.Mapping(out)
}

// scalar rewrites integers with op and texts with the text rule. Anything
// else, nested containers included, is returned as is.
func scalar(v value.Value, op rules.Operation) value.Value {
	switch v.Kind() {
	case value.KindInteger:
		n, _ := v.AsInteger()
		return value.Integer(rules.Number(op, n))
	case value.KindText:
		s, _ := v.AsText()
		return value.Text(rules.Text(s))
	default:
		return v
	}
}
