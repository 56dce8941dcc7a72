// Package value provides the tagged variant used for configuration entries.
//
// A configuration is a Map from string keys to Values. Every Value has exactly
// one Kind, fixed at construction time:
//
//	cfg := value.Map{
//	    "multiply": value.Integer(12),
//	    "greeting": value.Text("hello"),
//	    "ratios":   value.Sequence(value.Float(0.5), value.Integer(2)),
//	    "flags":    value.Other(true),
//	}
//
// Decoded data (from JSON, YAML or plain Go literals) is classified with
// FromNative. Anything that is not text, a number, a sequence or a string-keyed
// mapping is wrapped as KindOther and carried untouched.
//
// Values are immutable. Containers returned by the accessors must not be
// modified by callers.
package value
