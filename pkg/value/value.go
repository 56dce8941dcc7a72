package value

import (
	"fmt"
	"math"
	"reflect"
	"sort"
)

// Kind is the runtime shape of a Value.
type Kind uint8

const (
	KindOther Kind = iota
	KindText
	KindInteger
	KindFloat
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "other"
	}
}

// Value is a closed variant over text, integer, float, sequence, mapping and
// an opaque fallback. The zero Value is KindOther with a nil payload.
type Value struct {
	kind    Kind
	text    string
	integer int64
	float   float64
	items   []Value
	fields  Map
	payload any
}

// Map is a string-keyed collection of Values.
type Map map[string]Value

// Text creates a text Value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Integer creates an integer Value.
func Integer(i int64) Value { return Value{kind: KindInteger, integer: i} }

// Float creates a floating-point Value.
func Float(f float64) Value { return Value{kind: KindFloat, float: f} }

// Sequence creates an ordered sequence Value. A nil argument list yields an
// empty, non-nil sequence.
func Sequence(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindSequence, items: items}
}

// Mapping creates a mapping Value.
func Mapping(m Map) Value {
	if m == nil {
		m = Map{}
	}
	return Value{kind: KindMapping, fields: m}
}

// Other wraps a payload of unrecognized shape.
func Other(payload any) Value { return Value{kind: KindOther, payload: payload} }

// Kind reports the shape of v.
func (v Value) Kind() Kind { return v.kind }

// AsText returns the string held by a text Value.
func (v Value) AsText() (string, bool) { return v.text, v.kind == KindText }

// AsInteger returns the integer held by an integer Value.
func (v Value) AsInteger() (int64, bool) { return v.integer, v.kind == KindInteger }

// AsFloat returns the float held by a float Value.
func (v Value) AsFloat() (float64, bool) { return v.float, v.kind == KindFloat }

// AsSequence returns the elements of a sequence Value.
func (v Value) AsSequence() ([]Value, bool) { return v.items, v.kind == KindSequence }

// AsMapping returns the fields of a mapping Value.
func (v Value) AsMapping() (Map, bool) { return v.fields, v.kind == KindMapping }

// Payload returns the opaque payload of a KindOther Value, nil otherwise.
func (v Value) Payload() any {
	if v.kind != KindOther {
		return nil
	}
	return v.payload
}

// IsNumeric reports whether v is an integer or a float.
func (v Value) IsNumeric() bool {
	return v.kind == KindInteger || v.kind == KindFloat
}

// Len returns the number of elements of a sequence or fields of a mapping.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.fields)
	default:
		return 0
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return fmt.Sprintf("%q", v.text)
	case KindInteger:
		return fmt.Sprintf("%d", v.integer)
	case KindFloat:
		return fmt.Sprintf("%g", v.float)
	case KindSequence:
		return fmt.Sprintf("%v", v.items)
	case KindMapping:
		return v.fields.String()
	default:
		return fmt.Sprintf("%v", v.payload)
	}
}

// Equal reports whether a and b have the same kind and deeply equal contents.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindText:
		return a.text == b.text
	case KindInteger:
		return a.integer == b.integer
	case KindFloat:
		return a.float == b.float || (math.IsNaN(a.float) && math.IsNaN(b.float))
	case KindSequence:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		return a.fields.Equal(b.fields)
	default:
		return reflect.DeepEqual(a.payload, b.payload)
	}
}

// Equal reports whether m and other hold the same keys with equal Values.
func (m Map) Equal(other Map) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		ov, ok := other[k]
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}

// Keys returns the keys of m in ascending order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m Map) String() string {
	s := "{"
	for i, k := range m.Keys() {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%q: %s", k, m[k])
	}
	return s + "}"
}
