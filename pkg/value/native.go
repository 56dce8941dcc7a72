package value

import (
	"encoding/json"
	"math"
	"reflect"
)

// FromNative classifies decoded Go data into a Value.
//
// Strings, signed integers, unsigned integers that fit in int64, floats,
// json.Number, slices and arrays, and string-keyed maps get their own kinds.
// Booleans, nil, byte slices and everything else become KindOther.
// Booleans are deliberately not treated as integers, so true is never
// multiplied, added to or doubled the way a 1 would be.
func FromNative(raw any) Value {
	switch v := raw.(type) {
	case Value:
		return v
	case Map:
		return Mapping(v)
	case string:
		return Text(v)
	case int:
		return Integer(int64(v))
	case int8:
		return Integer(int64(v))
	case int16:
		return Integer(int64(v))
	case int32:
		return Integer(int64(v))
	case int64:
		return Integer(v)
	case uint8:
		return Integer(int64(v))
	case uint16:
		return Integer(int64(v))
	case uint32:
		return Integer(int64(v))
	case uint:
		return fromUnsigned(uint64(v), raw)
	case uint64:
		return fromUnsigned(v, raw)
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return Integer(i)
		}
		if f, err := v.Float64(); err == nil {
			return Float(f)
		}
		return Other(raw)
	case []byte:
		return Other(raw)
	case []any:
		items := make([]Value, len(v))
		for i, elem := range v {
			items[i] = FromNative(elem)
		}
		return Sequence(items...)
	case map[string]any:
		fields := make(Map, len(v))
		for k, elem := range v {
			fields[k] = FromNative(elem)
		}
		return Mapping(fields)
	case nil:
		return Other(nil)
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items[i] = FromNative(rv.Index(i).Interface())
		}
		return Sequence(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Other(raw)
		}
		fields := make(Map, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields[iter.Key().String()] = FromNative(iter.Value().Interface())
		}
		return Mapping(fields)
	default:
		return Other(raw)
	}
}

func fromUnsigned(u uint64, raw any) Value {
	if u > math.MaxInt64 {
		return Other(raw)
	}
	return Integer(int64(u))
}

// MapFromNative converts a decoded document into a Map.
func MapFromNative(raw map[string]any) Map {
	m := make(Map, len(raw))
	for k, v := range raw {
		m[k] = FromNative(v)
	}
	return m
}

// Native converts v back into plain Go data: string, int64, float64, []any,
// map[string]any or the opaque payload.
func (v Value) Native() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return v.integer
	case KindFloat:
		return v.float
	case KindSequence:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Native()
		}
		return out
	case KindMapping:
		return v.fields.Native()
	default:
		return v.payload
	}
}

// Native converts m into a map[string]any.
func (m Map) Native() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.Native()
	}
	return out
}
