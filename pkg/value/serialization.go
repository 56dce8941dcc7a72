package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrNonFinite is returned when a NaN or infinite float has to be written as
// JSON, which has no representation for it.
var ErrNonFinite = errors.New("non-finite float")

// CheckFinite reports the first NaN or infinite float in m, if any.
func (m Map) CheckFinite() error {
	for _, k := range m.Keys() {
		if err := checkFinite(m[k], strconv.Quote(k)); err != nil {
			return err
		}
	}
	return nil
}

func checkFinite(v Value, path string) error {
	switch v.kind {
	case KindFloat:
		if math.IsNaN(v.float) || math.IsInf(v.float, 0) {
			return fmt.Errorf("%w %v at %s", ErrNonFinite, v.float, path)
		}
	case KindSequence:
		for i, item := range v.items {
			if err := checkFinite(item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case KindMapping:
		for _, k := range v.fields.Keys() {
			if err := checkFinite(v.fields[k], path+"."+strconv.Quote(k)); err != nil {
				return err
			}
		}
	}
	return nil
}

// MarshalJSON serializes the Value through its native form.
func (v Value) MarshalJSON() ([]byte, error) {
	if err := checkFinite(v, "value"); err != nil {
		return nil, err
	}
	return json.Marshal(v.Native())
}

// MarshalJSON serializes m through its native form, rejecting non-finite
// floats with ErrNonFinite.
func (m Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	if err := m.CheckFinite(); err != nil {
		return nil, err
	}
	return json.Marshal(m.Native())
}

// UnmarshalJSON decodes JSON keeping integers distinct from floats.
func (v *Value) UnmarshalJSON(data []byte) error {
	if v == nil {
		return fmt.Errorf("value: UnmarshalJSON on nil pointer")
	}

	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*v = FromNative(raw)
	return nil
}

// MarshalYAML serializes the Value through its native form.
func (v Value) MarshalYAML() (any, error) {
	return v.Native(), nil
}

// UnmarshalYAML decodes a YAML node into a Value.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*v = FromNative(raw)
	return nil
}
