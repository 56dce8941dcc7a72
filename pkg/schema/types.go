package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/morph/pkg/value"
)

// ErrNegative is reported by NonNegative for integers below zero.
var ErrNegative = errors.New("must not be negative")

// Type defines the contract for field validation.
type Type interface {
	// Name returns the type string (e.g. "text", "[int]").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(v value.Value) error
}

// TextType validates text values.
type TextType struct{}

func (t *TextType) Name() string { return "text" }

func (t *TextType) Validate(v value.Value) error {
	return expectKind(v, value.KindText)
}

// IntegerType validates integer values.
type IntegerType struct{}

func (t *IntegerType) Name() string { return "int" }

func (t *IntegerType) Validate(v value.Value) error {
	return expectKind(v, value.KindInteger)
}

// FloatType validates numeric values; integers are accepted.
type FloatType struct{}

func (t *FloatType) Name() string { return "float" }

func (t *FloatType) Validate(v value.Value) error {
	if !v.IsNumeric() {
		return fmt.Errorf("expected float, got %s", v.Kind())
	}
	return nil
}

// AnyType accepts every value.
type AnyType struct{}

func (t *AnyType) Name() string { return "any" }

func (t *AnyType) Validate(value.Value) error { return nil }

// SequenceType validates sequences whose elements all match elemType.
type SequenceType struct {
	elemType Type
}

func (t *SequenceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SequenceType) Validate(v value.Value) error {
	items, ok := v.AsSequence()
	if !ok {
		return fmt.Errorf("expected sequence, got %s", v.Kind())
	}
	for i, item := range items {
		if err := t.elemType.Validate(item); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// MappingType validates mappings whose values all match elemType.
type MappingType struct {
	elemType Type
}

func (t *MappingType) Name() string {
	return fmt.Sprintf("{%s}", t.elemType.Name())
}

func (t *MappingType) Validate(v value.Value) error {
	fields, ok := v.AsMapping()
	if !ok {
		return fmt.Errorf("expected mapping, got %s", v.Kind())
	}
	for _, key := range fields.Keys() {
		if err := t.elemType.Validate(fields[key]); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(value.Value) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(v value.Value) error {
	return t.validate(v)
}

func expectKind(v value.Value, want value.Kind) error {
	if v.Kind() != want {
		return fmt.Errorf("expected %s, got %s", want, v.Kind())
	}
	return nil
}

// Text creates a text type validator.
func Text() Type { return &TextType{} }

// Integer creates an integer type validator.
func Integer() Type { return &IntegerType{} }

// Float creates a numeric type validator.
func Float() Type { return &FloatType{} }

// Any creates a validator that accepts everything.
func Any() Type { return &AnyType{} }

// Sequence creates a sequence validator for elements of the given type.
func Sequence(elemType Type) Type {
	return &SequenceType{elemType: elemType}
}

// Mapping creates a mapping validator for values of the given type.
func Mapping(elemType Type) Type {
	return &MappingType{elemType: elemType}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(value.Value) error) Type {
	return &CustomType{name: name, validate: validate}
}

// NonNegative accepts integers greater than or equal to zero.
func NonNegative() Type {
	return Custom("uint", func(v value.Value) error {
		n, ok := v.AsInteger()
		if !ok {
			return fmt.Errorf("expected int, got %s", v.Kind())
		}
		if n < 0 {
			return ErrNegative
		}
		return nil
	})
}

// ParseType converts a type string to a Type.
// Supports "text", "int", "uint", "float", "any", "[T]" and "{T}".
func ParseType(typeStr string) (Type, error) {
	typeStr = strings.TrimSpace(typeStr)

	if len(typeStr) > 2 {
		open, closing := typeStr[0], typeStr[len(typeStr)-1]
		inner := typeStr[1 : len(typeStr)-1]
		switch {
		case open == '[' && closing == ']':
			elem, err := ParseType(inner)
			if err != nil {
				return nil, err
			}
			return Sequence(elem), nil
		case open == '{' && closing == '}':
			elem, err := ParseType(inner)
			if err != nil {
				return nil, err
			}
			return Mapping(elem), nil
		}
	}

	switch typeStr {
	case "text", "string":
		return Text(), nil
	case "int":
		return Integer(), nil
	case "uint":
		return NonNegative(), nil
	case "float":
		return Float(), nil
	case "any":
		return Any(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}

// ParseTypeMap converts a map of field names to type strings into a Schema.
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema, len(typeMap))
	for key, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		result[key] = t
	}
	return result, nil
}
