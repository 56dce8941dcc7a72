package schema

import (
	"sort"

	"github.com/aretw0/morph/pkg/value"
)

// Schema is a map of field names to their expected types.
type Schema map[string]Type

// Fields returns the schema field names in ascending order.
func (s Schema) Fields() []string {
	fields := make([]string, 0, len(s))
	for name := range s {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

// Validate checks if doc conforms to the schema.
// Fields not declared in the schema are ignored. All failures are reported
// in a single *AggregateError, ordered by field name.
func Validate(s Schema, doc value.Map) error {
	if len(s) == 0 {
		return nil
	}
	return ValidateFields(s, doc, s.Fields()...)
}

// ValidateFields validates only specific fields from doc against the schema.
// Missing fields are treated as an error.
func ValidateFields(s Schema, doc value.Map, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}

	var errs []error

	for _, fieldName := range fields {
		fieldType, exists := s[fieldName]
		if !exists {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "not defined in schema",
			})
			continue
		}

		v, fieldExists := doc[fieldName]
		if !fieldExists {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
			})
			continue
		}

		if err := fieldType.Validate(v); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Kind:   v.Kind().String(),
				Err:    err,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}
