// Package schema validates configuration documents against declared shapes.
//
// A Schema maps field names to Types. Types check the Kind (and optionally the
// contents) of a value.Value:
//
//	userSchema := schema.Schema{
//	    "username": schema.Text(),
//	    "age":      schema.NonNegative(),
//	    "tags":     schema.Sequence(schema.Text()),
//	}
//
//	if err := schema.Validate(userSchema, doc); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        // Handle each field failure
//	    }
//	}
//
// Schemas can also be written as type strings, which is how they are stored
// on disk:
//
//	s, err := schema.ParseTypeMap(map[string]string{
//	    "username": "text",
//	    "limits":   "{int}",
//	    "ratios":   "[float]",
//	})
//
// Custom validators cover domain-specific checks:
//
//	even := schema.Custom("even", func(v value.Value) error {
//	    n, ok := v.AsInteger()
//	    if !ok || n%2 != 0 {
//	        return fmt.Errorf("must be an even integer")
//	    }
//	    return nil
//	})
package schema
