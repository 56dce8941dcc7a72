// Package rules holds the scalar rewrite rules applied by the transformer:
// a text rule keyed on message tone and a numeric rule keyed on an operation
// selector.
package rules

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Operation selects the arithmetic applied by Number.
type Operation string

const (
	Multiply Operation = "multiply"
	Add      Operation = "add"
)

// Text rewrites s according to its content:
// texts mentioning "error" are upper-cased, texts mentioning "success" are
// capitalized, anything else is reversed. Matching ignores case.
func Text(s string) string {
	folded := cases.Lower(language.Und).String(s)

	switch {
	case strings.Contains(folded, "error"):
		return cases.Upper(language.Und).String(s)
	case strings.Contains(folded, "success"):
		return capitalize(s)
	default:
		return reverse(s)
	}
}

// capitalize title-cases the first character and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	head := cases.Title(language.Und).String(string(r))
	return head + cases.Lower(language.Und).String(s[size:])
}

// reverse reverses s code point by code point.
func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// Number applies op to v. Unknown operations return v unchanged.
// Results wrap on int64 overflow.
func Number(op Operation, v int64) int64 {
	switch op {
	case Multiply:
		if v > 10 {
			return v * 2
		}
		return v * 3
	case Add:
		if v >= 0 {
			return v + 10
		}
		// |v| > 100
		if v < -100 {
			return v + 200
		}
		return v + 50
	default:
		return v
	}
}
