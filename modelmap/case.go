package modelmap

import (
	"reflect"
	"strings"
	"unicode"
)

// typeName derives a bare name for the instance type, peeling pointers so
// *pkg.User and pkg.User namespace identically.
func typeName[T any]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

// toSnake converts the provided string to snake_case using ASCII-aware rules.
// Reflected type names can carry package qualifiers, pointers, and generic
// suffixes; stripping that punctuation here keeps metric attribute values
// flat and stable.
func toSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/2)

	runes := []rune(s)
	pendingSep := false

	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if b.Len() > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) || nextLower) {
				pendingSep = true
			}
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))

		case unicode.IsLower(r) || unicode.IsDigit(r):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)

		default:
			// Punctuation and spacing collapse into a single separator.
			pendingSep = b.Len() > 0
		}
	}

	return b.String()
}
