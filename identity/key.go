package identity

import (
	"fmt"
	"reflect"
	"strconv"
)

// NormalizeKey converts a primitive id value into a stable string cache key.
// Ids are strings or numbers by contract; bools are tolerated since they are
// primitive and stable. It returns false for nil, pointers to nothing, and
// composite values, which callers treat as "no id present".
func NormalizeKey(v any) (string, bool) {
	if v == nil {
		return "", false
	}

	rv := reflect.ValueOf(v)

	// Dereference pointers so *int ids behave like int ids.
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		s := rv.String()
		if s == "" {
			return "", false
		}
		return s, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		// JSON decodes numeric ids as float64, so integral floats must map to
		// the same key as their integer counterparts.
		f := rv.Float()
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10), true
		}
		return strconv.FormatFloat(f, 'g', -1, 64), true
	case reflect.Bool:
		return fmt.Sprintf("%t", rv.Bool()), true
	default:
		return "", false
	}
}
