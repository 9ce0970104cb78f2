package interp

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/liquid/pkg"
)

// Pseudo-fields understood by [Index] on sequences, maps, and strings.
const (
	FieldSize  = "size"
	FieldFirst = "first"
	FieldLast  = "last"
)

// Index returns the member of value selected by key.
//
// String keys select map entries, and integer keys select sequence elements
// where negative indexes count from the end. The pseudo-fields size, first,
// and last are resolved when the value has no member of that name.
func Index(value, key any) (any, error) {
	if s, ok := key.(string); ok {
		if v, ok := field(value, s); ok {
			return v, nil
		}

		return nil, pkg.ErrUnknownIndex.
			Describe(strconv.Quote(s)).
			With(slog.String("index", s), slog.String("type", typeName(value)))
	}

	if i, ok := ToInt(key); ok {
		if v, ok := element(value, i); ok {
			return v, nil
		}

		return nil, pkg.ErrUnknownIndex.
			Describe(strconv.FormatInt(i, 10)).
			With(slog.Int64("index", i), slog.String("type", typeName(value)))
	}

	return nil, pkg.ErrInvalidArgument.
		Describe("index must be a string or whole number").
		With(slog.String("index", ToString(key)))
}

func field(value any, name string) (any, bool) {
	switch v := value.(type) {
	case map[string]any:
		if m, ok := v[name]; ok {
			return m, true
		}

		if name == FieldSize {
			return int64(len(v)), true
		}

		return nil, false

	case []any:
		switch name {
		case FieldSize:
			return int64(len(v)), true
		case FieldFirst:
			return element(v, 0)
		case FieldLast:
			return element(v, -1)
		}

		return nil, false

	case string:
		if name == FieldSize {
			return int64(utf8.RuneCountInString(v)), true
		}

		return nil, false
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}

		m := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if m.IsValid() {
			return m.Interface(), true
		}

		if name == FieldSize {
			return int64(rv.Len()), true
		}

	case reflect.Slice, reflect.Array:
		switch name {
		case FieldSize:
			return int64(rv.Len()), true
		case FieldFirst:
			return element(value, 0)
		case FieldLast:
			return element(value, -1)
		}

	case reflect.Pointer:
		if !rv.IsNil() {
			return field(rv.Elem().Interface(), name)
		}
	}

	return nil, false
}

func element(value any, i int64) (any, bool) {
	if v, ok := value.([]any); ok {
		if i < 0 {
			i += int64(len(v))
		}

		if i < 0 || i >= int64(len(v)) {
			return nil, false
		}

		return v[i], true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	if i < 0 {
		i += int64(rv.Len())
	}

	if i < 0 || i >= int64(rv.Len()) {
		return nil, false
	}

	return rv.Index(int(i)).Interface(), true
}

// ToInt converts integral numeric values to int64.
func ToInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true //nolint:gosec
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}

		return int64(n), true
	case float32:
		return ToInt(float64(n))
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}

		return int64(n), true
	}

	return 0, false
}

// ToFloat converts any numeric value to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}

	if i, ok := ToInt(v); ok {
		return float64(i), true
	}

	return 0, false
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}

	return false
}

// Equal reports whether two values are equal. Numbers compare by value
// regardless of their Go type, so 2 and 2.0 are equal.
func Equal(a, b any) bool {
	if isNumber(a) && isNumber(b) {
		ai, aok := ToInt(a)
		bi, bok := ToInt(b)

		if aok && bok {
			return ai == bi
		}

		af, _ := ToFloat(a)
		bf, _ := ToFloat(b)

		return af == bf
	}

	return reflect.DeepEqual(a, b)
}

// ToString returns the display text of a value.
func ToString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case []any:
		var sb strings.Builder
		for _, e := range s {
			sb.WriteString(ToString(e))
		}

		return sb.String()
	case map[string]any:
		b, err := yaml.MarshalWithOptions(s, yaml.Flow(true))
		if err != nil {
			return fmt.Sprint(s)
		}

		return strings.TrimSpace(string(b))
	case fmt.Stringer:
		return s.String()
	}

	if i, ok := ToInt(v); ok {
		return strconv.FormatInt(i, 10)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		var sb strings.Builder
		for i := range rv.Len() {
			sb.WriteString(ToString(rv.Index(i).Interface()))
		}

		return sb.String()
	}

	return fmt.Sprint(v)
}

// typeName returns a short description of a value's shape for diagnostics.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}

	return reflect.TypeOf(v).String()
}
