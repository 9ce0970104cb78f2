package filters

import (
	"encoding/json"
	"log/slog"
	"maps"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/mung"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/liquid/interp"
	"github.com/ardnew/liquid/pkg"
)

var standard = map[string]interp.Filter{
	"upcase":       interp.FilterFunc(upcase),
	"downcase":     interp.FilterFunc(downcase),
	"capitalize":   interp.FilterFunc(capitalize),
	"append":       interp.FilterFunc(appendFilter),
	"prepend":      interp.FilterFunc(prepend),
	"default":      interp.FilterFunc(defaultFilter),
	"size":         interp.FilterFunc(size),
	"join":         interp.FilterFunc(join),
	"split":        interp.FilterFunc(split),
	"strip":        interp.FilterFunc(strip),
	"replace":      interp.FilterFunc(replace),
	"first":        interp.FilterFunc(first),
	"last":         interp.FilterFunc(last),
	"plus":         arithmetic(func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b }),
	"minus":        arithmetic(func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b }),
	"times":        arithmetic(func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b }),
	"json":         interp.FilterFunc(toJSON),
	"yaml":         interp.FilterFunc(toYAML),
	"prepend_path": interp.FilterFunc(prependPath),
}

// params names the arguments of the built-in filters that take any. A
// leading "..." marks a variadic parameter.
var params = map[string][]string{
	"append":       {"suffix"},
	"prepend":      {"prefix"},
	"default":      {"value"},
	"join":         {"separator"},
	"split":        {"separator"},
	"replace":      {"search", "replacement"},
	"plus":         {"operand"},
	"minus":        {"operand"},
	"times":        {"operand"},
	"prepend_path": {"...prefix"},
}

// Params returns the parameter names of the named built-in filter. The
// result is empty for filters that take no arguments, and ok is false for
// names that are not built in.
func Params(name string) (names []string, ok bool) {
	if _, ok := standard[name]; !ok {
		return nil, false
	}

	return slices.Clone(params[name]), true
}

// Standard returns a new table of the built-in filters.
func Standard() map[string]interp.Filter { return maps.Clone(standard) }

// Names returns the names of the built-in filters in sorted order.
func Names() []string { return slices.Sorted(maps.Keys(standard)) }

// arg returns the i'th argument or fails naming the missing parameter.
func arg(args []any, i int, name string) (any, error) {
	if i >= len(args) {
		return nil, pkg.ErrInvalidArgument.
			Describe("missing " + name).
			With(slog.Int("position", i+1))
	}

	return args[i], nil
}

func upcase(input any, _ ...any) (any, error) {
	return strings.ToUpper(interp.ToString(input)), nil
}

func downcase(input any, _ ...any) (any, error) {
	return strings.ToLower(interp.ToString(input)), nil
}

func capitalize(input any, _ ...any) (any, error) {
	s := interp.ToString(input)

	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s, nil
	}

	return string(unicode.ToUpper(r)) + s[n:], nil
}

func appendFilter(input any, args ...any) (any, error) {
	suffix, err := arg(args, 0, "suffix")
	if err != nil {
		return nil, err
	}

	return interp.ToString(input) + interp.ToString(suffix), nil
}

func prepend(input any, args ...any) (any, error) {
	prefix, err := arg(args, 0, "prefix")
	if err != nil {
		return nil, err
	}

	return interp.ToString(prefix) + interp.ToString(input), nil
}

// defaultFilter replaces nil, false, and empty values with its argument.
func defaultFilter(input any, args ...any) (any, error) {
	fallback, err := arg(args, 0, "default value")
	if err != nil {
		return nil, err
	}

	if empty(input) {
		return fallback, nil
	}

	return input, nil
}

func empty(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}

func size(input any, _ ...any) (any, error) {
	if n, err := interp.Index(input, interp.FieldSize); err == nil {
		return n, nil
	}

	return int64(0), nil
}

func first(input any, _ ...any) (any, error) {
	if s, ok := input.(string); ok {
		r, n := utf8.DecodeRuneInString(s)
		if n == 0 {
			return nil, nil
		}

		return string(r), nil
	}

	v, err := interp.Index(input, interp.FieldFirst)
	if err != nil {
		return nil, nil //nolint:nilerr
	}

	return v, nil
}

func last(input any, _ ...any) (any, error) {
	if s, ok := input.(string); ok {
		r, n := utf8.DecodeLastRuneInString(s)
		if n == 0 {
			return nil, nil
		}

		return string(r), nil
	}

	v, err := interp.Index(input, interp.FieldLast)
	if err != nil {
		return nil, nil //nolint:nilerr
	}

	return v, nil
}

// sequence returns the elements of a slice or array value.
func sequence(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	s := make([]any, rv.Len())
	for i := range s {
		s[i] = rv.Index(i).Interface()
	}

	return s, true
}

func join(input any, args ...any) (any, error) {
	sep := " "
	if len(args) > 0 {
		sep = interp.ToString(args[0])
	}

	items, ok := sequence(input)
	if !ok {
		return interp.ToString(input), nil
	}

	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = interp.ToString(item)
	}

	return strings.Join(parts, sep), nil
}

func split(input any, args ...any) (any, error) {
	sep, err := arg(args, 0, "separator")
	if err != nil {
		return nil, err
	}

	s := interp.ToString(input)
	if s == "" {
		return []any{}, nil
	}

	parts := strings.Split(s, interp.ToString(sep))

	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = p
	}

	return out, nil
}

func strip(input any, _ ...any) (any, error) {
	return strings.TrimSpace(interp.ToString(input)), nil
}

func replace(input any, args ...any) (any, error) {
	old, err := arg(args, 0, "search string")
	if err != nil {
		return nil, err
	}

	replacement := ""
	if len(args) > 1 {
		replacement = interp.ToString(args[1])
	}

	return strings.ReplaceAll(
		interp.ToString(input),
		interp.ToString(old),
		replacement,
	), nil
}

// number converts numeric values and numeric strings. The flag reports
// whether the result is integral.
func number(v any) (int64, float64, bool, error) {
	switch n := v.(type) {
	case float32, float64:
		f, _ := interp.ToFloat(n)

		return 0, f, false, nil
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, float64(i), true, nil
		}

		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, 0, false, pkg.ErrInvalidArgument.
				Describe("not a number").
				With(slog.String("value", n))
		}

		return 0, f, false, nil
	case nil:
		return 0, 0, true, nil
	}

	i, ok := interp.ToInt(v)
	if !ok {
		return 0, 0, false, pkg.ErrInvalidArgument.
			Describe("not a number").
			With(slog.String("value", interp.ToString(v)))
	}

	return i, float64(i), true, nil
}

// arithmetic builds a binary numeric filter. Integers stay integers unless
// either operand is fractional.
func arithmetic(
	ints func(a, b int64) int64,
	floats func(a, b float64) float64,
) interp.Filter {
	return interp.FilterFunc(func(input any, args ...any) (any, error) {
		operand, err := arg(args, 0, "operand")
		if err != nil {
			return nil, err
		}

		ai, af, aint, err := number(input)
		if err != nil {
			return nil, err
		}

		bi, bf, bint, err := number(operand)
		if err != nil {
			return nil, err
		}

		if aint && bint {
			return ints(ai, bi), nil
		}

		return floats(af, bf), nil
	})
}

func toJSON(input any, _ ...any) (any, error) {
	b, err := json.Marshal(input)
	if err != nil {
		return nil, pkg.ErrJSONMarshal.Wrap(err)
	}

	return string(b), nil
}

func toYAML(input any, _ ...any) (any, error) {
	b, err := yaml.Marshal(input)
	if err != nil {
		return nil, pkg.ErrYAMLMarshal.Wrap(err)
	}

	return strings.TrimSuffix(string(b), "\n"), nil
}

// prependPath prefixes the items of a PATH-style list with each argument.
func prependPath(input any, args ...any) (any, error) {
	prefix := make([]string, len(args))
	for i, a := range args {
		prefix[i] = interp.ToString(a)
	}

	return mung.Make(
		mung.WithSubjectItems(interp.ToString(input)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String(), nil
}
