package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag values from a
// YAML configuration file, such as the one written by the init command.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve("config"), "/path/to/config.yaml")
//
// Flag values are read from the mapping under the key name, when present,
// and otherwise from the top-level mapping:
//
//	log-level: debug
//	log-format: text
//	data:
//	  - site.yaml
//
// is equivalent to
//
//	config:
//	  log_level: debug
//	  log_format: text
//	  data: [site.yaml]
//
// Keys may use hyphens or underscores. Command-line flags override config
// file values. A file that is empty or not a YAML mapping configures nothing.
func resolve(name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		err := yaml.NewDecoder(r).Decode(&doc)
		if err != nil && !errors.Is(err, io.EOF) {
			return config{}, nil //nolint:nilerr
		}

		if section, ok := doc[name].(map[string]any); ok {
			doc = section
		}

		out := make(config, len(doc))
		for key, value := range doc {
			out[key] = flagValue(value)
		}

		return out, nil
	}
}

// flagValue converts a decoded YAML value to a form kong can map to a flag.
// Kong parses numbers from strings, so numbers are formatted.
func flagValue(value any) any {
	switch v := value.(type) {
	case uint64:
		return strconv.FormatUint(v, 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = flagValue(elem)
		}

		return out
	}

	return value
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, key := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := r[key]; ok {
			return value, nil
		}
	}

	// Not found; kong uses the default.
	return nil, nil
}
