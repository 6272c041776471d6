package config

import (
	"fmt"
	"maps"
	"slices"
)

// Option keys recognized in an export job table.
const (
	KeyOutput          = "output"
	KeyFormat          = "format"
	KeyWithoutHashes   = "without_hashes"
	KeyWithCredentials = "with_credentials"
	KeyWithoutURLs     = "without_urls"
	KeyAllExtras       = "all_extras"
	KeyOnlyRoot        = "only_root"
	KeyWith            = "with"
	KeyWithout         = "without"
	KeyOnly            = "only"
	KeyExtras          = "extras"
)

// Job is one configured "poetry export" invocation.
type Job struct {
	Output          string   `yaml:"output"`
	Format          string   `yaml:"format,omitempty"`
	WithoutHashes   bool     `yaml:"without_hashes,omitempty"`
	WithCredentials bool     `yaml:"with_credentials,omitempty"`
	WithoutURLs     bool     `yaml:"without_urls,omitempty"`
	AllExtras       bool     `yaml:"all_extras,omitempty"`
	OnlyRoot        bool     `yaml:"only_root,omitempty"`
	With            []string `yaml:"with,omitempty"`
	Without         []string `yaml:"without,omitempty"`
	Only            []string `yaml:"only,omitempty"`
	Extras          []string `yaml:"extras,omitempty"`

	// Unknown holds the sorted names of keys that are not export options.
	Unknown []string `yaml:"unknown,omitempty"`
}

// NewJob builds a Job from a decoded TOML table. An empty table yields
// ok == false and no error. path names the table in error messages.
func NewJob(path string, table map[string]any) (job Job, ok bool, err error) {
	if len(table) == 0 {
		return Job{}, false, nil
	}

	rest := maps.Clone(table)
	take := func(key string) (any, bool) {
		v, found := rest[key]
		delete(rest, key)
		return v, found
	}

	output, found := take(KeyOutput)
	if !found {
		return Job{}, false, fmt.Errorf("%s: %w", path, ErrMissingOutput)
	}
	s, isString := output.(string)
	if !isString || s == "" {
		return Job{}, false, fmt.Errorf("%s.%s: %w (got %T)", path, KeyOutput, ErrInvalidOutput, output)
	}
	job.Output = s

	if v, found := take(KeyFormat); found {
		if job.Format, err = stringOption(path, KeyFormat, v); err != nil {
			return Job{}, false, err
		}
	}

	flags := []struct {
		key string
		dst *bool
	}{
		{KeyWithoutHashes, &job.WithoutHashes},
		{KeyWithCredentials, &job.WithCredentials},
		{KeyWithoutURLs, &job.WithoutURLs},
		{KeyAllExtras, &job.AllExtras},
		{KeyOnlyRoot, &job.OnlyRoot},
	}
	for _, f := range flags {
		v, found := take(f.key)
		if !found {
			continue
		}
		b, isBool := v.(bool)
		if !isBool {
			return Job{}, false, fmt.Errorf("%s.%s: %w: expected boolean, got %T", path, f.key, ErrInvalidOption, v)
		}
		*f.dst = b
	}

	lists := []struct {
		key string
		dst *[]string
	}{
		{KeyWith, &job.With},
		{KeyWithout, &job.Without},
		{KeyOnly, &job.Only},
		{KeyExtras, &job.Extras},
	}
	for _, l := range lists {
		v, found := take(l.key)
		if !found {
			continue
		}
		if *l.dst, err = listOption(path, l.key, v); err != nil {
			return Job{}, false, err
		}
	}

	if len(rest) > 0 {
		job.Unknown = slices.Sorted(maps.Keys(rest))
	}
	return job, true, nil
}

func stringOption(path, key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s.%s: %w: expected string, got %T", path, key, ErrInvalidOption, v)
	}
	return s, nil
}

// listOption accepts an array of strings, or a single string as a one
// element list.
func listOption(path, key string, v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []string:
		return slices.Clone(t), nil
	case []any:
		out := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s.%s[%d]: %w: expected string, got %T", path, key, i, ErrInvalidOption, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s.%s: %w: expected array of strings, got %T", path, key, ErrInvalidOption, v)
	}
}
