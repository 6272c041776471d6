package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

const (
	// SectionName is the key of the tool's table under [tool].
	SectionName = "poetry-auto-export"
	// SectionPath is the dotted path of the tool's table.
	SectionPath = "tool." + SectionName
	// ExportsKey holds the array of additional export jobs.
	ExportsKey = "exports"
)

// LoadPyproject reads and decodes the TOML document at path.
func LoadPyproject(fsys afero.Fs, path string) (map[string]any, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrPyprojectNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPyproject, path, err)
	}
	return doc, nil
}

// LoadJobs reads the pyproject.toml at path and returns its export jobs.
func LoadJobs(fsys afero.Fs, path string) ([]Job, error) {
	doc, err := LoadPyproject(fsys, path)
	if err != nil {
		return nil, err
	}
	return ParseJobs(doc)
}

// ParseJobs extracts the export jobs from a decoded pyproject document.
//
// A missing [tool.poetry-auto-export] section, or one without keys, yields no
// jobs. The job formed by the section's own keys precedes the jobs of the
// exports array, which keep their input order. Empty tables are skipped.
func ParseJobs(doc map[string]any) ([]Job, error) {
	tool, ok := doc["tool"].(map[string]any)
	if !ok {
		return nil, nil
	}
	raw, found := tool[SectionName]
	if !found {
		return nil, nil
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w (got %T)", SectionPath, ErrInvalidSection, raw)
	}

	top := maps.Clone(section)
	delete(top, ExportsKey)

	var jobs []Job
	topJob, ok, err := NewJob(SectionPath, top)
	if err != nil {
		return nil, err
	}
	if ok {
		jobs = append(jobs, topJob)
	}

	rawExports, found := section[ExportsKey]
	if !found {
		return jobs, nil
	}
	items, ok := rawExports.([]any)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w (got %T)", SectionPath, ExportsKey, ErrInvalidExports, rawExports)
	}
	for i, item := range items {
		path := fmt.Sprintf("%s.%s[%d]", SectionPath, ExportsKey, i)
		table, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: %w (got %T)", path, ErrInvalidExports, item)
		}
		job, ok, err := NewJob(path, table)
		if err != nil {
			return nil, err
		}
		if ok {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}
