// Package records reads the method records handed over by an upstream parser.
//
// A hand-off file is YAML (or JSON, which is valid YAML) of the form:
//
//	classes:
//	  - className: LoginTests
//	    packageName: com.example
//	    methods:
//	      - name: testLogin
//	        body: "{ Assert.assertTrue(ok); }"
//	        tags: ["Feature: Login"]
package records

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/specvital/testdoc/pkg/domain"
)

var (
	// ErrNoInput is returned when no file matches the input patterns.
	ErrNoInput = errors.New("records: no input files matched")
	// ErrInvalidGlob is returned for malformed glob patterns.
	ErrInvalidGlob = errors.New("records: invalid glob pattern")
)

// DecodeError reports a hand-off file that could not be read or decoded.
type DecodeError struct {
	// Err is the underlying error.
	Err error
	// Path is the file path relative to the source root.
	Path string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("records: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// File is the document layout of one hand-off file.
type File struct {
	Classes []domain.ClassRecord `json:"classes" yaml:"classes"`
}

// Decode reads one hand-off document. An empty document yields no classes.
func Decode(r io.Reader) ([]domain.ClassRecord, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	return f.Classes, nil
}

// Result is the outcome of Load.
type Result struct {
	// Classes contains the classes of every file, in file path order.
	Classes []domain.ClassRecord
	// Files lists the matched files in the order they were read.
	Files []string
}

// CountMethods returns the number of method records loaded.
func (r *Result) CountMethods() int {
	count := 0
	for _, c := range r.Classes {
		count += c.CountMethods()
	}
	return count
}

// Load reads every file of fsys matching one of the doublestar patterns
// (e.g., "records/**/*.yaml"). Files matched by several patterns are read once.
func Load(fsys fs.FS, patterns []string) (*Result, error) {
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidGlob, pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("records: glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}

	if len(paths) == 0 {
		return nil, ErrNoInput
	}
	sort.Strings(paths)

	result := &Result{Files: paths}
	for _, path := range paths {
		classes, err := loadFile(fsys, path)
		if err != nil {
			return nil, err
		}
		result.Classes = append(result.Classes, classes...)
	}

	return result, nil
}

func loadFile(fsys fs.FS, path string) ([]domain.ClassRecord, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, &DecodeError{Err: err, Path: path}
	}
	defer func() { _ = f.Close() }()

	classes, err := Decode(f)
	if err != nil {
		return nil, &DecodeError{Err: err, Path: path}
	}
	return classes, nil
}
