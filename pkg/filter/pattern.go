// Package filter selects test methods by name and tag patterns.
//
// Patterns follow Java regular expression semantics (backtracking, lookaround)
// and must match the whole string, like String.matches. Matching ignores case
// unless the filter is built WithCaseSensitive(true), so ".*should.*" keeps
// "userShouldBeAbleToLogin".
package filter

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds a single pattern evaluation.
const DefaultMatchTimeout = 100 * time.Millisecond

var (
	// ErrInvalidPattern is returned when a pattern does not compile.
	ErrInvalidPattern = errors.New("filter: invalid pattern")
	// ErrMatchTimeout is returned when a pattern evaluation exceeds its timeout.
	ErrMatchTimeout = errors.New("filter: pattern match timeout")
)

// Pattern is a compiled whole-string pattern.
type Pattern struct {
	source string
	re     *regexp2.Regexp
}

// Compile compiles pattern anchored at both ends.
// A non-positive timeout uses DefaultMatchTimeout.
func Compile(pattern string, timeout time.Duration, caseSensitive bool) (*Pattern, error) {
	if timeout <= 0 {
		timeout = DefaultMatchTimeout
	}

	flags := regexp2.RegexOptions(regexp2.IgnoreCase)
	if caseSensitive {
		flags = regexp2.None
	}

	re, err := regexp2.Compile(`\A(?:`+pattern+`)\z`, flags)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
	}
	re.MatchTimeout = timeout

	return &Pattern{source: pattern, re: re}, nil
}

// String returns the pattern as written by the caller.
func (p *Pattern) String() string {
	return p.source
}

// Match reports whether s matches the whole pattern.
func (p *Pattern) Match(s string) (bool, error) {
	ok, err := p.re.MatchString(s)
	if err != nil {
		return false, fmt.Errorf("%w %q: %v", ErrMatchTimeout, p.source, err)
	}
	return ok, nil
}

func compileAll(kind string, patterns []string, opts *Options) ([]*Pattern, error) {
	compiled := make([]*Pattern, 0, len(patterns))
	for _, raw := range patterns {
		p, err := Compile(raw, opts.MatchTimeout, opts.CaseSensitive)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		compiled = append(compiled, p)
	}
	return compiled, nil
}
