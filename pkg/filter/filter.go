package filter

import (
	"time"

	"go.uber.org/zap"

	"github.com/specvital/testdoc/pkg/domain"
)

// Patterns lists the raw include/exclude patterns for method names and tags.
type Patterns struct {
	ExcludeMethods []string `json:"excludeMethods,omitempty" mapstructure:"exclude_methods" yaml:"excludeMethods,omitempty"`
	ExcludeTags    []string `json:"excludeTags,omitempty" mapstructure:"exclude_tags" yaml:"excludeTags,omitempty"`
	IncludeMethods []string `json:"includeMethods,omitempty" mapstructure:"include_methods" yaml:"includeMethods,omitempty"`
	IncludeTags    []string `json:"includeTags,omitempty" mapstructure:"include_tags" yaml:"includeTags,omitempty"`
}

// Options configures a Filter.
type Options struct {
	// CaseSensitive disables case-insensitive matching.
	CaseSensitive bool
	// Logger receives warnings about timed out matches. Nil uses a no-op logger.
	Logger *zap.SugaredLogger
	// MatchTimeout bounds each pattern evaluation. Zero uses DefaultMatchTimeout.
	MatchTimeout time.Duration
}

// Option is a functional option for configuring a Filter.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithCaseSensitive enables or disables case-sensitive matching.
func WithCaseSensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseSensitive = enabled
	}
}

// WithMatchTimeout sets the per-evaluation timeout. Negative values are ignored.
func WithMatchTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.MatchTimeout = d
		}
	}
}

// Filter decides which methods are documented. The four pattern sets are
// AND-combined. A Filter is immutable and safe for concurrent use.
type Filter struct {
	includeMethods []*Pattern
	excludeMethods []*Pattern
	includeTags    []*Pattern
	excludeTags    []*Pattern
	logger         *zap.SugaredLogger
}

// New compiles every pattern. An invalid pattern fails here, wrapping
// ErrInvalidPattern, so filtering itself never fails.
func New(p Patterns, opts ...Option) (*Filter, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop().Sugar()
	}

	f := &Filter{logger: options.Logger}

	var err error
	if f.includeMethods, err = compileAll("include method", p.IncludeMethods, options); err != nil {
		return nil, err
	}
	if f.excludeMethods, err = compileAll("exclude method", p.ExcludeMethods, options); err != nil {
		return nil, err
	}
	if f.includeTags, err = compileAll("include tag", p.IncludeTags, options); err != nil {
		return nil, err
	}
	if f.excludeTags, err = compileAll("exclude tag", p.ExcludeTags, options); err != nil {
		return nil, err
	}

	return f, nil
}

// KeepAll returns a filter without patterns.
func KeepAll() *Filter {
	return &Filter{logger: zap.NewNop().Sugar()}
}

// IsEmpty reports whether no pattern is registered.
func (f *Filter) IsEmpty() bool {
	return len(f.includeMethods) == 0 && len(f.excludeMethods) == 0 &&
		len(f.includeTags) == 0 && len(f.excludeTags) == 0
}

// Keep reports whether rec passes every filter:
//   - with include method patterns, the name must match one of them;
//   - a name matching an exclude method pattern is dropped;
//   - with include tag patterns, some tag must match one of them (untagged methods fail);
//   - a method with a tag matching an exclude tag pattern is dropped.
func (f *Filter) Keep(rec domain.MethodRecord) bool {
	if len(f.includeMethods) > 0 && !f.anyMatch(f.includeMethods, rec.Name) {
		return false
	}
	if f.anyMatch(f.excludeMethods, rec.Name) {
		return false
	}
	if len(f.includeTags) > 0 && !f.anyTagMatch(f.includeTags, rec.Tags) {
		return false
	}
	if f.anyTagMatch(f.excludeTags, rec.Tags) {
		return false
	}
	return true
}

// Apply returns the records that pass the filter, preserving order.
func (f *Filter) Apply(recs []domain.MethodRecord) []domain.MethodRecord {
	if f.IsEmpty() {
		return recs
	}
	kept := make([]domain.MethodRecord, 0, len(recs))
	for _, rec := range recs {
		if f.Keep(rec) {
			kept = append(kept, rec)
		}
	}
	return kept
}

func (f *Filter) anyTagMatch(patterns []*Pattern, tags []string) bool {
	for _, tag := range tags {
		if f.anyMatch(patterns, tag) {
			return true
		}
	}
	return false
}

// anyMatch treats a timed out evaluation as no match.
func (f *Filter) anyMatch(patterns []*Pattern, s string) bool {
	for _, p := range patterns {
		ok, err := p.Match(s)
		if err != nil {
			f.logger.Warnw("pattern evaluation failed", "pattern", p.String(), "input", s, "error", err)
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
