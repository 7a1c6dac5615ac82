package narrative

import (
	"go.uber.org/zap"

	"github.com/specvital/testdoc/pkg/assertion"
	"github.com/specvital/testdoc/pkg/naming"
)

// MaxWorkers is the maximum number of concurrent composers allowed.
const MaxWorkers = 1024

// Replacement is a literal substring substitution applied to every narrative.
type Replacement struct {
	// Pattern is the substring to look for. Empty patterns are ignored.
	Pattern string `json:"pattern" mapstructure:"pattern" yaml:"pattern"`
	// Replacement is the text substituted for every occurrence of Pattern.
	Replacement string `json:"replacement" mapstructure:"replacement" yaml:"replacement"`
}

// Options configures a Composer.
type Options struct {
	// Decomposer splits method names. Nil uses naming.Standard.
	Decomposer naming.Decomposer

	// Detector recognizes assertion lines. Nil uses the assertion default registry.
	Detector assertion.Detector

	// Logger receives debug output. Nil uses a no-op logger.
	Logger *zap.SugaredLogger

	// Replacements are applied in order, each seeing the previous output.
	Replacements []Replacement

	// Workers is the number of concurrent composers used by ComposeAll.
	// Zero or negative values use runtime.GOMAXPROCS(0).
	Workers int
}

// Option is a functional option for configuring a Composer.
type Option func(*Options)

// WithDecomposer sets the name decomposer (e.g., a naming.Cache).
func WithDecomposer(d naming.Decomposer) Option {
	return func(o *Options) {
		o.Decomposer = d
	}
}

// WithDetector sets the assertion detector.
func WithDetector(d assertion.Detector) Option {
	return func(o *Options) {
		o.Detector = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithReplacements appends ordered substring replacements.
func WithReplacements(rs ...Replacement) Option {
	return func(o *Options) {
		o.Replacements = append(o.Replacements, rs...)
	}
}

// WithWorkers sets the number of concurrent composers.
// Negative values are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

func applyDefaults(opts *Options) {
	if opts.Decomposer == nil {
		opts.Decomposer = naming.Standard
	}
	if opts.Detector == nil {
		opts.Detector = assertion.DefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Workers > MaxWorkers {
		opts.Workers = MaxWorkers
	}

	replacements := make([]Replacement, 0, len(opts.Replacements))
	for _, r := range opts.Replacements {
		if r.Pattern != "" {
			replacements = append(replacements, r)
		}
	}
	opts.Replacements = replacements
}
