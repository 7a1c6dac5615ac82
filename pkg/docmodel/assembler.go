// Package docmodel assembles filtered test method narratives and usage
// statistics into a DocumentModel for external renderers.
package docmodel

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/specvital/testdoc/pkg/assertion"
	"github.com/specvital/testdoc/pkg/domain"
	"github.com/specvital/testdoc/pkg/filter"
	"github.com/specvital/testdoc/pkg/naming"
	"github.com/specvital/testdoc/pkg/narrative"
	"github.com/specvital/testdoc/pkg/stats"
)

// ErrAssembleCancelled is returned when assembly is cancelled via context.
var ErrAssembleCancelled = errors.New("docmodel: assemble cancelled")

// Config is the immutable configuration of one documentation run.
type Config struct {
	// Filter selects the documented methods. Nil keeps every method.
	Filter *filter.Filter
	// Precision is the number of decimals in class percentages.
	// Unsupported values use stats.DefaultPrecision.
	Precision stats.Precision
	// Replacements are applied to every narrative in order.
	Replacements []narrative.Replacement
	// Settings are passed through to the renderer. An empty title uses domain.DefaultTitle.
	Settings domain.Settings
}

// Options holds library knobs that do not change the produced model.
type Options struct {
	Decomposer naming.Decomposer
	Detector   assertion.Detector
	Logger     *zap.SugaredLogger
	Workers    int
}

// Option is a functional option for configuring an Assembler.
type Option func(*Options)

// WithDecomposer sets the name decomposer used for narratives.
func WithDecomposer(d naming.Decomposer) Option {
	return func(o *Options) {
		o.Decomposer = d
	}
}

// WithDetector sets the assertion detector used for narratives.
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

// WithWorkers sets the number of concurrent narrative composers.
// Negative values are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// Assembler builds DocumentModels. It is safe for concurrent use.
type Assembler struct {
	filter    *filter.Filter
	precision stats.Precision
	settings  domain.Settings
	composer  *narrative.Composer
	logger    *zap.SugaredLogger
}

// New creates an assembler for cfg.
func New(cfg Config, opts ...Option) *Assembler {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop().Sugar()
	}

	f := cfg.Filter
	if f == nil {
		f = filter.KeepAll()
	}

	precision := cfg.Precision
	if !precision.Valid() {
		precision = stats.DefaultPrecision
	}

	settings := cfg.Settings
	if settings.Title == "" {
		settings.Title = domain.DefaultTitle
	}

	composer := narrative.NewComposer(
		narrative.WithDecomposer(options.Decomposer),
		narrative.WithDetector(options.Detector),
		narrative.WithLogger(options.Logger),
		narrative.WithReplacements(cfg.Replacements...),
		narrative.WithWorkers(options.Workers),
	)

	return &Assembler{
		filter:    f,
		precision: precision,
		settings:  settings,
		composer:  composer,
		logger:    options.Logger,
	}
}

// Assemble filters the methods of classes, composes their narratives and
// computes run statistics. Classes left without methods are omitted.
// Class and method order follow the input order.
func (a *Assembler) Assemble(ctx context.Context, classes []domain.ClassRecord) (*domain.DocumentModel, error) {
	type span struct {
		class      domain.ClassRecord
		start, end int
	}

	var (
		spans   []span
		records []domain.MethodRecord
		dropped int
	)
	for _, c := range classes {
		kept := a.filter.Apply(c.Methods)
		dropped += c.CountMethods() - len(kept)
		if len(kept) == 0 {
			a.logger.Debugw("skipping class without documented methods",
				"class", c.ClassName,
				"package", c.PackageName,
			)
			continue
		}
		spans = append(spans, span{class: c, start: len(records), end: len(records) + len(kept)})
		records = append(records, kept...)
	}

	narratives, err := a.composer.ComposeAll(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssembleCancelled, err)
	}

	model := &domain.DocumentModel{
		Classes:  make([]domain.ClassAggregate, 0, len(spans)),
		Settings: a.settings,
	}
	for _, s := range spans {
		model.Classes = append(model.Classes,
			domain.NewClassAggregate(s.class.ClassName, s.class.PackageName, narratives[s.start:s.end:s.end]))
	}
	model.TotalMethods = model.CountMethods()

	stats.ApplyClassPercentages(model.Classes, a.precision)

	if a.settings.TagsChart {
		model.Tags = stats.AggregateClassTags(model.Classes)
	}

	a.logger.Debugw("assembled document model",
		"classes", len(model.Classes),
		"methods", model.TotalMethods,
		"filtered", dropped,
	)

	return model, nil
}
