// Package narrative composes human-readable descriptions of test methods from
// their names and assertion statements.
package narrative

import (
	"context"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/specvital/testdoc/pkg/assertion"
	"github.com/specvital/testdoc/pkg/domain"
	"github.com/specvital/testdoc/pkg/naming"
)

// Composer builds one narrative per method record.
// A Composer holds no mutable state and is safe for concurrent use.
type Composer struct {
	decomposer   naming.Decomposer
	translator   *assertion.Translator
	replacements []Replacement
	workers      int
	logger       *zap.SugaredLogger
}

// NewComposer creates a composer with the given options.
func NewComposer(opts ...Option) *Composer {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	applyDefaults(options)

	return &Composer{
		decomposer:   options.Decomposer,
		translator:   assertion.NewTranslator(options.Detector),
		replacements: options.Replacements,
		workers:      options.Workers,
		logger:       options.Logger,
	}
}

// Compose returns the description of rec. The result is never empty and is
// identical for identical records.
func (c *Composer) Compose(rec domain.MethodRecord) string {
	lines := rec.Lines()

	// Hand-written comments are superseded by the generated description.
	if comments := rec.Comments(); len(comments) > 0 {
		c.logger.Debugw("discarding hand-written comments",
			"method", rec.Name,
			"count", len(comments),
		)
	}

	var b strings.Builder
	tokens := c.decomposer.Decompose(rec.Name)

	switch tokens.Kind {
	case domain.NamingGherkin:
		b.WriteString("Method: ")
		b.WriteString(rec.Name)
		b.WriteString("\n\n")
		if tokens.HasTestCaseID() {
			b.WriteString(tokens.TestCaseID)
			b.WriteString("\n")
		}
		b.WriteString(tokens.Phrase)
		b.WriteString("\n\n")
	default:
		b.WriteString("This test ")
		if tokens.HasTestCaseID() {
			b.WriteString("(")
			b.WriteString(tokens.TestCaseID)
			b.WriteString(") ")
		}
		b.WriteString(strings.ReplaceAll(tokens.Phrase, "_", " "))
		b.WriteString(".\n\n")
	}

	for _, line := range lines {
		if !isAssertionCandidate(line) {
			continue
		}
		if sentence := c.translator.Translate(line); sentence != "" {
			b.WriteString("- ")
			b.WriteString(sentence)
			b.WriteString("\n")
		}
	}

	return c.applyReplacements(b.String())
}

// Narrate returns the full narrative for rec.
func (c *Composer) Narrate(rec domain.MethodRecord) domain.MethodNarrative {
	var tags []string
	if len(rec.Tags) > 0 {
		tags = make([]string, len(rec.Tags))
		copy(tags, rec.Tags)
	}
	return domain.MethodNarrative{
		Description: c.Compose(rec),
		Name:        rec.Name,
		Tags:        tags,
	}
}

// ComposeAll narrates recs concurrently and returns the narratives in input order.
// The only error returned is the context error when ctx is done before all
// records were composed.
func (c *Composer) ComposeAll(ctx context.Context, recs []domain.MethodRecord) ([]domain.MethodNarrative, error) {
	narratives := make([]domain.MethodNarrative, len(recs))
	if len(recs) == 0 {
		return narratives, nil
	}

	workers := c.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(ctx)

	for i, rec := range recs {
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			// Each goroutine owns its slot, so no lock is needed.
			narratives[i] = c.Narrate(rec)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return narratives, nil
}

func (c *Composer) applyReplacements(text string) string {
	for _, r := range c.replacements {
		text = strings.ReplaceAll(text, r.Pattern, r.Replacement)
	}
	return text
}

func isAssertionCandidate(line string) bool {
	return strings.Contains(line, "assert") || strings.Contains(line, "Assert.")
}
