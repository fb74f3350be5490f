package analyzer

import (
	"context"
	"sync"
	"time"

	"github.com/janetyc/citecheck/internal/citations"
	"github.com/janetyc/citecheck/internal/resolver"
	"github.com/janetyc/citecheck/pkg/styles"
)

// Options tune an analysis run.
type Options struct {
	// Workers bounds concurrent identifier checks.
	Workers int
	// CheckTimeout caps each individual identifier check.
	CheckTimeout time.Duration
	// Sentences also collects the body sentences carrying citations.
	Sentences bool
}

const defaultWorkers = 5

// Analyzer runs the full citation pipeline over extracted text.
type Analyzer struct {
	registry  *styles.Registry
	validator *Validator
	opts      Options
}

// New creates an analyzer. A nil registry uses the built-in styles; a
// nil validator produces skipped validation results.
func New(registry *styles.Registry, validator *Validator, opts Options) *Analyzer {
	if registry == nil {
		registry = styles.Default()
	}
	if validator == nil {
		validator = NewValidator(nil, nil)
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.CheckTimeout <= 0 {
		opts.CheckTimeout = resolver.DefaultTimeout
	}
	return &Analyzer{registry: registry, validator: validator, opts: opts}
}

// Analyze runs the pipeline: split off the reference section, segment
// it into entries, classify and decompose each entry, check identifiers
// concurrently, and scan the body for in-text markers. It always
// produces a Result; per-reference problems are recorded in place.
func (a *Analyzer) Analyze(ctx context.Context, text string) *Result {
	start := time.Now()

	section := citations.Split(text)
	refs := citations.Segment(section.ReferencesRaw)

	result := &Result{
		Body:          section.Body,
		ReferencesRaw: section.ReferencesRaw,
		References:    make([]ReferenceAnalysis, len(refs)),
		InText:        citations.ScanInText(section.Body),
		StyleCounts:   make(map[string]int),
		GeneratedAt:   start,
	}
	if a.opts.Sentences {
		result.CitationSentences = citations.ScanCitationSentences(section.Body)
	}

	for i, ref := range refs {
		classification := a.registry.Classify(ref.Text)
		result.References[i] = ReferenceAnalysis{
			Reference:      ref,
			Classification: classification,
			Components:     styles.Extract(ref.Text, classification.Style),
			FormatIssues:   styles.FormatIssues(ref.Text, classification.Style),
		}
		result.StyleCounts[classification.Style]++
	}

	a.validateAll(ctx, refs, result)

	result.Elapsed = time.Since(start)
	return result
}

// validateAll fans reference checks out over a bounded worker pool and
// writes each outcome back by index.
func (a *Analyzer) validateAll(ctx context.Context, refs []citations.RawReference, result *Result) {
	if len(refs) == 0 {
		return
	}

	indexes := make(chan int, len(refs))
	var wg sync.WaitGroup

	for w := 0; w < a.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				checkCtx, cancel := context.WithTimeout(ctx, a.opts.CheckTimeout)
				result.References[i].Validation = a.validator.Validate(checkCtx, refs[i].Text)
				cancel()
			}
		}()
	}

	for i := range refs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()
}
