// Package engine is the entry point for document analysis. It wraps the
// quality scorer and strategic analyzer so that every call yields a result
// envelope instead of an error or a panic.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/pthm/clarity/internal/quality"
	"github.com/pthm/clarity/internal/result"
	"github.com/pthm/clarity/internal/ruleset"
	"github.com/pthm/clarity/internal/strategy"
)

// Progress receives per-document notifications during a batch run.
// Implementations must be safe for concurrent use.
type Progress interface {
	DocumentStart(name string)
	DocumentDone(defects int, failed bool)
}

type noProgress struct{}

func (noProgress) DocumentStart(string)     {}
func (noProgress) DocumentDone(int, bool) {}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used to report failures
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithConcurrency bounds how many documents Run analyses at once. Values
// below one select the number of CPUs.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		e.concurrency = n
	}
}

// WithProgress sets the batch progress sink
func WithProgress(p Progress) Option {
	return func(e *Engine) {
		if p != nil {
			e.progress = p
		}
	}
}

// Engine runs analyses over a single rule set. It is safe for concurrent use.
type Engine struct {
	scorer   *quality.Scorer
	analyzer *strategy.Analyzer

	// initErr is reported by every call when the rule set could not be used
	initErr error

	logger      *slog.Logger
	concurrency int
	progress    Progress
}

// New creates an engine. A rule set that fails to compile does not make New
// fail; instead every analysis returns a failure result describing it.
func New(rs *ruleset.RuleSet, opts ...Option) *Engine {
	e := &Engine{
		logger:      slog.New(slog.DiscardHandler),
		concurrency: runtime.NumCPU(),
		progress:    noProgress{},
	}
	for _, opt := range opts {
		opt(e)
	}

	scorer, err := quality.NewScorer(rs)
	if err != nil {
		e.initErr = err
		e.logger.Error("rule set unusable", "error", err)
		return e
	}
	analyzer, err := strategy.NewAnalyzer(rs)
	if err != nil {
		e.initErr = err
		e.logger.Error("rule set unusable", "error", err)
		return e
	}

	e.scorer = scorer
	e.analyzer = analyzer
	return e
}

// Err returns the error that prevents the engine from analysing, if any
func (e *Engine) Err() error {
	return e.initErr
}

// ReviewQuality reviews text for defects and quality
func (e *Engine) ReviewQuality(text string) result.Result[quality.Report] {
	return guard(e, "review", func() (*quality.Report, error) {
		return e.scorer.Review(text)
	})
}

// AnalyzeStrategy scores text for strategic effectiveness. ctx may be nil.
func (e *Engine) AnalyzeStrategy(text string, ctx strategy.Context) result.Result[strategy.Report] {
	return guard(e, "strategy", func() (*strategy.Report, error) {
		return e.analyzer.Analyze(text, ctx)
	})
}

// guard runs fn and converts errors and panics into a failure result
func guard[T any](e *Engine, op string, fn func() (*T, error)) (res result.Result[T]) {
	if e.initErr != nil {
		return result.Failure[T](e.initErr)
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("internal error: %v", r)
			e.logger.Error("analysis panicked", "op", op, "error", err)
			res = result.Failure[T](err)
		}
	}()

	v, err := fn()
	if err == nil && v == nil {
		err = errors.New("analysis produced no report")
	}
	if err != nil {
		e.logger.Error("analysis failed", "op", op, "error", err)
		return result.Failure[T](err)
	}

	e.logger.Debug("analysis complete", "op", op)
	return result.Success(*v)
}
