package engine

import (
	"context"

	"github.com/pthm/clarity/internal/document"
	"github.com/pthm/clarity/internal/quality"
	"github.com/pthm/clarity/internal/result"
	"github.com/pthm/clarity/internal/strategy"
	"golang.org/x/sync/errgroup"
)

// Mode selects which analyses Run performs
type Mode int

const (
	ModeReview Mode = 1 << iota
	ModeStrategy

	ModeAll = ModeReview | ModeStrategy
)

// Item is the outcome of analysing one document. Quality and Strategy are set
// according to the Mode passed to Run; Context is the client context the
// strategic analysis received.
type Item struct {
	Document *document.Document
	Context  strategy.Context
	Quality  *result.Result[quality.Report]
	Strategy *result.Result[strategy.Report]
}

// Defects counts the defects of a successful quality review
func (it Item) Defects() int {
	if it.Quality == nil {
		return 0
	}
	if report, ok := it.Quality.Value(); ok {
		return report.ErrorsFound.Total()
	}
	return 0
}

// Failed reports whether any analysis of the document failed
func (it Item) Failed() bool {
	return (it.Quality != nil && !it.Quality.Succeeded()) ||
		(it.Strategy != nil && !it.Strategy.Succeeded())
}

// Run analyses docs concurrently and returns one item per document in input
// order. Cancellation is observed between documents: an analysis that has
// started always completes. When ctx is cancelled Run returns its error.
func (e *Engine) Run(ctx context.Context, docs []*document.Document, mode Mode, extra strategy.Context) ([]Item, error) {
	items := make([]Item, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, doc := range docs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			e.progress.DocumentStart(doc.Name())
			items[i] = e.analyze(doc, mode, extra)
			e.progress.DocumentDone(items[i].Defects(), items[i].Failed())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (e *Engine) analyze(doc *document.Document, mode Mode, extra strategy.Context) Item {
	item := Item{Document: doc}

	if mode&ModeReview != 0 {
		r := e.ReviewQuality(doc.Body)
		item.Quality = &r
	}
	if mode&ModeStrategy != 0 {
		item.Context = MergeContext(doc.Context(), extra)
		r := e.AnalyzeStrategy(doc.Body, item.Context)
		item.Strategy = &r
	}

	e.logger.Debug("document analysed", "path", doc.Name(), "words", doc.Stats.Words)
	return item
}

// MergeContext combines frontmatter metadata with caller-supplied values.
// Caller values win.
func MergeContext(frontmatter map[string]any, extra strategy.Context) strategy.Context {
	merged := make(strategy.Context, len(frontmatter)+len(extra))
	for k, v := range frontmatter {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
