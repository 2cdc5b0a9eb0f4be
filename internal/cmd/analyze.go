package cmd

import (
	"context"
	"fmt"
	"slices"

	"github.com/pthm/clarity/internal/document"
	"github.com/pthm/clarity/internal/engine"
	"github.com/pthm/clarity/internal/strategy"
	"github.com/pthm/clarity/internal/ui"
)

// documentArgs maps command arguments to document paths; none means stdin
func documentArgs(args []string) []string {
	if len(args) == 0 {
		return []string{document.StdinPath}
	}
	return args
}

// loadDocuments reads every path, stopping at the first failure
func loadDocuments(paths []string, progress *ui.ProgressController) ([]*document.Document, error) {
	docs := make([]*document.Document, 0, len(paths))
	for _, p := range paths {
		progress.SetOperation(p)
		doc, err := document.Load(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// runAnalysis loads rules and documents, analyses them and reports
func runAnalysis(ctx context.Context, args []string, mode engine.Mode, extra strategy.Context) error {
	paths := documentArgs(args)
	u := GetUI()
	logger := newLogger()

	// Progress reads the terminal, so it cannot share stdin with a document
	var progress *ui.ProgressController
	if !slices.Contains(paths, document.StdinPath) {
		progress = u.StartProgress()
	}
	defer func() {
		if progress != nil {
			progress.Done(nil)
		}
	}()

	// Stage 1: Load rule set
	progress.SetStage(ui.StageLoadRules)
	rs, err := loadRules()
	if err != nil {
		return err
	}
	logger.Debug("rule set loaded", "name", rs.Name)

	// Stage 2: Read documents
	progress.SetStage(ui.StageReadDocuments)
	docs, err := loadDocuments(paths, progress)
	if err != nil {
		return err
	}

	// Stage 3: Analyse
	progress.SetStage(ui.StageAnalyze)
	progress.SetDocumentCount(len(docs))

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithConcurrency(concurrency),
	}
	if progress != nil {
		opts = append(opts, engine.WithProgress(progress))
	}
	eng := engine.New(rs, opts...)

	items, err := eng.Run(ctx, docs, mode, extra)
	if err != nil {
		return err
	}

	// Stop progress before reporting
	if progress != nil {
		progress.Done(nil)
		progress = nil
	}

	return newReporter(u).Report(items)
}
