// Package reporter renders analysis results for people and machines.
package reporter

import (
	"errors"

	"github.com/pthm/clarity/internal/engine"
)

// ErrAnalysisFailed is returned by reporters after rendering when at least
// one result was a failure
var ErrAnalysisFailed = errors.New("analysis failed")

// Reporter defines the interface for outputting analysis results
type Reporter interface {
	// Report outputs the results, one item per document
	Report(items []engine.Item) error
}

// Summary holds summary statistics for a run
type Summary struct {
	Documents int
	Succeeded int
	Failed    int
	Defects   int
}

// ComputeSummary computes summary statistics from items
func ComputeSummary(items []engine.Item) Summary {
	s := Summary{Documents: len(items)}

	for _, item := range items {
		s.Defects += item.Defects()
		if item.Failed() {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}

	return s
}

func resultErr(s Summary) error {
	if s.Failed > 0 {
		return ErrAnalysisFailed
	}
	return nil
}
