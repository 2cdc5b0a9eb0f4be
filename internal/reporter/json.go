package reporter

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/pthm/clarity/internal/document"
	"github.com/pthm/clarity/internal/engine"
	"github.com/pthm/clarity/internal/quality"
	"github.com/pthm/clarity/internal/result"
	"github.com/pthm/clarity/internal/strategy"
)

// JSONReporter outputs results as JSON
type JSONReporter struct {
	w     io.Writer
	runID func() string
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w, runID: uuid.NewString}
}

// JSONOutput represents the JSON output format
type JSONOutput struct {
	RunID   string       `json:"run_id"`
	Results []JSONResult `json:"results"`
}

// JSONResult is the output for one document
type JSONResult struct {
	Path     string                          `json:"path"`
	Stats    document.Stats                  `json:"stats"`
	Context  strategy.Context                `json:"context,omitempty"`
	Quality  *result.Result[quality.Report]  `json:"quality,omitempty"`
	Strategy *result.Result[strategy.Report] `json:"strategy,omitempty"`
}

// Report outputs items as a single JSON document
func (r *JSONReporter) Report(items []engine.Item) error {
	output := JSONOutput{
		RunID:   r.runID(),
		Results: make([]JSONResult, 0, len(items)),
	}

	for _, item := range items {
		output.Results = append(output.Results, JSONResult{
			Path:     item.Document.Name(),
			Stats:    item.Document.Stats,
			Context:  item.Context,
			Quality:  item.Quality,
			Strategy: item.Strategy,
		})
	}

	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return err
	}

	return resultErr(ComputeSummary(items))
}
