package classifier

import (
	"strings"

	"github.com/pthm/clarity/internal/ruleset"
)

// HeuristicClassifier uses keyword heuristics for classification. Categories
// are checked in priority order and the first match wins.
type HeuristicClassifier struct {
	categories []ruleset.Category
	fallback   DocumentType
}

// NewHeuristicClassifier creates a new heuristic classifier
func NewHeuristicClassifier(c ruleset.Classification) *HeuristicClassifier {
	return &HeuristicClassifier{
		categories: c.Categories,
		fallback:   DocumentType(c.Fallback),
	}
}

// Classify returns the first category whose keywords appear in the
// lowercased text, or the fallback type
func (c *HeuristicClassifier) Classify(text string) DocumentType {
	contentLower := strings.ToLower(text)

	for _, cat := range c.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(contentLower, strings.ToLower(kw)) {
				return DocumentType(cat.Type)
			}
		}
	}

	return c.fallback
}
