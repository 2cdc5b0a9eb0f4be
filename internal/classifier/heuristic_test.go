package classifier

import (
	"testing"

	"github.com/pthm/clarity/internal/ruleset"
)

func TestHeuristicClassifier_Classify(t *testing.T) {
	c := NewHeuristicClassifier(ruleset.Default().Classification)

	tests := []struct {
		name     string
		text     string
		expected DocumentType
	}{
		{
			name:     "proposal keywords",
			text:     "This proposal outlines the investment required.",
			expected: BusinessProposal,
		},
		{
			name:     "executive summary",
			text:     "EXECUTIVE SUMMARY\nWe grew.",
			expected: BusinessProposal,
		},
		{
			name:     "proposal wins over report",
			text:     "The analysis supports this proposal.",
			expected: BusinessProposal,
		},
		{
			name:     "report",
			text:     "Our findings are summarised below.",
			expected: BusinessReport,
		},
		{
			name:     "communication",
			text:     "Thanks for your email yesterday.",
			expected: BusinessCommunication,
		},
		{
			name:     "report wins over communication",
			text:     "Please read the attached report before replying to this message.",
			expected: BusinessReport,
		},
		{
			name:     "no keywords",
			text:     "Lunch is at noon.",
			expected: GeneralDocument,
		},
		{
			name:     "empty",
			text:     "",
			expected: GeneralDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.text); got != tt.expected {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestHeuristicClassifier_CustomCategories(t *testing.T) {
	c := NewHeuristicClassifier(ruleset.Classification{
		Fallback: "other",
		Categories: []ruleset.Category{
			{Type: "invoice", Keywords: []string{"Amount Due"}},
		},
	})

	if got := c.Classify("amount due: $40"); got != "invoice" {
		t.Errorf("Classify() = %q, want invoice", got)
	}
	if got := c.Classify("hello"); got != "other" {
		t.Errorf("Classify() = %q, want other", got)
	}
}
