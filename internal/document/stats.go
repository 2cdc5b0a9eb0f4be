package document

import (
	"strings"
	"unicode/utf8"
)

// Stats contains size metrics for a document body
type Stats struct {
	Chars           int `json:"chars"`
	Words           int `json:"words"`
	Lines           int `json:"lines"`
	Sentences       int `json:"sentences"`
	EstimatedTokens int `json:"estimated_tokens"`
}

// ComputeStats computes size metrics for text
func ComputeStats(text string) Stats {
	s := Stats{
		Chars: utf8.RuneCountInString(text),
		Words: len(strings.Fields(text)),
	}
	if text == "" {
		return s
	}

	s.Lines = strings.Count(text, "\n") + 1
	if strings.HasSuffix(text, "\n") {
		s.Lines--
	}

	// Estimate tokens (rough: ~4 bytes per token)
	s.EstimatedTokens = len(text) / 4

	inSentence := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if inSentence {
				s.Sentences++
				inSentence = false
			}
		case ' ', '\t', '\n', '\r':
		default:
			inSentence = true
		}
	}
	if inSentence {
		s.Sentences++
	}

	return s
}
