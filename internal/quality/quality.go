// Package quality scores the correctness and polish of a business document.
package quality

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pthm/clarity/internal/classifier"
	"github.com/pthm/clarity/internal/detector"
	"github.com/pthm/clarity/internal/ruleset"
)

const (
	baseScore        = 100.0
	defectPenalty    = 5.0
	lengthBonus      = 5.0
	lengthBonusMin   = 500 // characters
	financialBonus   = 10.0
	grammarPenalty   = 10.0
	professionalBase = 85.0
	professionalHit  = 3.0
	professionalCap  = 15.0
	informalPenalty  = 10.0
	proofreadLimit   = 5
	shortDocument    = 200
)

// Recommendation messages, in the order they are checked
const (
	RecommendProofread  = "Consider thorough proofreading before final submission"
	RecommendVerifyMath = "Verify all mathematical calculations and financial projections"
	RecommendSpellCheck = "Use spell-check tools to catch common spelling mistakes"
	RecommendGrammar    = "Review grammar, especially possessive forms and contractions"
	RecommendExpand     = "Consider expanding with more detailed information"
	RecommendTimelines  = "Include specific timelines and deadlines"
)

// Dimensions are the four quality sub-scores
type Dimensions struct {
	Grammar         float64 `json:"grammar"`
	Clarity         float64 `json:"clarity"`
	Professionalism float64 `json:"professionalism"`
	Completeness    float64 `json:"completeness"`
}

// Score is a named dimension score
type Score struct {
	Name  string
	Value float64
}

// List returns the dimensions in report order
func (d Dimensions) List() []Score {
	return []Score{
		{"grammar", d.Grammar},
		{"clarity", d.Clarity},
		{"professionalism", d.Professionalism},
		{"completeness", d.Completeness},
	}
}

// Report is the outcome of a quality review
type Report struct {
	OverallScore               float64                 `json:"overall_score"`
	DocumentType               classifier.DocumentType `json:"document_type"`
	Reviewer                   string                  `json:"reviewer"`
	ErrorsFound                *detector.Inventory     `json:"errors_found"`
	ImprovementRecommendations []string                `json:"improvement_recommendations"`
	QualityDimensions          Dimensions              `json:"quality_dimensions"`
}

// Scorer reviews documents for quality. It is safe for concurrent use.
type Scorer struct {
	rules      *ruleset.QualityRules
	detector   *detector.Detector
	classifier classifier.Classifier
}

// NewScorer creates a scorer over a rule set
func NewScorer(rs *ruleset.RuleSet) (*Scorer, error) {
	if rs == nil {
		return nil, errors.New("quality: nil rule set")
	}
	d, err := detector.New(rs)
	if err != nil {
		return nil, fmt.Errorf("quality: %w", err)
	}
	return &Scorer{
		rules:      &rs.Quality,
		detector:   d,
		classifier: classifier.NewHeuristicClassifier(rs.Classification),
	}, nil
}

// Review runs defect detection, scoring, classification and recommendation
// generation over text
func (s *Scorer) Review(text string) (*Report, error) {
	defects := s.detector.Detect(text)

	return &Report{
		OverallScore:               s.overallScore(text, defects),
		DocumentType:               s.classifier.Classify(text),
		Reviewer:                   s.rules.Reviewer,
		ErrorsFound:                defects,
		ImprovementRecommendations: s.recommendations(text, defects),
		QualityDimensions: Dimensions{
			Grammar:         s.scoreGrammar(text),
			Clarity:         scoreClarity(text),
			Professionalism: s.scoreProfessionalism(text),
			Completeness:    s.scoreCompleteness(text),
		},
	}, nil
}

func (s *Scorer) overallScore(text string, defects *detector.Inventory) float64 {
	score := baseScore - defectPenalty*float64(defects.Total())

	if utf8.RuneCountInString(text) > lengthBonusMin {
		score += lengthBonus
	}

	if strings.Contains(text, "$") && containsAny(strings.ToLower(text), s.rules.FinancialKeywords) {
		score += financialBonus
	}

	return clamp(score, 0, 100)
}

func (s *Scorer) recommendations(text string, defects *detector.Inventory) []string {
	recs := []string{}

	if defects.Total() > proofreadLimit {
		recs = append(recs, RecommendProofread)
	}
	if defects.Count(detector.Calculation) > 0 {
		recs = append(recs, RecommendVerifyMath)
	}
	if defects.Count(detector.Spelling) > 0 {
		recs = append(recs, RecommendSpellCheck)
	}
	if defects.Count(detector.Grammar) > 0 {
		recs = append(recs, RecommendGrammar)
	}
	if utf8.RuneCountInString(text) < shortDocument {
		recs = append(recs, RecommendExpand)
	}
	if !containsAny(strings.ToLower(text), s.rules.TimelineKeywords) {
		recs = append(recs, RecommendTimelines)
	}

	return recs
}

// scoreGrammar re-runs detection so the dimension stands on its own
func (s *Scorer) scoreGrammar(text string) float64 {
	grammarErrors := s.detector.Detect(text).Count(detector.Grammar)
	return max(0, 100-grammarPenalty*float64(grammarErrors))
}

// scoreClarity rates the mean words per '.'-delimited fragment. Optimal
// sentence length is 15-20 words.
func scoreClarity(text string) float64 {
	sentences := strings.Split(text, ".")

	avg := 0.0
	if len(sentences) > 0 {
		words := 0
		for _, s := range sentences {
			words += len(strings.Fields(s))
		}
		avg = float64(words) / float64(len(sentences))
	}

	switch {
	case avg >= 15 && avg <= 20:
		return 95
	case avg >= 10 && avg <= 25:
		return 85
	default:
		return 70
	}
}

func (s *Scorer) scoreProfessionalism(text string) float64 {
	contentLower := strings.ToLower(text)

	score := professionalBase
	score += min(professionalCap, professionalHit*float64(countHits(contentLower, s.rules.ProfessionalWords)))
	score -= informalPenalty * float64(countHits(contentLower, s.rules.InformalWords))

	return clamp(score, 0, 100)
}

func (s *Scorer) scoreCompleteness(text string) float64 {
	if len(s.rules.Sections) == 0 {
		return 0
	}
	found := countHits(strings.ToLower(text), s.rules.Sections)
	return float64(found) / float64(len(s.rules.Sections)) * 100
}

// countHits counts the distinct words that occur in contentLower
func countHits(contentLower string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(contentLower, strings.ToLower(w)) {
			n++
		}
	}
	return n
}

func containsAny(contentLower string, words []string) bool {
	return countHits(contentLower, words) > 0
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
