// Package strategy scores how persuasive and proposal-ready a business
// document is, using keyword and pattern heuristics.
package strategy

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pthm/clarity/internal/ruleset"
)

const (
	valueHit          = 15.0
	valueFloor        = 20.0
	credibilityHit    = 15.0
	credibilityFloor  = 30.0
	urgencyHit        = 20.0
	triggerHit        = 10.0
	motivatorMinimum  = 20.0
	persuasiveMinimum = 50.0
	detailedWordCount = 300

	roiClear       = 95.0
	roiFigures     = 75.0
	roiMentioned   = 60.0
	roiUnsupported = 30.0
)

const (
	DifferentiationStrong   = "strong"
	DifferentiationModerate = "moderate"

	MotivatorUrgency      = "urgency"
	MotivatorLossAversion = "loss_aversion"
	MotivatorGrowth       = "growth_opportunity"
)

var (
	persuasiveTriggers = []string{"authority", "scarcity", "social_proof"}
	baselineTriggers   = []string{"clarity", "trust"}
)

// Strategic recommendations, in the order they are checked
const (
	RecommendROI             = "Add specific ROI calculations and financial projections"
	RecommendMetrics         = "Include percentage-based metrics for credibility"
	RecommendSocialProof     = "Add client testimonials or case study references"
	RecommendExpand          = "Expand content with more detailed implementation plan"
	RecommendRiskMitigation  = "Include risk mitigation strategies"
	RecommendDifferentiation = "Add competitive differentiation section"
)

// Optimization opportunities, in the order they are checked
const (
	OpportunityROI        = "Highlight exceptional ROI as primary value proposition"
	OpportunitySpeed      = "Emphasize rapid implementation timeline"
	OpportunityMultiAgent = "Showcase innovative multi-agent approach"
	OpportunityUrgency    = "Create urgency with limited-time offer"
	OpportunitySocial     = "Add social proof with industry statistics"
)

// Context is optional caller metadata such as organization, urgency or
// industry. It is accepted by Analyze but does not change any score.
type Context map[string]any

// Strength holds the four proposal strength sub-scores
type Strength struct {
	ValueProposition float64 `json:"value_proposition"`
	Credibility      float64 `json:"credibility"`
	Urgency          float64 `json:"urgency"`
	ROIClarity       float64 `json:"roi_clarity"`
}

// Score is a named sub-score
type Score struct {
	Name  string
	Value float64
}

// List returns the sub-scores in report order
func (s Strength) List() []Score {
	return []Score{
		{"value_proposition", s.ValueProposition},
		{"credibility", s.Credibility},
		{"urgency", s.Urgency},
		{"roi_clarity", s.ROIClarity},
	}
}

// Positioning describes competitive positioning
type Positioning struct {
	DifferentiationStrength string   `json:"differentiation_strength"`
	CompetitiveAdvantages   []string `json:"competitive_advantages"`
	MarketPositioning       string   `json:"market_positioning"`
}

// Psychology summarises persuasion triggers found in the document
type Psychology struct {
	PersuasionScore       float64  `json:"persuasion_score"`
	PrimaryMotivators     []string `json:"primary_motivators"`
	PsychologicalTriggers []string `json:"psychological_triggers"`
}

// Report is the outcome of a strategic analysis
type Report struct {
	ProposalReadinessScore     float64     `json:"proposal_readiness_score"`
	ProposalStrengthAssessment Strength    `json:"proposal_strength_assessment"`
	CompetitivePositioning     Positioning `json:"competitive_positioning"`
	ClientPsychologyInsights   Psychology  `json:"client_psychology_insights"`
	StrategicRecommendations   []string    `json:"strategic_recommendations"`
	OptimizationOpportunities  []string    `json:"optimization_opportunities"`
}

// Analyzer performs strategic analysis. It is safe for concurrent use.
type Analyzer struct {
	rules *ruleset.StrategyRules
}

// NewAnalyzer creates an analyzer over a rule set, compiling it if necessary
func NewAnalyzer(rs *ruleset.RuleSet) (*Analyzer, error) {
	if rs == nil {
		return nil, errors.New("strategy: nil rule set")
	}
	if err := rs.Compile(); err != nil {
		return nil, fmt.Errorf("strategy: %w", err)
	}
	return &Analyzer{rules: &rs.Strategy}, nil
}

// Analyze scores text for proposal readiness and persuasion. A nil ctx is
// treated as empty.
func (a *Analyzer) Analyze(text string, ctx Context) (*Report, error) {
	if ctx == nil {
		ctx = Context{}
	}
	contentLower := strings.ToLower(text)

	return &Report{
		ProposalReadinessScore: a.proposalStrength(text),
		ProposalStrengthAssessment: Strength{
			ValueProposition: clamp(valueHit*float64(countHits(contentLower, a.rules.ValueWords)), valueFloor, 100),
			Credibility:      clamp(credibilityHit*float64(countHits(contentLower, a.rules.CredibilityWords)), credibilityFloor, 100),
			Urgency:          clamp(urgencyHit*float64(countHits(contentLower, a.rules.UrgencyWords)), 0, 100),
			ROIClarity:       a.roiClarity(text, contentLower),
		},
		CompetitivePositioning:    a.positioning(contentLower, ctx),
		ClientPsychologyInsights:  a.psychology(contentLower),
		StrategicRecommendations:  a.recommendations(text, contentLower),
		OptimizationOpportunities: a.opportunities(text, contentLower),
	}, nil
}

// proposalStrength is the share of strength factors present, scaled to 100
func (a *Analyzer) proposalStrength(text string) float64 {
	factors := a.rules.StrengthFactors
	if len(factors) == 0 {
		return 0
	}

	present := 0
	for i := range factors {
		if factors[i].CompiledRegex().MatchString(text) {
			present++
		}
	}
	return float64(present) / float64(len(factors)) * 100
}

func (a *Analyzer) roiClarity(text, contentLower string) float64 {
	roi := &a.rules.ROI
	switch {
	case roi.FiguresRegex().MatchString(text) && roi.RatioRegex().MatchString(text):
		return roiClear
	case roi.FiguresRegex().MatchString(text):
		return roiFigures
	case strings.Contains(contentLower, strings.ToLower(roi.Keyword)):
		return roiMentioned
	default:
		return roiUnsupported
	}
}

// positioning ignores ctx; the context only flavours presentation
func (a *Analyzer) positioning(contentLower string, _ Context) Positioning {
	strength := DifferentiationModerate
	if countHits(contentLower, a.rules.Differentiators) > 0 {
		strength = DifferentiationStrong
	}

	return Positioning{
		DifferentiationStrength: strength,
		CompetitiveAdvantages:   slices.Clone(a.rules.CompetitiveAdvantages),
		MarketPositioning:       a.rules.MarketPositioning,
	}
}

// psychology sums trigger occurrences, so a repeated trigger word keeps
// adding weight
func (a *Analyzer) psychology(contentLower string) Psychology {
	urgency := triggerHit * float64(countOccurrences(contentLower, a.rules.Triggers.Urgency))
	fear := triggerHit * float64(countOccurrences(contentLower, a.rules.Triggers.Fear))
	gain := triggerHit * float64(countOccurrences(contentLower, a.rules.Triggers.Gain))

	persuasion := min(100, urgency+fear+gain)

	motivators := []string{}
	if urgency > motivatorMinimum {
		motivators = append(motivators, MotivatorUrgency)
	}
	if fear > motivatorMinimum {
		motivators = append(motivators, MotivatorLossAversion)
	}
	if gain > motivatorMinimum {
		motivators = append(motivators, MotivatorGrowth)
	}

	triggers := baselineTriggers
	if persuasion > persuasiveMinimum {
		triggers = persuasiveTriggers
	}

	return Psychology{
		PersuasionScore:       persuasion,
		PrimaryMotivators:     motivators,
		PsychologicalTriggers: slices.Clone(triggers),
	}
}

func (a *Analyzer) recommendations(text, contentLower string) []string {
	recs := []string{}

	if !strings.Contains(contentLower, strings.ToLower(a.rules.ROI.Keyword)) {
		recs = append(recs, RecommendROI)
	}
	if !a.rules.PercentageRegex().MatchString(text) {
		recs = append(recs, RecommendMetrics)
	}
	if countHits(contentLower, a.rules.SocialProofWords) == 0 {
		recs = append(recs, RecommendSocialProof)
	}
	if len(strings.Fields(text)) < detailedWordCount {
		recs = append(recs, RecommendExpand)
	}

	return append(recs, RecommendRiskMitigation, RecommendDifferentiation)
}

func (a *Analyzer) opportunities(text, contentLower string) []string {
	opps := []string{}

	if strings.Contains(text, "$") && strings.Contains(contentLower, strings.ToLower(a.rules.ROI.Keyword)) {
		opps = append(opps, OpportunityROI)
	}
	if a.rules.DurationRegex().MatchString(text) {
		opps = append(opps, OpportunitySpeed)
	}
	if strings.Contains(contentLower, "agent") {
		opps = append(opps, OpportunityMultiAgent)
	}

	return append(opps, OpportunityUrgency, OpportunitySocial)
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

// countOccurrences counts every non-overlapping occurrence of every word
func countOccurrences(contentLower string, words []string) int {
	n := 0
	for _, w := range words {
		if w == "" {
			continue
		}
		n += strings.Count(contentLower, strings.ToLower(w))
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
