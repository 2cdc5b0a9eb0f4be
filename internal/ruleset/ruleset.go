package ruleset

import (
	"fmt"
	"regexp"
)

// RuleSet holds every fixed table the analyzers read: pattern rules,
// vocabularies and section checklists. A RuleSet must be compiled before
// use and is read-only afterwards, so it can be shared between goroutines.
type RuleSet struct {
	// Name is the identifier for this rule set (e.g., "business")
	Name string `yaml:"name" json:"name"`

	// Description is a human-readable summary
	Description string `yaml:"description" json:"description,omitempty"`

	// Spelling and Grammar are ordered pattern -> correction tables
	Spelling []PatternRule `yaml:"spelling" json:"spelling"`
	Grammar  []PatternRule `yaml:"grammar" json:"grammar"`

	// Calculation describes the arithmetic consistency check
	Calculation CalculationRule `yaml:"calculation" json:"calculation"`

	// Classification maps keyword groups to document types
	Classification Classification `yaml:"classification" json:"classification"`

	Quality  QualityRules  `yaml:"quality" json:"quality"`
	Strategy StrategyRules `yaml:"strategy" json:"strategy"`

	compiled bool
}

// PatternRule pairs a textual pattern with its canonical correction
type PatternRule struct {
	// Pattern is a regular expression matched case-insensitively
	Pattern string `yaml:"pattern" json:"pattern"`

	// Correction is the suggested replacement or advice
	Correction string `yaml:"correction" json:"correction"`

	// Fixable marks corrections that can be substituted in place
	Fixable bool `yaml:"fixable,omitempty" json:"fixable,omitempty"`

	compiled *regexp.Regexp
}

// CompiledRegex returns the compiled regex
func (pr *PatternRule) CompiledRegex() *regexp.Regexp {
	return pr.compiled
}

// CalculationRule finds "A x B = C" expressions. The pattern must expose
// exactly three capture groups.
type CalculationRule struct {
	Pattern   string  `yaml:"pattern" json:"pattern"`
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`

	compiled *regexp.Regexp
}

// CompiledRegex returns the compiled regex
func (cr *CalculationRule) CompiledRegex() *regexp.Regexp {
	return cr.compiled
}

// Classification lists document categories in priority order
type Classification struct {
	Fallback   string     `yaml:"fallback" json:"fallback"`
	Categories []Category `yaml:"categories" json:"categories"`
}

// Category is a document type and the keywords that select it
type Category struct {
	Type     string   `yaml:"type" json:"type"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// QualityRules are the vocabularies used by the quality scorer
type QualityRules struct {
	Reviewer          string   `yaml:"reviewer" json:"reviewer"`
	FinancialKeywords []string `yaml:"financial_keywords" json:"financial_keywords"`
	TimelineKeywords  []string `yaml:"timeline_keywords" json:"timeline_keywords"`
	ProfessionalWords []string `yaml:"professional_words" json:"professional_words"`
	InformalWords     []string `yaml:"informal_words" json:"informal_words"`
	Sections          []string `yaml:"sections" json:"sections"`
}

// StrategyRules are the patterns and vocabularies used by the strategic analyzer
type StrategyRules struct {
	StrengthFactors       []Factor `yaml:"strength_factors" json:"strength_factors"`
	ValueWords            []string `yaml:"value_words" json:"value_words"`
	CredibilityWords      []string `yaml:"credibility_words" json:"credibility_words"`
	UrgencyWords          []string `yaml:"urgency_words" json:"urgency_words"`
	ROI                   ROIRules `yaml:"roi" json:"roi"`
	Percentage            string   `yaml:"percentage" json:"percentage"`
	Duration              string   `yaml:"duration" json:"duration"`
	Differentiators       []string `yaml:"differentiators" json:"differentiators"`
	CompetitiveAdvantages []string `yaml:"competitive_advantages" json:"competitive_advantages"`
	MarketPositioning     string   `yaml:"market_positioning" json:"market_positioning"`
	Triggers              Triggers `yaml:"triggers" json:"triggers"`
	SocialProofWords      []string `yaml:"social_proof_words" json:"social_proof_words"`

	percentage *regexp.Regexp
	duration   *regexp.Regexp
}

// PercentageRegex returns the compiled percentage pattern
func (sr *StrategyRules) PercentageRegex() *regexp.Regexp {
	return sr.percentage
}

// DurationRegex returns the compiled day/week duration pattern
func (sr *StrategyRules) DurationRegex() *regexp.Regexp {
	return sr.duration
}

// Factor is a named presence test for proposal strength
type Factor struct {
	Name    string `yaml:"name" json:"name"`
	Pattern string `yaml:"pattern" json:"pattern"`

	compiled *regexp.Regexp
}

// CompiledRegex returns the compiled regex
func (f *Factor) CompiledRegex() *regexp.Regexp {
	return f.compiled
}

// ROIRules drive the tiered ROI clarity score
type ROIRules struct {
	Figures string `yaml:"figures" json:"figures"`
	Ratio   string `yaml:"ratio" json:"ratio"`
	Keyword string `yaml:"keyword" json:"keyword"`

	figures *regexp.Regexp
	ratio   *regexp.Regexp
}

// FiguresRegex returns the compiled dollar-figures pattern
func (r *ROIRules) FiguresRegex() *regexp.Regexp {
	return r.figures
}

// RatioRegex returns the compiled ROI percentage/multiplier pattern
func (r *ROIRules) RatioRegex() *regexp.Regexp {
	return r.ratio
}

// Triggers are the persuasion vocabularies
type Triggers struct {
	Urgency []string `yaml:"urgency" json:"urgency"`
	Fear    []string `yaml:"fear" json:"fear"`
	Gain    []string `yaml:"gain" json:"gain"`
}

// Compile compiles every pattern in the rule set. Text patterns are compiled
// case-insensitive, except the calculation, percentage and duration patterns
// which match as written. Compile is idempotent.
func (rs *RuleSet) Compile() error {
	if rs.compiled {
		return nil
	}

	for i := range rs.Spelling {
		re, err := compileFold(rs.Spelling[i].Pattern)
		if err != nil {
			return fmt.Errorf("spelling rule %d (%q): %w", i, rs.Spelling[i].Pattern, err)
		}
		rs.Spelling[i].compiled = re
	}

	for i := range rs.Grammar {
		re, err := compileFold(rs.Grammar[i].Pattern)
		if err != nil {
			return fmt.Errorf("grammar rule %d (%q): %w", i, rs.Grammar[i].Pattern, err)
		}
		rs.Grammar[i].compiled = re
	}

	calc, err := regexp.Compile(rs.Calculation.Pattern)
	if err != nil {
		return fmt.Errorf("calculation rule: %w", err)
	}
	if calc.NumSubexp() != 3 {
		return fmt.Errorf("calculation rule: pattern has %d capture groups, want 3", calc.NumSubexp())
	}
	rs.Calculation.compiled = calc

	st := &rs.Strategy
	for i := range st.StrengthFactors {
		re, err := compileFold(st.StrengthFactors[i].Pattern)
		if err != nil {
			return fmt.Errorf("strength factor %s: %w", st.StrengthFactors[i].Name, err)
		}
		st.StrengthFactors[i].compiled = re
	}

	patterns := []struct {
		name string
		src  string
		fold bool
		dst  **regexp.Regexp
	}{
		{"roi figures", st.ROI.Figures, true, &st.ROI.figures},
		{"roi ratio", st.ROI.Ratio, true, &st.ROI.ratio},
		{"percentage", st.Percentage, false, &st.percentage},
		{"duration", st.Duration, false, &st.duration},
	}
	for _, p := range patterns {
		compile := regexp.Compile
		if p.fold {
			compile = compileFold
		}
		re, err := compile(p.src)
		if err != nil {
			return fmt.Errorf("strategy %s: %w", p.name, err)
		}
		*p.dst = re
	}

	rs.compiled = true
	return nil
}

// Compiled reports whether Compile has succeeded
func (rs *RuleSet) Compiled() bool {
	return rs.compiled
}

func compileFold(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + pattern)
}
