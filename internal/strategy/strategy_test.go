package strategy

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/pthm/clarity/internal/ruleset"
)

const retentionPlan = `# Patient Retention Recovery Plan

## Executive Summary
Our company faces a critical patient retention challenge with churn rates at 40%.
We propose a comprehensive AI-driven approach to reduce churn to 18% within 90 days.

## Investment & ROI
- Investment: $350,000 (one-time)
- Expected value recovery: $3.25M annually
- ROI: 9.3x return on investment
- Payback period: 6 weeks

## Timeline
Total implementation: 90 days to target achievement`

func newAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(ruleset.Default())
	if err != nil {
		t.Fatalf("NewAnalyzer() failed: %v", err)
	}
	return a
}

func analyze(t *testing.T, a *Analyzer, text string) *Report {
	t.Helper()
	r, err := a.Analyze(text, nil)
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}
	return r
}

func TestAnalyze_RetentionPlan(t *testing.T) {
	a := newAnalyzer(t)
	r := analyze(t, a, retentionPlan)

	// Every factor except team/credibility language is present
	if math.Abs(r.ProposalReadinessScore-600.0/7) > 1e-9 {
		t.Errorf("ProposalReadinessScore = %v, want 85.71", r.ProposalReadinessScore)
	}

	wantStrength := Strength{ValueProposition: 30, Credibility: 30, Urgency: 20, ROIClarity: 95}
	if r.ProposalStrengthAssessment != wantStrength {
		t.Errorf("strength = %+v, want %+v", r.ProposalStrengthAssessment, wantStrength)
	}

	if r.CompetitivePositioning.DifferentiationStrength != DifferentiationModerate {
		t.Errorf("differentiation = %q, want moderate", r.CompetitivePositioning.DifferentiationStrength)
	}
	if r.CompetitivePositioning.MarketPositioning != "premium specialist" {
		t.Errorf("market positioning = %q", r.CompetitivePositioning.MarketPositioning)
	}
	if len(r.CompetitivePositioning.CompetitiveAdvantages) != 3 {
		t.Errorf("competitive advantages = %v, want 3", r.CompetitivePositioning.CompetitiveAdvantages)
	}

	psych := r.ClientPsychologyInsights
	if psych.PersuasionScore != 10 {
		t.Errorf("PersuasionScore = %v, want 10", psych.PersuasionScore)
	}
	if len(psych.PrimaryMotivators) != 0 {
		t.Errorf("PrimaryMotivators = %v, want none", psych.PrimaryMotivators)
	}

	wantRecs := []string{RecommendSocialProof, RecommendExpand, RecommendRiskMitigation, RecommendDifferentiation}
	if !reflect.DeepEqual(r.StrategicRecommendations, wantRecs) {
		t.Errorf("recommendations = %v, want %v", r.StrategicRecommendations, wantRecs)
	}

	wantOpps := []string{OpportunityROI, OpportunitySpeed, OpportunityUrgency, OpportunitySocial}
	if !reflect.DeepEqual(r.OptimizationOpportunities, wantOpps) {
		t.Errorf("opportunities = %v, want %v", r.OptimizationOpportunities, wantOpps)
	}
}

func TestROIClarityTiers(t *testing.T) {
	a := newAnalyzer(t)

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"figures and multiplier", "Investment of $10,000 returns $93,000, a 9.3x ROI.", 95},
		{"figures and percentage", "Spend $5,000 to earn $20,000: ROI of 300%", 95},
		{"figures across lines", "Cost: $5,000\nReturn: $20,000\nROI: 4x", 95},
		{"figures only", "We spend $10,000 to save $50,000 per year.", 75},
		{"single figure with roi", "A $10,000 budget with strong roi", 60},
		{"bare roi", "The roi is strong.", 60},
		{"nothing", "Nothing to see here.", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyze(t, a, tt.text).ProposalStrengthAssessment.ROIClarity
			if got != tt.want {
				t.Errorf("ROIClarity(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestStrengthSubScores(t *testing.T) {
	a := newAnalyzer(t)

	tests := []struct {
		name string
		text string
		want Strength
	}{
		{
			name: "floors",
			text: "hello",
			want: Strength{ValueProposition: 20, Credibility: 30, Urgency: 0, ROIClarity: 30},
		},
		{
			name: "caps",
			text: "save reduce increase improve optimize benefit. urgent critical immediate deadline asap emergency",
			want: Strength{ValueProposition: 90, Credibility: 30, Urgency: 100, ROIClarity: 30},
		},
		{
			name: "credibility",
			text: "experience proven track record certified years expert",
			want: Strength{ValueProposition: 20, Credibility: 90, Urgency: 0, ROIClarity: 30},
		},
		{
			name: "value with roi",
			text: "save reduce increase improve optimize roi benefit",
			want: Strength{ValueProposition: 100, Credibility: 30, Urgency: 0, ROIClarity: 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyze(t, a, tt.text).ProposalStrengthAssessment
			if got != tt.want {
				t.Errorf("strength = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProposalStrength(t *testing.T) {
	a := newAnalyzer(t)

	if got := analyze(t, a, "hello").ProposalReadinessScore; got != 0 {
		t.Errorf("readiness = %v, want 0", got)
	}

	all := "The problem needs a solution within 3 weeks. Investment brings return. Our team acts urgent."
	if got := analyze(t, a, all).ProposalReadinessScore; got != 100 {
		t.Errorf("readiness = %v, want 100", got)
	}
}

func TestPsychology(t *testing.T) {
	a := newAnalyzer(t)

	tests := []struct {
		name       string
		text       string
		score      float64
		motivators []string
		triggers   []string
	}{
		{
			name:       "no triggers",
			text:       "A calm memo.",
			score:      0,
			motivators: []string{},
			triggers:   []string{"clarity", "trust"},
		},
		{
			name:       "repeated urgency",
			text:       "urgent urgent urgent",
			score:      30,
			motivators: []string{MotivatorUrgency},
			triggers:   []string{"clarity", "trust"},
		},
		{
			name:       "all motivators",
			text:       "critical urgent crisis; risk loss threat; growth increase improve",
			score:      90,
			motivators: []string{MotivatorUrgency, MotivatorLossAversion, MotivatorGrowth},
			triggers:   []string{"authority", "scarcity", "social_proof"},
		},
		{
			name:       "at threshold is not a motivator",
			text:       "growth and advantage",
			score:      20,
			motivators: []string{},
			triggers:   []string{"clarity", "trust"},
		},
		{
			name:       "capped",
			text:       strings.Repeat("risk ", 20),
			score:      100,
			motivators: []string{MotivatorLossAversion},
			triggers:   []string{"authority", "scarcity", "social_proof"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyze(t, a, tt.text).ClientPsychologyInsights
			if got.PersuasionScore != tt.score {
				t.Errorf("PersuasionScore = %v, want %v", got.PersuasionScore, tt.score)
			}
			if !reflect.DeepEqual(got.PrimaryMotivators, tt.motivators) {
				t.Errorf("PrimaryMotivators = %v, want %v", got.PrimaryMotivators, tt.motivators)
			}
			if !reflect.DeepEqual(got.PsychologicalTriggers, tt.triggers) {
				t.Errorf("PsychologicalTriggers = %v, want %v", got.PsychologicalTriggers, tt.triggers)
			}
		})
	}
}

func TestDifferentiation(t *testing.T) {
	a := newAnalyzer(t)
	for _, text := range []string{"our Unique method", "an exclusive partnership"} {
		if got := analyze(t, a, text).CompetitivePositioning.DifferentiationStrength; got != DifferentiationStrong {
			t.Errorf("differentiation(%q) = %q, want strong", text, got)
		}
	}
}

func TestRecommendations_OnlyClosingsForCompleteProposal(t *testing.T) {
	a := newAnalyzer(t)
	text := "ROI reaches 40% according to our client testimonial. " + strings.Repeat("detail ", 300)

	got := analyze(t, a, text).StrategicRecommendations
	want := []string{RecommendRiskMitigation, RecommendDifferentiation}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("recommendations = %v, want %v", got, want)
	}
}

func TestRecommendations_AllRulesFire(t *testing.T) {
	a := newAnalyzer(t)
	got := analyze(t, a, "short note").StrategicRecommendations
	want := []string{
		RecommendROI,
		RecommendMetrics,
		RecommendSocialProof,
		RecommendExpand,
		RecommendRiskMitigation,
		RecommendDifferentiation,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("recommendations = %v, want %v", got, want)
	}
}

func TestOpportunities(t *testing.T) {
	a := newAnalyzer(t)

	got := analyze(t, a, "Our agent network ships in 2 weeks").OptimizationOpportunities
	want := []string{OpportunitySpeed, OpportunityMultiAgent, OpportunityUrgency, OpportunitySocial}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("opportunities = %v, want %v", got, want)
	}

	got = analyze(t, a, "plain").OptimizationOpportunities
	want = []string{OpportunityUrgency, OpportunitySocial}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("opportunities = %v, want %v", got, want)
	}

	// Durations are matched as written
	got = analyze(t, a, "Delivery in 3 Weeks").OptimizationOpportunities
	if !reflect.DeepEqual(got, want) {
		t.Errorf("capitalised duration: opportunities = %v, want %v", got, want)
	}
}

func TestAnalyze_ContextDoesNotChangeOutput(t *testing.T) {
	a := newAnalyzer(t)

	withCtx, err := a.Analyze(retentionPlan, Context{
		"company":  "Healthcare Company",
		"urgency":  "high",
		"industry": "Healthcare",
	})
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}
	without := analyze(t, a, retentionPlan)

	if !reflect.DeepEqual(withCtx, without) {
		t.Error("context changed the analysis output")
	}
}

func TestAnalyze_ScoresWithinBounds(t *testing.T) {
	a := newAnalyzer(t)

	inputs := []string{
		"",
		retentionPlan,
		strings.Repeat("urgent critical risk loss growth unique $1 $2 roi 50% ", 100),
		strings.Repeat("save reduce increase improve optimize roi benefit experience proven ", 20),
	}

	for _, in := range inputs {
		r := analyze(t, a, in)
		scores := append(r.ProposalStrengthAssessment.List(),
			Score{"readiness", r.ProposalReadinessScore},
			Score{"persuasion", r.ClientPsychologyInsights.PersuasionScore},
		)
		for _, sc := range scores {
			if sc.Value < 0 || sc.Value > 100 {
				t.Errorf("%s = %v out of [0,100] for %.30q", sc.Name, sc.Value, in)
			}
		}
	}
}
