package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pthm/clarity/internal/detector"
	"github.com/pthm/clarity/internal/document"
	"github.com/pthm/clarity/internal/engine"
	"github.com/pthm/clarity/internal/quality"
	"github.com/pthm/clarity/internal/strategy"
	"github.com/pthm/clarity/internal/ui"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TerminalReporter outputs results to the terminal with styles
type TerminalReporter struct {
	w       io.Writer
	ui      *ui.UI
	outline bool
}

// TerminalOption configures a TerminalReporter
type TerminalOption func(*TerminalReporter)

// WithOutline toggles the heading outline of markdown documents (on by default)
func WithOutline(show bool) TerminalOption {
	return func(r *TerminalReporter) {
		r.outline = show
	}
}

// NewTerminalReporter creates a new terminal reporter
func NewTerminalReporter(w io.Writer, u *ui.UI, opts ...TerminalOption) *TerminalReporter {
	r := &TerminalReporter{w: w, ui: u, outline: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report outputs every item to the terminal
func (r *TerminalReporter) Report(items []engine.Item) error {
	for _, item := range items {
		r.printDocument(item)
	}

	summary := ComputeSummary(items)
	r.printSummary(summary)
	return resultErr(summary)
}

func (r *TerminalReporter) printDocument(item engine.Item) {
	s := r.ui.Styles
	doc := item.Document
	p := message.NewPrinter(language.English)

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Header.Render(filepath.Base(doc.Name())))
	fmt.Fprintf(r.w, "  %s\n", s.Path.Render(doc.Name()))
	fmt.Fprintf(r.w, "  %s\n", s.Label.Render(p.Sprintf("%d words, %d lines, %d sentences, ~%d tokens",
		doc.Stats.Words, doc.Stats.Lines, doc.Stats.Sentences, doc.Stats.EstimatedTokens)))

	if r.outline && len(doc.Outline) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintf(r.w, "  %s\n", s.Subheader.Render("Outline"))
		for _, h := range doc.Headings() {
			indent := strings.Repeat("  ", h.Level)
			fmt.Fprintf(r.w, "  %s%s %s\n", indent, h.Title, s.Label.Render(fmt.Sprintf(":%d", h.Line+doc.LineOffset)))
		}
	}

	if item.Quality != nil {
		fmt.Fprintln(r.w)
		fmt.Fprintf(r.w, "  %s\n", s.Subheader.Render("Quality Review"))
		if report, ok := item.Quality.Value(); ok {
			r.printQuality(doc, &report)
		} else {
			r.printFailure("review", item.Quality.Message())
		}
	}

	if item.Strategy != nil {
		fmt.Fprintln(r.w)
		fmt.Fprintf(r.w, "  %s\n", s.Subheader.Render("Strategic Analysis"))
		if report, ok := item.Strategy.Value(); ok {
			r.printStrategy(&report)
		} else {
			r.printFailure("strategic analysis", item.Strategy.Message())
		}
	}
}

func (r *TerminalReporter) printFailure(op, msg string) {
	s := r.ui.Styles
	fmt.Fprintf(r.w, "    %s\n", s.Error.Render(fmt.Sprintf("%s %s failed: %s", s.IconError, op, msg)))
}

func (r *TerminalReporter) printQuality(doc *document.Document, report *quality.Report) {
	s := r.ui.Styles

	r.printScore("Overall score", report.OverallScore)
	r.printField("Document type", title(string(report.DocumentType)))
	r.printField("Reviewer", report.Reviewer)

	fmt.Fprintf(r.w, "    %s\n", s.Label.Render("Quality dimensions"))
	for _, d := range report.QualityDimensions.List() {
		fmt.Fprintf(r.w, "      %-18s %s\n", title(d.Name), s.Score(d.Value).Render(fmt.Sprintf("%6.2f", d.Value)))
	}

	fmt.Fprintf(r.w, "    %s\n", s.Label.Render("Errors found"))
	if report.ErrorsFound.Total() == 0 {
		fmt.Fprintf(r.w, "      %s\n", s.Success.Render(s.IconSuccess+" No errors found"))
	}
	for _, kind := range detector.Kinds {
		defects := report.ErrorsFound.Get(kind)
		if len(defects) == 0 {
			continue
		}
		fmt.Fprintf(r.w, "      %s\n", s.Warning.Render(fmt.Sprintf("%s %s (%d)", s.IconWarning, title(string(kind)), len(defects))))
		for _, d := range defects {
			r.printDefect(doc, d)
		}
	}

	r.printList("Improvement recommendations", report.ImprovementRecommendations)
}

func (r *TerminalReporter) printDefect(doc *document.Document, d detector.Defect) {
	s := r.ui.Styles

	loc := s.Path.Render(fmt.Sprintf("%s:%d", filepath.Base(doc.Name()), d.Line+doc.LineOffset))
	if d.Kind == detector.Calculation {
		fmt.Fprintf(r.w, "        %s %s %s\n", loc, d.Expression, s.Error.Render(d.Error))
		return
	}

	fmt.Fprintf(r.w, "        %s %s -> %s\n", loc, d.Text, s.Success.Render(d.Suggestion))
	if d.Original != "" && len(d.Original) < 200 {
		fmt.Fprintf(r.w, "          %s\n", s.Label.Render("> "+d.Original))
	}
}

func (r *TerminalReporter) printStrategy(report *strategy.Report) {
	s := r.ui.Styles

	r.printScore("Proposal readiness", report.ProposalReadinessScore)

	fmt.Fprintf(r.w, "    %s\n", s.Label.Render("Proposal strength"))
	for _, sc := range report.ProposalStrengthAssessment.List() {
		fmt.Fprintf(r.w, "      %-18s %s\n", title(sc.Name), s.Score(sc.Value).Render(fmt.Sprintf("%6.2f", sc.Value)))
	}

	pos := report.CompetitivePositioning
	fmt.Fprintf(r.w, "    %s\n", s.Label.Render("Competitive positioning"))
	fmt.Fprintf(r.w, "      %-18s %s\n", "Differentiation", title(pos.DifferentiationStrength))
	fmt.Fprintf(r.w, "      %-18s %s\n", "Market position", title(pos.MarketPositioning))
	fmt.Fprintf(r.w, "      %-18s %s\n", "Advantages", strings.Join(pos.CompetitiveAdvantages, "; "))

	psych := report.ClientPsychologyInsights
	fmt.Fprintf(r.w, "    %s\n", s.Label.Render("Client psychology"))
	fmt.Fprintf(r.w, "      %-18s %s\n", "Persuasion score", s.Score(psych.PersuasionScore).Render(fmt.Sprintf("%6.2f", psych.PersuasionScore)))
	fmt.Fprintf(r.w, "      %-18s %s\n", "Motivators", titleList(psych.PrimaryMotivators))
	fmt.Fprintf(r.w, "      %-18s %s\n", "Triggers", titleList(psych.PsychologicalTriggers))

	r.printList("Strategic recommendations", report.StrategicRecommendations)
	r.printList("Optimization opportunities", report.OptimizationOpportunities)
}

func (r *TerminalReporter) printScore(label string, v float64) {
	s := r.ui.Styles
	fmt.Fprintf(r.w, "    %-20s %s\n", s.Label.Render(label), s.Score(v).Render(fmt.Sprintf("%.2f", v)))
}

func (r *TerminalReporter) printField(label, value string) {
	fmt.Fprintf(r.w, "    %-20s %s\n", r.ui.Styles.Label.Render(label), value)
}

func (r *TerminalReporter) printList(label string, items []string) {
	s := r.ui.Styles
	fmt.Fprintf(r.w, "    %s\n", s.Label.Render(label))
	if len(items) == 0 {
		fmt.Fprintf(r.w, "      %s\n", s.Label.Render("none"))
		return
	}
	for _, item := range items {
		fmt.Fprintf(r.w, "      %s %s\n", s.Suggestion.Render(s.IconBullet), item)
	}
}

func (r *TerminalReporter) printSummary(summary Summary) {
	s := r.ui.Styles

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Separator.Render("─────────────────────────────────────"))

	p := message.NewPrinter(language.English)
	line := p.Sprintf("Analysed %d documents: %d defects", summary.Documents, summary.Defects)
	if summary.Failed > 0 {
		fmt.Fprintf(r.w, "%s, %s\n", line, s.Error.Render(fmt.Sprintf("%d failed", summary.Failed)))
		return
	}
	fmt.Fprintln(r.w, line)
}

// title turns identifiers like "business_proposal" into "Business Proposal"
func title(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

func titleList(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = title(id)
	}
	return strings.Join(out, ", ")
}
