// Package detector scans documents line by line for spelling, grammar and
// arithmetic defects using the pattern tables of a rule set.
package detector

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pthm/clarity/internal/ruleset"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Detector finds defects in document text. It is safe for concurrent use.
type Detector struct {
	rules *ruleset.RuleSet
}

// New creates a detector over a rule set, compiling it if necessary
func New(rs *ruleset.RuleSet) (*Detector, error) {
	if rs == nil {
		return nil, errors.New("detector: nil rule set")
	}
	if err := rs.Compile(); err != nil {
		return nil, fmt.Errorf("detector: %w", err)
	}
	return &Detector{rules: rs}, nil
}

// Detect returns every defect found in text. Records within a kind are
// ordered by line, then by rule table order.
func (d *Detector) Detect(text string) *Inventory {
	inv := NewInventory()

	lines := strings.Split(text, "\n")
	for lineNum, line := range lines {
		original := strings.TrimSpace(line)

		for i := range d.rules.Spelling {
			rule := &d.rules.Spelling[i]
			if rule.CompiledRegex().MatchString(line) {
				inv.add(Defect{
					Kind:       Spelling,
					Line:       lineNum + 1,
					Text:       displaySpelling(rule.Pattern),
					Suggestion: rule.Correction,
					Original:   original,
					Rule:       i,
				})
			}
		}

		for i := range d.rules.Grammar {
			rule := &d.rules.Grammar[i]
			if rule.CompiledRegex().MatchString(line) {
				inv.add(Defect{
					Kind:       Grammar,
					Line:       lineNum + 1,
					Text:       displayGrammar(rule.Pattern),
					Suggestion: rule.Correction,
					Original:   original,
					Rule:       i,
				})
			}
		}

		for _, defect := range d.checkCalculations(line) {
			defect.Line = lineNum + 1
			defect.Original = original
			inv.add(defect)
		}
	}

	return inv
}

// checkCalculations validates every "A x B = C" expression on a line.
// Literals that do not parse are skipped, not reported.
func (d *Detector) checkCalculations(line string) []Defect {
	var defects []Defect

	calc := d.rules.Calculation
	for _, m := range calc.CompiledRegex().FindAllStringSubmatch(line, -1) {
		a, errA := parseAmount(m[1])
		b, errB := parseAmount(m[2])
		c, errC := parseAmount(m[3])
		if errA != nil || errB != nil || errC != nil {
			continue
		}

		expected := a * b
		if math.Abs(expected-c) <= calc.Tolerance {
			continue
		}

		formatted := formatAmount(expected)
		defects = append(defects, Defect{
			Kind:       Calculation,
			Expression: fmt.Sprintf("%s × %s = %s", m[1], m[2], m[3]),
			Suggestion: formatted,
			Expected:   formatted,
			Error:      fmt.Sprintf("Should be %s, not %s", formatted, m[3]),
			Rule:       -1,
		})
	}

	return defects
}

// formatAmount renders a value with thousands separators and two decimals
func formatAmount(v float64) string {
	return message.NewPrinter(language.English).Sprintf("%.2f", v)
}

func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

// displaySpelling strips boundary and anchor markers for display
func displaySpelling(pattern string) string {
	r := strings.NewReplacer(`\b`, "", "^", "", "$", "")
	return r.Replace(pattern)
}

// displayGrammar strips boundary markers and collapses whitespace classes
func displayGrammar(pattern string) string {
	r := strings.NewReplacer(`\b`, "", `\s+`, " ")
	return r.Replace(pattern)
}
