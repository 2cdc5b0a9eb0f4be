// Package fixer applies the corrections of fixable pattern rules to
// documents on disk.
package fixer

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pthm/clarity/internal/document"
	"github.com/pthm/clarity/internal/ruleset"
	"github.com/pthm/clarity/internal/ui"
	"golang.org/x/text/unicode/norm"
)

// ErrStale is returned by Apply when the file no longer matches the plan
var ErrStale = errors.New("file changed since it was analysed")

// Options configures the fixer behavior
type Options struct {
	DryRun bool
}

// Edit replaces one line of a file
type Edit struct {
	// Line is 1-based within the file, frontmatter included
	Line   int
	Before string
	After  string

	// Corrections lists the replacements applied, in rule order
	Corrections []string
}

// Plan is the set of edits for one document
type Plan struct {
	Path  string
	Edits []Edit
}

// Fixer applies fixes to documents
type Fixer struct {
	opts  Options
	ui    *ui.UI
	rules []ruleset.PatternRule
}

// New creates a fixer from the fixable spelling and grammar rules of rs
func New(rs *ruleset.RuleSet, opts Options, u *ui.UI) (*Fixer, error) {
	if err := rs.Compile(); err != nil {
		return nil, fmt.Errorf("fixer: %w", err)
	}

	var fixable []ruleset.PatternRule
	for _, table := range [][]ruleset.PatternRule{rs.Spelling, rs.Grammar} {
		for _, r := range table {
			if r.Fixable {
				fixable = append(fixable, r)
			}
		}
	}

	return &Fixer{opts: opts, ui: u, rules: fixable}, nil
}

// Plan computes the edits for doc without touching the file
func (f *Fixer) Plan(doc *document.Document) *Plan {
	plan := &Plan{Path: doc.Path}

	for i, line := range strings.Split(doc.Body, "\n") {
		fixed := line
		var corrections []string

		for _, r := range f.rules {
			re := r.CompiledRegex()
			if !re.MatchString(fixed) {
				continue
			}
			fixed = re.ReplaceAllStringFunc(fixed, func(match string) string {
				return matchCase(match, r.Correction)
			})
			corrections = append(corrections, r.Correction)
		}

		if fixed != line {
			plan.Edits = append(plan.Edits, Edit{
				Line:        i + 1 + doc.LineOffset,
				Before:      line,
				After:       fixed,
				Corrections: corrections,
			})
		}
	}

	return plan
}

// Fix plans and, unless running dry, applies fixes to doc. It returns the
// plan so callers can summarise it.
func (f *Fixer) Fix(doc *document.Document) (*Plan, error) {
	plan := f.Plan(doc)
	if len(plan.Edits) == 0 {
		return plan, nil
	}

	if f.opts.DryRun {
		f.printDryRun(plan)
		return plan, nil
	}

	if doc.Path == document.StdinPath {
		return plan, errors.New("cannot fix standard input in place; use --dry-run")
	}
	if err := Apply(plan); err != nil {
		return plan, fmt.Errorf("failed to apply fixes to %s: %w", plan.Path, err)
	}

	f.printApplied(plan)
	return plan, nil
}

// Apply writes plan to disk. Every edited line must still read as it did
// when the plan was made, otherwise ErrStale is returned and nothing is
// written.
func Apply(plan *Plan) error {
	info, err := os.Stat(plan.Path)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(plan.Path)
	if err != nil {
		return err
	}

	lines := strings.Split(string(norm.NFC.Bytes(content)), "\n")
	for _, edit := range plan.Edits {
		if edit.Line < 1 || edit.Line > len(lines) {
			return fmt.Errorf("line %d: %w", edit.Line, ErrStale)
		}
		if lines[edit.Line-1] != edit.Before {
			return fmt.Errorf("line %d: %w", edit.Line, ErrStale)
		}
		lines[edit.Line-1] = edit.After
	}

	return os.WriteFile(plan.Path, []byte(strings.Join(lines, "\n")), info.Mode().Perm())
}

func (f *Fixer) printDryRun(plan *Plan) {
	w := f.ui.Writer
	s := f.ui.Styles

	fmt.Fprintln(w, s.Suggestion.Render(fmt.Sprintf("Would fix %d lines in %s", len(plan.Edits), plan.Path)))
	for _, edit := range plan.Edits {
		fmt.Fprintf(w, "  %s\n", s.Path.Render(fmt.Sprintf("%s:%d", plan.Path, edit.Line)))
		fmt.Fprintln(w, s.Error.Render("    - "+strings.TrimSpace(edit.Before)))
		fmt.Fprintln(w, s.Success.Render("    + "+strings.TrimSpace(edit.After)))
	}
	fmt.Fprintln(w)
}

func (f *Fixer) printApplied(plan *Plan) {
	n := 0
	for _, edit := range plan.Edits {
		n += len(edit.Corrections)
	}
	f.ui.Successf("Fixed %d issues on %d lines in %s", n, len(plan.Edits), plan.Path)
}

// matchCase gives the correction the capitalisation of the matched text
func matchCase(match, correction string) string {
	hasLetter := false
	allUpper := true
	for _, r := range match {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				allUpper = false
			}
		}
	}
	if hasLetter && allUpper && utf8.RuneCountInString(match) > 1 {
		return strings.ToUpper(correction)
	}

	first, _ := utf8.DecodeRuneInString(match)
	if unicode.IsUpper(first) {
		c, size := utf8.DecodeRuneInString(correction)
		return string(unicode.ToUpper(c)) + correction[size:]
	}
	return correction
}
