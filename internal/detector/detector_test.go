package detector

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pthm/clarity/internal/ruleset"
)

func newDetector(t *testing.T) *Detector {
	t.Helper()
	d, err := New(ruleset.Default())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return d
}

func TestNewRejectsBrokenRuleSet(t *testing.T) {
	rs := ruleset.Default()
	rs.Spelling[0].Pattern = "("
	if _, err := New(rs); err == nil {
		t.Error("New() = nil error, want compile error")
	}
	if _, err := New(nil); err == nil {
		t.Error("New(nil) = nil error, want error")
	}
}

func TestDetect_Spelling(t *testing.T) {
	d := newDetector(t)

	text := "Intro line\n  This propsal will help you acheive growth.  \nWe beleive it."
	inv := d.Detect(text)

	got := inv.Get(Spelling)
	if len(got) != 3 {
		t.Fatalf("len(spelling) = %d, want 3: %+v", len(got), got)
	}

	// Line order, then rule table order within a line (acheive precedes propsal)
	want := []struct {
		line       int
		text       string
		suggestion string
	}{
		{2, "acheive", "achieve"},
		{2, "propsal", "proposal"},
		{3, "beleive", "believe"},
	}
	for i, w := range want {
		if got[i].Line != w.line || got[i].Text != w.text || got[i].Suggestion != w.suggestion {
			t.Errorf("spelling[%d] = {%d %q %q}, want {%d %q %q}",
				i, got[i].Line, got[i].Text, got[i].Suggestion, w.line, w.text, w.suggestion)
		}
	}

	if got[0].Original != "This propsal will help you acheive growth." {
		t.Errorf("Original = %q, want trimmed line", got[0].Original)
	}
}

func TestDetect_CaseInsensitive(t *testing.T) {
	d := newDetector(t)
	inv := d.Detect("RECIEVE the funds")
	if inv.Count(Spelling) != 1 {
		t.Errorf("Count(Spelling) = %d, want 1", inv.Count(Spelling))
	}
}

func TestDetect_Grammar(t *testing.T) {
	d := newDetector(t)

	inv := d.Detect("Your going to love it.\nWe have over 10+ years of history.")
	got := inv.Get(Grammar)
	if len(got) != 2 {
		t.Fatalf("len(grammar) = %d, want 2: %+v", len(got), got)
	}

	if got[0].Text != "your going" {
		t.Errorf("grammar[0].Text = %q, want %q", got[0].Text, "your going")
	}
	if got[0].Suggestion != "you're going" {
		t.Errorf("grammar[0].Suggestion = %q", got[0].Suggestion)
	}
	if got[1].Line != 2 || got[1].Text != `over \d+\+ years` {
		t.Errorf("grammar[1] = line %d %q", got[1].Line, got[1].Text)
	}
}

func TestDetect_Calculation(t *testing.T) {
	d := newDetector(t)

	tests := []struct {
		name     string
		text     string
		wantN    int
		expected string
		message  string
	}{
		{"wrong product", "100 x 5 = 600", 1, "500.00", "Should be 500.00, not 600"},
		{"correct product", "100 x 5 = 500", 0, "", ""},
		{"unicode operator", "20 × 3 = 61", 1, "60.00", "Should be 60.00, not 61"},
		{"asterisk with dollars", "$2.50 * 4 = $10", 0, "", ""},
		{"thousands separators", "$1,000 x 3 = $3,500", 1, "3,000.00", "Should be 3,000.00, not 3,500"},
		{"within tolerance", "0.333 x 3 = 0.999", 0, "", ""},
		{"no expression", "We grew 3x last year", 0, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.text).Get(Calculation)
			if len(got) != tt.wantN {
				t.Fatalf("len(calculation) = %d, want %d: %+v", len(got), tt.wantN, got)
			}
			if tt.wantN == 0 {
				return
			}
			if got[0].Expected != tt.expected {
				t.Errorf("Expected = %q, want %q", got[0].Expected, tt.expected)
			}
			if got[0].Error != tt.message {
				t.Errorf("Error = %q, want %q", got[0].Error, tt.message)
			}
			if got[0].Line != 1 {
				t.Errorf("Line = %d, want 1", got[0].Line)
			}
		})
	}
}

func TestDetect_MultipleCalculationsOnLine(t *testing.T) {
	d := newDetector(t)
	got := d.Detect("2 x 2 = 5 and 3 x 3 = 9 and 4 x 4 = 15").Get(Calculation)
	if len(got) != 2 {
		t.Fatalf("len(calculation) = %d, want 2", len(got))
	}
	if got[0].Expression != "2 × 2 = 5" || got[1].Expression != "4 × 4 = 15" {
		t.Errorf("expressions = %q, %q", got[0].Expression, got[1].Expression)
	}
}

func TestDetect_EmptyKindsPresent(t *testing.T) {
	d := newDetector(t)
	inv := d.Detect("A perfectly clean sentence.")

	if inv.Total() != 0 {
		t.Fatalf("Total() = %d, want 0", inv.Total())
	}

	data, err := json.Marshal(inv)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"spelling_errors":[],"grammar_errors":[],"consistency_errors":[],"calculation_errors":[],"logic_errors":[]}`
	if string(data) != want {
		t.Errorf("JSON = %s, want %s", data, want)
	}
}

func TestDetect_MonotonicSpelling(t *testing.T) {
	d := newDetector(t)
	base := "This proposal is fine.\nWe recieve payments monthly."
	more := base + "\nWe recieve more."

	a := d.Detect(base)
	b := d.Detect(more)
	if b.Count(Spelling) != a.Count(Spelling)+1 {
		t.Errorf("spelling count %d -> %d, want +1", a.Count(Spelling), b.Count(Spelling))
	}

	// Existing records are unchanged and in the same order
	as, bs := a.Get(Spelling), b.Get(Spelling)
	for i := range as {
		if as[i] != bs[i] {
			t.Errorf("record %d changed: %+v -> %+v", i, as[i], bs[i])
		}
	}
}

func TestInventory_GetReturnsCopy(t *testing.T) {
	d := newDetector(t)
	inv := d.Detect("acheive")
	list := inv.Get(Spelling)
	list[0].Line = 99
	if inv.Get(Spelling)[0].Line == 99 {
		t.Error("Get() exposed internal slice")
	}
}

func TestInventory_AllOrder(t *testing.T) {
	d := newDetector(t)
	inv := d.Detect("2 x 2 = 5\nYour going to acheive it")
	all := inv.All()
	if len(all) != 3 {
		t.Fatalf("len(All()) = %d, want 3", len(all))
	}
	kinds := make([]string, len(all))
	for i, def := range all {
		kinds[i] = string(def.Kind)
	}
	if got := strings.Join(kinds, ","); got != "spelling_errors,grammar_errors,calculation_errors" {
		t.Errorf("All() kinds = %s", got)
	}
}
