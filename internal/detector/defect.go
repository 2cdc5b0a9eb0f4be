package detector

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Kind is a category of defect
type Kind string

const (
	Spelling    Kind = "spelling_errors"
	Grammar     Kind = "grammar_errors"
	Consistency Kind = "consistency_errors"
	Calculation Kind = "calculation_errors"
	Logic       Kind = "logic_errors"
)

// Kinds lists every defect kind in report order. Consistency and Logic are
// reserved and never populated by the current rules.
var Kinds = []Kind{Spelling, Grammar, Consistency, Calculation, Logic}

// Defect is a single detected issue. Pattern defects fill Text, calculation
// defects fill Expression, Expected and Error.
type Defect struct {
	Kind       Kind   `json:"-"`
	Line       int    `json:"line"`
	Text       string `json:"text,omitempty"`
	Expression string `json:"expression,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Expected   string `json:"expected,omitempty"`
	Error      string `json:"error,omitempty"`
	Original   string `json:"original"`

	// Rule is the index of the matching rule in its table, -1 for calculations
	Rule int `json:"-"`
}

// Inventory groups defects by kind, preserving detection order
type Inventory struct {
	byKind map[Kind][]Defect
}

// NewInventory creates an empty inventory with every kind present
func NewInventory() *Inventory {
	inv := &Inventory{byKind: make(map[Kind][]Defect, len(Kinds))}
	for _, k := range Kinds {
		inv.byKind[k] = []Defect{}
	}
	return inv
}

func (inv *Inventory) add(d Defect) {
	inv.byKind[d.Kind] = append(inv.byKind[d.Kind], d)
}

// Get returns a copy of the defects of one kind in detection order
func (inv *Inventory) Get(kind Kind) []Defect {
	return slices.Clone(inv.byKind[kind])
}

// Count returns the number of defects of one kind
func (inv *Inventory) Count(kind Kind) int {
	return len(inv.byKind[kind])
}

// Total returns the number of defects across all kinds
func (inv *Inventory) Total() int {
	total := 0
	for _, list := range inv.byKind {
		total += len(list)
	}
	return total
}

// All returns every defect, grouped by kind in Kinds order
func (inv *Inventory) All() []Defect {
	all := make([]Defect, 0, inv.Total())
	for _, k := range Kinds {
		all = append(all, inv.byKind[k]...)
	}
	return all
}

// MarshalJSON writes the kinds as an object in Kinds order
func (inv *Inventory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range Kinds {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(k))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		list := inv.byKind[k]
		if list == nil {
			list = []Defect{}
		}
		val, err := json.Marshal(list)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
