// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Family is the chemical family of an element.
type Family string

const (
	FamilyAlkaliMetal         Family = "alkali metal"
	FamilyAlkalineEarthMetal  Family = "alkaline earth metal"
	FamilyTransitionMetal     Family = "transition metal"
	FamilyPostTransitionMetal Family = "post-transition metal"
	FamilyMetalloid           Family = "metalloid"
	FamilyNonmetal            Family = "nonmetal"
	FamilyChalcogen           Family = "chalcogen"
	FamilyHalogen             Family = "halogen"
	FamilyNobleGas            Family = "noble gas"
	FamilyLanthanide          Family = "lanthanide"
	FamilyActinide            Family = "actinide"
	FamilyTransactinide       Family = "transactinide"
	FamilyUnknown             Family = "unknown"
)

// Families lists every known family in display order.
var Families = []Family{
	FamilyAlkaliMetal,
	FamilyAlkalineEarthMetal,
	FamilyTransitionMetal,
	FamilyPostTransitionMetal,
	FamilyMetalloid,
	FamilyNonmetal,
	FamilyChalcogen,
	FamilyHalogen,
	FamilyNobleGas,
	FamilyLanthanide,
	FamilyActinide,
	FamilyTransactinide,
	FamilyUnknown,
}

// Valid reports whether f is one of the known families.
func (f Family) Valid() bool {
	for _, known := range Families {
		if f == known {
			return true
		}
	}
	return false
}

// Element is a single catalog entry. Group 0 means the element has no group.
type Element struct {
	Number int
	Symbol string
	Name   string
	Group  int
	Period int
	Family Family
	Charge *int
}

// HasGroup reports whether the element sits in a numbered group.
func (e Element) HasGroup() bool {
	return e.Group > 0
}

// HasCharge reports whether the element has a common ionic charge.
func (e Element) HasCharge() bool {
	return e.Charge != nil
}

// FilterConfig selects which elements form the quiz pool.
type FilterConfig struct {
	Chem20            bool
	MainGroup         bool
	Transition        bool
	IncludeRareEarths bool
	MaxRow            int
}

// MaxPeriod is the largest period in the periodic table.
const MaxPeriod = 7

// DefaultFilter returns the filter used when nothing is configured.
func DefaultFilter() FilterConfig {
	return FilterConfig{Chem20: true, MaxRow: MaxPeriod}
}

// String renders the filter as a compact summary.
func (f FilterConfig) String() string {
	var parts []string
	if f.Chem20 {
		parts = append(parts, "chem20")
	}
	if f.MainGroup {
		parts = append(parts, "main")
	}
	if f.Transition {
		parts = append(parts, "transition")
	}
	if f.IncludeRareEarths {
		parts = append(parts, "rare-earths")
	}
	if len(parts) == 0 {
		parts = append(parts, "all")
	}
	return fmt.Sprintf("%s row<=%d", strings.Join(parts, "+"), f.MaxRow)
}

// QuestionType identifies what a question asks for.
type QuestionType string

const (
	SymbolToName   QuestionType = "symbol-to-name"
	NameToSymbol   QuestionType = "name-to-symbol"
	SymbolToCharge QuestionType = "symbol-to-charge"
	FamilyOf       QuestionType = "family"
)

// QuestionTypes lists every question type in a stable order.
var QuestionTypes = []QuestionType{SymbolToName, NameToSymbol, SymbolToCharge, FamilyOf}

// ParseQuestionType resolves a type from its name.
func ParseQuestionType(s string) (QuestionType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range QuestionTypes {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

// Label returns a short human label.
func (t QuestionType) Label() string {
	switch t {
	case SymbolToName:
		return "Symbol → Name"
	case NameToSymbol:
		return "Name → Symbol"
	case SymbolToCharge:
		return "Symbol → Charge"
	case FamilyOf:
		return "Family"
	default:
		return string(t)
	}
}

// ModeSet holds the enabled question types.
type ModeSet map[QuestionType]bool

// DefaultModes enables symbol-to-name only.
func DefaultModes() ModeSet {
	return ModeSet{SymbolToName: true}
}

// Enabled returns the enabled types in stable order.
func (s ModeSet) Enabled() []QuestionType {
	out := make([]QuestionType, 0, len(QuestionTypes))
	for _, t := range QuestionTypes {
		if s[t] {
			out = append(out, t)
		}
	}
	return out
}

// Clone returns an independent copy.
func (s ModeSet) Clone() ModeSet {
	out := make(ModeSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// String lists enabled types separated by commas.
func (s ModeSet) String() string {
	enabled := s.Enabled()
	names := make([]string, len(enabled))
	for i, t := range enabled {
		names[i] = string(t)
	}
	return strings.Join(names, ",")
}

// Question is a single prompt with its expected answer.
type Question struct {
	Type   QuestionType
	Symbol string
	Prompt string
	Answer string
}

// Key identifies a question independent of its prompt wording.
func (q Question) Key() string {
	return string(q.Type) + ":" + q.Symbol
}

// Status is the outcome of an answered question.
type Status string

const (
	StatusCorrect   Status = "correct"
	StatusClose     Status = "close"
	StatusIncorrect Status = "incorrect"
)

// Counts aggregates outcomes per status.
type Counts struct {
	Correct   int
	Close     int
	Incorrect int
}

// Total returns the number of answered questions.
func (c Counts) Total() int {
	return c.Correct + c.Close + c.Incorrect
}

// Add increments the counter for status.
func (c *Counts) Add(status Status) {
	switch status {
	case StatusCorrect:
		c.Correct++
	case StatusClose:
		c.Close++
	case StatusIncorrect:
		c.Incorrect++
	}
}

// Config defines quiz settings.
type Config struct {
	Modes       ModeSet
	Filter      FilterConfig
	Seed        int64
	History     bool
	CatalogPath string
}

// StatsConfig defines filters for history reports.
type StatsConfig struct {
	Since *time.Time
	Last  int
	Top   int
}

// AnswerRecord is one entry of a finished run.
type AnswerRecord struct {
	Key    string
	Symbol string
	Type   QuestionType
	Prompt string
	Status Status
}

// RunRecord captures a finished quiz run.
type RunRecord struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Filter     string
	Modes      string
	Counts     Counts
	BestStreak int
}

// RunAggregate summarizes a stored run for reporting.
type RunAggregate struct {
	RunID      int64
	EndedAt    time.Time
	Counts     Counts
	BestStreak int
	DurationMs int64
}

// ElementAggregate aggregates answers for one element across runs.
type ElementAggregate struct {
	Symbol string
	Counts Counts
}
