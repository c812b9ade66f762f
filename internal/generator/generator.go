// Package generator builds quiz questions from elements.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Chokichi/Chemistry-Quiz-App/internal/match"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/model"
)

// Generator produces randomized question order and types.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return NewWithSource(rand.NewSource(seed))
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Shuffle permutes elements in place uniformly at random.
func (g *Generator) Shuffle(elements []model.Element) {
	g.rnd.Shuffle(len(elements), func(i, j int) {
		elements[i], elements[j] = elements[j], elements[i]
	})
}

// PickType selects one enabled question type uniformly. Types the element
// cannot answer are skipped; with nothing left it falls back to symbol-to-name.
func (g *Generator) PickType(modes model.ModeSet, el model.Element) model.QuestionType {
	enabled := modes.Enabled()
	candidates := make([]model.QuestionType, 0, len(enabled))
	for _, t := range enabled {
		if Supports(el, t) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return model.SymbolToName
	}
	return candidates[g.rnd.Intn(len(candidates))]
}

// Next pops the last element of pool and builds a question for it.
func (g *Generator) Next(pool []model.Element, modes model.ModeSet) (model.Question, []model.Element, bool) {
	if len(pool) == 0 {
		return model.Question{}, pool, false
	}
	el := pool[len(pool)-1]
	rest := pool[:len(pool)-1]
	return BuildQuestion(el, g.PickType(modes, el)), rest, true
}

// Supports reports whether el can be asked with question type t.
func Supports(el model.Element, t model.QuestionType) bool {
	if t == model.SymbolToCharge {
		return el.HasCharge()
	}
	return true
}

// BuildQuestion constructs the prompt and expected answer for el.
func BuildQuestion(el model.Element, t model.QuestionType) model.Question {
	q := model.Question{Type: t, Symbol: el.Symbol}
	switch t {
	case model.NameToSymbol:
		q.Prompt = fmt.Sprintf("What is the symbol for %s?", el.Name)
		q.Answer = el.Symbol
	case model.SymbolToCharge:
		q.Prompt = fmt.Sprintf("What is the common charge of %s?", el.Symbol)
		if el.HasCharge() {
			q.Answer = match.ChargeString(*el.Charge)
		}
	case model.FamilyOf:
		q.Prompt = fmt.Sprintf("Which family does %s belong to?", el.Symbol)
		q.Answer = string(el.Family)
	default:
		q.Type = model.SymbolToName
		q.Prompt = fmt.Sprintf("What is the name of %s?", el.Symbol)
		q.Answer = el.Name
	}
	return q
}
