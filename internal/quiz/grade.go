package quiz

import (
	"strings"

	"github.com/Chokichi/Chemistry-Quiz-App/internal/match"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/model"
)

// Grade compares input against the expected answer of q.
//
// Symbols compare case-sensitively, everything else ignores case. Family and
// charge answers are normalized on both sides first. Only names and families
// can be graded close.
func Grade(q model.Question, input string) model.Status {
	given := comparable(q.Type, input)
	if given == "" {
		return model.StatusIncorrect
	}
	expected := comparable(q.Type, q.Answer)
	if given == expected {
		return model.StatusCorrect
	}
	if allowsTypos(q.Type) && match.IsCloseEnough(expected, given) {
		return model.StatusClose
	}
	return model.StatusIncorrect
}

func comparable(t model.QuestionType, s string) string {
	s = strings.TrimSpace(s)
	switch t {
	case model.NameToSymbol:
		return s
	case model.FamilyOf:
		return match.NormalizeFamily(s)
	case model.SymbolToCharge:
		return match.NormalizeCharge(s)
	default:
		return strings.ToLower(s)
	}
}

func allowsTypos(t model.QuestionType) bool {
	return t == model.FamilyOf || t == model.SymbolToName
}
