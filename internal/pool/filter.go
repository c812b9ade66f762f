// Package pool selects the working set of elements for a quiz cycle.
package pool

import "github.com/Chokichi/Chemistry-Quiz-App/internal/model"

// FilterFunc returns true when an element should be kept.
type FilterFunc func(model.Element) bool

var chem20 = []string{
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn", "Br",
	"Ag", "Sn", "I", "Ba", "Pt", "Au", "Hg", "Pb",
}

var chem20Set = func() map[string]struct{} {
	set := make(map[string]struct{}, len(chem20))
	for _, s := range chem20 {
		set[s] = struct{}{}
	}
	return set
}()

// Chem20Symbols returns the reference list of commonly taught symbols.
func Chem20Symbols() []string {
	return append([]string(nil), chem20...)
}

// IsRareEarth reports whether e is a lanthanide, actinide, transactinide or
// of unknown chemistry.
func IsRareEarth(e model.Element) bool {
	switch e.Family {
	case model.FamilyLanthanide, model.FamilyActinide, model.FamilyTransactinide, model.FamilyUnknown:
		return true
	default:
		return false
	}
}

func inChem20(e model.Element) bool {
	_, ok := chem20Set[e.Symbol]
	return ok
}

func isMainGroup(e model.Element) bool {
	return e.HasGroup() && (e.Group <= 2 || e.Group >= 13)
}

func isTransition(e model.Element) bool {
	return e.Group >= 3 && e.Group <= 12
}

func all(model.Element) bool { return true }

// Rules returns the inclusion rules enabled by cfg. With no flag set the
// single rule accepts everything.
func Rules(cfg model.FilterConfig) []FilterFunc {
	var rules []FilterFunc
	if cfg.Chem20 {
		rules = append(rules, inChem20)
	}
	if cfg.MainGroup {
		rules = append(rules, isMainGroup)
	}
	if cfg.Transition {
		rules = append(rules, isTransition)
	}
	if len(rules) == 0 && !cfg.IncludeRareEarths {
		rules = append(rules, all)
	}
	return rules
}

// Build returns the elements selected by cfg, deduplicated by symbol, in
// catalog order.
//
// Rare earths are dropped before any inclusion rule runs unless
// IncludeRareEarths is set, in which case they are added as their own rule.
// Every selected element must sit in a period no greater than MaxRow.
func Build(catalog []model.Element, cfg model.FilterConfig) []model.Element {
	rules := Rules(cfg)
	seen := make(map[string]struct{}, len(catalog))
	out := make([]model.Element, 0, len(catalog))
	for _, e := range catalog {
		if _, dup := seen[e.Symbol]; dup {
			continue
		}
		if e.Period > cfg.MaxRow {
			continue
		}
		if !selected(e, cfg, rules) {
			continue
		}
		seen[e.Symbol] = struct{}{}
		out = append(out, e)
	}
	return out
}

func selected(e model.Element, cfg model.FilterConfig, rules []FilterFunc) bool {
	if IsRareEarth(e) {
		return cfg.IncludeRareEarths
	}
	for _, rule := range rules {
		if rule(e) {
			return true
		}
	}
	return false
}
