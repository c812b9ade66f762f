package pool

import (
	"testing"

	"github.com/Chokichi/Chemistry-Quiz-App/internal/catalog"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/model"
)

func TestChem20ListSize(t *testing.T) {
	symbols := Chem20Symbols()
	if len(symbols) != 36 {
		t.Fatalf("expected 36 reference symbols, got %d", len(symbols))
	}
	index := catalog.BySymbol(catalog.Default())
	for _, s := range symbols {
		if _, ok := index[s]; !ok {
			t.Fatalf("reference symbol %q missing from catalog", s)
		}
	}
}

func TestBuildChem20(t *testing.T) {
	elements := Build(catalog.Default(), model.FilterConfig{Chem20: true, MaxRow: 7})
	if len(elements) != 36 {
		t.Fatalf("expected 36 elements, got %d", len(elements))
	}
}

func TestBuildNoFlagsFallsBackToAllButRareEarths(t *testing.T) {
	cat := catalog.Default()
	elements := Build(cat, model.FilterConfig{MaxRow: 7})
	rare := 0
	for _, e := range cat {
		if IsRareEarth(e) {
			rare++
		}
	}
	if len(elements) != len(cat)-rare {
		t.Fatalf("expected %d elements, got %d", len(cat)-rare, len(elements))
	}
	for _, e := range elements {
		if IsRareEarth(e) {
			t.Fatalf("unexpected rare earth %s", e.Symbol)
		}
	}
}

func TestBuildRareEarthsOnly(t *testing.T) {
	elements := Build(catalog.Default(), model.FilterConfig{IncludeRareEarths: true, MaxRow: 7})
	if len(elements) == 0 {
		t.Fatalf("expected rare earth elements")
	}
	for _, e := range elements {
		if !IsRareEarth(e) {
			t.Fatalf("unexpected non rare earth %s", e.Symbol)
		}
	}
}

func TestBuildTransitionExcludesLanthanum(t *testing.T) {
	elements := Build(catalog.Default(), model.FilterConfig{Transition: true, MaxRow: 7})
	for _, e := range elements {
		if e.Symbol == "La" || e.Symbol == "Ac" || e.Symbol == "Rf" {
			t.Fatalf("rare earth %s leaked into transition pool", e.Symbol)
		}
		if e.Group < 3 || e.Group > 12 {
			t.Fatalf("unexpected group %d for %s", e.Group, e.Symbol)
		}
	}
	withRare := Build(catalog.Default(), model.FilterConfig{Transition: true, IncludeRareEarths: true, MaxRow: 7})
	if len(withRare) <= len(elements) {
		t.Fatalf("expected rare earths to extend the pool")
	}
}

func TestBuildMainGroupRowLimit(t *testing.T) {
	elements := Build(catalog.Default(), model.FilterConfig{MainGroup: true, MaxRow: 2})
	if len(elements) != 10 {
		t.Fatalf("expected 10 main-group elements in rows 1-2, got %d", len(elements))
	}
}

func TestBuildInvariants(t *testing.T) {
	cat := catalog.Default()
	// Catalog with a duplicate symbol to check dedup.
	cat = append(cat, cat[0])
	for mask := 0; mask < 16; mask++ {
		for row := 1; row <= 7; row++ {
			cfg := model.FilterConfig{
				Chem20:            mask&1 != 0,
				MainGroup:         mask&2 != 0,
				Transition:        mask&4 != 0,
				IncludeRareEarths: mask&8 != 0,
				MaxRow:            row,
			}
			seen := map[string]bool{}
			for _, e := range Build(cat, cfg) {
				if e.Period > row {
					t.Fatalf("%v: %s period %d exceeds max row", cfg, e.Symbol, e.Period)
				}
				if IsRareEarth(e) && !cfg.IncludeRareEarths {
					t.Fatalf("%v: rare earth %s included", cfg, e.Symbol)
				}
				if seen[e.Symbol] {
					t.Fatalf("%v: duplicate %s", cfg, e.Symbol)
				}
				seen[e.Symbol] = true
			}
		}
	}
}
