// Package catalog loads the periodic table used by the quiz.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Chokichi/Chemistry-Quiz-App/internal/model"
)

//go:embed elements.yaml
var builtin []byte

type fileCatalog struct {
	Elements []fileElement `yaml:"elements"`
}

type fileElement struct {
	Number int    `yaml:"number"`
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
	Group  int    `yaml:"group"`
	Period int    `yaml:"period"`
	Family string `yaml:"family"`
	Charge *int   `yaml:"charge"`
}

// Default returns the built-in catalog of all 118 elements.
func Default() []model.Element {
	elements, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return elements
}

// Load reads a catalog file. An empty path selects the built-in catalog.
func Load(path string) ([]model.Element, error) {
	if path == "" {
		return Parse(builtin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	elements, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return elements, nil
}

// Parse decodes and validates YAML catalog data. Elements are returned in
// atomic-number order.
func Parse(data []byte) ([]model.Element, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(fc.Elements) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	seen := make(map[string]struct{}, len(fc.Elements))
	elements := make([]model.Element, 0, len(fc.Elements))
	for i, fe := range fc.Elements {
		el, err := fe.toElement()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i+1, err)
		}
		if _, dup := seen[el.Symbol]; dup {
			return nil, fmt.Errorf("element %d: duplicate symbol %q", i+1, el.Symbol)
		}
		seen[el.Symbol] = struct{}{}
		elements = append(elements, el)
	}
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].Number < elements[j].Number
	})
	return elements, nil
}

func (fe fileElement) toElement() (model.Element, error) {
	symbol := strings.TrimSpace(fe.Symbol)
	name := strings.TrimSpace(fe.Name)
	family := model.Family(strings.ToLower(strings.TrimSpace(fe.Family)))
	switch {
	case symbol == "":
		return model.Element{}, fmt.Errorf("symbol is required")
	case name == "":
		return model.Element{}, fmt.Errorf("%s: name is required", symbol)
	case fe.Period < 1 || fe.Period > model.MaxPeriod:
		return model.Element{}, fmt.Errorf("%s: period must be between 1 and %d", symbol, model.MaxPeriod)
	case fe.Group < 0 || fe.Group > 18:
		return model.Element{}, fmt.Errorf("%s: group must be between 1 and 18 or omitted", symbol)
	case !family.Valid():
		return model.Element{}, fmt.Errorf("%s: unknown family %q", symbol, fe.Family)
	}
	var charge *int
	if fe.Charge != nil {
		c := *fe.Charge
		charge = &c
	}
	return model.Element{
		Number: fe.Number,
		Symbol: symbol,
		Name:   name,
		Group:  fe.Group,
		Period: fe.Period,
		Family: family,
		Charge: charge,
	}, nil
}

// BySymbol indexes elements by symbol.
func BySymbol(elements []model.Element) map[string]model.Element {
	index := make(map[string]model.Element, len(elements))
	for _, el := range elements {
		index[el.Symbol] = el
	}
	return index
}
