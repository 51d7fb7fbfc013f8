// Package scoring defines the docking scoring interfaces and
// a string-keyed registry of scoring plugins. DFIRE/DFIRE2/TOBI/DDNA-class potentials are explicitly out of
// scope; see scoring/contact for the one concrete,
// self-contained implementation this package ships.
package scoring

import (
	"fmt"
	"sort"

	"github.com/lightdock/lightdock-go/restraints"
	"github.com/lightdock/lightdock-go/structure"
)

// DockingModel is the reduced, scoring-specific view of a Complex that a
// ModelAdapter produces; its concrete type is private to
// each scoring plugin.
type DockingModel interface{}

// ModelAdapter reduces a receptor/ligand Complex pair into scoring-specific
// DockingModels, optionally informed by restraints.
type ModelAdapter func(receptor, ligand *structure.Complex, rst *restraints.Restraints) (receptorModel, ligandModel DockingModel, err error)

// ScoringFunction scores a candidate pose given each partner's model and
// current coordinates. Convention: higher is better.
type ScoringFunction interface {
	Score(receptorModel DockingModel, receptorCoords structure.AtomCoordinateSet, ligandModel DockingModel, ligandCoords structure.AtomCoordinateSet) float64
}

// Factory builds one named scoring plugin's adapter and scorer pair.
type Factory func() (ModelAdapter, ScoringFunction)

var registry = map[string]Factory{}

// Register adds a named scoring plugin factory to the registry. Called from
// plugin packages' init() functions.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// Lookup builds the adapter/scorer pair for a registered scoring function
// name.
func Lookup(name string) (ModelAdapter, ScoringFunction, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, nil, fmt.Errorf("scoring: unknown scoring function %q (known: %v)", name, Names())
	}
	adapter, scorer := factory()
	return adapter, scorer, nil
}

// Names returns the registered scoring function names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RestraintFraction computes p_r or p_l: the fraction of a partner's
// restrained atom indices found in contacted, the interface-contact set a
// ScoringFunction observed this evaluation.
func RestraintFraction(restraintIndices []int, contacted map[int]bool) float64 {
	if len(restraintIndices) == 0 {
		return 0
	}
	hit := 0
	for _, idx := range restraintIndices {
		if contacted[idx] {
			hit++
		}
	}
	return float64(hit) / float64(len(restraintIndices))
}
