// Package contact implements a restraint-weighted contact-count scoring
// function, registered under both "contact" and "contact-fast", mirroring
// the reference implementation's own DFIRE/fastdfire pair: two registry
// names, one a faster variant of the other.
package contact

import (
	"strconv"

	"github.com/lightdock/lightdock-go/restraints"
	"github.com/lightdock/lightdock-go/scoring"
	"github.com/lightdock/lightdock-go/structure"
)

// DefaultCutoff is the heavy-atom distance (Å) below which a receptor/ligand
// atom pair counts as a contact.
const DefaultCutoff = 5.0

// DefaultWeight scales the final score.
const DefaultWeight = 1.0

func init() {
	scoring.Register("contact", func() (scoring.ModelAdapter, scoring.ScoringFunction) {
		return Adapt, &Scorer{Cutoff: DefaultCutoff, Weight: DefaultWeight}
	})
	scoring.Register("contact-fast", func() (scoring.ModelAdapter, scoring.ScoringFunction) {
		return Adapt, &Scorer{Cutoff: DefaultCutoff, Weight: DefaultWeight, FirstHitOnly: true}
	})
}

// Model is the contact scorer's reduced view of a Complex: its heavy atoms,
// and the subset of those atom indices belonging to active/passive
// restrained residues.
type Model struct {
	Atoms            []*structure.Atom
	RestraintIndices []int
}

// Adapt builds contact Models for receptor and ligand. Hydrogens are excluded, matching the original's heavy-atom-
// only contact convention.
func Adapt(receptor, ligand *structure.Complex, rst *restraints.Restraints) (scoring.DockingModel, scoring.DockingModel, error) {
	var recSet, ligSet restraints.Set
	if rst != nil {
		recSet, ligSet = rst.Receptor, rst.Ligand
	}
	return buildModel(receptor, recSet), buildModel(ligand, ligSet), nil
}

func buildModel(c *structure.Complex, rset restraints.Set) *Model {
	m := &Model{}
	refs := map[string]bool{}
	for _, ref := range append(append([]restraints.ResidueRef{}, rset.Active...), rset.Passive...) {
		refs[restraintKey(ref)] = true
	}

	for _, atom := range c.Atoms {
		if atom.IsHydrogen() {
			continue
		}
		m.Atoms = append(m.Atoms, atom)
		if refs[atomKey(atom)] {
			m.RestraintIndices = append(m.RestraintIndices, atom.Index)
		}
	}
	return m
}

func restraintKey(ref restraints.ResidueRef) string {
	return ref.Chain + "." + strconv.Itoa(ref.Number) + ref.Insertion
}

func atomKey(a *structure.Atom) string {
	return a.ChainID + "." + strconv.Itoa(a.ResidueNum) + a.Insertion
}

// Scorer implements scoring.ScoringFunction as a restraint-weighted contact
// count: `result = (E + p_r·E + p_l·E)·weight`, where E is
// the raw contact count between receptor and ligand heavy atoms. When
// FirstHitOnly is set ("contact-fast"), each ligand atom stops searching
// receptor atoms after its first contact, trading precision in the raw
// count for fewer distance evaluations.
type Scorer struct {
	Cutoff       float64
	Weight       float64
	FirstHitOnly bool
}

// Score implements scoring.ScoringFunction.
func (s *Scorer) Score(receptorModel scoring.DockingModel, receptorCoords structure.AtomCoordinateSet, ligandModel scoring.DockingModel, ligandCoords structure.AtomCoordinateSet) float64 {
	rm := receptorModel.(*Model)
	lm := ligandModel.(*Model)

	count := 0
	recContacted := map[int]bool{}
	ligContacted := map[int]bool{}
	for _, la := range lm.Atoms {
		lp := ligandCoords[la.Index]
		for _, ra := range rm.Atoms {
			rp := receptorCoords[ra.Index]
			if lp.Distance(rp) <= s.Cutoff {
				count++
				recContacted[ra.Index] = true
				ligContacted[la.Index] = true
				if s.FirstHitOnly {
					break
				}
			}
		}
	}

	pr := scoring.RestraintFraction(rm.RestraintIndices, recContacted)
	pl := scoring.RestraintFraction(lm.RestraintIndices, ligContacted)
	e := float64(count)
	return (e + pr*e + pl*e) * s.Weight
}
