package gso

import (
	"github.com/lightdock/lightdock-go/anm"
	"github.com/lightdock/lightdock-go/coordinates"
	"github.com/lightdock/lightdock-go/restraints"
	"github.com/lightdock/lightdock-go/scoring"
	"github.com/lightdock/lightdock-go/structure"
)

// Docking holds everything a docking Objective needs to turn a pose vector
// into a score: the reduced scoring models, the receptor/ligand base
// coordinates (already moved to the origin), and, when ANM is enabled, the
// atom-expanded mode displacements.
type Docking struct {
	Layout PoseLayout

	Scorer scoring.ScoringFunction

	ReceptorModel scoring.DockingModel
	LigandModel   scoring.DockingModel

	ReceptorBase structure.AtomCoordinateSet
	LigandBase   structure.AtomCoordinateSet

	ReceptorModes []anm.Mode // atom-expanded; empty when ANM is disabled
	LigandModes   []anm.Mode
}

// NewDocking builds a Docking from a receptor/ligand Complex pair, a
// registered scoring plugin, and (optionally) the per-residue ANM modes
// computed during setup. Mode displacements are expanded from residue trace
// to per-atom before being stored, so the objective closure only ever deals
// in plain per-atom vector addition (anm.ApplyModes).
func NewDocking(receptor, ligand *structure.Complex, adapter scoring.ModelAdapter, scorer scoring.ScoringFunction, rst *restraints.Restraints, recModes, ligModes []anm.Mode, recNM, ligNM int) (*Docking, error) {
	recModel, ligModel, err := adapter(receptor, ligand, rst)
	if err != nil {
		return nil, err
	}
	d := &Docking{
		Layout:        PoseLayout{RecNM: recNM, LigNM: ligNM},
		Scorer:        scorer,
		ReceptorModel: recModel,
		LigandModel:   ligModel,
		ReceptorBase:  receptor.Representative(),
		LigandBase:    ligand.Representative(),
	}
	if recNM > 0 {
		d.ReceptorModes = expandModesToAtoms(receptor, recModes)
	}
	if ligNM > 0 {
		d.LigandModes = expandModesToAtoms(ligand, ligModes)
	}
	return d, nil
}

// expandModesToAtoms copies each mode's per-residue Cα/P-trace displacement
// onto every atom of that residue, in the same chain/residue order
// setup.CaTrace used to build the trace; residues with no Cα/P get a zero
// displacement. This is a simplification of the original implementation's
// least-squares all-atom mode extension (see DESIGN.md).
func expandModesToAtoms(c *structure.Complex, modes []anm.Mode) []anm.Mode {
	out := make([]anm.Mode, len(modes))
	for m, mode := range modes {
		disp := make([]coordinates.Coordinates, len(c.Atoms))
		for i := range disp {
			disp[i] = coordinates.New(3)
		}
		traceIdx := 0
		for _, chain := range c.Chains {
			for _, residue := range chain.Residues {
				ca := residue.GetCalpha()
				if ca == nil {
					continue
				}
				d := mode.Displacements[traceIdx]
				for _, atom := range residue.Atoms {
					disp[atom.Index] = d
				}
				traceIdx++
			}
		}
		out[m] = anm.Mode{Eigenvalue: mode.Eigenvalue, Displacements: disp}
	}
	return out
}

// Objective returns the gso.Objective closure scoring a docking pose vector
// laid out as d.Layout describes: the ligand's base coordinates are flexed
// by its NM extents, rigidly transformed by the pose's translation and
// quaternion, and scored against the receptor's own (possibly flexed) base
// coordinates.
func (d *Docking) Objective() Objective {
	return func(pose coordinates.Coordinates) float64 {
		recCoords := d.ReceptorBase
		if len(d.ReceptorModes) > 0 {
			extents := pose[7 : 7+d.Layout.RecNM]
			recCoords, _ = anm.ApplyModes(d.ReceptorBase, d.ReceptorModes, extents)
		}

		ligFlexed := d.LigandBase
		if len(d.LigandModes) > 0 {
			extents := pose[7+d.Layout.RecNM : 7+d.Layout.RecNM+d.Layout.LigNM]
			ligFlexed, _ = anm.ApplyModes(d.LigandBase, d.LigandModes, extents)
		}

		t := d.Layout.translation(pose)
		q := d.Layout.orientation(pose)
		ligCoords := make(structure.AtomCoordinateSet, len(ligFlexed))
		for i, p := range ligFlexed {
			ligCoords[i] = q.Rotate(p).Add(t)
		}

		return d.Scorer.Score(d.ReceptorModel, recCoords, d.LigandModel, ligCoords)
	}
}
