package gso

import (
	"testing"

	"github.com/lightdock/lightdock-go/coordinates"
	"github.com/lightdock/lightdock-go/quat"
	"github.com/lightdock/lightdock-go/scoring/contact"
	"github.com/lightdock/lightdock-go/structure"
)

func oneAtomComplex(t *testing.T, chain string, x, y, z float64) *structure.Complex {
	t.Helper()
	atom, err := structure.NewAtom(1, "CA", "", chain, "ALA", 1, "", x, y, z, 1, 0, "C")
	if err != nil {
		t.Fatalf("NewAtom() error: %v", err)
	}
	atom.Index = 0
	residue := &structure.Residue{Name: "ALA", Number: 1, ChainID: chain, Atoms: []*structure.Atom{atom}}
	return &structure.Complex{
		Chains:          []*structure.Chain{{ID: chain, Residues: []*structure.Residue{residue}}},
		Atoms:           []*structure.Atom{atom},
		AtomCoordinates: []structure.AtomCoordinateSet{{coordinates.NewFrom(x, y, z)}},
	}
}

func TestDockingObjectiveScoresIdentityPoseAsUnmovedContact(t *testing.T) {
	receptor := oneAtomComplex(t, "A", 0, 0, 0)
	ligand := oneAtomComplex(t, "B", 3, 0, 0)

	adapter, scorer := contact.Adapt, &contact.Scorer{Cutoff: contact.DefaultCutoff, Weight: contact.DefaultWeight}
	d, err := NewDocking(receptor, ligand, adapter, scorer, nil, nil, nil, 0, 0)
	if err != nil {
		t.Fatalf("NewDocking() error: %v", err)
	}
	objective := d.Objective()

	identity := quat.Identity()
	pose := coordinates.NewFrom(0, 0, 0, identity.W, identity.X, identity.Y, identity.Z)
	got := objective(pose)
	if got != 1 {
		t.Errorf("Objective()(identity pose) = %v, want 1 (ligand stays within cutoff)", got)
	}
}

func TestDockingObjectiveMovesLigandOutOfContactUnderTranslation(t *testing.T) {
	receptor := oneAtomComplex(t, "A", 0, 0, 0)
	ligand := oneAtomComplex(t, "B", 3, 0, 0)

	adapter, scorer := contact.Adapt, &contact.Scorer{Cutoff: contact.DefaultCutoff, Weight: contact.DefaultWeight}
	d, err := NewDocking(receptor, ligand, adapter, scorer, nil, nil, nil, 0, 0)
	if err != nil {
		t.Fatalf("NewDocking() error: %v", err)
	}
	objective := d.Objective()

	identity := quat.Identity()
	pose := coordinates.NewFrom(100, 0, 0, identity.W, identity.X, identity.Y, identity.Z)
	got := objective(pose)
	if got != 0 {
		t.Errorf("Objective()(far translation) = %v, want 0 (ligand moved far from receptor)", got)
	}
}
