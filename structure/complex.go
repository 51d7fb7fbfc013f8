package structure

import "github.com/lightdock/lightdock-go/coordinates"

// Complex is one biomolecule: its chains/atoms (with stable indices), and
// one or more coordinate matrices (one per conformer / "structure" file) so
// that ensembles of input structures can share a single atom topology.
// Coordinate matrices are never mutated in place during scoring; each
// access returns or copies into a fresh slice.
type Complex struct {
	Chains              []*Chain
	Atoms               []*Atom
	AtomCoordinates     []AtomCoordinateSet // one per conformer
	StructureFileNames  []string
}

// AtomCoordinateSet is one conformer's coordinates, one Coordinates (3-vector)
// per atom, indexed by Atom.Index.
type AtomCoordinateSet []coordinates.Coordinates

// NumStructures returns the number of conformers loaded.
func (c *Complex) NumStructures() int {
	return len(c.AtomCoordinates)
}

// Representative returns a canonical single-conformer view (the first
// structure) for geometry operations that only need one set of coordinates.
func (c *Complex) Representative() AtomCoordinateSet {
	if len(c.AtomCoordinates) == 0 {
		return nil
	}
	return c.AtomCoordinates[0]
}

// CenterOfCoordinates returns the unweighted centroid of the given
// conformer's coordinates.
func (c *Complex) CenterOfCoordinates(conformer int) coordinates.Coordinates {
	coords := c.AtomCoordinates[conformer]
	center := coordinates.New(3)
	if len(coords) == 0 {
		return center
	}
	for _, p := range coords {
		center = center.Add(p)
	}
	return center.Scale(1 / float64(len(coords)))
}

// MoveToOrigin subtracts the representative conformer's unweighted centroid
// (CenterOfCoordinates(0)) from every coordinate matrix, so that the
// representative conformer's centroid is at the origin to within float
// tolerance, and returns the subtracted translation.
func (c *Complex) MoveToOrigin() coordinates.Coordinates {
	translation := c.CenterOfCoordinates(0)
	for ci := range c.AtomCoordinates {
		coords := c.AtomCoordinates[ci]
		moved := make(AtomCoordinateSet, len(coords))
		for i, p := range coords {
			moved[i] = p.Sub(translation)
		}
		c.AtomCoordinates[ci] = moved
	}
	return translation
}

// Diameter returns twice the greatest distance from the given conformer's
// centroid to any of its atoms, used by placement as receptor_diameter /
// ligand_diameter.
func (c *Complex) Diameter(conformer int) float64 {
	coords := c.AtomCoordinates[conformer]
	if len(coords) == 0 {
		return 0
	}
	center := c.CenterOfCoordinates(conformer)
	maxDist := 0.0
	for _, p := range coords {
		if d := p.Distance(center); d > maxDist {
			maxDist = d
		}
	}
	return 2 * maxDist
}
