package restraints

import (
	"sort"

	"github.com/lightdock/lightdock-go/coordinates"
	"github.com/lightdock/lightdock-go/structure"
)

// SwarmsPerRestraint bounds how many nearest swarm centers one restrained
// residue can contribute to the filtered set.
const SwarmsPerRestraint = 10

// ResidueLookup finds the concrete Residue for a ResidueRef within a parsed
// Complex, or nil if absent.
func ResidueLookup(c *structure.Complex, ref ResidueRef) *structure.Residue {
	for _, chain := range c.Chains {
		if chain.ID != ref.Chain {
			continue
		}
		for _, res := range chain.Residues {
			if res.Number == ref.Number && res.Insertion == ref.Insertion {
				return res
			}
		}
	}
	return nil
}

// ApplyRestraints filters swarm centers to those near the receptor's
// active/passive restraints and away from its blocked residues. When active/passive and blocking restraints are both empty, it is
// the identity transform.
func ApplyRestraints(centers []coordinates.Coordinates, receptor *structure.Complex, rset Set, ligandDiameter float64) []coordinates.Coordinates {
	if len(rset.Active) == 0 && len(rset.Passive) == 0 && len(rset.Blocked) == 0 {
		return centers
	}

	filtered := centers
	if len(rset.Active) > 0 || len(rset.Passive) > 0 {
		kept := map[int]bool{}
		radius := ligandDiameter / 2
		for _, ref := range append(append([]ResidueRef{}, rset.Active...), rset.Passive...) {
			res := ResidueLookup(receptor, ref)
			if res == nil {
				continue
			}
			atom := res.GetCalpha()
			if atom == nil {
				continue
			}
			pos := coordinates.NewFrom(atom.X, atom.Y, atom.Z)
			for _, idx := range nearestWithin(centers, pos, radius, SwarmsPerRestraint) {
				kept[idx] = true
			}
		}
		filtered = selectIndices(centers, kept)
	}

	if len(rset.Blocked) > 0 {
		blockRadius := ligandDiameter/2 - 5
		var survivors []coordinates.Coordinates
		for _, c := range filtered {
			blocked := false
			for _, ref := range rset.Blocked {
				res := ResidueLookup(receptor, ref)
				if res == nil {
					continue
				}
				atom := res.GetCalpha()
				if atom == nil {
					continue
				}
				pos := coordinates.NewFrom(atom.X, atom.Y, atom.Z)
				if c.Distance(pos) < blockRadius {
					blocked = true
					break
				}
			}
			if !blocked {
				survivors = append(survivors, c)
			}
		}
		filtered = survivors
	}

	return filtered
}

// nearestWithin returns up to maxCount indices of centers within radius of
// pos, nearest first.
func nearestWithin(centers []coordinates.Coordinates, pos coordinates.Coordinates, radius float64, maxCount int) []int {
	type candidate struct {
		idx  int
		dist float64
	}
	var candidates []candidate
	for i, c := range centers {
		d := c.Distance(pos)
		if d <= radius {
			candidates = append(candidates, candidate{i, d})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })
	if len(candidates) > maxCount {
		candidates = candidates[:maxCount]
	}
	out := make([]int, len(candidates))
	for i, c := range candidates {
		out[i] = c.idx
	}
	return out
}

func selectIndices(centers []coordinates.Coordinates, kept map[int]bool) []coordinates.Coordinates {
	idxs := make([]int, 0, len(kept))
	for i := range kept {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	out := make([]coordinates.Coordinates, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, centers[i])
	}
	return out
}
