// Package population generates per-swarm glowworm pose vectors, grounded on
// lightdock/prep/poses.py's get_random_point_within_sphere,
// quaternion_from_vectors, get_quaternion_for_restraint, and populate_poses.
package population

import (
	"github.com/lightdock/lightdock-go/coordinates"
	"github.com/lightdock/lightdock-go/lderrors"
	"github.com/lightdock/lightdock-go/prng"
	"github.com/lightdock/lightdock-go/quat"
	"github.com/lightdock/lightdock-go/structure"
)

// DefaultExtentMu and DefaultExtentSigma are the Gaussian parameters for
// normal-mode amplitude sampling.
const (
	DefaultExtentMu    = 0.0
	DefaultExtentSigma = 0.3
)

// maxRestraintCoefficient is the ligand-only-restraint dummy-point
// rescaling bound beyond which populate_poses refuses to build a pose.
const maxRestraintCoefficient = 1.5

// randomPointWithinSphere rejection-samples a point uniformly within a
// sphere of the given radius, centered at the origin.
func randomPointWithinSphere(rng prng.Source, radius float64) coordinates.Coordinates {
	r2 := radius * radius
	for {
		x := (2*rng.Float64() - 1) * radius
		y := (2*rng.Float64() - 1) * radius
		z := (2*rng.Float64() - 1) * radius
		if x*x+y*y+z*z <= r2 {
			return coordinates.NewFrom(x, y, z)
		}
	}
}

// quaternionForRestraint builds the quaternion rotating the ligand so it
// points from the candidate translation (tx, ty, tz) at the chosen
// receptor restraint, toward the chosen ligand restraint.
func quaternionForRestraint(recResidue, ligResidue *structure.Residue, tx, ty, tz float64, recTranslation, ligTranslation coordinates.Coordinates) quat.Quaternion {
	rCA := recResidue.GetCalpha()
	lCA := ligResidue.GetCalpha()

	rx := rCA.X + recTranslation[0]
	ry := rCA.Y + recTranslation[1]
	rz := rCA.Z + recTranslation[2]

	lx := lCA.X + ligTranslation[0]
	ly := lCA.Y + ligTranslation[1]
	lz := lCA.Z + ligTranslation[2]

	a := coordinates.NewFrom(lx, ly, lz)
	b := coordinates.NewFrom(rx-tx, ry-ty, rz-tz)
	return quat.FromVectors(a, b)
}

// closestReceptorRestraints returns the indices (into receptorRestraints)
// of the residues nearest to center, nearest first, capped at maxCount.
func closestReceptorRestraints(receptorRestraints []*structure.Residue, center coordinates.Coordinates, maxCount int) []int {
	type candidate struct {
		idx  int
		dist float64
	}
	candidates := make([]candidate, 0, len(receptorRestraints))
	for i, residue := range receptorRestraints {
		ca := residue.GetCalpha()
		if ca == nil {
			continue
		}
		pos := coordinates.NewFrom(ca.X, ca.Y, ca.Z)
		candidates = append(candidates, candidate{i, pos.Distance(center)})
	}
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j].dist < candidates[j-1].dist; j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}
	if len(candidates) > maxCount {
		candidates = candidates[:maxCount]
	}
	out := make([]int, len(candidates))
	for i, c := range candidates {
		out[i] = c.idx
	}
	return out
}

// closestRestraintCount is the number of nearest receptor restraints
// considered when picking one to orient a pose toward.
const closestRestraintCount = 10

// PopulatePoses creates toGenerate pose vectors around center, within a
// sphere of the given radius, orienting each one toward a chosen restraint
// pair when restraints are given. rngNM may be nil when normal modes are
// disabled, in which case recNM and ligNM are ignored.
func PopulatePoses(toGenerate int, center coordinates.Coordinates, radius float64, rng prng.Source, recTranslation, ligTranslation coordinates.Coordinates, rngNM *prng.NormalGenerator, recNM, ligNM int, receptorRestraints, ligandRestraints []*structure.Residue, ligandDiameter float64) ([][]float64, error) {
	var closest []int
	if len(receptorRestraints) > 0 {
		closest = closestReceptorRestraints(receptorRestraints, center, closestRestraintCount)
	}

	poses := make([][]float64, 0, toGenerate)
	for n := 0; n < toGenerate; n++ {
		offset := randomPointWithinSphere(rng, radius)
		tx, ty, tz := center[0]+offset[0], center[1]+offset[1], center[2]+offset[2]

		var q quat.Quaternion
		switch {
		case len(receptorRestraints) > 0 && len(ligandRestraints) > 0:
			recResidue := receptorRestraints[closest[prng.RandInt(rng, 0, len(closest)-1)]]
			ligResidue := ligandRestraints[prng.RandInt(rng, 0, len(ligandRestraints)-1)]
			q = quaternionForRestraint(recResidue, ligResidue, tx, ty, tz, recTranslation, ligTranslation)

		case len(ligandRestraints) > 0:
			coef := center.Norm() / ligandDiameter
			if coef > maxRestraintCoefficient {
				return nil, &lderrors.LightDockWarning{
					Context: "populate_poses",
					Reason:  "wrong coefficient calculating poses with ligand-only restraints",
				}
			}
			recResidue := structure.Dummy(
				center[0]*coef-recTranslation[0],
				center[1]*coef-recTranslation[1],
				center[2]*coef-recTranslation[2],
			)
			ligResidue := ligandRestraints[prng.RandInt(rng, 0, len(ligandRestraints)-1)]
			q = quaternionForRestraint(recResidue, ligResidue, tx, ty, tz, recTranslation, ligTranslation)

		default:
			q = quat.RandomFrom(rng.Float64)
		}

		pose := []float64{tx, ty, tz, q.W, q.X, q.Y, q.Z}
		if rngNM != nil {
			for i := 0; i < recNM; i++ {
				pose = append(pose, rngNM.Next())
			}
			for i := 0; i < ligNM; i++ {
				pose = append(pose, rngNM.Next())
			}
		}
		poses = append(poses, pose)
	}
	return poses, nil
}
