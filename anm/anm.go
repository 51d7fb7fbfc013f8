// Package anm implements the elastic network model (ANM) used to compute
// low-frequency normal modes of a Complex's Cα/P trace, and to apply
// mode-amplitude extents to coordinates during GSO.
package anm

import (
	"fmt"

	matrix "github.com/skelterjohn/go.matrix"

	"github.com/lightdock/lightdock-go/coordinates"
)

// Defaults for Hessian construction and mode extraction, following standard
// Tirion/Hinsen ANM parameter choices (see DESIGN.md).
const (
	DefaultCutoff         = 15.0 // Å, pairwise interaction cutoff
	DefaultSpringConstant = 1.0
	DefaultNumModes       = 10
	// rigidBodyModes is the count of zero-eigenvalue translation/rotation
	// modes every ANM Hessian carries, skipped when extracting non-trivial
	// low-frequency modes.
	rigidBodyModes = 6
)

// Mode is one non-trivial low-frequency normal mode: a per-atom
// displacement vector and its eigenvalue (proportional to squared
// frequency; modes are returned ascending by eigenvalue, i.e. softest
// first).
type Mode struct {
	Eigenvalue    float64
	Displacements []coordinates.Coordinates // one 3-vector per atom
}

// BuildHessian constructs the 3n×3n ANM Hessian for the given Cα/P trace
// coordinates, using an inverse-square spring model between any pair within
// cutoff.
func BuildHessian(trace []coordinates.Coordinates, cutoff, springConstant float64) *matrix.DenseMatrix {
	n := len(trace)
	h := matrix.Zeros(3*n, 3*n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := trace[i].Distance(trace[j])
			if d > cutoff || d == 0 {
				continue
			}
			diff := trace[i].Sub(trace[j])
			factor := springConstant / (d * d)
			for a := 0; a < 3; a++ {
				for b := 0; b < 3; b++ {
					block := -factor * diff[a] * diff[b]
					h.Set(3*i+a, 3*j+b, block)
					h.Set(3*j+b, 3*i+a, block)
				}
			}
		}
	}
	// Diagonal blocks: H_ii = -sum_{j != i} H_ij.
	for i := 0; i < n; i++ {
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				s := 0.0
				for j := 0; j < n; j++ {
					if j == i {
						continue
					}
					s += h.Get(3*i+a, 3*j+b)
				}
				h.Set(3*i+a, 3*i+b, -s)
			}
		}
	}
	return h
}

// ComputeModes builds the Hessian for the given trace and extracts the
// numModes softest non-trivial modes (the six rigid-body zero modes are
// skipped).
func ComputeModes(trace []coordinates.Coordinates, cutoff, springConstant float64, numModes int) ([]Mode, error) {
	n := len(trace)
	if n == 0 {
		return nil, fmt.Errorf("anm: cannot compute modes for an empty trace")
	}
	dim := 3 * n
	if numModes > dim-rigidBodyModes {
		return nil, fmt.Errorf("anm: requested %d modes but only %d non-trivial modes exist for %d atoms", numModes, dim-rigidBodyModes, n)
	}

	h := BuildHessian(trace, cutoff, springConstant)
	dense := make([][]float64, dim)
	for i := range dense {
		dense[i] = make([]float64, dim)
		for j := 0; j < dim; j++ {
			dense[i][j] = h.Get(i, j)
		}
	}

	values, vectors := jacobiEigenSymmetric(dense)

	modes := make([]Mode, numModes)
	for m := 0; m < numModes; m++ {
		col := rigidBodyModes + m
		disp := make([]coordinates.Coordinates, n)
		for i := 0; i < n; i++ {
			disp[i] = coordinates.NewFrom(vectors[3*i][col], vectors[3*i+1][col], vectors[3*i+2][col])
		}
		modes[m] = Mode{Eigenvalue: values[col], Displacements: disp}
	}
	return modes, nil
}

// ApplyModes returns base displaced by the given modes scaled by extents.
// len(extents) must equal len(modes).
func ApplyModes(base []coordinates.Coordinates, modes []Mode, extents []float64) ([]coordinates.Coordinates, error) {
	if len(extents) != len(modes) {
		return nil, fmt.Errorf("anm: %d extents for %d modes", len(extents), len(modes))
	}
	out := make([]coordinates.Coordinates, len(base))
	for i, p := range base {
		out[i] = p.Clone()
	}
	for m, mode := range modes {
		extent := extents[m]
		if extent == 0 {
			continue
		}
		for i := range out {
			out[i] = out[i].Add(mode.Displacements[i].Scale(extent))
		}
	}
	return out, nil
}
