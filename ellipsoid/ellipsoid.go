// Package ellipsoid computes the minimum-volume enclosing ellipsoid (MVEE)
// of a 3D point set via Khachiyan's algorithm, used to
// characterize the receptor and ligand for swarm-center placement.
package ellipsoid

import (
	"math"

	matrix "github.com/skelterjohn/go.matrix"

	"github.com/lightdock/lightdock-go/coordinates"
)

// tolerance is the Khachiyan convergence parameter.
const tolerance = 0.01

// maxIterations guards against non-convergence.
const maxIterations = 100

const dims = 3

// Ellipsoid is the minimum-volume ellipsoid enclosing a point set:
// {x : (x-center)^T A (x-center) <= 1}.
type Ellipsoid struct {
	Center    coordinates.Coordinates
	Shape     [dims][dims]float64 // A, symmetric positive-definite
	SemiAxes  [dims]float64       // sqrt(1/eigenvalue of A), ascending
	Radii     [dims]float64       // alias of SemiAxes, kept for callers that expect that name
}

// Compute fits the MVEE of the given points using Khachiyan's algorithm.
func Compute(points []coordinates.Coordinates) (*Ellipsoid, error) {
	n := len(points)
	if n < dims+1 {
		return nil, &DegenerateInputError{NumPoints: n, MinRequired: dims + 1}
	}

	// Q is the (d+1) x N augmented point matrix: rows 0..2 are coordinates,
	// row 3 is all ones (homogeneous lift used by Khachiyan's algorithm).
	q := matrix.Zeros(dims+1, n)
	for j, p := range points {
		for i := 0; i < dims; i++ {
			q.Set(i, j, p[i])
		}
		q.Set(dims, j, 1)
	}
	qt := q.Transpose()

	u := make([]float64, n)
	for i := range u {
		u[i] = 1.0 / float64(n)
	}

	err1 := tolerance + 1
	for iter := 0; err1 > tolerance && iter < maxIterations; iter++ {
		uDiag := matrix.Zeros(n, n)
		for i := 0; i < n; i++ {
			uDiag.Set(i, i, u[i])
		}

		x := matrix.Product(q, matrix.Product(uDiag, qt))
		xInv, invErr := x.Inverse()
		if invErr != nil {
			return nil, &SingularShapeError{Cause: invErr}
		}

		// M[j] = q_j^T * xInv * q_j for each column q_j of Q.
		m := make([]float64, n)
		tmp := matrix.Product(xInv, q)
		for j := 0; j < n; j++ {
			s := 0.0
			for i := 0; i <= dims; i++ {
				s += q.Get(i, j) * tmp.Get(i, j)
			}
			m[j] = s
		}

		maxJ, maxM := 0, m[0]
		for j := 1; j < n; j++ {
			if m[j] > maxM {
				maxJ, maxM = j, m[j]
			}
		}

		step := (maxM - float64(dims) - 1) / (float64(dims+1) * (maxM - 1))
		newU := make([]float64, n)
		diff2 := 0.0
		for i := range u {
			newU[i] = (1 - step) * u[i]
			if i == maxJ {
				newU[i] += step
			}
			d := newU[i] - u[i]
			diff2 += d * d
		}
		u = newU
		err1 = math.Sqrt(diff2)
	}

	// Center is the u-weighted centroid of the original (un-lifted) points.
	center := coordinates.New(dims)
	for j, p := range points {
		for i := 0; i < dims; i++ {
			center[i] += u[j] * p[i]
		}
	}

	// P is the N x d point matrix; shape comes from
	// A = (1/d) * inv(P^T diag(u) P - center*center^T).
	p := matrix.Zeros(n, dims)
	for j, pt := range points {
		for i := 0; i < dims; i++ {
			p.Set(j, i, pt[i])
		}
	}
	uDiag := matrix.Zeros(n, n)
	for i := 0; i < n; i++ {
		uDiag.Set(i, i, u[i])
	}
	ptup := matrix.Product(p.Transpose(), matrix.Product(uDiag, p))
	for i := 0; i < dims; i++ {
		for j := 0; j < dims; j++ {
			ptup.Set(i, j, ptup.Get(i, j)-center[i]*center[j])
		}
	}
	shapeInv, invErr := ptup.Inverse()
	if invErr != nil {
		return nil, &SingularShapeError{Cause: invErr}
	}

	var shape [dims][dims]float64
	for i := 0; i < dims; i++ {
		for j := 0; j < dims; j++ {
			shape[i][j] = shapeInv.Get(i, j) / float64(dims)
		}
	}

	eigenvalues, _ := jacobiEigenvalues(shape)
	var semiAxes [dims]float64
	for i := 0; i < dims; i++ {
		if eigenvalues[i] <= 0 || math.IsNaN(eigenvalues[i]) {
			return nil, &SingularShapeError{Cause: errNonPositiveEigenvalue}
		}
		semiAxes[i] = 1 / math.Sqrt(eigenvalues[i])
	}

	return &Ellipsoid{
		Center:   center,
		Shape:    shape,
		SemiAxes: semiAxes,
		Radii:    semiAxes,
	}, nil
}
