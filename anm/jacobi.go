package anm

import "math"

// jacobiEigenSymmetric returns the eigenvalues (ascending) and eigenvectors
// (as columns, same order) of a symmetric n×n matrix a, via the cyclic
// Jacobi rotation method. This is the same algorithm as
// ellipsoid.jacobiEigenvalues, generalized from a fixed 3×3 array to an
// arbitrary n×n slice-of-slices since the ANM Hessian's dimension (3×number
// of atoms) is not known at compile time; see DESIGN.md for why this sweep
// is hand-rolled rather than a grounded go.matrix call.
func jacobiEigenSymmetric(a [][]float64) (values []float64, vectors [][]float64) {
	n := len(a)
	m := make([][]float64, n)
	for i := range m {
		m[i] = append([]float64{}, a[i]...)
	}
	v := make([][]float64, n)
	for i := range v {
		v[i] = make([]float64, n)
		v[i][i] = 1
	}

	const maxSweeps = 100
	for sweep := 0; sweep < maxSweeps; sweep++ {
		offDiag := 0.0
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				offDiag += m[p][q] * m[p][q]
			}
		}
		if offDiag < 1e-20 {
			break
		}
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				if math.Abs(m[p][q]) < 1e-300 {
					continue
				}
				theta := (m[q][q] - m[p][p]) / (2 * m[p][q])
				t := math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				if theta == 0 {
					t = 1
				}
				c := 1 / math.Sqrt(t*t+1)
				s := t * c

				mpp, mqq, mpq := m[p][p], m[q][q], m[p][q]
				m[p][p] = c*c*mpp - 2*s*c*mpq + s*s*mqq
				m[q][q] = s*s*mpp + 2*s*c*mpq + c*c*mqq
				m[p][q] = 0
				m[q][p] = 0

				for i := 0; i < n; i++ {
					if i != p && i != q {
						mip, miq := m[i][p], m[i][q]
						m[i][p] = c*mip - s*miq
						m[p][i] = m[i][p]
						m[i][q] = s*mip + c*miq
						m[q][i] = m[i][q]
					}
				}
				for i := 0; i < n; i++ {
					vip, viq := v[i][p], v[i][q]
					v[i][p] = c*vip - s*viq
					v[i][q] = s*vip + c*viq
				}
			}
		}
	}

	values = make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = m[i][i]
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if values[idx[j]] < values[idx[i]] {
				idx[i], idx[j] = idx[j], idx[i]
			}
		}
	}
	sortedValues := make([]float64, n)
	sortedVectors := make([][]float64, n)
	for i := range sortedVectors {
		sortedVectors[i] = make([]float64, n)
	}
	for newPos, oldPos := range idx {
		sortedValues[newPos] = values[oldPos]
		for row := 0; row < n; row++ {
			sortedVectors[row][newPos] = v[row][oldPos]
		}
	}
	return sortedValues, sortedVectors
}
