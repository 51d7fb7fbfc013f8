// Package quat implements unit quaternion algebra for 3D rotations: pose
// orientation, SLERP interpolation, and uniform random sampling on SO(3).
package quat

import (
	"fmt"
	"math"

	"github.com/lightdock/lightdock-go/coordinates"
)

// degenerateTolerance bounds how close a*b/(|a||b|) must be to -1 before a
// pair of vectors is considered anti-parallel.
const degenerateTolerance = 1e-6

// Quaternion is a unit quaternion (w, x, y, z).
type Quaternion struct {
	W, X, Y, Z float64
}

// Identity returns the identity rotation.
func Identity() Quaternion {
	return Quaternion{W: 1}
}

// New builds a quaternion from raw components and normalizes it.
func New(w, x, y, z float64) Quaternion {
	return Quaternion{w, x, y, z}.Normalized()
}

// Norm returns the Euclidean norm of q's components.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalized returns q scaled to unit norm. The identity quaternion is
// returned if q has zero norm (degenerate input).
func (q Quaternion) Normalized() Quaternion {
	n := q.Norm()
	if n == 0 {
		return Identity()
	}
	return Quaternion{q.W / n, q.X / n, q.Y / n, q.Z / n}
}

// Conjugate returns the conjugate of q.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{q.W, -q.X, -q.Y, -q.Z}
}

// Mul returns the Hamilton product q*other (composition: apply other, then q).
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
	}
}

// Dot returns the quaternion dot product, used for angular distance and
// choosing the short way round in SLERP.
func (q Quaternion) Dot(other Quaternion) float64 {
	return q.W*other.W + q.X*other.X + q.Y*other.Y + q.Z*other.Z
}

// Rotate applies q's rotation to a 3-vector.
func (q Quaternion) Rotate(v coordinates.Coordinates) coordinates.Coordinates {
	if v.Dimension() != 3 {
		panic(fmt.Sprintf("quat: Rotate requires a 3-vector, got dimension %d", v.Dimension()))
	}
	p := Quaternion{0, v[0], v[1], v[2]}
	r := q.Mul(p).Mul(q.Conjugate())
	return coordinates.NewFrom(r.X, r.Y, r.Z)
}

// FromVectors builds the unit quaternion that rotates a onto b.
//
// When a and b are anti-parallel within tolerance 1e-6*|a||b|, the rotation
// axis is ambiguous; it is chosen as (-a_y, a_x, 0) if |a_x| > |a_z|, else
// (0, -a_z, a_y), with a zero scalar part.
func FromVectors(a, b coordinates.Coordinates) Quaternion {
	if a.Dimension() != 3 || b.Dimension() != 3 {
		panic("quat: FromVectors requires 3-vectors")
	}
	an, bn := a.Norm(), b.Norm()
	if an == 0 || bn == 0 {
		return Identity()
	}
	ua := a.Scale(1 / an)
	ub := b.Scale(1 / bn)

	dot := ua[0]*ub[0] + ua[1]*ub[1] + ua[2]*ub[2]
	tol := degenerateTolerance
	if dot < -1+tol {
		axis := pickOrthogonalAxis(a)
		n := axis.Norm()
		if n == 0 {
			return Identity()
		}
		axis = axis.Scale(1 / n)
		return Quaternion{0, axis[0], axis[1], axis[2]}
	}

	cross := coordinates.NewFrom(
		ua[1]*ub[2]-ua[2]*ub[1],
		ua[2]*ub[0]-ua[0]*ub[2],
		ua[0]*ub[1]-ua[1]*ub[0],
	)
	w := 1 + dot
	return Quaternion{w, cross[0], cross[1], cross[2]}.Normalized()
}

// pickOrthogonalAxis picks a rotation axis orthogonal to a, for the
// degenerate anti-parallel case where the cross product vanishes.
func pickOrthogonalAxis(a coordinates.Coordinates) coordinates.Coordinates {
	if math.Abs(a[0]) > math.Abs(a[2]) {
		return coordinates.NewFrom(-a[1], a[0], 0)
	}
	return coordinates.NewFrom(0, -a[2], a[1])
}

// Slerp spherically interpolates from q to other by fraction t in [0, 1].
func (q Quaternion) Slerp(other Quaternion, t float64) Quaternion {
	d := q.Dot(other)
	// Take the short path around the hypersphere.
	if d < 0 {
		other = Quaternion{-other.W, -other.X, -other.Y, -other.Z}
		d = -d
	}
	if d > 0.9995 {
		// Nearly identical; linear interpolation avoids a divide-by-zero.
		return Quaternion{
			q.W + t*(other.W-q.W),
			q.X + t*(other.X-q.X),
			q.Y + t*(other.Y-q.Y),
			q.Z + t*(other.Z-q.Z),
		}.Normalized()
	}
	theta0 := math.Acos(d)
	theta := theta0 * t
	sinTheta0 := math.Sin(theta0)
	sinTheta := math.Sin(theta)

	s0 := math.Cos(theta) - d*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0
	return Quaternion{
		s0*q.W + s1*other.W,
		s0*q.X + s1*other.X,
		s0*q.Y + s1*other.Y,
		s0*q.Z + s1*other.Z,
	}.Normalized()
}

// Random samples uniformly on SO(3) using Shoemake's method.
func Random(u1, u2, u3 float64) Quaternion {
	sq1 := math.Sqrt(1 - u1)
	sq2 := math.Sqrt(u1)
	return Quaternion{
		W: sq2 * math.Cos(2*math.Pi*u3),
		X: sq1 * math.Sin(2*math.Pi*u2),
		Y: sq1 * math.Cos(2*math.Pi*u2),
		Z: sq2 * math.Sin(2*math.Pi*u3),
	}
}

// RandomFrom samples a random unit quaternion using the supplied uniform
// source (a func()float64 returning values in [0,1), such as prng.Source.Float64).
func RandomFrom(uniform func() float64) Quaternion {
	return Random(uniform(), uniform(), uniform())
}

// String implements fmt.Stringer.
func (q Quaternion) String() string {
	return fmt.Sprintf("(%.9f, %.9f, %.9f, %.9f)", q.W, q.X, q.Y, q.Z)
}
