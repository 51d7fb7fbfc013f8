package ellipsoid

import "fmt"

// DegenerateInputError is returned when too few points are given to define a
// full-dimensional ellipsoid.
type DegenerateInputError struct {
	NumPoints   int
	MinRequired int
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("ellipsoid: need at least %d points, got %d", e.MinRequired, e.NumPoints)
}

// SingularShapeError is returned when the MVEE shape matrix cannot be
// inverted or eigendecomposed (degenerate / collinear / coplanar points).
type SingularShapeError struct {
	Cause error
}

func (e *SingularShapeError) Error() string {
	return fmt.Sprintf("ellipsoid: singular shape matrix: %v", e.Cause)
}

func (e *SingularShapeError) Unwrap() error {
	return e.Cause
}
