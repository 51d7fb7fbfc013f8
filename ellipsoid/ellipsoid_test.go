package ellipsoid

import (
	"math"
	"testing"

	"github.com/lightdock/lightdock-go/coordinates"
)

func cubeVertices(half float64) []coordinates.Coordinates {
	var pts []coordinates.Coordinates
	for _, x := range []float64{-half, half} {
		for _, y := range []float64{-half, half} {
			for _, z := range []float64{-half, half} {
				pts = append(pts, coordinates.NewFrom(x, y, z))
			}
		}
	}
	return pts
}

func TestComputeCubeCenter(t *testing.T) {
	pts := cubeVertices(2.0)
	e, err := Compute(pts)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	for i, v := range e.Center {
		if math.Abs(v) > 1e-6 {
			t.Errorf("Center[%d] = %v, want ~0", i, v)
		}
	}
	for _, a := range e.SemiAxes {
		if a <= 0 || math.IsNaN(a) {
			t.Errorf("SemiAxes contains invalid value: %v", e.SemiAxes)
		}
	}
}

func TestComputeRequiresEnoughPoints(t *testing.T) {
	pts := []coordinates.Coordinates{coordinates.NewFrom(0, 0, 0), coordinates.NewFrom(1, 0, 0)}
	if _, err := Compute(pts); err == nil {
		t.Fatal("Compute() with 2 points: want error, got nil")
	}
}

func TestJacobiEigenvaluesDiagonal(t *testing.T) {
	a := [dims][dims]float64{
		{3, 0, 0},
		{0, 1, 0},
		{0, 0, 2},
	}
	values, _ := jacobiEigenvalues(a)
	want := [dims]float64{3, 2, 1}
	for i := range values {
		if math.Abs(values[i]-want[i]) > 1e-9 {
			t.Errorf("jacobiEigenvalues(diag) = %v, want %v", values, want)
		}
	}
}
