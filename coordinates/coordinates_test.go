package coordinates

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	a := NewFrom(0, 0, 0)
	b := NewFrom(20, 0, 21)
	if got, want := a.Distance(b), 29.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("Distance() = %v, want %v", got, want)
	}
}

func TestNorm(t *testing.T) {
	a := NewFrom(1, 2)
	if got, want := a.Norm(), 2.236067977; math.Abs(got-want) > 1e-7 {
		t.Errorf("Norm() = %v, want %v", got, want)
	}
}

func TestMoveIdempotentWhenEqual(t *testing.T) {
	a := NewFrom(1, 2, 3)
	b := a.Clone()
	got := a.Move(b, 5)
	for i := range got {
		if got[i] != a[i] {
			t.Errorf("Move() with other==self changed coordinate %d: %v != %v", i, got[i], a[i])
		}
	}
}

func TestMoveTowardOther(t *testing.T) {
	a := NewFrom(0, 0, 0)
	b := NewFrom(10, 0, 0)
	got := a.Move(b, 3)
	want := NewFrom(3, 0, 0)
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("Move() = %v, want %v", got, want)
		}
	}
}

func TestSumOfSquares(t *testing.T) {
	a := NewFrom(3, 4)
	if got, want := a.SumOfSquares(), 25.0; got != want {
		t.Errorf("SumOfSquares() = %v, want %v", got, want)
	}
}

func TestCloneIndependence(t *testing.T) {
	a := NewFrom(1, 2, 3)
	b := a.Clone()
	b[0] = 99
	if a[0] == 99 {
		t.Errorf("Clone() did not produce an independent copy")
	}
}
