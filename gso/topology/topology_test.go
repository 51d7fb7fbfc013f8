package topology

import "testing"

func TestNeighborsFiltersByRangeAndLuciferin(t *testing.T) {
	// Glowworm 0 at origin; 1 and 2 within range with higher luciferin; 3 is
	// within range but has lower luciferin; 4 is brighter but out of range.
	pos := []float64{0, 1, 2, 3, 10}
	distance := func(i, j int) float64 {
		d := pos[i] - pos[j]
		if d < 0 {
			d = -d
		}
		return d
	}
	luciferin := []float64{5, 6, 7, 1, 100}
	visionRange := []float64{4, 4, 4, 4, 4}

	got := Neighbors(0, len(pos), distance, visionRange, luciferin, 0)
	want := []int{2, 1} // sorted by luciferin descending
	if len(got) != len(want) {
		t.Fatalf("Neighbors() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Neighbors()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestNeighborsCapsAtMaxNeighbors(t *testing.T) {
	pos := []float64{0, 1, 1, 1, 1, 1}
	distance := func(i, j int) float64 {
		d := pos[i] - pos[j]
		if d < 0 {
			d = -d
		}
		return d
	}
	luciferin := []float64{0, 1, 2, 3, 4, 5}
	visionRange := []float64{10, 10, 10, 10, 10, 10}

	got := Neighbors(0, len(pos), distance, visionRange, luciferin, 2)
	if len(got) != 2 {
		t.Fatalf("Neighbors() = %v, want 2 entries (maxNeighbors cap)", got)
	}
	if got[0] != 5 || got[1] != 4 {
		t.Errorf("Neighbors() = %v, want the two brightest [5 4]", got)
	}
}

func TestNeighborsEmptyWhenNoneQualify(t *testing.T) {
	pos := []float64{0, 100}
	distance := func(i, j int) float64 {
		d := pos[i] - pos[j]
		if d < 0 {
			d = -d
		}
		return d
	}
	luciferin := []float64{5, 1}
	visionRange := []float64{4, 4}

	got := Neighbors(0, 2, distance, visionRange, luciferin, 0)
	if len(got) != 0 {
		t.Errorf("Neighbors() = %v, want empty", got)
	}
}
