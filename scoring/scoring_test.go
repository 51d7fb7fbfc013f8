package scoring

import "testing"

func TestRestraintFractionEmptyIsZero(t *testing.T) {
	if got := RestraintFraction(nil, map[int]bool{1: true}); got != 0 {
		t.Errorf("RestraintFraction(nil, ...) = %v, want 0", got)
	}
}

func TestRestraintFractionComputesFraction(t *testing.T) {
	got := RestraintFraction([]int{1, 2, 3, 4}, map[int]bool{1: true, 3: true})
	if got != 0.5 {
		t.Errorf("RestraintFraction() = %v, want 0.5", got)
	}
}

func TestLookupUnknownNameErrors(t *testing.T) {
	if _, _, err := Lookup("does-not-exist"); err == nil {
		t.Fatal("Lookup() with unknown name: want error, got nil")
	}
}

func TestRegisterAndLookupRoundTrip(t *testing.T) {
	Register("test-only-fixture", func() (ModelAdapter, ScoringFunction) {
		return nil, nil
	})
	adapter, scorer, err := Lookup("test-only-fixture")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if adapter != nil || scorer != nil {
		t.Errorf("Lookup() = (%v, %v), want (nil, nil) from fixture factory", adapter, scorer)
	}
}
