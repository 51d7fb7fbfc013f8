package membrane

import (
	"testing"

	"github.com/lightdock/lightdock-go/coordinates"
)

func TestEstimateLayersNoGapIsSingleLayer(t *testing.T) {
	zs := []float64{1, 2, 3, 4, 5}
	layers := EstimateLayers(zs)
	if len(layers) != 1 {
		t.Fatalf("EstimateLayers() with no large gap = %d layers, want 1", len(layers))
	}
}

func TestEstimateLayersSplitsOnGap(t *testing.T) {
	zs := []float64{0, 1, 2, 20, 21, 22}
	layers := EstimateLayers(zs)
	if len(layers) != 2 {
		t.Fatalf("EstimateLayers() = %d layers, want 2", len(layers))
	}
}

func TestApplyMembraneTransmembraneRequiresTwoLayers(t *testing.T) {
	zs := []float64{0, 1, 2}
	if _, err := ApplyMembrane(nil, zs, true, 0); err == nil {
		t.Fatal("ApplyMembrane(transmembrane) with 1 layer: want error, got nil")
	}
}

func TestApplyMembraneTransmembraneKeepsBetweenLayers(t *testing.T) {
	zs := []float64{0, 1, 2, 30, 31, 32}
	centers := []coordinates.Coordinates{
		coordinates.NewFrom(0, 0, 10),
		coordinates.NewFrom(0, 0, -5),
		coordinates.NewFrom(0, 0, 40),
	}
	kept, err := ApplyMembrane(centers, zs, true, 0)
	if err != nil {
		t.Fatalf("ApplyMembrane() error: %v", err)
	}
	if len(kept) != 1 || kept[0][2] != 10 {
		t.Errorf("ApplyMembrane() = %v, want just the center at z=10", kept)
	}
}

func TestApplyMembraneNonTransmembraneKeepsAbove(t *testing.T) {
	zs := []float64{0, 1, 2}
	centers := []coordinates.Coordinates{
		coordinates.NewFrom(0, 0, 10),
		coordinates.NewFrom(0, 0, -5),
	}
	kept, err := ApplyMembrane(centers, zs, false, 0)
	if err != nil {
		t.Fatalf("ApplyMembrane() error: %v", err)
	}
	if len(kept) != 1 || kept[0][2] != 10 {
		t.Errorf("ApplyMembrane() = %v, want just the center above the layer", kept)
	}
}
