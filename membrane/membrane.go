// Package membrane implements membrane-bead layer estimation and the
// swarm-center membrane filter.
package membrane

import (
	"sort"

	"github.com/lightdock/lightdock-go/coordinates"
	"github.com/lightdock/lightdock-go/lderrors"
	"github.com/lightdock/lightdock-go/structure"
)

// gapThreshold splits sorted bead Z-coordinates into layers at any gap
// larger than this.
const gapThreshold = 10.0

// BeadZCoordinates collects the Z-coordinates of all membrane bead atoms
// (residue name MMB, atom name BJ) in a complex's representative conformer.
func BeadZCoordinates(c *structure.Complex) []float64 {
	var zs []float64
	coords := c.Representative()
	for _, chain := range c.Chains {
		for _, res := range chain.Residues {
			if res.Name != "MMB" {
				continue
			}
			bead := res.GetAtom("BJ")
			if bead == nil {
				continue
			}
			zs = append(zs, coords[bead.Index][2])
		}
	}
	return zs
}

// EstimateLayers partitions sorted Z-coordinates into layers, splitting at
// any gap exceeding gapThreshold. With no such gap, a single
// layer is returned.
func EstimateLayers(zs []float64) [][]float64 {
	if len(zs) == 0 {
		return nil
	}
	sorted := append([]float64{}, zs...)
	sort.Float64s(sorted)

	layers := [][]float64{{sorted[0]}}
	for i := 1; i < len(sorted); i++ {
		if sorted[i]-sorted[i-1] > gapThreshold {
			layers = append(layers, []float64{})
		}
		layers[len(layers)-1] = append(layers[len(layers)-1], sorted[i])
	}
	return layers
}

func mean(xs []float64) float64 {
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// ApplyMembrane filters swarm centers against the membrane bead layers,
// translated back into the receptor's original frame by tz.
func ApplyMembrane(centers []coordinates.Coordinates, zs []float64, isTransmembrane bool, tz float64) ([]coordinates.Coordinates, error) {
	layers := EstimateLayers(zs)

	if isTransmembrane {
		if len(layers) != 2 {
			return nil, &lderrors.MembraneSetupError{NumLayers: len(layers), IsTransmembrane: true}
		}
		var bottom, upper []float64
		if mean(layers[0]) <= mean(layers[1]) {
			bottom, upper = layers[0], layers[1]
		} else {
			bottom, upper = layers[1], layers[0]
		}
		lo := maxOf(bottom) + tz
		hi := minOf(upper) + tz
		var kept []coordinates.Coordinates
		for _, c := range centers {
			if c[2] >= lo && c[2] <= hi {
				kept = append(kept, c)
			}
		}
		return kept, nil
	}

	// Non-transmembrane: keep centers above the upper layer (the layer with
	// the greatest mean Z).
	upperLayer := layers[0]
	for _, layer := range layers[1:] {
		if mean(layer) > mean(upperLayer) {
			upperLayer = layer
		}
	}
	threshold := maxOf(upperLayer) + tz
	var kept []coordinates.Coordinates
	for _, c := range centers {
		if c[2] >= threshold {
			kept = append(kept, c)
		}
	}
	return kept, nil
}
