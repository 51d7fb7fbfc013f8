// Package topology computes glowworm neighborhoods, the GSO
// analogue of shiblon-entrogo's pso/topology package. Unlike PSO's fixed graph
// topologies (Star, Ring), a glowworm's neighborhood is dynamic: it is
// recomputed every step from the current positions, vision ranges, and
// luciferin values, so this package exposes one function rather than a
// Topology interface with a Tick method.
package topology

import "sort"

// DistanceFunc reports the distance between two glowworm indices' positions,
// under whatever metric the caller's search space uses (Euclidean for
// benchmark functions, quaternion-aware for docking).
type DistanceFunc func(i, j int) float64

// Neighbors computes glowworm i's neighborhood: every other glowworm j with
// d(i,j) < visionRange[i] and luciferin[j] > luciferin[i], capped at
// maxNeighbors and sorted by luciferin descending.
// maxNeighbors <= 0 means unbounded.
func Neighbors(i int, n int, distance DistanceFunc, visionRange []float64, luciferin []float64, maxNeighbors int) []int {
	var candidates []int
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		if luciferin[j] > luciferin[i] && distance(i, j) < visionRange[i] {
			candidates = append(candidates, j)
		}
	}
	sort.Slice(candidates, func(a, b int) bool {
		return luciferin[candidates[a]] > luciferin[candidates[b]]
	})
	if maxNeighbors > 0 && len(candidates) > maxNeighbors {
		candidates = candidates[:maxNeighbors]
	}
	return candidates
}
