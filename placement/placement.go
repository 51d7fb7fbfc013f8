// Package placement computes receptor surface sampling and swarm center
// clustering, grounded on the sphere-expansion/envelope scheme described in
// lightdock/prep/poses.py's calculate_initial_poses caller and
// reimplemented in idiomatic Go.
package placement

import (
	"fmt"
	"math"
	"sort"

	"github.com/lightdock/lightdock-go/coordinates"
	"github.com/lightdock/lightdock-go/prng"
	"github.com/lightdock/lightdock-go/structure"
)

// DefaultSwarmRadius is the default sphere radius (Å) each swarm confines
// its glowworms to, grounded on lightdock/prep/poses.py's
// calculate_initial_poses(swarm_radius=10.).
const DefaultSwarmRadius = 10.0

// DefaultSurfaceDensity is the default number of sampled points per Å² of
// receptor sphere surface. The constants module defining
// DEFAULT_SURFACE_DENSITY was not part of the retrieved source, so this
// value is not pinned from a reference run; it is chosen to produce a
// dense-enough envelope for clustering into the requested number of swarms
// and is not load-bearing for correctness.
const DefaultSurfaceDensity = 10.0

// kMeansMaxIterations bounds Lloyd's algorithm; centroid convergence below
// kMeansTolerance stops iteration early.
const (
	kMeansMaxIterations = 100
	kMeansTolerance     = 1e-4
)

// CalculateSurfacePoints implements calculate_surface_points:
// it samples the receptor surface, takes the outer envelope, clusters it
// into exactly numSwarms centers, and returns those centers together with
// the receptor and ligand diameters used to size the sampling spheres.
func CalculateSurfacePoints(receptor, ligand *structure.Complex, numSwarms int, recTranslation coordinates.Coordinates, seed int64, hasMembrane bool, surfaceDensity float64) (centers []coordinates.Coordinates, receptorDiameter, ligandDiameter float64, err error) {
	if numSwarms <= 0 {
		return nil, 0, 0, fmt.Errorf("placement: numSwarms must be positive, got %d", numSwarms)
	}

	receptorDiameter = receptor.Diameter(0)
	ligandDiameter = ligand.Diameter(0)
	sphereRadius := ligandDiameter/2 + DefaultSwarmRadius

	centersOf, generators := sampleSpheres(receptor, hasMembrane, sphereRadius, surfaceDensity, seed)
	envelope := outerEnvelope(centersOf, generators, sphereRadius)
	if len(envelope) < numSwarms {
		return nil, 0, 0, fmt.Errorf("placement: envelope has %d points, fewer than the %d requested swarms", len(envelope), numSwarms)
	}

	centers = kMeans(envelope, numSwarms, seed)
	return centers, receptorDiameter, ligandDiameter, nil
}

// sampleSpheres places density·4πr² points on a sphere of the given radius
// around every receptor heavy atom (hydrogens and, when hasMembrane,
// membrane bead atoms are excluded as generators). It returns the generator
// atom center for each point and the slice of all generator centers.
func sampleSpheres(receptor *structure.Complex, hasMembrane bool, radius, density float64, seed int64) (points []coordinates.Coordinates, generatorCenters []coordinates.Coordinates) {
	coords := receptor.Representative()
	rng := prng.New(seed)

	pointsPerAtom := int(density * 4 * math.Pi * radius * radius)
	if pointsPerAtom < 1 {
		pointsPerAtom = 1
	}

	for _, atom := range receptor.Atoms {
		if atom.IsHydrogen() {
			continue
		}
		if hasMembrane && atom.ResidueName == "MMB" {
			continue
		}
		center := coords[atom.Index]
		generatorCenters = append(generatorCenters, center)
		for i := 0; i < pointsPerAtom; i++ {
			points = append(points, center.Add(randomOnSphere(rng, radius)))
		}
	}
	return points, generatorCenters
}

// randomOnSphere draws a uniform point on the surface of a sphere of the
// given radius, centered at the origin.
func randomOnSphere(rng prng.Source, radius float64) coordinates.Coordinates {
	u := 2*rng.Float64() - 1
	theta := 2 * math.Pi * rng.Float64()
	r := math.Sqrt(1 - u*u)
	return coordinates.NewFrom(radius*r*math.Cos(theta), radius*r*math.Sin(theta), radius*u)
}

// outerEnvelope discards points that fall inside any sphere other than the
// one that generated them, leaving only the outward-facing surface.
func outerEnvelope(points, generatorCenters []coordinates.Coordinates, radius float64) []coordinates.Coordinates {
	var envelope []coordinates.Coordinates
	pointsPerAtom := 0
	if len(generatorCenters) > 0 {
		pointsPerAtom = len(points) / len(generatorCenters)
	}
	for i, p := range points {
		ownIdx := 0
		if pointsPerAtom > 0 {
			ownIdx = i / pointsPerAtom
		}
		inside := false
		for j, center := range generatorCenters {
			if j == ownIdx {
				continue
			}
			if p.Distance(center) < radius {
				inside = true
				break
			}
		}
		if !inside {
			envelope = append(envelope, p)
		}
	}
	return envelope
}

// kMeans clusters points into exactly k centroids using Lloyd's algorithm,
// with deterministic seeded initialization.
func kMeans(points []coordinates.Coordinates, k int, seed int64) []coordinates.Coordinates {
	rng := prng.New(seed)

	shuffled := append([]coordinates.Coordinates{}, points...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	centroids := make([]coordinates.Coordinates, k)
	for i := 0; i < k; i++ {
		centroids[i] = shuffled[i].Clone()
	}

	assignment := make([]int, len(points))
	for iter := 0; iter < kMeansMaxIterations; iter++ {
		for i, p := range points {
			best, bestDist := 0, math.Inf(1)
			for c, centroid := range centroids {
				if d := p.Distance2(centroid); d < bestDist {
					best, bestDist = c, d
				}
			}
			assignment[i] = best
		}

		newCentroids := make([]coordinates.Coordinates, k)
		counts := make([]int, k)
		for c := range newCentroids {
			newCentroids[c] = coordinates.New(3)
		}
		for i, p := range points {
			c := assignment[i]
			newCentroids[c] = newCentroids[c].Add(p)
			counts[c]++
		}
		maxShift := 0.0
		for c := range newCentroids {
			if counts[c] == 0 {
				newCentroids[c] = centroids[c]
				continue
			}
			newCentroids[c] = newCentroids[c].Scale(1 / float64(counts[c]))
			if shift := newCentroids[c].Distance(centroids[c]); shift > maxShift {
				maxShift = shift
			}
		}
		centroids = newCentroids
		if maxShift < kMeansTolerance {
			break
		}
	}

	sort.Slice(centroids, func(i, j int) bool {
		if centroids[i][0] != centroids[j][0] {
			return centroids[i][0] < centroids[j][0]
		}
		if centroids[i][1] != centroids[j][1] {
			return centroids[i][1] < centroids[j][1]
		}
		return centroids[i][2] < centroids[j][2]
	})
	return centroids
}
