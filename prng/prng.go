// Package prng provides the deterministic random-number abstraction used
// across lightdock-go: a small Source interface (grounded on the teacher's
// rand.Rand interface, plus Intn), a seeded implementation built on
// math/rand, and a Gaussian sampler with configurable mean/sigma.
package prng

import "math/rand"

// Source is the minimal random interface the rest of lightdock-go depends
// on. Grounded on shiblon-entrogo/rand.Rand.
type Source interface {
	Float64() float64
	NormFloat64() float64
	// Intn returns a uniform random int in [0, n).
	Intn(n int) int
}

// mtSource wraps math/rand's seeded generator. math/rand's algorithm is a
// deterministic PRNG, matching every RNG call site in shiblon-entrogo
// (pso/particle, psosimulation).
type mtSource struct {
	r *rand.Rand
}

// New creates a deterministic Source seeded by the given integer.
func New(seed int64) Source {
	return &mtSource{r: rand.New(rand.NewSource(seed))}
}

func (s *mtSource) Float64() float64 {
	return s.r.Float64()
}

func (s *mtSource) NormFloat64() float64 {
	return s.r.NormFloat64()
}

func (s *mtSource) Intn(n int) int {
	return s.r.Intn(n)
}

// RandInt returns a uniform random integer in [lo, hi] inclusive.
func RandInt(s Source, lo, hi int) int {
	if hi < lo {
		panic("prng: RandInt requires hi >= lo")
	}
	return lo + s.Intn(hi-lo+1)
}

// ForSwarm derives a per-swarm substream from a top-level seed so that
// parallel swarm workers never share RNG state. The derivation is a fixed,
// order-independent mix so the result does not depend on scheduling order
// across swarm workers.
func ForSwarm(seed int64, swarmID int) Source {
	mixed := seed*2654435761 + int64(swarmID)*40503
	return New(mixed)
}

// NormalGenerator yields i.i.d. Gaussian samples with the given mean and
// standard deviation, grounded on shiblon-entrogo/fitness.Snorm.
type NormalGenerator struct {
	source Source
	mu     float64
	sigma  float64
}

// NewNormalGenerator builds a NormalGenerator over the given source.
func NewNormalGenerator(source Source, mu, sigma float64) *NormalGenerator {
	return &NormalGenerator{source: source, mu: mu, sigma: sigma}
}

// Next draws one sample.
func (g *NormalGenerator) Next() float64 {
	return g.source.NormFloat64()*g.sigma + g.mu
}
