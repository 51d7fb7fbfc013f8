// Package gso implements the Glowworm Swarm Optimization engine: the state
// machine, luciferin dynamics, neighborhood selection, probabilistic
// roulette movement, and adaptive vision range shared by both benchmark
// functions and docking. The Swarm/Glowworm split and the double-buffered
// step loop are grounded on shiblon-entrogo's pso.Swarm/pso.Particle
// (pso/swarm.go, particle.go), generalized from PSO's velocity/best-position
// state to GSO's luciferin/vision-range state.
package gso

import (
	"fmt"

	"github.com/lightdock/lightdock-go/coordinates"
	"github.com/lightdock/lightdock-go/gso/topology"
	"github.com/lightdock/lightdock-go/prng"
)

// State is a step in the GSO state machine:
// CREATED -> INITIALIZED -> RUNNING(step k) -> REPORTED(step k) -> ... -> TERMINATED.
type State int

const (
	Created State = iota
	Initialized
	Running
	Reported
	Terminated
)

func (s State) String() string {
	switch s {
	case Created:
		return "CREATED"
	case Initialized:
		return "INITIALIZED"
	case Running:
		return "RUNNING"
	case Reported:
		return "REPORTED"
	case Terminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// Parameters controls GSO dynamics. Rho, Gamma, Beta, and Step are pinned to
// the literature-standard defaults (0.4, 0.6, 0.08, 0.03), and MaxNeighbors
// to 5 for docking (the benchmark defaults leave it at 0, unbounded);
// InitialLuciferin, InitialVisionRange, and MaxVisionRange are
// caller-configurable search-space parameters (see DESIGN.md).
type Parameters struct {
	Rho   float64 // luciferin decay factor
	Gamma float64 // luciferin gain factor
	Beta  float64 // vision range adaptation rate

	InitialLuciferin   float64
	InitialVisionRange float64
	MaxVisionRange     float64

	// MaxNeighbors caps the retained neighborhood size. 0 means unbounded.
	MaxNeighbors int

	// Step is the benchmark move step.
	Step float64

	// StepTranslation, StepRotation, and StepNM are the docking move steps
	// for the translation, rotation (SLERP fraction), and NM-extent
	// segments of a pose vector respectively.
	StepTranslation float64
	StepRotation    float64
	StepNM          float64

	// MaxTranslation, MaxRotation, and NMBound normalize the three terms of
	// the quaternion-aware distance.
	MaxTranslation float64
	MaxRotation    float64
	NMBound        float64

	ReportInterval int
	MaxSteps       int
}

// DefaultBenchmarkParameters returns the standard GSO defaults for
// benchmark-function optimization (Euclidean distance, plain linear move).
func DefaultBenchmarkParameters() Parameters {
	return Parameters{
		Rho: 0.4, Gamma: 0.6, Beta: 0.08,
		InitialLuciferin: 5.0, InitialVisionRange: 3.0, MaxVisionRange: 10.0,
		MaxNeighbors: 0, Step: 0.03,
		ReportInterval: 1, MaxSteps: 100,
	}
}

// DefaultDockingParameters returns the standard GSO defaults for
// docking optimization (quaternion-aware distance, segmented move).
func DefaultDockingParameters() Parameters {
	p := DefaultBenchmarkParameters()
	p.MaxNeighbors = 5
	p.StepTranslation = 0.5
	p.StepRotation = 0.5
	p.StepNM = 0.5
	p.MaxTranslation = 30.0
	p.MaxRotation = 1.0
	p.NMBound = 1.0
	return p
}

// Glowworm is one agent's state.
type Glowworm struct {
	Position      coordinates.Coordinates
	Luciferin     float64
	VisionRange   float64
	LastObjective float64
	Neighbors     []int
}

// Objective evaluates a glowworm's position.
type Objective func(pos coordinates.Coordinates) float64

// Distance computes the search-space distance between two positions.
type Distance func(a, b coordinates.Coordinates) float64

// Move returns the position current moves toward, one step closer to
// target, under whatever representation the search space uses.
type Move func(current, target coordinates.Coordinates, params Parameters) coordinates.Coordinates

// Swarm is one fully independent GSO optimization.
type Swarm struct {
	Glowworms []Glowworm
	Params    Parameters
	Objective Objective
	Distance  Distance
	Move      Move
	RNG       prng.Source

	State State
	Step  int
}

// NewSwarm builds a swarm over the given initial positions, in state
// CREATED.
func NewSwarm(positions []coordinates.Coordinates, objective Objective, distance Distance, move Move, params Parameters, rng prng.Source) *Swarm {
	glowworms := make([]Glowworm, len(positions))
	for i, pos := range positions {
		glowworms[i] = Glowworm{Position: pos.Clone()}
	}
	return &Swarm{
		Glowworms: glowworms,
		Params:    params,
		Objective: objective,
		Distance:  distance,
		Move:      move,
		RNG:       rng,
		State:     Created,
	}
}

// Init evaluates every glowworm's initial objective value and sets the
// initial luciferin/vision range, transitioning CREATED -> INITIALIZED.
func (s *Swarm) Init() error {
	if s.State != Created {
		return fmt.Errorf("gso: Init requires state CREATED, got %s", s.State)
	}
	for i := range s.Glowworms {
		g := &s.Glowworms[i]
		g.LastObjective = s.Objective(g.Position)
		g.Luciferin = s.Params.InitialLuciferin
		g.VisionRange = s.Params.InitialVisionRange
	}
	s.State = Initialized
	return nil
}

// StepOnce runs one GSO iteration: new values are computed into separate
// buffers and written back only at the end, so within one call every
// glowworm's neighborhood and roulette selection see the same snapshot
// (previous positions and vision ranges, this iteration's luciferin).
func (s *Swarm) StepOnce() error {
	if s.State != Initialized && s.State != Running && s.State != Reported {
		return fmt.Errorf("gso: StepOnce requires state INITIALIZED, RUNNING, or REPORTED, got %s", s.State)
	}
	n := len(s.Glowworms)

	// 1. Evaluate (into a fresh buffer; reads use the previous position).
	objectives := make([]float64, n)
	for i := range s.Glowworms {
		objectives[i] = s.Objective(s.Glowworms[i].Position)
	}

	// 2. Luciferin update. Clamped at zero: luciferin must stay non-negative
	// even when the objective is negative.
	luciferin := make([]float64, n)
	for i := range s.Glowworms {
		l := (1-s.Params.Rho)*s.Glowworms[i].Luciferin + s.Params.Gamma*objectives[i]
		if l < 0 {
			l = 0
		}
		luciferin[i] = l
	}

	// 3. Neighborhood, computed from the *previous* positions/vision ranges
	// but the *new* luciferin.
	visionRanges := make([]float64, n)
	for i := range s.Glowworms {
		visionRanges[i] = s.Glowworms[i].VisionRange
	}
	distance := func(i, j int) float64 {
		return s.Distance(s.Glowworms[i].Position, s.Glowworms[j].Position)
	}
	neighbors := make([][]int, n)
	for i := range s.Glowworms {
		neighbors[i] = topology.Neighbors(i, n, distance, visionRanges, luciferin, s.Params.MaxNeighbors)
	}

	// 4 & 5. Probabilistic selection and move.
	positions := make([]coordinates.Coordinates, n)
	for i := range s.Glowworms {
		target := selectByRoulette(s.RNG, i, neighbors[i], luciferin)
		if target < 0 {
			positions[i] = s.Glowworms[i].Position.Clone()
			continue
		}
		positions[i] = s.Move(s.Glowworms[i].Position, s.Glowworms[neighbors[i][target]].Position, s.Params)
	}

	// 6. Vision range update.
	for i := range s.Glowworms {
		g := &s.Glowworms[i]
		r := g.VisionRange + s.Params.Beta*(float64(s.Params.MaxNeighbors)-float64(len(neighbors[i])))
		if r < 0 {
			r = 0
		}
		if r > s.Params.MaxVisionRange {
			r = s.Params.MaxVisionRange
		}
		g.VisionRange = r
	}

	for i := range s.Glowworms {
		g := &s.Glowworms[i]
		g.LastObjective = objectives[i]
		g.Luciferin = luciferin[i]
		g.Position = positions[i]
		g.Neighbors = neighbors[i]
	}

	s.Step++
	if s.Params.ReportInterval > 0 && s.Step%s.Params.ReportInterval == 0 {
		s.State = Reported
	} else {
		s.State = Running
	}
	if s.Step >= s.Params.MaxSteps {
		s.State = Terminated
	}
	return nil
}

// selectByRoulette picks a brighter neighbor with probability p_ij =
// (l_j - l_i) / sum_k(l_k - l_i), roulette-selected; returns -1 (stay) when
// neighbors is empty.
func selectByRoulette(rng prng.Source, i int, neighbors []int, luciferin []float64) int {
	if len(neighbors) == 0 {
		return -1
	}
	total := 0.0
	weights := make([]float64, len(neighbors))
	for k, j := range neighbors {
		w := luciferin[j] - luciferin[i]
		weights[k] = w
		total += w
	}
	pick := rng.Float64() * total
	cumulative := 0.0
	for k, w := range weights {
		cumulative += w
		if pick <= cumulative {
			return k
		}
	}
	return len(neighbors) - 1
}

// Run steps the swarm until MaxSteps, invoking report at every
// ReportInterval-th step (state REPORTED).
func (s *Swarm) Run(report func(step int, s *Swarm)) error {
	if err := s.Init(); err != nil {
		return err
	}
	for s.State != Terminated {
		if err := s.StepOnce(); err != nil {
			return err
		}
		if s.State == Reported && report != nil {
			report(s.Step, s)
		}
	}
	return nil
}
