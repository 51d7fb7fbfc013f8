package population

import (
	"testing"

	"github.com/lightdock/lightdock-go/coordinates"
	"github.com/lightdock/lightdock-go/prng"
	"github.com/lightdock/lightdock-go/structure"
)

func TestPopulatePosesNoRestraintsProducesUnitQuaternions(t *testing.T) {
	rng := prng.New(1)
	center := coordinates.NewFrom(0, 0, 0)
	poses, err := PopulatePoses(20, center, 10, rng, center, center, nil, 0, 0, nil, nil, 1)
	if err != nil {
		t.Fatalf("PopulatePoses() error: %v", err)
	}
	if len(poses) != 20 {
		t.Fatalf("PopulatePoses() = %d poses, want 20", len(poses))
	}
	for _, p := range poses {
		if len(p) != 7 {
			t.Fatalf("pose vector length = %d, want 7 with no NM", len(p))
		}
		norm2 := p[3]*p[3] + p[4]*p[4] + p[5]*p[5] + p[6]*p[6]
		if norm2 < 0.99 || norm2 > 1.01 {
			t.Errorf("pose quaternion not unit norm: %v (norm2=%v)", p[3:7], norm2)
		}
		// Translation must stay within the sampling sphere of radius 10.
		dx, dy, dz := p[0], p[1], p[2]
		if dx*dx+dy*dy+dz*dz > 100.0001 {
			t.Errorf("pose translation (%v,%v,%v) outside swarm radius", dx, dy, dz)
		}
	}
}

func TestPopulatePosesAppendsNMAmplitudes(t *testing.T) {
	rng := prng.New(2)
	nmRng := prng.NewNormalGenerator(prng.New(3), DefaultExtentMu, DefaultExtentSigma)
	center := coordinates.NewFrom(0, 0, 0)
	poses, err := PopulatePoses(5, center, 10, rng, center, center, nmRng, 2, 3, nil, nil, 1)
	if err != nil {
		t.Fatalf("PopulatePoses() error: %v", err)
	}
	for _, p := range poses {
		if len(p) != 7+2+3 {
			t.Fatalf("pose vector length = %d, want 12 with rec_nm=2 lig_nm=3", len(p))
		}
	}
}

func TestPopulatePosesLigandOnlyRestraintsRejectsLargeCoefficient(t *testing.T) {
	rng := prng.New(4)
	center := coordinates.NewFrom(100, 100, 100)
	ligRes := structure.Dummy(1, 1, 1)
	_, err := PopulatePoses(1, center, 10, rng, center, center, nil, 0, 0, nil, []*structure.Residue{ligRes}, 1)
	if err == nil {
		t.Fatal("PopulatePoses() with oversized coefficient: want error, got nil")
	}
}

func TestRandomPointWithinSphereStaysInBounds(t *testing.T) {
	rng := prng.New(5)
	for i := 0; i < 200; i++ {
		p := randomPointWithinSphere(rng, 3)
		if p.Norm() > 3.0001 {
			t.Fatalf("randomPointWithinSphere() = %v, norm %v exceeds radius 3", p, p.Norm())
		}
	}
}
