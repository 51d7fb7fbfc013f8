package gso

import (
	"math"
	"testing"

	"github.com/lightdock/lightdock-go/coordinates"
)

func TestBenchmarkMoveIdempotentWhenAtTarget(t *testing.T) {
	p := coordinates.NewFrom(3, 4)
	params := Parameters{Step: 0.5}
	got := BenchmarkMove(p, p, params)
	if got.Distance(p) > 1e-12 {
		t.Errorf("BenchmarkMove(p, p, ...) = %v, want %v", got, p)
	}
}

func TestPoseLayoutDistanceZeroForIdenticalPoses(t *testing.T) {
	layout := PoseLayout{RecNM: 2, LigNM: 1}
	pose := coordinates.NewFrom(1, 2, 3, 1, 0, 0, 0, 0.1, 0.2, 0.3)
	params := Parameters{MaxTranslation: 30, MaxRotation: 1, NMBound: 1}
	if d := layout.Distance(params)(pose, pose); d > 1e-9 {
		t.Errorf("Distance(pose, pose) = %v, want 0", d)
	}
}

func TestPoseLayoutMoveKeepsUnitQuaternion(t *testing.T) {
	layout := PoseLayout{RecNM: 0, LigNM: 0}
	current := coordinates.NewFrom(0, 0, 0, 1, 0, 0, 0)
	target := coordinates.NewFrom(10, 10, 10, 0, 1, 0, 0)
	params := Parameters{StepTranslation: 1, StepRotation: 0.5, StepNM: 1}
	moved := layout.Move(current, target, params)
	norm2 := moved[3]*moved[3] + moved[4]*moved[4] + moved[5]*moved[5] + moved[6]*moved[6]
	if math.Abs(norm2-1) > 1e-9 {
		t.Errorf("Move() quaternion norm^2 = %v, want 1", norm2)
	}
}

func TestPoseLayoutMovePreservesNMSegmentLength(t *testing.T) {
	layout := PoseLayout{RecNM: 2, LigNM: 1}
	current := coordinates.NewFrom(0, 0, 0, 1, 0, 0, 0, 0, 0, 0)
	target := coordinates.NewFrom(1, 1, 1, 1, 0, 0, 0, 1, 1, 1)
	params := Parameters{StepTranslation: 0.5, StepRotation: 0.5, StepNM: 0.5}
	moved := layout.Move(current, target, params)
	if len(moved) != 10 {
		t.Fatalf("Move() pose length = %d, want 10", len(moved))
	}
}
