package gso

import (
	"math"

	"github.com/lightdock/lightdock-go/coordinates"
	"github.com/lightdock/lightdock-go/quat"
)

// BenchmarkDistance is the Euclidean distance used for benchmark functions
// J1-J5.
func BenchmarkDistance(a, b coordinates.Coordinates) float64 {
	return a.Distance(b)
}

// BenchmarkMove moves current a distance of Params.Step toward target along
// a straight line.
func BenchmarkMove(current, target coordinates.Coordinates, params Parameters) coordinates.Coordinates {
	return current.Move(target, params.Step)
}

// PoseLayout describes how a docking pose vector
// [t_x,t_y,t_z, q_w,q_x,q_y,q_z, rec_nm..., lig_nm...] is laid out, so
// Distance/Move can address its translation, rotation, and NM segments
// separately.
type PoseLayout struct {
	RecNM int
	LigNM int
}

func (l PoseLayout) translation(pose coordinates.Coordinates) coordinates.Coordinates {
	return pose[0:3]
}

func (l PoseLayout) orientation(pose coordinates.Coordinates) quat.Quaternion {
	return quat.Quaternion{W: pose[3], X: pose[4], Y: pose[5], Z: pose[6]}
}

func (l PoseLayout) nmExtents(pose coordinates.Coordinates) coordinates.Coordinates {
	return pose[7 : 7+l.RecNM+l.LigNM]
}

// Distance is the quaternion-aware distance between two docking pose
// vectors: Euclidean translation distance over
// MaxTranslation, plus (1-|q_a.q_b|) over MaxRotation, plus Euclidean NM
// distance over NMBound, combined as a weighted L2 norm.
func (l PoseLayout) Distance(params Parameters) Distance {
	return func(a, b coordinates.Coordinates) float64 {
		td := l.translation(a).Distance(l.translation(b)) / params.MaxTranslation

		qa, qb := l.orientation(a), l.orientation(b)
		rd := (1 - math.Abs(qa.Dot(qb))) / params.MaxRotation

		nmd := 0.0
		if l.RecNM+l.LigNM > 0 {
			nmd = l.nmExtents(a).Distance(l.nmExtents(b)) / params.NMBound
		}

		return math.Sqrt(td*td + rd*rd + nmd*nmd)
	}
}

// Move advances a docking pose vector toward target: the translation
// segment moves linearly by StepTranslation, the orientation segment
// SLERPs by StepRotation, and the NM segment (if any) moves linearly by
// StepNM.
func (l PoseLayout) Move(current, target coordinates.Coordinates, params Parameters) coordinates.Coordinates {
	t := l.translation(current).Move(l.translation(target), params.StepTranslation)

	qc, qt := l.orientation(current), l.orientation(target)
	qm := qc.Slerp(qt, params.StepRotation)

	out := coordinates.NewFrom(t[0], t[1], t[2], qm.W, qm.X, qm.Y, qm.Z)
	if l.RecNM+l.LigNM > 0 {
		nm := l.nmExtents(current).Move(l.nmExtents(target), params.StepNM)
		out = append(out, nm...)
	}
	return out
}
