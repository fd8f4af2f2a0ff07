package motion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl/bv"
)

// ScrewMotion carries a body along a constant twist: a linear velocity
// plus a rotation of TotalAngle radians about Axis (through the origin of
// the reference frame), both scaled by the parametric time t in [0, 1],
// composed on top of a fixed reference transform Tf0.
type ScrewMotion struct {
	Tf0         bv.Transform
	LinearVel   mgl64.Vec3
	Axis        mgl64.Vec3
	TotalAngle  float64

	t   float64
	cur bv.Transform
}

// NewScrewMotion builds a screw motion; axis need not be normalized.
func NewScrewMotion(tf0 bv.Transform, linearVel, axis mgl64.Vec3, totalAngle float64) *ScrewMotion {
	if axis.Len() > 1e-12 {
		axis = axis.Normalize()
	}
	s := &ScrewMotion{Tf0: tf0, LinearVel: linearVel, Axis: axis, TotalAngle: totalAngle}
	s.Integrate(0)
	return s
}

func (s *ScrewMotion) Integrate(t float64) {
	t = clamp01(t)
	s.t = t
	rot := mgl64.QuatRotate(s.TotalAngle*t, s.Axis)
	step := bv.Transform{Rotation: rot, Translation: s.LinearVel.Mul(t)}
	s.cur = step.Mul(s.Tf0)
}

func (s *ScrewMotion) CurrentTransform() bv.Transform { return s.cur }

// MotionBound adds the perpendicular distance from center to the
// rotation axis to radius before scaling by the angular bound: the
// bounding sphere sweeps a cone about Axis, and a point on that sphere
// farthest from Axis can be as far as radius plus however far the
// sphere's own center already sits off the axis (spec's
// "sphere_radius + distance(sphere_center, rotation_axis_or_point)").
// The rotation acts on the body after Tf0 has placed it, so the center's
// distance is measured at its Tf0-placed position.
func (s *ScrewMotion) MotionBound(center mgl64.Vec3, radius float64, axis mgl64.Vec3) float64 {
	remaining := 1 - s.t
	linearBound := s.LinearVel.Len() * remaining
	angularBound := absF(s.TotalAngle) * remaining
	effectiveRadius := radius + perpDistanceToAxis(s.Tf0.Apply(center), s.Axis)
	return linearAngularBound(linearBound, angularBound, effectiveRadius)
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
