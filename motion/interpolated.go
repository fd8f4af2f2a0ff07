package motion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl/bv"
)

// InterpolatedMotion carries a body between two known keyframe transforms,
// slerping the rotation and lerping the translation as t runs from 0 to 1.
// This is the motion kind to reach for when a body's start and goal pose
// are known but its exact velocity profile is not (e.g. driven by an
// external animation or planner), as opposed to ScrewMotion's constant-
// velocity assumption.
type InterpolatedMotion struct {
	Tf0, Tf1 bv.Transform

	t   float64
	cur bv.Transform
}

func NewInterpolatedMotion(tf0, tf1 bv.Transform) *InterpolatedMotion {
	m := &InterpolatedMotion{Tf0: tf0, Tf1: tf1}
	m.Integrate(0)
	return m
}

func (m *InterpolatedMotion) Integrate(t float64) {
	t = clamp01(t)
	m.t = t
	m.cur = bv.Transform{
		Rotation:    mgl64.QuatSlerp(m.Tf0.Rotation, m.Tf1.Rotation, t),
		Translation: m.Tf0.Translation.Mul(1 - t).Add(m.Tf1.Translation.Mul(t)),
	}
}

func (m *InterpolatedMotion) CurrentTransform() bv.Transform { return m.cur }

// MotionBound bounds the remaining motion by computing the total linear
// and angular displacement between the keyframes and scaling by the
// remaining fraction of the interval, exact for lerp/slerp's constant
// angular and linear speed parameterization. Slerp rotates the body
// about its own local origin (the same point Integrate composes the
// rotation about before translating), so center's distance to that
// origin — rather than to any particular axis — is what widens radius
// (spec's "sphere_radius + distance(sphere_center, rotation_axis_or_point)",
// using the rotation point form since slerp has no single fixed axis
// across the whole interval the way ScrewMotion does).
func (m *InterpolatedMotion) MotionBound(center mgl64.Vec3, radius float64, axis mgl64.Vec3) float64 {
	remaining := 1 - m.t
	linearBound := m.Tf1.Translation.Sub(m.Tf0.Translation).Len() * remaining
	relRot := m.Tf0.Rotation.Inverse().Mul(m.Tf1.Rotation)
	angularBound := quatAngle(relRot) * remaining
	effectiveRadius := radius + center.Len()
	return linearAngularBound(linearBound, angularBound, effectiveRadius)
}
