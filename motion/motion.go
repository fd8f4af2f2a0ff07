// Package motion implements the C1 motion contract: how a body's rigid
// transform varies over the query's parametric time interval, and how far
// a point a known distance from the body's origin can possibly move
// between now and t=1, which is what the conservative-advancement loop
// needs to turn a static distance lower bound into a safe step size.
package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl/bv"
)

// Transform is the rigid transform a Motion produces at a point in time.
// It is the same shape as bv.Transform; Motion implementations return
// bv.Transform directly so the traversal and BV layers never need a
// conversion.
type Transform = bv.Transform

// Motion is the C1 interface every body drives its geometry through.
// Integrate moves the motion's internal clock to t (always called with a
// non-decreasing t across one ContinuousCollide call; implementations do
// not defend against rewinding). CurrentTransform reads back the
// transform at whatever t Integrate was last called with, with t=0
// as the initial value before any Integrate call.
type Motion interface {
	Integrate(t float64)
	CurrentTransform() bv.Transform

	// MotionBound returns a certified upper bound on how far a point at
	// the given center/radius bounding sphere (in the body's local
	// frame) can move, projected onto the unit axis n expressed in the
	// world frame, between the motion's current time and t=1.
	MotionBound(center mgl64.Vec3, radius float64, axis mgl64.Vec3) float64
}

// linearAngularBound is the shared conservative bound used by both
// ScrewMotion and InterpolatedMotion: given the remaining linear and
// angular displacement budgets over [t, 1], bound how far a point at
// distance radius from the rotation center can move along axis.
//
// This folds FCL's per-BV-kind motion-bound visitors (which compute a
// tighter bound from the precise BV geometry) into a single
// sphere-based approximation: a point on the bounding sphere can move at
// most linearBound (translation) plus angularBound*radius (rotation
// sweep) along any axis, regardless of axis direction. It is always a
// valid bound, just not always tight.
func linearAngularBound(linearBound, angularBound, radius float64) float64 {
	return linearBound + angularBound*radius
}

// perpDistanceToAxis returns the perpendicular distance from point to the
// line through the origin in direction axis (axis need not be unit
// length; a near-zero axis degrades gracefully to the distance from
// point to the origin itself). Used to turn a bounding sphere's radius
// into the effective radius of its sweep about a rotation axis that does
// not pass through the sphere's own center: a point at distance d from
// the axis, on a sphere of radius r, can reach at most r+d from the
// axis, not just r.
func perpDistanceToAxis(point, axis mgl64.Vec3) float64 {
	axisLen := axis.Len()
	if axisLen < 1e-12 {
		return point.Len()
	}
	unit := axis.Mul(1 / axisLen)
	proj := unit.Mul(point.Dot(unit))
	return point.Sub(proj).Len()
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func quatAngle(q mgl64.Quat) float64 {
	w := q.W
	if w > 1 {
		w = 1
	}
	if w < -1 {
		w = -1
	}
	return 2 * math.Acos(math.Abs(w))
}
