package fcl

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl/narrowphase"
)

// travNode is the C4 contract: a per-query-pair traversal node that knows
// how to compute a narrow-phase distance at the motions' current
// integrated time, how to advance that time, and how to bound how much
// closer the two sides could possibly get before t=1. advance.go (C6)
// drives every concrete kind through this same interface; node_shape.go,
// node_meshshape.go and node_meshmesh.go supply the three concrete kinds
// the dispatcher wires up.
type travNode interface {
	distance() narrowphase.Result
	integrate(t float64)
	motionBound(res narrowphase.Result) float64
}

// combinedMotionBound sums each side's own motion bound along the
// separating axis: either side closing the gap by its own bound is
// enough to invalidate the current lower bound, so the combined bound a
// step must respect is the sum of both.
func combinedMotionBound(oa, ob *Object, centerA mgl64.Vec3, radiusA float64, centerB mgl64.Vec3, radiusB float64, axis mgl64.Vec3) float64 {
	ba := oa.Motion.MotionBound(centerA, radiusA, axis)
	bb := ob.Motion.MotionBound(centerB, radiusB, axis.Mul(-1))
	return ba + bb
}
