package fcl

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl/bv"
	"github.com/jiapei100/fcl/bvh"
	"github.com/jiapei100/fcl/geom"
	"github.com/jiapei100/fcl/narrowphase"
)

// meshMeshTravNode is the C4 kind for a mesh-vs-mesh pair, grounded on
// MeshConservativeAdvancementTraversalNode. Both trees must carry the
// same BV kind; mixed AABB/OBB pairs are never constructed (the
// dispatcher has no entry for them).
type meshMeshTravNode struct {
	oa, ob *Object
	ta, tb *bvh.Model
	req    Request

	centerA mgl64.Vec3
	radiusA float64
	centerB mgl64.Vec3
	radiusB float64

	// minRatio is the smallest distance/motion-bound ratio seen over
	// every leaf pair visited by the most recent distance() call; see
	// leafBoundFunc in recurse.go.
	minRatio float64
}

func newMeshMeshTravNode(oa, ob *Object, req Request) *meshMeshTravNode {
	ta := oa.Geometry.(*bvh.Model)
	tb := ob.Geometry.(*bvh.Model)
	ca, ra := ta.ComputeLocalAABB().BoundingSphere()
	cb, rb := tb.ComputeLocalAABB().BoundingSphere()
	return &meshMeshTravNode{oa: oa, ob: ob, ta: ta, tb: tb, req: req, centerA: ca, radiusA: ra, centerB: cb, radiusB: rb}
}

func (n *meshMeshTravNode) distance() narrowphase.Result {
	tfA := n.oa.Motion.CurrentTransform()
	tfB := n.ob.Motion.CurrentTransform()

	// boundRelTf maps treeB's Bound frame into treeA's for the BV-BV
	// pruning test; leafTfA/leafTfB separately map each tree's raw
	// (never-transformed) Triangles into the frame the two are actually
	// compared in. For an AABB pair both Bounds were just refreshed into
	// world frame, so the pruning test needs no further transform, but
	// the Triangles array was never touched by RefreshWorld and still
	// needs each side's own full world transform. For an OBB pair the
	// Bounds stay in body frame forever, so treeA's local frame is used
	// as the common frame for both the pruning test and the leaves.
	var boundRelTf, leafTfA, leafTfB bv.Transform
	if n.ta.GetNodeType() == geom.NodeTypes.BVAABB {
		n.ta.RefreshWorld(tfA)
		n.tb.RefreshWorld(tfB)
		boundRelTf = bv.Identity()
		leafTfA = tfA
		leafTfB = tfB
	} else {
		boundRelTf = tfA.Inverse().Mul(tfB)
		leafTfA = bv.Identity()
		leafTfB = boundRelTf
	}
	boundFn := func(centerA mgl64.Vec3, radiusA float64, centerB mgl64.Vec3, radiusB float64, axis mgl64.Vec3) float64 {
		return combinedMotionBound(n.oa, n.ob, centerA, radiusA, centerB, radiusB, axis)
	}
	res, minRatio := meshMeshClosestPair(n.ta, n.tb, boundRelTf, leafTfA, leafTfB, n.req.Solver, boundFn)
	n.minRatio = minRatio
	return res
}

func (n *meshMeshTravNode) integrate(t float64) {
	n.oa.Motion.Integrate(t)
	n.ob.Motion.Integrate(t)
}

// motionBound folds the per-leaf minRatio computed during the most recent
// distance() descent back into the single bound value C6's outer loop
// expects: since step = res.Distance / (bound/remaining), substituting
// bound = res.Distance/minRatio yields step = minRatio*remaining, the
// true minimum safe step over every leaf pair visited, not just the
// globally closest one. Falls back to the whole-object bound along the
// closest pair's own normal when no leaf was visited (an empty tree).
func (n *meshMeshTravNode) motionBound(res narrowphase.Result) float64 {
	if math.IsInf(n.minRatio, 1) {
		return combinedMotionBound(n.oa, n.ob, n.centerA, n.radiusA, n.centerB, n.radiusB, res.Normal)
	}
	return res.Distance / n.minRatio
}
