package fcl

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl/geom"
	"github.com/jiapei100/fcl/narrowphase"
)

// shapeTravNode is the C4 kind for a primitive-vs-primitive pair,
// grounded on conservative_advancement.cpp's
// ShapeConservativeAdvancementTraversalNode.
type shapeTravNode struct {
	oa, ob *Object
	sa, sb geom.Shape
	req    Request

	centerA mgl64.Vec3
	radiusA float64
	centerB mgl64.Vec3
	radiusB float64
}

func newShapeTravNode(oa, ob *Object, req Request) *shapeTravNode {
	sa := oa.Geometry.(geom.Shape)
	sb := ob.Geometry.(geom.Shape)
	ca, ra := sa.ComputeLocalAABB().BoundingSphere()
	cb, rb := sb.ComputeLocalAABB().BoundingSphere()
	return &shapeTravNode{oa: oa, ob: ob, sa: sa, sb: sb, req: req, centerA: ca, radiusA: ra, centerB: cb, radiusB: rb}
}

func (n *shapeTravNode) distance() narrowphase.Result {
	tfA := n.oa.Motion.CurrentTransform()
	tfB := n.ob.Motion.CurrentTransform()
	return n.req.Solver.ShapeDistance(n.sa, tfA, n.sb, tfB)
}

func (n *shapeTravNode) integrate(t float64) {
	n.oa.Motion.Integrate(t)
	n.ob.Motion.Integrate(t)
}

func (n *shapeTravNode) motionBound(res narrowphase.Result) float64 {
	return combinedMotionBound(n.oa, n.ob, n.centerA, n.radiusA, n.centerB, n.radiusB, res.Normal)
}
