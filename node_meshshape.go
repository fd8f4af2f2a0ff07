package fcl

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl/bv"
	"github.com/jiapei100/fcl/bvh"
	"github.com/jiapei100/fcl/geom"
	"github.com/jiapei100/fcl/narrowphase"
)

// meshShapeTravNode is the C4 kind for a mesh-vs-primitive pair,
// grounded on MeshShapeConservativeAdvancementTraversalNode. mesh is
// always Object A, shape always Object B; dispatch.go's reverse-pair
// registration normalizes argument order before constructing one of
// these.
type meshShapeTravNode struct {
	meshObj  *Object
	shapeObj *Object
	tree     *bvh.Model
	shape    geom.Shape
	req      Request

	centerA mgl64.Vec3
	radiusA float64
	centerB mgl64.Vec3
	radiusB float64

	// minRatio is the smallest distance/motion-bound ratio seen over
	// every leaf visited by the most recent distance() call; see
	// leafBoundFunc in recurse.go.
	minRatio float64
}

func newMeshShapeTravNode(meshObj, shapeObj *Object, req Request) *meshShapeTravNode {
	tree := meshObj.Geometry.(*bvh.Model)
	shape := shapeObj.Geometry.(geom.Shape)
	ca, ra := tree.ComputeLocalAABB().BoundingSphere()
	cb, rb := shape.ComputeLocalAABB().BoundingSphere()
	return &meshShapeTravNode{
		meshObj: meshObj, shapeObj: shapeObj, tree: tree, shape: shape, req: req,
		centerA: ca, radiusA: ra, centerB: cb, radiusB: rb,
	}
}

func (n *meshShapeTravNode) distance() narrowphase.Result {
	tfMesh := n.meshObj.Motion.CurrentTransform()
	tfShape := n.shapeObj.Motion.CurrentTransform()

	// leafTf always maps the mesh's raw, never-transformed Triangles into
	// world frame, regardless of tree kind: RefreshWorld only rewrites
	// cached node Bounds, never the Triangles array itself. boundRelTf is
	// the transform the BV-vs-shape pruning test needs to bring Bound
	// into world frame, which is only identity once RefreshWorld has
	// already done that job (the AABB case); an OBB tree's Bound stays
	// in body frame forever, so its pruning test needs tfMesh too.
	leafTf := tfMesh
	boundRelTf := tfMesh
	if n.tree.GetNodeType() == geom.NodeTypes.BVAABB {
		n.tree.RefreshWorld(tfMesh)
		boundRelTf = bv.Identity()
	}
	boundFn := func(centerA mgl64.Vec3, radiusA float64, centerB mgl64.Vec3, radiusB float64, axis mgl64.Vec3) float64 {
		return combinedMotionBound(n.meshObj, n.shapeObj, centerA, radiusA, centerB, radiusB, axis)
	}
	res, minRatio := meshShapeClosestPair(n.tree, boundRelTf, leafTf, n.shape, tfShape, n.req.Solver, boundFn)
	n.minRatio = minRatio
	return res
}

func (n *meshShapeTravNode) integrate(t float64) {
	n.meshObj.Motion.Integrate(t)
	n.shapeObj.Motion.Integrate(t)
}

// motionBound folds the per-leaf minRatio computed during the most
// recent distance() descent back into the single bound value C6's outer
// loop expects; see meshMeshTravNode.motionBound for the derivation.
func (n *meshShapeTravNode) motionBound(res narrowphase.Result) float64 {
	if math.IsInf(n.minRatio, 1) {
		return combinedMotionBound(n.meshObj, n.shapeObj, n.centerA, n.radiusA, n.centerB, n.radiusB, res.Normal)
	}
	return res.Distance / n.minRatio
}
