package fcl

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl/bv"
	"github.com/jiapei100/fcl/bvh"
	"github.com/jiapei100/fcl/geom"
	"github.com/jiapei100/fcl/narrowphase"
)

// nodePair is one pending BV-BV pair on the descent stack.
type nodePair struct {
	a, b int
}

// leafBoundFunc bounds how fast two objects can close the gap between one
// specific pair of leaf-local bounding spheres (center/radius, each
// expressed in its own object's local frame) along a separating axis.
// Each leaf pair visited during a descent has its own local center, which
// can sit closer to or farther from its motion's rotation axis than the
// object's overall bounding sphere does, so the same object pair can
// close faster around one leaf pair than another; minRatio below is the
// minimum, over every leaf pair actually visited, of distance/bound,
// rather than just the bound computed from the whole object's sphere.
type leafBoundFunc func(centerA mgl64.Vec3, radiusA float64, centerB mgl64.Vec3, radiusB float64, axis mgl64.Vec3) float64

// meshMeshClosestPair is the C5 recursive descent generalized from a
// single-tree-vs-AABB query (the teacher's CollisionB2DynamicTree.Query)
// to two trees queried against each other, and from original_source's
// distanceRecurse: of the child pairs produced at each step, the one whose
// BV-BV lower bound is smallest is expanded first (descend-closer-child-
// first), and any pair
// whose lower bound is no better than the best leaf distance found so far
// is pruned without descending. The returned minRatio is the smallest
// distance/motion-bound ratio seen over every leaf pair visited, which
// the caller uses to size the next conservative-advancement step so that
// no visited leaf pair (not just the closest one) can close to zero
// before the step completes.
//
// boundRelTf maps treeB's Bound frame into treeA's Bound frame, used only
// to prune BV-BV pairs; it differs from leafTfA/leafTfB because a Bound
// may already be expressed in world frame (an AABB tree's bounds, after
// RefreshWorld) while the tree's raw Triangles are never transformed in
// place and always stay in the tree's own local/body frame. leafTfA and
// leafTfB map each tree's local-frame triangle into the common frame the
// narrow-phase solver compares in, and must be supplied regardless of
// whether the corresponding Bound needed a transform or not.
func meshMeshClosestPair(treeA, treeB *bvh.Model, boundRelTf, leafTfA, leafTfB bv.Transform, solver narrowphase.Solver, bound leafBoundFunc) (narrowphase.Result, float64) {
	best := narrowphase.Result{Distance: math.Inf(1)}
	minRatio := math.Inf(1)
	if treeA.Root() < 0 || treeB.Root() < 0 {
		return best, minRatio
	}

	stack := []nodePair{{treeA.Root(), treeB.Root()}}
	for len(stack) > 0 {
		n := len(stack) - 1
		pair := stack[n]
		stack = stack[:n]

		na := treeA.Node(pair.a)
		nb := treeB.Node(pair.b)

		lb := na.Bound.DistanceLowerBound(nb.Bound, boundRelTf)
		if lb >= best.Distance {
			continue
		}

		if na.IsLeaf() && nb.IsLeaf() {
			ta := treeA.Triangles[na.Primitive]
			tb := treeB.Triangles[nb.Primitive]
			taWorld := geom.Triangle{A: leafTfA.Apply(ta.A), B: leafTfA.Apply(ta.B), C: leafTfA.Apply(ta.C)}
			tbWorld := geom.Triangle{A: leafTfB.Apply(tb.A), B: leafTfB.Apply(tb.B), C: leafTfB.Apply(tb.C)}
			r := narrowphase.TriangleDistance(taWorld, tbWorld)
			if r.Distance < best.Distance {
				best = r
			}
			// ta/tb are each triangle's own untransformed geometry, so
			// their bounding spheres are in the tree's local frame;
			// the motion bound only needs how far each leaf sits from
			// its own body's rotation axis/origin, not the frame the
			// narrow-phase distance above was computed in.
			leafCenterA, leafRadiusA := ta.ComputeLocalAABB().BoundingSphere()
			leafCenterB, leafRadiusB := tb.ComputeLocalAABB().BoundingSphere()
			if leafBound := bound(leafCenterA, leafRadiusA, leafCenterB, leafRadiusB, r.Normal); leafBound > 0 {
				if ratio := r.Distance / leafBound; ratio < minRatio {
					minRatio = ratio
				}
			}
			continue
		}

		var children []nodePair
		switch {
		case na.IsLeaf():
			children = []nodePair{{pair.a, nb.Left}, {pair.a, nb.Right}}
		case nb.IsLeaf():
			children = []nodePair{{na.Left, pair.b}, {na.Right, pair.b}}
		default:
			children = []nodePair{
				{na.Left, nb.Left}, {na.Left, nb.Right},
				{na.Right, nb.Left}, {na.Right, nb.Right},
			}
		}
		// Push the farthest pair first so the closest one is popped next.
		sort.Slice(children, func(i, j int) bool {
			lbI := treeA.Node(children[i].a).Bound.DistanceLowerBound(treeB.Node(children[i].b).Bound, boundRelTf)
			lbJ := treeA.Node(children[j].a).Bound.DistanceLowerBound(treeB.Node(children[j].b).Bound, boundRelTf)
			return lbI > lbJ
		})
		stack = append(stack, children...)
	}
	return best, minRatio
}

// meshShapeClosestPair descends a single mesh tree against one shape,
// pruning with the shape's bounding sphere as a conservative stand-in for
// a true BV-vs-shape distance bound. Like meshMeshClosestPair, it tracks
// minRatio, the smallest distance/motion-bound ratio over every leaf
// visited, not just the globally closest one.
//
// boundRelTf maps the tree's Bound frame into the shape's (world) frame
// for the pruning test; leafTf maps the tree's raw, never-transformed
// Triangles into that same frame for the narrow-phase call. The two
// coincide for an OBB tree (whose Bound is never refreshed, so both need
// the mesh's full world transform) but not for an AABB tree (whose Bound
// is refreshed into world frame up front, leaving boundRelTf as identity
// while leafTf still needs the mesh's full transform).
func meshShapeClosestPair(tree *bvh.Model, boundRelTf, leafTf bv.Transform, shape geom.Shape, shapeTf bv.Transform, solver narrowphase.Solver, bound leafBoundFunc) (narrowphase.Result, float64) {
	best := narrowphase.Result{Distance: math.Inf(1)}
	minRatio := math.Inf(1)
	if tree.Root() < 0 {
		return best, minRatio
	}

	localCenter, shapeRadius := shape.ComputeLocalAABB().BoundingSphere()
	shapeCenter := shapeTf.Apply(localCenter)

	stack := []int{tree.Root()}
	for len(stack) > 0 {
		n := len(stack) - 1
		i := stack[n]
		stack = stack[:n]

		node := tree.Node(i)
		c, r := node.Bound.BoundingSphere()
		c = boundRelTf.Apply(c)
		d := c.Sub(shapeCenter).Len() - r - shapeRadius
		if d >= best.Distance {
			continue
		}

		if node.IsLeaf() {
			t := tree.Triangles[node.Primitive]
			tWorld := geom.Triangle{A: leafTf.Apply(t.A), B: leafTf.Apply(t.B), C: leafTf.Apply(t.C)}
			res := solver.ShapeDistance(tWorld, bv.Identity(), shape, shapeTf)
			if res.Distance < best.Distance {
				best = res
			}
			leafCenter, leafRadius := t.ComputeLocalAABB().BoundingSphere()
			if leafBound := bound(leafCenter, leafRadius, localCenter, shapeRadius, res.Normal); leafBound > 0 {
				if ratio := res.Distance / leafBound; ratio < minRatio {
					minRatio = ratio
				}
			}
			continue
		}
		stack = append(stack, node.Left, node.Right)
	}
	return best, minRatio
}
