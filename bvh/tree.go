// Package bvh implements the storage structure the C5 traversal descends
// for mesh geometries: a binary tree of bounding volumes over a triangle
// soup, in either the axis-aligned or oriented flavor. Unlike fcl/scene's
// dynamic tree (built for incremental insert/remove of whole bodies), this
// tree is built once from a fixed triangle list and its shape never
// changes, matching how FCL's BVHModel is used as static per-body
// geometry; only an AABB-kind tree's node Bounds are rewritten in place,
// by RefreshWorld.
package bvh

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl/bv"
	"github.com/jiapei100/fcl/geom"
)

const nullNode = -1

// Node is one entry of the flat node array. Left < 0 marks a leaf; a leaf's
// Primitive indexes into the owning Model's Triangles.
type Node struct {
	Bound     bv.Volume
	Left      int
	Right     int
	Primitive int
}

func (n Node) IsLeaf() bool { return n.Left == nullNode }

// Model is a static bounding-volume hierarchy over a triangle mesh. It
// satisfies geom.CollisionGeometry with ObjectTypes.BVH, and its NodeType
// names which Volume kind its internal Bounds hold (NodeTypes.BVAABB or
// NodeTypes.BVOBB), the tag the dispatcher keys its handlers on.
type Model struct {
	nodeType  geom.NodeType
	Nodes     []Node
	Triangles []geom.Triangle
	root      int
}

func (m *Model) GetObjectType() geom.ObjectType { return geom.ObjectTypes.BVH }
func (m *Model) GetNodeType() geom.NodeType     { return m.nodeType }

// ComputeLocalAABB returns the AABB of the underlying triangle soup,
// independent of whether the tree's internal nodes are AABB or OBB
// volumes.
func (m *Model) ComputeLocalAABB() bv.AABB {
	pts := make([]mgl64.Vec3, 0, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		pts = append(pts, t.A, t.B, t.C)
	}
	if len(pts) == 0 {
		return bv.AABB{}
	}
	return bv.FromPoints(pts)
}

func (m *Model) Root() int       { return m.root }
func (m *Model) Node(i int) Node { return m.Nodes[i] }

// RefreshWorld recomputes every leaf AABB from its triangle under tf and
// refits internal nodes bottom-up. It only makes sense for an AABB-kind
// model: an OBB tree's bounds are expressed once in the body frame and
// never need to be refreshed, since the traversal instead recomputes the
// relative transform between trees each outer iteration.
func (m *Model) RefreshWorld(tf bv.Transform) {
	if m.nodeType != geom.NodeTypes.BVAABB {
		panic("bvh: RefreshWorld is only valid for an AABB-kind Model")
	}
	var refresh func(i int) bv.AABB
	refresh = func(i int) bv.AABB {
		n := &m.Nodes[i]
		if n.IsLeaf() {
			t := m.Triangles[n.Primitive]
			box := bv.FromPoints([]mgl64.Vec3{tf.Apply(t.A), tf.Apply(t.B), tf.Apply(t.C)})
			n.Bound = box
			return box
		}
		l := refresh(n.Left)
		r := refresh(n.Right)
		box := l.Merge(r)
		n.Bound = box
		return box
	}
	if m.root != nullNode {
		refresh(m.root)
	}
}
