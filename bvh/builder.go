package bvh

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl/bv"
	"github.com/jiapei100/fcl/geom"
)

// BuildAABB constructs a static AABB-kind Model over tris via top-down
// median-split on triangle centroids. The tree is not SAH-optimized; it
// exists to give the demo CLI and tests a mesh BVH to drive through the
// core, not to compete with a production mesh compiler.
func BuildAABB(tris []geom.Triangle) *Model {
	b := &builder{tris: tris}
	m := &Model{nodeType: geom.NodeTypes.BVAABB, Triangles: tris}
	idx := make([]int, len(tris))
	for i := range idx {
		idx[i] = i
	}
	m.root = b.splitAABB(m, idx)
	return m
}

// BuildOBB constructs a static OBB-kind Model over tris the same way, but
// fits each node's bound with an orientation taken from the node's
// dominant triangle-normal axis rather than the world axes.
func BuildOBB(tris []geom.Triangle) *Model {
	b := &builder{tris: tris}
	m := &Model{nodeType: geom.NodeTypes.BVOBB, Triangles: tris}
	idx := make([]int, len(tris))
	for i := range idx {
		idx[i] = i
	}
	m.root = b.splitOBB(m, idx)
	return m
}

type builder struct {
	tris []geom.Triangle
}

func (b *builder) centroid(i int) mgl64.Vec3 {
	t := b.tris[i]
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

func (b *builder) points(idx []int) []mgl64.Vec3 {
	pts := make([]mgl64.Vec3, 0, len(idx)*3)
	for _, i := range idx {
		t := b.tris[i]
		pts = append(pts, t.A, t.B, t.C)
	}
	return pts
}

// longestAxis returns the index (0, 1 or 2) of the widest extent among the
// vertices of the triangles in idx, used to pick the median-split axis.
func (b *builder) longestAxis(idx []int) int {
	box := bv.FromPoints(b.points(idx))
	ext := box.HalfExtents()
	axis := 0
	if ext[1] > ext[axis] {
		axis = 1
	}
	if ext[2] > ext[axis] {
		axis = 2
	}
	return axis
}

func (b *builder) splitAABB(m *Model, idx []int) int {
	box := bv.FromPoints(b.points(idx))
	if len(idx) == 1 {
		m.Nodes = append(m.Nodes, Node{Bound: box, Left: nullNode, Right: nullNode, Primitive: idx[0]})
		return len(m.Nodes) - 1
	}

	axis := b.longestAxis(idx)
	sort.Slice(idx, func(i, j int) bool { return b.centroid(idx[i])[axis] < b.centroid(idx[j])[axis] })
	mid := len(idx) / 2

	left := b.splitAABB(m, append([]int(nil), idx[:mid]...))
	right := b.splitAABB(m, append([]int(nil), idx[mid:]...))

	merged := m.Nodes[left].Bound.(bv.AABB).Merge(m.Nodes[right].Bound.(bv.AABB))
	m.Nodes = append(m.Nodes, Node{Bound: merged, Left: left, Right: right, Primitive: -1})
	return len(m.Nodes) - 1
}

// obbFromPoints fits an OBB by taking the node's dominant triangle normal
// as one local axis, completing an orthonormal frame, and bounding the
// points in that frame. This is a simple heuristic fit, not a true
// minimum-volume OBB.
func (b *builder) obbFromPoints(idx []int) bv.OBB {
	var normal mgl64.Vec3
	for _, i := range idx {
		t := b.tris[i]
		n := t.B.Sub(t.A).Cross(t.C.Sub(t.A))
		if n.Len() > 1e-12 {
			normal = normal.Add(n.Normalize())
		}
	}
	if normal.Len() < 1e-9 {
		normal = mgl64.Vec3{0, 0, 1}
	} else {
		normal = normal.Normalize()
	}

	rot := mgl64.QuatBetweenVectors(mgl64.Vec3{0, 0, 1}, normal)

	pts := b.points(idx)
	var center mgl64.Vec3
	for _, p := range pts {
		center = center.Add(p)
	}
	center = center.Mul(1.0 / float64(len(pts)))

	rotInv := rot.Inverse()
	half := mgl64.Vec3{}
	for _, p := range pts {
		local := rotInv.Rotate(p.Sub(center))
		half[0] = maxF(half[0], absF(local[0]))
		half[1] = maxF(half[1], absF(local[1]))
		half[2] = maxF(half[2], absF(local[2]))
	}
	return bv.MakeOBB(center, half, rot)
}

func (b *builder) splitOBB(m *Model, idx []int) int {
	box := b.obbFromPoints(idx)
	if len(idx) == 1 {
		m.Nodes = append(m.Nodes, Node{Bound: box, Left: nullNode, Right: nullNode, Primitive: idx[0]})
		return len(m.Nodes) - 1
	}

	axis := b.longestAxis(idx)
	sort.Slice(idx, func(i, j int) bool { return b.centroid(idx[i])[axis] < b.centroid(idx[j])[axis] })
	mid := len(idx) / 2

	left := b.splitOBB(m, append([]int(nil), idx[:mid]...))
	right := b.splitOBB(m, append([]int(nil), idx[mid:]...))

	merged := b.obbFromPoints(idx)
	m.Nodes = append(m.Nodes, Node{Bound: merged, Left: left, Right: right, Primitive: -1})
	return len(m.Nodes) - 1
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxF(a, b float64) float64 {
	if b > a {
		return b
	}
	return a
}
