package geom

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl/bv"
)

// Shape is a single convex primitive: the ObjectTypes.Primitive half of
// the (object_type, node_type) tag pair. Support is the GJK support
// function: the farthest point on the shape's surface, in the shape's
// own local frame, along dir.
type Shape interface {
	CollisionGeometry
	Support(dir mgl64.Vec3) mgl64.Vec3
}

// Sphere is centered at the local-frame origin with the given radius.
type Sphere struct {
	Radius float64
}

func (Sphere) GetObjectType() ObjectType { return ObjectTypes.Primitive }
func (Sphere) GetNodeType() NodeType     { return NodeTypes.GeomSphere }

func (s Sphere) ComputeLocalAABB() bv.AABB {
	r := mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	return bv.MakeAABB(r.Mul(-1), r)
}

func (s Sphere) Support(dir mgl64.Vec3) mgl64.Vec3 {
	l := dir.Len()
	if l < 1e-12 {
		return mgl64.Vec3{0, 0, 0}
	}
	return dir.Mul(s.Radius / l)
}

// Box is an axis-aligned (in its own local frame) box of the given full
// side lengths, centered at the origin.
type Box struct {
	Sides mgl64.Vec3
}

func (Box) GetObjectType() ObjectType { return ObjectTypes.Primitive }
func (Box) GetNodeType() NodeType     { return NodeTypes.GeomBox }

func (b Box) half() mgl64.Vec3 { return b.Sides.Mul(0.5) }

func (b Box) ComputeLocalAABB() bv.AABB {
	h := b.half()
	return bv.MakeAABB(h.Mul(-1), h)
}

func (b Box) Support(dir mgl64.Vec3) mgl64.Vec3 {
	h := b.half()
	sign := func(v float64) float64 {
		if v < 0 {
			return -1
		}
		return 1
	}
	return mgl64.Vec3{sign(dir[0]) * h[0], sign(dir[1]) * h[1], sign(dir[2]) * h[2]}
}

// Capsule is a sphere-swept segment of the given length (along the local
// Z axis) and radius.
type Capsule struct {
	Radius float64
	Length float64
}

func (Capsule) GetObjectType() ObjectType { return ObjectTypes.Primitive }
func (Capsule) GetNodeType() NodeType     { return NodeTypes.GeomCapsule }

func (c Capsule) ComputeLocalAABB() bv.AABB {
	halfZ := c.Length / 2
	return bv.MakeAABB(
		mgl64.Vec3{-c.Radius, -c.Radius, -halfZ - c.Radius},
		mgl64.Vec3{c.Radius, c.Radius, halfZ + c.Radius},
	)
}

func (c Capsule) Support(dir mgl64.Vec3) mgl64.Vec3 {
	halfZ := c.Length / 2
	z := halfZ
	if dir[2] < 0 {
		z = -halfZ
	}
	l := dir.Len()
	if l < 1e-12 {
		return mgl64.Vec3{0, 0, z}
	}
	return mgl64.Vec3{0, 0, z}.Add(dir.Mul(c.Radius / l))
}

// Plane is the infinite plane { x : Normal . x == Offset }, with Normal a
// unit vector. It has no finite support function; fcl/narrowphase
// resolves it with an analytic signed-distance formula instead of GJK.
type Plane struct {
	Normal mgl64.Vec3
	Offset float64
}

func (Plane) GetObjectType() ObjectType { return ObjectTypes.Primitive }
func (Plane) GetNodeType() NodeType     { return NodeTypes.GeomPlane }

func (p Plane) ComputeLocalAABB() bv.AABB {
	const inf = 1e12
	return bv.MakeAABB(mgl64.Vec3{-inf, -inf, -inf}, mgl64.Vec3{inf, inf, inf})
}

func (p Plane) Support(dir mgl64.Vec3) mgl64.Vec3 {
	panic("geom: Plane has no finite support point")
}

// Halfspace is the closed half-space { x : Normal . x <= Offset }.
type Halfspace struct {
	Normal mgl64.Vec3
	Offset float64
}

func (Halfspace) GetObjectType() ObjectType { return ObjectTypes.Primitive }
func (Halfspace) GetNodeType() NodeType     { return NodeTypes.GeomHalfspace }

func (h Halfspace) ComputeLocalAABB() bv.AABB {
	const inf = 1e12
	return bv.MakeAABB(mgl64.Vec3{-inf, -inf, -inf}, mgl64.Vec3{inf, inf, inf})
}

func (h Halfspace) Support(dir mgl64.Vec3) mgl64.Vec3 {
	panic("geom: Halfspace has no finite support point")
}

// Triangle is a single triangle, the leaf primitive a mesh BVH bottoms
// out at.
type Triangle struct {
	A, B, C mgl64.Vec3
}

func (Triangle) GetObjectType() ObjectType { return ObjectTypes.Primitive }
func (Triangle) GetNodeType() NodeType     { return NodeTypes.GeomTriangle }

func (t Triangle) ComputeLocalAABB() bv.AABB {
	min := mgl64.Vec3{
		minOf3(t.A[0], t.B[0], t.C[0]),
		minOf3(t.A[1], t.B[1], t.C[1]),
		minOf3(t.A[2], t.B[2], t.C[2]),
	}
	max := mgl64.Vec3{
		maxOf3(t.A[0], t.B[0], t.C[0]),
		maxOf3(t.A[1], t.B[1], t.C[1]),
		maxOf3(t.A[2], t.B[2], t.C[2]),
	}
	return bv.MakeAABB(min, max)
}

func (t Triangle) Support(dir mgl64.Vec3) mgl64.Vec3 {
	best := t.A
	bestDot := t.A.Dot(dir)
	if d := t.B.Dot(dir); d > bestDot {
		best, bestDot = t.B, d
	}
	if d := t.C.Dot(dir); d > bestDot {
		best = t.C
	}
	return best
}

func minOf3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxOf3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
