// Package narrowphase implements C3: the per-pair-of-primitives distance
// query the traversal nodes call at every BVH leaf pair. It combines a
// generic GJK distance solver for convex-convex pairs with analytic
// fast paths for the shapes GJK cannot handle directly (planes and
// half-spaces have no finite support function).
package narrowphase

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl/bv"
	"github.com/jiapei100/fcl/geom"
)

// Result is a single shape-pair distance query outcome, expressed in a
// shared world (or common reference) frame.
type Result struct {
	Distance float64
	WitnessA mgl64.Vec3
	WitnessB mgl64.Vec3
	// Normal points from WitnessA towards WitnessB when Distance > 0. When
	// the shapes touch or overlap Distance is zero or negative (the GJK
	// path reports zero) and Normal is a best-effort axis, not a precise
	// penetration normal.
	Normal mgl64.Vec3
}

// Solver is the C3 contract: distance between two oriented convex
// primitives. tfA and tfB place each shape's local frame into a shared
// reference frame.
type Solver interface {
	ShapeDistance(a geom.Shape, tfA bv.Transform, b geom.Shape, tfB bv.Transform) Result
}

// GJKSolver is the default Solver, grounded on a standard Gilbert-Johnson-
// Keerthi convex distance query plus analytic fast paths for the
// unbounded primitives (Plane, Halfspace) that have no finite support
// function and so cannot be fed to GJK directly.
type GJKSolver struct {
	MaxIterations int
	Tolerance     float64
}

// NewGJKSolver returns a solver with the iteration/tolerance defaults
// used throughout this package's tests.
func NewGJKSolver() *GJKSolver {
	return &GJKSolver{MaxIterations: 64, Tolerance: 1e-9}
}

func (s *GJKSolver) ShapeDistance(a geom.Shape, tfA bv.Transform, b geom.Shape, tfB bv.Transform) Result {
	if plane, ok := a.(geom.Plane); ok {
		return flip(s.shapePlaneDistance(b, tfB, plane, tfA))
	}
	if plane, ok := b.(geom.Plane); ok {
		return s.shapePlaneDistance(a, tfA, plane, tfB)
	}
	if hs, ok := a.(geom.Halfspace); ok {
		return flip(s.shapeHalfspaceDistance(b, tfB, hs, tfA))
	}
	if hs, ok := b.(geom.Halfspace); ok {
		return s.shapeHalfspaceDistance(a, tfA, hs, tfB)
	}
	if as, ok := a.(geom.Sphere); ok {
		switch bt := b.(type) {
		case geom.Sphere:
			return sphereSphereDistance(as, tfA, bt, tfB)
		case geom.Box:
			return sphereBoxDistance(as, tfA, bt, tfB)
		case geom.Capsule:
			return sphereCapsuleDistance(as, tfA, bt, tfB)
		}
	}
	if bs, ok := b.(geom.Sphere); ok {
		switch at := a.(type) {
		case geom.Box:
			return flip(sphereBoxDistance(bs, tfB, at, tfA))
		case geom.Capsule:
			return flip(sphereCapsuleDistance(bs, tfB, at, tfA))
		}
	}
	return s.gjkDistance(a, tfA, b, tfB)
}

func flip(r Result) Result {
	return Result{Distance: r.Distance, WitnessA: r.WitnessB, WitnessB: r.WitnessA, Normal: r.Normal.Mul(-1)}
}

func sphereSphereDistance(a geom.Sphere, tfA bv.Transform, b geom.Sphere, tfB bv.Transform) Result {
	ca := tfA.Apply(mgl64.Vec3{0, 0, 0})
	cb := tfB.Apply(mgl64.Vec3{0, 0, 0})
	delta := cb.Sub(ca)
	centerDist := delta.Len()
	dist := centerDist - a.Radius - b.Radius
	n := mgl64.Vec3{1, 0, 0}
	if centerDist > 1e-12 {
		n = delta.Mul(1 / centerDist)
	}
	return Result{
		Distance: dist,
		WitnessA: ca.Add(n.Mul(a.Radius)),
		WitnessB: cb.Sub(n.Mul(b.Radius)),
		Normal:   n,
	}
}

func (s *GJKSolver) shapePlaneDistance(shape geom.Shape, tfShape bv.Transform, plane geom.Plane, tfPlane bv.Transform) Result {
	n := tfPlane.ApplyVector(plane.Normal)
	if l := n.Len(); l > 1e-12 {
		n = n.Mul(1 / l)
	}
	// A point on the plane, in the shared frame.
	p0 := tfPlane.Apply(plane.Normal.Mul(plane.Offset))

	support := tfShape.Apply(shape.Support(tfShape.Inverse().ApplyVector(n).Mul(-1)))
	dist := support.Sub(p0).Dot(n)
	proj := support.Sub(n.Mul(dist))
	return Result{Distance: dist, WitnessA: support, WitnessB: proj, Normal: n}
}

func (s *GJKSolver) shapeHalfspaceDistance(shape geom.Shape, tfShape bv.Transform, hs geom.Halfspace, tfHS bv.Transform) Result {
	return s.shapePlaneDistance(shape, tfShape, geom.Plane{Normal: hs.Normal, Offset: hs.Offset}, tfHS)
}

// gjkDistance runs GJK to either certify separation and return the
// closest points, or detect overlap (reported as a non-positive distance
// with a best-effort separating axis from the final simplex, a minimal
// stand-in for a full EPA penetration pass, sufficient for conservative
// advancement to back off a step rather than report a precise normal).
func (s *GJKSolver) gjkDistance(a geom.Shape, tfA bv.Transform, b geom.Shape, tfB bv.Transform) Result {
	supportPoints := func(dir mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
		pa := tfA.Apply(a.Support(tfA.Inverse().ApplyVector(dir).Mul(-1)))
		pb := tfB.Apply(b.Support(tfB.Inverse().ApplyVector(dir)))
		return pa, pb
	}

	dir := tfB.Translation.Sub(tfA.Translation)
	if dir.Len() < 1e-9 {
		dir = mgl64.Vec3{1, 0, 0}
	}
	newVertex := func(d mgl64.Vec3) gjkVertex {
		pa, pb := supportPoints(d)
		return gjkVertex{a: pa, b: pb, p: pb.Sub(pa)}
	}

	simplex := []gjkVertex{newVertex(dir)}
	dir = simplex[0].p.Mul(-1)

	for iter := 0; iter < s.MaxIterations; iter++ {
		if dir.Len() < 1e-12 {
			return overlapResult(simplex)
		}
		// c is the simplex's current point nearest the origin. Once the
		// support point along -c gets no closer to the origin than c
		// (within Tolerance), c is the closest point of the Minkowski
		// difference and its length is the separating distance.
		closest := closestOnSimplex(simplex)
		c := closest.Normal.Mul(closest.Distance)
		v := newVertex(c.Mul(-1))
		if c.Dot(c)-v.p.Dot(c) <= s.Tolerance {
			return closest
		}
		simplex = append(simplex, v)
		var collided bool
		simplex, dir, collided = reduceSimplex(simplex)
		if collided {
			return overlapResult(simplex)
		}
	}
	return closestOnSimplex(simplex)
}

type gjkVertex = struct{ a, b, p mgl64.Vec3 }

// reduceSimplex collapses the simplex toward the origin using the
// standard GJK vertex/edge/triangle/tetrahedron cases, returning the
// reduced simplex and the next search direction. collided is true when
// the simplex has enclosed the origin.
func reduceSimplex(simplex []gjkVertex) ([]gjkVertex, mgl64.Vec3, bool) {
	switch len(simplex) {
	case 2:
		return lineCase(simplex)
	case 3:
		return triangleCase(simplex)
	case 4:
		return tetrahedronCase(simplex)
	}
	return simplex, simplex[0].p.Mul(-1), false
}

func lineCase(s []gjkVertex) ([]gjkVertex, mgl64.Vec3, bool) {
	b, a := s[0], s[1]
	ab := b.p.Sub(a.p)
	ao := a.p.Mul(-1)
	if ab.Dot(ao) > 0 {
		dir := ab.Cross(ao).Cross(ab)
		if dir.Len() < 1e-12 {
			dir = anyPerp(ab)
		}
		return []gjkVertex{b, a}, dir, false
	}
	return []gjkVertex{a}, ao, false
}

func triangleCase(s []gjkVertex) ([]gjkVertex, mgl64.Vec3, bool) {
	c, b, a := s[0], s[1], s[2]
	ab := b.p.Sub(a.p)
	ac := c.p.Sub(a.p)
	ao := a.p.Mul(-1)
	abc := ab.Cross(ac)

	if abc.Cross(ac).Dot(ao) > 0 {
		if ac.Dot(ao) > 0 {
			return []gjkVertex{c, a}, ac.Cross(ao).Cross(ac), false
		}
		return lineCase([]gjkVertex{b, a})
	}
	if ab.Cross(abc).Dot(ao) > 0 {
		return lineCase([]gjkVertex{b, a})
	}
	if abc.Dot(ao) > 0 {
		return []gjkVertex{c, b, a}, abc, false
	}
	return []gjkVertex{b, c, a}, abc.Mul(-1), false
}

func tetrahedronCase(s []gjkVertex) ([]gjkVertex, mgl64.Vec3, bool) {
	d, c, b, a := s[0], s[1], s[2], s[3]
	ao := a.p.Mul(-1)

	faces := [][3]gjkVertex{{b, c, a}, {c, d, a}, {d, b, a}}
	for _, f := range faces {
		n := f[1].p.Sub(f[0].p).Cross(f[2].p.Sub(f[0].p))
		if n.Dot(a.p.Sub(f[0].p)) > 0 {
			n = n.Mul(-1)
		}
		if n.Dot(ao) > 0 {
			return triangleCase([]gjkVertex{f[1], f[0], f[2]})
		}
	}
	return []gjkVertex{d, c, b, a}, ao, true
}

func anyPerp(v mgl64.Vec3) mgl64.Vec3 {
	if math.Abs(v[0]) < math.Abs(v[1]) {
		return v.Cross(mgl64.Vec3{1, 0, 0})
	}
	return v.Cross(mgl64.Vec3{0, 1, 0})
}

// closestOnSimplex finds the point on the simplex closest to the origin
// and reconstructs the matching witness points on A and B via barycentric
// weights, used once GJK has certified separation.
func closestOnSimplex(simplex []gjkVertex) Result {
	switch len(simplex) {
	case 1:
		v := simplex[0]
		return makeResult(v.a, v.b, v.p)
	case 2:
		a, b := simplex[1], simplex[0]
		t := closestParamOnSegment(a.p, b.p)
		wa := lerpVec3(a.a, b.a, t)
		wb := lerpVec3(a.b, b.b, t)
		p := lerpVec3(a.p, b.p, t)
		return makeResult(wa, wb, p)
	default:
		// Triangle or higher: project the origin onto the triangle formed
		// by the first three vertices using barycentric clamping.
		tri := simplex
		if len(tri) > 3 {
			tri = tri[len(tri)-3:]
		}
		u, v, w, p := closestBarycentric(tri[0].p, tri[1].p, tri[2].p)
		wa := tri[0].a.Mul(u).Add(tri[1].a.Mul(v)).Add(tri[2].a.Mul(w))
		wb := tri[0].b.Mul(u).Add(tri[1].b.Mul(v)).Add(tri[2].b.Mul(w))
		return makeResult(wa, wb, p)
	}
}

func overlapResult(simplex []gjkVertex) Result {
	// No EPA penetration-depth pass; report a zero-distance overlap with
	// the last search direction as a best-effort axis.
	axis := mgl64.Vec3{0, 0, 1}
	if len(simplex) > 0 {
		axis = simplex[len(simplex)-1].p
		if axis.Len() > 1e-9 {
			axis = axis.Normalize()
		} else {
			axis = mgl64.Vec3{0, 0, 1}
		}
	}
	var wa, wb mgl64.Vec3
	n := len(simplex)
	for _, v := range simplex {
		wa = wa.Add(v.a)
		wb = wb.Add(v.b)
	}
	if n > 0 {
		wa = wa.Mul(1 / float64(n))
		wb = wb.Mul(1 / float64(n))
	}
	return Result{Distance: 0, WitnessA: wa, WitnessB: wb, Normal: axis}
}

func makeResult(wa, wb, p mgl64.Vec3) Result {
	dist := p.Len()
	n := mgl64.Vec3{1, 0, 0}
	if dist > 1e-12 {
		n = p.Mul(1 / dist)
	}
	return Result{Distance: dist, WitnessA: wa, WitnessB: wb, Normal: n}
}

func closestParamOnSegment(a, b mgl64.Vec3) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < 1e-18 {
		return 0
	}
	t := a.Mul(-1).Dot(ab) / l2
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// closestBarycentric projects the origin onto triangle (a, b, c) and
// returns the clamped barycentric weights plus the resulting closest
// point, covering the vertex/edge/face Voronoi regions.
func closestBarycentric(a, b, c mgl64.Vec3) (u, v, w float64, p mgl64.Vec3) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := a.Mul(-1)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return 1, 0, 0, a
	}

	bp := b.Mul(-1)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return 0, 1, 0, b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		t := d1 / (d1 - d3)
		return 1 - t, t, 0, a.Add(ab.Mul(t))
	}

	cp := c.Mul(-1)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return 0, 0, 1, c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		t := d2 / (d2 - d6)
		return 1 - t, 0, t, a.Add(ac.Mul(t))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		t := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return 0, 1 - t, t, b.Add(c.Sub(b).Mul(t))
	}

	denom := 1 / (va + vb + vc)
	vv := vb * denom
	ww := vc * denom
	return 1 - vv - ww, vv, ww, a.Add(ab.Mul(vv)).Add(ac.Mul(ww))
}
