package narrowphase

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl/geom"
)

// ClosestPointOnTriangle projects p onto triangle t and returns the
// closest point (the barycentric weights are used internally and not
// returned), reusing the same
// Voronoi-region case analysis the GJK simplex reduction uses for its
// triangle face.
func ClosestPointOnTriangle(t geom.Triangle, p mgl64.Vec3) mgl64.Vec3 {
	u, v, w, _ := closestBarycentric(t.A.Sub(p), t.B.Sub(p), t.C.Sub(p))
	return t.A.Mul(u).Add(t.B.Mul(v)).Add(t.C.Mul(w))
}

// TriangleDistance computes the exact distance between two triangles
// (mesh leaves), expressed in a shared frame, by combining the
// closest-point-on-triangle projection with an edge-edge closest-segment
// fallback for the case where neither triangle's projection lands inside
// the other. The standard decomposition for triangle-triangle distance
// when the triangles don't interpenetrate.
func TriangleDistance(a, b geom.Triangle) Result {
	best := math.Inf(1)
	var bestA, bestB mgl64.Vec3

	consider := func(pa, pb mgl64.Vec3) {
		d := pa.Sub(pb).Len()
		if d < best {
			best = d
			bestA, bestB = pa, pb
		}
	}

	for _, v := range []mgl64.Vec3{a.A, a.B, a.C} {
		consider(v, ClosestPointOnTriangle(b, v))
	}
	for _, v := range []mgl64.Vec3{b.A, b.B, b.C} {
		consider(ClosestPointOnTriangle(a, v), v)
	}

	edgesA := [][2]mgl64.Vec3{{a.A, a.B}, {a.B, a.C}, {a.C, a.A}}
	edgesB := [][2]mgl64.Vec3{{b.A, b.B}, {b.B, b.C}, {b.C, b.A}}
	for _, ea := range edgesA {
		for _, eb := range edgesB {
			pa, pb := closestSegmentSegment(ea[0], ea[1], eb[0], eb[1])
			consider(pa, pb)
		}
	}

	n := mgl64.Vec3{1, 0, 0}
	if best > 1e-12 {
		n = bestB.Sub(bestA).Mul(1 / best)
	}
	return Result{Distance: best, WitnessA: bestA, WitnessB: bestB, Normal: n}
}

// closestSegmentSegment finds the closest pair of points between segments
// p1-q1 and p2-q2.
func closestSegmentSegment(p1, q1, p2, q2 mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)

	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	var s, t float64
	const eps = 1e-12

	if a <= eps && e <= eps {
		return p1, p2
	}
	if a <= eps {
		s = 0
		t = clampF(f/e, 0, 1)
	} else {
		c := d1.Dot(r)
		if e <= eps {
			t = 0
			s = clampF(-c/a, 0, 1)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom != 0 {
				s = clampF((b*f-c*e)/denom, 0, 1)
			} else {
				s = 0
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clampF(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = clampF((b-c)/a, 0, 1)
			}
		}
	}

	return p1.Add(d1.Mul(s)), p2.Add(d2.Mul(t))
}
