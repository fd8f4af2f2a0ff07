// Package bv implements the bounding-volume kinds the core traversal
// prunes with: axis-aligned boxes and oriented boxes. Both satisfy the
// same small contract (distance lower bound, overlap, inflate) so the
// traversal code in the root package only ever depends on the interface.
package bv

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Volume is the C2 bounding-volume contract: a certified lower bound on
// point-to-point distance between the sets two BVs enclose, the
// corresponding overlap predicate, and a Minkowski-sum inflation used to
// fold a motion bound into the pruning test.
type Volume interface {
	// DistanceLowerBound returns a lower bound on the distance between the
	// receiver (in its own frame) and other, expressed under relTf (the
	// transform carrying other's frame into the receiver's). For
	// axis-aligned kinds relTf is always the identity and both volumes are
	// already expressed in a shared world frame.
	DistanceLowerBound(other Volume, relTf Transform) float64
	Overlap(other Volume, relTf Transform) bool
	Inflate(radius float64) Volume
	// BoundingSphere returns a conservative enclosing sphere, used by the
	// motion model to bound point displacement without needing a
	// per-BV-kind visitor.
	BoundingSphere() (center mgl64.Vec3, radius float64)
}

// Transform is the minimal rigid transform the BV layer needs: a rotation
// (as a unit quaternion) plus a translation. It mirrors fcl/motion.Transform
// structurally but lives here too to avoid bv depending on motion.
type Transform struct {
	Rotation    mgl64.Quat
	Translation mgl64.Vec3
}

// Identity is the no-op transform.
func Identity() Transform {
	return Transform{Rotation: mgl64.QuatIdent()}
}

// Apply carries a point from the transform's local frame into its parent
// frame.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(p).Add(t.Translation)
}

// ApplyVector rotates (but does not translate) a free vector.
func (t Transform) ApplyVector(v mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(v)
}

// Inverse returns the transform undoing t.
func (t Transform) Inverse() Transform {
	rInv := t.Rotation.Inverse()
	return Transform{Rotation: rInv, Translation: rInv.Rotate(t.Translation.Mul(-1))}
}

// Mul composes two transforms: (t.Mul(o)).Apply(p) == t.Apply(o.Apply(p)).
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		Rotation:    t.Rotation.Mul(o.Rotation),
		Translation: t.Rotation.Rotate(o.Translation).Add(t.Translation),
	}
}

// AABB is an axis-aligned bounding box, expressed by convention in whatever
// frame the caller is currently working in (world frame for the axis-
// aligned BVH traversal, per spec).
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// MakeAABB builds an AABB from explicit corners, normalizing component
// order.
func MakeAABB(a, b mgl64.Vec3) AABB {
	return AABB{
		Min: mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])},
		Max: mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])},
	}
}

// FromPoints computes the AABB enclosing a point set. Panics on an empty
// slice; callers always have at least one vertex.
func FromPoints(pts []mgl64.Vec3) AABB {
	box := AABB{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		box = box.Merge(AABB{Min: p, Max: p})
	}
	return box
}

// Merge returns the smallest AABB enclosing both a and b.
func (a AABB) Merge(b AABB) AABB {
	return MakeAABB(
		mgl64.Vec3{math.Min(a.Min[0], b.Min[0]), math.Min(a.Min[1], b.Min[1]), math.Min(a.Min[2], b.Min[2])},
		mgl64.Vec3{math.Max(a.Max[0], b.Max[0]), math.Max(a.Max[1], b.Max[1]), math.Max(a.Max[2], b.Max[2])},
	)
}

func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) HalfExtents() mgl64.Vec3 {
	return a.Max.Sub(a.Min).Mul(0.5)
}

// DistanceLowerBound implements Volume for the axis-aligned case. relTf is
// required to be the identity: axis-aligned BVs are only ever compared
// once both sides have been expressed in a common world frame (see
// fcl/bvh's leaf-refresh step).
func (a AABB) DistanceLowerBound(other Volume, relTf Transform) float64 {
	b := other.(AABB)
	d := 0.0
	for i := 0; i < 3; i++ {
		lo := math.Max(a.Min[i]-b.Max[i], b.Min[i]-a.Max[i])
		if lo > 0 {
			d += lo * lo
		}
	}
	return math.Sqrt(d)
}

func (a AABB) Overlap(other Volume, relTf Transform) bool {
	return a.DistanceLowerBound(other, relTf) <= 0
}

func (a AABB) Inflate(r float64) Volume {
	pad := mgl64.Vec3{r, r, r}
	return AABB{Min: a.Min.Sub(pad), Max: a.Max.Add(pad)}
}

func (a AABB) BoundingSphere() (mgl64.Vec3, float64) {
	return a.Center(), a.HalfExtents().Len()
}
