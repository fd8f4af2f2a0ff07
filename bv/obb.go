package bv

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OBB is an oriented bounding box, stored in its owning BVH's body frame:
// Rotation gives the box's local axes, Center and HalfExtents are
// expressed along those axes. Unlike AABB, an OBB never needs to be
// rebuilt when the body moves: only the relative transform between two
// OBB trees changes between outer iterations.
type OBB struct {
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
	Rotation    mgl64.Quat
}

func MakeOBB(center, halfExtents mgl64.Vec3, rot mgl64.Quat) OBB {
	return OBB{Center: center, HalfExtents: halfExtents, Rotation: rot}
}

func (o OBB) axes() [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{
		o.Rotation.Rotate(mgl64.Vec3{1, 0, 0}),
		o.Rotation.Rotate(mgl64.Vec3{0, 1, 0}),
		o.Rotation.Rotate(mgl64.Vec3{0, 0, 1}),
	}
}

// DistanceLowerBound runs a separating-axis search (box axes plus their
// nine pairwise cross products) and returns the largest certified gap, or
// 0 if no candidate axis separates the two boxes. This is a valid but not
// always tight lower bound: a positive result is a certified separation
// distance, a 0 result only means none of the 15 candidate axes could
// certify one (true distance may still be 0 or positive).
func (o OBB) DistanceLowerBound(other Volume, relTf Transform) float64 {
	b := other.(OBB)

	centerB := relTf.Apply(b.Center)
	rotB := relTf.Rotation.Mul(b.Rotation)
	bWorld := OBB{Center: centerB, HalfExtents: b.HalfExtents, Rotation: rotB}

	axesA := o.axes()
	axesB := bWorld.axes()

	centerDelta := bWorld.Center.Sub(o.Center)

	best := 0.0
	test := func(axis mgl64.Vec3) {
		l := axis.Len()
		if l < 1e-12 {
			return
		}
		axis = axis.Mul(1 / l)
		radiusA := 0.0
		radiusB := 0.0
		for i := 0; i < 3; i++ {
			radiusA += o.HalfExtents[i] * math.Abs(axesA[i].Dot(axis))
			radiusB += bWorld.HalfExtents[i] * math.Abs(axesB[i].Dot(axis))
		}
		gap := math.Abs(centerDelta.Dot(axis)) - (radiusA + radiusB)
		if gap > best {
			best = gap
		}
	}

	for i := 0; i < 3; i++ {
		test(axesA[i])
		test(axesB[i])
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			test(axesA[i].Cross(axesB[j]))
		}
	}

	return best
}

func (o OBB) Overlap(other Volume, relTf Transform) bool {
	return o.DistanceLowerBound(other, relTf) <= 0
}

func (o OBB) Inflate(r float64) Volume {
	return OBB{
		Center:      o.Center,
		HalfExtents: o.HalfExtents.Add(mgl64.Vec3{r, r, r}),
		Rotation:    o.Rotation,
	}
}

func (o OBB) BoundingSphere() (mgl64.Vec3, float64) {
	return o.Center, o.HalfExtents.Len()
}
