package narrowphase

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl/bv"
	"github.com/jiapei100/fcl/geom"
)

// sphereBoxDistance and sphereCapsuleDistance are analytic fast paths for
// pairs GJK would otherwise need several iterations to converge on exactly
// (a sphere's single support point makes the closest-point computation
// exact in one shot). ShapeDistance dispatches here before falling back
// to the generic solver.
func sphereBoxDistance(s geom.Sphere, tfS bv.Transform, b geom.Box, tfB bv.Transform) Result {
	centerWorld := tfS.Apply(mgl64.Vec3{0, 0, 0})
	localCenter := tfB.Inverse().Apply(centerWorld)

	half := b.Sides.Mul(0.5)
	clamped := mgl64.Vec3{
		clampF(localCenter[0], -half[0], half[0]),
		clampF(localCenter[1], -half[1], half[1]),
		clampF(localCenter[2], -half[2], half[2]),
	}
	closestLocal := clamped
	closestWorld := tfB.Apply(closestLocal)

	delta := centerWorld.Sub(closestWorld)
	d := delta.Len()

	inside := localCenter == clamped
	if inside {
		// Center is inside the box: distance to the nearest face, negated.
		dist := half.Sub(vabs(localCenter))
		faceDist := dist[0]
		axis := mgl64.Vec3{1, 0, 0}
		if dist[1] < faceDist {
			faceDist, axis = dist[1], mgl64.Vec3{0, 1, 0}
		}
		if dist[2] < faceDist {
			faceDist, axis = dist[2], mgl64.Vec3{0, 0, 1}
		}
		n := tfB.ApplyVector(axis)
		if n.Len() > 1e-12 {
			n = n.Normalize()
		}
		return Result{Distance: -(faceDist + s.Radius), WitnessA: centerWorld, WitnessB: closestWorld, Normal: n}
	}

	n := mgl64.Vec3{1, 0, 0}
	if d > 1e-12 {
		n = delta.Mul(1 / d)
	}
	return Result{
		Distance: d - s.Radius,
		WitnessA: centerWorld.Sub(n.Mul(s.Radius)),
		WitnessB: closestWorld,
		Normal:   n,
	}
}

func sphereCapsuleDistance(s geom.Sphere, tfS bv.Transform, c geom.Capsule, tfC bv.Transform) Result {
	centerWorld := tfS.Apply(mgl64.Vec3{0, 0, 0})
	localCenter := tfC.Inverse().Apply(centerWorld)

	halfZ := c.Length / 2
	z := clampF(localCenter[2], -halfZ, halfZ)
	closestLocal := mgl64.Vec3{0, 0, z}
	closestWorld := tfC.Apply(closestLocal)

	delta := centerWorld.Sub(closestWorld)
	d := delta.Len()
	n := mgl64.Vec3{1, 0, 0}
	if d > 1e-12 {
		n = delta.Mul(1 / d)
	}
	return Result{
		Distance: d - s.Radius - c.Radius,
		WitnessA: centerWorld.Sub(n.Mul(s.Radius)),
		WitnessB: closestWorld.Add(n.Mul(c.Radius)),
		Normal:   n,
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func vabs(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{absF(v[0]), absF(v[1]), absF(v[2])}
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
