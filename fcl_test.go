package fcl_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/jiapei100/fcl"
	"github.com/jiapei100/fcl/bvh"
	"github.com/jiapei100/fcl/geom"
	"github.com/jiapei100/fcl/motion"
	"github.com/jiapei100/fcl/narrowphase"
)

func defaultRequest() fcl.Request {
	return fcl.DefaultRequest(narrowphase.NewGJKSolver())
}

func TestContinuousCollideSphereSphereHeadOn(t *testing.T) {
	a := fcl.NewObject(
		geom.Sphere{Radius: 1},
		motion.NewScrewMotion(motion.FromTranslation(mgl64.Vec3{-5, 0, 0}), mgl64.Vec3{16, 0, 0}, mgl64.Vec3{0, 0, 1}, 0),
	)
	b := fcl.NewObject(
		geom.Sphere{Radius: 1},
		motion.NewInterpolatedMotion(motion.FromTranslation(mgl64.Vec3{5, 0, 0}), motion.FromTranslation(mgl64.Vec3{5, 0, 0})),
	)

	res, err := fcl.ContinuousCollide(a, b, defaultRequest())
	assert.NoError(t, err)
	assert.True(t, res.IsCollide)
	// Spheres start 10 apart, touch when their centers are 2 apart: a
	// closes the 8-unit gap at 16 units per unit time, arriving at
	// t = 8/16 = 0.5.
	assert.InDelta(t, 0.5, res.TimeOfContact, 0.02)
}

func TestContinuousCollideTranslatingSphereMissesStaticBox(t *testing.T) {
	sphere := fcl.NewObject(
		geom.Sphere{Radius: 0.4},
		motion.NewInterpolatedMotion(motion.FromTranslation(mgl64.Vec3{0, 2, 0}), motion.FromTranslation(mgl64.Vec3{1, 2, 0})),
	)
	box := fcl.NewObject(
		geom.Box{Sides: mgl64.Vec3{1, 1, 1}},
		motion.NewInterpolatedMotion(motion.Identity(), motion.Identity()),
	)

	res, err := fcl.ContinuousCollide(sphere, box, defaultRequest())
	assert.NoError(t, err)
	assert.False(t, res.IsCollide)
	assert.Equal(t, 1.0, res.TimeOfContact)
}

func TestContinuousCollideSpheresNeverMeet(t *testing.T) {
	a := fcl.NewObject(
		geom.Sphere{Radius: 1},
		motion.NewScrewMotion(motion.FromTranslation(mgl64.Vec3{-5, 0, 0}), mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}, 0),
	)
	b := fcl.NewObject(
		geom.Sphere{Radius: 1},
		motion.NewInterpolatedMotion(motion.FromTranslation(mgl64.Vec3{5, 0, 0}), motion.FromTranslation(mgl64.Vec3{5, 0, 0})),
	)

	res, err := fcl.ContinuousCollide(a, b, defaultRequest())
	assert.NoError(t, err)
	assert.False(t, res.IsCollide)
}

func TestContinuousCollideFallingSphereHitsPlane(t *testing.T) {
	sphere := fcl.NewObject(
		geom.Sphere{Radius: 0.5},
		motion.NewScrewMotion(motion.FromTranslation(mgl64.Vec3{0, 5, 0}), mgl64.Vec3{0, -8, 0}, mgl64.Vec3{1, 0, 0}, 0),
	)
	plane := fcl.NewObject(
		geom.Plane{Normal: mgl64.Vec3{0, 1, 0}, Offset: 0},
		motion.NewInterpolatedMotion(motion.Identity(), motion.Identity()),
	)

	res, err := fcl.ContinuousCollide(sphere, plane, defaultRequest())
	assert.NoError(t, err)
	assert.True(t, res.IsCollide)
}

func TestContinuousCollideMeshShapeFallingOntoTriangle(t *testing.T) {
	tris := []geom.Triangle{
		{A: mgl64.Vec3{-5, -5, 0}, B: mgl64.Vec3{5, -5, 0}, C: mgl64.Vec3{0, 5, 0}},
	}
	mesh := fcl.NewObject(bvh.BuildAABB(tris), motion.NewInterpolatedMotion(motion.Identity(), motion.Identity()))
	sphere := fcl.NewObject(
		geom.Sphere{Radius: 0.3},
		motion.NewScrewMotion(motion.FromTranslation(mgl64.Vec3{0, 0, 4}), mgl64.Vec3{0, 0, -8}, mgl64.Vec3{0, 0, 1}, 0),
	)

	res, err := fcl.ContinuousCollide(sphere, mesh, defaultRequest())
	assert.NoError(t, err)
	assert.True(t, res.IsCollide)
}

func TestContinuousCollideMeshMeshAABBSameKind(t *testing.T) {
	triA := []geom.Triangle{{A: mgl64.Vec3{-1, -1, 0}, B: mgl64.Vec3{1, -1, 0}, C: mgl64.Vec3{0, 1, 0}}}
	triB := []geom.Triangle{{A: mgl64.Vec3{-1, -1, 0}, B: mgl64.Vec3{1, -1, 0}, C: mgl64.Vec3{0, 1, 0}}}

	a := fcl.NewObject(
		bvh.BuildAABB(triA),
		motion.NewScrewMotion(motion.FromTranslation(mgl64.Vec3{-10, 0, 0}), mgl64.Vec3{4, 0, 0}, mgl64.Vec3{0, 0, 1}, 0),
	)
	b := fcl.NewObject(
		bvh.BuildAABB(triB),
		motion.NewInterpolatedMotion(motion.FromTranslation(mgl64.Vec3{10, 0, 0}), motion.FromTranslation(mgl64.Vec3{10, 0, 0})),
	)

	res, err := fcl.ContinuousCollide(a, b, defaultRequest())
	assert.NoError(t, err)
	assert.False(t, res.IsCollide)
}

func TestContinuousCollideMixedMeshKindIsUnsupported(t *testing.T) {
	tri := []geom.Triangle{{A: mgl64.Vec3{-1, -1, 0}, B: mgl64.Vec3{1, -1, 0}, C: mgl64.Vec3{0, 1, 0}}}
	a := fcl.NewObject(bvh.BuildAABB(tri), motion.NewInterpolatedMotion(motion.Identity(), motion.Identity()))
	b := fcl.NewObject(bvh.BuildOBB(tri), motion.NewInterpolatedMotion(motion.Identity(), motion.Identity()))

	_, err := fcl.ContinuousCollide(a, b, defaultRequest())
	assert.Error(t, err)
}

// cubeTriangles builds the 12-triangle surface mesh of a cube of the
// given half-extent centered at the local origin, used to drive the
// BVH x BVH traversal nodes through more than one or two leaves.
func cubeTriangles(half float64) []geom.Triangle {
	v := func(x, y, z float64) mgl64.Vec3 { return mgl64.Vec3{x * half, y * half, z * half} }
	p := [8]mgl64.Vec3{
		v(-1, -1, -1), v(1, -1, -1), v(1, 1, -1), v(-1, 1, -1),
		v(-1, -1, 1), v(1, -1, 1), v(1, 1, 1), v(-1, 1, 1),
	}
	quad := func(a, b, c, d mgl64.Vec3) []geom.Triangle {
		return []geom.Triangle{{A: a, B: b, C: c}, {A: a, B: c, C: d}}
	}
	var tris []geom.Triangle
	tris = append(tris, quad(p[0], p[1], p[2], p[3])...)
	tris = append(tris, quad(p[5], p[4], p[7], p[6])...)
	tris = append(tris, quad(p[4], p[0], p[3], p[7])...)
	tris = append(tris, quad(p[1], p[5], p[6], p[2])...)
	tris = append(tris, quad(p[4], p[5], p[1], p[0])...)
	tris = append(tris, quad(p[3], p[2], p[6], p[7])...)
	return tris
}

func TestContinuousCollideTwoOBBCubeMeshesCollide(t *testing.T) {
	cubeA := fcl.NewObject(
		bvh.BuildOBB(cubeTriangles(1)),
		motion.NewInterpolatedMotion(motion.Identity(), motion.Identity()),
	)
	// Cube B starts with its near face 1 unit clear of cube A's near
	// face (gap = (3-1)-(0+1) = 1) and closes that gap at a constant
	// rate of 3 units/sec, so the faces touch at t = 1/3.
	cubeB := fcl.NewObject(
		bvh.BuildOBB(cubeTriangles(1)),
		motion.NewInterpolatedMotion(motion.FromTranslation(mgl64.Vec3{3, 0, 0}), motion.FromTranslation(mgl64.Vec3{0, 0, 0})),
	)

	res, err := fcl.ContinuousCollide(cubeA, cubeB, defaultRequest())
	assert.NoError(t, err)
	assert.True(t, res.IsCollide)
	assert.InDelta(t, 1.0/3.0, res.TimeOfContact, 0.02)
}

func TestContinuousCollideInitialOverlapReportsZeroIterations(t *testing.T) {
	// Both boxes share the same pose (the identity transform) at t=0, so
	// they already overlap before either motion is applied; their
	// subsequent motions are arbitrary and irrelevant to the t=0 verdict.
	a := fcl.NewObject(
		geom.Box{Sides: mgl64.Vec3{2, 2, 2}},
		motion.NewScrewMotion(motion.Identity(), mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}, 0),
	)
	b := fcl.NewObject(
		geom.Box{Sides: mgl64.Vec3{2, 2, 2}},
		motion.NewInterpolatedMotion(motion.Identity(), motion.FromTranslation(mgl64.Vec3{5, 0, 0})),
	)

	res, err := fcl.ContinuousCollide(a, b, defaultRequest())
	assert.NoError(t, err)
	assert.True(t, res.IsCollide)
	assert.Equal(t, 0.0, res.TimeOfContact)
	assert.Equal(t, 0, res.Iterations)
}

func TestContinuousCollideIsSymmetricUnderArgumentOrder(t *testing.T) {
	a := fcl.NewObject(
		geom.Sphere{Radius: 1},
		motion.NewScrewMotion(motion.FromTranslation(mgl64.Vec3{-5, 0, 0}), mgl64.Vec3{4, 0, 0}, mgl64.Vec3{0, 0, 1}, 0),
	)
	b := fcl.NewObject(
		geom.Box{Sides: mgl64.Vec3{2, 2, 2}},
		motion.NewInterpolatedMotion(motion.FromTranslation(mgl64.Vec3{5, 0, 0}), motion.FromTranslation(mgl64.Vec3{5, 0, 0})),
	)

	forward, err := fcl.ContinuousCollide(a, b, defaultRequest())
	assert.NoError(t, err)
	backward, err := fcl.ContinuousCollide(b, a, defaultRequest())
	assert.NoError(t, err)

	assert.Equal(t, forward.IsCollide, backward.IsCollide)
	assert.InDelta(t, forward.TimeOfContact, backward.TimeOfContact, 0.02)
}
