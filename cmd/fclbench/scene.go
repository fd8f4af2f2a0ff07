package main

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl"
	"github.com/jiapei100/fcl/bv"
	"github.com/jiapei100/fcl/bvh"
	"github.com/jiapei100/fcl/geom"
	"github.com/jiapei100/fcl/motion"
	"github.com/jiapei100/fcl/narrowphase"
	"github.com/jiapei100/fcl/scene"
)

type pair struct {
	a, b         *fcl.Object
	nameA, nameB string
}

func defaultSolver() narrowphase.Solver {
	return narrowphase.NewGJKSolver()
}

// namedBody is one entry in the demo scene: an Object plus the world AABB
// its motion sweeps through [0, 1], used to seed the broad phase.
type namedBody struct {
	name   string
	object *fcl.Object
	sweep  bv.AABB
}

// buildDemoScene registers a handful of moving bodies with a
// scene.Scene and turns its broad-phase candidate pairs into
// ContinuousCollide-ready pairs, covering the shape-shape and mesh-shape
// traversal-node kinds and the analytic plane fast path (the demo has no
// mesh-mesh pair).
func buildDemoScene() ([]pair, error) {
	bodies := demoBodies()

	sc := scene.NewScene()
	for i := range bodies {
		sc.Add(bodies[i].sweep, i)
	}

	var pairs []pair
	for _, hp := range sc.CandidatePairs() {
		ia := hp[0].(int)
		ib := hp[1].(int)
		pairs = append(pairs, pair{
			a: bodies[ia].object, nameA: bodies[ia].name,
			b: bodies[ib].object, nameB: bodies[ib].name,
		})
	}
	return pairs, nil
}

func demoBodies() []namedBody {
	// Two spheres on a collision course.
	sphereA := geom.Sphere{Radius: 1}
	sphereB := geom.Sphere{Radius: 1}
	motionA := motion.NewScrewMotion(motion.FromTranslation(mgl64.Vec3{-5, 0, 0}), mgl64.Vec3{16, 0, 0}, mgl64.Vec3{0, 0, 1}, 0)
	motionB := motion.NewInterpolatedMotion(motion.FromTranslation(mgl64.Vec3{5, 0, 0}), motion.FromTranslation(mgl64.Vec3{5, 0, 0}))

	// A falling sphere over a static ground plane.
	sphereC := geom.Sphere{Radius: 0.5}
	plane := geom.Plane{Normal: mgl64.Vec3{0, 1, 0}, Offset: 0}
	motionC := motion.NewScrewMotion(motion.FromTranslation(mgl64.Vec3{0, 5, 0}), mgl64.Vec3{0, -8, 0}, mgl64.Vec3{1, 0, 0}, 0)
	motionPlane := motion.NewInterpolatedMotion(motion.Identity(), motion.Identity())

	// A sphere passing a static box.
	box := geom.Box{Sides: mgl64.Vec3{2, 2, 2}}
	sphereD := geom.Sphere{Radius: 0.5}
	motionBox := motion.NewInterpolatedMotion(motion.Identity(), motion.Identity())
	motionD := motion.NewScrewMotion(motion.FromTranslation(mgl64.Vec3{6, 0, 0}), mgl64.Vec3{-10, 0, 0}, mgl64.Vec3{0, 1, 0}, 0)

	// A sphere dropping onto a single-triangle mesh.
	tris := []geom.Triangle{
		{A: mgl64.Vec3{-1, -1, 0}, B: mgl64.Vec3{1, -1, 0}, C: mgl64.Vec3{0, 1, 0}},
	}
	meshModel := bvh.BuildAABB(tris)
	motionMesh := motion.NewInterpolatedMotion(motion.Identity(), motion.Identity())
	sphereE := geom.Sphere{Radius: 0.3}
	motionE := motion.NewScrewMotion(motion.FromTranslation(mgl64.Vec3{0, 0, 4}), mgl64.Vec3{0, 0, -8}, mgl64.Vec3{0, 0, 1}, 0)

	return []namedBody{
		{name: "sphere-A", object: fcl.NewObject(sphereA, motionA), sweep: sweepAABB(sphereA, mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{11, 0, 0})},
		{name: "sphere-B", object: fcl.NewObject(sphereB, motionB), sweep: sweepAABB(sphereB, mgl64.Vec3{5, 0, 0}, mgl64.Vec3{5, 0, 0})},
		{name: "falling-sphere", object: fcl.NewObject(sphereC, motionC), sweep: sweepAABB(sphereC, mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -3, 0})},
		{name: "ground-plane", object: fcl.NewObject(plane, motionPlane), sweep: bv.MakeAABB(mgl64.Vec3{-1e6, -1, -1e6}, mgl64.Vec3{1e6, 1, 1e6})},
		{name: "sphere-D", object: fcl.NewObject(sphereD, motionD), sweep: sweepAABB(sphereD, mgl64.Vec3{6, 0, 0}, mgl64.Vec3{-4, 0, 0})},
		{name: "static-box", object: fcl.NewObject(box, motionBox), sweep: box.ComputeLocalAABB()},
		{name: "falling-sphere-2", object: fcl.NewObject(sphereE, motionE), sweep: sweepAABB(sphereE, mgl64.Vec3{0, 0, 4}, mgl64.Vec3{0, 0, -4})},
		{name: "triangle-mesh", object: fcl.NewObject(meshModel, motionMesh), sweep: meshModel.ComputeLocalAABB()},
	}
}

// sweepAABB bounds a sphere across a linear displacement from p0 to p1,
// a coarse but valid broad-phase bound for its screw motion.
func sweepAABB(s geom.Sphere, p0, p1 mgl64.Vec3) bv.AABB {
	r := mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	return bv.MakeAABB(p0.Sub(r), p0.Add(r)).Merge(bv.MakeAABB(p1.Sub(r), p1.Add(r)))
}
