package narrowphase_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/jiapei100/fcl/bv"
	"github.com/jiapei100/fcl/geom"
	"github.com/jiapei100/fcl/narrowphase"
)

func tf(t mgl64.Vec3) bv.Transform {
	return bv.Transform{Rotation: mgl64.QuatIdent(), Translation: t}
}

func TestGJKSphereSphereSeparated(t *testing.T) {
	s := narrowphase.NewGJKSolver()
	a := geom.Sphere{Radius: 1}
	b := geom.Sphere{Radius: 1}
	res := s.ShapeDistance(a, tf(mgl64.Vec3{0, 0, 0}), b, tf(mgl64.Vec3{5, 0, 0}))
	assert.InDelta(t, 3.0, res.Distance, 1e-6)
}

func TestGJKSphereSphereOverlapping(t *testing.T) {
	s := narrowphase.NewGJKSolver()
	a := geom.Sphere{Radius: 2}
	b := geom.Sphere{Radius: 2}
	res := s.ShapeDistance(a, tf(mgl64.Vec3{0, 0, 0}), b, tf(mgl64.Vec3{1, 0, 0}))
	assert.LessOrEqual(t, res.Distance, 0.0)
}

func TestGJKBoxBoxSeparated(t *testing.T) {
	s := narrowphase.NewGJKSolver()
	a := geom.Box{Sides: mgl64.Vec3{2, 2, 2}}
	b := geom.Box{Sides: mgl64.Vec3{2, 2, 2}}
	res := s.ShapeDistance(a, tf(mgl64.Vec3{0, 0, 0}), b, tf(mgl64.Vec3{5, 0, 0}))
	assert.InDelta(t, 3.0, res.Distance, 1e-5)
}

func TestGJKBoxBoxTouching(t *testing.T) {
	s := narrowphase.NewGJKSolver()
	a := geom.Box{Sides: mgl64.Vec3{2, 2, 2}}
	b := geom.Box{Sides: mgl64.Vec3{2, 2, 2}}
	res := s.ShapeDistance(a, tf(mgl64.Vec3{0, 0, 0}), b, tf(mgl64.Vec3{2, 0, 0}))
	assert.InDelta(t, 0.0, res.Distance, 1e-5)
}

func TestShapePlaneDistance(t *testing.T) {
	s := narrowphase.NewGJKSolver()
	sphere := geom.Sphere{Radius: 1}
	plane := geom.Plane{Normal: mgl64.Vec3{0, 1, 0}, Offset: 0}
	res := s.ShapeDistance(sphere, tf(mgl64.Vec3{0, 5, 0}), plane, tf(mgl64.Vec3{0, 0, 0}))
	assert.InDelta(t, 4.0, res.Distance, 1e-9)
}

func TestShapePlaneDistanceOrderIndependent(t *testing.T) {
	s := narrowphase.NewGJKSolver()
	sphere := geom.Sphere{Radius: 1}
	plane := geom.Plane{Normal: mgl64.Vec3{0, 1, 0}, Offset: 0}
	res := s.ShapeDistance(plane, tf(mgl64.Vec3{0, 0, 0}), sphere, tf(mgl64.Vec3{0, 5, 0}))
	assert.InDelta(t, 4.0, res.Distance, 1e-9)
}
