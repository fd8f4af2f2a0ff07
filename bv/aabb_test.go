package bv_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/jiapei100/fcl/bv"
)

func TestAABBDistanceLowerBoundSeparated(t *testing.T) {
	a := bv.MakeAABB(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := bv.MakeAABB(mgl64.Vec3{4, 0, 0}, mgl64.Vec3{5, 1, 1})
	assert.InDelta(t, 3.0, a.DistanceLowerBound(b, bv.Identity()), 1e-9)
	assert.InDelta(t, 3.0, b.DistanceLowerBound(a, bv.Identity()), 1e-9)
}

func TestAABBDistanceLowerBoundOverlapping(t *testing.T) {
	a := bv.MakeAABB(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 2, 2})
	b := bv.MakeAABB(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{3, 3, 3})
	assert.Equal(t, 0.0, a.DistanceLowerBound(b, bv.Identity()))
	assert.True(t, a.Overlap(b, bv.Identity()))
}

func TestAABBMergeEnclosesBoth(t *testing.T) {
	a := bv.MakeAABB(mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 1, 1})
	b := bv.MakeAABB(mgl64.Vec3{0, -2, 0}, mgl64.Vec3{3, 0, 1})
	m := a.Merge(b)
	assert.Equal(t, mgl64.Vec3{-1, -2, 0}, m.Min)
	assert.Equal(t, mgl64.Vec3{3, 1, 1}, m.Max)
}

func TestAABBInflateGrowsBothSides(t *testing.T) {
	a := bv.MakeAABB(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	inflated := a.Inflate(0.5).(bv.AABB)
	assert.Equal(t, mgl64.Vec3{-0.5, -0.5, -0.5}, inflated.Min)
	assert.Equal(t, mgl64.Vec3{1.5, 1.5, 1.5}, inflated.Max)
}

func TestAABBFromPoints(t *testing.T) {
	pts := []mgl64.Vec3{{1, -1, 0}, {-2, 3, 5}, {0, 0, -4}}
	box := bv.FromPoints(pts)
	assert.Equal(t, mgl64.Vec3{-2, -1, -4}, box.Min)
	assert.Equal(t, mgl64.Vec3{1, 3, 5}, box.Max)
}

func TestTransformInverseRoundTrips(t *testing.T) {
	tf := bv.Transform{Rotation: mgl64.QuatRotate(0.7, mgl64.Vec3{0, 1, 0}), Translation: mgl64.Vec3{1, 2, 3}}
	p := mgl64.Vec3{4, -1, 2}
	roundTripped := tf.Inverse().Apply(tf.Apply(p))
	assert.InDelta(t, p[0], roundTripped[0], 1e-9)
	assert.InDelta(t, p[1], roundTripped[1], 1e-9)
	assert.InDelta(t, p[2], roundTripped[2], 1e-9)
}
