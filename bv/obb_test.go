package bv_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/jiapei100/fcl/bv"
)

func TestOBBDistanceLowerBoundAxisAlignedSeparated(t *testing.T) {
	a := bv.MakeOBB(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent())
	b := bv.MakeOBB(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent())
	assert.InDelta(t, 3.0, a.DistanceLowerBound(b, bv.Identity()), 1e-9)
}

func TestOBBDistanceLowerBoundOverlapping(t *testing.T) {
	a := bv.MakeOBB(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent())
	b := bv.MakeOBB(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent())
	assert.Equal(t, 0.0, a.DistanceLowerBound(b, bv.Identity()))
	assert.True(t, a.Overlap(b, bv.Identity()))
}

func TestOBBDistanceLowerBoundRespectsRelativeTransform(t *testing.T) {
	a := bv.MakeOBB(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent())
	// b sits far away in its own local frame, but relTf carries it right
	// next to a in the shared frame the query actually cares about.
	b := bv.MakeOBB(mgl64.Vec3{100, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent())
	relTf := bv.Transform{Rotation: mgl64.QuatIdent(), Translation: mgl64.Vec3{-95, 0, 0}}
	assert.InDelta(t, 3.0, a.DistanceLowerBound(b, relTf), 1e-9)
}

func TestOBBInflateGrowsHalfExtents(t *testing.T) {
	a := bv.MakeOBB(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent())
	inflated := a.Inflate(0.5).(bv.OBB)
	assert.Equal(t, mgl64.Vec3{1.5, 1.5, 1.5}, inflated.HalfExtents)
}
