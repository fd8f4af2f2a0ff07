package motion_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/jiapei100/fcl/motion"
)

func TestScrewMotionIntegratePureTranslation(t *testing.T) {
	m := motion.NewScrewMotion(motion.Identity(), mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 0, 1}, 0)
	m.Integrate(0.5)
	tf := m.CurrentTransform()
	assert.InDelta(t, 1.0, tf.Translation[0], 1e-9)
}

func TestScrewMotionMotionBoundShrinksAsTimeAdvances(t *testing.T) {
	m := motion.NewScrewMotion(motion.Identity(), mgl64.Vec3{4, 0, 0}, mgl64.Vec3{0, 0, 1}, 0)
	boundAtStart := m.MotionBound(mgl64.Vec3{0, 0, 0}, 1, mgl64.Vec3{1, 0, 0})
	m.Integrate(0.5)
	boundAtHalf := m.MotionBound(mgl64.Vec3{0, 0, 0}, 1, mgl64.Vec3{1, 0, 0})
	assert.Greater(t, boundAtStart, boundAtHalf)
	m.Integrate(1)
	assert.Equal(t, 0.0, m.MotionBound(mgl64.Vec3{0, 0, 0}, 1, mgl64.Vec3{1, 0, 0}))
}

func TestScrewMotionRotation(t *testing.T) {
	m := motion.NewScrewMotion(motion.Identity(), mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.DegToRad(90))
	m.Integrate(1)
	tf := m.CurrentTransform()
	rotated := tf.Apply(mgl64.Vec3{1, 0, 0})
	assert.InDelta(t, 0.0, rotated[0], 1e-9)
	assert.InDelta(t, 1.0, rotated[1], 1e-9)
}

func TestInterpolatedMotionLerpsTranslation(t *testing.T) {
	m := motion.NewInterpolatedMotion(motion.FromTranslation(mgl64.Vec3{0, 0, 0}), motion.FromTranslation(mgl64.Vec3{10, 0, 0}))
	m.Integrate(0.3)
	tf := m.CurrentTransform()
	assert.InDelta(t, 3.0, tf.Translation[0], 1e-9)
}

func TestInterpolatedMotionMotionBoundAtT1IsZero(t *testing.T) {
	m := motion.NewInterpolatedMotion(motion.FromTranslation(mgl64.Vec3{0, 0, 0}), motion.FromTranslation(mgl64.Vec3{10, 0, 0}))
	m.Integrate(1)
	assert.Equal(t, 0.0, m.MotionBound(mgl64.Vec3{0, 0, 0}, 1, mgl64.Vec3{1, 0, 0}))
}

func TestScrewMotionBoundGrowsWithCenterDistanceFromAxis(t *testing.T) {
	m := motion.NewScrewMotion(motion.Identity(), mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.DegToRad(90))
	atOrigin := m.MotionBound(mgl64.Vec3{0, 0, 0}, 1, mgl64.Vec3{1, 0, 0})
	offAxis := m.MotionBound(mgl64.Vec3{5, 0, 0}, 1, mgl64.Vec3{1, 0, 0})
	assert.Greater(t, offAxis, atOrigin)
	// effective radius is 1 (own radius) + 5 (perpendicular distance to
	// the z axis) = 6, times the full remaining angular budget (pi/2).
	assert.InDelta(t, 6*mgl64.DegToRad(90), offAxis, 1e-9)
}

func TestInterpolatedMotionBoundGrowsWithCenterDistanceFromOrigin(t *testing.T) {
	m := motion.NewInterpolatedMotion(
		motion.FromAxisAngle(mgl64.Vec3{0, 0, 1}, 0),
		motion.FromAxisAngle(mgl64.Vec3{0, 0, 1}, mgl64.DegToRad(90)),
	)
	atOrigin := m.MotionBound(mgl64.Vec3{0, 0, 0}, 1, mgl64.Vec3{1, 0, 0})
	offOrigin := m.MotionBound(mgl64.Vec3{5, 0, 0}, 1, mgl64.Vec3{1, 0, 0})
	assert.Greater(t, offOrigin, atOrigin)
}

func TestFromAxisAngleRotatesAsExpected(t *testing.T) {
	tf := motion.FromAxisAngle(mgl64.Vec3{0, 0, 1}, mgl64.DegToRad(180))
	rotated := tf.Apply(mgl64.Vec3{1, 0, 0})
	assert.InDelta(t, -1.0, rotated[0], 1e-9)
	assert.InDelta(t, 0.0, rotated[1], 1e-9)
}
