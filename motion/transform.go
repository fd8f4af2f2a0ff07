package motion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/jiapei100/fcl/bv"
)

// Identity is the no-op transform, re-exported from fcl/bv for callers
// that only import fcl/motion.
func Identity() bv.Transform { return bv.Identity() }

// FromTranslation builds a pure-translation transform.
func FromTranslation(v mgl64.Vec3) bv.Transform {
	return bv.Transform{Rotation: mgl64.QuatIdent(), Translation: v}
}

// FromAxisAngle builds a pure-rotation transform about axis (need not be
// normalized) by angle radians.
func FromAxisAngle(axis mgl64.Vec3, angle float64) bv.Transform {
	if axis.Len() > 1e-12 {
		axis = axis.Normalize()
	}
	return bv.Transform{Rotation: mgl64.QuatRotate(angle, axis)}
}
