package fcl

import (
	"github.com/jiapei100/fcl/geom"
	"github.com/jiapei100/fcl/motion"
)

// Object pairs a static geometry with the motion that carries it through
// the query's time interval. It is the unit ContinuousCollide operates
// on: one Object per side of the pair.
type Object struct {
	Geometry geom.CollisionGeometry
	Motion   motion.Motion
}

func NewObject(g geom.CollisionGeometry, m motion.Motion) *Object {
	return &Object{Geometry: g, Motion: m}
}
