// Package geom defines the runtime geometry tags and shape primitives that
// the conservative-advancement core treats as opaque inputs.
package geom

import "github.com/jiapei100/fcl/bv"

// ObjectType classifies a geometry's storage shape: a single convex
// primitive, a bounding-volume hierarchy over a mesh, or (reserved) an
// octree of voxels.
type ObjectType uint8

var ObjectTypes = struct {
	Unknown   ObjectType
	BVH       ObjectType
	Primitive ObjectType
	Octree    ObjectType
}{
	Unknown:   0,
	BVH:       1,
	Primitive: 2,
	Octree:    3,
}

// NodeType closes the second axis of the (object_type, node_type) tag pair:
// for a Primitive object it names the shape kind, for a BVH object it names
// the bounding-volume kind of its internal nodes.
type NodeType uint8

var NodeTypes = struct {
	Unknown   NodeType
	BVAABB    NodeType
	BVOBB     NodeType
	GeomBox   NodeType
	GeomSphere NodeType
	GeomCapsule NodeType
	GeomPlane NodeType
	GeomHalfspace NodeType
	GeomTriangle NodeType
}{
	Unknown:       0,
	BVAABB:        1,
	BVOBB:         2,
	GeomBox:       10,
	GeomSphere:    11,
	GeomCapsule:   12,
	GeomPlane:     13,
	GeomHalfspace: 14,
	GeomTriangle:  15,
}

// IsBV reports whether a NodeType names a bounding-volume kind (i.e. the
// geometry carrying it is a BVH) rather than a primitive shape kind.
func (n NodeType) IsBV() bool {
	return n == NodeTypes.BVAABB || n == NodeTypes.BVOBB
}

// CollisionGeometry is the protocol every object passed to the core must
// satisfy: a stable runtime tag plus a local-frame bounding box.
type CollisionGeometry interface {
	GetObjectType() ObjectType
	GetNodeType() NodeType
	ComputeLocalAABB() bv.AABB
}
