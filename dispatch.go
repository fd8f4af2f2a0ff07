package fcl

import "github.com/jiapei100/fcl/geom"

// dispatchKey is the (object_type-collapsed) pair the dispatcher keys on:
// since only two object-type families reach this table (a primitive
// NodeType or a BVH NodeType), the NodeType pair alone is enough to pick
// a handler.
type dispatchKey struct {
	a, b geom.NodeType
}

// handler runs one ContinuousCollide query for objects whose NodeType
// pair matches the key it was registered under.
type handler func(oa, ob *Object, req Request) (Result, error)

var dispatcher = newDispatcher()

// newDispatcher builds the C7 dispatch table once, mirroring
// original_source's ConservativeAdvancementFunctionMatrix<NarrowPhaseSolver>
// constructor: a one-time nested-assignment fill of a 2-D table keyed on
// node type, rather than a per-call type switch.
func newDispatcher() map[dispatchKey]handler {
	d := make(map[dispatchKey]handler)

	register := func(a, b geom.NodeType, h handler) {
		d[dispatchKey{a, b}] = h
		if a != b {
			d[dispatchKey{b, a}] = func(oa, ob *Object, req Request) (Result, error) {
				r, err := h(ob, oa, req)
				if err != nil {
					return Result{}, err
				}
				return flipResult(r), nil
			}
		}
	}

	shapeShape := func(oa, ob *Object, req Request) (Result, error) {
		return runAdvance(newShapeTravNode(oa, ob, req), req)
	}
	meshShape := func(oa, ob *Object, req Request) (Result, error) {
		return runAdvance(newMeshShapeTravNode(oa, ob, req), req)
	}
	meshMesh := func(oa, ob *Object, req Request) (Result, error) {
		return runAdvance(newMeshMeshTravNode(oa, ob, req), req)
	}

	primitiveTypes := []geom.NodeType{
		geom.NodeTypes.GeomSphere,
		geom.NodeTypes.GeomBox,
		geom.NodeTypes.GeomCapsule,
		geom.NodeTypes.GeomPlane,
		geom.NodeTypes.GeomHalfspace,
		geom.NodeTypes.GeomTriangle,
	}
	for i, ta := range primitiveTypes {
		for _, tb := range primitiveTypes[i:] {
			register(ta, tb, shapeShape)
		}
	}

	bvTypes := []geom.NodeType{geom.NodeTypes.BVAABB, geom.NodeTypes.BVOBB}
	for _, bvt := range bvTypes {
		for _, st := range primitiveTypes {
			register(bvt, st, meshShape)
		}
	}

	// Deliberately no mixed BVAABB/BVOBB entry: the two kinds need
	// different traversal strategies (world-frame leaf refresh versus a
	// per-iteration relative transform) and mixing them isn't meaningful
	// for one mesh's own internal tree anyway.
	register(geom.NodeTypes.BVAABB, geom.NodeTypes.BVAABB, meshMesh)
	register(geom.NodeTypes.BVOBB, geom.NodeTypes.BVOBB, meshMesh)

	return d
}

func flipResult(r Result) Result {
	return Result{
		IsCollide:     r.IsCollide,
		TimeOfContact: r.TimeOfContact,
		Distance:      r.Distance,
		WitnessA:      r.WitnessB,
		WitnessB:      r.WitnessA,
		Normal:        r.Normal.Mul(-1),
		Iterations:    r.Iterations,
	}
}
