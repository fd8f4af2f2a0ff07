// Package fcl implements continuous collision detection via conservative
// advancement: given two objects, each a geometry plus a motion over a
// [0, 1] parametric time interval, ContinuousCollide certifies either a
// time of first contact or that the two stay apart for the whole
// interval.
package fcl

// ContinuousCollide is the single entry point: it looks up the handler
// registered for the pair's (NodeType, NodeType) key and runs it. An
// unregistered pair (only a mixed AABB/OBB mesh-mesh pair, per this
// package's dispatch table) reports ErrUnsupportedPair rather than
// guessing at a traversal strategy.
func ContinuousCollide(oa, ob *Object, req Request) (Result, error) {
	key := dispatchKey{a: oa.Geometry.GetNodeType(), b: ob.Geometry.GetNodeType()}
	h, ok := dispatcher[key]
	if !ok {
		return Result{}, newError(ErrUnsupportedPair, "no handler for (%v, %v)", key.a, key.b)
	}
	return h(oa, ob, req)
}
