package scene

import "github.com/jiapei100/fcl/bv"

// Body is one entry registered with a Scene: an opaque handle plus the
// proxy id the broad phase indexes it under.
type Body struct {
	ID     int
	Handle interface{}
}

// Scene pairs a DynamicTree with the proxy-id-to-handle bookkeeping the
// demo CLI needs to turn broad-phase hits back into fcl.Objects.
type Scene struct {
	tree    *DynamicTree
	proxies map[int]interface{}
}

func NewScene() *Scene {
	return &Scene{tree: NewDynamicTree(), proxies: make(map[int]interface{})}
}

// Add registers handle under worldAABB and returns its proxy id.
func (s *Scene) Add(worldAABB bv.AABB, handle interface{}) int {
	id := s.tree.CreateProxy(worldAABB, handle)
	s.proxies[id] = handle
	return id
}

// Remove drops a previously added proxy.
func (s *Scene) Remove(id int) {
	s.tree.DestroyProxy(id)
	delete(s.proxies, id)
}

// CandidatePairs returns every pair of registered proxies whose fat AABBs
// overlap, each proxy id reported at most once per unordered pair.
func (s *Scene) CandidatePairs() [][2]interface{} {
	var pairs [][2]interface{}
	seen := make(map[[2]int]bool)

	for id := range s.proxies {
		aabb := s.tree.GetFatAABB(id)
		s.tree.Query(aabb, func(other int) bool {
			if other == id {
				return true
			}
			key := [2]int{id, other}
			if id > other {
				key = [2]int{other, id}
			}
			if seen[key] {
				return true
			}
			seen[key] = true
			pairs = append(pairs, [2]interface{}{s.proxies[id], s.proxies[other]})
			return true
		})
	}
	return pairs
}
