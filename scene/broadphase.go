// Package scene is the ambient broad phase wired up for the demo CLI: a
// dynamic AABB tree over whole-body fat bounds, used to shortlist
// candidate pairs before spending a ContinuousCollide call on each one.
// It is not exercised by the core C1-C7 algorithm itself, which takes an
// already-chosen pair of Objects.
//
// Adapted from the teacher's B2DynamicTree (CollisionB2DynamicTree.go):
// same node-pool-with-free-list shape and the same descend-with-an-
// explicit-stack Query loop, generalized from 2D AABBs to 3D and from a
// single proxy id to a generic payload. Unlike the teacher, this tree
// does not rebalance via rotations after insertion/removal: proxies in
// this demo are inserted once per body at scene-build time rather than
// continuously reinserted as bodies move, so tree quality degradation
// from skipping rotations is not a concern here.
package scene

import (
	"github.com/jiapei100/fcl/bv"
	"github.com/jiapei100/fcl/internal/stack"
)

const nullNode = -1

// fatten is the margin added around every leaf's AABB so that small body
// motions don't immediately require a tree update, mirroring the
// teacher's b2_aabbExtension constant.
const fatten = 0.1

type treeNode struct {
	Aabb     bv.AABB
	UserData interface{}

	Parent int
	Next   int

	Child1 int
	Child2 int

	Height int
}

func (n treeNode) isLeaf() bool { return n.Child1 == nullNode }

// DynamicTree is a broad-phase index over bv.AABB-bounded payloads.
type DynamicTree struct {
	root int

	nodes        []treeNode
	nodeCount    int
	nodeCapacity int

	freeList int
}

// NewDynamicTree returns an empty tree.
func NewDynamicTree() *DynamicTree {
	t := &DynamicTree{root: nullNode, nodeCapacity: 16}
	t.nodes = make([]treeNode, t.nodeCapacity)
	for i := 0; i < t.nodeCapacity-1; i++ {
		t.nodes[i].Next = i + 1
		t.nodes[i].Height = -1
	}
	t.nodes[t.nodeCapacity-1].Next = nullNode
	t.nodes[t.nodeCapacity-1].Height = -1
	t.freeList = 0
	return t
}

func (t *DynamicTree) allocateNode() int {
	if t.freeList == nullNode {
		old := t.nodeCapacity
		t.nodes = append(t.nodes, make([]treeNode, old)...)
		t.nodeCapacity *= 2
		for i := old; i < t.nodeCapacity-1; i++ {
			t.nodes[i].Next = i + 1
			t.nodes[i].Height = -1
		}
		t.nodes[t.nodeCapacity-1].Next = nullNode
		t.nodes[t.nodeCapacity-1].Height = -1
		t.freeList = old
	}
	id := t.freeList
	t.freeList = t.nodes[id].Next
	t.nodes[id] = treeNode{Parent: nullNode, Child1: nullNode, Child2: nullNode, Height: 0}
	t.nodeCount++
	return id
}

func (t *DynamicTree) freeNode(id int) {
	t.nodes[id].Next = t.freeList
	t.nodes[id].Height = -1
	t.freeList = id
	t.nodeCount--
}

// CreateProxy inserts a new leaf bounded by aabb (inflated by the fatten
// margin) carrying userData, and returns its id.
func (t *DynamicTree) CreateProxy(aabb bv.AABB, userData interface{}) int {
	id := t.allocateNode()
	t.nodes[id].Aabb = aabb.Inflate(fatten).(bv.AABB)
	t.nodes[id].UserData = userData
	t.nodes[id].Height = 0
	t.insertLeaf(id)
	return id
}

// DestroyProxy removes a previously created proxy.
func (t *DynamicTree) DestroyProxy(id int) {
	t.removeLeaf(id)
	t.freeNode(id)
}

// GetUserData returns the payload stored under id.
func (t *DynamicTree) GetUserData(id int) interface{} { return t.nodes[id].UserData }

// GetFatAABB returns the inflated bound stored under id.
func (t *DynamicTree) GetFatAABB(id int) bv.AABB { return t.nodes[id].Aabb }

func (t *DynamicTree) insertLeaf(leaf int) {
	if t.root == nullNode {
		t.root = leaf
		t.nodes[leaf].Parent = nullNode
		return
	}

	leafAABB := t.nodes[leaf].Aabb
	index := t.root
	for !t.nodes[index].isLeaf() {
		child1 := t.nodes[index].Child1
		child2 := t.nodes[index].Child2

		cost1 := t.nodes[child1].Aabb.Merge(leafAABB).HalfExtents()
		cost2 := t.nodes[child2].Aabb.Merge(leafAABB).HalfExtents()
		vol1 := cost1[0]*cost1[1] + cost1[1]*cost1[2] + cost1[2]*cost1[0]
		vol2 := cost2[0]*cost2[1] + cost2[1]*cost2[2] + cost2[2]*cost2[0]
		if vol1 < vol2 {
			index = child1
		} else {
			index = child2
		}
	}

	sibling := index
	oldParent := t.nodes[sibling].Parent
	newParent := t.allocateNode()
	t.nodes[newParent].Parent = oldParent
	t.nodes[newParent].Aabb = t.nodes[sibling].Aabb.Merge(leafAABB)
	t.nodes[newParent].Height = t.nodes[sibling].Height + 1

	if oldParent != nullNode {
		if t.nodes[oldParent].Child1 == sibling {
			t.nodes[oldParent].Child1 = newParent
		} else {
			t.nodes[oldParent].Child2 = newParent
		}
		t.nodes[newParent].Child1 = sibling
		t.nodes[newParent].Child2 = leaf
		t.nodes[sibling].Parent = newParent
		t.nodes[leaf].Parent = newParent
	} else {
		t.nodes[newParent].Child1 = sibling
		t.nodes[newParent].Child2 = leaf
		t.nodes[sibling].Parent = newParent
		t.nodes[leaf].Parent = newParent
		t.root = newParent
	}

	index = t.nodes[leaf].Parent
	for index != nullNode {
		child1 := t.nodes[index].Child1
		child2 := t.nodes[index].Child2
		t.nodes[index].Aabb = t.nodes[child1].Aabb.Merge(t.nodes[child2].Aabb)
		h1, h2 := t.nodes[child1].Height, t.nodes[child2].Height
		if h1 > h2 {
			t.nodes[index].Height = 1 + h1
		} else {
			t.nodes[index].Height = 1 + h2
		}
		index = t.nodes[index].Parent
	}
}

func (t *DynamicTree) removeLeaf(leaf int) {
	if leaf == t.root {
		t.root = nullNode
		return
	}

	parent := t.nodes[leaf].Parent
	grandParent := t.nodes[parent].Parent
	var sibling int
	if t.nodes[parent].Child1 == leaf {
		sibling = t.nodes[parent].Child2
	} else {
		sibling = t.nodes[parent].Child1
	}

	if grandParent != nullNode {
		if t.nodes[grandParent].Child1 == parent {
			t.nodes[grandParent].Child1 = sibling
		} else {
			t.nodes[grandParent].Child2 = sibling
		}
		t.nodes[sibling].Parent = grandParent
		t.freeNode(parent)

		index := grandParent
		for index != nullNode {
			child1 := t.nodes[index].Child1
			child2 := t.nodes[index].Child2
			t.nodes[index].Aabb = t.nodes[child1].Aabb.Merge(t.nodes[child2].Aabb)
			h1, h2 := t.nodes[child1].Height, t.nodes[child2].Height
			if h1 > h2 {
				t.nodes[index].Height = 1 + h1
			} else {
				t.nodes[index].Height = 1 + h2
			}
			index = t.nodes[index].Parent
		}
	} else {
		t.root = sibling
		t.nodes[sibling].Parent = nullNode
		t.freeNode(parent)
	}
}

// QueryCallback is invoked once per leaf whose fat AABB overlaps the
// query AABB; returning false stops the query early.
type QueryCallback func(id int) bool

// Query descends the tree with an explicit stack (fcl/internal/stack),
// exactly the shape of the teacher's B2DynamicTree.Query.
func (t *DynamicTree) Query(aabb bv.AABB, cb QueryCallback) {
	if t.root == nullNode {
		return
	}
	s := stack.New()
	s.Push(t.root)

	for s.Len() > 0 {
		id, _ := s.Pop()
		node := t.nodes[id]
		if !node.Aabb.Overlap(aabb, bv.Identity()) {
			continue
		}
		if node.isLeaf() {
			if !cb(id) {
				return
			}
			continue
		}
		s.Push(node.Child1)
		s.Push(node.Child2)
	}
}
