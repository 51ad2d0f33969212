// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2016-2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treap

const (
	// staticDepth is the size of the static array to use for keeping track
	// of the parent stack during treap iteration.  Since a treap has a very
	// high probability that the tree height is logarithmic, it is
	// exceedingly unlikely that the parent stack will ever exceed this size
	// even for extremely large numbers of items.
	staticDepth = 128
)

// treapNode represents a node in the treap.
type treapNode struct {
	key      int64
	priority uint32
	size     int // Count of items within this subtree - the node itself counts as 1.
	left     *treapNode
	right    *treapNode
}

// newTreapNode returns a new node from the given key and priority.  The node is
// not initially linked to any others.
func newTreapNode(key int64, priority uint32) *treapNode {
	return &treapNode{key: key, priority: priority, size: 1}
}

// cloneTreapNode returns a shallow copy of the passed node.
func cloneTreapNode(node *treapNode) *treapNode {
	return &treapNode{
		key:      node.key,
		priority: node.priority,
		size:     node.size,
		left:     node.left,
		right:    node.right,
	}
}

// subtreeSize returns the number of nodes in the subtree rooted at the passed
// node, and zero for an empty tree.
func subtreeSize(node *treapNode) int {
	if node == nil {
		return 0
	}
	return node.size
}

// leftSize returns the size of the subtree on the left-hand side, and zero if
// there is no tree present there.
func (t *treapNode) leftSize() int {
	return subtreeSize(t.left)
}

// rightSize returns the size of the subtree on the right-hand side, and zero if
// there is no tree present there.
func (t *treapNode) rightSize() int {
	return subtreeSize(t.right)
}

// updateSize recomputes the size of the node from its children.  It must be
// called whenever either child pointer of the node changes.
func (t *treapNode) updateSize() {
	t.size = 1 + t.leftSize() + t.rightSize()
}

// selectDescending returns the node holding the rank-th largest key of the
// subtree rooted at root, where rank 1 is the largest key.  It returns nil when
// the rank is outside of [1, size].
func selectDescending(root *treapNode, rank int) *treapNode {
	if rank < 1 || rank > subtreeSize(root) {
		return nil
	}

	node := root
	for node != nil {
		// rightRank is the rank the node itself would have when only
		// its right subtree holds larger keys.
		rightRank := node.rightSize() + 1
		switch {
		case rank < rightRank:
			node = node.right
		case rank == rightRank:
			return node
		default:
			rank -= rightRank
			node = node.left
		}
	}

	// Unreachable while the size invariant holds.
	return nil
}

// find returns the node holding the passed key or nil when it does not exist.
func find(root *treapNode, key int64) *treapNode {
	for node := root; node != nil; {
		switch {
		case key < node.key:
			node = node.left
		case key > node.key:
			node = node.right
		default:
			return node
		}
	}
	return nil
}

// forEach invokes the passed function with every key in the subtree rooted at
// root in ascending order until fn returns false.
func forEach(root *treapNode, fn func(key int64) bool) {
	// Add the root node and all children to the left of it to the list of
	// nodes to traverse and loop until they, and all of their child nodes,
	// have been traversed.
	var parents parentStack
	for node := root; node != nil; node = node.left {
		parents.Push(node)
	}
	for parents.Len() > 0 {
		node := parents.Pop()
		if !fn(node.key) {
			return
		}

		// Extend the nodes to traverse by all children to the left of
		// the current node's right child.
		for node := node.right; node != nil; node = node.left {
			parents.Push(node)
		}
	}
}

// forEachDescending is the mirror of forEach and visits keys from the largest
// to the smallest.
func forEachDescending(root *treapNode, fn func(key int64) bool) {
	var parents parentStack
	for node := root; node != nil; node = node.right {
		parents.Push(node)
	}
	for parents.Len() > 0 {
		node := parents.Pop()
		if !fn(node.key) {
			return
		}

		for node := node.left; node != nil; node = node.right {
			parents.Push(node)
		}
	}
}

// parentStack represents a stack of parent treap nodes that are used during
// iteration and while walking back up a search path.  It consists of a static
// array for holding the parents and a dynamic overflow slice.  It is extremely
// unlikely the overflow will ever be hit during normal operation, however,
// since a treap's height is probabilistic, the overflow case needs to be
// handled properly.  This approach is used because it is much more efficient
// for the majority case than dynamically allocating heap space every time the
// treap is iterated.
type parentStack struct {
	index    int
	items    [staticDepth]*treapNode
	overflow []*treapNode
}

// Len returns the current number of items in the stack.
func (s *parentStack) Len() int {
	return s.index
}

// At returns the item n number of items from the top of the stack, where 0 is
// the topmost item, without removing it.  It returns nil if n exceeds the
// number of items on the stack.
func (s *parentStack) At(n int) *treapNode {
	index := s.index - n - 1
	if index < 0 {
		return nil
	}

	if index < staticDepth {
		return s.items[index]
	}

	return s.overflow[index-staticDepth]
}

// Pop removes the top item from the stack.  It returns nil if the stack is
// empty.
func (s *parentStack) Pop() *treapNode {
	if s.index == 0 {
		return nil
	}

	s.index--
	if s.index < staticDepth {
		node := s.items[s.index]
		s.items[s.index] = nil
		return node
	}

	node := s.overflow[s.index-staticDepth]
	s.overflow[s.index-staticDepth] = nil
	return node
}

// Push pushes the passed item onto the top of the stack.
func (s *parentStack) Push(node *treapNode) {
	if s.index < staticDepth {
		s.items[s.index] = node
		s.index++
		return
	}

	// This approach is used over append because reslicing the slice to pop
	// the item causes the compiler to make unneeded allocations.  Also,
	// since the max number of items is related to the tree depth which
	// requires expontentially more items to increase, only increase the cap
	// one item at a time.
	index := s.index - staticDepth
	if index+1 > cap(s.overflow) {
		overflow := make([]*treapNode, index+1)
		copy(overflow, s.overflow)
		s.overflow = overflow
	}
	s.overflow[index] = node
	s.index++
}
