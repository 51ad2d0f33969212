// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2016-2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treap

// Immutable represents a treap data structure which is used to hold ordered,
// distinct keys using a combination of binary search tree and heap semantics.
//
// All operations which result in modifying the treap return a new version of
// the treap with only the modified nodes updated.  All unmodified nodes are
// shared with the previous version.  This is extremely useful in concurrent
// applications since the caller only has to atomically replace the treap
// pointer with the newly returned version after performing any mutations.  All
// readers can simply use their existing pointer as a snapshot since the treap
// it points to is immutable.
type Immutable struct {
	root *treapNode
}

// newImmutable returns a new immutable treap rooted at the passed node.
func newImmutable(root *treapNode) *Immutable {
	return &Immutable{root: root}
}

// Len returns the number of keys stored in the treap.
func (t *Immutable) Len() int {
	return subtreeSize(t.root)
}

// Has returns whether or not the passed key exists.
func (t *Immutable) Has(key int64) bool {
	return find(t.root, key) != nil
}

// Put returns a new version of the treap with the passed key inserted with the
// given priority, along with whether the key was inserted.  When the key
// already exists the receiver itself is returned.
func (t *Immutable) Put(key int64, priority uint32) (*Immutable, bool) {
	if t.Has(key) {
		return t, false
	}

	left, right := splitCopy(t.root, key)
	root := mergeCopy(mergeCopy(left, newTreapNode(key, priority)), right)
	return newImmutable(root), true
}

// Delete returns a new version of the treap with the passed key removed, along
// with whether the key existed.  The receiver itself is returned when the key
// does not exist.
func (t *Immutable) Delete(key int64) (*Immutable, bool) {
	// Find the node for the key while constructing a list of parents while
	// doing so.
	var parents parentStack
	node := t.root
	for node != nil && node.key != key {
		parents.Push(node)
		if key < node.key {
			node = node.left
		} else {
			node = node.right
		}
	}

	// There is nothing to do if the key does not exist.
	if node == nil {
		return t, false
	}

	// Replace the node with the merge of its children and then replace
	// every ancestor, from the deepest up to and including the root, with a
	// copy that has a corrected size and points at the replaced child.
	child := mergeCopy(node.left, node.right)
	oldChild := node
	for parents.Len() > 0 {
		parent := parents.Pop()
		parentCopy := cloneTreapNode(parent)
		if parent.left == oldChild {
			parentCopy.left = child
		} else {
			parentCopy.right = child
		}
		parentCopy.size--
		child, oldChild = parentCopy, parent
	}

	return newImmutable(child), true
}

// Select returns the key with the passed rank, where rank 1 is the largest key
// in the treap.  The boolean is false when rank is out of range.
func (t *Immutable) Select(rank int) (int64, bool) {
	node := selectDescending(t.root, rank)
	if node == nil {
		return 0, false
	}
	return node.key, true
}

// ForEach invokes the passed function with every key in the treap in ascending
// order.  Iteration stops early when fn returns false.
func (t *Immutable) ForEach(fn func(key int64) bool) {
	forEach(t.root, fn)
}

// ForEachDescending invokes the passed function with every key in the treap in
// descending order.  Iteration stops early when fn returns false.
func (t *Immutable) ForEachDescending(fn func(key int64) bool) {
	forEachDescending(t.root, fn)
}

// NewImmutable returns a new empty immutable treap ready for use.  See the
// documentation for the Immutable structure for more details.
func NewImmutable() *Immutable {
	return &Immutable{}
}
