// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treap

// Mutable represents a treap data structure which is used to hold ordered,
// distinct keys using a combination of binary search tree and heap semantics.
// It is a self-organizing and randomized data structure that doesn't require
// complex operations to maintain balance.  Insert, delete, and rank selection
// are all O(log n) expected.
//
// The zero value is an empty treap ready for use.
type Mutable struct {
	root *treapNode
}

// Len returns the number of keys stored in the treap.
func (t *Mutable) Len() int {
	return subtreeSize(t.root)
}

// Has returns whether or not the passed key exists.
func (t *Mutable) Has(key int64) bool {
	return find(t.root, key) != nil
}

// Put inserts the passed key with the given priority.  Keys are unique, so an
// attempt to insert a key that already exists leaves the treap untouched,
// including the priority of the existing key, and returns false.
func (t *Mutable) Put(key int64, priority uint32) bool {
	if t.Has(key) {
		return false
	}

	// Split the treap around the key and merge the new node in between the
	// two halves.  Every key of the left half is less than the new key since
	// the key is known not to exist.
	left, right := split(t.root, key)
	t.root = merge(merge(left, newTreapNode(key, priority)), right)
	return true
}

// Delete removes the passed key if it exists and reports whether it did.
func (t *Mutable) Delete(key int64) bool {
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
		return false
	}

	// Splice the node out by replacing it with the merge of its children
	// and relink the parent, or the root when there is no parent.
	replacement := merge(node.left, node.right)
	node.left, node.right = nil, nil
	parent := parents.At(0)
	switch {
	case parent == nil:
		t.root = replacement
	case parent.left == node:
		parent.left = replacement
	default:
		parent.right = replacement
	}

	// Every ancestor on the search path lost exactly one descendant.
	for i := 0; i < parents.Len(); i++ {
		parents.At(i).size--
	}
	return true
}

// Select returns the key with the passed rank, where rank 1 is the largest key
// in the treap.  The boolean is false when rank is less than 1 or greater than
// the number of keys, in which case the returned key is meaningless.
func (t *Mutable) Select(rank int) (int64, bool) {
	node := selectDescending(t.root, rank)
	if node == nil {
		return 0, false
	}
	return node.key, true
}

// ForEach invokes the passed function with every key in the treap in ascending
// order.  Iteration stops early when fn returns false.
func (t *Mutable) ForEach(fn func(key int64) bool) {
	forEach(t.root, fn)
}

// ForEachDescending invokes the passed function with every key in the treap in
// descending order.  Iteration stops early when fn returns false.
func (t *Mutable) ForEachDescending(fn func(key int64) bool) {
	forEachDescending(t.root, fn)
}

// Reset efficiently removes all items in the treap.
func (t *Mutable) Reset() {
	t.root = nil
}

// NewMutable returns a new empty mutable treap ready for use.  See the
// documentation for the Mutable structure for more details.
func NewMutable() *Mutable {
	return &Mutable{}
}
