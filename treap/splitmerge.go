// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treap

// split partitions the tree rooted at root into two trees.  The first holds
// every key less than or equal to pivot and the second every key greater than
// pivot.  Both results satisfy the treap invariants.
//
// The passed tree is consumed: its nodes are relinked into the two results, so
// callers must not use root afterwards.
func split(root *treapNode, pivot int64) (*treapNode, *treapNode) {
	if root == nil {
		return nil, nil
	}

	// The root belongs on the left side, so only its right subtree can
	// contain keys that belong on the right side.
	if root.key <= pivot {
		keep, right := split(root.right, pivot)
		root.right = keep
		root.updateSize()
		return root, right
	}

	left, keep := split(root.left, pivot)
	root.left = keep
	root.updateSize()
	return left, root
}

// merge joins two trees into one.  Every key of left must be less than every
// key of right.  This is not checked and violating it silently breaks the
// ordering of the resulting tree.
//
// The root with the higher priority becomes the root of the result.  Equal
// priorities favor the left tree.  Both passed trees are consumed.
func merge(left, right *treapNode) *treapNode {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}

	if left.priority >= right.priority {
		left.right = merge(left.right, right)
		left.updateSize()
		return left
	}

	right.left = merge(left, right.left)
	right.updateSize()
	return right
}

// splitCopy is the persistent form of split.  Every node it would relink is
// replaced by a copy, so the passed tree remains valid and unchanged.  Subtrees
// that are not on the split path are shared between the input and the results.
func splitCopy(root *treapNode, pivot int64) (*treapNode, *treapNode) {
	if root == nil {
		return nil, nil
	}

	nodeCopy := cloneTreapNode(root)
	if root.key <= pivot {
		keep, right := splitCopy(root.right, pivot)
		nodeCopy.right = keep
		nodeCopy.updateSize()
		return nodeCopy, right
	}

	left, keep := splitCopy(root.left, pivot)
	nodeCopy.left = keep
	nodeCopy.updateSize()
	return left, nodeCopy
}

// mergeCopy is the persistent form of merge.  It uses the same tie-breaking
// rule, but copies every node whose children change instead of modifying it.
func mergeCopy(left, right *treapNode) *treapNode {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}

	if left.priority >= right.priority {
		nodeCopy := cloneTreapNode(left)
		nodeCopy.right = mergeCopy(left.right, right)
		nodeCopy.updateSize()
		return nodeCopy
	}

	nodeCopy := cloneTreapNode(right)
	nodeCopy.left = mergeCopy(left, right.left)
	nodeCopy.updateSize()
	return nodeCopy
}
