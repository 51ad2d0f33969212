// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2016-2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package treap implements an order-statistic treap holding distinct int64 keys
using a combination of binary search tree and heap semantics.  It is a
self-organizing and randomized data structure that doesn't require complex
operations to maintain balance.  Insert, delete, and rank selection are all
O(log n) expected.

Every node records the size of the subtree it roots, which allows Select to
find the key at a given rank, counted from the largest key, by a single walk
from the root.  All mutations are expressed in terms of two primitives: split,
which partitions a tree around a pivot key, and merge, which joins two trees
whose key ranges do not overlap.

Priorities are not drawn inside this package.  Callers supply the priority for
every inserted key, typically from one of the sources in the priority package,
which keeps the shape of a treap fully reproducible from its inputs.

Both mutable and immutable variants are provided.

The mutable variant is typically faster since it is able to simply relink the
existing nodes when modifications are made.  However, a mutable treap is not
safe for concurrent access without careful use of locking by the caller and
care must be taken when iterating since it can change out from under the
iterator.

The immutable variant works by creating a new version of the treap for all
mutations by replacing modified nodes with new nodes that have updated sizes
while sharing all unmodified nodes with the previous version.  Readers holding
an older version keep a consistent snapshot for as long as they reference it.
*/
package treap
