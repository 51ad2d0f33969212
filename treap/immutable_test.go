// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2016-2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treap

import (
	"math/rand"
	"reflect"
	"testing"
)

// TestImmutableEmpty ensures calling functions on an empty immutable treap
// works as expected.
func TestImmutableEmpty(t *testing.T) {
	t.Parallel()

	testTreap := NewImmutable()
	if gotLen := testTreap.Len(); gotLen != 0 {
		t.Fatalf("Len: unexpected length - got %d, want %d", gotLen, 0)
	}
	if testTreap.Has(0) {
		t.Fatal("Has: unexpected result - got true, want false")
	}
	if key, ok := testTreap.Select(1); ok {
		t.Fatalf("Select(1): unexpected key %d", key)
	}

	// Deleting from an empty treap hands back the same version.
	if got, ok := testTreap.Delete(0); ok || got != testTreap {
		t.Fatalf("Delete: unexpected result - got %p (%v), want %p",
			got, ok, testTreap)
	}
}

// TestImmutableSequential ensures that putting keys into an immutable treap in
// sequential order works as expected.
func TestImmutableSequential(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(0))
	numItems := 1000
	testTreap := NewImmutable()
	for i := 0; i < numItems; i++ {
		key := int64(i)
		var ok bool
		testTreap, ok = testTreap.Put(key, rng.Uint32())
		if !ok {
			t.Fatalf("Put #%d: key %d was rejected", i, key)
		}

		// Ensure the treap length is the expected value.
		if gotLen := testTreap.Len(); gotLen != i+1 {
			t.Fatalf("Len #%d: unexpected length - got %d, want %d",
				i, gotLen, i+1)
		}

		if gotKey, ok := testTreap.Select(1); !ok || gotKey != key {
			t.Fatalf("Select #%d: unexpected key - got %d (%v), "+
				"want %d", i, gotKey, ok, key)
		}
	}
	if err := verifyTree(testTreap.root); err != nil {
		t.Fatalf("verifyTree: %v", err)
	}

	for i := 0; i < numItems; i++ {
		key := int64(i)
		var ok bool
		testTreap, ok = testTreap.Delete(key)
		if !ok {
			t.Fatalf("Delete #%d: key %d was not found", i, key)
		}
		if gotLen := testTreap.Len(); gotLen != numItems-i-1 {
			t.Fatalf("Len #%d: unexpected length - got %d, want %d",
				i, gotLen, numItems-i-1)
		}
		if testTreap.Has(key) {
			t.Fatalf("Has #%d: key %d is in treap", i, key)
		}
	}
}

// TestImmutableSnapshot ensures that all old versions of an immutable treap
// are still valid and unchanged after later mutations.
func TestImmutableSnapshot(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(9))
	perm := rng.Perm(300)

	// Build up a list of versions, one after every mutation, along with the
	// keys each version is expected to hold.
	var versions []*Immutable
	var wantKeys [][]int64
	testTreap := NewImmutable()
	present := make(map[int64]bool)
	for i, n := range perm {
		key := int64(n)
		testTreap, _ = testTreap.Put(key, rng.Uint32())
		present[key] = true

		// Delete an earlier key every third step.
		if i%3 == 2 {
			victim := int64(perm[i/2])
			if present[victim] {
				testTreap, _ = testTreap.Delete(victim)
				delete(present, victim)
			}
		}

		versions = append(versions, testTreap)
		wantKeys = append(wantKeys, inOrderKeys(testTreap.root))
	}

	// Every version must still hold exactly the keys it held when it was
	// created and satisfy the invariants.
	for i, version := range versions {
		if err := verifyTree(version.root); err != nil {
			t.Fatalf("version #%d: %v", i, err)
		}
		got := inOrderKeys(version.root)
		if !reflect.DeepEqual(got, wantKeys[i]) {
			t.Fatalf("version #%d: keys changed - got %v, want %v",
				i, got, wantKeys[i])
		}
		if version.Len() != len(wantKeys[i]) {
			t.Fatalf("version #%d: Len - got %d, want %d", i,
				version.Len(), len(wantKeys[i]))
		}
	}
}

// TestImmutableDuplicatePut ensures inserting an existing key hands back the
// same version.
func TestImmutableDuplicatePut(t *testing.T) {
	t.Parallel()

	testTreap, _ := NewImmutable().Put(5, 10)
	got, ok := testTreap.Put(5, 20)
	if ok || got != testTreap {
		t.Fatalf("Put: duplicate key was accepted")
	}
}

// TestImmutableMatchesMutable ensures both variants produce the same tree
// shape and answers for the same sequence of operations and priorities.
func TestImmutableMatchesMutable(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(4))
	mutable := NewMutable()
	immutable := NewImmutable()
	for i := 0; i < 2000; i++ {
		key := int64(rng.Intn(300))
		if rng.Intn(3) == 0 {
			mutable.Delete(key)
			immutable, _ = immutable.Delete(key)
			continue
		}
		priority := rng.Uint32()
		mutable.Put(key, priority)
		immutable, _ = immutable.Put(key, priority)
	}

	if !reflect.DeepEqual(mutable.root, immutable.root) {
		t.Fatal("mutable and immutable treaps have different shapes")
	}
	for rank := 0; rank <= mutable.Len()+1; rank++ {
		mKey, mOK := mutable.Select(rank)
		iKey, iOK := immutable.Select(rank)
		if mKey != iKey || mOK != iOK {
			t.Fatalf("Select(%d): mutable %d (%v), immutable %d (%v)",
				rank, mKey, mOK, iKey, iOK)
		}
	}

	var descending []int64
	immutable.ForEachDescending(func(k int64) bool {
		descending = append(descending, k)
		return true
	})
	ascending := inOrderKeys(mutable.root)
	for i, key := range descending {
		if ascending[len(ascending)-1-i] != key {
			t.Fatalf("ForEachDescending #%d: got %d, want %d", i, key,
				ascending[len(ascending)-1-i])
		}
	}
}
