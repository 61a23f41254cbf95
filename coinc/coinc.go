// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package coinc provides the coincidence store used by spatial nodes: an
insertion-ordered dictionary from learned input patterns to their
occurrence frequency.

Keys are value-distinct patterns, all of the same shape. Enumeration order
is insertion order, which determines the layout of a node's inference
output and the first-match rule used when learning.
*/
package coinc

import (
	"github.com/emer/etable/etensor"
	"github.com/emer/htm/patterns"
	"github.com/goki/kigen/ordmap"
)

// Coincidence is a learned input pattern and the number of times it
// (or a pattern close to it) has been seen.
type Coincidence struct {

	// the learned pattern -- never modified after insertion
	Pattern *etensor.Float32

	// occurrence frequency
	Freq float32
}

// Store is an insertion-ordered set of coincidences keyed by exact pattern value
type Store struct {
	Coincs *ordmap.Map[string, *Coincidence]
}

// New returns a new empty Store
func New() *Store {
	st := &Store{}
	st.Init()
	return st
}

// Init resets the store to empty
func (st *Store) Init() {
	st.Coincs = ordmap.New[string, *Coincidence]()
}

// Len returns the number of coincidences
func (st *Store) Len() int {
	return st.Coincs.Len()
}

// At returns the coincidence at given index in insertion order
func (st *Store) At(idx int) *Coincidence {
	return st.Coincs.Order[idx].Val
}

// Shape returns the shape of stored patterns as rows, cols,
// and false if the store is empty.
func (st *Store) Shape() (rows, cols int, ok bool) {
	if st.Len() == 0 {
		return 0, 0, false
	}
	pat := st.At(0).Pattern
	return patterns.Rows(pat), patterns.Cols(pat), true
}

// FindExact returns the index of the coincidence identical to pat, or -1
func (st *Store) FindExact(pat *etensor.Float32) int {
	idx, ok := st.Coincs.IdxByKey(patterns.Key(pat))
	if !ok {
		return -1
	}
	return idx
}

// FindNear returns the index of the coincidence matching pat: an exact
// match if one exists, else the first coincidence in insertion order
// whose squared distance to pat is <= maxSqDist. If maxSqDist <= 0 only
// exact matches count. Returns -1 if there is no match.
// pat must have the same shape as stored patterns.
func (st *Store) FindNear(pat *etensor.Float32, maxSqDist float32) int {
	if idx := st.FindExact(pat); idx >= 0 {
		return idx
	}
	if maxSqDist <= 0 {
		return -1
	}
	for i, kv := range st.Coincs.Order {
		if patterns.SqDist(pat, kv.Val.Pattern) <= maxSqDist {
			return i
		}
	}
	return -1
}

// Add inserts a copy of pat with given frequency, returning its index.
// pat must not already be present.
func (st *Store) Add(pat *etensor.Float32, freq float32) int {
	st.Coincs.Add(patterns.Key(pat), &Coincidence{Pattern: patterns.Clone(pat), Freq: freq})
	return st.Len() - 1
}

// Incr adds delta to the frequency of the coincidence at given index
func (st *Store) Incr(idx int, delta float32) {
	st.At(idx).Freq += delta
}

// TotalFreq returns the sum of all frequencies
func (st *Store) TotalFreq() float32 {
	sum := float32(0)
	for _, kv := range st.Coincs.Order {
		sum += kv.Val.Freq
	}
	return sum
}

// Clone returns a deep copy of the store: patterns and frequencies are
// copied, so the two stores evolve independently.
func (st *Store) Clone() *Store {
	cp := New()
	for _, kv := range st.Coincs.Order {
		cp.Coincs.Add(kv.Key, &Coincidence{Pattern: patterns.Clone(kv.Val.Pattern), Freq: kv.Val.Freq})
	}
	return cp
}

// MemBytes returns an estimate of the memory used by stored patterns and keys
func (st *Store) MemBytes() int {
	n := 0
	for _, kv := range st.Coincs.Order {
		n += len(kv.Key) + 4*len(kv.Val.Pattern.Values) + 4
	}
	return n
}
