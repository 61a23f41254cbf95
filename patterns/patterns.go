// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package patterns provides the helpers used throughout htm for 2D input
patterns, which are represented as row-major etensor.Float32 values with
shape [Y, X] (rows, columns).

A pattern with no non-zero cell is blank. Two patterns are equal when they
have the same shape and every cell matches exactly.
*/
package patterns

import (
	"encoding/binary"
	"image"
	"math"

	"github.com/emer/etable/etensor"
	"github.com/emer/etable/metric"
)

// DimNames are the dimension names used for all 2D patterns
var DimNames = []string{"Y", "X"}

// New returns a new zero pattern of given rows and columns
func New(rows, cols int) *etensor.Float32 {
	return etensor.NewFloat32([]int{rows, cols}, nil, DimNames)
}

// FromRows returns a new pattern initialized from given rows of values,
// which must all have the same length.
func FromRows(rows [][]float32) *etensor.Float32 {
	nr := len(rows)
	nc := 0
	if nr > 0 {
		nc = len(rows[0])
	}
	pat := New(nr, nc)
	for r, rw := range rows {
		copy(pat.Values[r*nc:(r+1)*nc], rw)
	}
	return pat
}

// Filled returns a new pattern with all cells set to given value
func Filled(rows, cols int, val float32) *etensor.Float32 {
	pat := New(rows, cols)
	for i := range pat.Values {
		pat.Values[i] = val
	}
	return pat
}

// Rows returns the number of rows (Y) of the pattern
func Rows(pat *etensor.Float32) int {
	return pat.Dim(0)
}

// Cols returns the number of columns (X) of the pattern
func Cols(pat *etensor.Float32) int {
	return pat.Dim(1)
}

// Size returns the pattern size as an image.Point, X = columns, Y = rows
func Size(pat *etensor.Float32) image.Point {
	return image.Point{X: Cols(pat), Y: Rows(pat)}
}

// SameShape returns true if both patterns have the same rows and columns
func SameShape(a, b *etensor.Float32) bool {
	if a.NumDims() != 2 || b.NumDims() != 2 {
		return false
	}
	return Rows(a) == Rows(b) && Cols(a) == Cols(b)
}

// IsBlank returns true if the pattern has no non-zero cell
func IsBlank(pat *etensor.Float32) bool {
	for _, v := range pat.Values {
		if v != 0 {
			return false
		}
	}
	return true
}

// NNonZero returns the number of non-zero cells in the pattern
func NNonZero(pat *etensor.Float32) int {
	n := 0
	for _, v := range pat.Values {
		if v != 0 {
			n++
		}
	}
	return n
}

// Equal returns true if both patterns have the same shape and identical values
func Equal(a, b *etensor.Float32) bool {
	if !SameShape(a, b) {
		return false
	}
	for i, v := range a.Values {
		if b.Values[i] != v {
			return false
		}
	}
	return true
}

// SqDist returns the squared distance between two same-shaped patterns:
// the sum of squared element-wise differences, i.e., the squared
// Frobenius norm of their difference.
func SqDist(a, b *etensor.Float32) float32 {
	return metric.SumSquares32(a.Values, b.Values)
}

// Clone returns a deep copy of the pattern
func Clone(pat *etensor.Float32) *etensor.Float32 {
	cp := New(Rows(pat), Cols(pat))
	copy(cp.Values, pat.Values)
	return cp
}

// Sub returns a copy of the rectangular region of the pattern given in
// cell coordinates (X = column, Y = row). The source is never modified.
func Sub(pat *etensor.Float32, rect image.Rectangle) *etensor.Float32 {
	nc := Cols(pat)
	sz := rect.Size()
	sub := New(sz.Y, sz.X)
	for y := 0; y < sz.Y; y++ {
		si := (rect.Min.Y+y)*nc + rect.Min.X
		copy(sub.Values[y*sz.X:(y+1)*sz.X], pat.Values[si:si+sz.X])
	}
	return sub
}

// Key returns a string that uniquely identifies the exact shape and
// values of the pattern, usable as a map key for exact-match lookup.
func Key(pat *etensor.Float32) string {
	nv := len(pat.Values)
	b := make([]byte, 8+4*nv)
	binary.LittleEndian.PutUint32(b[0:], uint32(Rows(pat)))
	binary.LittleEndian.PutUint32(b[4:], uint32(Cols(pat)))
	for i, v := range pat.Values {
		if v == 0 { // -0 and 0 are the same value
			v = 0
		}
		binary.LittleEndian.PutUint32(b[8+4*i:], math.Float32bits(v))
	}
	return string(b)
}
