// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tiled

import (
	"image"
	"math"
)

// Span is a half-open [St, Ed) range of cells along one axis
type Span struct {
	St int
	Ed int
}

// Len returns the number of cells in the span
func (sp Span) Len() int {
	return sp.Ed - sp.St
}

// Spans returns the receptive field spans of k nodes along an axis of n
// cells with coverage ratio cover in [0,1].
// Each field is w = n/k + cover*(n - n/k) cells wide and field origins are
// d = (n-w)/(k-1) apart (0 if k == 1). Field i spans
// [round(i*d), round(i*d + w)), where round is round-half-to-even.
func Spans(n, k int, cover float64) []Span {
	if k < 1 {
		return nil
	}
	nf := float64(n)
	w := nf/float64(k) + cover*(nf-nf/float64(k))
	d := 0.0
	if k > 1 {
		d = (nf - w) / float64(k-1)
	}
	sps := make([]Span, k)
	for i := range sps {
		o := float64(i) * d
		sps[i] = Span{St: int(math.RoundToEven(o)), Ed: int(math.RoundToEven(o + w))}
	}
	return sps
}

// Geom is the receptive field geometry for one input size
type Geom struct {

	// input size, X = columns, Y = rows
	InSize image.Point

	// receptive field spans for each grid row
	Rows []Span

	// receptive field spans for each grid column
	Cols []Span
}

// Set computes the geometry for a grid of rows x cols nodes over an input
// of given size
func (gm *Geom) Set(inSize image.Point, rows, cols int, cover float64) {
	gm.InSize = inSize
	gm.Rows = Spans(inSize.Y, rows, cover)
	gm.Cols = Spans(inSize.X, cols, cover)
}

// RecField returns the receptive field of the node at given grid row and
// column, in input cell coordinates (X = column, Y = row)
func (gm *Geom) RecField(row, col int) image.Rectangle {
	rs := gm.Rows[row]
	cs := gm.Cols[col]
	return image.Rect(cs.St, rs.St, cs.Ed, rs.Ed)
}
