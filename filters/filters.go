// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package filters provides sensor.Filter implementations that transform
each pattern emitted by a sensor: gabor edge filtering, thresholding,
and resizing.
*/
package filters

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/emer/etable/etensor"
	"github.com/emer/htm/patterns"
)

// Threshold sets cells above Thr to patterns.MaxValue and all others to 0
type Threshold struct {
	Thr float32 `desc:"threshold value"`
}

func (th *Threshold) Filter(pat *etensor.Float32) *etensor.Float32 {
	out := patterns.New(patterns.Rows(pat), patterns.Cols(pat))
	for i, v := range pat.Values {
		if v > th.Thr {
			out.Values[i] = patterns.MaxValue
		}
	}
	return out
}

// Resize rescales patterns to Size using linear interpolation. Values are
// normalized to [0, 1] relative to the pattern maximum.
type Resize struct {
	Size image.Point `desc:"output size, X = columns, Y = rows"`
}

func (rs *Resize) Filter(pat *etensor.Float32) *etensor.Float32 {
	if patterns.Size(pat) == rs.Size {
		return patterns.Clone(pat)
	}
	img := transform.Resize(patterns.ToImage(pat), rs.Size.X, rs.Size.Y, transform.Linear)
	return patterns.FromImage(img, false, 0)
}
