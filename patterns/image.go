// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patterns

import (
	"image"
	"image/color"

	"github.com/emer/etable/etensor"
	"github.com/emer/vision/vfilter"
)

// MaxValue is the value of an "on" cell in binarized patterns
const MaxValue = 1

// FromImage converts the image to a grey-level pattern with row 0 at the
// top of the image. If binarize is true, every cell with a grey level above
// thr is set to MaxValue and all others to 0.
func FromImage(img image.Image, binarize bool, thr float32) *etensor.Float32 {
	pat := &etensor.Float32{}
	vfilter.RGBToGrey(img, pat, 0, true) // top zero = image row order
	if binarize {
		for i, v := range pat.Values {
			if v > thr {
				pat.Values[i] = MaxValue
			} else {
				pat.Values[i] = 0
			}
		}
	}
	return pat
}

// ToImage renders the pattern as a grey image, normalizing values so that
// the pattern maximum maps to white. Negative values are clipped to black.
func ToImage(pat *etensor.Float32) *image.Gray {
	sz := Size(pat)
	img := image.NewGray(image.Rectangle{Max: sz})
	_, mx, _, _ := pat.Range()
	if mx <= 0 {
		return img
	}
	nc := sz.X
	for y := 0; y < sz.Y; y++ {
		for x := 0; x < sz.X; x++ {
			v := float64(pat.Values[y*nc+x])
			if v <= 0 {
				continue
			}
			img.SetGray(x, y, color.Gray{Y: uint8(255 * v / mx)})
		}
	}
	return img
}
