// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filters

import (
	"image"
	"sync"

	"github.com/emer/etable/etensor"
	"github.com/emer/htm/patterns"
	"github.com/emer/vision/gabor"
	"github.com/emer/vision/vfilter"
)

// Gabor convolves patterns with a bank of gabor filters at several
// angles, and returns for each output position the maximum response over
// angles and polarities. The output is smaller than the input by the
// filter spacing.
type Gabor struct {
	Gabor gabor.Filter    `desc:"gabor filter parameters"`
	Geom  vfilter.Geom    `inactive:"+" view:"inline" desc:"geometry of input, output for gabor filtering"`
	Tsr   etensor.Float32 `view:"no-inline" desc:"gabor filter coefficients -- computed on first use"`

	once sync.Once
}

// NewGabor returns a gabor filter of given size and spacing, in cells
func NewGabor(sz, spc int) *Gabor {
	gf := &Gabor{}
	gf.Gabor.Defaults()
	gf.Gabor.SetSize(sz, spc)
	// border 0: Geom sets it to half the filter size
	gf.Geom.Set(image.Point{0, 0}, image.Point{spc, spc}, image.Point{sz, sz})
	return gf
}

// Coeffs returns the filter coefficients, computing them on first use
func (gf *Gabor) Coeffs() *etensor.Float32 {
	gf.once.Do(func() {
		gf.Gabor.ToTensor(&gf.Tsr)
	})
	return &gf.Tsr
}

func (gf *Gabor) Filter(pat *etensor.Float32) *etensor.Float32 {
	flt := gf.Coeffs()
	pad := gf.Geom.FiltRt.X
	sz := patterns.Size(pat)
	gf.Geom.SetSize(sz.Add(gf.Geom.Border.Mul(2)))

	img := patterns.New(sz.Y+2*pad, sz.X+2*pad)
	nc := img.Dim(1)
	for y := 0; y < sz.Y; y++ {
		copy(img.Values[(y+pad)*nc+pad:(y+pad)*nc+pad+sz.X], pat.Values[y*sz.X:(y+1)*sz.X])
	}

	var conv etensor.Float32
	vfilter.Conv(&gf.Geom, flt, img, &conv, gf.Gabor.Gain)

	ny := conv.Dim(0)
	nx := conv.Dim(1)
	nf := len(conv.Values) / (ny * nx)
	out := patterns.New(ny, nx)
	for i := range out.Values {
		mx := float32(0)
		for _, v := range conv.Values[i*nf : (i+1)*nf] {
			if v > mx {
				mx = v
			}
		}
		out.Values[i] = mx
	}
	return out
}
