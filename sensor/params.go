// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sensor

import (
	"log"

	"github.com/goki/mat32"
)

// DefaultCatPattern is the default category folder pattern, which takes
// the whole folder name as the category
const DefaultCatPattern = `^(?P<cat>.*)$`

// Params are the sensor parameters, fixed for a given Sensor
type Params struct {
	Height int   `def:"0" min:"0" desc:"sensor height in pixels -- 0 = size of the first input image"`
	Width  int   `def:"0" min:"0" desc:"sensor width in pixels -- 0 = size of the first input image"`
	Seed   int64 `def:"0" desc:"random seed -- a negative seed uses the current time, and sequences are not reproducible"`

	Reps  int    `def:"1" min:"1" desc:"number of times each training category is presented"`
	Order Orders `desc:"order of presentation of training categories and files"`

	TrainXForm bool `def:"true" desc:"explore training inputs along the paths -- else each input is presented once, untransformed"`
	TestXForm  bool `def:"false" desc:"explore test inputs along the paths -- else each input is presented once, untransformed"`

	Paths      []Paths `desc:"exploration paths, run one after the other for each input"`
	MaxIters   int     `def:"100" min:"1" desc:"maximum number of iterations along each path"`
	PathSpeed  int     `def:"1" min:"0" desc:"translation in pixels per iteration"`
	RandOrigin bool    `desc:"start exploring each input at a random offset within half the sensor field -- else at offset 0. Paths continue from where the previous path ended"`

	RotMax     float32 `def:"0" min:"0" desc:"maximum rotation angle in degrees, either way -- 0 = no rotation"`
	RotSpeed   float32 `def:"0" min:"0" desc:"rotation in degrees per iteration"`
	ScaleMin   float32 `def:"1" min:"0" desc:"minimum scaling factor"`
	ScaleMax   float32 `def:"1" min:"0" desc:"maximum scaling factor"`
	ScaleSpeed float32 `def:"0" min:"0" desc:"change of scale per iteration"`

	FileMask        string `def:"*" desc:"glob pattern selecting input files within each category folder"`
	TrainCatPattern string `desc:"regular expression with a named group cat that extracts the category from a training category folder name"`
	TestCatPattern  string `desc:"regular expression with a named group cat that extracts the category from a test category folder name"`

	Binarize bool    `def:"true" desc:"binarize rendered images: cells brighter than Thr are on, the rest off"`
	Thr      float32 `def:"0" desc:"grey level threshold for Binarize"`
}

func (sp *Params) Defaults() {
	sp.Height = 0
	sp.Width = 0
	sp.Seed = 0
	sp.Reps = 1
	sp.Order = Normal
	sp.TrainXForm = true
	sp.TestXForm = false
	sp.Paths = []Paths{RandomSweep4Axes}
	sp.MaxIters = 100
	sp.PathSpeed = 1
	sp.RandOrigin = false
	sp.RotMax = 0
	sp.RotSpeed = 0
	sp.ScaleMin = 1
	sp.ScaleMax = 1
	sp.ScaleSpeed = 0
	sp.FileMask = "*"
	sp.TrainCatPattern = DefaultCatPattern
	sp.TestCatPattern = DefaultCatPattern
	sp.Binarize = true
	sp.Thr = 0
	sp.Update()
}

// Update must be called after any changes to parameters
func (sp *Params) Update() {
	if sp.Reps < 1 {
		sp.Reps = 1
	}
	if sp.MaxIters < 1 {
		sp.MaxIters = 1
	}
	if sp.PathSpeed < 0 {
		sp.PathSpeed = -sp.PathSpeed
	}
	sp.RotMax = mat32.Abs(sp.RotMax)
	sp.ScaleMin = mat32.Abs(sp.ScaleMin)
	sp.ScaleMax = mat32.Abs(sp.ScaleMax)
	if sp.ScaleMax < sp.ScaleMin {
		sp.ScaleMin, sp.ScaleMax = sp.ScaleMax, sp.ScaleMin
	}
	if sp.FileMask == "" {
		sp.FileMask = "*"
	}
	if sp.TrainCatPattern == "" {
		sp.TrainCatPattern = DefaultCatPattern
	}
	if sp.TestCatPattern == "" {
		sp.TestCatPattern = DefaultCatPattern
	}
	if len(sp.Paths) == 0 {
		log.Printf("sensor.Params: %v added since no exploration path was given\n", RandomSweep4Axes)
		sp.Paths = []Paths{RandomSweep4Axes}
	}
}
