// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sensor

import (
	"image"

	"github.com/emer/etable/etensor"
	"github.com/emer/htm/patterns"
	"github.com/goki/mat32"
)

// Exploration iterates over the patterns of one input explored along
// each path of the sensor in turn. The origin is set once per input and
// each path continues from the pose where the previous one ended, with a
// new direction, rotation and scaling. A path ends when the rendered
// pattern is blank or after MaxIters iterations.
// Without transformations, the input is rendered once at the identity pose,
// filtered, and no matrix outputs are fired.
type Exploration struct {
	Sensor  *Sensor
	In      Input
	Img     image.Image `desc:"source image"`
	XForm   bool        `desc:"explore along the paths"`
	PathIdx int         `desc:"index of the current path in Params.Paths"`
	Iter    int         `desc:"iteration within the current path"`
	Pose    Pose        `desc:"current pose"`
	Delta   Pose        `desc:"pose change per iteration"`

	pat    *etensor.Float32
	done   bool
	inPath bool
}

// Path returns the current path
func (ex *Exploration) Path() Paths {
	if ex.PathIdx < 0 || ex.PathIdx >= len(ex.Sensor.Params.Paths) {
		return PathsN
	}
	return ex.Sensor.Params.Paths[ex.PathIdx]
}

// Next advances to the next pattern, returning false at the end
func (ex *Exploration) Next() bool {
	if ex.done {
		return false
	}
	if !ex.XForm {
		ex.done = true
		ex.Pose = Identity()
		ex.pat = ex.Sensor.filter(ex.render())
		return true
	}
	sp := &ex.Sensor.Params
	for {
		if ex.inPath {
			ex.Advance()
			ex.Iter++
		} else {
			ex.PathIdx++
			if ex.PathIdx >= len(sp.Paths) {
				ex.done = true
				return false
			}
			ex.InitPath()
			ex.inPath = true
		}
		if ex.Iter >= sp.MaxIters {
			ex.inPath = false
			continue
		}
		ex.Sensor.IterCtr.Set(ex.Iter)
		pat := ex.render()
		if patterns.IsBlank(pat) {
			ex.inPath = false
			continue
		}
		ex.Sensor.fire(TransformedMatrix, nil, pat, ex.In.Cat)
		ex.emit(pat)
		return true
	}
}

// Pattern returns the current pattern
func (ex *Exploration) Pattern() *etensor.Float32 {
	return ex.pat
}

func (ex *Exploration) render() *etensor.Float32 {
	sn := ex.Sensor
	img := sn.Renderer.Render(ex.Img, ex.Pose, sn.Size())
	sn.fire(TransformedBitmap, img, nil, ex.In.Cat)
	return patterns.FromImage(img, sn.Params.Binarize, sn.Params.Thr)
}

func (ex *Exploration) emit(pat *etensor.Float32) {
	sn := ex.Sensor
	if len(sn.Filters) > 0 {
		pat = sn.filter(pat)
		sn.fire(FilteredMatrix, nil, pat, ex.In.Cat)
	}
	ex.pat = pat
}

// InitOrigin sets the position of the input before its first path: a
// random offset of at most half the field with RandOrigin, else 0.
// Each path then continues from where the previous one ended.
func (ex *Exploration) InitOrigin() {
	sp := &ex.Sensor.Params
	ex.Pose = Identity()
	if sp.RandOrigin {
		rnd := ex.Sensor.RandGen()
		ex.Pose.PosH = rnd.Intn(2*(sp.Width/2)+1) - sp.Width/2
		ex.Pose.PosV = rnd.Intn(2*(sp.Height/2)+1) - sp.Height/2
	}
}

// InitPath sets the direction, rotation and scaling at the start of a path.
// The position is kept from the previous path.
func (ex *Exploration) InitPath() {
	sn := ex.Sensor
	sp := &sn.Params
	rnd := sn.RandGen()
	ex.Iter = 0
	ex.Delta = Pose{}
	switch ex.Path() {
	case RandomSweep4Axes:
		for ex.Delta.PosH == 0 && ex.Delta.PosV == 0 {
			ex.Delta.PosH = rnd.Intn(3) - 1
			ex.Delta.PosV = rnd.Intn(3) - 1
		}
	case LeftToRightSweep:
		ex.Delta.PosH = 1
	case TopToBottomSweep:
		ex.Delta.PosV = 1
	}
	ex.Delta.PosH *= sp.PathSpeed
	ex.Delta.PosV *= sp.PathSpeed

	ex.Pose.Rot = float32(rnd.Float64())*2*sp.RotMax - sp.RotMax
	ex.Delta.Rot = sn.randSign() * sp.RotSpeed

	ex.Pose.Scale = float32(rnd.Float64())*(sp.ScaleMax-sp.ScaleMin) + sp.ScaleMin
	ex.Delta.Scale = sn.randSign() * sp.ScaleSpeed
}

// Advance moves the pose by one iteration. Rotation and scaling are left
// unchanged on an iteration that would take them out of bounds.
func (ex *Exploration) Advance() {
	sp := &ex.Sensor.Params
	ex.Pose.PosH += ex.Delta.PosH
	ex.Pose.PosV += ex.Delta.PosV
	if rot := ex.Pose.Rot + ex.Delta.Rot; mat32.Abs(rot) <= sp.RotMax {
		ex.Pose.Rot = rot
	}
	if sc := ex.Pose.Scale + ex.Delta.Scale; sc >= sp.ScaleMin && sc <= sp.ScaleMax {
		ex.Pose.Scale = sc
	}
}

// Stream iterates over the patterns of all inputs, exploring each in turn
type Stream struct {
	Inputs *Inputs
	Exp    *Exploration

	err error
}

// Next advances to the next pattern, returning false at the end or on error
func (st *Stream) Next() bool {
	if st.err != nil {
		return false
	}
	for {
		if st.Exp != nil && st.Exp.Next() {
			return true
		}
		if !st.Inputs.Next() {
			st.err = st.Inputs.Err()
			return false
		}
		st.Exp, st.err = st.Inputs.Explore()
		if st.err != nil {
			return false
		}
	}
}

// Pattern returns the current pattern
func (st *Stream) Pattern() *etensor.Float32 {
	return st.Exp.Pattern()
}

// Input returns the current input
func (st *Stream) Input() Input {
	return st.Exp.In
}

// Err returns the error that stopped the stream, if any
func (st *Stream) Err() error {
	return st.err
}
