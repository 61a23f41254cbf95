// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sensor provides the input side of htm: a Sensor enumerates
categorized training and test images from folders, and explores each one
by moving, rotating and scaling it across the sensor field, producing one
2D pattern per iteration.

Folders are laid out as <root>/<category folder>/<input file>. The
category name is extracted from the category folder name by a regular
expression with a named group cat.

Enumeration is pull-based: Inputs, Exploration and Stream are iterators
with a Next method, used as:

	st, err := sn.Train()
	for st.Next() {
		ly.Learn(st.Pattern())
	}
	if err := st.Err(); err != nil { ... }

All random draws come from the sensor's own generator, seeded from
Params.Seed, so a fixed seed replays the same categories, files and poses
after ResetRand.
*/
package sensor

import (
	"image"
	"os"
	"regexp"
	"time"

	"github.com/emer/emergent/env"
	"github.com/emer/etable/etensor"
	"github.com/emer/htm/rules"
	"golang.org/x/exp/rand"
)

// Filter transforms a pattern, returning a new pattern
type Filter interface {
	Filter(pat *etensor.Float32) *etensor.Float32
}

// FilterFunc is a function used as a Filter
type FilterFunc func(pat *etensor.Float32) *etensor.Float32

func (ff FilterFunc) Filter(pat *etensor.Float32) *etensor.Float32 {
	return ff(pat)
}

// Output is the payload of an output notification
type Output struct {

	// kind of output
	Event Events

	// rendered image, for TransformedBitmap
	Image image.Image

	// pattern, for TransformedMatrix and FilteredMatrix
	Pattern *etensor.Float32

	// category of the current input
	Label string
}

// OutputFunc is called for each output notification, with the sensor as sender.
// It must not modify the output.
type OutputFunc func(sender any, out *Output)

// Sensor enumerates and explores input images
type Sensor struct {
	Nm       string       `desc:"name of sensor, used as the sender name in output files"`
	Params   Params       `view:"inline" desc:"sensor parameters"`
	TrainDir string       `desc:"training folder, with one sub-folder per category"`
	TestDirs []string     `desc:"test folders, with one sub-folder per category"`
	Filters  []Filter     `view:"-" desc:"filters applied in order to every emitted pattern"`
	Renderer Renderer     `view:"-" desc:"renders images at a pose"`
	OutFuns  []OutputFunc `view:"-" desc:"output notification functions"`
	InputCtr env.Ctr      `view:"inline" desc:"number of inputs started in the current pass"`
	IterCtr  env.Ctr      `view:"inline" desc:"iteration within the current path"`

	Rand *rand.Rand   `view:"-" desc:"random generator -- made from Seed on first use"`
	Cur  *Exploration `view:"-" desc:"exploration of the current input"`

	trainCat *regexp.Regexp
	testCat  *regexp.Regexp
}

// NewSensor returns a new sensor with given params, which are copied and updated
func NewSensor(name string, pars *Params) (*Sensor, error) {
	sn := &Sensor{Nm: name, Params: *pars}
	sn.Params.Update()
	var err error
	sn.trainCat, err = compileCat(sn.Params.TrainCatPattern)
	if err != nil {
		return nil, err
	}
	sn.testCat, err = compileCat(sn.Params.TestCatPattern)
	if err != nil {
		return nil, err
	}
	sn.Renderer = &XFormRenderer{}
	return sn, nil
}

func compileCat(pat string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, &rules.Error{Kind: rules.Precondition, Op: "sensor.NewSensor", Msg: "invalid category pattern " + pat, Err: err}
	}
	if re.SubexpIndex("cat") < 0 {
		return nil, rules.Preconditionf("sensor.NewSensor", "category pattern %s has no named group cat", pat)
	}
	return re, nil
}

// Name returns the name of the sensor
func (sn *Sensor) Name() string {
	return sn.Nm
}

// SetTrainingFolder sets the training folder
func (sn *Sensor) SetTrainingFolder(dir string) {
	sn.TrainDir = dir
}

// AddTestFolder adds a test folder, enumerated after those already added
func (sn *Sensor) AddTestFolder(dir string) {
	sn.TestDirs = append(sn.TestDirs, dir)
}

// AddFilter adds a filter, applied after those already added
func (sn *Sensor) AddFilter(flt Filter) {
	sn.Filters = append(sn.Filters, flt)
}

// OnOutput adds a function called for every output notification
func (sn *Sensor) OnOutput(fun OutputFunc) {
	sn.OutFuns = append(sn.OutFuns, fun)
}

// RandGen returns the random generator, making it from the seed if needed
func (sn *Sensor) RandGen() *rand.Rand {
	if sn.Rand == nil {
		seed := sn.Params.Seed
		if seed < 0 {
			seed = time.Now().UnixNano()
		}
		sn.Rand = rand.New(rand.NewSource(uint64(seed)))
	}
	return sn.Rand
}

// ResetRand resets the random generator to its seed, so the next pass
// replays the same sequence when the seed is fixed
func (sn *Sensor) ResetRand() {
	sn.Rand = nil
}

// randSign returns -1 or 1 with equal probability
func (sn *Sensor) randSign() float32 {
	if sn.RandGen().Intn(2) == 0 {
		return -1
	}
	return 1
}

// Size returns the sensor field size, X = width, Y = height
func (sn *Sensor) Size() image.Point {
	return image.Point{X: sn.Params.Width, Y: sn.Params.Height}
}

// TrainInputs returns the training inputs in the training order.
// Fails with Precondition if no training folder is set, or NotFound if it
// does not exist.
func (sn *Sensor) TrainInputs() (*Inputs, error) {
	if sn.TrainDir == "" {
		return nil, rules.Preconditionf("Sensor.TrainInputs", "no training folder set")
	}
	cats, err := listCats(sn.TrainDir, sn.trainCat)
	if err != nil {
		return nil, err
	}
	return newInputs(sn, orderCats(cats, sn.Params.Order, sn.Params.Reps, sn.RandGen), sn.Params.Order, sn.Params.TrainXForm), nil
}

// TestInputs returns the test inputs of all test folders, in the order
// they were added, each in Normal order.
// Fails with Precondition if no test folder is set, or NotFound if one
// does not exist.
func (sn *Sensor) TestInputs() (*Inputs, error) {
	if len(sn.TestDirs) == 0 {
		return nil, rules.Preconditionf("Sensor.TestInputs", "no test folder set")
	}
	var all []catDir
	for _, dir := range sn.TestDirs {
		cats, err := listCats(dir, sn.testCat)
		if err != nil {
			return nil, err
		}
		all = append(all, orderCats(cats, Normal, 1, nil)...)
	}
	return newInputs(sn, all, Normal, sn.Params.TestXForm), nil
}

// Train returns the stream of patterns of all training inputs
func (sn *Sensor) Train() (*Stream, error) {
	ins, err := sn.TrainInputs()
	if err != nil {
		return nil, err
	}
	return &Stream{Inputs: ins}, nil
}

// Test returns the stream of patterns of all test inputs
func (sn *Sensor) Test() (*Stream, error) {
	ins, err := sn.TestInputs()
	if err != nil {
		return nil, err
	}
	return &Stream{Inputs: ins}, nil
}

// Explore returns the exploration of one input. xform selects exploration
// along the paths, else the input is rendered once at the identity pose.
func (sn *Sensor) Explore(in Input, xform bool) (*Exploration, error) {
	img, err := LoadImage(in.File)
	if err != nil {
		return nil, err
	}
	if sn.Params.Width <= 0 || sn.Params.Height <= 0 {
		sz := img.Bounds().Size()
		sn.Params.Width = sz.X
		sn.Params.Height = sz.Y
	}
	ex := &Exploration{Sensor: sn, In: in, Img: img, XForm: xform, PathIdx: -1}
	if xform {
		ex.InitOrigin()
	}
	sn.Cur = ex
	return ex, nil
}

func (sn *Sensor) fire(ev Events, img image.Image, pat *etensor.Float32, label string) {
	if len(sn.OutFuns) == 0 {
		return
	}
	out := &Output{Event: ev, Image: img, Pattern: pat, Label: label}
	for _, fun := range sn.OutFuns {
		fun(sn, out)
	}
}

func (sn *Sensor) filter(pat *etensor.Float32) *etensor.Float32 {
	for _, flt := range sn.Filters {
		pat = flt.Filter(pat)
	}
	return pat
}

// IsOutsideField returns true if the current input's origin is beyond
// the area surrounding the sensor field: more than one field width or
// height away from it.
func (sn *Sensor) IsOutsideField() bool {
	if sn.Cur == nil {
		return false
	}
	ps := sn.Cur.Pose
	w, h := sn.Params.Width, sn.Params.Height
	return ps.PosH < -w || ps.PosH > w || ps.PosV < -h || ps.PosV > h
}

func dirExists(op, dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return rules.NotFoundErr(op, "folder "+dir, err)
	}
	if !fi.IsDir() {
		return rules.NotFoundErr(op, dir+" is not a folder", nil)
	}
	return nil
}
