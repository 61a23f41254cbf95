// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sensor

import (
	"image"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/emer/htm/rules"
	"golang.org/x/exp/rand"
	_ "golang.org/x/image/bmp" // bmp inputs
)

// Input is one input file and its category
type Input struct {

	// category name extracted from the category folder name
	Cat string

	// path of the input file
	File string
}

// catDir is a category folder
type catDir struct {
	Cat string
	Dir string
}

// listCats returns the category folders of dir in ascending category order.
// Folders whose name does not match the pattern are skipped.
func listCats(dir string, re *regexp.Regexp) ([]catDir, error) {
	if err := dirExists("sensor.Inputs", dir); err != nil {
		return nil, err
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, rules.NotFoundErr("sensor.Inputs", "folder "+dir, err)
	}
	ci := re.SubexpIndex("cat")
	var cats []catDir
	for _, de := range ents {
		if !de.IsDir() {
			continue
		}
		m := re.FindStringSubmatch(de.Name())
		if m == nil {
			log.Printf("sensor: category folder %s does not match pattern %s, skipped\n", de.Name(), re)
			continue
		}
		cats = append(cats, catDir{Cat: m[ci], Dir: filepath.Join(dir, de.Name())})
	}
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].Cat < cats[j].Cat
	})
	return cats, nil
}

// orderCats returns the sequence of categories for given order and
// number of repetitions. cats must be in ascending order.
func orderCats(cats []catDir, order Orders, reps int, rnd func() *rand.Rand) []catDir {
	nc := len(cats)
	seq := make([]catDir, 0, nc*reps)
	switch order {
	case Reverse:
		for r := 0; r < reps; r++ {
			for i := nc - 1; i >= 0; i-- {
				seq = append(seq, cats[i])
			}
		}
	case Random:
		for r := 0; r < reps; r++ {
			blk := make([]catDir, nc)
			copy(blk, cats)
			rnd().Shuffle(nc, func(i, j int) { blk[i], blk[j] = blk[j], blk[i] })
			seq = append(seq, blk...)
		}
	case RandomAll:
		for r := 0; r < reps; r++ {
			seq = append(seq, cats...)
		}
		rnd().Shuffle(len(seq), func(i, j int) { seq[i], seq[j] = seq[j], seq[i] })
	default:
		for r := 0; r < reps; r++ {
			seq = append(seq, cats...)
		}
	}
	return seq
}

// listFiles returns the files in the category folder matching mask, in
// the file order for given training order.
func listFiles(dir, mask string, order Orders, rnd func() *rand.Rand) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, rules.NotFoundErr("sensor.Inputs", "category folder "+dir, err)
	}
	var fns []string
	for _, de := range ents { // ReadDir is sorted by name
		if de.IsDir() {
			continue
		}
		ok, err := filepath.Match(mask, de.Name())
		if err != nil {
			return nil, rules.Preconditionf("sensor.Inputs", "invalid file mask %s: %v", mask, err)
		}
		if ok {
			fns = append(fns, filepath.Join(dir, de.Name()))
		}
	}
	switch order {
	case Reverse:
		sort.Sort(sort.Reverse(sort.StringSlice(fns)))
	case Random, RandomAll:
		rnd().Shuffle(len(fns), func(i, j int) { fns[i], fns[j] = fns[j], fns[i] })
	}
	return fns, nil
}

// LoadImage loads an image file in any registered format
func LoadImage(fn string) (image.Image, error) {
	img, err := imgio.Open(fn)
	if err != nil {
		return nil, rules.NotFoundErr("sensor.LoadImage", "image "+fn, err)
	}
	return img, nil
}

// Inputs iterates over the input files of a sequence of categories.
// Files of each category are listed, and shuffled if needed, when the
// category is reached.
type Inputs struct {
	Sensor *Sensor
	Order  Orders
	XForm  bool

	cats  []catDir
	ci    int
	files []string
	fi    int
	cur   Input
	err   error
}

func newInputs(sn *Sensor, cats []catDir, order Orders, xform bool) *Inputs {
	sn.InputCtr.Init()
	return &Inputs{Sensor: sn, Order: order, XForm: xform, cats: cats, ci: -1}
}

// NCats returns the number of categories in the sequence, repetitions included
func (it *Inputs) NCats() int {
	return len(it.cats)
}

// Cats returns the category names in sequence order
func (it *Inputs) Cats() []string {
	cs := make([]string, len(it.cats))
	for i, cd := range it.cats {
		cs[i] = cd.Cat
	}
	return cs
}

// Next advances to the next input, returning false at the end or on error
func (it *Inputs) Next() bool {
	if it.err != nil {
		return false
	}
	for it.fi >= len(it.files) {
		it.ci++
		if it.ci >= len(it.cats) {
			return false
		}
		cd := it.cats[it.ci]
		it.files, it.err = listFiles(cd.Dir, it.Sensor.Params.FileMask, it.Order, it.Sensor.RandGen)
		if it.err != nil {
			return false
		}
		it.fi = 0
	}
	it.cur = Input{Cat: it.cats[it.ci].Cat, File: it.files[it.fi]}
	it.fi++
	it.Sensor.InputCtr.Incr()
	return true
}

// Input returns the current input
func (it *Inputs) Input() Input {
	return it.cur
}

// Err returns the error that stopped the iteration, if any
func (it *Inputs) Err() error {
	return it.err
}

// Explore returns the exploration of the current input
func (it *Inputs) Explore() (*Exploration, error) {
	return it.Sensor.Explore(it.cur, it.XForm)
}
