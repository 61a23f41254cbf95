// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/emer/htm/patterns"
	"github.com/emer/htm/sensor"
)

type named struct{}

func (nm *named) Name() string { return "Retina" }

func TestSubFolders(t *testing.T) {
	root := t.TempDir()
	os.Mkdir(filepath.Join(root, "0007"), 0755)
	os.Mkdir(filepath.Join(root, "other"), 0755)
	bw, err := NewBitmapWriter(root)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(bw.Dir) != "0008" {
		t.Errorf("sub-folder: got %s, want 0008", bw.Dir)
	}
	bw2, _ := NewBitmapWriter(root)
	if filepath.Base(bw2.Dir) != "0009" {
		t.Errorf("second sub-folder: got %s, want 0009", bw2.Dir)
	}
	bw3, _ := NewBitmapWriter(filepath.Join(root, "new"))
	if filepath.Base(bw3.Dir) != "0001" {
		t.Errorf("first sub-folder: got %s, want 0001", bw3.Dir)
	}
}

func TestWrite(t *testing.T) {
	bw, err := NewBitmapWriter(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	pat := patterns.FromRows([][]float32{{0, 2}, {1, 0}})
	fun := bw.OutputFunc(sensor.FilteredMatrix)
	fun(&named{}, &sensor.Output{Event: sensor.TransformedMatrix, Pattern: pat, Label: "a"})
	fun(&named{}, &sensor.Output{Event: sensor.FilteredMatrix, Pattern: pat, Label: "a"})
	fn := filepath.Join(bw.Dir, "Retina0000001_a_FilteredMatrix.bmp")
	img, err := imgio.Open(fn)
	if err != nil {
		t.Fatalf("expected file %s: %v", fn, err)
	}
	back := patterns.FromImage(img, false, 0)
	if back.Value([]int{0, 1}) != 1 || back.Value([]int{0, 0}) != 0 {
		t.Errorf("normalized pattern: got %v", back.Values)
	}
	ents, _ := os.ReadDir(bw.Dir)
	if len(ents) != 1 {
		t.Errorf("only selected events should be written: %d files", len(ents))
	}
}
