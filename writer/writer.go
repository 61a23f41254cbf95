// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package writer saves sensor outputs as bitmap files, for inspecting what
a sensor renders and what its filters produce.

Each BitmapWriter writes into a new numbered sub-folder (0001, 0002, ...)
of its folder, so that successive runs never overwrite each other.
*/
package writer

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/emer/htm/patterns"
	"github.com/emer/htm/sensor"
)

// BitmapWriter writes sensor outputs as .bmp files
type BitmapWriter struct {
	Dir     string `desc:"output sub-folder that files are written to"`
	Counter int    `desc:"number of the next file"`
}

// NewBitmapWriter makes the next numbered sub-folder of folder, which is
// created if needed, and returns a writer into it. An empty folder means
// the current directory.
func NewBitmapWriter(folder string) (*BitmapWriter, error) {
	if folder == "" {
		folder = "."
	}
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, err
	}
	ents, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}
	num := 1
	for _, de := range ents {
		if !de.IsDir() {
			continue
		}
		if n, err := strconv.Atoi(de.Name()); err == nil && n+1 > num {
			num = n + 1
		}
	}
	dir := filepath.Join(folder, fmt.Sprintf("%04d", num))
	if err := os.Mkdir(dir, 0755); err != nil {
		return nil, err
	}
	return &BitmapWriter{Dir: dir, Counter: 1}, nil
}

// FileName returns the name of the next file for given sender, label and event
func (bw *BitmapWriter) FileName(sender any, label string, ev sensor.Events) string {
	nm := fmt.Sprintf("%T", sender)
	if nmr, ok := sender.(interface{ Name() string }); ok {
		nm = nmr.Name()
	}
	return filepath.Join(bw.Dir, fmt.Sprintf("%s%07d_%s_%s.bmp", nm, bw.Counter, label, ev))
}

// Write writes the output: the image for bitmap events, else the pattern
// normalized to 0..255 grey levels
func (bw *BitmapWriter) Write(sender any, out *sensor.Output) error {
	var img image.Image
	switch {
	case out.Image != nil:
		img = out.Image
	case out.Pattern != nil:
		img = patterns.ToImage(out.Pattern)
	default:
		return nil
	}
	fn := bw.FileName(sender, out.Label, out.Event)
	bw.Counter++
	return imgio.Save(fn, img, imgio.BMPEncoder())
}

// OutputFunc returns a sensor.OutputFunc writing the outputs of given
// events, or of all events if none are given. Write errors are logged.
func (bw *BitmapWriter) OutputFunc(evs ...sensor.Events) sensor.OutputFunc {
	return func(sender any, out *sensor.Output) {
		if len(evs) > 0 {
			sel := false
			for _, ev := range evs {
				if ev == out.Event {
					sel = true
					break
				}
			}
			if !sel {
				return
			}
		}
		if err := bw.Write(sender, out); err != nil {
			log.Println(err)
		}
	}
}
