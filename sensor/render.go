// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sensor

import (
	"image"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
)

// Pose is the geometric transform of an input on the sensor
type Pose struct {

	// horizontal offset of the input's top-left corner, in pixels
	PosH int

	// vertical offset of the input's top-left corner, in pixels
	PosV int

	// rotation angle in degrees, clockwise, about the input's center
	Rot float32

	// scaling factor relative to the sensor size
	Scale float32
}

// Identity returns the untransformed pose
func Identity() Pose {
	return Pose{Scale: 1}
}

// Renderer renders a source image onto a sensor field of given size at given pose
type Renderer interface {
	Render(src image.Image, pose Pose, size image.Point) image.Image
}

// XFormRenderer renders by stretching the source to the sensor size times
// the pose scale, rotating it about its center, and drawing it at the pose
// offset on a black field.
type XFormRenderer struct{}

func (xr *XFormRenderer) Render(src image.Image, pose Pose, size image.Point) image.Image {
	sw := int(math.Round(float64(pose.Scale) * float64(size.X)))
	sh := int(math.Round(float64(pose.Scale) * float64(size.Y)))
	fld := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(fld, fld.Bounds(), image.Black, image.Point{}, draw.Src)
	if sw < 1 || sh < 1 {
		return fld
	}
	img := clone.AsRGBA(src)
	if img.Bounds().Dx() != sw || img.Bounds().Dy() != sh {
		img = transform.Resize(img, sw, sh, transform.Linear)
	}
	if pose.Rot != 0 {
		img = transform.Rotate(img, float64(pose.Rot), &transform.RotationOptions{ResizeBounds: false})
	}
	dst := image.Rect(pose.PosH, pose.PosV, pose.PosH+sw, pose.PosV+sh)
	draw.Draw(fld, dst, img, img.Bounds().Min, draw.Over)
	return fld
}
