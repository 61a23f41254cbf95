// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sensor

import (
	"github.com/goki/ki/kit"
)

// Orders are the orders in which training categories and files are presented
type Orders int32

//go:generate stringer -type=Orders

var KiT_Orders = kit.Enums.AddEnum(OrdersN, kit.NotBitFlag, nil)

func (ev Orders) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Orders) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// UnmarshalText sets the order from its name, for config files
func (ev *Orders) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// MarshalText returns the name of the order
func (ev Orders) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }

// The training orders
const (
	// Normal presents categories and files in ascending name order
	Normal Orders = iota

	// Reverse presents categories and files in descending name order
	Reverse

	// Random shuffles the categories within each repetition, and the
	// files within each category
	Random

	// RandomAll shuffles the whole repeated category sequence, and the
	// files within each category
	RandomAll

	OrdersN
)

// Paths are the exploration paths along which an input is moved across the sensor
type Paths int32

//go:generate stringer -type=Paths

var KiT_Paths = kit.Enums.AddEnum(PathsN, kit.NotBitFlag, nil)

func (ev Paths) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Paths) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// UnmarshalText sets the path from its name, for config files
func (ev *Paths) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// MarshalText returns the name of the path
func (ev Paths) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }

// The exploration paths
const (
	// RandomSweep4Axes moves one step per iteration in a random direction,
	// horizontal, vertical or diagonal, fixed for the whole path
	RandomSweep4Axes Paths = iota

	// LeftToRightSweep moves right one step per iteration
	LeftToRightSweep

	// TopToBottomSweep moves down one step per iteration
	TopToBottomSweep

	PathsN
)

// Events are the kinds of sensor output notifications
type Events int32

//go:generate stringer -type=Events

var KiT_Events = kit.Enums.AddEnum(EventsN, kit.NotBitFlag, nil)

func (ev Events) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Events) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// UnmarshalText sets the event from its name, for config files
func (ev *Events) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// MarshalText returns the name of the event
func (ev Events) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }

// The output events
const (
	// TransformedBitmap is the rendered image, fired even when it is blank
	TransformedBitmap Events = iota

	// TransformedMatrix is the pattern of a non-blank rendered image, before
	// filters. Only fired when exploring with transformations.
	TransformedMatrix

	// FilteredMatrix is the pattern after all filters, when there are any.
	// Only fired when exploring with transformations.
	FilteredMatrix

	EventsN
)
