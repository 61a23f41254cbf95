// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spatial provides spatial pooling nodes, which learn a bounded
dictionary of representative input patterns (coincidences) from a stream
of 2D patterns and then score new inputs by their similarity to each one.

A node starts in the Learning state. The first call to Infer or TimeInfer
moves it into an inference state, after which Learn fails with a
rules.Violation error.
*/
package spatial

import (
	"github.com/emer/etable/etensor"
	"github.com/emer/htm/coinc"
	"github.com/goki/ki/kit"
)

// Node is the interface for spatial pooling nodes
type Node interface {
	// Learn adds the pattern to the coincidences, or increments the
	// frequency of the coincidence it matches.
	Learn(pat *etensor.Float32) error

	// Infer returns the activation of every coincidence for the pattern,
	// in coincidence order, and ends learning.
	Infer(pat *etensor.Float32) ([]float32, error)

	// TimeInfer is the time-based inference mode. It currently computes
	// the same activations as Infer.
	TimeInfer(pat *etensor.Float32) ([]float32, error)

	// Clone returns an independent copy of the node with the same
	// params, state and coincidences.
	Clone() Node

	// State returns the current lifecycle state
	State() NodeStates

	// Coincidences returns the coincidence store
	Coincidences() *coinc.Store
}

// NodeStates are the lifecycle states of a spatial node
type NodeStates int32

//go:generate stringer -type=NodeStates

var KiT_NodeStates = kit.Enums.AddEnum(NodeStatesN, kit.NotBitFlag, nil)

func (ev NodeStates) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *NodeStates) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The node states
const (
	// Learning is the initial state, in which coincidences are learned
	Learning NodeStates = iota

	// FlashInference is entered by the first Infer call
	FlashInference

	// TimeBasedInference is entered by the first TimeInfer call
	TimeBasedInference

	NodeStatesN
)
