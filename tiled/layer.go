// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package tiled provides a 2D layer of spatial nodes tiled over a larger
input pattern, each node reading its own receptive field.

Receptive fields overlap according to the Coverage ratio (see Spans).
In clone mode a single prototype node learns from the field at the center
of the grid, and is copied into every grid cell on the first Infer call.
Learn and Infer run the grid cells in parallel worker threads.
*/
package tiled

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/timer"
	"github.com/emer/etable/etensor"
	"github.com/emer/htm/patterns"
	"github.com/emer/htm/rules"
	"github.com/emer/htm/spatial"
	"github.com/goki/ki/kit"
)

// LayerStates are the lifecycle states of a layer
type LayerStates int32

//go:generate stringer -type=LayerStates

var KiT_LayerStates = kit.Enums.AddEnum(LayerStatesN, kit.NotBitFlag, nil)

func (ev LayerStates) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *LayerStates) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The layer states
const (
	// Learning is the initial state
	Learning LayerStates = iota

	// Trained is entered by the first Infer call
	Trained

	LayerStatesN
)

// NodeFactory makes a new node with given params
type NodeFactory func(pars *spatial.Params) spatial.Node

// GaussianFactory is the default NodeFactory, making spatial.Gaussian nodes
func GaussianFactory(pars *spatial.Params) spatial.Node {
	return spatial.NewGaussian(pars)
}

// Layer is a Height x Width grid of spatial nodes over a 2D input
type Layer struct {
	Nm       string      `desc:"name of layer"`
	Params   Params      `view:"inline" desc:"layer parameters"`
	St       LayerStates `inactive:"+" desc:"current lifecycle state"`
	NThreads int         `inactive:"+" desc:"number of worker threads in use"`

	Factory NodeFactory    `view:"-" desc:"makes the nodes"`
	Proto   spatial.Node   `view:"-" desc:"prototype node trained in clone mode"`
	Nodes   []spatial.Node `view:"-" desc:"grid nodes in row-major order -- nil in clone mode until trained"`
	Geom    Geom           `view:"-" desc:"receptive field geometry for the last input size"`

	ThrChans []CellFunChan          `view:"-" desc:"cell function channels, per thread"`
	ThrTimes []timer.Time           `view:"-" desc:"timers for each thread, so you can see how evenly the workload is being distributed"`
	FunTimes map[string]*timer.Time `view:"-" desc:"timers for each major function (step of processing)"`
	WaitGp   sync.WaitGroup         `view:"-" desc:"wait group for waiting on threads"`

	errs []error
}

// NewLayer returns a new layer with given params, using factory to make
// nodes (GaussianFactory if nil), and starts its worker threads.
// Call Close when done with the layer.
func NewLayer(name string, pars *Params, factory NodeFactory) *Layer {
	ly := &Layer{Nm: name, Params: *pars, Factory: factory}
	if ly.Factory == nil {
		ly.Factory = GaussianFactory
	}
	ly.Build()
	return ly
}

// Build makes the nodes and starts the threads
func (ly *Layer) Build() {
	ly.StopThreads()
	ly.Params.Update()
	ly.St = Learning
	ly.Nodes = nil
	ly.Proto = nil
	ly.Geom = Geom{}
	if ly.Params.Clone {
		ly.Proto = ly.Factory(&ly.Params.Node)
	} else {
		ly.Nodes = make([]spatial.Node, ly.NCells())
		for ci := range ly.Nodes {
			ly.Nodes[ci] = ly.Factory(&ly.Params.Node)
		}
	}
	ly.errs = make([]error, ly.NCells())
	ly.NThreads = ly.Params.NThreads
	if ly.NThreads > ly.NCells() {
		ly.NThreads = ly.NCells()
	}
	ly.FunTimes = make(map[string]*timer.Time)
	ly.StartThreads()
}

// Close stops the worker threads
func (ly *Layer) Close() {
	ly.StopThreads()
	ly.NThreads = 0
}

// NCells returns the number of grid cells
func (ly *Layer) NCells() int {
	return ly.Params.Height * ly.Params.Width
}

// CellIdx returns the row-major index of given grid cell
func (ly *Layer) CellIdx(row, col int) int {
	return row*ly.Params.Width + col
}

// ClonedRow returns the grid row whose receptive field the prototype learns from
func (ly *Layer) ClonedRow() int {
	return ly.Params.Height / 2
}

// ClonedCol returns the grid column whose receptive field the prototype learns from
func (ly *Layer) ClonedCol() int {
	return ly.Params.Width / 2
}

// Node returns the node at given grid cell: the prototype in clone mode
// before training, else nil if the grid has not been built.
func (ly *Layer) Node(row, col int) spatial.Node {
	if ly.Nodes == nil {
		return ly.Proto
	}
	return ly.Nodes[ly.CellIdx(row, col)]
}

// UpdateGeom recomputes the receptive fields if the input size changed
func (ly *Layer) UpdateGeom(in *etensor.Float32) error {
	if in.NumDims() != 2 {
		return rules.Violationf("Layer.Geom", "input must be 2D, has %d dims", in.NumDims())
	}
	sz := patterns.Size(in)
	if sz == ly.Geom.InSize && ly.Geom.Rows != nil {
		return nil
	}
	if sz.Y < ly.Params.Height || sz.X < ly.Params.Width {
		return rules.Violationf("Layer.Geom", "input %dx%d smaller than layer grid %dx%d", sz.Y, sz.X, ly.Params.Height, ly.Params.Width)
	}
	ly.Geom.Set(sz, ly.Params.Height, ly.Params.Width, ly.Params.Coverage)
	return nil
}

// SubPattern returns a copy of the receptive field of the node at given
// grid cell within the input
func (ly *Layer) SubPattern(row, col int, in *etensor.Float32) (*etensor.Float32, error) {
	if err := ly.UpdateGeom(in); err != nil {
		return nil, err
	}
	return patterns.Sub(in, ly.Geom.RecField(row, col)), nil
}

// Learn trains the layer on the input: the prototype learns its field in
// clone mode, else every node learns its own field.
func (ly *Layer) Learn(in *etensor.Float32) error {
	if ly.St != Learning {
		return rules.Violationf("Layer.Learn", "layer %s cannot learn in state: %s", ly.Nm, ly.St)
	}
	if err := ly.UpdateGeom(in); err != nil {
		return err
	}
	if ly.Params.Clone {
		ly.FunTimerStart("Learn")
		sub := patterns.Sub(in, ly.Geom.RecField(ly.ClonedRow(), ly.ClonedCol()))
		err := ly.Proto.Learn(sub)
		ly.FunTimerStop("Learn")
		return err
	}
	ly.ThrCellFun(func(ci int) {
		row, col := ci/ly.Params.Width, ci%ly.Params.Width
		ly.errs[ci] = ly.Nodes[ci].Learn(patterns.Sub(in, ly.Geom.RecField(row, col)))
	}, "Learn")
	return ly.firstErr()
}

// Train moves the layer to the Trained state, replicating the prototype
// across the grid in clone mode. It is called by the first Infer.
func (ly *Layer) Train() {
	if ly.St != Learning {
		return
	}
	if ly.Params.Clone {
		ly.FunTimerStart("Clone")
		ly.Nodes = make([]spatial.Node, ly.NCells())
		for ci := range ly.Nodes {
			ly.Nodes[ci] = ly.Proto.Clone()
		}
		ly.FunTimerStop("Clone")
	}
	ly.St = Trained
}

// Infer returns the layer output for the input, a Height x
// (Width * MaxNodeOutSize) matrix with the output of the node at (row, col)
// in row row, starting at column col * MaxNodeOutSize, zero padded.
func (ly *Layer) Infer(in *etensor.Float32) (*etensor.Float32, error) {
	if err := ly.UpdateGeom(in); err != nil {
		return nil, err
	}
	ly.Train()
	mo := ly.Params.MaxNodeOutSize
	out := etensor.NewFloat32([]int{ly.Params.Height, ly.Params.Width * mo}, nil, patterns.DimNames)
	// each cell writes only its own disjoint region of out.Values
	ly.ThrCellFun(func(ci int) {
		row, col := ci/ly.Params.Width, ci%ly.Params.Width
		vec, err := ly.Nodes[ci].Infer(patterns.Sub(in, ly.Geom.RecField(row, col)))
		ly.errs[ci] = err
		if err != nil {
			return
		}
		if len(vec) > mo {
			vec = vec[:mo]
		}
		copy(out.Values[ci*mo:], vec)
	}, "Infer")
	if err := ly.firstErr(); err != nil {
		return nil, err
	}
	return out, nil
}

func (ly *Layer) firstErr() error {
	var first error
	for ci, err := range ly.errs {
		if err != nil && first == nil {
			first = err
		}
		ly.errs[ci] = nil
	}
	return first
}

// NCoincs returns the total number of coincidences over all nodes
// (the prototype only, in clone mode before training)
func (ly *Layer) NCoincs() int {
	if ly.Nodes == nil {
		return ly.Proto.Coincidences().Len()
	}
	n := 0
	for _, nd := range ly.Nodes {
		n += nd.Coincidences().Len()
	}
	return n
}

// SizeReport returns a string reporting the size of the layer's nodes
func (ly *Layer) SizeReport() string {
	var b strings.Builder
	nodes := ly.Nodes
	if nodes == nil {
		nodes = []spatial.Node{ly.Proto}
	}
	ncoinc := 0
	mem := 0
	for _, nd := range nodes {
		cs := nd.Coincidences()
		ncoinc += cs.Len()
		mem += cs.MemBytes()
	}
	fmt.Fprintf(&b, "%14s:\t Grid: %dx%d\t Nodes: %d\t Coincs: %d\t CoincMem: %v\t State: %v\n", ly.Nm, ly.Params.Height, ly.Params.Width, len(nodes), ncoinc, (datasize.ByteSize)(mem).HumanReadable(), ly.St)
	return b.String()
}

// Params are the layer parameters
type Params struct {
	Height         int            `def:"1" min:"1" desc:"number of rows of nodes"`
	Width          int            `def:"1" min:"1" desc:"number of columns of nodes"`
	Coverage       float64        `def:"0" min:"0" max:"1" desc:"overlap of adjacent receptive fields -- 0 = disjoint tiling, 1 = every node sees the whole input"`
	Clone          bool           `desc:"train one prototype node on the center receptive field and copy it to every grid cell on the first inference"`
	MaxNodeOutSize int            `def:"1000" min:"1" desc:"width of each node's output in the layer output -- also caps node coincidences"`
	NThreads       int            `desc:"number of worker threads -- 0 = number of cpus"`
	Node           spatial.Params `view:"inline" desc:"node parameters"`
}

func (lp *Params) Defaults() {
	lp.Height = 1
	lp.Width = 1
	lp.Coverage = 0
	lp.Clone = false
	lp.MaxNodeOutSize = 1000
	lp.NThreads = 0
	lp.Node.Defaults()
	lp.Update()
}

// Update must be called after any changes to parameters
func (lp *Params) Update() {
	if lp.Height < 1 {
		lp.Height = 1
	}
	if lp.Width < 1 {
		lp.Width = 1
	}
	if lp.Coverage < 0 {
		lp.Coverage = 0
	}
	if lp.Coverage > 1 {
		lp.Coverage = 1
	}
	if lp.MaxNodeOutSize < 1 {
		lp.MaxNodeOutSize = 1
	}
	if lp.NThreads <= 0 {
		lp.NThreads = runtime.NumCPU()
	}
	lp.Node.MaxOutSize = lp.MaxNodeOutSize
	lp.Node.Update()
}
