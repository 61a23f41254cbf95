// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spatial

import (
	"github.com/emer/etable/etensor"
	"github.com/emer/htm/coinc"
	"github.com/emer/htm/patterns"
	"github.com/emer/htm/rules"
	"github.com/goki/mat32"
)

// Gaussian is a spatial node whose inference output for each coincidence
// is a gaussian of the squared distance to it: exp(-d / (2 sigma^2)).
type Gaussian struct {
	Params Params       `view:"inline" desc:"learning and inference parameters"`
	St     NodeStates   `inactive:"+" desc:"current lifecycle state"`
	Coincs *coinc.Store `view:"-" desc:"learned coincidences"`
}

// NewGaussian returns a new Gaussian node in the Learning state.
// Params are copied and updated.
func NewGaussian(pars *Params) *Gaussian {
	gn := &Gaussian{Params: *pars}
	gn.Params.Update()
	gn.Coincs = coinc.New()
	return gn
}

func (gn *Gaussian) State() NodeStates          { return gn.St }
func (gn *Gaussian) Coincidences() *coinc.Store { return gn.Coincs }

// Learn learns the pattern: a blank pattern is ignored, a pattern matching
// an existing coincidence increments its frequency, and a new pattern is
// added while there is room for it.
func (gn *Gaussian) Learn(pat *etensor.Float32) error {
	if gn.St != Learning {
		return rules.Violationf("Gaussian.Learn", "cannot learn in state: %s", gn.St)
	}
	if patterns.IsBlank(pat) {
		return nil
	}
	if rows, cols, ok := gn.Coincs.Shape(); ok {
		if rows != patterns.Rows(pat) || cols != patterns.Cols(pat) {
			return rules.Violationf("Gaussian.Learn", "pattern shape %dx%d differs from learned shape %dx%d", patterns.Rows(pat), patterns.Cols(pat), rows, cols)
		}
	}
	if idx := gn.Coincs.FindNear(pat, gn.Params.MaxDist); idx >= 0 {
		gn.Coincs.Incr(idx, 1)
		return nil
	}
	if gn.Coincs.Len() < gn.Params.MaxOutSize {
		gn.Coincs.Add(pat, 1)
	}
	return nil
}

// Infer returns the activation of each coincidence for the pattern, and
// moves the node to FlashInference, from any state. With no coincidences
// the output is a single 0.
func (gn *Gaussian) Infer(pat *etensor.Float32) ([]float32, error) {
	gn.St = FlashInference
	return gn.activations(pat, "Gaussian.Infer")
}

// TimeInfer is Infer for the time-based inference mode, which moves the
// node to TimeBasedInference. No temporal integration is done.
func (gn *Gaussian) TimeInfer(pat *etensor.Float32) ([]float32, error) {
	gn.St = TimeBasedInference
	return gn.activations(pat, "Gaussian.TimeInfer")
}

func (gn *Gaussian) activations(pat *etensor.Float32, op string) ([]float32, error) {
	nc := gn.Coincs.Len()
	if nc == 0 {
		return []float32{0}, nil
	}
	rows, cols, _ := gn.Coincs.Shape()
	if rows != patterns.Rows(pat) || cols != patterns.Cols(pat) {
		return nil, rules.Violationf(op, "pattern shape %dx%d differs from learned shape %dx%d", patterns.Rows(pat), patterns.Cols(pat), rows, cols)
	}
	out := make([]float32, nc)
	den := 2 * gn.Params.SqSig
	for i := range out {
		d := patterns.SqDist(pat, gn.Coincs.At(i).Pattern)
		out[i] = mat32.Exp(-d / den)
	}
	return out, nil
}

// Clone returns a deep copy of the node
func (gn *Gaussian) Clone() Node {
	return &Gaussian{Params: gn.Params, St: gn.St, Coincs: gn.Coincs.Clone()}
}
