// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spatial

import (
	"errors"
	"math"
	"testing"

	"github.com/emer/htm/patterns"
	"github.com/emer/htm/rules"
	"golang.org/x/exp/rand"
)

// difTol is the numerical difference tolerance for comparing values
const difTol = float32(1.0e-6)

func newNode(maxDist, sigma float32, maxOut int) *Gaussian {
	pars := &Params{}
	pars.Defaults()
	pars.MaxDist = maxDist
	pars.Sigma = sigma
	if maxOut > 0 {
		pars.MaxOutSize = maxOut
	}
	return NewGaussian(pars)
}

func TestSqSigma(t *testing.T) {
	pars := &Params{}
	pars.Defaults()
	if pars.SqSigma() != 1 {
		t.Errorf("default sigma^2: got %v, want 1", pars.SqSigma())
	}
	pars.MaxDist = 4
	if pars.SqSigma() != 4 {
		t.Errorf("sigma^2 from MaxDist: got %v, want 4", pars.SqSigma())
	}
	pars.Sigma = 3
	if pars.SqSigma() != 9 {
		t.Errorf("sigma^2 from Sigma: got %v, want 9", pars.SqSigma())
	}
}

func TestLearnSame(t *testing.T) {
	nd := newNode(0, 0, 0)
	a := patterns.FromRows([][]float32{{1, 0, 1}, {0, 1, 0}})
	for i := 0; i < 2; i++ {
		if err := nd.Learn(a); err != nil {
			t.Fatal(err)
		}
	}
	if nd.Coincs.Len() != 1 || nd.Coincs.At(0).Freq != 2 {
		t.Errorf("A twice: len %d freq %v, want 1 and 2", nd.Coincs.Len(), nd.Coincs.At(0).Freq)
	}
}

func TestLearnDistinct(t *testing.T) {
	nd := newNode(0, 0, 0)
	a := patterns.FromRows([][]float32{{1, 0}, {0, 1}})
	b := patterns.FromRows([][]float32{{0, 1}, {1, 0}})
	nd.Learn(a)
	nd.Learn(b)
	if nd.Coincs.Len() != 2 {
		t.Fatalf("A then B: len %d, want 2", nd.Coincs.Len())
	}
	for i := 0; i < 2; i++ {
		if nd.Coincs.At(i).Freq != 1 {
			t.Errorf("coinc %d freq: got %v, want 1", i, nd.Coincs.At(i).Freq)
		}
	}
}

func TestLearnLargeThreshold(t *testing.T) {
	nd := newNode(1e9, 0, 0)
	rnd := rand.New(rand.NewSource(42))
	const n = 20
	for i := 0; i < n; i++ {
		pat := patterns.New(4, 4)
		for j := range pat.Values {
			pat.Values[j] = float32(rnd.Float64()) + 0.1
		}
		if err := nd.Learn(pat); err != nil {
			t.Fatal(err)
		}
	}
	if nd.Coincs.Len() != 1 || nd.Coincs.At(0).Freq != n {
		t.Errorf("large threshold: len %d freq %v, want 1 and %d", nd.Coincs.Len(), nd.Coincs.At(0).Freq, n)
	}
}

func TestLearnBlank(t *testing.T) {
	nd := newNode(0, 0, 0)
	if err := nd.Learn(patterns.New(3, 3)); err != nil {
		t.Errorf("blank learn should not fail: %v", err)
	}
	nd.Learn(patterns.Filled(3, 3, 1))
	if err := nd.Learn(patterns.New(5, 5)); err != nil {
		t.Errorf("blank learn with another shape should not fail: %v", err)
	}
	if nd.Coincs.Len() != 1 {
		t.Errorf("blank patterns must not be learned: len %d", nd.Coincs.Len())
	}
}

func TestLearnShapeMismatch(t *testing.T) {
	nd := newNode(0, 0, 0)
	nd.Learn(patterns.Filled(3, 3, 1))
	err := nd.Learn(patterns.Filled(3, 4, 1))
	if !errors.Is(err, rules.ErrViolation) {
		t.Errorf("shape mismatch: got %v, want Violation", err)
	}
	_, err = nd.Infer(patterns.Filled(2, 2, 1))
	if !errors.Is(err, rules.ErrViolation) {
		t.Errorf("infer shape mismatch: got %v, want Violation", err)
	}
}

func TestLearnAfterInfer(t *testing.T) {
	pat := patterns.Filled(2, 2, 1)
	nd := newNode(0, 0, 0)
	nd.Learn(pat)
	if _, err := nd.Infer(pat); err != nil {
		t.Fatal(err)
	}
	if nd.State() != FlashInference {
		t.Errorf("state after Infer: %v", nd.State())
	}
	if err := nd.Learn(pat); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("learn after Infer: got %v, want Violation", err)
	}

	nd = newNode(0, 0, 0)
	if _, err := nd.TimeInfer(pat); err != nil {
		t.Fatal(err)
	}
	if nd.State() != TimeBasedInference {
		t.Errorf("state after TimeInfer: %v", nd.State())
	}
	if err := nd.Learn(pat); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("learn after TimeInfer: got %v, want Violation", err)
	}
}

func TestInferModeSwitch(t *testing.T) {
	pat := patterns.Filled(2, 2, 1)
	nd := newNode(0, 0, 0)
	nd.Learn(pat)
	modes := []NodeStates{TimeBasedInference, FlashInference, FlashInference, TimeBasedInference}
	for i, md := range modes {
		var out []float32
		var err error
		if md == FlashInference {
			out, err = nd.Infer(pat)
		} else {
			out, err = nd.TimeInfer(pat)
		}
		if err != nil {
			t.Fatal(err)
		}
		if nd.State() != md {
			t.Errorf("call %d: state %v, want %v", i, nd.State(), md)
		}
		if len(out) != 1 || out[0] != 1 {
			t.Errorf("call %d: output %v, want [1]", i, out)
		}
	}
	if err := nd.Learn(pat); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("learn after inference: got %v, want Violation", err)
	}
}

func TestInferEmpty(t *testing.T) {
	nd := newNode(0, 0, 0)
	out, err := nd.Infer(patterns.Filled(2, 2, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != 0 {
		t.Errorf("empty infer: got %v, want [0]", out)
	}
}

func TestInferValues(t *testing.T) {
	// ones and twos are 25 apart in squared distance
	ones := patterns.Filled(5, 5, 1)
	twos := patterns.Filled(5, 5, 2)
	nd := newNode(0, 0, 0)
	nd.Learn(ones)
	nd.Learn(twos)
	out, err := nd.Infer(ones)
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{1, float32(math.Exp(-25.0 / 2))}
	for i := range want {
		if dif := out[i] - want[i]; dif > difTol || dif < -difTol {
			t.Errorf("out[%d]: got %v, want %v", i, out[i], want[i])
		}
	}

	// threshold 25 merges twos into ones
	nd = newNode(25, 0, 0)
	nd.Learn(ones)
	nd.Learn(twos)
	if nd.Coincs.Len() != 1 || nd.Coincs.At(0).Freq != 2 {
		t.Fatalf("threshold 25: len %d, want 1", nd.Coincs.Len())
	}
	out, _ = nd.TimeInfer(twos)
	wt := float32(math.Exp(-25.0 / 50))
	if dif := out[0] - wt; dif > difTol || dif < -difTol {
		t.Errorf("threshold 25 infer: got %v, want %v", out[0], wt)
	}

	// threshold just below 25 keeps them apart
	nd = newNode(24.9, 0, 0)
	nd.Learn(ones)
	nd.Learn(twos)
	if nd.Coincs.Len() != 2 {
		t.Errorf("threshold 24.9: len %d, want 2", nd.Coincs.Len())
	}
}

func TestCapacity(t *testing.T) {
	nd := newNode(0, 0, 3)
	for i := 1; i <= 5; i++ {
		nd.Learn(patterns.Filled(2, 2, float32(i)))
	}
	if nd.Coincs.Len() != 3 {
		t.Fatalf("capacity: len %d, want 3", nd.Coincs.Len())
	}
	nd.Learn(patterns.Filled(2, 2, 2))
	if nd.Coincs.At(1).Freq != 2 {
		t.Errorf("existing coinc at capacity should still be learned: freq %v", nd.Coincs.At(1).Freq)
	}
}

func TestClone(t *testing.T) {
	nd := newNode(0, 0, 0)
	nd.Learn(patterns.Filled(2, 2, 1))
	cl := nd.Clone()
	cl.Learn(patterns.Filled(2, 2, 2))
	if nd.Coincs.Len() != 1 || cl.Coincidences().Len() != 2 {
		t.Errorf("clone not independent: %d %d", nd.Coincs.Len(), cl.Coincidences().Len())
	}
	cl.Infer(patterns.Filled(2, 2, 1))
	if nd.State() != Learning {
		t.Errorf("clone inference changed original state: %v", nd.State())
	}
}
