// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tiled

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/emer/etable/etensor"
	"github.com/emer/htm/patterns"
	"github.com/emer/htm/rules"
	"github.com/emer/htm/spatial"
	"golang.org/x/exp/rand"
)

// difTol is the numerical difference tolerance for comparing values
const difTol = float32(1.0e-6)

func TestSpansTile(t *testing.T) {
	for _, tc := range []struct{ n, k int }{{12, 3}, {10, 5}, {8, 1}, {9, 9}} {
		sps := Spans(tc.n, tc.k, 0)
		if len(sps) != tc.k {
			t.Fatalf("n %d k %d: got %d spans", tc.n, tc.k, len(sps))
		}
		if sps[0].St != 0 || sps[tc.k-1].Ed != tc.n {
			t.Errorf("n %d k %d: spans do not cover input: %v", tc.n, tc.k, sps)
		}
		for i, sp := range sps {
			if sp.Len() != tc.n/tc.k {
				t.Errorf("n %d k %d: span %d len %d, want %d", tc.n, tc.k, i, sp.Len(), tc.n/tc.k)
			}
			if i > 0 && sp.St != sps[i-1].Ed {
				t.Errorf("n %d k %d: gap or overlap at span %d: %v", tc.n, tc.k, i, sps)
			}
		}
	}
}

func TestSpansRounding(t *testing.T) {
	// 2.5 rounds to even: [0, 2) and [2, 5)
	sps := Spans(5, 2, 0)
	want := []Span{{0, 2}, {2, 5}}
	for i := range want {
		if sps[i] != want[i] {
			t.Errorf("Spans(5, 2): got %v, want %v", sps, want)
			break
		}
	}
	sps = Spans(10, 3, 0)
	want = []Span{{0, 3}, {3, 7}, {7, 10}}
	for i := range want {
		if sps[i] != want[i] {
			t.Errorf("Spans(10, 3): got %v, want %v", sps, want)
			break
		}
	}
	// w = 6.5 and d = 3.5 land exactly on half-way boundaries
	sps = Spans(10, 2, 0.3)
	want = []Span{{0, 6}, {4, 10}}
	for i := range want {
		if sps[i] != want[i] {
			t.Errorf("Spans(10, 2, 0.3): got %v, want %v", sps, want)
			break
		}
	}
	// full coverage: every field is the whole axis
	for _, sp := range Spans(7, 3, 1) {
		if sp.St != 0 || sp.Ed != 7 {
			t.Errorf("Spans(7, 3, 1): got %v", sp)
		}
	}
}

func TestSpansOverlap(t *testing.T) {
	// 10 cells, 3 nodes, 0.5 coverage: w = 10/3 + 0.5*(20/3) = 6.67, d = 1.67
	sps := Spans(10, 3, 0.5)
	want := []Span{{0, 7}, {2, 8}, {3, 10}}
	for i := range want {
		if sps[i] != want[i] {
			t.Errorf("Spans(10, 3, 0.5): got %v, want %v", sps, want)
			break
		}
	}
}

func newLayer(h, w int, clone bool, nthr int) *Layer {
	pars := &Params{}
	pars.Defaults()
	pars.Height = h
	pars.Width = w
	pars.Clone = clone
	pars.MaxNodeOutSize = 8
	pars.NThreads = nthr
	return NewLayer("Test", pars, nil)
}

func randPattern(rnd *rand.Rand, rows, cols int) *etensor.Float32 {
	pat := patterns.New(rows, cols)
	for i := range pat.Values {
		if rnd.Intn(3) == 0 {
			pat.Values[i] = 1
		}
	}
	return pat
}

func TestSubPattern(t *testing.T) {
	ly := newLayer(2, 2, false, 1)
	defer ly.Close()
	ly.Params.Coverage = 0.5
	in := patterns.New(4, 6)
	for i := range in.Values {
		in.Values[i] = float32(i)
	}
	// rows: w = 2 + 0.5*2 = 3, d = 1 -> [0,3) [1,4); cols: w = 4.5, d = 1.5 -> [0,4) [2,6)
	sub, err := ly.SubPattern(1, 1, in)
	if err != nil {
		t.Fatal(err)
	}
	if patterns.Size(sub) != (image.Point{X: 4, Y: 3}) {
		t.Fatalf("SubPattern size: got %v", patterns.Size(sub))
	}
	if sub.Value([]int{0, 0}) != in.Value([]int{1, 2}) {
		t.Errorf("SubPattern origin: got %v, want %v", sub.Value([]int{0, 0}), in.Value([]int{1, 2}))
	}
	sub0, _ := ly.SubPattern(0, 0, in)
	if patterns.Size(sub0) != (image.Point{X: 4, Y: 3}) || sub0.Value([]int{2, 3}) != in.Value([]int{2, 3}) {
		t.Errorf("SubPattern(0,0): size %v", patterns.Size(sub0))
	}
}

func TestLearnAfterTrained(t *testing.T) {
	ly := newLayer(2, 2, false, 2)
	defer ly.Close()
	in := patterns.Filled(4, 4, 1)
	if err := ly.Learn(in); err != nil {
		t.Fatal(err)
	}
	if _, err := ly.Infer(in); err != nil {
		t.Fatal(err)
	}
	if ly.St != Trained {
		t.Errorf("state after Infer: %v", ly.St)
	}
	if err := ly.Learn(in); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("learn after trained: got %v, want Violation", err)
	}
}

func TestOutputLayout(t *testing.T) {
	ly := newLayer(2, 3, false, 4)
	defer ly.Close()
	rnd := rand.New(rand.NewSource(1))
	var pats []*etensor.Float32
	for i := 0; i < 5; i++ {
		pats = append(pats, randPattern(rnd, 6, 6))
		if err := ly.Learn(pats[i]); err != nil {
			t.Fatal(err)
		}
	}
	out, err := ly.Infer(pats[2])
	if err != nil {
		t.Fatal(err)
	}
	mo := ly.Params.MaxNodeOutSize
	if out.Dim(0) != 2 || out.Dim(1) != 3*mo {
		t.Fatalf("output shape: %v", out.Shapes())
	}
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			nd := ly.Node(row, col)
			sub, _ := ly.SubPattern(row, col, pats[2])
			vec, _ := nd.Infer(sub)
			for i := 0; i < mo; i++ {
				want := float32(0)
				if i < len(vec) {
					want = vec[i]
				}
				got := out.Value([]int{row, col*mo + i})
				if dif := got - want; dif > difTol || dif < -difTol {
					t.Errorf("out[%d, %d*%d+%d]: got %v, want %v", row, col, mo, i, got, want)
				}
			}
		}
	}
}

func TestThreadsMatchSerial(t *testing.T) {
	ser := newLayer(3, 3, false, 1)
	par := newLayer(3, 3, false, 4)
	defer ser.Close()
	defer par.Close()
	rnd := rand.New(rand.NewSource(2))
	var pats []*etensor.Float32
	for i := 0; i < 10; i++ {
		pats = append(pats, randPattern(rnd, 9, 9))
		ser.Learn(pats[i])
		par.Learn(pats[i])
	}
	if ser.NCoincs() != par.NCoincs() {
		t.Errorf("NCoincs: serial %d, parallel %d", ser.NCoincs(), par.NCoincs())
	}
	so, _ := ser.Infer(pats[0])
	po, _ := par.Infer(pats[0])
	for i, v := range so.Values {
		if po.Values[i] != v {
			t.Fatalf("parallel output differs at %d: %v vs %v", i, po.Values[i], v)
		}
	}
}

func TestCloneMode(t *testing.T) {
	ly := newLayer(3, 3, true, 2)
	defer ly.Close()
	rnd := rand.New(rand.NewSource(3))
	proto := spatial.NewGaussian(&ly.Params.Node)
	var pats []*etensor.Float32
	for i := 0; i < 8; i++ {
		pats = append(pats, randPattern(rnd, 9, 9))
		if err := ly.Learn(pats[i]); err != nil {
			t.Fatal(err)
		}
		sub, _ := ly.SubPattern(1, 1, pats[i])
		proto.Learn(sub)
	}
	if ly.Nodes != nil {
		t.Fatalf("clone mode grid must not exist before inference")
	}
	if ly.NCoincs() != proto.Coincidences().Len() {
		t.Errorf("prototype coincs: got %d, want %d", ly.NCoincs(), proto.Coincidences().Len())
	}
	out, err := ly.Infer(pats[4])
	if err != nil {
		t.Fatal(err)
	}
	if len(ly.Nodes) != 9 {
		t.Fatalf("clone grid: got %d nodes", len(ly.Nodes))
	}
	mo := ly.Params.MaxNodeOutSize
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			cp := proto.Clone()
			sub, _ := ly.SubPattern(row, col, pats[4])
			vec, _ := cp.Infer(sub)
			for i := 0; i < len(vec) && i < mo; i++ {
				got := out.Value([]int{row, col*mo + i})
				if dif := got - vec[i]; dif > difTol || dif < -difTol {
					t.Errorf("clone out[%d, %d]: got %v, want %v", row, col*mo+i, got, vec[i])
				}
			}
		}
	}
	if ly.Nodes[0] == ly.Nodes[1] || ly.Nodes[0].Coincidences() == ly.Nodes[1].Coincidences() {
		t.Errorf("clones must be independent")
	}
}

func TestInputTooSmall(t *testing.T) {
	ly := newLayer(4, 4, false, 1)
	defer ly.Close()
	if err := ly.Learn(patterns.Filled(3, 8, 1)); !errors.Is(err, rules.ErrViolation) {
		t.Errorf("input smaller than grid: got %v, want Violation", err)
	}
}

func TestReports(t *testing.T) {
	ly := newLayer(2, 2, false, 2)
	defer ly.Close()
	ly.Learn(patterns.Filled(4, 4, 1))
	rep := ly.SizeReport()
	if !strings.Contains(rep, "Coincs: 4") {
		t.Errorf("SizeReport: %s", rep)
	}
	if ft := ly.FunTimes["Learn"]; ft == nil || ft.N != 1 {
		t.Errorf("Learn function timer not recorded")
	}
}
