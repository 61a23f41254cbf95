// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tiled

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/emer/emergent/timer"
)

// CellFunChan is a channel that runs functions on grid cells
type CellFunChan chan func(ci int)

//////////////////////////////////////////////////////////////////////////////////////
//  Threading infrastructure

// StartThreads starts up the computation threads, which monitor the channels for work.
// Thread th owns the cells ci with ci % NThreads == th.
func (ly *Layer) StartThreads() {
	nthr := ly.NThreads
	ly.ThrChans = make([]CellFunChan, nthr)
	ly.ThrTimes = make([]timer.Time, nthr)
	for th := 0; th < nthr; th++ {
		ly.ThrChans[th] = make(CellFunChan)
	}
	if nthr <= 1 {
		return
	}
	for th := 0; th < nthr; th++ {
		go ly.ThrWorker(th) // start the worker thread for this channel
	}
}

// StopThreads stops the computation threads
func (ly *Layer) StopThreads() {
	if ly.NThreads <= 1 {
		return
	}
	for th := 0; th < ly.NThreads; th++ {
		close(ly.ThrChans[th])
	}
}

// ThrWorker is the worker function run by the worker threads
func (ly *Layer) ThrWorker(tt int) {
	ncell := ly.NCells()
	for fun := range ly.ThrChans[tt] {
		ly.ThrTimes[tt].Start()
		for ci := tt; ci < ncell; ci += ly.NThreads {
			fun(ci)
		}
		ly.ThrTimes[tt].Stop()
		ly.WaitGp.Done()
	}
}

// ThrCellFun calls function on each grid cell index, using threaded
// (go routine worker) computation if NThreads > 1 and otherwise just
// iterates over cells in the current thread.
// The function must only touch state owned by its cell.
func (ly *Layer) ThrCellFun(fun func(ci int), funame string) {
	ly.FunTimerStart(funame)
	if ly.NThreads <= 1 {
		ncell := ly.NCells()
		ly.ThrTimes[0].Start()
		for ci := 0; ci < ncell; ci++ {
			fun(ci)
		}
		ly.ThrTimes[0].Stop()
	} else {
		for th := 0; th < ly.NThreads; th++ {
			ly.WaitGp.Add(1)
			ly.ThrChans[th] <- fun
		}
		ly.WaitGp.Wait()
	}
	ly.FunTimerStop(funame)
}

// TimerReport reports the amount of time spent in each function, and in each thread
func (ly *Layer) TimerReport() {
	fmt.Printf("TimerReport: %v, NThreads: %v\tgo max procs: %d\n", ly.Nm, ly.NThreads, runtime.GOMAXPROCS(0))
	fmt.Printf("\t%13s \t%7s\t%7s\t%5s\n", "Function Name", "Secs", "Pct", "N")
	fnms := make([]string, 0, len(ly.FunTimes))
	for k := range ly.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	pcts := make([]float64, len(fnms))
	tot := 0.0
	for i, fn := range fnms {
		pcts[i] = ly.FunTimes[fn].TotalSecs()
		tot += pcts[i]
	}
	for i, fn := range fnms {
		fmt.Printf("\t%13s \t%7.3f\t%7.1f\t%5d\n", fn, pcts[i], 100*(pcts[i]/tot), ly.FunTimes[fn].N)
	}
	fmt.Printf("\t%13s \t%7.3f\n", "Total", tot)

	if ly.NThreads <= 1 {
		return
	}
	fmt.Printf("\n\tThr\tSecs\tPct\n")
	pcts = make([]float64, ly.NThreads)
	tot = 0.0
	for th := 0; th < ly.NThreads; th++ {
		pcts[th] = ly.ThrTimes[th].TotalSecs()
		tot += pcts[th]
	}
	for th := 0; th < ly.NThreads; th++ {
		fmt.Printf("\t%v \t%7.3f\t%7.1f\n", th, pcts[th], 100*(pcts[th]/tot))
	}
}

// ThrTimerReset resets the per-thread timers
func (ly *Layer) ThrTimerReset() {
	for th := range ly.ThrTimes {
		ly.ThrTimes[th].Reset()
	}
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (ly *Layer) FunTimerStart(fun string) {
	ft, ok := ly.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		ly.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (ly *Layer) FunTimerStop(fun string) {
	ft := ly.FunTimes[fun]
	ft.Stop()
}
