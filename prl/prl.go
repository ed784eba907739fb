// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package prl implements the in-process parallel utilities used by the
// spatial index and the collision pipeline: a parallel-for over index
// ranges, a ticket spin lock and a sharded concurrent map
package prl

import (
	"runtime"
	"sync"
)

// NumWorkers sets the number of worker goroutines used by Run. Zero or
// negative means one worker per available CPU.
var NumWorkers int

// Run calls fn(i) for every 0 ≤ i < n, partitioning the range into
// contiguous chunks processed by worker goroutines. fn must be safe for
// concurrent invocation on distinct indices.
func Run(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	nw := NumWorkers
	if nw <= 0 {
		nw = runtime.GOMAXPROCS(0)
	}
	if nw > n {
		nw = n
	}
	if nw == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	chunk := (n + nw - 1) / nw
	var wg sync.WaitGroup
	for w := 0; w < nw; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}
