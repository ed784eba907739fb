// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prl

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_prl01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("prl01. parallel for")

	n := 1000
	res := make([]int, n)
	Run(n, func(i int) {
		res[i] = i * i
	})
	for i := 0; i < n; i++ {
		if res[i] != i*i {
			tst.Errorf("index %d was not processed\n", i)
			return
		}
	}

	// empty range must not call fn
	Run(0, func(i int) {
		tst.Errorf("fn must not be called for an empty range\n")
	})
}

func Test_prl02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("prl02. ticket spin lock")

	var lock SpinLock
	counter := 0
	Run(200, func(i int) {
		for j := 0; j < 50; j++ {
			lock.Lock()
			counter++
			lock.Unlock()
		}
	})
	if counter != 200*50 {
		tst.Errorf("lost updates: counter=%d\n", counter)
		return
	}
}

func Test_prl03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("prl03. sharded concurrent map")

	m := NewMap64()
	n := 500
	Run(n, func(i int) {
		key := uint64(i % 37)
		m.Add(key, uint32(i))
	})
	for i := 0; i < n; i++ {
		if !m.Has(uint64(i%37), uint32(i)) {
			tst.Errorf("member %d is missing\n", i)
			return
		}
	}
	if m.Has(1000, 0) {
		tst.Errorf("unknown key must report false\n")
		return
	}
	m.Clear()
	if m.Has(0, 0) {
		tst.Errorf("cleared map must be empty\n")
		return
	}
}
