// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package col

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_hash01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hash01. spatial hash insertion and box queries")

	h := NewSpatialHash(0.5)
	h.InsertPoints([][]float64{
		{0.1, 0.1, 0.1},
		{0.9, 0.1, 0.1},
		{2.0, 2.0, 2.0},
	})
	chk.IntAssert(h.NumPoints(), 3)

	ids := h.PointsInAABB([]float64{0, 0, 0}, []float64{1, 1, 1})
	chk.IntAssert(len(ids), 2)
	found := make(map[int]bool)
	for _, id := range ids {
		found[id] = true
	}
	if !found[0] || !found[1] {
		tst.Errorf("wrong ids in box: %v\n", ids)
		return
	}

	// ids of a second set continue after the first
	h.InsertPoints([][]float64{{0.2, 0.2, 0.2}})
	ids = h.PointsInAABB([]float64{0, 0, 0}, []float64{0.4, 0.4, 0.4})
	chk.IntAssert(len(ids), 2)
	found = map[int]bool{}
	for _, id := range ids {
		found[id] = true
	}
	if !found[0] || !found[3] {
		tst.Errorf("wrong ids in box: %v\n", ids)
		return
	}

	// boundaries are inclusive
	ids = h.PointsInAABB([]float64{2, 2, 2}, []float64{2, 2, 2})
	chk.IntAssert(len(ids), 1)
	chk.IntAssert(ids[0], 2)

	// negative coordinates quantise correctly
	h.Clear()
	chk.IntAssert(h.NumPoints(), 0)
	h.InsertPoints([][]float64{
		{-0.1, -0.1, -0.1},
		{-0.9, -0.9, -0.9},
	})
	ids = h.PointsInAABB([]float64{-1, -1, -1}, []float64{0, 0, 0})
	chk.IntAssert(len(ids), 2)
	ids = h.PointsInAABB([]float64{-0.2, -0.2, -0.2}, []float64{0, 0, 0})
	chk.IntAssert(len(ids), 1)
	chk.IntAssert(ids[0], 0)
}
