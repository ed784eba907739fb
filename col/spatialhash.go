// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package col

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// hashEntry is one point stored in the spatial hash
type hashEntry struct {
	id int
	x  []float64
}

// SpatialHash is a separate-chaining hash grid over points, keyed by
// cell-quantised coordinates. Points inserted by successive InsertPoints
// calls get consecutive ids, so a second point set is automatically offset
// by the size of the first.
type SpatialHash struct {
	CellSize float64
	buckets  map[int64][]hashEntry
	npts     int
}

// NewSpatialHash returns a new spatial hash with the given cell size
func NewSpatialHash(cellSize float64) (o *SpatialHash) {
	if cellSize <= 0 {
		chk.Panic("spatial hash cell size must be positive. %g is invalid", cellSize)
	}
	return &SpatialHash{CellSize: cellSize, buckets: make(map[int64][]hashEntry)}
}

// Clear empties the hash and resets the id counter
func (o *SpatialHash) Clear() {
	o.buckets = make(map[int64][]hashEntry)
	o.npts = 0
}

// NumPoints returns the number of points inserted so far
func (o *SpatialHash) NumPoints() int { return o.npts }

// cellKey hashes the quantised cell coordinates of x
func (o *SpatialHash) cellKey(x []float64) int64 {
	ix := int64(math.Floor(x[0] / o.CellSize))
	iy := int64(math.Floor(x[1] / o.CellSize))
	iz := int64(math.Floor(x[2] / o.CellSize))
	return ix*73856093 ^ iy*19349663 ^ iz*83492791
}

// InsertPoints adds all points of X, assigning them ids continuing from the
// previous insertion
func (o *SpatialHash) InsertPoints(X [][]float64) {
	for _, x := range X {
		key := o.cellKey(x)
		o.buckets[key] = append(o.buckets[key], hashEntry{o.npts, x})
		o.npts++
	}
}

// PointsInAABB returns the ids of all points inside the box (lo,hi),
// boundaries included
func (o *SpatialHash) PointsInAABB(lo, hi []float64) (ids []int) {
	var cell [3]float64
	visited := make(map[int64]bool) // distinct cells may collide on one key
	ix0 := int64(math.Floor(lo[0] / o.CellSize))
	ix1 := int64(math.Floor(hi[0] / o.CellSize))
	iy0 := int64(math.Floor(lo[1] / o.CellSize))
	iy1 := int64(math.Floor(hi[1] / o.CellSize))
	iz0 := int64(math.Floor(lo[2] / o.CellSize))
	iz1 := int64(math.Floor(hi[2] / o.CellSize))
	for ix := ix0; ix <= ix1; ix++ {
		for iy := iy0; iy <= iy1; iy++ {
			for iz := iz0; iz <= iz1; iz++ {
				cell[0] = (float64(ix) + 0.5) * o.CellSize
				cell[1] = (float64(iy) + 0.5) * o.CellSize
				cell[2] = (float64(iz) + 0.5) * o.CellSize
				key := o.cellKey(cell[:])
				if visited[key] {
					continue
				}
				visited[key] = true
				for _, e := range o.buckets[key] {
					if e.x[0] >= lo[0] && e.x[0] <= hi[0] &&
						e.x[1] >= lo[1] && e.x[1] <= hi[1] &&
						e.x[2] >= lo[2] && e.x[2] <= hi[2] {
						ids = append(ids, e.id)
					}
				}
			}
		}
	}
	return
}
