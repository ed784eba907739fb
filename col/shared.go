// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package col

import "github.com/cpmech/gocol/geo"

// sharedOctree is the single process-wide octree used by the octree-routed
// algorithms. It lives as long as the process; ClearSharedOctree releases
// the registered geometries and pairs but keeps the node pool.
var sharedOctree = NewOctreeCD([]float64{0, 0, 0}, 100.0, 0.1, 1.0, "sharedOctree")

// SharedOctree returns the process-wide octree so callers (e.g. the solver)
// can hold an explicit handle instead of relying on package state
func SharedOctree() *OctreeCD { return sharedOctree }

// UpdateSharedOctreeAndDetect is the per-step entry point of the
// octree-routed algorithms: it refreshes the shared octree against the
// current geometry state and then runs the broad phase, filling the
// per-pair collision buffers. With no registered pair this is a no-op.
func UpdateSharedOctreeAndDetect() {
	if sharedOctree.NumPairs() > 0 {
		sharedOctree.Update()
		sharedOctree.DetectCollision()
	}
}

// ClearSharedOctree releases all geometries and collision pairs registered
// in the shared octree
func ClearSharedOctree() {
	sharedOctree.Clear()
}

// addPairToSharedOctree registers the two geometries (if new) and the pair
// with the shared octree
func addPairToSharedOctree(a, b geo.Geometry, typ Type, data *Data) {
	add := func(g geo.Geometry) {
		if sharedOctree.HasGeometry(g.Index()) {
			return
		}
		switch gg := g.(type) {
		case *geo.SurfaceMesh:
			sharedOctree.AddTriangleMesh(gg)
		case *geo.PointSet:
			sharedOctree.AddPointSet(gg)
		default:
			sharedOctree.AddAnalyticalGeometry(g)
		}
	}
	add(a)
	add(b)
	sharedOctree.AddPair(a, b, typ, data)
}
