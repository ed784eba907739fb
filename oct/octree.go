// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package oct implements a loose octree: a hierarchical spatial index with
// 8-way subdivision where each node has a loose boundary twice as big as its
// tight boundary. Primitives (points, triangles, analytical shapes) from
// many geometries are indexed together and the tree supports bulk build and
// incremental per-step update.
package oct

import (
	"github.com/cpmech/gocol/geo"
	"github.com/cpmech/gocol/prl"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Octree is the loose spatial index. During an update a primitive that left
// its node moves up to the lowest ancestor that tightly contains it, and is
// then reinserted top-down to the lowest node that loosely contains it.
type Octree struct {
	Name string // name of the tree, used in messages

	center        []float64 // centre of the root node
	width         float64   // width of the root node
	minWidth0     float64   // configured minimum node width
	minWidth      float64   // effective minimum node width (see Build)
	minWidthRatio float64   // scales the smallest non-point extent into a min width
	maxDepth      int       // derived from width and minWidth

	root *Node

	// memory pool of 8-node blocks
	poolHead     *nodeBlock
	numAvail     int // blocks available in the pool
	numAllocated int // total nodes ever allocated, root included
	poolLock     prl.SpinLock
	activeBlocks map[*nodeBlock]bool // blocks currently hanging from the root

	primitives [NumPrimKinds][]*Primitive
	geomSet    map[uint32]bool // indices of the registered geometries

	// configuration
	AlwaysRebuild bool // rebuild from scratch on every Update
	Verbose       bool // print build summaries

	// debug-render controls
	MaxLevelDebugRender int  // nodes deeper than this are not exported
	DrawNonEmptyParent  bool // export internal nodes without primitives too

	complete bool // set after the first successful Build
}

// New returns a new loose octree with the given root centre and width.
// minWidth bounds the node subdivision; if only non-point primitives are
// indexed, an alternative minimum is derived from their sizes scaled by
// minWidthRatio (see Build).
func New(center []float64, width, minWidth, minWidthRatio float64, name string) (o *Octree) {
	if width <= 0 || minWidth <= 0 {
		chk.Panic("octree width and minWidth must be positive. width=%g, minWidth=%g is invalid", width, minWidth)
	}
	o = &Octree{
		Name:                name,
		center:              []float64{center[0], center[1], center[2]},
		width:               width,
		minWidth0:           minWidth,
		minWidth:            minWidth,
		minWidthRatio:       minWidthRatio,
		activeBlocks:        make(map[*nodeBlock]bool),
		geomSet:             make(map[uint32]bool),
		MaxLevelDebugRender: 1<<31 - 1,
		DrawNonEmptyParent:  true,
	}
	o.root = new(Node)
	o.root.init(o, nil, o.center, width*0.5, 1)
	o.numAllocated = 1
	return
}

// Root returns the root node
func (o *Octree) Root() *Node { return o.root }

// Center returns the centre of the tree
func (o *Octree) Center() []float64 { return o.center }

// Width returns the width of the tree
func (o *Octree) Width() float64 { return o.width }

// MinWidth returns the effective minimum node width
func (o *Octree) MinWidth() float64 { return o.minWidth }

// MaxDepth returns the maximum depth, computed from the minimum width
func (o *Octree) MaxDepth() int { return o.maxDepth }

// Primitives returns the primitive vector of the given kind
func (o *Octree) Primitives(kind PrimKind) []*Primitive { return o.primitives[kind] }

// NumPrimitives returns the number of primitives of the given kind
func (o *Octree) NumPrimitives(kind PrimKind) int { return len(o.primitives[kind]) }

// HasGeometry tells whether the geometry with the given global index is
// registered in this tree
func (o *Octree) HasGeometry(geomIdx uint32) bool { return o.geomSet[geomIdx] }

// addGeometry registers a geometry index, failing fast on duplicates
func (o *Octree) addGeometry(geomIdx uint32) {
	if o.geomSet[geomIdx] {
		chk.Panic("geometry %d has previously been added to %q", geomIdx, o.Name)
	}
	o.geomSet[geomIdx] = true
}

// AddPointSet adds all vertices of a point set as point primitives. The
// points are not populated into nodes until Build is called. Returns the
// number of new primitives.
func (o *Octree) AddPointSet(ps *geo.PointSet) int {
	o.addGeometry(ps.Index())
	n := ps.NumVerts()
	block := make([]Primitive, n)
	for i := 0; i < n; i++ {
		p := &block[i]
		p.Geom = ps
		p.GeomIdx = ps.Index()
		p.Idx = i
		p.Pos = make([]float64, 3)
		p.valid = true
		o.primitives[KindPoint] = append(o.primitives[KindPoint], p)
	}
	if o.Verbose {
		io.Pf("added %d points to %s\n", n, o.Name)
	}
	return n
}

// AddTriangleMesh adds all triangles of a surface mesh as triangle
// primitives. Returns the number of new primitives.
func (o *Octree) AddTriangleMesh(mesh *geo.SurfaceMesh) int {
	o.addGeometry(mesh.Index())
	n := mesh.NumTris()
	block := make([]Primitive, n)
	for i := 0; i < n; i++ {
		p := &block[i]
		p.Geom = mesh
		p.GeomIdx = mesh.Index()
		p.Idx = i
		p.Lo = make([]float64, 3)
		p.Hi = make([]float64, 3)
		p.valid = true
		o.primitives[KindTriangle] = append(o.primitives[KindTriangle], p)
	}
	if o.Verbose {
		io.Pf("added %d triangles to %s\n", n, o.Name)
	}
	return n
}

// AddAnalyticalGeometry adds an analytical shape (plane, sphere, capsule,
// cylinder, box) as a single primitive
func (o *Octree) AddAnalyticalGeometry(g geo.Geometry) int {
	switch g.Kind() {
	case geo.KindPointSet, geo.KindSurfaceMesh, geo.KindTetMesh:
		chk.Panic("geometry %d is not analytical", g.Index())
	}
	o.addGeometry(g.Index())
	p := new(Primitive)
	p.Geom = g
	p.GeomIdx = g.Index()
	p.Lo = make([]float64, 3)
	p.Hi = make([]float64, 3)
	p.valid = true
	o.primitives[KindAnalytic] = append(o.primitives[KindAnalytic], p)
	return 1
}

// RemoveGeometry unregisters a geometry and drops its primitives from the
// primitive vectors. The stale entries in node lists are marked invalid here
// and purged during the next update pass. Unknown indices are ignored.
func (o *Octree) RemoveGeometry(geomIdx uint32) {
	if !o.geomSet[geomIdx] {
		return
	}
	delete(o.geomSet, geomIdx)
	for t := 0; t < int(NumPrimKinds); t++ {
		kept := o.primitives[t][:0]
		for _, p := range o.primitives[t] {
			if p.GeomIdx == geomIdx {
				p.valid = false
				continue
			}
			kept = append(kept, p)
		}
		o.primitives[t] = kept
	}
}

// ClearPrimitive removes all data of the given primitive kind from the tree
// and unregisters the owning geometries
func (o *Octree) ClearPrimitive(kind PrimKind) {
	o.root.clearPrimitiveData(kind)
	for _, p := range o.primitives[kind] {
		delete(o.geomSet, p.GeomIdx)
	}
	o.primitives[kind] = nil
}

// Clear removes all primitives and geometries and returns all non-root
// nodes to the memory pool. The pool itself is kept for recycling.
func (o *Octree) Clear() {
	o.root.removeAllDescendants()
	for t := 0; t < int(NumPrimKinds); t++ {
		o.ClearPrimitive(PrimKind(t))
	}
	o.complete = false
}

// computePrimitiveBox refreshes the cached AABB of a non-point primitive
// from its owning geometry
func computePrimitiveBox(p *Primitive, kind PrimKind) {
	if kind == KindTriangle {
		mesh := p.Geom.(*geo.SurfaceMesh)
		mesh.TriBoundingBox(p.Idx, p.Lo, p.Hi)
		return
	}
	lo, hi := p.Geom.BoundingBox()
	copy(p.Lo, lo)
	copy(p.Hi, hi)
}

// Build computes the effective minimum width and the maximum depth, then
// rebuilds the tree from scratch. With no geometry added this is a no-op
// warning.
func (o *Octree) Build() {
	if len(o.geomSet) == 0 {
		io.Pfyel("octree %q: no geometries added\n", o.Name)
		return
	}

	// derive the min width from the non-point primitives when there is no point
	o.minWidth = o.minWidth0
	if len(o.primitives[KindPoint]) == 0 &&
		(len(o.primitives[KindTriangle]) > 0 || len(o.primitives[KindAnalytic]) > 0) {
		cand := o.smallestNonPointExtent() * o.minWidthRatio
		if cand < 1e-8 {
			io.Pfyel("octree %q: primitives are too small to derive a min width\n", o.Name)
		} else if cand < o.minWidth {
			o.minWidth = cand
		}
	}

	// max depth is the largest D such that width*2^(1-D) >= minWidth
	o.maxDepth = 1
	nodeWidth := o.width
	for nodeWidth*0.5 >= o.minWidth {
		o.maxDepth++
		nodeWidth *= 0.5
	}
	o.root.maxDepth = o.maxDepth

	o.rebuild()
	o.complete = true
	if o.Verbose {
		io.Pf("octree %q built: center=%v width=%g minWidth=%g maxDepth=%d\n",
			o.Name, o.center, o.width, o.minWidth, o.maxDepth)
	}
}

// smallestNonPointExtent returns the smallest, over all non-point
// primitives, of the largest AABB extent of the primitive
func (o *Octree) smallestNonPointExtent() float64 {
	res := 1e30
	for t := KindTriangle; t <= KindAnalytic; t++ {
		for _, p := range o.primitives[t] {
			computePrimitiveBox(p, t)
			w := p.Hi[0] - p.Lo[0]
			for k := 1; k < 3; k++ {
				if p.Hi[k]-p.Lo[k] > w {
					w = p.Hi[k] - p.Lo[k]
				}
			}
			if w < res {
				res = w
			}
		}
	}
	return res
}

// Update refreshes the tree against the current geometry state: builds on
// first use, rebuilds from scratch if AlwaysRebuild is set, and otherwise
// performs the incremental update
func (o *Octree) Update() {
	if !o.complete {
		o.Build()
		return
	}
	if o.AlwaysRebuild {
		o.rebuild()
		return
	}
	o.incrementalUpdate()
}

// rebuild clears all node lists, returning child blocks to the pool, and
// reinserts every primitive from the root in parallel
func (o *Octree) rebuild() {
	o.root.removeAllDescendants()
	for t := 0; t < int(NumPrimKinds); t++ {
		o.root.clearPrimitiveData(PrimKind(t))
	}
	o.populatePoints()
	o.populateNonPoints(KindTriangle)
	o.populateNonPoints(KindAnalytic)
}

// populatePoints refreshes point positions and inserts them from the root
func (o *Octree) populatePoints() {
	ps := o.primitives[KindPoint]
	prl.Run(len(ps), func(i int) {
		p := ps[i]
		copy(p.Pos, p.Geom.(*geo.PointSet).Vert(p.Idx))
		o.root.insertPoint(p)
	})
}

// populateNonPoints refreshes bounding boxes and inserts the primitives of
// the given kind from the root
func (o *Octree) populateNonPoints(kind PrimKind) {
	ps := o.primitives[kind]
	prl.Run(len(ps), func(i int) {
		p := ps[i]
		computePrimitiveBox(p, kind)
		o.root.insertNonPoint(p, kind)
	})
}

// MaxNumPrimitivesInNodes returns the largest per-kind primitive count
// found in any active node
func (o *Octree) MaxNumPrimitivesInNodes() (res int) {
	for _, blk := range o.activeBlockList() {
		for i := 0; i < 8; i++ {
			for t := 0; t < int(NumPrimKinds); t++ {
				if blk.nodes[i].counts[t] > res {
					res = blk.nodes[i].counts[t]
				}
			}
		}
	}
	for t := 0; t < int(NumPrimKinds); t++ {
		if o.root.counts[t] > res {
			res = o.root.counts[t]
		}
	}
	return
}
