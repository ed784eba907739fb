// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oct

import "github.com/cpmech/gocol/geo"

// PrimKind is the type of primitive stored in the octree. The values are
// contiguous and used as array indices.
type PrimKind int

// primitive kinds
const (
	KindPoint PrimKind = iota
	KindTriangle
	KindAnalytic
	NumPrimKinds
)

// Primitive describes one indexed cell of a geometry: a point, a triangle,
// or a whole analytical shape treated as one cell. Primitives are allocated
// in bulk when their geometry is added and are linked into the per-kind
// intrusive list of the node currently holding them.
type Primitive struct {
	Geom    geo.Geometry // owning geometry
	GeomIdx uint32       // global index of the owning geometry
	Idx     int          // index of the cell within the owning geometry

	Pos    []float64 // cached world position (point primitives only)
	Lo, Hi []float64 // cached AABB corners (non-point primitives only)

	node  *Node      // node currently holding this primitive
	valid bool       // false if the primitive must be reinserted (see update)
	next  *Primitive // next in the node's per-kind list
}

// Node returns the node currently holding this primitive
func (o *Primitive) Node() *Node { return o.node }

// Next returns the next primitive in the node's per-kind list
func (o *Primitive) Next() *Primitive { return o.next }

// Valid tells whether the primitive is correctly placed in its node
func (o *Primitive) Valid() bool { return o.valid }
