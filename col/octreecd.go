// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package col

import (
	"github.com/cpmech/gocol/geo"
	"github.com/cpmech/gocol/oct"
	"github.com/cpmech/gocol/prl"
	"github.com/cpmech/gosl/chk"
)

// pairInfo associates one registered collision pair with its algorithm tag
// and collision buffer
type pairInfo struct {
	typ  Type
	data *Data
	a, b geo.Geometry
}

// OctreeCD is the octree-routed broad phase: a loose octree plus the set of
// registered collision pairs. Each detect call walks every indexed primitive
// against the subtree and dispatches the narrow phase for residents whose
// geometry pair is registered.
type OctreeCD struct {
	*oct.Octree

	pairs map[uint64]*pairInfo // keyed by (idxA<<32)|idxB
	order []*pairInfo          // in registration order, for post-processing
	kinds uint32               // bitmask of primitive kinds with registered pairs

	// (vertex,point-geometry) pairs found outside a mesh during this step
	invalid *prl.Map64
}

// NewOctreeCD returns a new octree-based collision detector
func NewOctreeCD(center []float64, width, minWidth, minWidthRatio float64, name string) (o *OctreeCD) {
	return &OctreeCD{
		Octree:  oct.New(center, width, minWidth, minWidthRatio, name),
		pairs:   make(map[uint64]*pairInfo),
		invalid: prl.NewMap64(),
	}
}

// Clear removes all collision pairs in addition to clearing the octree
func (o *OctreeCD) Clear() {
	o.Octree.Clear()
	o.pairs = make(map[uint64]*pairInfo)
	o.order = nil
	o.kinds = 0
	o.invalid.Clear()
}

// pairHash encodes an ordered pair of geometry indices into 64 bits
func pairHash(idx1, idx2 uint32) uint64 {
	return uint64(idx1)<<32 | uint64(idx2)
}

// HasPair tells whether the ordered pair of geometry indices is registered
func (o *OctreeCD) HasPair(idx1, idx2 uint32) bool {
	_, ok := o.pairs[pairHash(idx1, idx2)]
	return ok
}

// NumPairs returns the number of registered collision pairs
func (o *OctreeCD) NumPairs() int { return len(o.pairs) }

// AddPair registers a collision pair with its algorithm tag and collision
// buffer. The geometries must have been added to the octree already.
// Registering the same pair twice is fatal.
func (o *OctreeCD) AddPair(a, b geo.Geometry, typ Type, data *Data) {
	key := pairHash(a.Index(), b.Index())
	if _, ok := o.pairs[key]; ok {
		chk.Panic("collision pair (%d,%d) has previously been added", a.Index(), b.Index())
	}
	info := &pairInfo{typ, data, a, b}
	o.pairs[key] = info
	o.order = append(o.order, info)

	for _, g := range []geo.Geometry{a, b} {
		switch g.Kind() {
		case geo.KindPointSet:
			o.kinds |= 1 << uint(oct.KindPoint)
		case geo.KindSurfaceMesh:
			o.kinds |= 1 << uint(oct.KindTriangle)
		default:
			o.kinds |= 1 << uint(oct.KindAnalytic)
		}
	}
}

// PairData returns the collision buffer of a registered pair, failing fast
// if the pair does not exist
func (o *OctreeCD) PairData(idx1, idx2 uint32) *Data {
	info, ok := o.pairs[pairHash(idx1, idx2)]
	if !ok {
		chk.Panic("collision pair (%d,%d) does not exist", idx1, idx2)
	}
	return info.data
}

// pairOf returns the registration of the ordered pair, or nil
func (o *OctreeCD) pairOf(idx1, idx2 uint32) *pairInfo {
	return o.pairs[pairHash(idx1, idx2)]
}

// DetectCollision enumerates candidate pairs through the octree and runs the
// narrow phase, filling the per-pair collision buffers. The octree must be
// up to date (see Update).
func (o *OctreeCD) DetectCollision() {
	for _, info := range o.order {
		info.data.ClearAll()
	}
	o.invalid.Clear()

	for t := oct.PrimKind(0); t < oct.NumPrimKinds; t++ {
		if o.kinds&(uint32(1)<<uint(t)) == 0 {
			continue
		}
		ps := o.Primitives(t)
		kind := t
		prl.Run(len(ps), func(i int) {
			p := ps[i]
			if kind == oct.KindPoint {
				o.checkPointWithSubtree(o.Root(), p)
				return
			}
			o.checkNonPointWithSubtree(o.Root(), p)
		})
	}

	o.cleanupPointMeshPairs()
}

// checkPointWithSubtree tests a point primitive against all non-point
// residents of the subtree nodes that loosely contain it
func (o *OctreeCD) checkPointWithSubtree(node *oct.Node, p *oct.Primitive) {
	if !node.LooselyContains(p.Pos) {
		return
	}
	if !node.IsLeaf() {
		for i := 0; i < 8; i++ {
			o.checkPointWithSubtree(node.Child(i), p)
		}
	}
	for t := oct.KindTriangle; t <= oct.KindAnalytic; t++ {
		for q := node.Head(t); q != nil; q = q.Next() {
			if q == p {
				continue
			}
			if !o.pointStillColliding(p.Idx, p.GeomIdx, q.GeomIdx) {
				continue
			}
			info := o.pairOf(p.GeomIdx, q.GeomIdx)
			if info == nil {
				continue
			}
			o.checkPointWithPrimitive(p, q, info)
		}
	}
}

// checkNonPointWithSubtree tests a non-point primitive against the non-point
// residents of the subtree nodes overlapping its box. Point residents are
// handled from the point side.
func (o *OctreeCD) checkNonPointWithSubtree(node *oct.Node, p *oct.Primitive) {
	if !node.LooselyOverlaps(p.Lo, p.Hi) {
		return
	}
	if !node.IsLeaf() {
		for i := 0; i < 8; i++ {
			o.checkNonPointWithSubtree(node.Child(i), p)
		}
	}
	for t := oct.KindTriangle; t <= oct.KindAnalytic; t++ {
		for q := node.Head(t); q != nil; q = q.Next() {
			if q == p {
				continue
			}
			info := o.pairOf(p.GeomIdx, q.GeomIdx)
			if info == nil {
				continue
			}
			if !TestAABBToAABB(p.Lo, p.Hi, q.Lo, q.Hi) {
				continue
			}
			o.checkNonPointWithPrimitive(p, q, info)
		}
	}
}

// checkPointWithPrimitive dispatches the narrow-phase kernel of a point
// primitive against a resident primitive
func (o *OctreeCD) checkPointWithPrimitive(p, q *oct.Primitive, info *pairInfo) {
	switch info.typ {
	case TypePointSetToSurfaceMesh:
		if !PointToTriangle(p.Pos, p.Idx, q.Idx, asSurfaceMesh(q.Geom), info.data) {
			o.setPointMeshInvalid(p.Idx, p.GeomIdx, q.GeomIdx)
		}
	case TypePointSetToSphere:
		PointToSphere(p.Pos, p.Idx, asSphere(q.Geom), info.data)
	case TypePointSetToPlane:
		PointToPlane(p.Pos, p.Idx, asPlane(q.Geom), info.data)
	case TypePointSetToCapsule:
		PointToCapsule(p.Pos, p.Idx, asCapsule(q.Geom), info.data)
	case TypePointSetToSpherePicking:
		PointToSpherePicking(p.Pos, p.Idx, asSphere(q.Geom), info.data)
	default:
		chk.Panic("unsupported collision type %d for point primitives", info.typ)
	}
}

// checkNonPointWithPrimitive dispatches the narrow-phase kernel of a
// non-point primitive against a resident primitive
func (o *OctreeCD) checkNonPointWithPrimitive(p, q *oct.Primitive, info *pairInfo) {
	switch info.typ {
	case TypeSurfaceMeshToSurfaceMesh:
		TriangleToTriangle(p.Idx, asSurfaceMesh(p.Geom), q.Idx, asSurfaceMesh(q.Geom), info.data)
	case TypeUnidirectionalPlaneToSphere:
		UnidirectionalPlaneToSphere(asPlane(p.Geom), asSphere(q.Geom), info.data)
	case TypeBidirectionalPlaneToSphere:
		BidirectionalPlaneToSphere(asPlane(p.Geom), asSphere(q.Geom), info.data)
	case TypeSphereToCylinder:
		SphereToCylinder(asSphere(p.Geom), asCylinder(q.Geom), info.data)
	case TypeSphereToSphere:
		SphereToSphere(asSphere(p.Geom), asSphere(q.Geom), info.data)
	default:
		chk.Panic("unsupported collision type %d for non-point primitives", info.typ)
	}
}

// pointStillColliding tells whether the (vertex, point-geometry) pair has
// not been found outside the given mesh during this step
func (o *OctreeCD) pointStillColliding(primIdx int, geomIdx, otherGeomIdx uint32) bool {
	key := uint64(uint32(primIdx))<<32 | uint64(geomIdx)
	return !o.invalid.Has(key, otherGeomIdx)
}

// setPointMeshInvalid poisons the (vertex, point-geometry) pair against the
// given mesh for the rest of this step
func (o *OctreeCD) setPointMeshInvalid(primIdx int, geomIdx, otherGeomIdx uint32) {
	key := uint64(uint32(primIdx))<<32 | uint64(geomIdx)
	o.invalid.Add(key, otherGeomIdx)
}

// cleanupPointMeshPairs post-processes every point-set/surface-mesh pair:
// the vertex-triangle contacts are sorted by vertex then closest distance,
// contacts poisoned in the validity map are dropped, and at most one contact
// per vertex survives
func (o *OctreeCD) cleanupPointMeshPairs() {
	for _, info := range o.order {
		if info.a.Kind() != geo.KindPointSet || info.b.Kind() != geo.KindSurfaceMesh {
			continue
		}
		vt := &info.data.VT
		if vt.Len() == 0 {
			continue
		}
		vt.Sort()

		geomIdxPoints := info.a.Index()
		geomIdxMesh := info.b.Index()
		write := 0
		if o.pointStillColliding(vt.At(0).VertIdx, geomIdxPoints, geomIdxMesh) {
			write = 1
		}
		for read := 1; read < vt.Len(); read++ {
			e := vt.At(read)
			if o.pointStillColliding(e.VertIdx, geomIdxPoints, geomIdxMesh) &&
				(write == 0 || vt.At(write-1).VertIdx != e.VertIdx) {
				if read != write {
					vt.Set(write, e)
				}
				write++
			}
		}
		vt.Truncate(write)
	}
}
