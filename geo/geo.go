// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geo provides the geometry contract shared by the spatial index and
// the collision detection layer: point sets, surface meshes, tetrahedral
// meshes and analytical shapes, all identified by a stable process-wide index
package geo

import "sync/atomic"

// Kind defines the type of a geometry
type Kind int

// geometry kinds
const (
	KindPointSet Kind = iota
	KindSurfaceMesh
	KindTetMesh
	KindPlane
	KindSphere
	KindCapsule
	KindCylinder
	KindBox
)

// Geometry is the uniform interface to all geometric objects handled by the
// collision core. The global index uniquely identifies an instance for its
// lifetime and is the key used for collision-pair registration.
type Geometry interface {
	Index() uint32                   // stable global index
	Kind() Kind                      // kind of geometry
	BoundingBox() (lo, hi []float64) // tight axis-aligned bounding box
}

// numGeometries counts all geometries ever created in this process
var numGeometries uint32

// NewIndex returns the next global geometry index. Indices are never reused.
func NewIndex() uint32 {
	return atomic.AddUint32(&numGeometries, 1) - 1
}
