// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package col

import (
	"github.com/cpmech/gocol/geo"
	"github.com/cpmech/gocol/prl"
	"github.com/cpmech/gosl/chk"
)

// The direct detectors bypass the octree: each Detect call clears the
// buffer and invokes the narrow-phase kernels on the inputs. A geometry
// still missing at detect time is fatal.

// planeToSphereCD detects plane/sphere contact, one- or two-sided
type planeToSphereCD struct {
	detectorBase
	plane         *geo.Plane
	sphere        *geo.Sphere
	bidirectional bool
}

func (o *planeToSphereCD) Detect() {
	if o.plane == nil || o.sphere == nil {
		chk.Panic("missing input geometry for plane/sphere collision detection")
	}
	o.data.ClearAll()
	if o.bidirectional {
		BidirectionalPlaneToSphere(o.plane, o.sphere, o.data)
		return
	}
	UnidirectionalPlaneToSphere(o.plane, o.sphere, o.data)
}

// sphereToSphereCD detects sphere/sphere contact
type sphereToSphereCD struct {
	detectorBase
	a, b *geo.Sphere
}

func (o *sphereToSphereCD) Detect() {
	if o.a == nil || o.b == nil {
		chk.Panic("missing input geometry for sphere/sphere collision detection")
	}
	o.data.ClearAll()
	SphereToSphere(o.a, o.b, o.data)
}

// sphereToCylinderCD detects sphere/cylinder contact
type sphereToCylinderCD struct {
	detectorBase
	sphere   *geo.Sphere
	cylinder *geo.Cylinder
}

func (o *sphereToCylinderCD) Detect() {
	if o.sphere == nil || o.cylinder == nil {
		chk.Panic("missing input geometry for sphere/cylinder collision detection")
	}
	o.data.ClearAll()
	SphereToCylinder(o.sphere, o.cylinder, o.data)
}

// pointSetToSphereCD detects point-set/sphere contact, optionally in
// picking mode
type pointSetToSphereCD struct {
	detectorBase
	points  *geo.PointSet
	sphere  *geo.Sphere
	picking bool
}

func (o *pointSetToSphereCD) Detect() {
	if o.points == nil || o.sphere == nil {
		chk.Panic("missing input geometry for point-set/sphere collision detection")
	}
	o.data.ClearAll()
	prl.Run(o.points.NumVerts(), func(i int) {
		if o.picking {
			PointToSpherePicking(o.points.Vert(i), i, o.sphere, o.data)
			return
		}
		PointToSphere(o.points.Vert(i), i, o.sphere, o.data)
	})
}

// pointSetToPlaneCD detects point-set/plane contact
type pointSetToPlaneCD struct {
	detectorBase
	points *geo.PointSet
	plane  *geo.Plane
}

func (o *pointSetToPlaneCD) Detect() {
	if o.points == nil || o.plane == nil {
		chk.Panic("missing input geometry for point-set/plane collision detection")
	}
	o.data.ClearAll()
	prl.Run(o.points.NumVerts(), func(i int) {
		PointToPlane(o.points.Vert(i), i, o.plane, o.data)
	})
}

// pointSetToCapsuleCD detects point-set/capsule contact
type pointSetToCapsuleCD struct {
	detectorBase
	points  *geo.PointSet
	capsule *geo.Capsule
}

func (o *pointSetToCapsuleCD) Detect() {
	if o.points == nil || o.capsule == nil {
		chk.Panic("missing input geometry for point-set/capsule collision detection")
	}
	o.data.ClearAll()
	prl.Run(o.points.NumVerts(), func(i int) {
		PointToCapsule(o.points.Vert(i), i, o.capsule, o.data)
	})
}

// meshToMeshBruteForceCD compares every triangle pair of two surface
// meshes, without any spatial acceleration
type meshToMeshBruteForceCD struct {
	detectorBase
	a, b *geo.SurfaceMesh
}

func (o *meshToMeshBruteForceCD) Detect() {
	if o.a == nil || o.b == nil {
		chk.Panic("missing input geometry for brute-force mesh collision detection")
	}
	o.data.ClearAll()
	prl.Run(o.a.NumTris(), func(i int) {
		for j := 0; j < o.b.NumTris(); j++ {
			TriangleToTriangle(i, o.a, j, o.b, o.data)
		}
	})
}

// octreeRoutedCD is a pair whose detection runs inside the shared octree's
// per-step broad phase. Construction registered the pair; the buffer is
// filled by UpdateSharedOctreeAndDetect.
type octreeRoutedCD struct {
	detectorBase
	a, b geo.Geometry
}

// Detect only verifies the inputs: the shared octree fills the buffer once
// per step
func (o *octreeRoutedCD) Detect() {
	if o.a == nil || o.b == nil {
		chk.Panic("missing input geometry for octree-routed collision detection")
	}
}