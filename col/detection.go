// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package col

import (
	"github.com/cpmech/gocol/geo"
	"github.com/cpmech/gosl/chk"
)

// Type enumerates the collision detection algorithms. The set is closed and
// stable between the collision core and the solver.
type Type int

// collision detection types
const (
	TypePointSetToSphere Type = iota
	TypePointSetToPlane
	TypePointSetToCapsule
	TypePointSetToSpherePicking
	TypePointSetToSurfaceMesh
	TypeSurfaceMeshToSurfaceMesh
	TypeSurfaceMeshToSurfaceMeshCCD
	TypeVolumeMeshToVolumeMesh
	TypeMeshToMeshBruteForce
	TypeUnidirectionalPlaneToSphere
	TypeBidirectionalPlaneToSphere
	TypeSphereToCylinder
	TypeSphereToSphere
	TypeSignedDistanceField
	TypeCustom
)

// Object is a handle to one colliding object owning a geometry
type Object struct {
	Name string
	Geom geo.Geometry
}

// Detector is one named collision detection algorithm bound to its input
// geometries and collision buffer. Direct algorithms compute their data on
// every Detect call; octree-routed algorithms are filled by the shared
// octree's per-step detection and their Detect only checks that both
// geometries are present.
type Detector interface {
	Detect()     // compute (or refresh) the collision data
	Data() *Data // the collision buffer read by the solver
}

// detectorBase carries the fields common to all detectors
type detectorBase struct {
	typ  Type
	data *Data
}

// Data returns the collision buffer
func (o *detectorBase) Data() *Data { return o.data }

// New makes a collision detection object of the given type for the two
// colliding objects. The geometry kinds are checked against the requested
// algorithm; a mismatch or an unsupported type is reported as an error. A
// geometry may still be absent at construction (the detector is merely
// configured); a missing geometry becomes fatal on the first Detect call.
func New(typ Type, objA, objB *Object, data *Data) (Detector, error) {
	var gA, gB geo.Geometry
	if objA != nil {
		gA = objA.Geom
	}
	if objB != nil {
		gB = objB.Geom
	}
	if data == nil {
		data = NewData()
	}
	base := detectorBase{typ, data}

	// a nil geometry fails every assertion below without being a kind
	// mismatch, hence the gX != nil guards on the error paths

	switch typ {

	// points to objects
	case TypePointSetToSphere, TypePointSetToSpherePicking:
		ps, ok1 := gA.(*geo.PointSet)
		s, ok2 := gB.(*geo.Sphere)
		if (gA != nil && !ok1) || (gB != nil && !ok2) {
			return nil, chk.Err("invalid geometries for point-set/sphere collision detection")
		}
		return &pointSetToSphereCD{base, ps, s, typ == TypePointSetToSpherePicking}, nil

	case TypePointSetToPlane:
		ps, ok1 := gA.(*geo.PointSet)
		p, ok2 := gB.(*geo.Plane)
		if (gA != nil && !ok1) || (gB != nil && !ok2) {
			return nil, chk.Err("invalid geometries for point-set/plane collision detection")
		}
		return &pointSetToPlaneCD{base, ps, p}, nil

	case TypePointSetToCapsule:
		ps, ok1 := gA.(*geo.PointSet)
		c, ok2 := gB.(*geo.Capsule)
		if (gA != nil && !ok1) || (gB != nil && !ok2) {
			return nil, chk.Err("invalid geometries for point-set/capsule collision detection")
		}
		return &pointSetToCapsuleCD{base, ps, c}, nil

	case TypePointSetToSurfaceMesh:
		ps, ok1 := gA.(*geo.PointSet)
		mesh, ok2 := gB.(*geo.SurfaceMesh)
		if (gA != nil && !ok1) || (gB != nil && !ok2) {
			return nil, chk.Err("invalid geometries for point-set/surface-mesh collision detection")
		}
		cd := &octreeRoutedCD{base, nil, nil}
		if ps != nil && mesh != nil {
			addPairToSharedOctree(ps, mesh, typ, data)
			cd.a, cd.b = ps, mesh
		}
		return cd, nil

	// mesh to mesh
	case TypeSurfaceMeshToSurfaceMesh:
		meshA, ok1 := gA.(*geo.SurfaceMesh)
		meshB, ok2 := gB.(*geo.SurfaceMesh)
		if (gA != nil && !ok1) || (gB != nil && !ok2) {
			return nil, chk.Err("invalid geometries for surface-mesh collision detection")
		}
		cd := &octreeRoutedCD{base, nil, nil}
		if meshA != nil && meshB != nil {
			addPairToSharedOctree(meshA, meshB, typ, data)
			cd.a, cd.b = meshA, meshB
		}
		return cd, nil

	case TypeMeshToMeshBruteForce:
		meshA, ok1 := gA.(*geo.SurfaceMesh)
		meshB, ok2 := gB.(*geo.SurfaceMesh)
		if (gA != nil && !ok1) || (gB != nil && !ok2) {
			return nil, chk.Err("invalid geometries for brute-force mesh collision detection")
		}
		return &meshToMeshBruteForceCD{base, meshA, meshB}, nil

	case TypeVolumeMeshToVolumeMesh:
		tetA, ok1 := gA.(*geo.TetMesh)
		tetB, ok2 := gB.(*geo.TetMesh)
		if (gA != nil && !ok1) || (gB != nil && !ok2) {
			return nil, chk.Err("invalid geometries for volume-mesh collision detection")
		}
		return newTetraToTetraCD(base, tetA, tetB), nil

	// analytical object to analytical object
	case TypeUnidirectionalPlaneToSphere, TypeBidirectionalPlaneToSphere:
		p, ok1 := gA.(*geo.Plane)
		s, ok2 := gB.(*geo.Sphere)
		if (gA != nil && !ok1) || (gB != nil && !ok2) {
			return nil, chk.Err("invalid geometries for plane/sphere collision detection")
		}
		return &planeToSphereCD{base, p, s, typ == TypeBidirectionalPlaneToSphere}, nil

	case TypeSphereToSphere:
		a, ok1 := gA.(*geo.Sphere)
		b, ok2 := gB.(*geo.Sphere)
		if (gA != nil && !ok1) || (gB != nil && !ok2) {
			return nil, chk.Err("invalid geometries for sphere/sphere collision detection")
		}
		return &sphereToSphereCD{base, a, b}, nil

	case TypeSphereToCylinder:
		s, ok1 := gA.(*geo.Sphere)
		c, ok2 := gB.(*geo.Cylinder)
		if (gA != nil && !ok1) || (gB != nil && !ok2) {
			return nil, chk.Err("invalid geometries for sphere/cylinder collision detection")
		}
		return &sphereToCylinderCD{base, s, c}, nil
	}

	return nil, chk.Err("collision detection type %d is not available", typ)
}

// kind-checked geometry accessors used at dispatch time. Failures here mean
// a pair was registered with the wrong algorithm tag and are fatal.

func asPlane(g geo.Geometry) *geo.Plane {
	p, ok := g.(*geo.Plane)
	if !ok {
		chk.Panic("invalid geometries: %d is not a plane", g.Index())
	}
	return p
}

func asSphere(g geo.Geometry) *geo.Sphere {
	s, ok := g.(*geo.Sphere)
	if !ok {
		chk.Panic("invalid geometries: %d is not a sphere", g.Index())
	}
	return s
}

func asCapsule(g geo.Geometry) *geo.Capsule {
	c, ok := g.(*geo.Capsule)
	if !ok {
		chk.Panic("invalid geometries: %d is not a capsule", g.Index())
	}
	return c
}

func asCylinder(g geo.Geometry) *geo.Cylinder {
	c, ok := g.(*geo.Cylinder)
	if !ok {
		chk.Panic("invalid geometries: %d is not a cylinder", g.Index())
	}
	return c
}

func asSurfaceMesh(g geo.Geometry) *geo.SurfaceMesh {
	m, ok := g.(*geo.SurfaceMesh)
	if !ok {
		chk.Panic("invalid geometries: %d is not a surface mesh", g.Index())
	}
	return m
}
