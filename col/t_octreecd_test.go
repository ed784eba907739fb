// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package col

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gocol/geo"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// genPointCloud returns a grid of points inside a sphere
func genPointCloud(radius, spacing float64) *geo.PointSet {
	center := []float64{1e-10, 1e-10, 1e-10}
	n := int(2.0 * radius / spacing)
	var X [][]float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				x := []float64{
					center[0] - radius + spacing*float64(i),
					center[1] - radius + spacing*float64(j),
					center[2] - radius + spacing*float64(k),
				}
				dx := x[0] - center[0]
				dy := x[1] - center[1]
				dz := x[2] - center[2]
				if dx*dx+dy*dy+dz*dz < radius*radius {
					X = append(X, x)
				}
			}
		}
	}
	return geo.NewPointSet(X)
}

// genBoxMesh returns the surface mesh of a unit cube centred at the origin,
// with outward-facing triangles
func genBoxMesh() *geo.SurfaceMesh {
	X := [][]float64{
		{0.5, -0.5, 0.5},
		{-0.5, -0.5, 0.5},
		{0.5, 0.5, 0.5},
		{-0.5, 0.5, 0.5},
		{-0.5, -0.5, -0.5},
		{0.5, -0.5, -0.5},
		{-0.5, 0.5, -0.5},
		{0.5, 0.5, -0.5},
	}
	tri := [][]int{
		{0, 3, 1}, {0, 2, 3},
		{4, 7, 5}, {4, 6, 7},
		{6, 2, 7}, {6, 3, 2},
		{5, 1, 4}, {5, 0, 1},
		{5, 2, 0}, {5, 7, 2},
		{1, 6, 4}, {1, 3, 6},
	}
	return geo.NewSurfaceMesh(X, tri)
}

// genTriangleSoup returns a mesh of random discrete triangles
func genTriangleSoup(ntri int, rnd *rand.Rand) *geo.SurfaceMesh {
	var X [][]float64
	var tri [][]int
	for i := 0; i < ntri; i++ {
		v0 := []float64{
			(rnd.Float64()*2 - 1) * 5,
			(rnd.Float64()*2 - 1) * 5,
			(rnd.Float64()*2 - 1) * 5,
		}
		v1 := make([]float64, 3)
		v2 := make([]float64, 3)
		for k := 0; k < 3; k++ {
			v1[k] = v0[k] + (rnd.Float64()*2-1)*1.0
			v2[k] = v0[k] + (rnd.Float64()*2-1)*1.0
		}
		X = append(X, v0, v1, v2)
		tri = append(tri, []int{i * 3, i*3 + 1, i*3 + 2})
	}
	return geo.NewSurfaceMesh(X, tri)
}

// boxPenetration reports whether p is inside the unit cube (a point on a
// face counts as inside) and the smallest distance from p to the cube faces
func boxPenetration(p []float64) (inside bool, dist float64) {
	inside = true
	dist = 1e10
	for k := 0; k < 3; k++ {
		if p[k] < -0.5 || p[k] > 0.5 {
			return false, 0
		}
		dist = math.Min(dist, math.Abs(p[k]-0.5))
		dist = math.Min(dist, math.Abs(p[k]+0.5))
	}
	return
}

func Test_ocd01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ocd01. point cloud vs box mesh through the octree")

	cloud := genPointCloud(1.2, 0.4)
	mesh := genBoxMesh()

	// manual penetration check
	numPenetrations := 0
	penetrating := make([]bool, cloud.NumVerts())
	distances := make([]float64, cloud.NumVerts())
	for i := 0; i < cloud.NumVerts(); i++ {
		penetrating[i], distances[i] = boxPenetration(cloud.Vert(i))
		if penetrating[i] {
			numPenetrations++
		}
	}
	io.Pforan("npoints = %v, npenetrations = %v\n", cloud.NumVerts(), numPenetrations)

	// detection through a local octree
	ocd := NewOctreeCD([]float64{0, 0, 0}, 100.0, 0.1, 1.0, "testOctreeCD")
	ocd.AddPointSet(cloud)
	ocd.AddTriangleMesh(mesh)
	ocd.Build()
	data := NewData()
	ocd.AddPair(cloud, mesh, TypePointSetToSurfaceMesh, data)
	ocd.DetectCollision()

	chk.IntAssert(data.VT.Len(), numPenetrations)
	seen := make(map[int]bool)
	for i := 0; i < data.VT.Len(); i++ {
		e := data.VT.At(i)
		if !penetrating[e.VertIdx] {
			tst.Errorf("vertex %d is not inside the box\n", e.VertIdx)
			return
		}
		if math.Abs(distances[e.VertIdx]-e.ClosestDistance) > 1e-10 {
			tst.Errorf("wrong closest distance for vertex %d: %g != %g\n", e.VertIdx, e.ClosestDistance, distances[e.VertIdx])
			return
		}
		seen[e.VertIdx] = true
	}
	chk.IntAssert(len(seen), numPenetrations)

	// a second detection on unchanged geometry gives the same count
	ocd.Update()
	ocd.DetectCollision()
	chk.IntAssert(data.VT.Len(), numPenetrations)

	// moving the cloud far away removes all contacts
	cloud.Translate([]float64{20, 0, 0})
	ocd.Update()
	ocd.DetectCollision()
	chk.IntAssert(data.VT.Len(), 0)
}

func Test_ocd02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ocd02. mesh vs mesh: octree equals brute force")

	rnd := rand.New(rand.NewSource(1234))
	for iter := 0; iter < 3; iter++ {

		soup := genTriangleSoup(100, rnd)
		box := genBoxMesh()

		// brute force
		bf := NewData()
		for i := 0; i < soup.NumTris(); i++ {
			for j := 0; j < box.NumTris(); j++ {
				TriangleToTriangle(i, soup, j, box, bf)
			}
		}
		vtSet := make(map[uint64]bool)
		eeSet := make(map[[2]uint64]bool)
		for i := 0; i < bf.VT.Len(); i++ {
			e := bf.VT.At(i)
			vtSet[uint64(e.VertIdx)<<32|uint64(e.TriIdx)] = true
		}
		for i := 0; i < bf.EE.Len(); i++ {
			e := bf.EE.At(i)
			ha := uint64(e.EdgeA[0])<<32 | uint64(e.EdgeA[1])
			hb := uint64(e.EdgeB[0])<<32 | uint64(e.EdgeB[1])
			eeSet[[2]uint64{ha, hb}] = true
		}

		// octree-routed
		ocd := NewOctreeCD([]float64{0, 0, 0}, 100.0, 0.1, 1.0, "testOctreeCD")
		ocd.AddTriangleMesh(soup)
		ocd.AddTriangleMesh(box)
		ocd.Build()
		data := NewData()
		ocd.AddPair(soup, box, TypeSurfaceMeshToSurfaceMesh, data)
		ocd.DetectCollision()

		io.Pforan("iter %d: nvt = %v, nee = %v\n", iter, data.VT.Len(), data.EE.Len())
		chk.IntAssert(data.VT.Len(), len(vtSet))
		chk.IntAssert(data.EE.Len(), len(eeSet))
		for i := 0; i < data.VT.Len(); i++ {
			e := data.VT.At(i)
			if !vtSet[uint64(e.VertIdx)<<32|uint64(e.TriIdx)] {
				tst.Errorf("vertex-triangle contact (%d,%d) not in brute-force set\n", e.VertIdx, e.TriIdx)
				return
			}
		}
		for i := 0; i < data.EE.Len(); i++ {
			e := data.EE.At(i)
			ha := uint64(e.EdgeA[0])<<32 | uint64(e.EdgeA[1])
			hb := uint64(e.EdgeB[0])<<32 | uint64(e.EdgeB[1])
			if !eeSet[[2]uint64{ha, hb}] {
				tst.Errorf("edge-edge contact not in brute-force set\n")
				return
			}
		}
	}
}

func Test_ocd03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ocd03. point cloud vs analytical sphere through the octree")

	cloud := genPointCloud(2.0, 0.4)
	sphere := geo.NewSphere([]float64{0, 0, 0}, 1.5)

	numInside := 0
	inside := make([]bool, cloud.NumVerts())
	for i := 0; i < cloud.NumVerts(); i++ {
		if sphere.Contains(cloud.Vert(i)) {
			inside[i] = true
			numInside++
		}
	}

	ocd := NewOctreeCD([]float64{0, 0, 0}, 100.0, 0.1, 1.0, "testOctreeCD")
	ocd.AddPointSet(cloud)
	ocd.AddAnalyticalGeometry(sphere)
	ocd.Build()
	data := NewData()
	ocd.AddPair(cloud, sphere, TypePointSetToSphere, data)
	ocd.DetectCollision()

	chk.IntAssert(len(data.A), numInside)
	for _, e := range data.A {
		if e.Kind != PointIndexDirectionElem {
			tst.Errorf("wrong element kind\n")
			return
		}
		if !inside[e.PointIndexDirection.PtIndex] {
			tst.Errorf("vertex %d is not inside the sphere\n", e.PointIndexDirection.PtIndex)
			return
		}
	}
}

func Test_ocd04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ocd04. pair registration")

	ocd := NewOctreeCD([]float64{0, 0, 0}, 100.0, 0.1, 1.0, "testOctreeCD")
	a := geo.NewSphere([]float64{0, 0, 0}, 1)
	b := geo.NewSphere([]float64{1.5, 0, 0}, 1)
	ocd.AddAnalyticalGeometry(a)
	ocd.AddAnalyticalGeometry(b)
	ocd.Build()
	data := NewData()
	ocd.AddPair(a, b, TypeSphereToSphere, data)
	if !ocd.HasPair(a.Index(), b.Index()) {
		tst.Errorf("pair must be registered\n")
		return
	}
	if ocd.HasPair(b.Index(), a.Index()) {
		tst.Errorf("pair registration is ordered\n")
		return
	}
	chk.IntAssert(ocd.NumPairs(), 1)

	ocd.DetectCollision()
	chk.IntAssert(len(data.A), 1)
	chk.Scalar(tst, "depth", 1e-15, data.A[0].PointDirection.Depth, 0.5)

	// clearing drops geometries and pairs but keeps the node pool
	nalloc := ocd.NumAllocatedNodes()
	ocd.Clear()
	chk.IntAssert(ocd.NumPairs(), 0)
	chk.IntAssert(ocd.NumAllocatedNodes(), nalloc)
	ocd.CheckPool()
}
