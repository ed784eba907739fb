// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package col

import (
	"math/rand"
	"testing"

	"github.com/cpmech/gocol/geo"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_detect01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("detect01. factory construction and validation")

	sphere := geo.NewSphere([]float64{0, 0, 0}, 1)
	plane := geo.NewPlane([]float64{0, 0, 0}, []float64{0, 1, 0}, 10)

	// wrong kinds are rejected
	_, err := New(TypeSphereToSphere, &Object{"plane", plane}, &Object{"sphere", sphere}, nil)
	if err == nil {
		tst.Errorf("mismatched geometry kinds must be rejected\n")
		return
	}
	io.Pforan("err = %v\n", err)

	// a missing geometry is allowed at construction (the detector is merely
	// configured) and becomes fatal on the first detect call
	cdMissing, err := New(TypeSphereToSphere, &Object{Name: "none"}, &Object{"sphere", sphere}, nil)
	if err != nil {
		tst.Errorf("construction with a missing geometry must succeed: %v\n", err)
		return
	}
	func() {
		defer func() {
			if recover() == nil {
				tst.Errorf("detect with a missing geometry must be fatal\n")
			}
		}()
		cdMissing.Detect()
	}()

	// disabled algorithms are rejected
	meshA := genBoxMesh()
	meshB := genBoxMesh()
	_, err = New(TypeSurfaceMeshToSurfaceMeshCCD, &Object{"a", meshA}, &Object{"b", meshB}, nil)
	if err == nil {
		tst.Errorf("continuous collision detection must be unavailable\n")
		return
	}
	_, err = New(TypeSignedDistanceField, &Object{"a", meshA}, &Object{"b", meshB}, nil)
	if err == nil {
		tst.Errorf("signed-distance-field detection must be unavailable\n")
		return
	}

	// a valid direct detector allocates its own buffer when none is given
	cd, err := New(TypeBidirectionalPlaneToSphere, &Object{"plane", plane}, &Object{"sphere", sphere}, nil)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	cd.Detect()
	chk.IntAssert(len(cd.Data().A), 1)
	chk.IntAssert(len(cd.Data().B), 1)
}

func Test_detect02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("detect02. direct point-set detectors")

	cloud := geo.NewPointSet([][]float64{
		{0, 0.25, 0},
		{0, -0.25, 0},
		{0, 3, 0},
	})

	sphere := geo.NewSphere([]float64{0, 0, 0}, 1)
	cd, err := New(TypePointSetToSphere, &Object{"cloud", cloud}, &Object{"sphere", sphere}, nil)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	cd.Detect()
	chk.IntAssert(len(cd.Data().A), 2)

	plane := geo.NewPlane([]float64{0, 0, 0}, []float64{0, 1, 0}, 10)
	cd, err = New(TypePointSetToPlane, &Object{"cloud", cloud}, &Object{"plane", plane}, nil)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	cd.Detect()
	chk.IntAssert(len(cd.Data().A), 1)
	chk.IntAssert(cd.Data().A[0].PointIndexDirection.PtIndex, 1)

	capsule := geo.NewCapsule([]float64{0, 0, 0}, []float64{0, 1, 0}, 2, 0.5)
	offAxis := geo.NewPointSet([][]float64{
		{0.2, 0.25, 0},
		{0.2, -0.25, 0},
		{3, 0, 0},
	})
	cd, err = New(TypePointSetToCapsule, &Object{"cloud", offAxis}, &Object{"capsule", capsule}, nil)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	cd.Detect()
	chk.IntAssert(len(cd.Data().A), 2)

	cd, err = New(TypePointSetToSpherePicking, &Object{"cloud", cloud}, &Object{"sphere", sphere}, nil)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	cd.Detect()
	chk.IntAssert(len(cd.Data().A), 2)

	// brute-force mesh to mesh
	soup := genBoxMesh()
	box := genBoxMesh()
	cd, err = New(TypeMeshToMeshBruteForce, &Object{"a", soup}, &Object{"b", box}, nil)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	cd.Detect() // identical overlapping boxes: just must not crash
}

func Test_detect03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("detect03. octree-routed detection through the shared octree")

	ClearSharedOctree()

	cloud := genPointCloud(1.2, 0.4)
	mesh := genBoxMesh()
	numPenetrations := 0
	for i := 0; i < cloud.NumVerts(); i++ {
		if inside, _ := boxPenetration(cloud.Vert(i)); inside {
			numPenetrations++
		}
	}

	data := NewData()
	cd, err := New(TypePointSetToSurfaceMesh, &Object{"cloud", cloud}, &Object{"mesh", mesh}, data)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	cd.Detect() // no-op for octree-routed pairs

	UpdateSharedOctreeAndDetect()
	io.Pforan("nvt = %v\n", data.VT.Len())
	chk.IntAssert(data.VT.Len(), numPenetrations)

	// the shared octree hands out the same buffer
	so := SharedOctree()
	if so.PairData(cloud.Index(), mesh.Index()) != data {
		tst.Errorf("shared octree must hold the registered buffer\n")
		return
	}

	// second step on unchanged geometry
	UpdateSharedOctreeAndDetect()
	chk.IntAssert(data.VT.Len(), numPenetrations)

	ClearSharedOctree()
	if so.NumPairs() != 0 {
		tst.Errorf("clearing must drop all pairs\n")
		return
	}
}

func Test_detect05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("detect05. mesh vs mesh through the shared octree")

	ClearSharedOctree()

	soup := genTriangleSoup(50, rand.New(rand.NewSource(4321)))
	box := genBoxMesh()

	// brute force reference
	bf := NewData()
	for i := 0; i < soup.NumTris(); i++ {
		for j := 0; j < box.NumTris(); j++ {
			TriangleToTriangle(i, soup, j, box, bf)
		}
	}

	data := NewData()
	_, err := New(TypeSurfaceMeshToSurfaceMesh, &Object{"soup", soup}, &Object{"box", box}, data)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	UpdateSharedOctreeAndDetect()
	io.Pforan("nvt = %v, nee = %v\n", data.VT.Len(), data.EE.Len())
	chk.IntAssert(data.VT.Len(), bf.VT.Len())
	chk.IntAssert(data.EE.Len(), bf.EE.Len())

	// moving the soup away removes all contacts
	soup.Translate([]float64{40, 0, 0})
	UpdateSharedOctreeAndDetect()
	chk.IntAssert(data.VT.Len(), 0)
	chk.IntAssert(data.EE.Len(), 0)

	ClearSharedOctree()
}

func Test_detect04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("detect04. collision data debug export")

	plane := geo.NewPlane([]float64{0, 0, 0}, []float64{0, 1, 0}, 10)
	sphere := geo.NewSphere([]float64{0, 0, 0}, 1)
	data := NewData()
	BidirectionalPlaneToSphere(plane, sphere, data)

	var buf DebugGeo
	AppendElements(data.A, nil, &buf)
	AppendElements(data.B, nil, &buf)
	chk.IntAssert(len(buf.Points), 2)
	chk.IntAssert(len(buf.Lines), 4)

	// indexed elements resolve through the geometry
	cloud := geo.NewPointSet([][]float64{{0, -0.5, 0}})
	data2 := NewData()
	PointToPlane(cloud.Vert(0), 0, plane, data2)
	buf = DebugGeo{}
	AppendElements(data2.A, cloud, &buf)
	chk.IntAssert(len(buf.Points), 1)
	chk.IntAssert(len(buf.Lines), 2)
	chk.Vector(tst, "arrow tip", 1e-15, buf.Lines[1], []float64{0, -1, 0})

	// explicit cell-vertex elements
	var e Element
	e.Kind = CellVertexElem
	e.CellVertex.Size = 3
	e.CellVertex.Pts[0] = []float64{0, 0, 0}
	e.CellVertex.Pts[1] = []float64{1, 0, 0}
	e.CellVertex.Pts[2] = []float64{0, 1, 0}
	buf = DebugGeo{}
	AppendElements([]Element{e}, nil, &buf)
	chk.IntAssert(len(buf.Tris), 3)
}
