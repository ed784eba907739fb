// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_geo01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("geo01. global indices and bounding boxes")

	a := NewSphere([]float64{1, 2, 3}, 0.5)
	b := NewSphere([]float64{0, 0, 0}, 1)
	if a.Index() == b.Index() {
		tst.Errorf("global indices must be unique\n")
		return
	}
	if a.Kind() != KindSphere {
		tst.Errorf("wrong geometry kind\n")
		return
	}

	lo, hi := a.BoundingBox()
	chk.Vector(tst, "sphere lo", 1e-15, lo, []float64{0.5, 1.5, 2.5})
	chk.Vector(tst, "sphere hi", 1e-15, hi, []float64{1.5, 2.5, 3.5})
	chk.Scalar(tst, "sphere sdist", 1e-15, a.SignedDistance([]float64{1, 2, 3.25}), -0.25)

	cyl := NewCylinder([]float64{0, 0, 0}, []float64{0, 2, 0}, 1, 0.5)
	chk.Vector(tst, "cylinder axis", 1e-15, cyl.A, []float64{0, 1, 0})
	lo, hi = cyl.BoundingBox()
	chk.Vector(tst, "cylinder lo", 1e-15, lo, []float64{-0.5, -0.5, -0.5})
	chk.Vector(tst, "cylinder hi", 1e-15, hi, []float64{0.5, 0.5, 0.5})
	if !cyl.Contains([]float64{0.25, 0.4, 0}) {
		tst.Errorf("cylinder must contain inner point\n")
		return
	}
	if cyl.Contains([]float64{0, 0.6, 0}) {
		tst.Errorf("cylinder must not contain point beyond cap\n")
		return
	}

	cap0 := NewCapsule([]float64{0, 0, 0}, []float64{0, 1, 0}, 2, 0.5)
	p0 := make([]float64, 3)
	p1 := make([]float64, 3)
	cap0.Endpoints(p0, p1)
	chk.Vector(tst, "capsule p0", 1e-15, p0, []float64{0, -1, 0})
	chk.Vector(tst, "capsule p1", 1e-15, p1, []float64{0, 1, 0})
	if !cap0.Contains([]float64{0, 1.4, 0}) {
		tst.Errorf("capsule must contain point within end cap\n")
		return
	}

	box := NewBox([]float64{0, 0, 0}, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, []float64{1, 2, 3})
	lo, hi = box.BoundingBox()
	chk.Vector(tst, "box lo", 1e-15, lo, []float64{-1, -2, -3})
	chk.Vector(tst, "box hi", 1e-15, hi, []float64{1, 2, 3})
	if !box.Contains([]float64{0.9, -1.9, 2.9}) {
		tst.Errorf("box must contain inner point\n")
		return
	}
}

func Test_geo02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("geo02. tetrahedron barycentric weights")

	mesh := NewTetMesh([][]float64{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}, [][]int{{0, 1, 2, 3}})

	w := make([]float64, 4)

	// centroid
	if !mesh.BaryWeights(0, []float64{0.25, 0.25, 0.25}, w) {
		tst.Errorf("BaryWeights failed\n")
		return
	}
	chk.Vector(tst, "w centroid", 1e-14, w, []float64{0.25, 0.25, 0.25, 0.25})

	// vertex 1
	if !mesh.BaryWeights(0, []float64{1, 0, 0}, w) {
		tst.Errorf("BaryWeights failed\n")
		return
	}
	chk.Vector(tst, "w vertex", 1e-14, w, []float64{0, 1, 0, 0})

	// outside
	if !mesh.BaryWeights(0, []float64{1, 1, 1}, w) {
		tst.Errorf("BaryWeights failed\n")
		return
	}
	io.Pforan("w outside = %v\n", w)
	if w[0] > 0 {
		tst.Errorf("outside point must have a negative weight\n")
		return
	}

	// degenerate
	flat := NewTetMesh([][]float64{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{1, 1, 0},
	}, [][]int{{0, 1, 2, 3}})
	if flat.BaryWeights(0, []float64{0.5, 0.5, 0}, w) {
		tst.Errorf("degenerate tetrahedron must fail\n")
		return
	}
}

func Test_geo03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("geo03. surface mesh and translation")

	mesh := NewSurfaceMesh([][]float64{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
	}, [][]int{{0, 1, 2}})
	if mesh.NumTris() != 1 {
		tst.Errorf("wrong number of triangles\n")
		return
	}

	lo := make([]float64, 3)
	hi := make([]float64, 3)
	mesh.TriBoundingBox(0, lo, hi)
	chk.Vector(tst, "tri lo", 1e-15, lo, []float64{0, 0, 0})
	chk.Vector(tst, "tri hi", 1e-15, hi, []float64{1, 1, 0})

	mesh.Translate([]float64{1, 2, 3})
	mesh.TriBoundingBox(0, lo, hi)
	chk.Vector(tst, "tri lo after translation", 1e-15, lo, []float64{1, 2, 3})
	chk.Vector(tst, "tri hi after translation", 1e-15, hi, []float64{2, 3, 3})

	glo, ghi := mesh.BoundingBox()
	chk.Vector(tst, "mesh lo", 1e-15, glo, []float64{1, 2, 3})
	chk.Vector(tst, "mesh hi", 1e-15, ghi, []float64{2, 3, 3})

	cp := make([]float64, 3)
	SegmentClosestPoint([]float64{2, 0, 0}, []float64{0, 0, 0}, []float64{1, 0, 0}, cp)
	chk.Vector(tst, "closest point", 1e-15, cp, []float64{1, 0, 0})
}
