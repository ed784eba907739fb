// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// SurfaceMesh holds a triangulated surface: a point set plus triangle
// connectivity. Triangle vertex indices are local to this mesh.
type SurfaceMesh struct {
	PointSet
	Tri [][]int // [ntri][3] triangle connectivity
}

// NewSurfaceMesh returns a new surface mesh holding (not copying) X and tri
func NewSurfaceMesh(X [][]float64, tri [][]int) (o *SurfaceMesh) {
	o = &SurfaceMesh{PointSet{Idx: NewIndex(), X: X}, tri}
	for i, t := range tri {
		if len(t) != 3 {
			chk.Panic("triangle %d does not have 3 vertices. %v is invalid", i, t)
		}
	}
	return
}

// Kind returns the kind of this geometry
func (o *SurfaceMesh) Kind() Kind { return KindSurfaceMesh }

// NumTris returns the number of triangles
func (o *SurfaceMesh) NumTris() int { return len(o.Tri) }

// TriVert returns the three vertex indices of triangle i
func (o *SurfaceMesh) TriVert(i int) []int { return o.Tri[i] }

// TriBoundingBox writes the tight bounding box of triangle i into lo and hi
func (o *SurfaceMesh) TriBoundingBox(i int, lo, hi []float64) {
	t := o.Tri[i]
	x0, x1, x2 := o.X[t[0]], o.X[t[1]], o.X[t[2]]
	for k := 0; k < 3; k++ {
		lo[k] = min(x0[k], min(x1[k], x2[k]))
		hi[k] = max(x0[k], max(x1[k], x2[k]))
	}
}

// TetMesh holds a tetrahedral mesh: a point set plus tetrahedron connectivity
type TetMesh struct {
	PointSet
	Tet [][]int // [ntet][4] tetrahedron connectivity
}

// NewTetMesh returns a new tetrahedral mesh holding (not copying) X and tet
func NewTetMesh(X [][]float64, tet [][]int) (o *TetMesh) {
	o = &TetMesh{PointSet{Idx: NewIndex(), X: X}, tet}
	for i, t := range tet {
		if len(t) != 4 {
			chk.Panic("tetrahedron %d does not have 4 vertices. %v is invalid", i, t)
		}
	}
	return
}

// Kind returns the kind of this geometry
func (o *TetMesh) Kind() Kind { return KindTetMesh }

// NumTets returns the number of tetrahedra
func (o *TetMesh) NumTets() int { return len(o.Tet) }

// TetVert returns the four vertex indices of tetrahedron i
func (o *TetMesh) TetVert(i int) []int { return o.Tet[i] }

// TetBoundingBox writes the tight bounding box of tetrahedron i into lo and hi
func (o *TetMesh) TetBoundingBox(i int, lo, hi []float64) {
	t := o.Tet[i]
	x0 := o.X[t[0]]
	for k := 0; k < 3; k++ {
		lo[k] = x0[k]
		hi[k] = x0[k]
	}
	for _, v := range t[1:] {
		x := o.X[v]
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], x[k])
			hi[k] = max(hi[k], x[k])
		}
	}
}

// BaryWeights computes the four barycentric weights of point p with respect
// to tetrahedron i. ok is false if the tetrahedron is degenerate.
func (o *TetMesh) BaryWeights(i int, p []float64, w []float64) (ok bool) {
	t := o.Tet[i]
	x0, x1, x2, x3 := o.X[t[0]], o.X[t[1]], o.X[t[2]], o.X[t[3]]

	// edge matrix columns and right-hand side
	var a, b, c, r [3]float64
	for k := 0; k < 3; k++ {
		a[k] = x1[k] - x0[k]
		b[k] = x2[k] - x0[k]
		c[k] = x3[k] - x0[k]
		r[k] = p[k] - x0[k]
	}

	// Cramer's rule
	det := a[0]*(b[1]*c[2]-b[2]*c[1]) - b[0]*(a[1]*c[2]-a[2]*c[1]) + c[0]*(a[1]*b[2]-a[2]*b[1])
	if math.Abs(det) < 1e-14 {
		return false
	}
	w[1] = (r[0]*(b[1]*c[2]-b[2]*c[1]) - b[0]*(r[1]*c[2]-r[2]*c[1]) + c[0]*(r[1]*b[2]-r[2]*b[1])) / det
	w[2] = (a[0]*(r[1]*c[2]-r[2]*c[1]) - r[0]*(a[1]*c[2]-a[2]*c[1]) + c[0]*(a[1]*r[2]-a[2]*r[1])) / det
	w[3] = (a[0]*(b[1]*r[2]-b[2]*r[1]) - b[0]*(a[1]*r[2]-a[2]*r[1]) + r[0]*(a[1]*b[2]-a[2]*b[1])) / det
	w[0] = 1.0 - w[1] - w[2] - w[3]
	return true
}
