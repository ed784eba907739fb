// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

// PointSet holds an unstructured cloud of points. It is the basic vertex
// container embedded by the mesh geometries as well.
type PointSet struct {
	Idx uint32      // global index
	X   [][]float64 // [npts][3] vertex coordinates
}

// NewPointSet returns a new point set holding (not copying) X
func NewPointSet(X [][]float64) (o *PointSet) {
	return &PointSet{Idx: NewIndex(), X: X}
}

// Index returns the global index of this geometry
func (o *PointSet) Index() uint32 { return o.Idx }

// Kind returns the kind of this geometry
func (o *PointSet) Kind() Kind { return KindPointSet }

// NumVerts returns the number of vertices
func (o *PointSet) NumVerts() int { return len(o.X) }

// Vert returns the coordinates of vertex i
func (o *PointSet) Vert(i int) []float64 { return o.X[i] }

// Translate applies a rigid translation to all vertices. The collision core
// reads positions after any such transform is applied between steps.
func (o *PointSet) Translate(dx []float64) {
	for _, x := range o.X {
		for k := 0; k < 3; k++ {
			x[k] += dx[k]
		}
	}
}

// BoundingBox returns the tight axis-aligned bounding box of all vertices
func (o *PointSet) BoundingBox() (lo, hi []float64) {
	lo = []float64{0, 0, 0}
	hi = []float64{0, 0, 0}
	if len(o.X) == 0 {
		return
	}
	for k := 0; k < 3; k++ {
		lo[k] = o.X[0][k]
		hi[k] = o.X[0][k]
	}
	for _, x := range o.X[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], x[k])
			hi[k] = max(hi[k], x[k])
		}
	}
	return
}
