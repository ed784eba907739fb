// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package col

import "github.com/cpmech/gocol/geo"

// DebugGeo collects points, line segments and triangles derived from
// collision elements, for visual verification. Lines hold consecutive
// endpoint pairs and Tris consecutive vertex triples.
type DebugGeo struct {
	Points [][]float64
	Lines  [][]float64
	Tris   [][]float64
}

// AppendPoint appends a copy of p
func (o *DebugGeo) AppendPoint(p []float64) {
	o.Points = append(o.Points, cp3(p))
}

// AppendLine appends a segment (copies of a and b)
func (o *DebugGeo) AppendLine(a, b []float64) {
	o.Lines = append(o.Lines, cp3(a), cp3(b))
}

// AppendTri appends a triangle (copies of a, b and c)
func (o *DebugGeo) AppendTri(a, b, c []float64) {
	o.Tris = append(o.Tris, cp3(a), cp3(b), cp3(c))
}

// AppendElements converts one side's elements into debug primitives. g is
// the geometry of that side, used to resolve indexed elements; it may be nil
// when all elements carry explicit positions.
func AppendElements(elems []Element, g geo.Geometry, buf *DebugGeo) {
	for i := range elems {
		appendElement(&elems[i], g, buf)
	}
}

func appendElement(e *Element, g geo.Geometry, buf *DebugGeo) {
	switch e.Kind {

	case CellIndexElem:
		verts := vertsOf(g)
		if verts == nil {
			return
		}
		ci := &e.CellIndex
		switch ci.CellType {
		case CellVertex:
			buf.AppendPoint(verts.Vert(ci.Ids[0]))
		case CellEdge:
			if ci.IdCount >= 2 {
				buf.AppendLine(verts.Vert(ci.Ids[0]), verts.Vert(ci.Ids[1]))
			}
		case CellTriangle:
			if ci.IdCount == 1 {
				if mesh, ok := g.(*geo.SurfaceMesh); ok {
					t := mesh.TriVert(ci.Ids[0])
					buf.AppendTri(mesh.Vert(t[0]), mesh.Vert(t[1]), mesh.Vert(t[2]))
				}
				return
			}
			if ci.IdCount >= 3 {
				buf.AppendTri(verts.Vert(ci.Ids[0]), verts.Vert(ci.Ids[1]), verts.Vert(ci.Ids[2]))
			}
		}
		// tetrahedra are not visualised

	case CellVertexElem:
		cv := &e.CellVertex
		switch cv.Size {
		case 1:
			buf.AppendPoint(cv.Pts[0])
		case 2:
			buf.AppendLine(cv.Pts[0], cv.Pts[1])
		case 3:
			buf.AppendTri(cv.Pts[0], cv.Pts[1], cv.Pts[2])
		}

	case PointDirectionElem:
		pd := &e.PointDirection
		buf.AppendPoint(pd.Pt)
		tip := make([]float64, 3)
		for k := 0; k < 3; k++ {
			tip[k] = pd.Pt[k] + pd.Dir[k]*pd.Depth
		}
		buf.AppendLine(pd.Pt, tip)

	case PointIndexDirectionElem:
		verts := vertsOf(g)
		if verts == nil {
			return
		}
		pid := &e.PointIndexDirection
		p := verts.Vert(pid.PtIndex)
		buf.AppendPoint(p)
		tip := make([]float64, 3)
		for k := 0; k < 3; k++ {
			tip[k] = p[k] + pid.Dir[k]*pid.Depth
		}
		buf.AppendLine(p, tip)
	}
}

// vertsOf returns the vertex container behind a geometry, or nil
func vertsOf(g geo.Geometry) *geo.PointSet {
	switch gg := g.(type) {
	case *geo.PointSet:
		return gg
	case *geo.SurfaceMesh:
		return &gg.PointSet
	case *geo.TetMesh:
		return &gg.PointSet
	}
	return nil
}

// cp3 returns a copy of a 3-vector
func cp3(v []float64) []float64 {
	return []float64{v[0], v[1], v[2]}
}
