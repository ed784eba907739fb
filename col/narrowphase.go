// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package col

import (
	"math"

	"github.com/cpmech/gocol/geo"
	"github.com/cpmech/gosl/utl"
)

// The narrow-phase kernels compute exact contact data for one candidate
// pair and append typed elements to the collision buffer. All kernels are
// safe under concurrent invocation on the same buffer. Per-side elements
// carry the direction pointing toward the opposing object. Degenerate
// configurations (coincident centres, zero-length normals) are silently
// skipped for the current step.

// BidirectionalPlaneToSphere detects contact between a plane and a sphere
// on either side of the plane
func BidirectionalPlaneToSphere(plane *geo.Plane, sphere *geo.Sphere, data *Data) {
	d := plane.SignedDistance(sphere.C)
	ad := math.Abs(d)
	depth := sphere.R - ad
	if depth <= 0 {
		return
	}

	// direction from plane toward sphere
	dir := []float64{plane.N[0], plane.N[1], plane.N[2]}
	if d < 0 {
		negate(dir)
	}

	planePt := make([]float64, 3)
	spherePt := make([]float64, 3)
	for k := 0; k < 3; k++ {
		planePt[k] = sphere.C[k] - dir[k]*ad
		spherePt[k] = sphere.C[k] - dir[k]*sphere.R
	}
	data.AppendAB(
		NewPointDirectionElement(planePt, dir, depth),
		NewPointDirectionElement(spherePt, neg(dir), depth))
}

// UnidirectionalPlaneToSphere detects contact between a plane and a sphere
// approaching from the front half-space. A sphere whose centre has crossed
// to the back side reports no contact.
func UnidirectionalPlaneToSphere(plane *geo.Plane, sphere *geo.Sphere, data *Data) {
	d := plane.SignedDistance(sphere.C)
	if d < 0 {
		return
	}
	depth := sphere.R - d
	if depth <= 0 {
		return
	}

	n := plane.N
	planePt := make([]float64, 3)
	spherePt := make([]float64, 3)
	for k := 0; k < 3; k++ {
		planePt[k] = sphere.C[k] - n[k]*d
		spherePt[k] = sphere.C[k] - n[k]*sphere.R
	}
	data.AppendAB(
		NewPointDirectionElement(planePt, []float64{n[0], n[1], n[2]}, depth),
		NewPointDirectionElement(spherePt, neg(n), depth))
}

// SphereToSphere detects contact between two spheres
func SphereToSphere(a, b *geo.Sphere, data *Data) {
	u := make([]float64, 3)
	for k := 0; k < 3; k++ {
		u[k] = b.C[k] - a.C[k]
	}
	d := norm3(u)
	depth := a.R + b.R - d
	if depth <= 0 {
		return
	}
	if d < 1e-12 { // coincident centres
		return
	}
	for k := 0; k < 3; k++ {
		u[k] /= d
	}
	aPt := make([]float64, 3)
	bPt := make([]float64, 3)
	for k := 0; k < 3; k++ {
		aPt[k] = a.C[k] + u[k]*a.R
		bPt[k] = b.C[k] - u[k]*b.R
	}
	data.AppendAB(
		NewPointDirectionElement(aPt, u, depth),
		NewPointDirectionElement(bPt, neg(u), depth))
}

// SphereToCylinder detects contact between a sphere and a finite cylinder:
// against the lateral surface when the sphere centre projects within the
// cylinder length, and against the flat caps otherwise. Edge contacts are
// not resolved.
func SphereToCylinder(sphere *geo.Sphere, cyl *geo.Cylinder, data *Data) {
	var d [3]float64
	for k := 0; k < 3; k++ {
		d[k] = sphere.C[k] - cyl.C[k]
	}
	h := utl.Dot3d(d[:], cyl.A)

	radial := make([]float64, 3)
	for k := 0; k < 3; k++ {
		radial[k] = d[k] - h*cyl.A[k]
	}
	rd := norm3(radial)

	if math.Abs(h) <= cyl.L/2.0 {
		// lateral surface
		depth := sphere.R + cyl.R - rd
		if depth <= 0 {
			return
		}
		if rd < 1e-12 { // centre on the axis
			return
		}
		u := make([]float64, 3)
		for k := 0; k < 3; k++ {
			u[k] = radial[k] / rd
		}
		spherePt := make([]float64, 3)
		cylPt := make([]float64, 3)
		for k := 0; k < 3; k++ {
			spherePt[k] = sphere.C[k] - u[k]*sphere.R
			cylPt[k] = cyl.C[k] + h*cyl.A[k] + u[k]*cyl.R
		}
		data.AppendAB(
			NewPointDirectionElement(spherePt, neg(u), depth),
			NewPointDirectionElement(cylPt, u, depth))
		return
	}

	// caps
	if rd > cyl.R {
		return
	}
	depth := sphere.R - (math.Abs(h) - cyl.L/2.0)
	if depth <= 0 {
		return
	}
	w := make([]float64, 3) // unit direction from cylinder toward sphere
	copy(w, cyl.A)
	if h < 0 {
		negate(w)
	}
	spherePt := make([]float64, 3)
	capPt := make([]float64, 3)
	for k := 0; k < 3; k++ {
		spherePt[k] = sphere.C[k] - w[k]*sphere.R
		capPt[k] = cyl.C[k] + w[k]*cyl.L/2.0 + radial[k]
	}
	data.AppendAB(
		NewPointDirectionElement(spherePt, neg(w), depth),
		NewPointDirectionElement(capPt, w, depth))
}

// PointToPlane reports a vertex inside the back half-space of a plane. The
// emitted direction times the depth reproduces the penetration vector
// n·((pt−C)·n).
func PointToPlane(p []float64, pIdx int, plane *geo.Plane, data *Data) {
	d := plane.SignedDistance(p)
	if d >= 0 {
		return
	}
	data.AppendA(NewPointIndexDirectionElement(pIdx, neg(plane.N), -d))
}

// PointToSphere reports a vertex inside a sphere
func PointToSphere(p []float64, pIdx int, sphere *geo.Sphere, data *Data) {
	u := make([]float64, 3)
	for k := 0; k < 3; k++ {
		u[k] = sphere.C[k] - p[k]
	}
	d := norm3(u)
	if d >= sphere.R {
		return
	}
	if d < 1e-12 { // centre hit
		return
	}
	for k := 0; k < 3; k++ {
		u[k] /= d
	}
	data.AppendA(NewPointIndexDirectionElement(pIdx, u, sphere.R-d))
}

// PointToSpherePicking reports a vertex inside a picking sphere, with the
// depth being the distance from the vertex to the sphere centre
func PointToSpherePicking(p []float64, pIdx int, sphere *geo.Sphere, data *Data) {
	u := make([]float64, 3)
	for k := 0; k < 3; k++ {
		u[k] = sphere.C[k] - p[k]
	}
	d := norm3(u)
	if d >= sphere.R || d < 1e-12 {
		return
	}
	for k := 0; k < 3; k++ {
		u[k] /= d
	}
	data.AppendA(NewPointIndexDirectionElement(pIdx, u, d))
}

// PointToCapsule reports a vertex inside a capsule, pointing from the
// vertex toward the nearest point on the outer surface
func PointToCapsule(p []float64, pIdx int, capsule *geo.Capsule, data *Data) {
	p0 := make([]float64, 3)
	p1 := make([]float64, 3)
	capsule.Endpoints(p0, p1)

	// bounding-sphere rejection
	mid := capsule.C
	if dist3(mid, p) > capsule.R+capsule.L/2.0 {
		return
	}

	closest := make([]float64, 3)
	geo.SegmentClosestPoint(p, p0, p1, closest)
	d := dist3(closest, p)
	if d >= capsule.R || d < 1e-12 {
		return
	}
	dir := make([]float64, 3)
	for k := 0; k < 3; k++ {
		dir[k] = (p[k] - closest[k]) / d
	}
	data.AppendA(NewPointIndexDirectionElement(pIdx, dir, capsule.R-d))
}

// PointToTriangle tests a vertex against one triangle of a mesh. A vertex on
// the outer side of the triangle plane is reported as outside (ok=false) so
// the caller can invalidate the whole (point, mesh) collision; otherwise a
// vertex-triangle contact with the closest distance is appended.
func PointToTriangle(p []float64, pIdx, triIdx int, mesh *geo.SurfaceMesh, data *Data) (ok bool) {
	t := mesh.TriVert(triIdx)
	x1, x2, x3 := mesh.Vert(t[0]), mesh.Vert(t[1]), mesh.Vert(t[2])
	var e1, e2, pa, n [3]float64
	for k := 0; k < 3; k++ {
		e1[k] = x2[k] - x1[k]
		e2[k] = x3[k] - x1[k]
		pa[k] = p[k] - x1[k]
	}
	utl.Cross3d(n[:], e1[:], e2[:])
	if utl.Dot3d(pa[:], n[:]) > 0 {
		return false
	}
	data.VT.SafeAppend(VTData{pIdx, triIdx, PointTriangleClosestDistance(p, x1, x2, x3)})
	return true
}

// TriangleToTriangle tests two triangles by counting how many edges of the
// first cross the second: two crossings mean a vertex of the first
// penetrates (vertex-triangle contact); one crossing means an edge-edge
// contact with the symmetric crossing edge of the second triangle. If
// numerical round-off leaves the symmetric edge unfound, the contact is
// dropped silently.
func TriangleToTriangle(triIdx1 int, mesh1 *geo.SurfaceMesh, triIdx2 int, mesh2 *geo.SurfaceMesh, data *Data) {
	t1 := mesh1.TriVert(triIdx1)
	t2 := mesh2.TriVert(triIdx2)
	v1 := [3][]float64{mesh1.Vert(t1[0]), mesh1.Vert(t1[1]), mesh1.Vert(t1[2])}
	v2 := [3][]float64{mesh2.Vert(t2[0]), mesh2.Vert(t2[1]), mesh2.Vert(t2[2])}

	// edges (0,1), (0,2), (1,2) of the first triangle
	edges := [3][2]int{{0, 1}, {0, 2}, {1, 2}}
	var crossed [3]bool
	num := 0
	for i, e := range edges {
		crossed[i] = SegmentIntersectsTriangle(v1[e[0]], v1[e[1]], v2[0], v2[1], v2[2])
		if crossed[i] {
			num++
		}
	}

	switch num {
	case 2:
		// the vertex shared by the two crossing edges penetrates
		var vert int
		if crossed[0] {
			if crossed[1] {
				vert = t1[0]
			} else {
				vert = t1[1]
			}
		} else {
			vert = t1[2]
		}
		data.VT.SafeAppend(VTData{vert, triIdx2, 0})

	case 1:
		var edgeA [2]int
		for i, e := range edges {
			if crossed[i] {
				edgeA = [2]int{t1[e[0]], t1[e[1]]}
				break
			}
		}
		// find the crossing edge of the second triangle
		for _, e := range edges {
			if SegmentIntersectsTriangle(v2[e[0]], v2[e[1]], v1[0], v1[1], v1[2]) {
				edgeB := [2]int{t2[e[0]], t2[e[1]]}
				data.EE.SafeAppend(EEData{edgeA, edgeB, 0})
				return
			}
		}
	}
}

// neg returns a negated copy of v
func neg(v []float64) []float64 {
	return []float64{-v[0], -v[1], -v[2]}
}

// negate negates v in place
func negate(v []float64) {
	v[0], v[1], v[2] = -v[0], -v[1], -v[2]
}
