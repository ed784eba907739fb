// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Plane is an analytical plane defined by a point and a unit normal. The
// half-width bounds the region used for spatial indexing and debug drawing.
type Plane struct {
	Idx       uint32    // global index
	C         []float64 // a point on the plane
	N         []float64 // unit normal
	HalfWidth float64   // half-extent for the bounding box
}

// NewPlane returns a new plane. n is normalised here.
func NewPlane(c, n []float64, halfWidth float64) (o *Plane) {
	o = &Plane{NewIndex(), c, unit(n), halfWidth}
	return
}

// Index returns the global index of this geometry
func (o *Plane) Index() uint32 { return o.Idx }

// Kind returns the kind of this geometry
func (o *Plane) Kind() Kind { return KindPlane }

// SignedDistance returns the signed distance from p to the plane. The front
// half-space (along the normal) is positive.
func (o *Plane) SignedDistance(p []float64) float64 {
	return (p[0]-o.C[0])*o.N[0] + (p[1]-o.C[1])*o.N[1] + (p[2]-o.C[2])*o.N[2]
}

// BoundingBox returns the bounding box of the indexed region of the plane
func (o *Plane) BoundingBox() (lo, hi []float64) {
	lo = make([]float64, 3)
	hi = make([]float64, 3)
	for k := 0; k < 3; k++ {
		lo[k] = o.C[k] - o.HalfWidth
		hi[k] = o.C[k] + o.HalfWidth
	}
	return
}

// Sphere is an analytical sphere
type Sphere struct {
	Idx uint32    // global index
	C   []float64 // centre
	R   float64   // radius
}

// NewSphere returns a new sphere
func NewSphere(c []float64, r float64) (o *Sphere) {
	if r <= 0 {
		chk.Panic("sphere radius must be positive. r=%g is invalid", r)
	}
	return &Sphere{NewIndex(), c, r}
}

// Index returns the global index of this geometry
func (o *Sphere) Index() uint32 { return o.Idx }

// Kind returns the kind of this geometry
func (o *Sphere) Kind() Kind { return KindSphere }

// SignedDistance returns the signed distance from p to the sphere surface
// (negative inside)
func (o *Sphere) SignedDistance(p []float64) float64 {
	return dist(p, o.C) - o.R
}

// Contains tells whether p is inside the sphere
func (o *Sphere) Contains(p []float64) bool { return o.SignedDistance(p) < 0 }

// BoundingBox returns the tight bounding box of the sphere
func (o *Sphere) BoundingBox() (lo, hi []float64) {
	lo = make([]float64, 3)
	hi = make([]float64, 3)
	for k := 0; k < 3; k++ {
		lo[k] = o.C[k] - o.R
		hi[k] = o.C[k] + o.R
	}
	return
}

// Capsule is an analytical capsule: a segment of length L along the unit
// axis A through the centre C, inflated by the radius R
type Capsule struct {
	Idx uint32    // global index
	C   []float64 // centre
	A   []float64 // unit axis
	L   float64   // length of the inner segment
	R   float64   // radius
}

// NewCapsule returns a new capsule. a is normalised here.
func NewCapsule(c, a []float64, l, r float64) (o *Capsule) {
	if l <= 0 || r <= 0 {
		chk.Panic("capsule length and radius must be positive. l=%g, r=%g is invalid", l, r)
	}
	return &Capsule{NewIndex(), c, unit(a), l, r}
}

// Index returns the global index of this geometry
func (o *Capsule) Index() uint32 { return o.Idx }

// Kind returns the kind of this geometry
func (o *Capsule) Kind() Kind { return KindCapsule }

// Endpoints writes the two endpoints of the inner segment into p0 and p1
func (o *Capsule) Endpoints(p0, p1 []float64) {
	for k := 0; k < 3; k++ {
		p0[k] = o.C[k] - o.A[k]*o.L/2.0
		p1[k] = o.C[k] + o.A[k]*o.L/2.0
	}
}

// Contains tells whether p is inside the capsule
func (o *Capsule) Contains(p []float64) bool {
	p0 := make([]float64, 3)
	p1 := make([]float64, 3)
	o.Endpoints(p0, p1)
	cp := make([]float64, 3)
	SegmentClosestPoint(p, p0, p1, cp)
	return dist(p, cp) < o.R
}

// BoundingBox returns the tight bounding box of the capsule
func (o *Capsule) BoundingBox() (lo, hi []float64) {
	lo = make([]float64, 3)
	hi = make([]float64, 3)
	for k := 0; k < 3; k++ {
		e := math.Abs(o.A[k])*o.L/2.0 + o.R
		lo[k] = o.C[k] - e
		hi[k] = o.C[k] + e
	}
	return
}

// Cylinder is an analytical cylinder of length L and radius R along the unit
// axis A through the centre C
type Cylinder struct {
	Idx uint32    // global index
	C   []float64 // centre
	A   []float64 // unit axis
	L   float64   // length
	R   float64   // radius
}

// NewCylinder returns a new cylinder. a is normalised here.
func NewCylinder(c, a []float64, l, r float64) (o *Cylinder) {
	if l <= 0 || r <= 0 {
		chk.Panic("cylinder length and radius must be positive. l=%g, r=%g is invalid", l, r)
	}
	return &Cylinder{NewIndex(), c, unit(a), l, r}
}

// Index returns the global index of this geometry
func (o *Cylinder) Index() uint32 { return o.Idx }

// Kind returns the kind of this geometry
func (o *Cylinder) Kind() Kind { return KindCylinder }

// Contains tells whether p is inside the cylinder
func (o *Cylinder) Contains(p []float64) bool {
	var d [3]float64
	for k := 0; k < 3; k++ {
		d[k] = p[k] - o.C[k]
	}
	h := utl.Dot3d(d[:], o.A)
	if math.Abs(h) > o.L/2.0 {
		return false
	}
	rr := 0.0
	for k := 0; k < 3; k++ {
		e := d[k] - h*o.A[k]
		rr += e * e
	}
	return rr < o.R*o.R
}

// BoundingBox returns the tight bounding box of the cylinder
func (o *Cylinder) BoundingBox() (lo, hi []float64) {
	lo = make([]float64, 3)
	hi = make([]float64, 3)
	for k := 0; k < 3; k++ {
		e := math.Abs(o.A[k])*o.L/2.0 + o.R*math.Sqrt(math.Max(0, 1-o.A[k]*o.A[k]))
		lo[k] = o.C[k] - e
		hi[k] = o.C[k] + e
	}
	return
}

// Box is an analytical oriented box defined by a centre, three orthonormal
// axes and three half-extents
type Box struct {
	Idx  uint32      // global index
	C    []float64   // centre
	Axes [][]float64 // [3][3] orthonormal axes
	Half []float64   // [3] half-extents
}

// NewBox returns a new oriented box. The axes are normalised here.
func NewBox(c []float64, axes [][]float64, half []float64) (o *Box) {
	ax := make([][]float64, 3)
	for i := 0; i < 3; i++ {
		if half[i] <= 0 {
			chk.Panic("box half-extents must be positive. %v is invalid", half)
		}
		ax[i] = unit(axes[i])
	}
	return &Box{NewIndex(), c, ax, half}
}

// Index returns the global index of this geometry
func (o *Box) Index() uint32 { return o.Idx }

// Kind returns the kind of this geometry
func (o *Box) Kind() Kind { return KindBox }

// Contains tells whether p is inside the box
func (o *Box) Contains(p []float64) bool {
	var d [3]float64
	for k := 0; k < 3; k++ {
		d[k] = p[k] - o.C[k]
	}
	for i := 0; i < 3; i++ {
		if math.Abs(utl.Dot3d(d[:], o.Axes[i])) > o.Half[i] {
			return false
		}
	}
	return true
}

// BoundingBox returns the tight bounding box of the oriented box
func (o *Box) BoundingBox() (lo, hi []float64) {
	lo = make([]float64, 3)
	hi = make([]float64, 3)
	for k := 0; k < 3; k++ {
		e := 0.0
		for i := 0; i < 3; i++ {
			e += math.Abs(o.Axes[i][k]) * o.Half[i]
		}
		lo[k] = o.C[k] - e
		hi[k] = o.C[k] + e
	}
	return
}

// SegmentClosestPoint writes into cp the point of segment (a,b) closest to p
func SegmentClosestPoint(p, a, b, cp []float64) {
	var ab [3]float64
	num := 0.0
	den := 0.0
	for k := 0; k < 3; k++ {
		ab[k] = b[k] - a[k]
		num += (p[k] - a[k]) * ab[k]
		den += ab[k] * ab[k]
	}
	t := 0.0
	if den > 0 {
		t = num / den
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	for k := 0; k < 3; k++ {
		cp[k] = a[k] + t*ab[k]
	}
}

// unit returns a normalised copy of v
func unit(v []float64) []float64 {
	n := la.VecNorm(v)
	if n < 1e-14 {
		chk.Panic("cannot normalise zero-length vector %v", v)
	}
	return []float64{v[0] / n, v[1] / n, v[2] / n}
}

// dist returns the distance between two points
func dist(a, b []float64) float64 {
	var d [3]float64
	for k := 0; k < 3; k++ {
		d[k] = a[k] - b[k]
	}
	return math.Sqrt(utl.Dot3d(d[:], d[:]))
}
