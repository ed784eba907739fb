// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package col

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// TestAABBToAABB tells whether two axis-aligned boxes overlap (boundaries
// touching counts as overlap)
func TestAABBToAABB(loA, hiA, loB, hiB []float64) bool {
	return hiA[0] >= loB[0] && loA[0] <= hiB[0] &&
		hiA[1] >= loB[1] && loA[1] <= hiB[1] &&
		hiA[2] >= loB[2] && loA[2] <= hiB[2]
}

// SegmentIntersectsTriangle tells whether segment (p,q) crosses triangle
// (a,b,c). Degenerate (parallel or zero-area) configurations report false.
func SegmentIntersectsTriangle(p, q, a, b, c []float64) bool {
	var d, e1, e2, s [3]float64
	for k := 0; k < 3; k++ {
		d[k] = q[k] - p[k]
		e1[k] = b[k] - a[k]
		e2[k] = c[k] - a[k]
		s[k] = p[k] - a[k]
	}
	var h, qv [3]float64
	utl.Cross3d(h[:], d[:], e2[:])
	det := utl.Dot3d(e1[:], h[:])
	if math.Abs(det) < 1e-12 {
		return false
	}
	inv := 1.0 / det
	u := utl.Dot3d(s[:], h[:]) * inv
	if u < 0 || u > 1 {
		return false
	}
	utl.Cross3d(qv[:], s[:], e1[:])
	v := utl.Dot3d(d[:], qv[:]) * inv
	if v < 0 || u+v > 1 {
		return false
	}
	t := utl.Dot3d(e2[:], qv[:]) * inv
	return t >= 0 && t <= 1
}

// PointTriangleClosestDistance returns the distance from p to the closest
// point of triangle (a,b,c)
func PointTriangleClosestDistance(p, a, b, c []float64) float64 {
	var ab, ac, ap [3]float64
	for k := 0; k < 3; k++ {
		ab[k] = b[k] - a[k]
		ac[k] = c[k] - a[k]
		ap[k] = p[k] - a[k]
	}

	// vertex region a
	d1 := utl.Dot3d(ab[:], ap[:])
	d2 := utl.Dot3d(ac[:], ap[:])
	if d1 <= 0 && d2 <= 0 {
		return dist3(p, a)
	}

	// vertex region b
	var bp [3]float64
	for k := 0; k < 3; k++ {
		bp[k] = p[k] - b[k]
	}
	d3 := utl.Dot3d(ab[:], bp[:])
	d4 := utl.Dot3d(ac[:], bp[:])
	if d3 >= 0 && d4 <= d3 {
		return dist3(p, b)
	}

	// edge region ab
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		t := d1 / (d1 - d3)
		q := []float64{a[0] + t*ab[0], a[1] + t*ab[1], a[2] + t*ab[2]}
		return dist3(p, q)
	}

	// vertex region c
	var cp [3]float64
	for k := 0; k < 3; k++ {
		cp[k] = p[k] - c[k]
	}
	d5 := utl.Dot3d(ab[:], cp[:])
	d6 := utl.Dot3d(ac[:], cp[:])
	if d6 >= 0 && d5 <= d6 {
		return dist3(p, c)
	}

	// edge region ac
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		t := d2 / (d2 - d6)
		q := []float64{a[0] + t*ac[0], a[1] + t*ac[1], a[2] + t*ac[2]}
		return dist3(p, q)
	}

	// edge region bc
	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		t := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		q := []float64{b[0] + t*(c[0]-b[0]), b[1] + t*(c[1]-b[1]), b[2] + t*(c[2]-b[2])}
		return dist3(p, q)
	}

	// face region
	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	q := []float64{
		a[0] + ab[0]*v + ac[0]*w,
		a[1] + ab[1]*v + ac[1]*w,
		a[2] + ab[2]*v + ac[2]*w,
	}
	return dist3(p, q)
}

// dist3 returns the distance between two points
func dist3(a, b []float64) float64 {
	var d [3]float64
	for k := 0; k < 3; k++ {
		d[k] = a[k] - b[k]
	}
	return math.Sqrt(utl.Dot3d(d[:], d[:]))
}

// norm3 returns the Euclidean norm of v
func norm3(v []float64) float64 {
	return la.VecNorm(v)
}
