// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package col

import (
	"github.com/cpmech/gocol/geo"
	"github.com/cpmech/gocol/prl"
	"github.com/cpmech/gosl/chk"
)

// baryEps is the tolerance of the barycentric containment test
const baryEps = 1e-10

// tetraToTetraCD detects vertex-in-tetrahedron contacts between two
// tetrahedral meshes through a spatial hash: the vertices of both meshes go
// into one hash (mesh-B ids offset by the vertex count of A so sidedness can
// be recovered), then every tetrahedron queries the hash with its bounding
// box and barycentric-tests the candidates
type tetraToTetraCD struct {
	detectorBase
	a, b *geo.TetMesh
	hash *SpatialHash
}

// newTetraToTetraCD returns the detector with a hash cell size derived from
// the average tetrahedron extent of the two meshes
func newTetraToTetraCD(base detectorBase, a, b *geo.TetMesh) *tetraToTetraCD {
	cellSize := averageTetExtent(a, b)
	if cellSize <= 0 {
		cellSize = 0.1
	}
	return &tetraToTetraCD{base, a, b, NewSpatialHash(cellSize)}
}

// averageTetExtent returns the mean of the largest bounding-box extent over
// all tetrahedra of both meshes (zero if there is none). Meshes still
// missing at construction are skipped.
func averageTetExtent(meshes ...*geo.TetMesh) float64 {
	sum := 0.0
	n := 0
	lo := make([]float64, 3)
	hi := make([]float64, 3)
	for _, mesh := range meshes {
		if mesh == nil {
			continue
		}
		for i := 0; i < mesh.NumTets(); i++ {
			mesh.TetBoundingBox(i, lo, hi)
			w := hi[0] - lo[0]
			for k := 1; k < 3; k++ {
				if hi[k]-lo[k] > w {
					w = hi[k] - lo[k]
				}
			}
			sum += w
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (o *tetraToTetraCD) Detect() {
	if o.a == nil || o.b == nil {
		chk.Panic("missing input geometry for volume-mesh collision detection")
	}
	o.data.ClearAll()
	o.hash.Clear()
	o.hash.InsertPoints(o.a.X)
	o.hash.InsertPoints(o.b.X)
	o.findCollisions(o.a, 0, false)
	o.findCollisions(o.b, o.a.NumVerts(), true)
}

// findCollisions tests the candidate vertices against every tetrahedron of
// one mesh. idOffset is zero for mesh A and |V_A| for mesh B; tetOwnerB
// tells which mesh the tetrahedra belong to, since the offset alone cannot
// (it is zero for both calls when mesh A has no vertices).
func (o *tetraToTetraCD) findCollisions(mesh *geo.TetMesh, idOffset int, tetOwnerB bool) {
	sameMesh := o.a == o.b

	prl.Run(mesh.NumTets(), func(t int) {
		tv := mesh.TetVert(t)
		var own [4]int
		for i := 0; i < 4; i++ {
			own[i] = tv[i] + idOffset
		}

		lo := make([]float64, 3)
		hi := make([]float64, 3)
		mesh.TetBoundingBox(t, lo, hi)
		cands := o.hash.PointsInAABB(lo, hi)
		if len(cands) <= 4 { // only the tetrahedron's own vertices
			return
		}

		w := make([]float64, 4)
		for _, vid := range cands {
			if vid == own[0] || vid == own[1] || vid == own[2] || vid == own[3] {
				continue
			}

			vertOwnerB := vid >= o.a.NumVerts()
			localId := vid
			var pos []float64
			if vertOwnerB {
				localId -= o.a.NumVerts()
				pos = o.b.Vert(localId)
			} else {
				pos = o.a.Vert(localId)
			}

			// with the same mesh on both sides, a vertex is its own mirror
			if sameMesh && (localId == tv[0] || localId == tv[1] || localId == tv[2] || localId == tv[3]) {
				continue
			}

			if !mesh.BaryWeights(t, pos, w) {
				continue
			}
			if w[0] >= -baryEps && w[1] >= -baryEps && w[2] >= -baryEps && w[3] >= -baryEps {
				ctype := PTCollisionType(0)
				if vertOwnerB {
					ctype |= 1
				}
				if tetOwnerB {
					ctype |= 2
				}
				o.data.PT.SafeAppend(PTData{ctype, localId, t, []float64{w[0], w[1], w[2], w[3]}})
			}
		}
	})
}
