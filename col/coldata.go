// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package col implements the collision detection layer: the collision-data
// model consumed by the solver, the narrow-phase kernels, the octree-routed
// broad phase and the named detection algorithms
package col

import (
	"sort"
	"sync"
)

// CellType tags the kind of cell referenced by a cell-index element
type CellType int

// cell types
const (
	CellVertex CellType = iota
	CellEdge
	CellTriangle
	CellTetrahedron
)

// ElemKind tags the variant held by an Element
type ElemKind int

// element kinds
const (
	CellIndexElem ElemKind = iota
	CellVertexElem
	PointDirectionElem
	PointIndexDirectionElem
)

// CellIndexElement references a cell of a geometry either through one local
// cell index (resolved via the geometry connectivity) or through 2 to 4
// explicit vertex indices
type CellIndexElement struct {
	CellType CellType
	IdCount  int    // 1 for a cell index; 2-4 for explicit vertex indices
	Ids      [4]int // cell index or vertex indices
}

// CellVertexElement holds 1 to 4 explicit world-space vertices describing a
// point, an edge, a triangle or a tetrahedron
type CellVertexElement struct {
	Size int
	Pts  [4][]float64
}

// PointDirectionElement holds a world-space contact point, a unit direction
// and a penetration depth
type PointDirectionElement struct {
	Pt    []float64
	Dir   []float64
	Depth float64
}

// PointIndexDirectionElement references a vertex of a geometry by local
// index together with a unit direction and a penetration depth
type PointIndexDirectionElement struct {
	PtIndex int
	Dir     []float64
	Depth   float64
}

// Element is one tagged collision element. Only the field selected by Kind
// is meaningful.
type Element struct {
	Kind                ElemKind
	CellIndex           CellIndexElement
	CellVertex          CellVertexElement
	PointDirection      PointDirectionElement
	PointIndexDirection PointIndexDirectionElement
}

// NewPointDirectionElement returns a point-direction element
func NewPointDirectionElement(pt, dir []float64, depth float64) Element {
	return Element{Kind: PointDirectionElem, PointDirection: PointDirectionElement{pt, dir, depth}}
}

// NewPointIndexDirectionElement returns a point-index-direction element
func NewPointIndexDirectionElement(ptIndex int, dir []float64, depth float64) Element {
	return Element{Kind: PointIndexDirectionElem, PointIndexDirection: PointIndexDirectionElement{ptIndex, dir, depth}}
}

// VTData is one vertex-triangle contact: a vertex of the point set against a
// triangle of the mesh, with the closest distance between them
type VTData struct {
	VertIdx         int
	TriIdx          int
	ClosestDistance float64
}

// EEData is one edge-edge contact between two meshes, with a parametric
// position along the first edge
type EEData struct {
	EdgeA [2]int
	EdgeB [2]int
	T     float64
}

// PTCollisionType encodes which mesh owns the vertex (bit 0) and which owns
// the tetrahedron (bit 1) of a point-tetrahedron contact: 0 means mesh A and
// 1 means mesh B
type PTCollisionType int

// point-tetrahedron collision types
const (
	AInA PTCollisionType = iota // vertex of A inside tetrahedron of A
	BInA                        // vertex of B inside tetrahedron of A
	AInB                        // vertex of A inside tetrahedron of B
	BInB                        // vertex of B inside tetrahedron of B
)

// PTData is one point-tetrahedron contact with the barycentric weights of
// the vertex in the tetrahedron
type PTData struct {
	Type    PTCollisionType
	VertIdx int
	TetIdx  int
	Weights []float64 // [4]
}

// VTBuffer is an append-safe buffer of vertex-triangle contacts
type VTBuffer struct {
	mu   sync.Mutex
	data []VTData
}

// SafeAppend appends one entry; safe under concurrent producers
func (o *VTBuffer) SafeAppend(e VTData) {
	o.mu.Lock()
	o.data = append(o.data, e)
	o.mu.Unlock()
}

// Len returns the number of entries
func (o *VTBuffer) Len() int { return len(o.data) }

// At returns entry i
func (o *VTBuffer) At(i int) VTData { return o.data[i] }

// Set overwrites entry i
func (o *VTBuffer) Set(i int, e VTData) { o.data[i] = e }

// Truncate drops all entries from n on
func (o *VTBuffer) Truncate(n int) { o.data = o.data[:n] }

// Sort orders the entries by vertex index and, for equal vertices, by
// closest distance. Used by the point-mesh deduplication post-process.
func (o *VTBuffer) Sort() {
	sort.Slice(o.data, func(i, j int) bool {
		if o.data[i].VertIdx != o.data[j].VertIdx {
			return o.data[i].VertIdx < o.data[j].VertIdx
		}
		return o.data[i].ClosestDistance < o.data[j].ClosestDistance
	})
}

// clear empties the buffer
func (o *VTBuffer) clear() { o.data = o.data[:0] }

// EEBuffer is an append-safe buffer of edge-edge contacts
type EEBuffer struct {
	mu   sync.Mutex
	data []EEData
}

// SafeAppend appends one entry; safe under concurrent producers
func (o *EEBuffer) SafeAppend(e EEData) {
	o.mu.Lock()
	o.data = append(o.data, e)
	o.mu.Unlock()
}

// Len returns the number of entries
func (o *EEBuffer) Len() int { return len(o.data) }

// At returns entry i
func (o *EEBuffer) At(i int) EEData { return o.data[i] }

// clear empties the buffer
func (o *EEBuffer) clear() { o.data = o.data[:0] }

// PTBuffer is an append-safe buffer of point-tetrahedron contacts
type PTBuffer struct {
	mu   sync.Mutex
	data []PTData
}

// SafeAppend appends one entry; safe under concurrent producers
func (o *PTBuffer) SafeAppend(e PTData) {
	o.mu.Lock()
	o.data = append(o.data, e)
	o.mu.Unlock()
}

// Len returns the number of entries
func (o *PTBuffer) Len() int { return len(o.data) }

// At returns entry i
func (o *PTBuffer) At(i int) PTData { return o.data[i] }

// clear empties the buffer
func (o *PTBuffer) clear() { o.data = o.data[:0] }

// Data is the collision buffer filled by one detection algorithm: one
// element sequence per side of the pair plus the typed sub-buffers read by
// name by the solver. Appends are safe under concurrent producers; reads
// must not overlap a detect call.
type Data struct {
	mu sync.Mutex
	A  []Element // elements seen from side A
	B  []Element // elements seen from side B

	VT VTBuffer
	EE EEBuffer
	PT PTBuffer
}

// NewData returns a new empty collision buffer
func NewData() *Data { return new(Data) }

// AppendA appends an element to side A
func (o *Data) AppendA(e Element) {
	o.mu.Lock()
	o.A = append(o.A, e)
	o.mu.Unlock()
}

// AppendB appends an element to side B
func (o *Data) AppendB(e Element) {
	o.mu.Lock()
	o.B = append(o.B, e)
	o.mu.Unlock()
}

// AppendAB appends one element to each side atomically
func (o *Data) AppendAB(a, b Element) {
	o.mu.Lock()
	o.A = append(o.A, a)
	o.B = append(o.B, b)
	o.mu.Unlock()
}

// ClearAll empties every sub-buffer. Must not run concurrently with writers.
func (o *Data) ClearAll() {
	o.A = o.A[:0]
	o.B = o.B[:0]
	o.VT.clear()
	o.EE.clear()
	o.PT.clear()
}
