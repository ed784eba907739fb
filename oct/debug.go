// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oct

// DebugLines is a caller-provided buffer of line segments for visual
// verification. Vertices are consumed in consecutive pairs.
type DebugLines struct {
	Verts [][]float64 // flat list of segment endpoints
}

// AppendSegment appends one line segment (copies of a and b)
func (o *DebugLines) AppendSegment(a, b []float64) {
	o.Verts = append(o.Verts,
		[]float64{a[0], a[1], a[2]},
		[]float64{b[0], b[1], b[2]})
}

// AppendDebugLines writes a wireframe of the active tree nodes into buf.
// Nodes deeper than MaxLevelDebugRender are pruned; empty internal nodes are
// skipped unless DrawNonEmptyParent is set. Edges fully drawn by rendered
// children are not repeated.
func (o *Octree) AppendDebugLines(buf *DebugLines) {
	o.root.appendDebugLines(buf)
}

// appendDebugLines recursively exports the node wireframe, reporting
// whether this node has been drawn
func (o *Node) appendDebugLines(buf *DebugLines) bool {
	if o.depth > o.tree.MaxLevelDebugRender {
		return false
	}

	// corners follow the same bit pattern as the child octants
	var verts [8][]float64
	var rendered [8]bool
	renderCount := 0
	for i := 0; i < 8; i++ {
		v := []float64{o.center[0], o.center[1], o.center[2]}
		for k := 0; k < 3; k++ {
			if i&(1<<uint(k)) != 0 {
				v[k] += o.halfWidth
			} else {
				v[k] -= o.halfWidth
			}
		}
		verts[i] = v
		if !o.isLeaf {
			rendered[i] = o.children.nodes[i].appendDebugLines(buf)
			if rendered[i] {
				renderCount++
			}
		}
	}

	empty := true
	for t := 0; t < int(NumPrimKinds); t++ {
		empty = empty && o.counts[t] == 0
	}
	if empty {
		if !o.tree.DrawNonEmptyParent {
			return renderCount > 0
		}
		if renderCount == 0 && o.parent != nil {
			return false
		}
	}

	if renderCount < 8 {
		for i := 0; i < 8; i++ {
			for _, bit := range []int{1, 2, 4} {
				if i&bit != 0 && (!rendered[i] || !rendered[i-bit]) {
					buf.AppendSegment(verts[i], verts[i-bit])
				}
			}
		}
	}
	return true
}
