// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oct

import "github.com/cpmech/gocol/prl"

// Node is one cell of the loose octree. A node is either a leaf (no child
// block) or an internal node with exactly 8 children drawn from the memory
// pool. The loose bounds are twice as big as the tight bounds, so a
// primitive kept at a node may move by up to half the node width before it
// has to migrate.
type Node struct {
	tree     *Octree
	parent   *Node
	children *nodeBlock // 8 children; nil for a leaf

	center                 []float64 // centre of the node
	lower, upper           []float64 // tight bounds
	looseLower, looseUpper []float64 // 2x loose bounds
	halfWidth              float64
	depth                  int // depth = 1 at the root
	maxDepth               int // cached from the tree at init time
	isLeaf                 bool

	heads  [NumPrimKinds]*Primitive    // per-kind intrusive list heads
	counts [NumPrimKinds]int           // per-kind list lengths
	lock   [NumPrimKinds]prl.SpinLock  // per-kind list locks
	split  prl.SpinLock                // serialises the leaf→internal transition
}

// nodeBlock is the unit of node allocation: 8 nodes at a time, reducing
// allocation and split/merge overhead
type nodeBlock struct {
	nodes [8]Node
	next  *nodeBlock // next block in the memory pool
}

// init (re)initialises a node taken from the pool. Slices already allocated
// by a previous use are recycled.
func (o *Node) init(tree *Octree, parent *Node, center []float64, halfWidth float64, depth int) {
	if o.center == nil {
		o.center = make([]float64, 3)
		o.lower = make([]float64, 3)
		o.upper = make([]float64, 3)
		o.looseLower = make([]float64, 3)
		o.looseUpper = make([]float64, 3)
	}
	for k := 0; k < 3; k++ {
		o.center[k] = center[k]
		o.lower[k] = center[k] - halfWidth
		o.upper[k] = center[k] + halfWidth
		o.looseLower[k] = center[k] - 2.0*halfWidth
		o.looseUpper[k] = center[k] + 2.0*halfWidth
	}
	o.tree = tree
	o.parent = parent
	o.children = nil
	o.halfWidth = halfWidth
	o.depth = depth
	o.maxDepth = tree.maxDepth
	o.isLeaf = true
	for t := 0; t < int(NumPrimKinds); t++ {
		o.heads[t] = nil
		o.counts[t] = 0
	}
}

// IsLeaf tells whether this node has no children
func (o *Node) IsLeaf() bool { return o.isLeaf }

// Child returns child i (0 to 7). The node must not be a leaf.
func (o *Node) Child(i int) *Node { return &o.children.nodes[i] }

// Parent returns the parent node (nil at the root)
func (o *Node) Parent() *Node { return o.parent }

// Head returns the head of the per-kind primitive list
func (o *Node) Head(kind PrimKind) *Primitive { return o.heads[kind] }

// Count returns the number of primitives of the given kind in this node
func (o *Node) Count(kind PrimKind) int { return o.counts[kind] }

// Center returns the centre of the node
func (o *Node) Center() []float64 { return o.center }

// HalfWidth returns half the width of the node
func (o *Node) HalfWidth() float64 { return o.halfWidth }

// Depth returns the depth of the node (1 at the root)
func (o *Node) Depth() int { return o.depth }

// Contains tells whether point p is inside the tight bounds
func (o *Node) Contains(p []float64) bool {
	return p[0] >= o.lower[0] && p[0] <= o.upper[0] &&
		p[1] >= o.lower[1] && p[1] <= o.upper[1] &&
		p[2] >= o.lower[2] && p[2] <= o.upper[2]
}

// ContainsBox tells whether the AABB (lo,hi) is inside the tight bounds
func (o *Node) ContainsBox(lo, hi []float64) bool {
	return lo[0] >= o.lower[0] && lo[1] >= o.lower[1] && lo[2] >= o.lower[2] &&
		hi[0] <= o.upper[0] && hi[1] <= o.upper[1] && hi[2] <= o.upper[2]
}

// LooselyContains tells whether point p is inside the loose bounds
func (o *Node) LooselyContains(p []float64) bool {
	return p[0] >= o.looseLower[0] && p[0] <= o.looseUpper[0] &&
		p[1] >= o.looseLower[1] && p[1] <= o.looseUpper[1] &&
		p[2] >= o.looseLower[2] && p[2] <= o.looseUpper[2]
}

// LooselyContainsBox tells whether the AABB (lo,hi) is inside the loose bounds
func (o *Node) LooselyContainsBox(lo, hi []float64) bool {
	return lo[0] >= o.looseLower[0] && lo[1] >= o.looseLower[1] && lo[2] >= o.looseLower[2] &&
		hi[0] <= o.looseUpper[0] && hi[1] <= o.looseUpper[1] && hi[2] <= o.looseUpper[2]
}

// LooselyOverlaps tells whether the AABB (lo,hi) overlaps the loose bounds
func (o *Node) LooselyOverlaps(lo, hi []float64) bool {
	return hi[0] >= o.looseLower[0] && hi[1] >= o.looseLower[1] && hi[2] >= o.looseLower[2] &&
		lo[0] <= o.looseUpper[0] && lo[1] <= o.looseUpper[1] && lo[2] <= o.looseUpper[2]
}

// clearPrimitiveData recursively resets the per-kind list and counter. The
// primitives themselves stay in the tree's primitive vectors.
func (o *Node) clearPrimitiveData(kind PrimKind) {
	o.heads[kind] = nil
	o.counts[kind] = 0
	if !o.isLeaf {
		for i := 0; i < 8; i++ {
			o.children.nodes[i].clearPrimitiveData(kind)
		}
	}
}

// doSplit requests 8 children from the memory pool and initialises them.
// The node is marked internal only after all children are ready, so
// concurrent readers either see a complete child block or a leaf.
func (o *Node) doSplit() {
	if !o.isLeaf || o.depth == o.maxDepth {
		return
	}
	o.split.Lock()
	if o.isLeaf {
		o.children = o.tree.requestChildren()
		childHalfWidth := o.halfWidth * 0.5
		center := make([]float64, 3)
		for i := 0; i < 8; i++ {
			for k := 0; k < 3; k++ {
				if i&(1<<uint(k)) != 0 {
					center[k] = o.center[k] + childHalfWidth
				} else {
					center[k] = o.center[k] - childHalfWidth
				}
			}
			o.children.nodes[i].init(o.tree, o, center, childHalfWidth, o.depth+1)
		}
		o.isLeaf = false
	}
	o.split.Unlock()
}

// removeAllDescendants recursively returns all descendant nodes to the
// memory pool, making this node a leaf
func (o *Node) removeAllDescendants() {
	if o.isLeaf {
		return
	}
	o.isLeaf = true
	for i := 0; i < 8; i++ {
		o.children.nodes[i].removeAllDescendants()
	}
	o.tree.returnChildren(o.children)
	o.children = nil
}

// removeEmptyDescendants recursively returns child blocks whose eight nodes
// are all empty leaves, promoting this node back to a leaf
func (o *Node) removeEmptyDescendants() {
	if o.isLeaf {
		return
	}
	allEmpty := true
	allLeaves := true
	for i := 0; i < 8; i++ {
		c := &o.children.nodes[i]
		c.removeEmptyDescendants()
		allLeaves = allLeaves && c.isLeaf
		for t := 0; t < int(NumPrimKinds); t++ {
			allEmpty = allEmpty && c.counts[t] == 0
		}
	}
	if allEmpty && allLeaves {
		o.tree.returnChildren(o.children)
		o.children = nil
		o.isLeaf = true
	}
}

// keep links the primitive into this node's per-kind list, as it cannot be
// passed down to any child
func (o *Node) keep(p *Primitive, kind PrimKind) {
	p.node = o
	p.valid = true
	o.lock[kind].Lock()
	p.next = o.heads[kind]
	o.heads[kind] = p
	o.counts[kind]++
	o.lock[kind].Unlock()
}

// insertPoint inserts a point primitive into the subtree in a top-down manner
func (o *Node) insertPoint(p *Primitive) {
	if o.depth == o.maxDepth {
		o.keep(p, KindPoint)
		return
	}
	o.doSplit()

	// octant of the point relative to the node centre
	childIdx := 0
	for k := 0; k < 3; k++ {
		if o.center[k] < p.Pos[k] {
			childIdx |= 1 << uint(k)
		}
	}
	o.children.nodes[childIdx].insertPoint(p)
}

// insertNonPoint inserts a triangle or analytical-geometry primitive into
// the subtree in a top-down manner, keeping it at the first node whose
// children cannot loosely contain it
func (o *Node) insertNonPoint(p *Primitive, kind PrimKind) {
	if o.depth == o.maxDepth {
		o.keep(p, kind)
		return
	}

	childIdx := 0
	if o.straddles(p.Lo, p.Hi, &childIdx) {
		o.keep(p, kind)
		return
	}

	o.doSplit()
	o.children.nodes[childIdx].insertNonPoint(p, kind)
}

// straddles tells whether the AABB (lo,hi) spans more than one child of this
// node; if not, childIdx receives the octant that loosely contains it. The
// 0.5 and 1.5 half-width factors derive from the 2x loose bound of the
// children.
func (o *Node) straddles(lo, hi []float64, childIdx *int) bool {
	idx := 0
	for k := 0; k < 3; k++ {
		c := (lo[k] + hi[k]) * 0.5
		if o.center[k] < c {
			if o.center[k]-o.halfWidth*0.5 > lo[k] || o.center[k]+o.halfWidth*1.5 < hi[k] {
				return true
			}
			idx |= 1 << uint(k)
		} else {
			if o.center[k]+o.halfWidth*0.5 < hi[k] || o.center[k]-o.halfWidth*1.5 > lo[k] {
				return true
			}
		}
	}
	*childIdx = idx
	return false
}
