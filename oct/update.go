// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oct

import (
	"github.com/cpmech/gocol/geo"
	"github.com/cpmech/gocol/prl"
)

// incrementalUpdate refreshes the tree against the current geometry state
// without rebuilding it. Primitives that left the loose bounds of their node
// climb to the lowest ancestor that tightly contains them, are dropped from
// their old lists, and are reinserted top-down from that ancestor. Child
// blocks left completely empty are returned to the pool.
func (o *Octree) incrementalUpdate() {
	o.refreshPointsAndCheckValidity()
	o.refreshBoxesAndCheckValidity(KindTriangle)
	o.refreshBoxesAndCheckValidity(KindAnalytic)

	o.removeInvalidFromNodes()

	o.reinsertInvalid(KindPoint)
	o.reinsertInvalid(KindTriangle)
	o.reinsertInvalid(KindAnalytic)

	o.root.removeEmptyDescendants()
}

// refreshPointsAndCheckValidity re-reads the world position of every point
// primitive and checks whether its node still loosely contains it. Invalid
// points are re-anchored at the lowest ancestor that tightly contains them
// (or the root). Points resident at the root are always reinserted.
func (o *Octree) refreshPointsAndCheckValidity() {
	ps := o.primitives[KindPoint]
	prl.Run(len(ps), func(i int) {
		p := ps[i]
		copy(p.Pos, p.Geom.(*geo.PointSet).Vert(p.Idx))
		node := p.node
		if !node.LooselyContains(p.Pos) && node != o.root {
			for node != o.root {
				node = node.parent
				if node.Contains(p.Pos) || node == o.root {
					p.valid = false
					p.node = node
					break
				}
			}
			return
		}
		p.valid = node != o.root
	})
}

// refreshBoxesAndCheckValidity re-reads the bounding box of every non-point
// primitive of the given kind and checks whether the primitive may stay at
// its node: it must still be loosely contained and either be at max depth or
// still straddle the children
func (o *Octree) refreshBoxesAndCheckValidity(kind PrimKind) {
	ps := o.primitives[kind]
	prl.Run(len(ps), func(i int) {
		p := ps[i]
		computePrimitiveBox(p, kind)
		node := p.node
		if !node.LooselyContainsBox(p.Lo, p.Hi) && node != o.root {
			for node != o.root {
				node = node.parent
				if node.ContainsBox(p.Lo, p.Hi) || node == o.root {
					p.valid = false
					p.node = node
					break
				}
			}
			return
		}
		if node.depth == o.maxDepth {
			p.valid = true
			return
		}
		var childIdx int
		if node.straddles(p.Lo, p.Hi, &childIdx) {
			p.valid = true
			return
		}
		// can be moved down to a child; reinsertion starts from this node
		p.valid = false
	})
}

// removeInvalidFromNodes rebuilds the per-kind list of every active node,
// dropping primitives marked invalid. Counts are recomputed from the new
// list lengths. The root is processed along with the pooled blocks since it
// lives outside the pool.
func (o *Octree) removeInvalidFromNodes() {
	blocks := o.activeBlockList()
	prl.Run(len(blocks)+1, func(i int) {
		if i == len(blocks) {
			o.root.dropInvalid()
			return
		}
		for j := 0; j < 8; j++ {
			blocks[i].nodes[j].dropInvalid()
		}
	})
}

// dropInvalid relinks each per-kind list keeping only valid primitives
func (o *Node) dropInvalid() {
	for t := 0; t < int(NumPrimKinds); t++ {
		if o.heads[t] == nil {
			continue
		}
		var newHead *Primitive
		count := 0
		p := o.heads[t]
		for p != nil {
			next := p.next
			if p.valid {
				p.next = newHead
				newHead = p
				count++
			}
			p = next
		}
		o.heads[t] = newHead
		o.counts[t] = count
	}
}

// reinsertInvalid re-runs the top-down insertion for every invalid
// primitive, starting from the ancestor recorded during the validity check
func (o *Octree) reinsertInvalid(kind PrimKind) {
	ps := o.primitives[kind]
	prl.Run(len(ps), func(i int) {
		p := ps[i]
		if p.valid {
			return
		}
		if kind == KindPoint {
			p.node.insertPoint(p)
			return
		}
		p.node.insertNonPoint(p, kind)
	})
}
