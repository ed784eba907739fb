// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oct

import "github.com/cpmech/gosl/chk"

// poolChunkSize is the number of 8-node blocks allocated at once when the
// pool runs dry
const poolChunkSize = 64

// requestChildren takes one 8-node block from the memory pool, refilling
// the pool from a single chunk allocation when it is exhausted. Called only
// while splitting a node.
func (o *Octree) requestChildren() (blk *nodeBlock) {
	o.poolLock.Lock()
	if o.numAvail == 0 {
		o.allocateBlocks(poolChunkSize)
	}
	blk = o.poolHead
	o.poolHead = blk.next
	o.numAvail--
	o.activeBlocks[blk] = true
	o.poolLock.Unlock()
	return
}

// returnChildren gives an 8-node block back to the memory pool. Called only
// while destroying descendant nodes.
func (o *Octree) returnChildren(blk *nodeBlock) {
	o.poolLock.Lock()
	blk.next = o.poolHead
	o.poolHead = blk
	o.numAvail++
	delete(o.activeBlocks, blk)
	o.poolLock.Unlock()
}

// allocateBlocks grows the pool by n blocks carved from one chunk. The
// caller must hold the pool lock.
func (o *Octree) allocateBlocks(n int) {
	chunk := make([]nodeBlock, n)
	for i := 0; i < n; i++ {
		blk := &chunk[i]
		blk.next = o.poolHead
		o.poolHead = blk
	}
	o.numAvail += n
	o.numAllocated += n * 8
}

// NumAllocatedNodes returns the total number of nodes allocated so far,
// root included
func (o *Octree) NumAllocatedNodes() int { return o.numAllocated }

// NumActiveNodes returns the number of nodes currently hanging from the root
func (o *Octree) NumActiveNodes() int { return o.numAllocated - o.numAvail*8 }

// activeBlockList snapshots the set of blocks in use, for iteration by the
// parallel update passes
func (o *Octree) activeBlockList() (blocks []*nodeBlock) {
	o.poolLock.Lock()
	blocks = make([]*nodeBlock, 0, len(o.activeBlocks))
	for blk := range o.activeBlocks {
		blocks = append(blocks, blk)
	}
	o.poolLock.Unlock()
	return
}

// CheckPool verifies the pool accounting: every allocated node is either the
// root, in an active block, or in the free list. A mismatch means internal
// data corruption and panics.
func (o *Octree) CheckPool() {
	o.poolLock.Lock()
	nfree := 0
	for blk := o.poolHead; blk != nil; blk = blk.next {
		nfree++
	}
	nactive := len(o.activeBlocks)
	o.poolLock.Unlock()
	if nfree != o.numAvail {
		chk.Panic("internal data corrupted: free list has %d blocks but counter says %d", nfree, o.numAvail)
	}
	if 8*(nfree+nactive)+1 != o.numAllocated {
		chk.Panic("internal data corrupted: 8*(%d+%d)+1 != %d allocated nodes", nfree, nactive, o.numAllocated)
	}
}
