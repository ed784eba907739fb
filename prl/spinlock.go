// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prl

import (
	"runtime"
	"sync/atomic"
)

// SpinLock is a ticket lock. It is adequate for very short critical sections
// with low contention, such as the O(1) list insertions of the spatial
// index. The zero value is an unlocked lock.
type SpinLock struct {
	next  uint32
	owner uint32
}

// Lock acquires the lock
func (o *SpinLock) Lock() {
	t := atomic.AddUint32(&o.next, 1) - 1
	for atomic.LoadUint32(&o.owner) != t {
		runtime.Gosched()
	}
}

// Unlock releases the lock
func (o *SpinLock) Unlock() {
	atomic.AddUint32(&o.owner, 1)
}
