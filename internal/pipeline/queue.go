// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"sync"

	"github.com/kortschak/scaflink/internal/cluster"
)

// queue is the driver's FIFO work list (§4.J, §5): a mutex-guarded slice
// with a condition variable for blocking pop, rather than a Go channel,
// because workers both pop from and push back onto the same queue — a
// channel-based queue of bounded capacity can deadlock a single worker
// trying to push a re-queued cluster while still holding the item it
// popped.
//
// pending counts clusters that are either sitting in items or claimed by a
// pop but not yet marked done, so it only reaches zero once every cluster,
// including every cluster re-queued while processing an earlier one, has
// finished.
type queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []cluster.Cluster
	pending int
}

func newQueue(initial []cluster.Cluster) *queue {
	q := &queue{items: append([]cluster.Cluster(nil), initial...), pending: len(initial)}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *queue) push(c cluster.Cluster) {
	q.mu.Lock()
	q.items = append(q.items, c)
	q.pending++
	q.cond.Signal()
	q.mu.Unlock()
}

// pop blocks until a cluster is available, returning ok=false once the
// queue is permanently drained: empty with nothing still being processed.
func (q *queue) pop() (c cluster.Cluster, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		if q.pending == 0 {
			return cluster.Cluster{}, false
		}
		q.cond.Wait()
	}
	c, q.items = q.items[0], q.items[1:]
	return c, true
}

// done marks one popped cluster as fully processed, including any of its
// own re-queued sub-clusters having already been pushed.
func (q *queue) done() {
	q.mu.Lock()
	q.pending--
	if q.pending == 0 {
		q.cond.Broadcast()
	}
	q.mu.Unlock()
}
