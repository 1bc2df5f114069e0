// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"github.com/biogo/store/step"

	"github.com/kortschak/scaflink/internal/align"
	"github.com/kortschak/scaflink/internal/cluster"
	"github.com/kortschak/scaflink/internal/verify"
)

// traceBipartite prints the DOT rendering of the whole-batch bipartite
// target↔query graph before clustering (§4.M), gated on --display.
func (d *Driver) traceBipartite(strict []align.Record) {
	out, err := cluster.DOT(strict, "bipartite")
	if err != nil {
		d.logf("bipartite trace: %v", err)
		return
	}
	d.logf("bipartite graph:\n%s", out)
}

// count is a step.Equaler wrapping an alignment depth, used by
// traceCoverage to build the per-contig coverage footprint (§4.N).
type count int

func (c count) Equal(e step.Equaler) bool { return c == e.(count) }

// traceCoverage builds, per target contig in the cluster, a step.Vector
// recording how many AggregatedPairs span each position, and logs a
// run-length summary. It is purely diagnostic — it is read from nowhere
// else in the pipeline.
func (d *Driver) traceCoverage(c cluster.Cluster, pairs []verify.AggregatedPair) {
	byT := map[string]*step.Vector{}
	for _, p := range pairs {
		v, ok := byT[p.Tname]
		if !ok {
			var err error
			v, err = step.New(0, 1, count(0))
			if err != nil {
				d.logf("coverage trace: %v", err)
				return
			}
			v.Relaxed = true
			byT[p.Tname] = v
		}
		err := v.ApplyRange(p.Tstart, p.Tstop, func(e step.Equaler) step.Equaler {
			return e.(count) + 1
		})
		if err != nil {
			d.logf("coverage trace: %v", err)
			return
		}
	}

	for _, t := range c.Tnames {
		v, ok := byT[t]
		if !ok {
			continue
		}
		v.Do(func(start, end int, e step.Equaler) {
			n := e.(count)
			if n == 0 {
				return
			}
			d.logf("coverage %s:[%d,%d) depth=%d", t, start, end, n)
		})
	}
}
