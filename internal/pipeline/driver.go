// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline implements the driver (§4.J): the FIFO loop that
// carries each anchor cluster through match recovery, orientation
// resolution, repeat filtering, reframing, verification and scaffolding,
// re-queueing sub-clusters produced along the way until the queue drains.
package pipeline

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/kortschak/scaflink"
	"github.com/kortschak/scaflink/internal/align"
	"github.com/kortschak/scaflink/internal/cluster"
	"github.com/kortschak/scaflink/internal/orient"
	"github.com/kortschak/scaflink/internal/recoup"
	"github.com/kortschak/scaflink/internal/reframe"
	"github.com/kortschak/scaflink/internal/repeat"
	"github.com/kortschak/scaflink/internal/scaffold"
	"github.com/kortschak/scaflink/internal/split"
	"github.com/kortschak/scaflink/internal/store"
	"github.com/kortschak/scaflink/internal/verify"
)

// repeatSpreadThreshold is §4.F's coordinate-spread threshold. There is
// no CLI flag for it; its value is fixed from scenario S4, whose repeat
// group has all four spreads under 3000.
const repeatSpreadThreshold = 3000

// Scaffold is one completed scaffold: an ordered row table plus the
// cluster's lead contig, used only to make the driver's output order
// deterministic regardless of worker count.
type Scaffold struct {
	LeadContig string
	Rows       []scaffold.Row
}

// Driver runs the pipeline described by §4.J over a config and a logger.
// A nil Logger discards the driver's log messages; callers needing the
// standard behaviour should pass log.New(os.Stderr, "", log.LstdFlags).
type Driver struct {
	scaflink.Config
	Logger *log.Logger
}

func (d *Driver) logf(format string, args ...interface{}) {
	if d.Logger != nil {
		d.Logger.Printf(format, args...)
	}
}

func (d *Driver) workers() int {
	if d.Workers < 1 {
		return 1
	}
	return d.Workers
}

// Run executes the whole pipeline over one ingest batch: split, anchor
// clustering, then the FIFO-driven per-cluster loop (D through I),
// returning every scaffold produced, sorted by lead contig name so the
// result is independent of --workers.
func (d *Driver) Run(records []align.Record) []Scaffold {
	records = d.canonicalize(records)
	strict, rest := split.Split(records, split.Thresholds{NbMatchMin: d.NbMatchMin, IdSeqMin: d.IdSeqMin})
	initial := cluster.Ancrage(strict)
	d.logf("anchor clustering produced %d cluster(s)", len(initial))

	if d.Display {
		d.traceBipartite(strict)
	}

	q := newQueue(initial)

	var (
		mu        sync.Mutex
		scaffolds []Scaffold
		wg        sync.WaitGroup
	)
	n := d.workers()
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			for {
				c, ok := q.pop()
				if !ok {
					return
				}
				produced, requeue := d.processCluster(c, strict, rest)
				for _, sub := range requeue {
					q.push(sub)
				}
				if len(produced) > 0 {
					mu.Lock()
					scaffolds = append(scaffolds, produced...)
					mu.Unlock()
				}
				q.done()
			}
		}()
	}
	wg.Wait()

	sort.Slice(scaffolds, func(i, j int) bool { return scaffolds[i].LeadContig < scaffolds[j].LeadContig })
	return scaffolds
}

// processCluster runs §4.D-§4.I for one cluster and returns the
// scaffold(s) it produced directly (its own scaffold, or one or more
// degenerate single-contig scaffolds) plus any sub-clusters from step 3
// of §4.I that must be re-queued.
func (d *Driver) processCluster(c cluster.Cluster, strict, rest []align.Record) (produced []Scaffold, requeue []cluster.Cluster) {
	strictCluster := cluster.Restrict(strict, c)
	if len(strictCluster) == 0 {
		d.logf("%v: %v", c.Tnames, ErrEmptyCluster)
		return nil, nil
	}

	combined := recoup.Recup(rest, strictCluster, d.IdSeqMin)
	classes := orient.Resolve(combined)
	reframed := reframe.Reframe(combined, classes)
	filtered := repeat.Filter(reframed, repeatSpreadThreshold)
	if len(filtered) == 0 {
		d.logf("%v: %v (repeat filter)", c.Tnames, ErrEmptyCluster)
		return nil, nil
	}

	pairs := verify.Verify(filtered)
	if len(pairs) == 0 {
		d.logf("%v: %v (verification)", c.Tnames, ErrEmptyCluster)
		return nil, nil
	}

	if d.Display {
		d.traceCoverage(c, pairs)
	}

	contigs := scaffold.ContigInfo(pairs)
	chains := d.linearise(c, pairs)
	if len(chains) == 0 {
		d.logf("%v: %v", c.Tnames, ErrDegenerateScaffold)
		for _, t := range c.Tnames {
			meta, ok := contigs[t]
			if !ok {
				continue
			}
			produced = append(produced, Scaffold{LeadContig: t, Rows: scaffold.SingleContig(t, meta)})
		}
		return produced, nil
	}

	covered := map[string]bool{}
	for i, chain := range chains {
		rows := scaffold.Position(chain, contigs)
		lead := chain.Contigs()[0]
		for _, t := range chain.Contigs() {
			covered[t] = true
		}
		if i == 0 {
			produced = append(produced, Scaffold{LeadContig: lead, Rows: rows})
			continue
		}
		// Remaining chains are re-queued as fresh clusters (§4.I step 3).
		requeue = append(requeue, cluster.Cluster{Tnames: sortedCopy(chain.Contigs())})
	}

	// A contig that passed verification but has no surviving adjacency
	// (its only query partner didn't also verify against a second
	// target) belongs to no chain and must still be emitted, matching
	// SingleContig's guarantee for the len(chains)==0 case above.
	for _, t := range c.Tnames {
		if covered[t] {
			continue
		}
		if meta, ok := contigs[t]; ok {
			produced = append(produced, Scaffold{LeadContig: t, Rows: scaffold.SingleContig(t, meta)})
		}
	}
	return produced, requeue
}

// linearise runs §4.I steps 1-3, recovering from the cycle assertion of
// §4.M: clean_relations is defined to make a cycle impossible, so a panic
// here is a programming-error-level event, logged and treated as a
// degenerate (edgeless) scaffold rather than crashing the run.
func (d *Driver) linearise(c cluster.Cluster, pairs []verify.AggregatedPair) (chains []scaffold.Chain) {
	defer func() {
		if r := recover(); r != nil {
			d.logf("%v: internal error building adjacency graph: %v", c.Tnames, r)
			chains = nil
		}
	}()

	edges := scaffold.Edges(pairs)
	cleaned := scaffold.CleanRelations(edges)
	if err := scaffold.CheckAcyclic(cleaned); err != nil {
		panic(err)
	}
	if d.Display {
		dot, err := scaffold.DOT(cleaned, fmt.Sprintf("cluster_%s", c.Tnames[0]))
		if err == nil {
			d.logf("adjacency graph:\n%s", dot)
		}
	}
	return scaffold.Linearise(cleaned)
}

// canonicalize passes records through the ordered alignment table (§4.K)
// once, so everything downstream sees the by-target, by-coordinate
// canonical order the design notes' "groupings become sort+scan" calls
// for, rather than file-ingest order. The table is transient: it is torn
// down before canonicalize returns, so Run's caller sees no persisted
// state (§6). A failure to build or scan the table is not fatal to the
// run — it only affects determinism of tie-breaks among otherwise-equal
// records, so canonicalize logs and falls back to the ingest order.
func (d *Driver) canonicalize(records []align.Record) []align.Record {
	t, err := store.NewTable()
	if err != nil {
		d.logf("alignment table: %v (continuing in ingest order)", err)
		return records
	}
	defer t.Close()

	if err := t.InsertAll(records); err != nil {
		d.logf("alignment table: %v (continuing in ingest order)", err)
		return records
	}
	ordered, err := t.All()
	if err != nil {
		d.logf("alignment table: %v (continuing in ingest order)", err)
		return records
	}
	return ordered
}

func sortedCopy(ss []string) []string {
	out := append([]string(nil), ss...)
	sort.Strings(out)
	return out
}
