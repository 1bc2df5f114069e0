// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package orient implements the orientation resolver (§4.E,
// "Direction_assignment"): a breadth-first assignment of every contig in
// a cluster to one of four orientation classes, relative to a reference
// target contig.
package orient

import (
	"sort"

	"github.com/kortschak/scaflink/internal/align"
)

// Class is one of the four orientation classes a contig can belong to.
type Class int

const (
	Tsens Class = iota
	Tinv
	Qsens
	Qinv
)

// Classes holds the four disjoint orientation classes produced for one
// cluster. Every contig that the BFS can reach from the reference
// belongs to exactly one of them; contigs unreachable through frontier
// evidence (design note §9(a), §9(d)) are simply absent, and are treated
// as expected loss by every downstream stage.
type Classes struct {
	Tsens, Tinv map[string]bool
	Qsens, Qinv map[string]bool
	Reference   string
}

func newClasses() Classes {
	return Classes{
		Tsens: map[string]bool{}, Tinv: map[string]bool{},
		Qsens: map[string]bool{}, Qinv: map[string]bool{},
	}
}

// ClassOfT reports the class of a target contig and whether it was
// classified at all.
func (c Classes) ClassOfT(t string) (Class, bool) {
	if c.Tsens[t] {
		return Tsens, true
	}
	if c.Tinv[t] {
		return Tinv, true
	}
	return 0, false
}

// ClassOfQ reports the class of a query contig and whether it was
// classified at all.
func (c Classes) ClassOfQ(q string) (Class, bool) {
	if c.Qsens[q] {
		return Qsens, true
	}
	if c.Qinv[q] {
		return Qinv, true
	}
	return 0, false
}

// strandSum is one (T,Q) entry of the strand_max table: the Strand with
// the larger NbMatch sum for that pair, and that sum.
type strandSum struct {
	T, Q    string
	Strand  align.Strand
	NbMatch int
}

// buildStrandMax groups records by (T,Q,Strand), sums NbMatch, and for
// each (T,Q) keeps the row whose strand has the greater sum. Ties are
// resolved by first occurrence in records order, matching §4.E rule 5
// ("deterministic given a stable sort upstream").
func buildStrandMax(records []align.Record) []strandSum {
	type pq struct{ T, Q string }
	sums := map[pq]map[align.Strand]int{}
	firstSeen := map[pq]align.Strand{}
	var order []pq
	for _, r := range records {
		k := pq{r.Tname, r.Qname}
		if _, ok := sums[k]; !ok {
			sums[k] = map[align.Strand]int{}
			firstSeen[k] = r.Strand
			order = append(order, k)
		}
		sums[k][r.Strand] += r.NbMatch
	}

	out := make([]strandSum, 0, len(order))
	for _, k := range order {
		fwd, rev := sums[k][align.Forward], sums[k][align.Reverse]
		var winner align.Strand
		var n int
		switch {
		case fwd > rev:
			winner, n = align.Forward, fwd
		case rev > fwd:
			winner, n = align.Reverse, rev
		default:
			winner, n = firstSeen[k], fwd
		}
		out = append(out, strandSum{T: k.T, Q: k.Q, Strand: winner, NbMatch: n})
	}
	// Deterministic base order: by T then Q. This is the "stable sort
	// upstream" rule 5 presumes, and fixes the iteration order used for
	// every later first-occurrence tie-break in this package.
	sort.Slice(out, func(i, j int) bool {
		if out[i].T != out[j].T {
			return out[i].T < out[j].T
		}
		return out[i].Q < out[j].Q
	})
	return out
}

// Resolve runs the orientation BFS of §4.E over records belonging to one
// cluster and returns the four orientation classes in the fixed order
// [Tsens, Tinv, Qsens, Qinv] via the returned Classes value.
func Resolve(records []align.Record) Classes {
	strandMax := buildStrandMax(records)
	if len(strandMax) == 0 {
		return newClasses()
	}

	tSum := map[string]int{}
	for _, e := range strandMax {
		tSum[e.T] += e.NbMatch
	}
	ref := strandMax[0].T
	best := tSum[ref]
	// First occurrence in (T,Q)-sorted strandMax order gives a
	// deterministic tie-break among targets with equal total NbMatch.
	seen := map[string]bool{}
	for _, e := range strandMax {
		if seen[e.T] {
			continue
		}
		seen[e.T] = true
		if tSum[e.T] > best {
			ref, best = e.T, tSum[e.T]
		}
	}

	classes := newClasses()
	classes.Reference = ref
	classes.Tsens[ref] = true

	unvisited := map[string]bool{}
	for _, e := range strandMax {
		if e.T != ref {
			unvisited[e.T] = true
		}
		unvisited[e.Q] = true
	}

	byT := map[string][]strandSum{}
	byQ := map[string][]strandSum{}
	for _, e := range strandMax {
		byT[e.T] = append(byT[e.T], e)
		byQ[e.Q] = append(byQ[e.Q], e)
	}

	frontierT := []string{ref}
	for len(unvisited) > 0 && len(frontierT) > 0 {
		frontierQ := tToQStep(frontierT, byT, classes, unvisited)
		for _, t := range frontierT {
			delete(unvisited, t)
		}
		if len(frontierQ) == 0 {
			break
		}
		frontierT = qToTStep(frontierQ, byQ, classes, unvisited)
		for _, q := range frontierQ {
			delete(unvisited, q)
		}
	}

	return classes
}

// tToQStep performs one T→Q half-step: restrict strandMax to rows whose T
// is in frontierT, keep each Q's dominant row among those, and classify
// newly-visited Qs. It returns the new Q frontier in deterministic
// (sorted) order.
func tToQStep(frontierT []string, byT map[string][]strandSum, classes Classes, unvisited map[string]bool) []string {
	dominant := map[string]strandSum{}
	var qOrder []string
	sortedFrontier := append([]string(nil), frontierT...)
	sort.Strings(sortedFrontier)
	for _, t := range sortedFrontier {
		for _, e := range byT[t] {
			if cur, ok := dominant[e.Q]; !ok || e.NbMatch > cur.NbMatch {
				if !ok {
					qOrder = append(qOrder, e.Q)
				}
				dominant[e.Q] = e
			}
		}
	}

	var frontierQ []string
	for _, q := range qOrder {
		if !unvisited[q] {
			continue
		}
		e := dominant[q]
		sens := classes.Tsens[e.T]
		inv := classes.Tinv[e.T]
		switch {
		case e.Strand == align.Forward && sens, e.Strand == align.Reverse && inv:
			classes.Qsens[q] = true
		default:
			classes.Qinv[q] = true
		}
		frontierQ = append(frontierQ, q)
	}
	sort.Strings(frontierQ)
	return frontierQ
}

// qToTStep performs one Q→T half-step: restrict strandMax to rows whose Q
// is in frontierQ, keep each T's dominant row among those, and classify
// newly-visited Ts. Per design note §9(d) this only scans the Qs in the
// frontier just produced, so a purely-T-reached sub-component can stall —
// this is expected and documented, not a bug to fix here.
func qToTStep(frontierQ []string, byQ map[string][]strandSum, classes Classes, unvisited map[string]bool) []string {
	dominant := map[string]strandSum{}
	var tOrder []string
	sortedFrontier := append([]string(nil), frontierQ...)
	sort.Strings(sortedFrontier)
	for _, q := range sortedFrontier {
		for _, e := range byQ[q] {
			if cur, ok := dominant[e.T]; !ok || e.NbMatch > cur.NbMatch {
				if !ok {
					tOrder = append(tOrder, e.T)
				}
				dominant[e.T] = e
			}
		}
	}

	var frontierT []string
	for _, t := range tOrder {
		if !unvisited[t] {
			continue
		}
		e := dominant[t]
		sens := classes.Qsens[e.Q]
		inv := classes.Qinv[e.Q]
		switch {
		case e.Strand == align.Forward && sens, e.Strand == align.Reverse && inv:
			classes.Tsens[t] = true
		default:
			classes.Tinv[t] = true
		}
		frontierT = append(frontierT, t)
	}
	sort.Strings(frontierT)
	return frontierT
}
