// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package verify implements the coverage verifier (§4.H, "Verification"):
// aggregating reframed records by (T,Q), computing coverage fractions,
// and gating pairs on coverage and end-proximity.
package verify

import (
	"github.com/biogo/store/interval"

	"github.com/kortschak/scaflink/internal/align"
)

// endProximity is the distance from a contig terminus within which an
// alignment's end is considered to anchor a scaffold join (§4.H).
const endProximity = 100000

// coverMin is the minimum coverage fraction, on both sides, an
// aggregated pair must clear to survive verification.
const coverMin = 0.3

// AggregatedPair is one verified (T,Q) row (§3).
type AggregatedPair struct {
	Tname, Qname    string
	Qlen, Tlen      int
	Qstart, Qstop   int
	Tstart, Tstop   int
	NbMatch         int
	IdSeq           float64
	ReverseT        bool
	ReverseQ        bool
	Qcover, Tcover  float64
	// Segments and Overlapping are diagnostic only (§4.L): the number of
	// raw records folded into this pair, and how many of them overlap at
	// least one other record of the same pair on the T axis. Neither
	// feeds back into Qcover/Tcover or the gate below.
	Segments, Overlapping int
}

type pairKey struct{ Tname, Qname string }

// Verify aggregates reframed records by (T,Q) and returns the pairs that
// pass the coverage and end-proximity gate.
func Verify(records []align.Record) []AggregatedPair {
	groups := map[pairKey][]align.Record{}
	var order []pairKey
	for _, r := range records {
		k := pairKey{r.Tname, r.Qname}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	var out []AggregatedPair
	for _, k := range order {
		ap := aggregate(k, groups[k])
		if passes(ap) {
			out = append(out, ap)
		}
	}
	return out
}

func aggregate(k pairKey, g []align.Record) AggregatedPair {
	ap := AggregatedPair{Tname: k.Tname, Qname: k.Qname}
	ap.Qstart, ap.Tstart = g[0].Qstart, g[0].Tstart
	ap.Qstop, ap.Tstop = g[0].Qstop, g[0].Tstop
	var qlenSum, tlenSum, idSeqSum float64
	for _, r := range g {
		if r.Qstart < ap.Qstart {
			ap.Qstart = r.Qstart
		}
		if r.Qstop > ap.Qstop {
			ap.Qstop = r.Qstop
		}
		if r.Tstart < ap.Tstart {
			ap.Tstart = r.Tstart
		}
		if r.Tstop > ap.Tstop {
			ap.Tstop = r.Tstop
		}
		ap.NbMatch += r.NbMatch
		qlenSum += float64(r.Qlen)
		tlenSum += float64(r.Tlen)
		idSeqSum += r.IdSeq
		ap.ReverseT = ap.ReverseT || r.ReverseT
		ap.ReverseQ = ap.ReverseQ || r.ReverseQ
	}
	n := float64(len(g))
	ap.Qlen = int(qlenSum / n)
	ap.Tlen = int(tlenSum / n)
	ap.IdSeq = idSeqSum / n

	if span := ap.Qstop - ap.Qstart; span > 0 {
		ap.Qcover = float64(ap.NbMatch) / float64(span)
	}
	if span := ap.Tstop - ap.Tstart; span > 0 {
		ap.Tcover = float64(ap.NbMatch) / float64(span)
	}

	ap.Segments, ap.Overlapping = segmentOverlap(g)
	return ap
}

// segmentOverlap reports the number of records in g and how many overlap
// at least one other record of the group on the T axis, using an
// interval tree over each record's T-span to answer "does A overlap any
// other interval in the set".
func segmentOverlap(g []align.Record) (segments, overlapping int) {
	var tree interval.IntTree
	for i, r := range g {
		err := tree.Insert(tSpan{uid: uintptr(i), start: r.Tstart, end: r.Tstop}, false)
		if err != nil {
			// A malformed (empty) span cannot occur here: Tstart ≤
			// Tstop is an align.Record invariant enforced at ingest.
			panic(err)
		}
	}
	tree.AdjustRanges()

	overlaps := 0
	for i, r := range g {
		hits := tree.Get(tSpan{start: r.Tstart, end: r.Tstop})
		for _, h := range hits {
			if h.(tSpan).uid != uintptr(i) {
				overlaps++
				break
			}
		}
	}
	return len(g), overlaps
}

type tSpan struct {
	uid        uintptr
	start, end int
}

func (s tSpan) Overlap(b interval.IntRange) bool {
	return b.Start < s.end && s.start < b.End
}
func (s tSpan) ID() uintptr { return s.uid }
func (s tSpan) Range() interval.IntRange {
	return interval.IntRange{Start: s.start, End: s.end}
}

func passes(ap AggregatedPair) bool {
	if ap.Qcover <= coverMin || ap.Tcover <= coverMin {
		return false
	}
	qEnd := ap.Qstart < endProximity || ap.Qlen-ap.Qstop < endProximity
	tEnd := ap.Tstart < endProximity || ap.Tlen-ap.Tstop < endProximity
	return qEnd && tEnd
}
