// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scaffold implements the scaffolder (§4.I): deriving T1→T2
// adjacencies from the order in which each query contig spans two
// targets, resolving conflicts by a composite score, linearising
// conflict-free adjacencies into chains, and emitting the scaffold rows.
package scaffold

import (
	"math"
	"sort"

	"github.com/kortschak/scaflink/internal/verify"
)

// Adjacency is a directed T1→T2 edge witnessed by a query contig whose
// alignment to T1 ends before its alignment to T2 begins along the query
// (§3).
type Adjacency struct {
	T1, T2         string
	Qname          string
	InterStart     int // Qstop of the T1 alignment
	InterStop      int // Qstart of the T2 alignment
	LenInterContig int
	IdSeq          float64
	Cover          float64
	DistEndT1      int
	Score          float64
	ReverseQ       bool
}

// Edges extracts the §4.I step-1 adjacency list from a verified cluster's
// AggregatedPairs: for each query, its pairs sorted by Qstart, one
// Adjacency per consecutive pair.
func Edges(pairs []verify.AggregatedPair) []Adjacency {
	byQuery := map[string][]verify.AggregatedPair{}
	var order []string
	for _, p := range pairs {
		if _, ok := byQuery[p.Qname]; !ok {
			order = append(order, p.Qname)
		}
		byQuery[p.Qname] = append(byQuery[p.Qname], p)
	}

	var out []Adjacency
	for _, q := range order {
		group := byQuery[q]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Qstart < group[j].Qstart })
		for i := 0; i+1 < len(group); i++ {
			out = append(out, edgeBetween(group[i], group[i+1]))
		}
	}
	return out
}

func edgeBetween(a, b verify.AggregatedPair) Adjacency {
	idSeq := (a.IdSeq + b.IdSeq) / 2
	cover := (a.Qcover + a.Tcover + b.Qcover + b.Tcover) / 4
	distEnd := a.Tlen - a.Tstop
	score := roundTo(float64(distEnd+1)/(idSeq*cover), 3)
	return Adjacency{
		T1:             a.Tname,
		T2:             b.Tname,
		Qname:          a.Qname,
		InterStart:     a.Qstop,
		InterStop:      b.Qstart,
		LenInterContig: b.Qstart - a.Qstop,
		IdSeq:          idSeq,
		Cover:          cover,
		DistEndT1:      distEnd,
		Score:          score,
		ReverseQ:       a.ReverseQ,
	}
}

func roundTo(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}

// ContigMeta is per-contig target information needed for row emission:
// length and whether the orientation resolver placed it in Tinv.
type ContigMeta struct {
	Tlen     int
	ReverseT bool
}

// ContigInfo collects, from a verified cluster's pairs, one ContigMeta per
// target contig. When pairs disagree on a target's length or orientation
// (which should not happen — both are per-contig constants, §9(b)) the
// first-seen value wins and later pairs are ignored, rather than silently
// averaging a value that should be exact.
func ContigInfo(pairs []verify.AggregatedPair) map[string]ContigMeta {
	info := make(map[string]ContigMeta, len(pairs))
	for _, p := range pairs {
		if _, ok := info[p.Tname]; ok {
			continue
		}
		info[p.Tname] = ContigMeta{Tlen: p.Tlen, ReverseT: p.ReverseT}
	}
	return info
}
