// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repeat implements the repeat filter (§4.F, "Del_repeat"):
// removing alignment groups whose coordinate spread looks like a repeat
// or low-complexity signature, and cascading that removal to every
// record touching a flagged contig.
package repeat

import "github.com/kortschak/scaflink/internal/align"

type pairKey struct{ Tname, Qname string }

// Filter drops every group (by Tname,Qname) of ≥2 records in which both
// T-side spreads, or both Q-side spreads, are below threshold, flagging
// the contig on each side that qualifies, then drops every single-record
// group touching a flagged contig. Spreads are integer coordinate
// differences compared strictly against threshold.
func Filter(records []align.Record, threshold int) []align.Record {
	groups := map[pairKey][]align.Record{}
	var order []pairKey
	for _, r := range records {
		k := pairKey{r.Tname, r.Qname}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	flaggedT := map[string]bool{}
	flaggedQ := map[string]bool{}
	dropped := map[pairKey]bool{}
	for _, k := range order {
		g := groups[k]
		if len(g) < 2 {
			continue
		}
		tSpreadOK, qSpreadOK := spreadsBelow(g, threshold)
		if tSpreadOK {
			flaggedT[k.Tname] = true
		}
		if qSpreadOK {
			flaggedQ[k.Qname] = true
		}
		if tSpreadOK || qSpreadOK {
			dropped[k] = true
		}
	}

	var out []align.Record
	for _, k := range order {
		g := groups[k]
		if dropped[k] {
			continue
		}
		if len(g) == 1 && (flaggedT[k.Tname] || flaggedQ[k.Qname]) {
			continue
		}
		out = append(out, g...)
	}
	return out
}

// spreadsBelow reports, for a group of ≥2 records, whether both T-side
// spreads (Tstart max-min, Tstop max-min) are below threshold, and
// independently whether both Q-side spreads are.
func spreadsBelow(g []align.Record, threshold int) (tBelow, qBelow bool) {
	tStartMin, tStartMax := g[0].Tstart, g[0].Tstart
	tStopMin, tStopMax := g[0].Tstop, g[0].Tstop
	qStartMin, qStartMax := g[0].Qstart, g[0].Qstart
	qStopMin, qStopMax := g[0].Qstop, g[0].Qstop
	for _, r := range g[1:] {
		tStartMin, tStartMax = minMax(tStartMin, tStartMax, r.Tstart)
		tStopMin, tStopMax = minMax(tStopMin, tStopMax, r.Tstop)
		qStartMin, qStartMax = minMax(qStartMin, qStartMax, r.Qstart)
		qStopMin, qStopMax = minMax(qStopMin, qStopMax, r.Qstop)
	}
	tBelow = (tStartMax-tStartMin) < threshold && (tStopMax-tStopMin) < threshold
	qBelow = (qStartMax-qStartMin) < threshold && (qStopMax-qStopMin) < threshold
	return tBelow, qBelow
}

func minMax(min, max, v int) (int, int) {
	if v < min {
		min = v
	}
	if v > max {
		max = v
	}
	return min, max
}
