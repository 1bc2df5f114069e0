// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reframe implements the coordinate reframer (§4.G, "Reverse"):
// rewriting each record's coordinates and strand to the orientation frame
// resolved by internal/orient.
package reframe

import (
	"github.com/kortschak/scaflink/internal/align"
	"github.com/kortschak/scaflink/internal/orient"
)

// Reframe rewrites every record in records according to the orientation
// class of its T and Q contig. Records whose T or Q contig was not
// classified by the orientation resolver (design note §9(a)) are passed
// through unchanged, in their PAF frame, to the later stages.
func Reframe(records []align.Record, classes orient.Classes) []align.Record {
	out := make([]align.Record, len(records))
	for i, r := range records {
		out[i] = reframeOne(r, classes)
	}
	return out
}

func reframeOne(r align.Record, classes orient.Classes) align.Record {
	tClass, tOK := classes.ClassOfT(r.Tname)
	qClass, qOK := classes.ClassOfQ(r.Qname)
	if !tOK || !qOK {
		return r
	}

	tInv := tClass == orient.Tinv
	qInv := qClass == orient.Qinv

	switch {
	case !tInv && !qInv:
		// T∈Tsens ∧ Q∈Qsens: no change.
		return r
	case !tInv && qInv:
		// T∈Tsens ∧ Q∈Qinv: flip Q coordinates and strand.
		r.Qstart, r.Qstop = r.Qlen-r.Qstop, r.Qlen-r.Qstart
		r.Strand = r.Strand.Flip()
		r.ReverseQ = true
		return r
	case tInv && !qInv:
		// T∈Tinv ∧ Q∈Qsens: flip T coordinates and strand.
		r.Tstart, r.Tstop = r.Tlen-r.Tstop, r.Tlen-r.Tstart
		r.Strand = r.Strand.Flip()
		r.ReverseT = true
		return r
	default:
		// T∈Tinv ∧ Q∈Qinv: flip both coordinate sets; the double strand
		// flip cancels, so Strand is left unchanged.
		r.Tstart, r.Tstop = r.Tlen-r.Tstop, r.Tlen-r.Tstart
		r.Qstart, r.Qstop = r.Qlen-r.Qstop, r.Qlen-r.Qstart
		r.ReverseT = true
		r.ReverseQ = true
		return r
	}
}
