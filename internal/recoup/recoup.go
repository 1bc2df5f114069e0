// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package recoup implements match recovery (§4.D, "Recup_match"):
// re-admitting lower-confidence fragments of already-anchored (Q,T) pairs
// from the records the high-confidence split left out of the strict set.
package recoup

import "github.com/kortschak/scaflink/internal/align"

// pairKey identifies a (Qname,Tname) pair.
type pairKey struct{ Qname, Tname string }

// minNbMatch is the fixed recovery threshold on NbMatch (§4.D: "NbMatch >
// 1000"), independent of the Thresholds.NbMatchMin used by the
// high-confidence split.
const minNbMatch = 1000

// Recup re-admits, from rest (the low-confidence complement produced by
// §4.B), every row whose (Qname,Tname) pair already appears in
// strictCluster, filtered to NbMatch > 1000 and IdSeq > idSeqMin, and
// unions the result with strictCluster itself. rest and strictCluster are
// disjoint by construction (§4.B), so the union needs no deduplication.
func Recup(rest, strictCluster []align.Record, idSeqMin float64) []align.Record {
	pairs := make(map[pairKey]bool, len(strictCluster))
	for _, r := range strictCluster {
		pairs[pairKey{r.Qname, r.Tname}] = true
	}

	out := make([]align.Record, len(strictCluster))
	copy(out, strictCluster)
	for _, r := range rest {
		if !pairs[pairKey{r.Qname, r.Tname}] {
			continue
		}
		if r.NbMatch > minNbMatch && r.IdSeq > idSeqMin {
			out = append(out, r)
		}
	}
	return out
}
