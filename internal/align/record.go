// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package align holds the normalised alignment record that flows through
// the scaffolding pipeline, from ingest to reframing.
package align

import "fmt"

// Strand is the orientation of a query relative to a target in one
// alignment record.
type Strand byte

const (
	Forward Strand = '+'
	Reverse Strand = '-'
)

func (s Strand) String() string { return string(s) }

// Flip returns the opposite strand.
func (s Strand) Flip() Strand {
	if s == Forward {
		return Reverse
	}
	return Forward
}

// Record is one PAF row after normalisation: mapping-quality filtered,
// sample-prefixed, identity computed. Fields are immutable after ingest
// except by the Reframer, which produces a derived Record with ReverseT
// and ReverseQ set.
type Record struct {
	Qname  string
	Qlen   int
	Qstart int
	Qstop  int
	Strand Strand

	Tname  string
	Tlen   int
	Tstart int
	Tstop  int

	NbMatch int
	NbBase  int
	IdSeq   float64

	// ReverseT and ReverseQ record whether the Reframer flipped the
	// target or query side of this record relative to its PAF frame.
	ReverseT bool
	ReverseQ bool
}

// Validate checks the invariants that must hold of a Record at every
// pipeline stage: 0 ≤ Qstart ≤ Qstop ≤ Qlen, 0 ≤ Tstart ≤ Tstop ≤ Tlen,
// NbMatch ≤ NbBase, IdSeq ∈ [0,1].
func (r Record) Validate() error {
	switch {
	case r.Qstart < 0 || r.Qstart > r.Qstop || r.Qstop > r.Qlen:
		return fmt.Errorf("align: invalid query span [%d,%d] of %d for %s", r.Qstart, r.Qstop, r.Qlen, r.Qname)
	case r.Tstart < 0 || r.Tstart > r.Tstop || r.Tstop > r.Tlen:
		return fmt.Errorf("align: invalid target span [%d,%d] of %d for %s", r.Tstart, r.Tstop, r.Tlen, r.Tname)
	case r.NbMatch > r.NbBase:
		return fmt.Errorf("align: NbMatch %d exceeds NbBase %d for %s/%s", r.NbMatch, r.NbBase, r.Qname, r.Tname)
	case r.IdSeq < 0 || r.IdSeq > 1:
		return fmt.Errorf("align: IdSeq %v out of [0,1] for %s/%s", r.IdSeq, r.Qname, r.Tname)
	}
	return nil
}

// WithIdentity returns r with IdSeq recomputed from NbMatch/NbBase.
func (r Record) WithIdentity() Record {
	if r.NbBase != 0 {
		r.IdSeq = float64(r.NbMatch) / float64(r.NbBase)
	}
	return r
}
