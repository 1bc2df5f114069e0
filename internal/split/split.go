// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package split implements the high-confidence split of §4.B: partitioning
// the ingested alignment table into a strict set that anchors clusters and
// the remainder available for later match recovery.
package split

import "github.com/kortschak/scaflink/internal/align"

// Thresholds gates the high-confidence split.
type Thresholds struct {
	NbMatchMin int
	IdSeqMin   float64
}

// Validate reports whether t describes a usable threshold pair.
func (t Thresholds) Validate() error {
	if t.NbMatchMin < 0 {
		return errNegativeNbMatch
	}
	if t.IdSeqMin < 0 || t.IdSeqMin > 1 {
		return errIdSeqRange
	}
	return nil
}

type configError string

func (e configError) Error() string { return string(e) }

const (
	errNegativeNbMatch = configError("split: NbMatchMin must be non-negative")
	errIdSeqRange      = configError("split: IdSeqMin must be in [0,1]")
)

// Split partitions records into strict (NbMatch ≥ NbMatchMin and IdSeq ≥
// IdSeqMin) and rest (the complement). It is a pure, total function: every
// input record appears in exactly one of the two returned slices.
func Split(records []align.Record, t Thresholds) (strict, rest []align.Record) {
	for _, r := range records {
		if r.NbMatch >= t.NbMatchMin && r.IdSeq >= t.IdSeqMin {
			strict = append(strict, r)
		} else {
			rest = append(rest, r)
		}
	}
	return strict, rest
}
