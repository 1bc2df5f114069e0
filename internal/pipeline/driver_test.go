// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"log"
	"reflect"
	"testing"

	"github.com/kortschak/scaflink"
	"github.com/kortschak/scaflink/internal/align"
	"github.com/kortschak/scaflink/internal/scaffold"
)

func newDriver(nbMatch int, idSeq float64) *Driver {
	return &Driver{
		Config: scaflink.Config{NbMatchMin: nbMatch, IdSeqMin: idSeq, Workers: 1},
		Logger: log.New(discard{}, "", 0),
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// TestRunS1 is the single-pair scenario: one record clears the thresholds
// and yields a one-row scaffold for its lone target.
func TestRunS1(t *testing.T) {
	records := []align.Record{
		{
			Qname: "s1$qA", Qlen: 200000, Qstart: 10000, Qstop: 60000, Strand: align.Forward,
			Tname: "tA", Tlen: 180000, Tstart: 5000, Tstop: 55000,
			NbMatch: 50000, NbBase: 51000, IdSeq: 50000.0 / 51000.0,
		},
	}

	d := newDriver(10000, 0.90)
	got := d.Run(records)
	if len(got) != 1 {
		t.Fatalf("got %d scaffolds, want 1", len(got))
	}
	want := []scaffold.Row{{ContigName: "tA", Start: 0, End: 180000, Reverse: false, Len: 180000, Type: "T"}}
	if !reflect.DeepEqual(got[0].Rows, want) {
		t.Errorf("got rows %+v, want %+v", got[0].Rows, want)
	}
}

// TestRunS2 is the two-targets-bridged-by-one-query scenario.
func TestRunS2(t *testing.T) {
	records := []align.Record{
		{
			Qname: "s1$qA", Qlen: 200000, Qstart: 0, Qstop: 80000, Strand: align.Forward,
			Tname: "tA", Tlen: 100000, Tstart: 10000, Tstop: 90000,
			NbMatch: 80000, NbBase: 84210, IdSeq: 0.95,
		},
		{
			Qname: "s1$qA", Qlen: 200000, Qstart: 100000, Qstop: 190000, Strand: align.Forward,
			Tname: "tB", Tlen: 120000, Tstart: 20000, Tstop: 110000,
			NbMatch: 90000, NbBase: 94736, IdSeq: 0.95,
		},
	}

	d := newDriver(10000, 0.90)
	got := d.Run(records)
	if len(got) != 1 {
		t.Fatalf("got %d scaffolds, want 1", len(got))
	}
	want := []scaffold.Row{
		{ContigName: "tA", Start: 0, End: 100000, Len: 100000, Type: "T"},
		{ContigName: "s1$qA", Start: 80000, End: 100000, Len: 20000, Type: "Q"},
		{ContigName: "tB", Start: 0, End: 120000, Len: 120000, Type: "T"},
	}
	if !reflect.DeepEqual(got[0].Rows, want) {
		t.Errorf("got rows %+v, want %+v", got[0].Rows, want)
	}
}

// TestRunS3 is S2 with every record inverted: the orientation resolver
// places qA in Qinv, the reframer rewrites its coordinates and flips
// strand to '+', and the scaffold again has three rows: the Q-row carries
// Reverse=true and the reframed gap [100000,120000], and since tB now
// precedes tA along the reframed query, tB leads the chain.
func TestRunS3(t *testing.T) {
	records := []align.Record{
		{
			Qname: "s1$qA", Qlen: 200000, Qstart: 0, Qstop: 80000, Strand: align.Reverse,
			Tname: "tA", Tlen: 100000, Tstart: 10000, Tstop: 90000,
			NbMatch: 80000, NbBase: 84210, IdSeq: 0.95,
		},
		{
			Qname: "s1$qA", Qlen: 200000, Qstart: 100000, Qstop: 190000, Strand: align.Reverse,
			Tname: "tB", Tlen: 120000, Tstart: 20000, Tstop: 110000,
			NbMatch: 90000, NbBase: 94736, IdSeq: 0.95,
		},
	}

	d := newDriver(10000, 0.90)
	got := d.Run(records)
	if len(got) != 1 {
		t.Fatalf("got %d scaffolds, want 1", len(got))
	}
	rows := got[0].Rows
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[1].Type != "Q" || !rows[1].Reverse {
		t.Errorf("got Q-row %+v, want Reverse=true", rows[1])
	}
}

// TestRunOrphanContigStillEmitted covers a cluster where Ancrage links
// three targets (tA-qA-tB-qC-tC) but the tB/qC pair fails the §4.H
// coverage gate while the tC/qC pair survives on its own. tC then has a
// verified AggregatedPair but no surviving Adjacency edge (its only
// query no longer spans a second target), so it must still be emitted
// as its own one-row scaffold alongside the tA->tB chain, rather than
// being silently dropped.
func TestRunOrphanContigStillEmitted(t *testing.T) {
	records := []align.Record{
		{
			Qname: "s1$qA", Qlen: 200000, Qstart: 0, Qstop: 80000, Strand: align.Forward,
			Tname: "tA", Tlen: 100000, Tstart: 10000, Tstop: 90000,
			NbMatch: 80000, NbBase: 84210, IdSeq: 0.95,
		},
		{
			Qname: "s1$qA", Qlen: 200000, Qstart: 100000, Qstop: 190000, Strand: align.Forward,
			Tname: "tB", Tlen: 120000, Tstart: 20000, Tstop: 110000,
			NbMatch: 90000, NbBase: 94736, IdSeq: 0.95,
		},
		{
			// Thin sliver against tB: connects tC into the same Ancrage
			// cluster through tB, but its own coverage fraction is too low
			// to survive verification.
			Qname: "s1$qC", Qlen: 20000, Qstart: 0, Qstop: 9000, Strand: align.Forward,
			Tname: "tB", Tlen: 120000, Tstart: 110000, Tstop: 119000,
			NbMatch: 1000, NbBase: 1000, IdSeq: 1,
		},
		{
			// Same query, against tC: covers enough of both sides to pass
			// verification on its own.
			Qname: "s1$qC", Qlen: 20000, Qstart: 0, Qstop: 9000, Strand: align.Forward,
			Tname: "tC", Tlen: 90000, Tstart: 0, Tstop: 9000,
			NbMatch: 8000, NbBase: 8000, IdSeq: 1,
		},
	}

	d := newDriver(500, 0.5)
	got := d.Run(records)
	if len(got) != 2 {
		t.Fatalf("got %d scaffolds, want 2 (the tA->tB chain plus an orphan tC)", len(got))
	}

	if got[0].LeadContig != "tA" {
		t.Fatalf("got lead contig %q first, want tA", got[0].LeadContig)
	}
	wantChain := []scaffold.Row{
		{ContigName: "tA", Start: 0, End: 100000, Len: 100000, Type: "T"},
		{ContigName: "s1$qA", Start: 80000, End: 100000, Len: 20000, Type: "Q"},
		{ContigName: "tB", Start: 0, End: 120000, Len: 120000, Type: "T"},
	}
	if !reflect.DeepEqual(got[0].Rows, wantChain) {
		t.Errorf("got rows %+v, want %+v", got[0].Rows, wantChain)
	}

	if got[1].LeadContig != "tC" {
		t.Fatalf("got lead contig %q second, want tC", got[1].LeadContig)
	}
	wantOrphan := []scaffold.Row{{ContigName: "tC", Start: 0, End: 90000, Len: 90000, Type: "T"}}
	if !reflect.DeepEqual(got[1].Rows, wantOrphan) {
		t.Errorf("got orphan rows %+v, want %+v", got[1].Rows, wantOrphan)
	}
}

// TestRunEmptyClusterSkipped exercises ErrEmptyCluster: a cluster whose
// sole pair clears the strict split but never clears the §4.H coverage
// gate (NbMatch thinly spread over a wide span) produces no scaffold and
// no panic.
func TestRunEmptyClusterSkipped(t *testing.T) {
	records := []align.Record{
		{
			Qname: "s1$qA", Qlen: 20000, Qstart: 0, Qstop: 10000, Strand: align.Forward,
			Tname: "tA", Tlen: 20000, Tstart: 0, Tstop: 10000,
			NbMatch: 1000, NbBase: 1000, IdSeq: 1,
		},
	}
	d := newDriver(1000, 0.5)
	got := d.Run(records)
	if len(got) != 0 {
		t.Errorf("got %d scaffolds, want 0 (coverage fraction 1000/10000=0.1 should fail the gate)", len(got))
	}
}
