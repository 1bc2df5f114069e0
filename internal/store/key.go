// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store holds the normalised alignment table in an ordered
// key/value store (modernc.org/kv). The driver passes the ingested records
// through it once so that every later stage sees them in one canonical
// by-target order; the stages do their own grouping in memory. The key
// layout and its two comparator
// orderings generalise a per-(subject,query)-pair marshalled-key pattern
// to the full align.Record needed by this pipeline.
package store

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/kortschak/scaflink/internal/align"
)

var order = binary.BigEndian

// key is the unmarshalled form of a store entry's key: the fields needed
// to order alignment records either by target or by query, plus a
// monotonic sequence number that breaks ties by insertion order and
// guarantees key uniqueness (kv requires unique keys; duplicate PAF rows
// are otherwise indistinguishable).
type key struct {
	Tname   string
	Tstart  int64
	Tstop   int64
	Qname   string
	Qstart  int64
	Qstop   int64
	Strand  int8
	NbMatch int64
	Seq     uint64
}

// MarshalByTarget encodes r ordered for a by-target scan: Tname, Tstart,
// Tstop, then Qname, Qstart, Qstop. Names are length-prefixed, so a
// shorter name sorts before a longer one and names of equal length sort
// bytewise. Table.All returns records in this order, which the driver
// uses as the canonical record order for every stage.
func MarshalByTarget(r align.Record, seq uint64) []byte {
	var buf bytes.Buffer
	putString(&buf, r.Tname)
	putInt(&buf, int64(r.Tstart))
	putInt(&buf, int64(r.Tstop))
	putString(&buf, r.Qname)
	putInt(&buf, int64(r.Qstart))
	putInt(&buf, int64(r.Qstop))
	buf.WriteByte(byte(r.Strand))
	putInt(&buf, int64(r.NbMatch))
	putUint(&buf, seq)
	return buf.Bytes()
}

// MarshalByQuery encodes r ordered for a by-query scan: Qname, Qstart,
// Qstop, then Tname, Tstart, Tstop, with names length-prefixed as in
// MarshalByTarget. Table.ScanByQuery walks records in this order.
func MarshalByQuery(r align.Record, seq uint64) []byte {
	var buf bytes.Buffer
	putString(&buf, r.Qname)
	putInt(&buf, int64(r.Qstart))
	putInt(&buf, int64(r.Qstop))
	putString(&buf, r.Tname)
	putInt(&buf, int64(r.Tstart))
	putInt(&buf, int64(r.Tstop))
	buf.WriteByte(byte(r.Strand))
	putInt(&buf, int64(r.NbMatch))
	putUint(&buf, seq)
	return buf.Bytes()
}

// ByTargetCompare is a kv compare function ordering keys produced by
// MarshalByTarget.
func ByTargetCompare(x, y []byte) int {
	if bytes.Equal(x, y) {
		return 0
	}
	return bytes.Compare(x, y)
}

// ByQueryCompare is a kv compare function ordering keys produced by
// MarshalByQuery.
func ByQueryCompare(x, y []byte) int {
	if bytes.Equal(x, y) {
		return 0
	}
	return bytes.Compare(x, y)
}

func putString(buf *bytes.Buffer, s string) {
	putUint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func putInt(buf *bytes.Buffer, n int64) {
	// Bias so that byte-lexicographic order matches numeric order for the
	// signed range this package uses (coordinates and match counts, which
	// are never negative in practice but are stored as signed for
	// symmetry with the marshalled Strand byte).
	putUint(buf, uint64(n)^(1<<63))
}

func putUint(buf *bytes.Buffer, n uint64) {
	var b [8]byte
	order.PutUint64(b[:], n)
	buf.Write(b[:])
}

func getString(data []byte) (string, []byte) {
	n := order.Uint64(data[:8])
	data = data[8:]
	return string(data[:n]), data[n:]
}

func getInt(data []byte) (int64, []byte) {
	n, rest := getUint(data)
	return int64(n ^ (1 << 63)), rest
}

func getUint(data []byte) (uint64, []byte) {
	return order.Uint64(data[:8]), data[8:]
}

// marshalValue encodes the remaining fields of r not captured in the key:
// Qlen, Tlen, NbBase, IdSeq, ReverseT, ReverseQ.
func marshalValue(r align.Record) []byte {
	var buf bytes.Buffer
	putInt(&buf, int64(r.Qlen))
	putInt(&buf, int64(r.Tlen))
	putInt(&buf, int64(r.NbBase))
	var bits [8]byte
	order.PutUint64(bits[:], math.Float64bits(r.IdSeq))
	buf.Write(bits[:])
	flags := byte(0)
	if r.ReverseT {
		flags |= 1
	}
	if r.ReverseQ {
		flags |= 2
	}
	buf.WriteByte(flags)
	return buf.Bytes()
}

func unmarshalValue(data []byte) (qlen, tlen, nbBase int, idSeq float64, reverseT, reverseQ bool) {
	var q, t, n int64
	q, data = getInt(data)
	t, data = getInt(data)
	n, data = getInt(data)
	bits := order.Uint64(data[:8])
	data = data[8:]
	idSeq = math.Float64frombits(bits)
	flags := data[0]
	return int(q), int(t), int(n), idSeq, flags&1 != 0, flags&2 != 0
}

// unmarshalByTarget recovers the record fields encoded by MarshalByTarget.
func unmarshalByTarget(data []byte) (r align.Record) {
	r.Tname, data = getString(data)
	t0, d := getInt(data)
	r.Tstart = int(t0)
	t1, d2 := getInt(d)
	r.Tstop = int(t1)
	r.Qname, d2 = getString(d2)
	q0, d3 := getInt(d2)
	r.Qstart = int(q0)
	q1, d4 := getInt(d3)
	r.Qstop = int(q1)
	r.Strand = align.Strand(d4[0])
	d4 = d4[1:]
	nb, _ := getInt(d4)
	r.NbMatch = int(nb)
	return r
}

// unmarshalByQuery recovers the record fields encoded by MarshalByQuery.
func unmarshalByQuery(data []byte) (r align.Record) {
	r.Qname, data = getString(data)
	q0, d := getInt(data)
	r.Qstart = int(q0)
	q1, d2 := getInt(d)
	r.Qstop = int(q1)
	r.Tname, d2 = getString(d2)
	t0, d3 := getInt(d2)
	r.Tstart = int(t0)
	t1, d4 := getInt(d3)
	r.Tstop = int(t1)
	r.Strand = align.Strand(d4[0])
	d4 = d4[1:]
	nb, _ := getInt(d4)
	r.NbMatch = int(nb)
	return r
}
