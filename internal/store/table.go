// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"io"
	"io/ioutil"
	"os"

	"modernc.org/kv"

	"github.com/kortschak/scaflink/internal/align"
)

// Table is an ordered alignment table backed by modernc.org/kv, indexed
// twice over the same records: once for by-target scans, once for
// by-query scans. No state is persisted beyond the lifetime of a Table —
// Close removes the backing file, matching §6's "Persisted state: None".
type Table struct {
	byTarget *kv.DB
	byQuery  *kv.DB
	pathT    string
	pathQ    string
	seq      uint64
}

// NewTable creates an empty Table backed by temporary files.
func NewTable() (*Table, error) {
	pathT, err := tempDBPath("scaflink-target-*.db")
	if err != nil {
		return nil, err
	}
	pathQ, err := tempDBPath("scaflink-query-*.db")
	if err != nil {
		os.Remove(pathT)
		return nil, err
	}
	byTarget, err := kv.Create(pathT, &kv.Options{Compare: ByTargetCompare})
	if err != nil {
		os.Remove(pathT)
		os.Remove(pathQ)
		return nil, err
	}
	byQuery, err := kv.Create(pathQ, &kv.Options{Compare: ByQueryCompare})
	if err != nil {
		byTarget.Close()
		os.Remove(pathT)
		os.Remove(pathQ)
		return nil, err
	}
	return &Table{byTarget: byTarget, byQuery: byQuery, pathT: pathT, pathQ: pathQ}, nil
}

func tempDBPath(pattern string) (string, error) {
	f, err := ioutil.TempFile("", pattern)
	if err != nil {
		return "", err
	}
	path := f.Name()
	f.Close()
	os.Remove(path)
	return path, nil
}

// Insert adds r to the table under both orderings.
func (t *Table) Insert(r align.Record) error {
	t.seq++
	v := marshalValue(r)
	if err := t.byTarget.Set(MarshalByTarget(r, t.seq), v); err != nil {
		return err
	}
	if err := t.byQuery.Set(MarshalByQuery(r, t.seq), v); err != nil {
		return err
	}
	return nil
}

// InsertAll inserts every record in recs.
func (t *Table) InsertAll(recs []align.Record) error {
	for _, r := range recs {
		if err := t.Insert(r); err != nil {
			return err
		}
	}
	return nil
}

// ScanByTarget walks every record in MarshalByTarget key order
// (length-prefixed Tname, then Tstart, Tstop), calling fn
// for each. Iteration stops at the first error fn returns.
func (t *Table) ScanByTarget(fn func(align.Record) error) error {
	return scan(t.byTarget, unmarshalByTarget, fn)
}

// ScanByQuery walks every record in MarshalByQuery key order
// (length-prefixed Qname, then Qstart, Qstop), calling fn
// for each. Iteration stops at the first error fn returns.
func (t *Table) ScanByQuery(fn func(align.Record) error) error {
	return scan(t.byQuery, unmarshalByQuery, fn)
}

func scan(db *kv.DB, decode func([]byte) align.Record, fn func(align.Record) error) error {
	it, err := db.SeekFirst()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	for {
		k, v, err := it.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		r := decode(k)
		qlen, tlen, nbBase, idSeq, reverseT, reverseQ := unmarshalValue(v)
		r.Qlen, r.Tlen, r.NbBase, r.IdSeq = qlen, tlen, nbBase, idSeq
		r.ReverseT, r.ReverseQ = reverseT, reverseQ
		if err := fn(r); err != nil {
			return err
		}
	}
}

// All returns every record in by-target order.
func (t *Table) All() ([]align.Record, error) {
	var out []align.Record
	err := t.ScanByTarget(func(r align.Record) error {
		out = append(out, r)
		return nil
	})
	return out, err
}

// Close releases the backing files. A Table must not be used afterward.
func (t *Table) Close() error {
	err1 := t.byTarget.Close()
	err2 := t.byQuery.Close()
	os.Remove(t.pathT)
	os.Remove(t.pathQ)
	if err1 != nil {
		return err1
	}
	return err2
}
