// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pafio reads a directory of PAF alignment files and normalises
// them into align.Record values (§4.A of the design). Column-level parsing
// here follows the same shape as NCBI tabular BLAST parsing: a
// bufio.Scanner over tab-separated fields, a fixed field count check, and
// per-field strconv parsing that names the offending line on failure.
package pafio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/kortschak/scaflink/internal/align"
)

// minFields is the number of leading PAF columns this reader consumes:
// Qname, Qlen, Qstart, Qstop, Strand, Tname, Tlen, Tstart, Tstop, NbMatch,
// NbBase, MapQ. Columns beyond this are ignored.
const minFields = 12

// MapQThreshold is the mapping-quality gate applied during ingest: rows
// with MapQ ≤ MapQThreshold are dropped.
const MapQThreshold = 40

// IngestError reports a failure to read or parse a PAF file. It is fatal:
// the whole file is aborted, bad rows within a readable file are not
// retried.
type IngestError struct {
	Path string
	Err  error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("pafio: ingest of %q failed: %v", e.Path, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// Load reads every file in dir as a PAF file, applies the mapping-quality
// gate, prefixes Qname with the sample extracted from the file name, and
// returns the union of all records with IdSeq computed. Files are
// processed in sorted-name order so that ingest, and everything
// downstream of it, is deterministic.
func Load(dir string) ([]align.Record, error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, &IngestError{Path: dir, Err: err}
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var out []align.Record
	for _, name := range names {
		path := filepath.Join(dir, name)
		recs, err := loadFile(path, SampleOf(name))
		if err != nil {
			return nil, &IngestError{Path: path, Err: err}
		}
		out = append(out, recs...)
	}
	return out, nil
}

// SampleOf returns the sample label embedded in a PAF file name of the
// form "<anything>_<sample>.<ext>": the suffix after the last underscore
// of the basename stem.
func SampleOf(name string) string {
	stem := name
	if i := strings.LastIndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}
	if i := strings.LastIndexByte(stem, '_'); i >= 0 {
		return stem[i+1:]
	}
	return stem
}

func loadFile(path, sample string) ([]align.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f, sample)
}

// column indices for the PAF fields this reader consumes.
const (
	colQname = iota
	colQlen
	colQstart
	colQstop
	colStrand
	colTname
	colTlen
	colTstart
	colTstop
	colNbMatch
	colNbBase
	colMapQ
)

func parse(r io.Reader, sample string) ([]align.Record, error) {
	var recs []align.Record
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		f := bytes.Split(raw, []byte("\t"))
		if len(f) < minFields {
			return nil, fmt.Errorf("line %d: want at least %d columns, got %d", line, minFields, len(f))
		}

		mapq, err := strconv.Atoi(string(f[colMapQ]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad mapping quality: %w", line, err)
		}
		if mapq <= MapQThreshold {
			continue
		}

		r := align.Record{Qname: fmt.Sprintf("%s$%s", sample, string(f[colQname]))}
		r.Qlen, err = strconv.Atoi(string(f[colQlen]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad Qlen: %w", line, err)
		}
		r.Qstart, err = strconv.Atoi(string(f[colQstart]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad Qstart: %w", line, err)
		}
		r.Qstop, err = strconv.Atoi(string(f[colQstop]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad Qstop: %w", line, err)
		}
		if len(f[colStrand]) != 1 || (f[colStrand][0] != '+' && f[colStrand][0] != '-') {
			return nil, fmt.Errorf("line %d: bad strand %q", line, f[colStrand])
		}
		r.Strand = align.Strand(f[colStrand][0])
		r.Tname = string(f[colTname])
		r.Tlen, err = strconv.Atoi(string(f[colTlen]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad Tlen: %w", line, err)
		}
		r.Tstart, err = strconv.Atoi(string(f[colTstart]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad Tstart: %w", line, err)
		}
		r.Tstop, err = strconv.Atoi(string(f[colTstop]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad Tstop: %w", line, err)
		}
		r.NbMatch, err = strconv.Atoi(string(f[colNbMatch]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad NbMatch: %w", line, err)
		}
		r.NbBase, err = strconv.Atoi(string(f[colNbBase]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad NbBase: %w", line, err)
		}
		r = r.WithIdentity()
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		recs = append(recs, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error during PAF read: %w", err)
	}
	return recs, nil
}
