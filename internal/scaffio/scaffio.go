// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scaffio writes the scaffold row table produced by internal/pipeline
// (§6.3): one Contig_name/Start/End/reverse/len/Type row per line, grouped
// by scaffold.
package scaffio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/kortschak/scaflink/internal/pipeline"
)

var header = []string{"Contig_name", "Start", "End", "reverse", "len", "Type"}

// Write emits every scaffold's row table to w as delimited text, one
// scaffold per section separated by a blank line. comma selects the
// field delimiter: ',' for --format csv, '\t' for --format tsv.
func Write(w io.Writer, scaffolds []pipeline.Scaffold, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	cw.UseCRLF = false

	if err := cw.Write(header); err != nil {
		return err
	}
	for i, s := range scaffolds {
		if i > 0 {
			cw.Flush()
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		for _, r := range s.Rows {
			row := []string{
				r.ContigName,
				fmt.Sprintf("%d", r.Start),
				fmt.Sprintf("%d", r.End),
				fmt.Sprintf("%t", r.Reverse),
				fmt.Sprintf("%d", r.Len),
				r.Type,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
