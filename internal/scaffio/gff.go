// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaffio

import (
	"io"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"

	"github.com/kortschak/scaflink/internal/pipeline"
)

// WriteGFF emits the T-rows of every scaffold as GFF3 features, named by
// scaffold lead contig, for pipelines downstream of this one that expect a
// feature-style handoff rather than the plain row table. Q-rows carry no
// sequence-feature meaning of their own and are omitted. This is additive:
// no component of this module reads GFF back in.
func WriteGFF(w io.Writer, scaffolds []pipeline.Scaffold) error {
	enc := gff.NewWriter(w, 60, true)
	for _, s := range scaffolds {
		for _, r := range s.Rows {
			if r.Type != "T" {
				continue
			}
			strand := seq.Plus
			if r.Reverse {
				strand = seq.Minus
			}
			_, err := enc.Write(&gff.Feature{
				SeqName:    r.ContigName,
				Source:     "scaflink",
				Feature:    "scaffold_member",
				FeatStart:  r.Start,
				FeatEnd:    r.End,
				FeatStrand: strand,
				FeatFrame:  gff.NoFrame,
				FeatAttributes: gff.Attributes{{
					Tag:   "Scaffold",
					Value: s.LeadContig,
				}},
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
