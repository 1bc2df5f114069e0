// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaffold

// Row is one line of the scaffold table (§3 ScaffoldRow, §6.3 output
// columns Contig_name, Start, End, reverse, len, Type).
type Row struct {
	ContigName string
	Start, End int
	Reverse    bool
	Len        int
	Type       string // "T" or "Q"
}

// Position implements §4.I step 4, "position_sc": emitting the row table
// for one chain. The chain's first contig is laid down at [0,Tlen); each
// subsequent adjacency contributes an optional Q-row spanning the inter-
// contig interval (only when LenInterContig is positive — a zero or
// negative gap means the two target alignments abut or overlap on the
// query and no intervening query sequence is reported) followed by the
// T-row for its second contig.
func Position(chain Chain, contigs map[string]ContigMeta) []Row {
	if len(chain) == 0 {
		return nil
	}
	first := chain[0].T1
	rows := []Row{tRow(first, contigs[first])}
	for _, a := range chain {
		if a.LenInterContig > 0 {
			rows = append(rows, Row{
				ContigName: a.Qname,
				Start:      a.InterStart,
				End:        a.InterStop,
				Reverse:    a.ReverseQ,
				Len:        a.LenInterContig,
				Type:       "Q",
			})
		}
		rows = append(rows, tRow(a.T2, contigs[a.T2]))
	}
	return rows
}

func tRow(name string, meta ContigMeta) Row {
	return Row{
		ContigName: name,
		Start:      0,
		End:        meta.Tlen,
		Reverse:    meta.ReverseT,
		Len:        meta.Tlen,
		Type:       "T",
	}
}

// SingleContig emits the degenerate one-contig scaffold (§9, design note on
// clusters that never produce a usable adjacency): a cluster consisting of
// a single target contig with no query spanning it to another target still
// yields a one-row scaffold rather than being silently dropped.
func SingleContig(name string, meta ContigMeta) []Row {
	return []Row{tRow(name, meta)}
}
