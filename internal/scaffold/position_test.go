// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaffold

import (
	"reflect"
	"testing"
)

func TestPosition(t *testing.T) {
	contigs := map[string]ContigMeta{
		"a": {Tlen: 1000},
		"b": {Tlen: 2000, ReverseT: true},
	}
	chain := Chain{{
		T1: "a", T2: "b", Qname: "q1",
		InterStart: 900, InterStop: 1050, LenInterContig: 150,
	}}

	got := Position(chain, contigs)
	want := []Row{
		{ContigName: "a", Start: 0, End: 1000, Len: 1000, Type: "T"},
		{ContigName: "q1", Start: 900, End: 1050, Len: 150, Type: "Q"},
		{ContigName: "b", Start: 0, End: 2000, Reverse: true, Len: 2000, Type: "T"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestPositionSkipsZeroLengthGap(t *testing.T) {
	contigs := map[string]ContigMeta{
		"a": {Tlen: 1000},
		"b": {Tlen: 2000},
	}
	chain := Chain{{T1: "a", T2: "b", LenInterContig: 0}}
	got := Position(chain, contigs)
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2 (no Q-row for a zero-length gap)", len(got))
	}
	for _, r := range got {
		if r.Type == "Q" {
			t.Errorf("unexpected Q-row for zero-length gap: %+v", r)
		}
	}
}

func TestSingleContig(t *testing.T) {
	got := SingleContig("a", ContigMeta{Tlen: 500})
	want := []Row{{ContigName: "a", Start: 0, End: 500, Len: 500, Type: "T"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
