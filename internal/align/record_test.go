// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       Record
		wantErr bool
	}{
		{"valid", Record{Qstart: 10, Qstop: 20, Qlen: 100, Tstart: 5, Tstop: 15, Tlen: 50, NbMatch: 8, NbBase: 10, IdSeq: 0.8}, false},
		{"Qstop>Qlen", Record{Qstart: 10, Qstop: 200, Qlen: 100, Tlen: 50}, true},
		{"Qstart>Qstop", Record{Qstart: 30, Qstop: 20, Qlen: 100, Tlen: 50}, true},
		{"Tstop>Tlen", Record{Qlen: 100, Tstart: 10, Tstop: 200, Tlen: 50}, true},
		{"NbMatch>NbBase", Record{Qlen: 100, Tlen: 50, NbMatch: 20, NbBase: 10}, true},
		{"IdSeq out of range", Record{Qlen: 100, Tlen: 50, IdSeq: 1.5}, true},
	}
	for _, test := range tests {
		err := test.r.Validate()
		if (err != nil) != test.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", test.name, err, test.wantErr)
		}
	}
}

func TestWithIdentity(t *testing.T) {
	r := Record{NbMatch: 45, NbBase: 50}
	got := r.WithIdentity()
	if got.IdSeq != 0.9 {
		t.Errorf("got IdSeq %v, want 0.9", got.IdSeq)
	}

	zero := Record{NbMatch: 0, NbBase: 0}
	got = zero.WithIdentity()
	if got.IdSeq != 0 {
		t.Errorf("got IdSeq %v for zero NbBase, want unchanged 0 (no divide by zero)", got.IdSeq)
	}
}

func TestStrandFlip(t *testing.T) {
	if Forward.Flip() != Reverse {
		t.Errorf("Forward.Flip() = %v, want Reverse", Forward.Flip())
	}
	if Reverse.Flip() != Forward {
		t.Errorf("Reverse.Flip() = %v, want Forward", Reverse.Flip())
	}
	// The strand half of §8 invariant 4: Flip is an involution.
	if Forward.Flip().Flip() != Forward {
		t.Errorf("double flip did not return to the original strand")
	}
}
