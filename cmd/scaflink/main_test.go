// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "testing"

func TestDelimiter(t *testing.T) {
	tests := []struct {
		format  string
		want    rune
		wantErr bool
	}{
		{"csv", ',', false},
		{"tsv", '\t', false},
		{"", '\t', false},
		{"xml", 0, true},
	}
	for _, test := range tests {
		got, err := delimiter(test.format)
		if (err != nil) != test.wantErr {
			t.Errorf("delimiter(%q): got err %v, wantErr %v", test.format, err, test.wantErr)
			continue
		}
		if err == nil && got != test.want {
			t.Errorf("delimiter(%q): got %q, want %q", test.format, got, test.want)
		}
	}
}
