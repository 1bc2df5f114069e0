// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaflink

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		cfg     Config
		wantErr bool
	}{
		{Config{NbMatchMin: 10000, IdSeqMin: 0.9}, false},
		{Config{NbMatchMin: -1, IdSeqMin: 0.9}, true},
		{Config{NbMatchMin: 10000, IdSeqMin: 1.1}, true},
		{Config{NbMatchMin: 10000, IdSeqMin: -0.1}, true},
		{Config{NbMatchMin: 10000, IdSeqMin: 0.9, Workers: -1}, true},
	}
	for _, test := range tests {
		err := test.cfg.Validate()
		if (err != nil) != test.wantErr {
			t.Errorf("Validate(%+v): got err %v, wantErr %v", test.cfg, err, test.wantErr)
		}
	}
}
