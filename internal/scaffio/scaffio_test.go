// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaffio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kortschak/scaflink/internal/pipeline"
	"github.com/kortschak/scaflink/internal/scaffold"
)

func TestWriteTSV(t *testing.T) {
	scaffolds := []pipeline.Scaffold{
		{
			LeadContig: "tA",
			Rows: []scaffold.Row{
				{ContigName: "tA", Start: 0, End: 180000, Len: 180000, Type: "T"},
			},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, scaffolds, '\t'); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (header + one row)", len(lines))
	}
	want := "tA\t0\t180000\tfalse\t180000\tT"
	if lines[1] != want {
		t.Errorf("got row %q, want %q", lines[1], want)
	}
}
