// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import "errors"

// ErrEmptyCluster marks a cluster that lost every record to some filtering
// stage (restriction to its strict records, repeat filter, or
// verification) before reaching the scaffolder. It is not propagated to the caller of Run — the driver
// logs it at info level and drops the cluster (§7).
var ErrEmptyCluster = errors.New("pipeline: cluster has no records after filtering")

// ErrDegenerateScaffold marks a cluster whose cleaned adjacency set
// produced no chains — a cluster of one or more target contigs with no
// query spanning any two of them. Each such contig is emitted as its own
// single-row scaffold instead of being dropped (§7, §9).
var ErrDegenerateScaffold = errors.New("pipeline: cluster produced no adjacencies, emitting single-contig scaffold(s)")
