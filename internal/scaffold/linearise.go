// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaffold

// Chain is an ordered run of adjacencies describing a single scaffold: the
// contig sequence T1(chain[0]), T2(chain[0])=T1(chain[1]), ...
type Chain []Adjacency

// Linearise implements §4.I step 3, "sort": turning a conflict-free
// adjacency set (the output of CleanRelations, where every contig has at
// most one successor and one predecessor) into an ordered list of chains.
//
// It repeatedly pulls the first remaining adjacency, extends it forward by
// following T2→T1 links among the remaining adjacencies, and then tries to
// fuse the resulting run onto an already-built chain by head/tail contig
// identity before starting a new chain. Chains are returned in discovery
// order; by §2 the first is the cluster's scaffold and the rest are
// re-queued as new clusters by the driver.
func Linearise(adjacencies []Adjacency) []Chain {
	remaining := make([]Adjacency, len(adjacencies))
	copy(remaining, adjacencies)

	var chains []Chain
	for len(remaining) > 0 {
		run := Chain{remaining[0]}
		remaining = remaining[1:]

		for {
			tail := run[len(run)-1].T2
			idx := indexByT1(remaining, tail)
			if idx < 0 {
				break
			}
			run = append(run, remaining[idx])
			remaining = append(remaining[:idx], remaining[idx+1:]...)
		}

		if i := fuseIndex(chains, run); i >= 0 {
			chains[i] = fuse(chains[i], run)
			continue
		}
		chains = append(chains, run)
	}
	return chains
}

func indexByT1(adjacencies []Adjacency, t1 string) int {
	for i, a := range adjacencies {
		if a.T1 == t1 {
			return i
		}
	}
	return -1
}

// fuseIndex finds an existing chain whose head or tail contig matches
// either end of run, so the two can be joined into one.
func fuseIndex(chains []Chain, run Chain) int {
	for i, c := range chains {
		if c[len(c)-1].T2 == run[0].T1 {
			return i
		}
		if run[len(run)-1].T2 == c[0].T1 {
			return i
		}
	}
	return -1
}

func fuse(existing, run Chain) Chain {
	if existing[len(existing)-1].T2 == run[0].T1 {
		out := make(Chain, 0, len(existing)+len(run))
		out = append(out, existing...)
		out = append(out, run...)
		return out
	}
	out := make(Chain, 0, len(existing)+len(run))
	out = append(out, run...)
	out = append(out, existing...)
	return out
}

// Contigs returns the ordered contig names visited by the chain.
func (c Chain) Contigs() []string {
	if len(c) == 0 {
		return nil
	}
	out := make([]string, 0, len(c)+1)
	out = append(out, c[0].T1)
	for _, a := range c {
		out = append(out, a.T2)
	}
	return out
}
