// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaffold

import "sort"

// CleanRelations implements §4.I step 2, "clean_relations": reducing a
// possibly-contradictory adjacency list to a set in which every contig has
// at most one successor, at most one predecessor, and no edge closes a
// cycle.
//
// The steps run in order:
//  1. sort by (Score asc, LenInterContig asc) — best-supported edges first;
//  2. drop duplicate (T1,T2) pairs, keeping the first (lowest-score) survivor;
//  3. drop every row of any unordered pair {a,b} that appears in both
//     directions (a→b and b→a) — such a pair is self-contradictory and
//     neither direction is preferred over the other;
//  4. walk the remaining rows once in order, keeping a row iff its T1 has
//     not already been given a successor, its T2 has not already been
//     given a predecessor, and the two contigs are not both already
//     endpoints of some other kept row.
func CleanRelations(adjacencies []Adjacency) []Adjacency {
	sorted := make([]Adjacency, len(adjacencies))
	copy(sorted, adjacencies)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score < sorted[j].Score
		}
		return sorted[i].LenInterContig < sorted[j].LenInterContig
	})

	sorted = dropDuplicatePairs(sorted)
	sorted = dropContradictoryPairs(sorted)
	return keepWalk(sorted)
}

func dropDuplicatePairs(adjacencies []Adjacency) []Adjacency {
	type directedKey struct{ t1, t2 string }
	seen := map[directedKey]bool{}
	var out []Adjacency
	for _, a := range adjacencies {
		k := directedKey{a.T1, a.T2}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, a)
	}
	return out
}

func dropContradictoryPairs(adjacencies []Adjacency) []Adjacency {
	type undirectedKey struct{ a, b string }
	key := func(t1, t2 string) undirectedKey {
		if t1 <= t2 {
			return undirectedKey{t1, t2}
		}
		return undirectedKey{t2, t1}
	}
	forward := map[undirectedKey]bool{}
	reverse := map[undirectedKey]bool{}
	for _, a := range adjacencies {
		k := key(a.T1, a.T2)
		if a.T1 <= a.T2 {
			forward[k] = true
		} else {
			reverse[k] = true
		}
	}

	var out []Adjacency
	for _, a := range adjacencies {
		k := key(a.T1, a.T2)
		if forward[k] && reverse[k] {
			continue
		}
		out = append(out, a)
	}
	return out
}

// keepWalk applies §4.I-2(d) literally: keep a row iff T1∉SeenAsT1 ∧
// T2∉SeenAsT2 ∧ ¬(T1∈SeenAny ∧ T2∈SeenAny). seenAny is the union of
// seenAsT1 and seenAsT2 as of the current row, so the third condition
// rejects every row that would join two contigs each already touched by
// some other kept row, whether or not that row would close a cycle; every
// cycle-closing row is among them.
func keepWalk(adjacencies []Adjacency) []Adjacency {
	seenAsT1 := map[string]bool{}
	seenAsT2 := map[string]bool{}
	seenAny := map[string]bool{}

	var out []Adjacency
	for _, a := range adjacencies {
		if seenAsT1[a.T1] || seenAsT2[a.T2] {
			continue
		}
		if seenAny[a.T1] && seenAny[a.T2] {
			continue
		}
		seenAsT1[a.T1] = true
		seenAsT2[a.T2] = true
		seenAny[a.T1] = true
		seenAny[a.T2] = true
		out = append(out, a)
	}
	return out
}
