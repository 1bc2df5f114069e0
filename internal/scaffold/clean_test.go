// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaffold

import "testing"

func edge(t1, t2 string, score float64, lenInter int) Adjacency {
	return Adjacency{T1: t1, T2: t2, Score: score, LenInterContig: lenInter}
}

func TestCleanRelationsDropsDuplicatePairs(t *testing.T) {
	in := []Adjacency{
		edge("a", "b", 2, 10),
		edge("a", "b", 1, 10), // lower score, should survive
	}
	got := CleanRelations(in)
	if len(got) != 1 {
		t.Fatalf("got %d adjacencies, want 1", len(got))
	}
	if got[0].Score != 1 {
		t.Errorf("got score %v, want the lower-scored duplicate to survive", got[0].Score)
	}
}

func TestCleanRelationsDropsContradictoryPairs(t *testing.T) {
	in := []Adjacency{
		edge("a", "b", 1, 10),
		edge("b", "a", 1, 10),
	}
	got := CleanRelations(in)
	if len(got) != 0 {
		t.Errorf("got %d adjacencies, want 0 (contradictory pair fully dropped)", len(got))
	}
}

func TestCleanRelationsAtMostOneSuccessorPredecessor(t *testing.T) {
	// a->b is the best-scored edge touching b; a->c must lose.
	in := []Adjacency{
		edge("a", "b", 1, 10),
		edge("a", "c", 2, 10),
		edge("d", "b", 3, 10),
	}
	got := CleanRelations(in)
	if len(got) != 1 {
		t.Fatalf("got %d adjacencies, want 1", len(got))
	}
	if got[0].T1 != "a" || got[0].T2 != "b" {
		t.Errorf("got %s->%s, want a->b (lowest score wins the slot)", got[0].T1, got[0].T2)
	}
}

// TestCleanRelationsRejectsSeenAnyBridge exercises §4.I-2(d)'s literal
// three-set rule rather than a transitive-closure approximation of it:
// a->b and c->d are two disjoint kept edges, so both b and c are already
// in SeenAny by the time b->c is considered, and b->c must be rejected
// even though b and c belong to different components.
func TestCleanRelationsRejectsSeenAnyBridge(t *testing.T) {
	in := []Adjacency{
		edge("a", "b", 1, 10),
		edge("c", "d", 2, 10),
		edge("b", "c", 3, 10),
	}
	got := CleanRelations(in)
	if len(got) != 2 {
		t.Fatalf("got %d adjacencies, want 2 (a->b, c->d kept; b->c rejected)", len(got))
	}
	for _, a := range got {
		if a.T1 == "b" && a.T2 == "c" {
			t.Errorf("b->c was kept; it should be rejected because b and c are both already in SeenAny")
		}
	}
}

func TestCleanRelationsRejectsCycleClosure(t *testing.T) {
	in := []Adjacency{
		edge("a", "b", 1, 10),
		edge("b", "c", 2, 10),
		edge("c", "a", 3, 10), // would close a 3-cycle
	}
	got := CleanRelations(in)
	if len(got) != 2 {
		t.Fatalf("got %d adjacencies, want 2 (a->b, b->c kept; c->a rejected)", len(got))
	}
	for _, a := range got {
		if a.T1 == "c" && a.T2 == "a" {
			t.Errorf("cycle-closing edge c->a was kept")
		}
	}
}
