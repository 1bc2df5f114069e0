// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaffold

import (
	"fmt"

	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// contigNode is a named graph.Node wrapping a contig name.
type contigNode struct {
	id   int64
	name string
}

func (n contigNode) ID() int64     { return n.id }
func (n contigNode) DOTID() string { return n.name }

// Graph builds the directed adjacency graph over a cleaned adjacency set,
// for the acyclicity assertion in CheckAcyclic and for the --display DOT
// trace.
func Graph(adjacencies []Adjacency) *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	nodes := map[string]contigNode{}
	nodeFor := func(name string) contigNode {
		if n, ok := nodes[name]; ok {
			return n
		}
		n := contigNode{id: int64(len(nodes)), name: name}
		nodes[name] = n
		g.AddNode(n)
		return n
	}
	for _, a := range adjacencies {
		from, to := nodeFor(a.T1), nodeFor(a.T2)
		if !g.HasEdgeFromTo(from.ID(), to.ID()) {
			g.SetEdge(g.NewEdge(from, to))
		}
	}
	return g
}

// ErrCycle reports that a cleaned adjacency set still contains a cycle.
// CleanRelations is defined to make this impossible; its appearance marks
// a programming error in clean_relations, not a malformed input.
type ErrCycle struct {
	Cycles [][]string
}

func (e *ErrCycle) Error() string {
	return fmt.Sprintf("scaffold: adjacency graph contains %d cycle(s) after clean_relations", len(e.Cycles))
}

// CheckAcyclic verifies invariant 5 (§8): a cleaned adjacency set, viewed
// as a directed graph, has no cycles.
func CheckAcyclic(adjacencies []Adjacency) error {
	g := Graph(adjacencies)
	cycles := topo.DirectedCyclesIn(g)
	if len(cycles) == 0 {
		return nil
	}
	named := make([][]string, len(cycles))
	for i, c := range cycles {
		names := make([]string, len(c))
		for j, n := range c {
			names[j] = n.(contigNode).name
		}
		named[i] = names
	}
	return &ErrCycle{Cycles: named}
}

// DOT renders the adjacency graph in Graphviz DOT format for the
// --display trace.
func DOT(adjacencies []Adjacency, name string) (string, error) {
	g := Graph(adjacencies)
	b, err := dot.Marshal(g, name, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
