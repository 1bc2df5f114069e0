// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cluster implements the anchor clusterer (§4.C, "Ancrage"):
// partitioning a set of strict alignment records into connected
// components of the bipartite target↔query graph, projected to their
// target-contig ids. The bipartite graph is built and solved with
// gonum.org/v1/gonum/graph, using a named-node wrapper for this kind of
// two-named-sets graph (target contigs on one side, query contigs on
// the other).
package cluster

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/kortschak/scaflink/internal/align"
)

// side distinguishes a target node from a query node sharing the same
// underlying contig id space.
type side byte

const (
	targetSide side = 'T'
	querySide  side = 'Q'
)

type node struct {
	id   int64
	name string
	side side
}

func (n node) ID() int64 { return n.id }

// DOTID labels the node by side and name for the --display trace.
func (n node) DOTID() string { return string(n.side) + "_" + n.name }

// bipartite interns (side,name) pairs as gonum graph nodes and builds the
// undirected alignment graph one record at a time.
type bipartite struct {
	g      *simple.UndirectedGraph
	nodeOf map[side]map[string]node
}

func newBipartite() *bipartite {
	return &bipartite{
		g:      simple.NewUndirectedGraph(),
		nodeOf: map[side]map[string]node{targetSide: {}, querySide: {}},
	}
}

func (b *bipartite) nodeFor(s side, name string) node {
	if n, ok := b.nodeOf[s][name]; ok {
		return n
	}
	n := node{id: b.g.NewNode().ID(), name: name, side: s}
	b.nodeOf[s][name] = n
	b.g.AddNode(n)
	return n
}

func (b *bipartite) addRecord(r align.Record) {
	t := b.nodeFor(targetSide, r.Tname)
	q := b.nodeFor(querySide, r.Qname)
	if !b.g.HasEdgeBetween(t.ID(), q.ID()) {
		b.g.SetEdge(simple.Edge{F: t, T: q})
	}
}

// Cluster is a connected component of the bipartite target↔query graph,
// projected to the set of target-contig ids it contains. Tnames is sorted
// for deterministic downstream processing.
type Cluster struct {
	Tnames []string
}

// Has reports whether t belongs to the cluster.
func (c Cluster) Has(t string) bool {
	i := sort.SearchStrings(c.Tnames, t)
	return i < len(c.Tnames) && c.Tnames[i] == t
}

// Ancrage partitions records into connected components of the bipartite
// (T,Q) graph, returned as the list of components projected to T-nodes.
// Clusters are returned in ascending order of their lexicographically
// smallest target name, and each Cluster's Tnames are themselves sorted,
// so the result is deterministic given the input regardless of record
// order.
func Ancrage(records []align.Record) []Cluster {
	b := newBipartite()
	for _, r := range records {
		b.addRecord(r)
	}

	components := topo.ConnectedComponents(b.g)
	clusters := make([]Cluster, 0, len(components))
	for _, comp := range components {
		var tnames []string
		for _, n := range comp {
			gn := n.(node)
			if gn.side == targetSide {
				tnames = append(tnames, gn.name)
			}
		}
		if len(tnames) == 0 {
			// A component made entirely of query nodes can't arise from
			// addRecord (every edge has one T and one Q endpoint), but
			// guard against it rather than emit an empty cluster.
			continue
		}
		sort.Strings(tnames)
		clusters = append(clusters, Cluster{Tnames: tnames})
	}
	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].Tnames[0] < clusters[j].Tnames[0]
	})
	return clusters
}

// Restrict returns the subset of records whose Tname belongs to c.
func Restrict(records []align.Record, c Cluster) []align.Record {
	var out []align.Record
	for _, r := range records {
		if c.Has(r.Tname) {
			out = append(out, r)
		}
	}
	return out
}

// DOT renders the bipartite target↔query graph in Graphviz DOT format
// for the --display trace (§4.M).
func DOT(records []align.Record, name string) (string, error) {
	b := newBipartite()
	for _, r := range records {
		b.addRecord(r)
	}
	out, err := dot.Marshal(b.g, name, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

var _ graph.Node = node{}
