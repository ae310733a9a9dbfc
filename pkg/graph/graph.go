// Package graph implements the external Steiner-tree graph consumer
// contract from spec §6: one Node per column, one Edge per
// (source, target, link name) with weight 1, never duplicated. The real
// Steiner-tree mapping generator is out of scope; this package is the
// small sink the registry's projection step writes into, plus additive
// debug tooling (a Graphviz DOT dump) grounded in
// original_source/util/graphvisualizer.py's existence.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mimir-aip/semantic-schema-infer/pkg/column"
)

// Node wraps a column by identity; the node id is the column name.
type Node struct {
	ID     string
	Column *column.Column
}

// Edge is a named, weighted link between two columns.
type Edge struct {
	Source string
	Target string
	Key    string
	Weight int
}

// Graph accumulates Nodes and Edges. Re-adding the same (source, target,
// key) edge is a no-op, per spec §3.
type Graph struct {
	nodes map[string]*Node
	order []string
	edges map[string]*Edge
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node), edges: make(map[string]*Edge)}
}

// AddNode registers col under its own name, a no-op if already present.
func (g *Graph) AddNode(col *column.Column) {
	if col == nil {
		return
	}
	if _, ok := g.nodes[col.Name]; ok {
		return
	}
	g.nodes[col.Name] = &Node{ID: col.Name, Column: col}
	g.order = append(g.order, col.Name)
}

// AddEdge records a weight-1 edge from source to target under key,
// deduplicating on (source, target, key).
func (g *Graph) AddEdge(source, target, key string) {
	id := source + "\x00" + target + "\x00" + key
	if _, ok := g.edges[id]; ok {
		return
	}
	g.edges[id] = &Edge{Source: source, Target: target, Key: key, Weight: 1}
}

// Nodes returns every node, ordered by first insertion.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns every edge in an arbitrary but stable order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		if out[i].Target != out[j].Target {
			return out[i].Target < out[j].Target
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// DOT renders g as a Graphviz DOT digraph for quick visual inspection.
func DOT(g *Graph) string {
	var b strings.Builder
	b.WriteString("digraph schema {\n")
	for _, n := range g.Nodes() {
		fmt.Fprintf(&b, "  %q [label=%q];\n", n.ID, fmt.Sprintf("%s (%s)", n.ID, n.Column.Kind))
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", e.Source, e.Target, e.Key)
	}
	b.WriteString("}\n")
	return b.String()
}
