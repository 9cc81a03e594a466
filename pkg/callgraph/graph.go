package callgraph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddEdge] when an endpoint
	// identifier is empty. [Graph.AddNode] reports empty identifiers by
	// returning false.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Node is a vertex of the call graph. Its ID is the method or function
// identifier as produced by the extractor; it doubles as the display label.
type Node struct {
	ID string
}

// Edge is a directed call from the caller (From) to the callee (To).
type Edge struct {
	From string
	To   string
}

// Graph is a directed call graph with insertion-ordered nodes and edges.
//
// Nodes are unique by ID. Edges are unique by ordered (From, To) pair:
// re-adding an existing edge, including a self-loop, is a no-op. Cycles are
// allowed, since recursion is a normal shape of a call graph.
//
// The zero value is not usable - use New to create a Graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes    map[string]int // nodeID -> index into order
	order    []string
	edges    []Edge
	edgeSet  map[Edge]struct{}
	outgoing map[string][]string // nodeID -> callee IDs
	incoming map[string][]string // nodeID -> caller IDs
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]int),
		edgeSet:  make(map[Edge]struct{}),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node with the given ID and reports whether it was added.
// Adding an ID that is already present is a no-op and returns false, as does
// an empty ID.
func (g *Graph) AddNode(id string) bool {
	if id == "" {
		return false
	}
	if _, exists := g.nodes[id]; exists {
		return false
	}
	g.nodes[id] = len(g.order)
	g.order = append(g.order, id)
	return true
}

// AddEdge adds the directed edge from→to between two existing nodes and
// reports whether it was added. An edge that already exists is absorbed:
// AddEdge returns false and no error.
//
// Returns ErrInvalidNodeID for empty endpoints, ErrUnknownSourceNode if the
// From node doesn't exist, or ErrUnknownTargetNode if the To node doesn't.
func (g *Graph) AddEdge(from, to string) (bool, error) {
	if from == "" || to == "" {
		return false, ErrInvalidNodeID
	}
	if _, ok := g.nodes[from]; !ok {
		return false, ErrUnknownSourceNode
	}
	if _, ok := g.nodes[to]; !ok {
		return false, ErrUnknownTargetNode
	}
	e := Edge{From: from, To: to}
	if _, exists := g.edgeSet[e]; exists {
		return false, nil
	}
	g.edgeSet[e] = struct{}{}
	g.edges = append(g.edges, e)
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
	return true, nil
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether the edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edgeSet[Edge{From: from, To: to}]
	return ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = Node{ID: id}
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the IDs this node calls, in edge insertion order.
// The returned slice should not be modified.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs of nodes that call this node.
// The returned slice should not be modified.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Sources returns nodes that nothing calls (entry points), in insertion order.
// A node whose only caller is itself is not a source.
func (g *Graph) Sources() []Node {
	var sources []Node
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, Node{ID: id})
		}
	}
	return sources
}

// Sinks returns nodes that call nothing (leaves), in insertion order.
func (g *Graph) Sinks() []Node {
	var sinks []Node
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			sinks = append(sinks, Node{ID: id})
		}
	}
	return sinks
}
