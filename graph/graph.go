// Package graph implements a generic directed weighted graph: a fixed
// vertex count with edges appended one at a time, each assigned a dense id
// in insertion order. Once built the graph is frozen and safe for
// concurrent reads.
package graph

// VertexID indexes into the graph's vertex set.
type VertexID int32

// EdgeID indexes into the graph's edge list, assigned in insertion order.
type EdgeID int32

// Edge is a directed edge with a non-negative weight.
type Edge struct {
	From   VertexID
	To     VertexID
	Weight float64
}

// Graph is a directed weighted graph with a fixed vertex count and an
// append-only edge list. It maintains a forward incidence list per vertex
// so that shortest-path search can iterate outgoing edges in O(degree).
type Graph struct {
	vertexCount int
	edges       []Edge
	outgoing    [][]EdgeID
}

// New allocates a graph over n vertices (0..n-1) with no edges yet.
func New(n int) *Graph {
	return &Graph{
		vertexCount: n,
		outgoing:    make([][]EdgeID, n),
	}
}

// VertexCount returns the number of vertices fixed at construction.
func (self *Graph) VertexCount() int {
	return self.vertexCount
}

// EdgeCount returns the number of edges appended so far.
func (self *Graph) EdgeCount() int {
	return len(self.edges)
}

// AddEdge appends a directed edge with a non-negative weight and returns
// its dense id.
func (self *Graph) AddEdge(from, to VertexID, weight float64) EdgeID {
	if weight < 0 {
		panic("graph: negative edge weight")
	}
	id := EdgeID(len(self.edges))
	self.edges = append(self.edges, Edge{From: from, To: to, Weight: weight})
	self.outgoing[from] = append(self.outgoing[from], id)
	return id
}

// Edge returns the edge identified by id.
func (self *Graph) Edge(id EdgeID) Edge {
	return self.edges[id]
}

// OutgoingEdges returns the ids of edges leaving v, in insertion order.
func (self *Graph) OutgoingEdges(v VertexID) []EdgeID {
	return self.outgoing[v]
}
