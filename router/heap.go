package router

import "github.com/d-ulitin/transitcat/graph"

// pqItem is one entry in the Dijkstra frontier: a candidate distance to a
// vertex, possibly stale by the time it is popped.
type pqItem struct {
	vertex graph.VertexID
	dist   float64
}

// vertexHeap is a binary min-heap over pqItem ordered by dist, used by
// container/heap. Less compares by dist only, so items with equal dist pop
// in an order set by the heap's internal layout rather than by insertion
// order; that order is still deterministic given a fixed edge insertion
// order upstream.
type vertexHeap []pqItem

func (h vertexHeap) Len() int            { return len(h) }
func (h vertexHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h vertexHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *vertexHeap) Push(x interface{}) { *h = append(*h, x.(pqItem)) }
func (h *vertexHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
