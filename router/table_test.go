package router

import (
	"testing"

	"github.com/d-ulitin/transitcat/graph"
)

func TestBuildRouteSameVertex(t *testing.T) {
	g := graph.New(2)
	g.AddEdge(0, 1, 5)
	table := Build(g)

	path, ok := table.BuildRoute(g, 0, 0)
	if !ok {
		t.Fatal("expected ok for (0,0)")
	}
	if path.TotalWeight != 0 || len(path.Edges) != 0 {
		t.Fatalf("path = %+v; want zero weight and no edges", path)
	}
}

func TestBuildRouteUnreachable(t *testing.T) {
	g := graph.New(3)
	g.AddEdge(0, 1, 1)
	// vertex 2 is disconnected
	table := Build(g)

	if _, ok := table.BuildRoute(g, 0, 2); ok {
		t.Fatal("expected unreachable")
	}
}

func TestBuildRouteShortestOfMultiple(t *testing.T) {
	g := graph.New(3)
	g.AddEdge(0, 1, 10) // edge 0: direct, expensive
	g.AddEdge(0, 2, 1)  // edge 1
	g.AddEdge(2, 1, 1)  // edge 2: via 2, cheaper total 2

	table := Build(g)
	path, ok := table.BuildRoute(g, 0, 1)
	if !ok {
		t.Fatal("expected reachable")
	}
	if path.TotalWeight != 2 {
		t.Fatalf("TotalWeight = %v; want 2", path.TotalWeight)
	}
	if len(path.Edges) != 2 || path.Edges[0] != 1 || path.Edges[1] != 2 {
		t.Fatalf("Edges = %v; want [1 2]", path.Edges)
	}
}

func TestBuildRouteTieBreaksByEdgeInsertionOrder(t *testing.T) {
	g := graph.New(2)
	first := g.AddEdge(0, 1, 3)
	g.AddEdge(0, 1, 3) // same weight, inserted later

	table := Build(g)
	path, ok := table.BuildRoute(g, 0, 1)
	if !ok {
		t.Fatal("expected reachable")
	}
	if len(path.Edges) != 1 || path.Edges[0] != first {
		t.Fatalf("Edges = %v; want [%d]", path.Edges, first)
	}
}
