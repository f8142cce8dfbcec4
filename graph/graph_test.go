package graph

import "testing"

func TestAddEdgeAssignsDenseIDs(t *testing.T) {
	g := New(3)
	e0 := g.AddEdge(0, 1, 1.5)
	e1 := g.AddEdge(1, 2, 2.5)
	if e0 != 0 || e1 != 1 {
		t.Fatalf("edge ids = %d, %d; want 0, 1", e0, e1)
	}
	if g.EdgeCount() != 2 {
		t.Fatalf("EdgeCount() = %d; want 2", g.EdgeCount())
	}
	if g.VertexCount() != 3 {
		t.Fatalf("VertexCount() = %d; want 3", g.VertexCount())
	}
}

func TestOutgoingEdgesOrder(t *testing.T) {
	g := New(2)
	first := g.AddEdge(0, 1, 1)
	second := g.AddEdge(0, 1, 2)
	out := g.OutgoingEdges(0)
	if len(out) != 2 || out[0] != first || out[1] != second {
		t.Fatalf("OutgoingEdges(0) = %v; want [%d %d]", out, first, second)
	}
	if len(g.OutgoingEdges(1)) != 0 {
		t.Fatalf("OutgoingEdges(1) should be empty")
	}
}

func TestAddEdgeRejectsNegativeWeight(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on negative weight")
		}
	}()
	g := New(1)
	g.AddEdge(0, 0, -1)
}
