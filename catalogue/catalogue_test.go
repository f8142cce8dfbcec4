package catalogue

import (
	"errors"
	"testing"

	"github.com/d-ulitin/transitcat/geo"
)

func mustAddStop(t *testing.T, c *Catalogue, name string, lat, lng float64) StopHandle {
	t.Helper()
	h, err := c.AddStop(name, geo.Coordinates{Lat: lat, Lng: lng})
	if err != nil {
		t.Fatalf("AddStop(%q) = %v", name, err)
	}
	return h
}

// TestLinearLength implements S1: linear bus route length and stop count.
func TestLinearLength(t *testing.T) {
	c := New()
	s1 := mustAddStop(t, c, "s1", 10, 11)
	s2 := mustAddStop(t, c, "s2", 20, 21)
	s3 := mustAddStop(t, c, "s3", 30, 31)
	s4 := mustAddStop(t, c, "s4", 40, 41)

	c.AddDistance(s1, s2, 1)
	c.AddDistance(s2, s3, 2)
	c.AddDistance(s3, s2, 2)
	c.AddDistance(s3, s4, 3)
	c.AddDistance(s4, s3, 30)

	bus, err := c.AddBus("bus1", []StopHandle{s1, s2, s3, s4}, Linear)
	if err != nil {
		t.Fatalf("AddBus: %v", err)
	}

	length, err := c.RouteLength(bus)
	if err != nil {
		t.Fatalf("RouteLength: %v", err)
	}
	if length != 39 {
		t.Errorf("RouteLength = %d; want 39", length)
	}
	if got := c.Bus(bus).StopCount(); got != 7 {
		t.Errorf("StopCount = %d; want 7", got)
	}
}

// TestCircularMissingClosingDistance implements S2: an absent closing
// distance on a circular bus is an UnknownDistance error.
func TestCircularMissingClosingDistance(t *testing.T) {
	c := New()
	s1 := mustAddStop(t, c, "s1", 0, 0)
	s2 := mustAddStop(t, c, "s2", 1, 1)
	s3 := mustAddStop(t, c, "s3", 2, 2)

	c.AddDistance(s1, s2, 1)
	c.AddDistance(s2, s2, 2)
	c.AddDistance(s2, s3, 3)
	c.AddDistance(s3, s2, 5)
	// no distance recorded s3 -> s1 (nor s1 -> s3): closing the loop fails.

	bus, err := c.AddBus("bus2", []StopHandle{s1, s2, s2, s3, s1}, Circular)
	if err != nil {
		t.Fatalf("AddBus: %v", err)
	}

	if _, err := c.RouteLength(bus); !errors.Is(err, ErrUnknownDistance) {
		t.Errorf("RouteLength error = %v; want ErrUnknownDistance", err)
	}
}

// TestReverseDistanceFallback implements S3.
func TestReverseDistanceFallback(t *testing.T) {
	c := New()
	s1 := mustAddStop(t, c, "s1", 0, 0)
	s2 := mustAddStop(t, c, "s2", 1, 1)

	c.AddDistance(s1, s2, 7)
	if d, err := c.GetDistance(s2, s1); err != nil || d != 7 {
		t.Fatalf("GetDistance(s2,s1) = (%d, %v); want (7, nil)", d, err)
	}

	c.AddDistance(s2, s1, 9)
	if d, err := c.GetDistance(s2, s1); err != nil || d != 9 {
		t.Fatalf("GetDistance(s2,s1) after overwrite = (%d, %v); want (9, nil)", d, err)
	}
	if d, err := c.GetDistance(s1, s2); err != nil || d != 7 {
		t.Fatalf("GetDistance(s1,s2) = (%d, %v); want (7, nil)", d, err)
	}
}

func TestGetDistanceUnknownBothDirections(t *testing.T) {
	c := New()
	s1 := mustAddStop(t, c, "s1", 0, 0)
	s2 := mustAddStop(t, c, "s2", 1, 1)
	if _, err := c.GetDistance(s1, s2); !errors.Is(err, ErrUnknownDistance) {
		t.Errorf("GetDistance error = %v; want ErrUnknownDistance", err)
	}
}

func TestBusesThroughOrderedAndScoped(t *testing.T) {
	c := New()
	s1 := mustAddStop(t, c, "s1", 0, 0)
	s2 := mustAddStop(t, c, "s2", 1, 1)
	s3 := mustAddStop(t, c, "s3", 2, 2)

	c.AddDistance(s1, s2, 1)
	c.AddDistance(s2, s1, 1)
	c.AddDistance(s2, s3, 1)
	c.AddDistance(s3, s2, 1)

	if _, err := c.AddBus("Zeta", []StopHandle{s1, s2}, Linear); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddBus("Alpha", []StopHandle{s1, s2}, Linear); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddBus("Only3", []StopHandle{s2, s3}, Linear); err != nil {
		t.Fatal(err)
	}

	names := func(hs []BusHandle) []string {
		out := make([]string, len(hs))
		for i, h := range hs {
			out[i] = c.Bus(h).Name
		}
		return out
	}

	got := names(c.BusesThrough(s1))
	want := []string{"Alpha", "Zeta"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("BusesThrough(s1) = %v; want %v", got, want)
	}

	if got := c.BusesThrough(s3); len(got) != 1 || c.Bus(got[0]).Name != "Only3" {
		t.Errorf("BusesThrough(s3) = %v", names(got))
	}
}

func TestDuplicateInsertion(t *testing.T) {
	c := New()
	mustAddStop(t, c, "s1", 0, 0)
	if _, err := c.AddStop("s1", geo.Coordinates{}); !errors.Is(err, ErrDuplicateStop) {
		t.Errorf("AddStop duplicate = %v; want ErrDuplicateStop", err)
	}
}
