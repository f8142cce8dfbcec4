package core

import (
	"bytes"
	"testing"

	"github.com/d-ulitin/transitcat/catalogue"
	"github.com/d-ulitin/transitcat/geo"
	"github.com/d-ulitin/transitcat/render"
	"github.com/d-ulitin/transitcat/transit"
)

func buildSample(t *testing.T) *Core {
	t.Helper()
	c := New(nil)
	a, err := c.AddStop("A", geo.Coordinates{Lat: 0, Lng: 0})
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.AddStop("B", geo.Coordinates{Lat: 1, Lng: 1})
	if err != nil {
		t.Fatal(err)
	}
	c.AddDistance(a, b, 1000)
	c.AddDistance(b, a, 1000)
	if _, err := c.AddBus("bus", []catalogue.StopHandle{a, b}, catalogue.Linear); err != nil {
		t.Fatal(err)
	}
	if err := c.FreezeAndBuildRouter(transit.Settings{BusWaitTime: 6, BusVelocity: 60}); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestStopReportNotFound(t *testing.T) {
	c := buildSample(t)
	if _, found := c.StopReport("nope"); found {
		t.Fatal("expected not found")
	}
}

func TestBusReportFound(t *testing.T) {
	c := buildSample(t)
	report, found := c.BusReport("bus")
	if !found {
		t.Fatal("expected found")
	}
	if report.StopCount != 3 || report.UniqueStopCount != 2 {
		t.Errorf("report = %+v", report)
	}
}

func TestRouteUnknownStop(t *testing.T) {
	c := buildSample(t)
	if _, found := c.Route("A", "nope"); found {
		t.Fatal("expected not found for unknown destination")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	c := buildSample(t)
	var buf bytes.Buffer
	settings := render.Settings{Width: 100, Height: 100, Padding: 5, UnderlayColor: render.Named("white")}
	if err := c.Serialize(&buf, settings); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	reloaded, gotSettings, err := Deserialize(&buf, nil)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if gotSettings.Width != 100 {
		t.Errorf("render settings not round-tripped: %+v", gotSettings)
	}
	it, found := reloaded.Route("A", "B")
	if !found || it.TotalTime != 7 {
		t.Errorf("Route after reload = %+v, found=%v", it, found)
	}
}

func TestSerializeBeforeFreezeFails(t *testing.T) {
	c := New(nil)
	var buf bytes.Buffer
	if err := c.Serialize(&buf, render.Settings{}); err == nil {
		t.Fatal("expected error serializing before freeze")
	}
}
