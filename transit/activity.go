package transit

import "github.com/d-ulitin/transitcat/catalogue"

// Activity is one segment of an itinerary: either waiting at a stop or
// riding a bus for a given span. It is a small closed sum type, matching
// the tagged-variant idiom used for Named/RGB/RGBA colours in the render
// package.
type Activity interface {
	isActivity()
}

// Wait is time spent standing at a stop before a bus departs.
type Wait struct {
	Stop    catalogue.StopHandle
	Minutes float64
}

func (Wait) isActivity() {}

// Ride is time spent aboard a single bus, covering Span hops without
// alighting.
type Ride struct {
	Bus     catalogue.BusHandle
	From    catalogue.StopHandle
	Span    int
	Minutes float64
}

func (Ride) isActivity() {}

// Itinerary is the result of a Route query: a total time in minutes and the
// ordered activities that make it up. An empty Activities slice means the
// source equals the destination.
type Itinerary struct {
	TotalTime  float64
	Activities []Activity
}
