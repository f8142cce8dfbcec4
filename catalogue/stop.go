package catalogue

import "github.com/d-ulitin/transitcat/geo"

// StopHandle is an opaque, stable identity for a stop: its position in the
// catalogue's stop arena. It never moves or is reused for the life of the
// catalogue.
type StopHandle int32

// NoStop is the sentinel absent handle, returned by GetStop for unknown
// names.
const NoStop StopHandle = -1

// Stop is immutable once inserted into a Catalogue.
type Stop struct {
	Name        string
	Coordinates geo.Coordinates
}
