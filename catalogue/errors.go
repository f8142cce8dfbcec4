package catalogue

import "errors"

// Sentinel build-time and query-time errors. ErrDuplicateStop,
// ErrDuplicateBus, ErrUnknownStop and ErrUnknownDistance are wrapped with
// the offending name or handle via fmt.Errorf("%w", ...) at the call site;
// ErrEmptyName and ErrEmptyBusStops are returned as they are.
var (
	ErrEmptyName       = errors.New("catalogue: name must not be empty")
	ErrDuplicateStop   = errors.New("catalogue: stop already exists")
	ErrDuplicateBus    = errors.New("catalogue: bus already exists")
	ErrEmptyBusStops   = errors.New("catalogue: bus must have at least one stop")
	ErrUnknownStop     = errors.New("catalogue: unknown stop in bus")
	ErrUnknownDistance = errors.New("catalogue: unknown distance between stops")
)
