package domain

import "errors"

// Error kinds surfaced by the simulator. All are terminal: the core performs
// no I/O, so nothing here represents a transient failure worth retrying.
var (
	// ErrUnknownCity is returned for a city key absent from the registry.
	ErrUnknownCity = errors.New("unknown city")

	// ErrUnsupportedHorizon is returned for forecast horizons outside [1,5]
	// days, mirroring realistic forecast-skill limits even in simulation.
	ErrUnsupportedHorizon = errors.New("unsupported forecast horizon")

	// ErrInvalidInput is returned for malformed timestamps or step sizes.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration signals a malformed climate band. A correctly built
	// registry never triggers it; it guards programming errors.
	ErrConfiguration = errors.New("configuration error")

	// ErrNoCitiesConfigured is returned by coordinate resolution when the
	// registry is empty.
	ErrNoCitiesConfigured = errors.New("no cities configured")
)
