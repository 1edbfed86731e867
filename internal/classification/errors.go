package classification

import "errors"

var (
	// ErrInvalidInput is returned by Load when declared counts or ids are malformed
	ErrInvalidInput = errors.New("invalid input")
	// ErrOutOfRange is returned by Query for an index outside [0, N)
	ErrOutOfRange = errors.New("trajectory index out of range")
	// ErrUnknownMetric is returned for an unsupported metric
	ErrUnknownMetric = errors.New("unknown metric")
)
