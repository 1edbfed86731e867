package classification

import (
	"fmt"
	"strings"
)

// Metric selects the scalar used to compare trajectories
type Metric int

const (
	MetricUnknown Metric = iota
	MetricLength
	MetricSpeed
)

// Metrics lists the supported metrics in display order
var Metrics = []Metric{MetricLength, MetricSpeed}

func (m Metric) String() string {
	switch m {
	case MetricLength:
		return "length"
	case MetricSpeed:
		return "speed"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// Valid reports whether m is a supported metric
func (m Metric) Valid() bool {
	return m == MetricLength || m == MetricSpeed
}

// ParseMetric accepts a metric name or its numeric menu code (1 length, 2 speed)
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "length", "1":
		return MetricLength, nil
	case "speed", "2":
		return MetricSpeed, nil
	}
	return MetricUnknown, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// slot maps a metric onto the per-trajectory retention array index
func (m Metric) slot() int {
	return int(m) - 1
}
