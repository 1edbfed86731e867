package classification

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/jengzang/trajectory-classifier/internal/models"
	"github.com/jengzang/trajectory-classifier/internal/spatial"
)

// Trajectory is a time-ordered sample sequence with its derived scalars and
// one retention array per metric. Scalars are computed once at construction
// since samples never change afterwards.
type Trajectory struct {
	id      int
	samples []models.Sample

	length   float64
	duration float64
	speed    float64
	bounds   r2.Rect

	neighbors [2]RetentionArray
}

// NewTrajectory copies and stably sorts samples by timestamp, then derives
// length, duration and speed.
func NewTrajectory(id int, samples []models.Sample) *Trajectory {
	sorted := slices.Clone(samples)
	slices.SortStableFunc(sorted, func(a, b models.Sample) int {
		return cmp.Compare(a.T, b.T)
	})

	t := &Trajectory{
		id:      id,
		samples: sorted,
		bounds:  spatial.Bounds(sorted),
	}
	t.length = spatial.PathLength(sorted)
	if len(sorted) > 1 {
		// float64 so that extreme timestamps cannot wrap to a negative span
		t.duration = float64(sorted[len(sorted)-1].T) - float64(sorted[0].T)
	}
	// Zero speed covers both a stationary and a zero-elapsed-time trajectory
	if t.duration != 0 && t.length != 0 {
		t.speed = t.length / t.duration
	}
	for i := range t.neighbors {
		t.neighbors[i] = newRetentionArray()
	}
	return t
}

// ID returns the trajectory id
func (t *Trajectory) ID() int { return t.id }

// Samples returns a copy of the sorted samples
func (t *Trajectory) Samples() []models.Sample { return slices.Clone(t.samples) }

// Length is the summed Euclidean distance between consecutive samples
func (t *Trajectory) Length() float64 { return t.length }

// Duration is last.T - first.T, or 0 with fewer than two samples
func (t *Trajectory) Duration() float64 { return t.duration }

// Speed is Length/Duration, or 0 when either is 0
func (t *Trajectory) Speed() float64 { return t.speed }

// Bounds returns the bounding rectangle of the samples
func (t *Trajectory) Bounds() r2.Rect { return t.bounds }

// Neighbors returns the retention array for metric in slot order
func (t *Trajectory) Neighbors(metric Metric) (RetentionArray, error) {
	if !metric.Valid() {
		return RetentionArray{}, fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
	}
	return t.neighbors[metric.slot()], nil
}

func (t *Trajectory) submit(metric Metric, score float64, neighborID int) {
	t.neighbors[metric.slot()].Insert(score, neighborID)
}
