package classification

import (
	"fmt"
	"math"

	"github.com/jengzang/trajectory-classifier/internal/models"
)

// Engine holds a loaded trajectory set whose retention arrays were filled by
// a single all-pairs pass. It is not modified after Load returns, so queries
// may run concurrently.
type Engine struct {
	trajectories []*Trajectory
	byID         map[int]int
	stats        Stats
}

// Stats counts the candidates submitted during the pairwise pass
type Stats struct {
	Pairs       int            `json:"pairs"`
	Submissions map[Metric]int `json:"-"`
}

// Classification is the debug view of one trajectory
type Classification struct {
	Index    int                       `json:"index"`
	ID       int                       `json:"id"`
	Length   float64                   `json:"length"`
	Duration float64                   `json:"duration"`
	Speed    float64                   `json:"speed"`
	Slots    map[string][]NeighborSlot `json:"slots"`
}

// Load validates set, derives every trajectory's scalars and runs the
// pairwise pass. It returns either a fully populated engine or an error
// wrapping ErrInvalidInput.
func Load(set models.ParsedSet) (*Engine, error) {
	if err := validate(set); err != nil {
		return nil, err
	}

	e := &Engine{
		trajectories: make([]*Trajectory, 0, len(set.Trajectories)),
		byID:         make(map[int]int, len(set.Trajectories)),
		stats:        Stats{Submissions: make(map[Metric]int, len(Metrics))},
	}
	for i, pt := range set.Trajectories {
		e.trajectories = append(e.trajectories, NewTrajectory(pt.ID, pt.Samples))
		e.byID[pt.ID] = i
	}

	e.classify()
	return e, nil
}

func validate(set models.ParsedSet) error {
	if set.DeclaredCount < 0 {
		return fmt.Errorf("%w: negative trajectory count %d", ErrInvalidInput, set.DeclaredCount)
	}
	if set.DeclaredCount != len(set.Trajectories) {
		return fmt.Errorf("%w: declared %d trajectories, got %d",
			ErrInvalidInput, set.DeclaredCount, len(set.Trajectories))
	}

	seen := make(map[int]struct{}, len(set.Trajectories))
	for i, pt := range set.Trajectories {
		if pt.ID < 0 {
			return fmt.Errorf("%w: trajectory %d has negative id %d", ErrInvalidInput, i, pt.ID)
		}
		if _, dup := seen[pt.ID]; dup {
			return fmt.Errorf("%w: duplicate trajectory id %d", ErrInvalidInput, pt.ID)
		}
		seen[pt.ID] = struct{}{}

		if pt.DeclaredSamples < 0 {
			return fmt.Errorf("%w: trajectory %d has negative sample count %d",
				ErrInvalidInput, pt.ID, pt.DeclaredSamples)
		}
		if pt.DeclaredSamples != len(pt.Samples) {
			return fmt.Errorf("%w: trajectory %d declared %d samples, got %d",
				ErrInvalidInput, pt.ID, pt.DeclaredSamples, len(pt.Samples))
		}
	}
	return nil
}

// classify visits every unordered pair once and feeds both sides
func (e *Engine) classify() {
	n := len(e.trajectories)
	for i := 0; i < n; i++ {
		a := e.trajectories[i]
		for j := i + 1; j < n; j++ {
			b := e.trajectories[j]
			lengthDiff := math.Abs(a.Length() - b.Length())
			speedDiff := math.Abs(a.Speed() - b.Speed())

			e.submitPair(MetricLength, a, b, lengthDiff)
			e.submitPair(MetricSpeed, a, b, speedDiff)
			e.stats.Pairs++
		}
	}
}

func (e *Engine) submitPair(metric Metric, a, b *Trajectory, diff float64) {
	a.submit(metric, diff, b.ID())
	b.submit(metric, diff, a.ID())
	e.stats.Submissions[metric] += 2
}

// Len returns the number of loaded trajectories
func (e *Engine) Len() int {
	return len(e.trajectories)
}

// Stats returns a copy of the pairwise pass counters
func (e *Engine) Stats() Stats {
	out := Stats{Pairs: e.stats.Pairs, Submissions: make(map[Metric]int, len(e.stats.Submissions))}
	for m, n := range e.stats.Submissions {
		out.Submissions[m] = n
	}
	return out
}

// Trajectory returns the trajectory at index
func (e *Engine) Trajectory(index int) (*Trajectory, error) {
	if index < 0 || index >= len(e.trajectories) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, len(e.trajectories))
	}
	return e.trajectories[index], nil
}

// TrajectoryByID resolves a neighbor id to its trajectory
func (e *Engine) TrajectoryByID(id int) (*Trajectory, bool) {
	i, ok := e.byID[id]
	if !ok {
		return nil, false
	}
	return e.trajectories[i], true
}

// Query returns the neighbor ids retained for the trajectory at index under
// metric, in slot order with empty slots left out.
func (e *Engine) Query(index int, metric Metric) ([]int, error) {
	t, err := e.Trajectory(index)
	if err != nil {
		return nil, err
	}
	r, err := t.Neighbors(metric)
	if err != nil {
		return nil, err
	}
	return r.IDs(), nil
}

// Dump returns the full retention contents of every trajectory, sentinel
// slots included.
func (e *Engine) Dump() []Classification {
	out := make([]Classification, 0, len(e.trajectories))
	for i, t := range e.trajectories {
		c := Classification{
			Index:    i,
			ID:       t.ID(),
			Length:   t.Length(),
			Duration: t.Duration(),
			Speed:    t.Speed(),
			Slots:    make(map[string][]NeighborSlot, len(Metrics)),
		}
		for _, m := range Metrics {
			r, _ := t.Neighbors(m)
			c.Slots[m.String()] = r.Slots()
		}
		out = append(out, c)
	}
	return out
}
