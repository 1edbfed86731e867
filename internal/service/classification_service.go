package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jengzang/trajectory-classifier/internal/classification"
	"github.com/jengzang/trajectory-classifier/internal/loader"
	"github.com/jengzang/trajectory-classifier/internal/models"
	"github.com/jengzang/trajectory-classifier/internal/spatial"
	"github.com/jengzang/trajectory-classifier/internal/stats"
)

// ErrNotLoaded is returned by queries issued before the first successful load
var ErrNotLoaded = errors.New("no trajectory set loaded")

// TrajectoryStore is the sample source behind the service
type TrajectoryStore interface {
	ImportSet(ctx context.Context, set models.ParsedSet) error
	LoadSet(ctx context.Context) (models.ParsedSet, error)
	CountTrajectories(ctx context.Context) (int, error)
}

// Summary describes the currently loaded engine
type Summary struct {
	LoadID   string        `json:"loadId"`
	LoadedAt time.Time     `json:"loadedAt"`
	Count    int           `json:"count"`
	Stored   int           `json:"stored"` // trajectories in the store, may differ until the next reload
	Pairs    int           `json:"pairs"`
	Length   stats.Summary `json:"length"`
	Duration stats.Summary `json:"duration"`
	Speed    stats.Summary `json:"speed"`

	// LengthSpeedCorrelation is the Pearson correlation of length and speed
	LengthSpeedCorrelation float64 `json:"lengthSpeedCorrelation"`
}

// ClassificationService owns the loaded classification engine. Each reload
// builds a new engine and swaps it in whole; engines are never mutated.
type ClassificationService struct {
	store TrajectoryStore

	mu       sync.RWMutex
	engine   *classification.Engine
	loadID   string
	loadedAt time.Time
}

// NewClassificationService creates a new classification service
func NewClassificationService(store TrajectoryStore) *ClassificationService {
	return &ClassificationService{store: store}
}

// ImportFile parses a trajectory file, checks that it classifies cleanly and
// replaces the store content with it.
func (s *ClassificationService) ImportFile(ctx context.Context, path string) error {
	set, err := loader.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := classification.Load(set); err != nil {
		return fmt.Errorf("failed to validate %s: %w", path, err)
	}
	if err := s.store.ImportSet(ctx, set); err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}
	log.Printf("[ClassificationService] Imported %d trajectories from %s", len(set.Trajectories), path)
	return nil
}

// Reload reads the store and rebuilds the engine
func (s *ClassificationService) Reload(ctx context.Context) error {
	set, err := s.store.LoadSet(ctx)
	if err != nil {
		return fmt.Errorf("failed to load trajectories: %w", err)
	}

	start := time.Now()
	engine, err := classification.Load(set)
	if err != nil {
		return fmt.Errorf("failed to classify trajectories: %w", err)
	}
	loadID := uuid.NewString()

	s.mu.Lock()
	s.engine = engine
	s.loadID = loadID
	s.loadedAt = time.Now().UTC()
	s.mu.Unlock()

	log.Printf("[ClassificationService] Load %s: %d trajectories, %d pairs in %v",
		loadID, engine.Len(), engine.Stats().Pairs, time.Since(start))
	return nil
}

func (s *ClassificationService) current() (*classification.Engine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.engine == nil {
		return nil, ErrNotLoaded
	}
	return s.engine, nil
}

// Trajectories lists every loaded trajectory with its derived scalars
func (s *ClassificationService) Trajectories() ([]models.TrajectorySummary, error) {
	e, err := s.current()
	if err != nil {
		return nil, err
	}

	out := make([]models.TrajectorySummary, 0, e.Len())
	for i := 0; i < e.Len(); i++ {
		t, err := e.Trajectory(i)
		if err != nil {
			return nil, err
		}
		out = append(out, models.TrajectorySummary{
			Index:    i,
			ID:       t.ID(),
			Samples:  len(t.Samples()),
			Length:   t.Length(),
			Duration: t.Duration(),
			Speed:    t.Speed(),
			Bounds:   spatial.BoundingBox(t.Bounds()),
		})
	}
	return out, nil
}

// Neighbors returns the retained neighbor ids for the trajectory at index
func (s *ClassificationService) Neighbors(index int, metric string) (*models.NeighborsResponse, error) {
	e, err := s.current()
	if err != nil {
		return nil, err
	}
	m, err := classification.ParseMetric(metric)
	if err != nil {
		return nil, err
	}
	ids, err := e.Query(index, m)
	if err != nil {
		return nil, err
	}
	t, _ := e.Trajectory(index)

	return &models.NeighborsResponse{
		Index:     index,
		ID:        t.ID(),
		Metric:    m.String(),
		Neighbors: ids,
	}, nil
}

// Dump returns the full retention contents of the loaded engine
func (s *ClassificationService) Dump() ([]classification.Classification, error) {
	e, err := s.current()
	if err != nil {
		return nil, err
	}
	return e.Dump(), nil
}

// Summary returns load metadata, the stored trajectory count and scalar
// distributions
func (s *ClassificationService) Summary(ctx context.Context) (*Summary, error) {
	s.mu.RLock()
	e, loadID, loadedAt := s.engine, s.loadID, s.loadedAt
	s.mu.RUnlock()
	if e == nil {
		return nil, ErrNotLoaded
	}

	stored, err := s.store.CountTrajectories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count stored trajectories: %w", err)
	}

	lengths := make([]float64, 0, e.Len())
	durations := make([]float64, 0, e.Len())
	speeds := make([]float64, 0, e.Len())
	for i := 0; i < e.Len(); i++ {
		t, _ := e.Trajectory(i)
		lengths = append(lengths, t.Length())
		durations = append(durations, t.Duration())
		speeds = append(speeds, t.Speed())
	}

	return &Summary{
		LoadID:   loadID,
		LoadedAt: loadedAt,
		Count:    e.Len(),
		Stored:   stored,
		Pairs:    e.Stats().Pairs,
		Length:   stats.Summarize(lengths),
		Duration: stats.Summarize(durations),
		Speed:    stats.Summarize(speeds),

		LengthSpeedCorrelation: stats.Correlation(lengths, speeds),
	}, nil
}
