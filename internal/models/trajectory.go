package models

// Sample is a single timestamped planar reading
type Sample struct {
	X int `json:"x" db:"x"`
	Y int `json:"y" db:"y"`
	T int `json:"t" db:"t"`
}

// ParsedTrajectory is one trajectory as produced by a loader.
// DeclaredSamples is the sample count announced by the input, which may
// disagree with len(Samples) when the input is inconsistent.
type ParsedTrajectory struct {
	ID              int      `json:"id"`
	DeclaredSamples int      `json:"declaredSamples"`
	Samples         []Sample `json:"samples"`
}

// ParsedSet is the complete batch handed to the classification engine
type ParsedSet struct {
	DeclaredCount int                `json:"declaredCount"`
	Trajectories  []ParsedTrajectory `json:"trajectories"`
}

// NewParsedSet builds a consistent set where every declared count matches
// the data it describes.
func NewParsedSet(trajectories ...[]Sample) ParsedSet {
	set := ParsedSet{
		DeclaredCount: len(trajectories),
		Trajectories:  make([]ParsedTrajectory, 0, len(trajectories)),
	}
	for i, samples := range trajectories {
		set.Trajectories = append(set.Trajectories, ParsedTrajectory{
			ID:              i,
			DeclaredSamples: len(samples),
			Samples:         samples,
		})
	}
	return set
}

// TrajectorySummary describes a loaded trajectory for API responses
type TrajectorySummary struct {
	Index    int         `json:"index"`
	ID       int         `json:"id"`
	Samples  int         `json:"samples"`
	Length   float64     `json:"length"`
	Duration float64     `json:"duration"`
	Speed    float64     `json:"speed"`
	Bounds   BoundingBox `json:"bounds"`
}

// BoundingBox is an axis-aligned box in sample coordinates
type BoundingBox struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// NeighborsResponse is returned by the neighbor query endpoint
type NeighborsResponse struct {
	Index     int    `json:"index"`
	ID        int    `json:"id"`
	Metric    string `json:"metric"`
	Neighbors []int  `json:"neighbors"`
}
