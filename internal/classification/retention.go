package classification

// K is the number of neighbor slots kept per trajectory and metric
const K = 3

const (
	// SentinelScore marks an empty slot; it is below every legal difference
	SentinelScore = -1.0
	// NoNeighbor marks the neighbor id of an empty slot
	NoNeighbor = -1
)

// NeighborSlot is one entry of a retention array
type NeighborSlot struct {
	Score      float64 `json:"score"`
	NeighborID int     `json:"neighborId"`
}

// Empty reports whether the slot still holds the sentinel
func (s NeighborSlot) Empty() bool {
	return s.NeighborID == NoNeighbor
}

// RetentionArray is a fixed K-slot container fed one score at a time.
//
// A candidate is written at the first slot whose score is strictly lower,
// after shifting the tail right by one and dropping the last slot. With this
// rule the array keeps the K largest scores seen so far in descending order.
type RetentionArray [K]NeighborSlot

func newRetentionArray() RetentionArray {
	var r RetentionArray
	for i := range r {
		r[i] = NeighborSlot{Score: SentinelScore, NeighborID: NoNeighbor}
	}
	return r
}

// Insert offers a candidate and reports whether it was retained
func (r *RetentionArray) Insert(score float64, neighborID int) bool {
	for pos := range r {
		if r[pos].Score < score {
			copy(r[pos+1:], r[pos:K-1])
			r[pos] = NeighborSlot{Score: score, NeighborID: neighborID}
			return true
		}
	}
	return false
}

// Len returns the number of populated slots
func (r *RetentionArray) Len() int {
	n := 0
	for _, s := range r {
		if !s.Empty() {
			n++
		}
	}
	return n
}

// IDs returns the neighbor ids in slot order, skipping sentinel slots
func (r *RetentionArray) IDs() []int {
	ids := make([]int, 0, K)
	for _, s := range r {
		if s.Empty() {
			continue
		}
		ids = append(ids, s.NeighborID)
	}
	return ids
}

// Slots returns a copy of all slots including sentinels
func (r *RetentionArray) Slots() []NeighborSlot {
	out := make([]NeighborSlot, K)
	copy(out, r[:])
	return out
}
