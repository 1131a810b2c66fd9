package game

import (
	"warlight/meta"

	"golang.org/x/exp/slices"
)

// Unknown is the owner of a region that is not visible this round.
const Unknown = meta.UNKNOWN

// Region is the smallest ownable unit of the map.
type Region struct {
	ID          int          // Unique identifier for the region
	SuperRegion *SuperRegion // The super region this region belongs to, fixed at construction
	Owner       string       // Name of the owning player, Unknown when not visible
	Armies      int          // Armies currently on the region

	// ReservedForDefense is the number of armies placed this round to hold the region.
	ReservedForDefense int

	neighbors []int
	priority  float64
	scored    bool
}

// NewRegion creates a region and registers it with its super region.
func NewRegion(id int, superRegion *SuperRegion) *Region {
	r := &Region{
		ID:          id,
		SuperRegion: superRegion,
		Owner:       Unknown,
	}
	superRegion.addSubRegion(r)
	return r
}

func (r *Region) addNeighbor(id int) {
	if !slices.Contains(r.neighbors, id) {
		r.neighbors = append(r.neighbors, id)
	}
}

// Neighbors returns the ids of the adjacent regions.
func (r *Region) Neighbors() []int {
	return r.neighbors
}

// IsNeighbor reports whether the region with the given id borders this one.
func (r *Region) IsNeighbor(id int) bool {
	return slices.Contains(r.neighbors, id)
}

// OwnedBy reports whether the region belongs to the given player.
func (r *Region) OwnedBy(player string) bool {
	return r.Owner == player
}

// IsVisible reports whether the region was part of the last map update.
func (r *Region) IsVisible() bool {
	return r.Owner != Unknown
}

// IsNeutral reports whether the region is visible and owned by neither player.
func (r *Region) IsNeutral(me, opponent string) bool {
	return r.IsVisible() && r.Owner != me && r.Owner != opponent
}

func (r *Region) Kind() Kind {
	return RegionKind
}

// Priority returns the last computed threat index. It panics if the region was never scored.
func (r *Region) Priority() float64 {
	if !r.scored {
		panic("region priority read before it was computed")
	}
	return r.priority
}

// SetPriority overrides the threat index, marking the region as scored.
func (r *Region) SetPriority(priority float64) {
	r.priority = priority
	r.scored = true
}

// Unconquered is 0 when the region is ours and 1 otherwise.
func (r *Region) Unconquered(me string) int {
	if r.OwnedBy(me) {
		return 0
	}
	return 1
}
