package game

// SuperRegion is a fixed group of regions granting a reward when fully owned.
type SuperRegion struct {
	ID     int // Unique identifier for the super region
	Reward int // Armies granted each round to the player owning every member

	subRegions []*Region
	priority   float64
	scored     bool
}

// NewSuperRegion creates an empty super region; regions register themselves on creation.
func NewSuperRegion(id, reward int) *SuperRegion {
	return &SuperRegion{
		ID:     id,
		Reward: reward,
	}
}

func (sr *SuperRegion) addSubRegion(r *Region) {
	for _, sub := range sr.subRegions {
		if sub.ID == r.ID {
			return
		}
	}
	sr.subRegions = append(sr.subRegions, r)
}

// SubRegions returns the member regions.
func (sr *SuperRegion) SubRegions() []*Region {
	return sr.subRegions
}

// Owner returns the single player owning every member region. Mixed or
// invisible membership yields false.
func (sr *SuperRegion) Owner() (string, bool) {
	if len(sr.subRegions) == 0 {
		return "", false
	}
	owner := sr.subRegions[0].Owner
	if owner == Unknown {
		return "", false
	}
	for _, r := range sr.subRegions[1:] {
		if r.Owner != owner {
			return "", false
		}
	}
	return owner, true
}

// OwnedBy reports whether every member region belongs to the player.
func (sr *SuperRegion) OwnedBy(player string) bool {
	owner, ok := sr.Owner()
	return ok && owner == player
}

// Unconquered counts the member regions the player does not own yet.
func (sr *SuperRegion) Unconquered(me string) int {
	count := 0
	for _, r := range sr.subRegions {
		if !r.OwnedBy(me) {
			count++
		}
	}
	return count
}

func (sr *SuperRegion) Kind() Kind {
	return SuperRegionKind
}

// Priority returns the last computed conquest value. It panics if the super region was never scored.
func (sr *SuperRegion) Priority() float64 {
	if !sr.scored {
		panic("super region priority read before it was computed")
	}
	return sr.priority
}

// SetPriority overrides the conquest value, marking the super region as scored.
func (sr *SuperRegion) SetPriority(priority float64) {
	sr.priority = priority
	sr.scored = true
}
