package game

import (
	"warlight/meta"
	"warlight/utils"
)

// Board resolves region ids against the current view of the world.
type Board interface {
	Region(id int) *Region
}

// Wastelands is the set of region ids announced as wastelands.
type Wastelands map[int]bool

// ComputePriority sets the region's threat index: the armies every visible
// enemy neighbor could throw at it, minus the armies already on it. Positive
// means the region would fall to a combined attack.
func (r *Region) ComputePriority(b Board, opponent string) {
	enemyArmies := 0
	for _, id := range r.neighbors {
		neighbor := b.Region(id)
		if neighbor != nil && neighbor.OwnedBy(opponent) {
			enemyArmies += neighbor.Armies - 1
		}
	}
	r.SetPriority(float64(enemyArmies - r.Armies))
}

// Cost estimates the armies needed to take every member region the player
// does not own yet. Unseen regions are priced with the tuning constants.
func (sr *SuperRegion) Cost(me string, wastelands Wastelands, t meta.Tuning) int {
	armies := 0
	for _, r := range sr.subRegions {
		switch {
		case r.OwnedBy(Unknown):
			if wastelands[r.ID] {
				armies += t.WastelandCost
			} else {
				armies += t.UnknownCost
			}
		case !r.OwnedBy(me):
			armies += r.Armies
		}
	}
	return armies
}

// Value is the reward per army it costs to complete the super region.
func (sr *SuperRegion) Value(me string, wastelands Wastelands, t meta.Tuning) float64 {
	cost := sr.Cost(me, wastelands, t)
	if cost < 1 {
		cost = 1
	}
	return float64(sr.Reward) / float64(cost)
}

// ComputePriority sets the super region's priority to its conquest value.
func (sr *SuperRegion) ComputePriority(me string, wastelands Wastelands, t meta.Tuning) {
	sr.SetPriority(sr.Value(me, wastelands, t))
}

// ArmiesNeededToCapture is the force an attack on the region should bring.
func ArmiesNeededToCapture(r *Region, t meta.Tuning) int {
	return utils.Round(t.CaptureRatio * float64(r.Armies))
}

// ArmiesNeededToDefend is how many armies must be added for the region to
// survive its scored threat. Zero or less means it is already safe.
func ArmiesNeededToDefend(r *Region, t meta.Tuning) int {
	enemyArmies := utils.Abs(int(r.Priority()) + r.Armies)
	return utils.Round(t.DefendRatio*float64(enemyArmies)) - r.Armies + 1
}

// DefenseReserve is how many armies a region should keep back to hold
// against the opponent-owned regions among others.
func DefenseReserve(b Board, others []int, opponent string, t meta.Tuning) int {
	enemyArmies := 0
	for _, id := range others {
		neighbor := b.Region(id)
		if neighbor != nil && neighbor.OwnedBy(opponent) {
			enemyArmies += neighbor.Armies - 1
		}
	}
	return utils.Round(t.DefendRatio * float64(enemyArmies))
}

// FavorsAllIn reports whether throwing everything at a lone defender is worth it.
func FavorsAllIn(attackerArmies, defenderArmies int, t meta.Tuning) bool {
	return float64(attackerArmies)*t.AllInAttackRatio > float64(defenderArmies)*t.AllInDefendRatio
}
