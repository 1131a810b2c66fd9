package planner

import (
	"warlight/game"
	"warlight/state"

	"github.com/rs/zerolog/log"
)

// placement accumulates the moves of one placement phase and keeps the
// budget and the region army counts in step with them.
type placement struct {
	world  *state.World
	budget int
	moves  []game.PlaceArmiesMove
}

func (pl *placement) place(r *game.Region, armies int) {
	if armies <= 0 || armies > pl.budget {
		return
	}
	r.Armies += armies
	pl.budget -= armies
	pl.moves = append(pl.moves, game.PlaceArmiesMove{Player: pl.world.MyName, Region: r.ID, Armies: armies})
}

// PlaceArmies spends the round's army budget: first holding edge regions
// under threat, then preparing the attacks that complete the most valuable
// super regions, and finally dropping whatever is left on a random edge.
// The attacks it prepares are staged on the world for AttackTransfer.
func (p *Planner) PlaceArmies(w *state.World, budget int) []game.PlaceArmiesMove {
	pl := &placement{world: w, budget: max(budget, 0)}

	w.BeginRound()
	w.ClassifyEdgeVsInner()
	targets := w.RefreshTargets()
	edges := w.EdgeTerritories()
	w.SortRegions(edges)

	p.defend(pl, edges)
	if pl.budget > 0 {
		p.expand(pl, targets, edges)
	}
	if pl.budget > 0 {
		p.fallback(pl, edges)
	}

	log.Debug().Int("budget", budget).Int("moves", len(pl.moves)).Int("staged", len(w.StagedAttacks())).Msg("placed armies")
	return pl.moves
}

// defend reinforces every edge region that would fall to its visible enemy
// neighbors, in priority order, as long as the budget covers it. The rest of
// the budget goes to the most threatened region it could not cover.
func (p *Planner) defend(pl *placement, edges []*game.Region) {
	var inDanger *game.Region
	for _, r := range edges {
		if pl.budget <= 0 {
			return
		}
		needed := game.ArmiesNeededToDefend(r, pl.world.Tuning)
		if needed <= 0 {
			continue
		}
		if needed <= pl.budget {
			pl.place(r, needed)
			r.ReservedForDefense += needed
			continue
		}
		if inDanger == nil || inDanger.Priority() < r.Priority() {
			inDanger = r
		}
	}
	if inDanger != nil && pl.budget > 0 {
		log.Debug().Msgf("region %d is in danger, fortifying with %d", inDanger.ID, pl.budget)
		pl.place(inDanger, pl.budget)
	}
}

// expand deploys next to the neighbors that complete the conquest targets,
// most valuable target first, and stages the attacks that take them.
func (p *Planner) expand(pl *placement, targets []*game.SuperRegion, edges []*game.Region) {
	w := pl.world
	var notEnough *game.Region
	for _, sr := range targets {
		for _, r := range edges {
			for _, id := range r.Neighbors() {
				if pl.budget <= 0 {
					return
				}
				neighbor := w.VisibleMap().Region(id)
				if neighbor == nil || neighbor.SuperRegion.ID != sr.ID || neighbor.OwnedBy(w.MyName) || w.IsTargeted(id) {
					continue
				}

				capture := captureCost(w, neighbor)
				toDeploy := capture - r.Armies + 1 + r.ReservedForDefense
				if toDeploy > pl.budget {
					if notEnough == nil || notEnough.Priority() < r.Priority() {
						notEnough = r
					}
					continue
				}
				pl.place(r, toDeploy)
				w.StageAttack(game.AttackTransferMove{Player: w.MyName, From: r.ID, To: neighbor.ID, Armies: capture})
				w.ClaimIfNeutral(neighbor)
			}
		}
	}
	if notEnough != nil && pl.budget > 0 {
		log.Debug().Msgf("region %d could not be fully funded, adding %d", notEnough.ID, pl.budget)
		pl.place(notEnough, pl.budget)
	}
}

// fallback drops the remaining budget on a random edge region, or a random
// owned region when there is no edge left.
func (p *Planner) fallback(pl *placement, edges []*game.Region) {
	candidates := edges
	if len(candidates) == 0 {
		candidates = pl.world.OwnedRegions()
	}
	if len(candidates) == 0 {
		log.Warn().Int("budget", pl.budget).Msg("no owned region to place armies on")
		return
	}
	pl.place(candidates[p.rand.Intn(len(candidates))], pl.budget)
}
