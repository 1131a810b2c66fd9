// Package planner decides the bot's moves: where to start, where to place
// the round's armies and which attacks and transfers to send.
package planner

import (
	"time"

	"warlight/game"
	"warlight/state"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(p *Planner)

// WithRand replaces the random source used by the fallback placement.
func WithRand(r *rand.Rand) Option {
	return func(p *Planner) {
		if r != nil {
			p.rand = r
		}
	}
}

// Planner turns the world of one round into moves. It keeps no state of its
// own between rounds; everything carried over lives in the world.
type Planner struct {
	rand *rand.Rand
}

func New(options ...Option) *Planner {
	p := &Planner{ // Default values
		rand: rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// PickStartingRegion chooses the pickable region whose super region is worth
// the most, preferring smaller super regions on a tie, and queues that super
// region for conquest. It reports false when nothing can be picked.
func (p *Planner) PickStartingRegion(w *state.World) (*game.Region, bool) {
	var best *game.Region
	for _, r := range w.PickableStartingRegions() {
		sr := r.SuperRegion
		sr.ComputePriority(w.MyName, w.Wastelands(), w.Tuning)
		if best == nil || better(sr, best.SuperRegion) {
			best = r
		}
	}
	if best == nil {
		log.Warn().Msg("no pickable starting region")
		return nil, false
	}
	w.AddConquestTarget(best.SuperRegion.ID)
	log.Debug().Msgf("picked region %d in super region %d (value %.2f)", best.ID, best.SuperRegion.ID, best.SuperRegion.Priority())
	return best, true
}

func better(sr, than *game.SuperRegion) bool {
	if sr.Priority() != than.Priority() {
		return sr.Priority() > than.Priority()
	}
	return len(sr.SubRegions()) < len(than.SubRegions())
}

// captureCost is the force an attack on the region brings, never less than one army.
func captureCost(w *state.World, r *game.Region) int {
	return max(game.ArmiesNeededToCapture(r, w.Tuning), 1)
}
