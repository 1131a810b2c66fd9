package state

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"warlight/game"
	"warlight/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Observation is what a map update reveals about one visible region.
type Observation struct {
	Region int
	Owner  string
	Armies int
}

// Settings are the key/value facts the game announces before and between rounds.
type Settings struct {
	MyName         string
	OpponentName   string
	MaxRounds      int
	TimeBank       time.Duration // Total time that can be in the time bank
	TimePerMove    time.Duration // Time added to the time bank per requested move
	StartingArmies int           // Armies to place this round
	Round          int
}

// World is the bot's picture of the game: the full map known from setup, the
// visible map rebuilt on every update, and the plans carried between the two
// move phases of a round.
type World struct {
	Settings
	Tuning meta.Tuning

	full    *game.Map // Never changes after setup
	visible *game.Map // Copy of full with this round's observations, unknown regions pruned

	wastelands       game.Wastelands
	startingRegions  []int
	opponentMoves    []game.Move
	conquestTargets  []int // Super region ids we intend to conquer, carried across rounds
	targetedNeutrals map[int]bool
	stagedAttacks    []game.AttackTransferMove
	edgeTerritories  []*game.Region
	innerTerritories []*game.Region
}

// NewWorld returns an empty world scored with the given tuning.
func NewWorld(tuning meta.Tuning) *World {
	full := game.NewMap()
	return &World{
		Tuning:           tuning,
		full:             full,
		visible:          full.Copy(),
		wastelands:       game.Wastelands{},
		targetedNeutrals: make(map[int]bool),
	}
}

// FullMap returns the authoritative map from setup.
func (w *World) FullMap() *game.Map {
	return w.full
}

// VisibleMap returns the regions visible this round.
func (w *World) VisibleMap() *game.Map {
	return w.visible
}

// Region resolves an id against the visible map, falling back to the full map
// for regions that are not visible this round.
func (w *World) Region(id int) *game.Region {
	if r := w.visible.Region(id); r != nil {
		return r
	}
	return w.full.Region(id)
}

// SuperRegion resolves an id against the visible map, falling back to the full map.
func (w *World) SuperRegion(id int) *game.SuperRegion {
	if sr := w.visible.SuperRegion(id); sr != nil {
		return sr
	}
	return w.full.SuperRegion(id)
}

// Wastelands returns the ids announced as wastelands.
func (w *World) Wastelands() game.Wastelands {
	return w.wastelands
}

// SetupSuperRegions adds super regions with their rewards to the full map.
func (w *World) SetupSuperRegions(rewards map[int]int, order []int) {
	for _, id := range order {
		w.full.AddSuperRegion(game.NewSuperRegion(id, rewards[id]))
	}
	w.visible = w.full.Copy()
}

// SetupRegions adds regions to the full map. Regions naming an unknown super
// region are skipped and reported.
func (w *World) SetupRegions(superRegionOf map[int]int, order []int) error {
	var errs []error
	for _, id := range order {
		sr := w.full.SuperRegion(superRegionOf[id])
		if sr == nil {
			errs = append(errs, fmt.Errorf("region %d: unknown super region %d", id, superRegionOf[id]))
			continue
		}
		w.full.AddRegion(game.NewRegion(id, sr))
	}
	w.visible = w.full.Copy()
	return errors.Join(errs...)
}

// SetupNeighbors adds borders to the full map. Unknown region ids are skipped and reported.
func (w *World) SetupNeighbors(neighbors map[int][]int, order []int) error {
	var errs []error
	for _, id := range order {
		if w.full.Region(id) == nil {
			errs = append(errs, fmt.Errorf("neighbors: unknown region %d", id))
			continue
		}
		for _, n := range neighbors[id] {
			if w.full.Region(n) == nil {
				errs = append(errs, fmt.Errorf("neighbors of %d: unknown region %d", id, n))
				continue
			}
			w.full.AddNeighbor(id, n)
		}
	}
	w.visible = w.full.Copy()
	return errors.Join(errs...)
}

// SetupWastelands records the regions announced as wastelands.
func (w *World) SetupWastelands(ids []int) {
	for _, id := range ids {
		w.wastelands[id] = true
	}
}

// UpdateSettings applies one announced setting. Starting armies are announced
// once per round, so they also advance the round counter.
func (w *World) UpdateSettings(key, value string) error {
	switch key {
	case "your_bot":
		w.MyName = value
	case "opponent_bot":
		w.OpponentName = value
	case "max_rounds", "timebank", "time_per_move", "starting_armies":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		switch key {
		case "max_rounds":
			w.MaxRounds = n
		case "timebank":
			w.TimeBank = time.Duration(n) * time.Millisecond
		case "time_per_move":
			w.TimePerMove = time.Duration(n) * time.Millisecond
		case "starting_armies":
			w.StartingArmies = n
			w.Round++
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// SetPickableStartingRegions records the regions offered for the opening pick.
func (w *World) SetPickableStartingRegions(ids []int) {
	w.startingRegions = slices.Clone(ids)
}

// PickableStartingRegions returns the regions offered for the opening pick,
// resolved against the full map.
func (w *World) PickableStartingRegions() []*game.Region {
	regions := make([]*game.Region, 0, len(w.startingRegions))
	for _, id := range w.startingRegions {
		if r := w.full.Region(id); r != nil {
			regions = append(regions, r)
		}
	}
	return regions
}

// UpdateMap rebuilds the visible map from the full map and this round's
// observations. Regions nobody reported keep the unknown owner and are pruned.
func (w *World) UpdateMap(observations []Observation) error {
	var errs []error
	w.visible = w.full.Copy()
	for _, o := range observations {
		r := w.visible.Region(o.Region)
		if r == nil {
			errs = append(errs, fmt.Errorf("update: unknown region %d", o.Region))
			continue
		}
		r.Owner = o.Owner
		r.Armies = o.Armies
	}
	w.visible.Prune(func(r *game.Region) bool { return !r.IsVisible() })
	return errors.Join(errs...)
}

// RecordOpponentMoves replaces the opponent's moves with those of the latest round.
func (w *World) RecordOpponentMoves(moves []game.Move) {
	w.opponentMoves = slices.Clone(moves)
}

// OpponentMoves returns the opponent's moves of the latest round.
func (w *World) OpponentMoves() []game.Move {
	return w.opponentMoves
}

// BeginRound forgets the plans of the previous round.
func (w *World) BeginRound() {
	w.stagedAttacks = nil
	clear(w.targetedNeutrals)
	for _, r := range w.visible.Regions() {
		r.ReservedForDefense = 0
	}
}

// ClassifyEdgeVsInner splits our visible regions into edge regions, which
// border at least one region we do not own, and inner regions.
func (w *World) ClassifyEdgeVsInner() {
	w.edgeTerritories = nil
	w.innerTerritories = nil
	for _, r := range w.visible.Regions() {
		if !r.OwnedBy(w.MyName) {
			continue
		}
		if w.allNeighborsOwned(r) {
			w.innerTerritories = append(w.innerTerritories, r)
		} else {
			w.edgeTerritories = append(w.edgeTerritories, r)
		}
	}
	log.Debug().Int("edge", len(w.edgeTerritories)).Int("inner", len(w.innerTerritories)).Msg("classified territory")
}

func (w *World) allNeighborsOwned(r *game.Region) bool {
	for _, id := range r.Neighbors() {
		n := w.Region(id)
		if n == nil || !n.OwnedBy(w.MyName) {
			return false
		}
	}
	return true
}

// EdgeTerritories returns the edge regions of the last classification.
func (w *World) EdgeTerritories() []*game.Region {
	return w.edgeTerritories
}

// InnerTerritories returns the inner regions of the last classification.
func (w *World) InnerTerritories() []*game.Region {
	return w.innerTerritories
}

// IsEdge reports whether the region was classified as an edge region.
func (w *World) IsEdge(id int) bool {
	return slices.ContainsFunc(w.edgeTerritories, func(r *game.Region) bool { return r.ID == id })
}

// OwnedRegions returns every visible region we own.
func (w *World) OwnedRegions() []*game.Region {
	var owned []*game.Region
	for _, r := range w.visible.Regions() {
		if r.OwnedBy(w.MyName) {
			owned = append(owned, r)
		}
	}
	return owned
}

// AddConquestTarget queues a super region for conquest unless it is already queued.
func (w *World) AddConquestTarget(id int) {
	if !slices.Contains(w.conquestTargets, id) {
		w.conquestTargets = append(w.conquestTargets, id)
	}
}

// IsConquestTarget reports whether the super region is queued for conquest.
func (w *World) IsConquestTarget(id int) bool {
	return slices.Contains(w.conquestTargets, id)
}

// RefreshTargets drops the conquest targets we fully own and, once none are
// left, queues every super region next to our edge territory that we do not
// own. It returns the targets scored and sorted, most valuable first.
func (w *World) RefreshTargets() []*game.SuperRegion {
	w.conquestTargets = slices.DeleteFunc(w.conquestTargets, func(id int) bool {
		sr := w.SuperRegion(id)
		return sr == nil || sr.OwnedBy(w.MyName)
	})

	if len(w.conquestTargets) == 0 {
		for _, r := range w.edgeTerritories {
			for _, id := range r.Neighbors() {
				n := w.Region(id)
				if n == nil {
					continue
				}
				sr := w.SuperRegion(n.SuperRegion.ID)
				if !sr.OwnedBy(w.MyName) {
					w.AddConquestTarget(sr.ID)
				}
			}
		}
		log.Debug().Ints("targets", w.conquestTargets).Msg("replenished conquest targets")
	}

	targets := make([]*game.SuperRegion, 0, len(w.conquestTargets))
	for _, id := range w.conquestTargets {
		targets = append(targets, w.SuperRegion(id))
	}
	w.SortSuperRegions(targets)
	return targets
}

// ConquestTargets returns the queued super region ids.
func (w *World) ConquestTargets() []int {
	return w.conquestTargets
}

// StageAttack records an attack to replay in the attack phase and debits the
// source region right away, so later decisions this round see the armies as spent.
func (w *World) StageAttack(move game.AttackTransferMove) {
	w.stagedAttacks = append(w.stagedAttacks, move)
	if from := w.Region(move.From); from != nil {
		from.Armies -= move.Armies
	}
}

// TakeStagedAttacks returns the staged attacks and forgets them.
func (w *World) TakeStagedAttacks() []game.AttackTransferMove {
	staged := w.stagedAttacks
	w.stagedAttacks = nil
	return staged
}

// StagedAttacks returns the attacks staged this round.
func (w *World) StagedAttacks() []game.AttackTransferMove {
	return w.stagedAttacks
}

// TargetNeutral claims a neutral region so no second attack is planned on it this round.
func (w *World) TargetNeutral(id int) {
	w.targetedNeutrals[id] = true
}

// IsTargeted reports whether the region was claimed this round.
func (w *World) IsTargeted(id int) bool {
	return w.targetedNeutrals[id]
}

// ClaimIfNeutral claims the region when it belongs to neither player.
func (w *World) ClaimIfNeutral(r *game.Region) {
	if r.IsNeutral(w.MyName, w.OpponentName) {
		w.TargetNeutral(r.ID)
	}
}

// SortRegions scores the regions by threat and sorts them, highest first.
func (w *World) SortRegions(regions []*game.Region) {
	for _, r := range regions {
		r.ComputePriority(w, w.OpponentName)
	}
	game.SortTerritories(regions, w.MyName)
}

// SortSuperRegions scores the super regions by value and sorts them, highest first.
func (w *World) SortSuperRegions(superRegions []*game.SuperRegion) {
	for _, sr := range superRegions {
		sr.ComputePriority(w.MyName, w.wastelands, w.Tuning)
	}
	game.SortTerritories(superRegions, w.MyName)
}
