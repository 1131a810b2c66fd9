package planner

import (
	"warlight/game"
	"warlight/state"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// AttackTransfer decides the second phase of the round: idle armies move
// toward the front, the attacks staged during placement are sent, and each
// edge region attacks whatever it can still afford.
func (p *Planner) AttackTransfer(w *state.World) []game.AttackTransferMove {
	w.ClassifyEdgeVsInner()

	moves := p.transferIdleArmies(w)
	moves = append(moves, w.TakeStagedAttacks()...)
	moves = append(moves, p.attack(w)...)

	log.Debug().Int("moves", len(moves)).Msg("decided attacks and transfers")
	return moves
}

// transferIdleArmies moves the surplus of every inner region one step toward
// its nearest edge region.
func (p *Planner) transferIdleArmies(w *state.World) []game.AttackTransferMove {
	var moves []game.AttackTransferMove
	for _, r := range w.InnerTerritories() {
		surplus := r.Armies - 1
		if surplus <= 0 {
			continue
		}
		hop, ok := nearestEdgeHop(w, r)
		if !ok {
			continue
		}
		moves = append(moves, game.AttackTransferMove{Player: w.MyName, From: r.ID, To: hop, Armies: surplus})
		r.Armies -= surplus
	}
	return moves
}

// nearestEdgeHop searches outward from the region one level at a time and
// returns the neighbor through which the closest edge region is reached.
// Among edges found at the same distance the highest priority wins.
func nearestEdgeHop(w *state.World, from *game.Region) (int, bool) {
	visited := map[int]bool{from.ID: true}
	firstHop := make(map[int]int)

	var frontier []*game.Region
	for _, id := range from.Neighbors() {
		n := w.Region(id)
		if n == nil || visited[id] {
			continue
		}
		visited[id] = true
		firstHop[id] = id
		frontier = append(frontier, n)
	}

	for len(frontier) > 0 {
		var found []*game.Region
		for _, r := range frontier {
			if w.IsEdge(r.ID) {
				found = append(found, r)
			}
		}
		if len(found) > 0 {
			w.SortRegions(found)
			return firstHop[found[0].ID], true
		}

		var next []*game.Region
		for _, r := range frontier {
			if !r.OwnedBy(w.MyName) {
				continue
			}
			for _, id := range r.Neighbors() {
				n := w.Region(id)
				if n == nil || visited[id] {
					continue
				}
				visited[id] = true
				firstHop[id] = firstHop[r.ID]
				next = append(next, n)
			}
		}
		frontier = next
	}
	return 0, false
}

// attack sends every affordable attack from the edge regions, most
// threatened region first.
func (p *Planner) attack(w *state.World) []game.AttackTransferMove {
	var moves []game.AttackTransferMove
	edges := slices.Clone(w.EdgeTerritories())
	w.SortRegions(edges)

	for _, from := range edges {
		candidates := attackCandidates(w, from)
		if len(candidates) == 0 {
			continue
		}

		if len(candidates) == 1 {
			target := candidates[0]
			if !w.IsTargeted(target.ID) && game.FavorsAllIn(from.Armies, target.Armies, w.Tuning) {
				moves = append(moves, send(w, from, target, from.Armies-1))
				continue
			}
		}

		remaining := slices.Clone(from.Neighbors())
		for _, target := range candidates {
			if w.IsTargeted(target.ID) {
				continue
			}
			others := slices.DeleteFunc(slices.Clone(remaining), func(id int) bool { return id == target.ID })
			available := from.Armies - game.DefenseReserve(w, others, w.OpponentName, w.Tuning) - 1
			if available <= 0 {
				break
			}
			cost := captureCost(w, target)
			if available < cost {
				break
			}
			moves = append(moves, send(w, from, target, cost))
			remaining = others
		}
	}
	return moves
}

// attackCandidates lists the visible foreign neighbors the region outnumbers
// by the capture ratio. Neighbors in a conquest target come first, each group
// ordered by descending defender armies.
func attackCandidates(w *state.World, from *game.Region) []*game.Region {
	var targeted, rest []*game.Region
	for _, id := range from.Neighbors() {
		n := w.VisibleMap().Region(id)
		if n == nil || n.OwnedBy(w.MyName) || from.Armies <= captureCost(w, n) {
			continue
		}
		if w.IsConquestTarget(n.SuperRegion.ID) {
			targeted = append(targeted, n)
		} else {
			rest = append(rest, n)
		}
	}
	byArmies := func(a, b *game.Region) int { return b.Armies - a.Armies }
	slices.SortStableFunc(targeted, byArmies)
	slices.SortStableFunc(rest, byArmies)
	return append(targeted, rest...)
}

// send debits the attacker and claims the target when it is neutral.
func send(w *state.World, from, to *game.Region, armies int) game.AttackTransferMove {
	from.Armies -= armies
	w.ClaimIfNeutral(to)
	log.Debug().Msgf("attacking %d from %d with %d", to.ID, from.ID, armies)
	return game.AttackTransferMove{Player: w.MyName, From: from.ID, To: to.ID, Armies: armies}
}
