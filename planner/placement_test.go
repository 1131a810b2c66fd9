package planner

import (
	"testing"

	"warlight/game"
	"warlight/state"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestDefend(t *testing.T) {
	t.Run("committing what the threat needs", func(t *testing.T) {
		// Region 1 holds 2 armies next to 9 enemies: priority 6, needs 4.
		w := newWorld(t, []int{1, 1}, [][2]int{{1, 2}},
			state.Observation{Region: 1, Owner: me, Armies: 2},
			state.Observation{Region: 2, Owner: opp, Armies: 9},
		)
		w.ClassifyEdgeVsInner()
		edges := w.EdgeTerritories()
		w.SortRegions(edges)

		pl := &placement{world: w, budget: 10}
		newPlanner().defend(pl, edges)
		require.Equal(t, []game.PlaceArmiesMove{{Player: me, Region: 1, Armies: 4}}, pl.moves, "exactly the needed armies should be placed")
		require.Equal(t, 6, pl.budget, "the rest should be left for expansion")
		require.Equal(t, 6, w.Region(1).Armies, "placement should be applied to the region")
		require.Equal(t, 4, w.Region(1).ReservedForDefense, "defense should be reserved")
	})

	t.Run("fortifying the most threatened region it cannot cover", func(t *testing.T) {
		// Region 1 needs 4, region 3 needs round(0.6*19)-1+1 = 11.
		w := newWorld(t, []int{1, 1, 2, 2}, [][2]int{{1, 2}, {3, 4}},
			state.Observation{Region: 1, Owner: me, Armies: 2},
			state.Observation{Region: 2, Owner: opp, Armies: 9},
			state.Observation{Region: 3, Owner: me, Armies: 1},
			state.Observation{Region: 4, Owner: opp, Armies: 20},
		)
		w.ClassifyEdgeVsInner()
		edges := w.EdgeTerritories()
		w.SortRegions(edges)

		pl := &placement{world: w, budget: 7}
		newPlanner().defend(pl, edges)
		require.Equal(t, []game.PlaceArmiesMove{
			{Player: me, Region: 1, Armies: 4},
			{Player: me, Region: 3, Armies: 3},
		}, pl.moves, "affordable defense first, then the rest on the region in danger")
		require.Zero(t, pl.budget, "budget should be spent")
	})

	t.Run("skipping safe regions", func(t *testing.T) {
		w := newWorld(t, []int{1, 1}, [][2]int{{1, 2}},
			state.Observation{Region: 1, Owner: me, Armies: 8},
			state.Observation{Region: 2, Owner: opp, Armies: 2},
		)
		w.ClassifyEdgeVsInner()
		edges := w.EdgeTerritories()
		w.SortRegions(edges)

		pl := &placement{world: w, budget: 5}
		newPlanner().defend(pl, edges)
		require.Empty(t, pl.moves, "safe region needs nothing")
		require.Equal(t, 5, pl.budget, "budget should be untouched")
	})
}

func TestPlaceArmies(t *testing.T) {
	t.Run("leaving the remainder of the defense to expansion", func(t *testing.T) {
		w := newWorld(t, []int{1, 1}, [][2]int{{1, 2}},
			state.Observation{Region: 1, Owner: me, Armies: 2},
			state.Observation{Region: 2, Owner: opp, Armies: 9},
		)
		moves := newPlanner().PlaceArmies(w, 10)
		require.Equal(t, game.PlaceArmiesMove{Player: me, Region: 1, Armies: 4}, moves[0], "defense should come first")
		require.Equal(t, 10, total(moves), "whole budget should be placed")
		require.Equal(t, 12, w.Region(1).Armies, "region should hold its armies plus the budget")
	})

	t.Run("staging the attacks it deploys for", func(t *testing.T) {
		// Region 2 holds 2 neutrals; capturing takes 3, so region 1 needs one more army.
		w := newWorld(t, []int{1, 1, 2}, [][2]int{{1, 2}, {2, 3}},
			state.Observation{Region: 1, Owner: me, Armies: 3},
			state.Observation{Region: 2, Owner: "neutral", Armies: 2},
		)
		moves := newPlanner().PlaceArmies(w, 5)
		require.Equal(t, []game.PlaceArmiesMove{
			{Player: me, Region: 1, Armies: 1},
			{Player: me, Region: 1, Armies: 4},
		}, moves, "deployment for the attack, then the fallback")
		require.Equal(t, []game.AttackTransferMove{{Player: me, From: 1, To: 2, Armies: 3}}, w.StagedAttacks(), "attack should be staged")
		require.True(t, w.IsTargeted(2), "neutral target should be claimed")
		require.Equal(t, 5, w.Region(1).Armies, "staged armies should already be debited")
	})

	t.Run("staging without deploying when the region is strong enough", func(t *testing.T) {
		w := newWorld(t, []int{1, 1}, [][2]int{{1, 2}},
			state.Observation{Region: 1, Owner: me, Armies: 10},
			state.Observation{Region: 2, Owner: "neutral", Armies: 2},
		)
		moves := newPlanner().PlaceArmies(w, 3)
		require.Equal(t, []game.PlaceArmiesMove{{Player: me, Region: 1, Armies: 3}}, moves, "only the fallback should place armies")
		require.Len(t, w.StagedAttacks(), 1, "attack should still be staged")
	})

	t.Run("funding the best region it could not cover", func(t *testing.T) {
		w := newWorld(t, []int{1, 1}, [][2]int{{1, 2}},
			state.Observation{Region: 1, Owner: me, Armies: 1},
			state.Observation{Region: 2, Owner: "neutral", Armies: 10},
		)
		moves := newPlanner().PlaceArmies(w, 5)
		require.Equal(t, []game.PlaceArmiesMove{{Player: me, Region: 1, Armies: 5}}, moves, "whole budget should go to the unfunded region")
		require.Empty(t, w.StagedAttacks(), "nothing affordable should be staged")
	})

	t.Run("repopulating the conquest queue", func(t *testing.T) {
		w := newWorld(t, []int{1, 2, 3}, [][2]int{{1, 2}, {1, 3}},
			state.Observation{Region: 1, Owner: me, Armies: 2},
			state.Observation{Region: 2, Owner: "neutral", Armies: 2},
			state.Observation{Region: 3, Owner: "neutral", Armies: 2},
		)
		newPlanner().PlaceArmies(w, 5)
		require.ElementsMatch(t, []int{2, 3}, w.ConquestTargets(), "every bordering super region we do not own should be queued")
	})

	t.Run("forgetting last round's plans", func(t *testing.T) {
		w := newWorld(t, []int{1, 1}, [][2]int{{1, 2}},
			state.Observation{Region: 1, Owner: me, Armies: 10},
			state.Observation{Region: 2, Owner: "neutral", Armies: 2},
		)
		p := newPlanner()
		p.PlaceArmies(w, 3)
		require.NoError(t, w.UpdateMap([]state.Observation{
			{Region: 1, Owner: me, Armies: 10},
			{Region: 2, Owner: "neutral", Armies: 2},
		}))
		p.PlaceArmies(w, 3)
		require.Len(t, w.StagedAttacks(), 1, "attacks of the previous round should not pile up")
	})

	t.Run("placing nothing without owned regions", func(t *testing.T) {
		w := newWorld(t, []int{1}, nil, state.Observation{Region: 1, Owner: opp, Armies: 2})
		require.Empty(t, newPlanner().PlaceArmies(w, 5), "no owned region to place on")
	})

	t.Run("placing nothing without a budget", func(t *testing.T) {
		w := newWorld(t, []int{1, 1}, [][2]int{{1, 2}},
			state.Observation{Region: 1, Owner: me, Armies: 1},
			state.Observation{Region: 2, Owner: "neutral", Armies: 2},
		)
		require.Empty(t, newPlanner().PlaceArmies(w, 0), "empty budget should place nothing")
	})
}

// arena is the map of the warlight2 arena fixture.
var arena = struct {
	superRegionOf []int
	borders       [][2]int
}{
	superRegionOf: []int{1, 1, 1, 2, 2, 3, 3, 3, 4, 4, 4, 4, 4, 4, 4, 5, 5, 5},
	borders: [][2]int{
		{1, 2}, {1, 4}, {2, 4}, {2, 6}, {2, 3}, {3, 7}, {3, 6}, {4, 5}, {4, 6},
		{5, 10}, {5, 9}, {5, 6}, {6, 7}, {6, 9}, {6, 12}, {7, 13}, {7, 8}, {7, 12},
		{9, 10}, {9, 12}, {10, 11}, {10, 14}, {10, 12}, {10, 15}, {11, 14}, {12, 15},
		{12, 13}, {13, 15}, {14, 16}, {14, 15}, {15, 16}, {16, 18}, {16, 17},
	},
}

func randomArenaWorld(t *testing.T, r *rand.Rand) *state.World {
	owners := []string{me, opp, "neutral", ""}
	var observations []state.Observation
	for id := 1; id <= len(arena.superRegionOf); id++ {
		owner := owners[r.Intn(len(owners))]
		if owner == "" {
			continue
		}
		observations = append(observations, state.Observation{Region: id, Owner: owner, Armies: 1 + r.Intn(12)})
	}
	return newWorld(t, arena.superRegionOf, arena.borders, observations...)
}

func TestPlacementBudget(t *testing.T) {
	t.Run("never overspending the budget", func(t *testing.T) {
		r := rand.New(rand.NewSource(7))
		for i := 0; i < 200; i++ {
			w := randomArenaWorld(t, r)
			before := make(map[int]int)
			for _, region := range w.OwnedRegions() {
				before[region.ID] = region.Armies
			}
			budget := r.Intn(15)

			p := New(WithRand(rand.New(rand.NewSource(uint64(i)))))
			moves := p.PlaceArmies(w, budget)
			require.LessOrEqual(t, total(moves), budget, "placement should stay within budget")
			if len(before) > 0 {
				require.Equal(t, budget, total(moves), "budget should be used up when we own a region")
			}
			for _, m := range moves {
				require.Positive(t, m.Armies, "placement should never send zero armies")
				_, owned := before[m.Region]
				require.True(t, owned, "armies should only be placed on owned regions")
			}
			for _, region := range w.OwnedRegions() {
				require.GreaterOrEqual(t, region.Armies, 1, "staging should never empty a region")
			}

			attacks := p.AttackTransfer(w)
			for _, m := range attacks {
				require.Positive(t, m.Armies, "attacks should never send zero armies")
				_, owned := before[m.From]
				require.True(t, owned, "attacks should start from owned regions")
			}
			for _, region := range w.OwnedRegions() {
				require.GreaterOrEqual(t, region.Armies, 1, "attacks should leave a garrison")
			}
		}
	})
}
