package planner

import (
	"testing"

	"warlight/game"
	"warlight/meta"
	"warlight/state"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const (
	me  = "player1"
	opp = "player2"
)

// newWorld builds a world where region i+1 belongs to superRegionOf[i]. Every
// super region is worth 2 armies.
func newWorld(t *testing.T, superRegionOf []int, borders [][2]int, observations ...state.Observation) *state.World {
	t.Helper()
	w := state.NewWorld(meta.DefaultTuning())
	require.NoError(t, w.UpdateSettings("your_bot", me))
	require.NoError(t, w.UpdateSettings("opponent_bot", opp))

	rewards := make(map[int]int)
	var superRegionIDs []int
	regions := make(map[int]int)
	var regionIDs []int
	for i, sr := range superRegionOf {
		if _, ok := rewards[sr]; !ok {
			rewards[sr] = 2
			superRegionIDs = append(superRegionIDs, sr)
		}
		regions[i+1] = sr
		regionIDs = append(regionIDs, i+1)
	}
	neighbors := make(map[int][]int)
	for _, b := range borders {
		neighbors[b[0]] = append(neighbors[b[0]], b[1])
	}

	w.SetupSuperRegions(rewards, superRegionIDs)
	require.NoError(t, w.SetupRegions(regions, regionIDs))
	require.NoError(t, w.SetupNeighbors(neighbors, regionIDs))
	require.NoError(t, w.UpdateMap(observations))
	return w
}

func newPlanner() *Planner {
	return New(WithRand(rand.New(rand.NewSource(1))))
}

func total(moves []game.PlaceArmiesMove) int {
	sum := 0
	for _, m := range moves {
		sum += m.Armies
	}
	return sum
}

func TestPickStartingRegion(t *testing.T) {
	t.Run("picking the most valuable super region", func(t *testing.T) {
		// Super region 1 has three unknown regions (cost 6), super region 2 has one (cost 2).
		w := newWorld(t, []int{1, 1, 1, 2}, [][2]int{{1, 2}, {2, 3}, {3, 4}})
		w.SetPickableStartingRegions([]int{1, 4})

		r, ok := newPlanner().PickStartingRegion(w)
		require.True(t, ok, "a region should be picked")
		require.Equal(t, 4, r.ID, "cheaper super region should win")
		require.Equal(t, []int{2}, w.ConquestTargets(), "picked super region should be queued")
	})

	t.Run("preferring smaller super regions on a tie", func(t *testing.T) {
		w := newWorld(t, []int{1, 2, 2}, [][2]int{{1, 2}, {2, 3}})
		w.FullMap().SuperRegion(2).Reward = 4
		w.SetPickableStartingRegions([]int{2, 1})

		r, ok := newPlanner().PickStartingRegion(w)
		require.True(t, ok, "a region should be picked")
		require.Equal(t, 1, r.ID, "super region with fewer members should win the tie")
	})

	t.Run("reporting an empty pick", func(t *testing.T) {
		w := newWorld(t, []int{1}, nil)
		_, ok := newPlanner().PickStartingRegion(w)
		require.False(t, ok, "nothing to pick from")
	})
}
