package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortTerritories(t *testing.T) {
	t.Run("ordering regions by descending priority", func(t *testing.T) {
		a, b, c := &Region{ID: 1}, &Region{ID: 2}, &Region{ID: 3}
		a.SetPriority(1)
		b.SetPriority(5)
		c.SetPriority(3)
		regions := []*Region{a, b, c}

		SortTerritories(regions, "player1")

		require.Equal(t, []*Region{b, c, a}, regions)
	})

	t.Run("keeping input order for regions with equal priority", func(t *testing.T) {
		a, b := &Region{ID: 1}, &Region{ID: 2}
		a.SetPriority(2)
		b.SetPriority(2)
		regions := []*Region{a, b}

		SortTerritories(regions, "player1")

		require.Equal(t, []*Region{a, b}, regions, "Regions have no tie-break")
	})

	t.Run("finishing easier super regions first on equal priority", func(t *testing.T) {
		m := newTestMap()
		setOwner(m, "player1", 1, 1, 2)
		big, small := m.SuperRegion(2), m.SuperRegion(1)
		big.SetPriority(1)
		small.SetPriority(1)
		superRegions := []*SuperRegion{big, small}

		SortTerritories(superRegions, "player1")

		require.Equal(t, []*SuperRegion{small, big}, superRegions,
			"Super region with one unconquered member should come before one with two")
	})

	t.Run("panicking on unscored territories", func(t *testing.T) {
		regions := []*Region{{ID: 1}, {ID: 2}}
		require.Panics(t, func() { SortTerritories(regions, "player1") })
	})
}
