package game

import "golang.org/x/exp/slices"

// Kind tags the two territory variants.
type Kind int

const (
	RegionKind Kind = iota
	SuperRegionKind
)

// Territory is what the planners order by priority: a region when defending,
// a super region when choosing what to conquer.
type Territory interface {
	Kind() Kind
	Priority() float64
	Unconquered(me string) int
}

// tieBreaks holds the per-variant ordering applied when priorities are equal.
// Regions have none and keep their input order.
var tieBreaks = map[Kind]func(a, b Territory, me string) int{
	SuperRegionKind: fewerUnconquered,
}

// fewerUnconquered puts the super region that is closer to completion first.
func fewerUnconquered(a, b Territory, me string) int {
	return a.Unconquered(me) - b.Unconquered(me)
}

// Compare orders territories by descending priority, then by the variant's tie-break.
func Compare(a, b Territory, me string) int {
	pa, pb := a.Priority(), b.Priority()
	switch {
	case pa > pb:
		return -1
	case pa < pb:
		return 1
	}
	if a.Kind() != b.Kind() {
		return 0
	}
	if tieBreak, ok := tieBreaks[a.Kind()]; ok {
		return tieBreak(a, b, me)
	}
	return 0
}

// SortTerritories stable-sorts already scored territories, highest priority first.
func SortTerritories[T Territory](territories []T, me string) {
	slices.SortStableFunc(territories, func(a, b T) int {
		return Compare(a, b, me)
	})
}
