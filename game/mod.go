// Package game models the territory graph of a Warlight map, the moves a
// player can send, and the scores the planners order territories by.
//
// Scores are transient: nothing recomputes them automatically, and reading a
// score that was never computed panics.
package game
