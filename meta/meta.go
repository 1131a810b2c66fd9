// meta/meta.go
package meta

// CAPTURE_RATIO is the attacker-to-defender ratio needed to take a region.
const CAPTURE_RATIO = 1.7

// DEFEND_RATIO is the share of a hostile force a region must match to hold.
const DEFEND_RATIO = 0.6

// ALL_IN_ATTACK_RATIO and ALL_IN_DEFEND_RATIO weigh the all-in attack odds.
const ALL_IN_ATTACK_RATIO = 0.6
const ALL_IN_DEFEND_RATIO = 0.7

// UNKNOWN_COST and WASTELAND_COST price unseen regions of a super region.
const UNKNOWN_COST = 2
const WASTELAND_COST = 6

// UNKNOWN is the owner of every region that is not visible this round.
const UNKNOWN = "unknown"
