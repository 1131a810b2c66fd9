package game

import "fmt"

// ActionType represents the type of move a player can send.
type ActionType int

const (
	PlaceArmiesAction ActionType = iota
	AttackTransferAction
)

func (a ActionType) String() string {
	switch a {
	case PlaceArmiesAction:
		return "place_armies"
	case AttackTransferAction:
		return "attack/transfer"
	default:
		return fmt.Sprintf("ActionType(%d)", int(a))
	}
}

// Move is anything the bot or its opponent can send in a round.
type Move interface {
	Action() ActionType
	String() string
}

// PlaceArmiesMove deploys armies onto an owned region.
type PlaceArmiesMove struct {
	Player string
	Region int
	Armies int
}

func (m PlaceArmiesMove) Action() ActionType {
	return PlaceArmiesAction
}

func (m PlaceArmiesMove) String() string {
	return fmt.Sprintf("%s %s %d %d", m.Player, PlaceArmiesAction, m.Region, m.Armies)
}

// AttackTransferMove moves armies into a neighbor: an attack when the
// neighbor is foreign, a transfer when it is ours.
type AttackTransferMove struct {
	Player string
	From   int
	To     int
	Armies int
}

func (m AttackTransferMove) Action() ActionType {
	return AttackTransferAction
}

func (m AttackTransferMove) String() string {
	return fmt.Sprintf("%s %s %d %d %d", m.Player, AttackTransferAction, m.From, m.To, m.Armies)
}
