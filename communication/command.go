package communication

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"warlight/game"
	"warlight/state"
)

// ErrUnknownCommand is returned for lines that do not start with a known command.
var ErrUnknownCommand = errors.New("unknown command")

// Command is one parsed protocol line. Malformed parts of a line are dropped
// and reported through Diagnostics; the rest of the line is still applied.
type Command interface {
	Diagnostics() []error
}

type diagnostics struct {
	Skipped []error
}

func (d *diagnostics) Diagnostics() []error {
	return d.Skipped
}

func (d *diagnostics) skip(format string, args ...any) {
	d.Skipped = append(d.Skipped, fmt.Errorf(format, args...))
}

// Settings assigns a game setting. Most settings carry one value; the
// starting regions carry a list.
type Settings struct {
	diagnostics
	Key    string
	Values []string
}

type SetupSuperRegions struct {
	diagnostics
	Rewards map[int]int
	Order   []int
}

type SetupRegions struct {
	diagnostics
	SuperRegionOf map[int]int
	Order         []int
}

type SetupNeighbors struct {
	diagnostics
	Neighbors map[int][]int
	Order     []int
}

type SetupWastelands struct {
	diagnostics
	Regions []int
}

// UpdateMap lists every region visible this round.
type UpdateMap struct {
	diagnostics
	Observations []state.Observation
}

// OpponentMoves lists the opponent moves we could see last round.
type OpponentMoves struct {
	diagnostics
	Moves []game.Move
}

// PickStartingRegion asks for one region among the offered ones.
type PickStartingRegion struct {
	diagnostics
	Timeout time.Duration
	Regions []int
}

// Go asks for the moves of one phase of the round.
type Go struct {
	diagnostics
	Phase   game.ActionType
	Timeout time.Duration
}

// Parse turns a protocol line into a command.
func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty line: %w", ErrUnknownCommand)
	}

	switch parts[0] {
	case "settings":
		if len(parts) < 3 {
			return nil, fmt.Errorf("settings needs a key and a value, got %q", line)
		}
		return &Settings{Key: parts[1], Values: parts[2:]}, nil
	case "setup_map":
		if len(parts) < 2 {
			return nil, fmt.Errorf("setup_map needs a section, got %q", line)
		}
		return parseSetupMap(parts[1], parts[2:])
	case "update_map":
		return parseUpdateMap(parts[1:]), nil
	case "opponent_moves":
		return parseOpponentMoves(parts[1:]), nil
	case "pick_starting_region":
		if len(parts) < 2 {
			return nil, fmt.Errorf("pick_starting_region needs a timeout, got %q", line)
		}
		timeout, err := parseMillis(parts[1])
		if err != nil {
			return nil, fmt.Errorf("pick_starting_region: %w", err)
		}
		cmd := &PickStartingRegion{Timeout: timeout}
		cmd.Regions = parseInts(&cmd.diagnostics, parts[2:])
		return cmd, nil
	case "go":
		if len(parts) != 3 {
			return nil, fmt.Errorf("go needs a phase and a timeout, got %q", line)
		}
		timeout, err := parseMillis(parts[2])
		if err != nil {
			return nil, fmt.Errorf("go: %w", err)
		}
		switch parts[1] {
		case game.PlaceArmiesAction.String():
			return &Go{Phase: game.PlaceArmiesAction, Timeout: timeout}, nil
		case game.AttackTransferAction.String():
			return &Go{Phase: game.AttackTransferAction, Timeout: timeout}, nil
		}
		return nil, fmt.Errorf("go %s: %w", parts[1], ErrUnknownCommand)
	}
	return nil, fmt.Errorf("%s: %w", parts[0], ErrUnknownCommand)
}

func parseSetupMap(section string, args []string) (Command, error) {
	switch section {
	case "super_regions":
		cmd := &SetupSuperRegions{Rewards: make(map[int]int)}
		for _, pair := range parsePairs(&cmd.diagnostics, args) {
			cmd.Rewards[pair[0]] = pair[1]
			cmd.Order = append(cmd.Order, pair[0])
		}
		return cmd, nil
	case "regions":
		cmd := &SetupRegions{SuperRegionOf: make(map[int]int)}
		for _, pair := range parsePairs(&cmd.diagnostics, args) {
			cmd.SuperRegionOf[pair[0]] = pair[1]
			cmd.Order = append(cmd.Order, pair[0])
		}
		return cmd, nil
	case "neighbors":
		cmd := &SetupNeighbors{Neighbors: make(map[int][]int)}
		if len(args)%2 != 0 {
			cmd.skip("neighbors: dangling token %q", args[len(args)-1])
		}
		for i := 0; i+1 < len(args); i += 2 {
			id, err := strconv.Atoi(args[i])
			if err != nil {
				cmd.skip("neighbors: region %q: %w", args[i], err)
				continue
			}
			for _, token := range strings.Split(args[i+1], ",") {
				n, err := strconv.Atoi(token)
				if err != nil {
					cmd.skip("neighbors of %d: %q: %w", id, token, err)
					continue
				}
				cmd.Neighbors[id] = append(cmd.Neighbors[id], n)
			}
			cmd.Order = append(cmd.Order, id)
		}
		return cmd, nil
	case "wastelands":
		cmd := &SetupWastelands{}
		cmd.Regions = parseInts(&cmd.diagnostics, args)
		return cmd, nil
	}
	return nil, fmt.Errorf("setup_map %s: %w", section, ErrUnknownCommand)
}

func parseUpdateMap(args []string) *UpdateMap {
	cmd := &UpdateMap{}
	if len(args)%3 != 0 {
		cmd.skip("update_map: %d trailing tokens", len(args)%3)
	}
	for i := 0; i+2 < len(args); i += 3 {
		id, err := strconv.Atoi(args[i])
		if err != nil {
			cmd.skip("update_map: region %q: %w", args[i], err)
			continue
		}
		armies, err := strconv.Atoi(args[i+2])
		if err != nil || armies < 0 {
			cmd.skip("update_map: armies %q of region %d", args[i+2], id)
			continue
		}
		cmd.Observations = append(cmd.Observations, state.Observation{Region: id, Owner: args[i+1], Armies: armies})
	}
	return cmd
}

func parseOpponentMoves(args []string) *OpponentMoves {
	cmd := &OpponentMoves{}
	for i := 0; i < len(args); {
		if i+1 >= len(args) {
			cmd.skip("opponent_moves: dangling token %q", args[i])
			break
		}
		player, action := args[i], args[i+1]
		switch action {
		case game.PlaceArmiesAction.String():
			ints, ok := atois(args, i+2, 2)
			if !ok {
				cmd.skip("opponent_moves: malformed %s of %s", action, player)
				i += 2
				continue
			}
			cmd.Moves = append(cmd.Moves, game.PlaceArmiesMove{Player: player, Region: ints[0], Armies: ints[1]})
			i += 4
		case game.AttackTransferAction.String():
			ints, ok := atois(args, i+2, 3)
			if !ok {
				cmd.skip("opponent_moves: malformed %s of %s", action, player)
				i += 2
				continue
			}
			cmd.Moves = append(cmd.Moves, game.AttackTransferMove{Player: player, From: ints[0], To: ints[1], Armies: ints[2]})
			i += 5
		default:
			cmd.skip("opponent_moves: unknown action %q", action)
			i++
		}
	}
	return cmd
}

// atois converts n tokens starting at from, failing if any is missing or not a number.
func atois(args []string, from, n int) ([]int, bool) {
	if from+n > len(args) {
		return nil, false
	}
	ints := make([]int, n)
	for i := range ints {
		v, err := strconv.Atoi(args[from+i])
		if err != nil {
			return nil, false
		}
		ints[i] = v
	}
	return ints, true
}

func parseInts(d *diagnostics, args []string) []int {
	var ints []int
	for _, token := range args {
		v, err := strconv.Atoi(token)
		if err != nil {
			d.skip("%q: %w", token, err)
			continue
		}
		ints = append(ints, v)
	}
	return ints
}

func parsePairs(d *diagnostics, args []string) [][2]int {
	if len(args)%2 != 0 {
		d.skip("dangling token %q", args[len(args)-1])
	}
	var pairs [][2]int
	for i := 0; i+1 < len(args); i += 2 {
		ints, ok := atois(args, i, 2)
		if !ok {
			d.skip("pair %q %q is not numeric", args[i], args[i+1])
			continue
		}
		pairs = append(pairs, [2]int{ints[0], ints[1]})
	}
	return pairs
}

func parseMillis(token string) (time.Duration, error) {
	ms, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("timeout %q: %w", token, err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
