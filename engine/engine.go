// Package engine drives the bot through a game: it applies every command the
// game sends to the world and answers move requests with the planners.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"warlight/communication"
	"warlight/game"
	"warlight/metrics"
	"warlight/planner"
	"warlight/state"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

func WithMetrics(collector metrics.Collector) Option {
	return func(e *Engine) {
		if collector != nil {
			e.metrics = collector
		}
	}
}

type Engine struct {
	World   *state.World
	planner *planner.Planner
	comm    communication.Communicator
	metrics metrics.Collector
}

func New(world *state.World, p *planner.Planner, comm communication.Communicator, options ...Option) *Engine {
	e := &Engine{ // Default values
		World:   world,
		planner: p,
		comm:    comm,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run handles commands until the game closes the channel or ctx is done.
// Planners are never interrupted; cancellation is checked between commands.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd, err := e.comm.ReadCommand()
		if errors.Is(err, io.EOF) {
			log.Info().Int("round", e.World.Round).Msg("game closed the channel")
			return nil
		}
		if err != nil {
			return err
		}
		if err := e.Handle(cmd); err != nil {
			return err
		}
	}
}

// Handle applies one command. Only failures to answer are returned; bad
// input is logged and skipped.
func (e *Engine) Handle(cmd communication.Command) error {
	w := e.World
	switch c := cmd.(type) {
	case *communication.Settings:
		e.applySettings(c)
	case *communication.SetupSuperRegions:
		w.SetupSuperRegions(c.Rewards, c.Order)
	case *communication.SetupRegions:
		warn(w.SetupRegions(c.SuperRegionOf, c.Order))
	case *communication.SetupNeighbors:
		warn(w.SetupNeighbors(c.Neighbors, c.Order))
	case *communication.SetupWastelands:
		w.SetupWastelands(c.Regions)
	case *communication.UpdateMap:
		warn(w.UpdateMap(c.Observations))
	case *communication.OpponentMoves:
		w.RecordOpponentMoves(c.Moves)
	case *communication.PickStartingRegion:
		w.SetPickableStartingRegions(c.Regions)
		return e.decide("pick_starting_region", 0, c.Timeout, func() (string, int) {
			region, ok := e.planner.PickStartingRegion(w)
			if !ok {
				return communication.NoMoves, 0
			}
			return strconv.Itoa(region.ID), 1
		})
	case *communication.Go:
		return e.answerGo(c)
	default:
		log.Warn().Msgf("unhandled command %T", cmd)
	}
	return nil
}

func (e *Engine) applySettings(c *communication.Settings) {
	if c.Key == "starting_regions" {
		regions := make([]int, 0, len(c.Values))
		for _, v := range c.Values {
			id, err := strconv.Atoi(v)
			if err != nil {
				log.Warn().Err(err).Msg("skipping starting region")
				continue
			}
			regions = append(regions, id)
		}
		e.World.SetPickableStartingRegions(regions)
		return
	}
	warn(e.World.UpdateSettings(c.Key, c.Values[0]))
}

func (e *Engine) answerGo(c *communication.Go) error {
	w := e.World
	switch c.Phase {
	case game.PlaceArmiesAction:
		budget := w.StartingArmies
		return e.decide(c.Phase.String(), budget, c.Timeout, func() (string, int) {
			moves := e.planner.PlaceArmies(w, budget)
			return communication.FormatPlacements(moves), len(moves)
		})
	case game.AttackTransferAction:
		return e.decide(c.Phase.String(), 0, c.Timeout, func() (string, int) {
			moves := e.planner.AttackTransfer(w)
			return communication.FormatAttacks(moves), len(moves)
		})
	}
	return fmt.Errorf("unexpected phase %s", c.Phase)
}

// decide runs one decision, measures it against the allowance and sends its answer.
func (e *Engine) decide(phase string, budget int, timeout time.Duration, fn func() (string, int)) error {
	allowance := e.allowance(timeout)
	e.metrics.Start(e.World.Round, phase, budget, allowance)
	start := time.Now()

	answer, moves := fn()

	elapsed := time.Since(start)
	e.metrics.AddMoves(moves)
	e.metrics.Complete()
	if allowance > 0 && elapsed > allowance {
		log.Warn().Str("phase", phase).Int("round", e.World.Round).Msgf("decision took %s of %s allowed", elapsed, allowance)
	}
	log.Debug().Str("phase", phase).Int("round", e.World.Round).Dur("elapsed", elapsed).Msg(answer)

	if err := e.comm.Send(answer); err != nil {
		return fmt.Errorf("failed to answer %s: %w", phase, err)
	}
	return nil
}

// allowance is the time a decision may take: what the request grants, capped
// by the time each move adds to the bank so the bank is not drained.
func (e *Engine) allowance(timeout time.Duration) time.Duration {
	perMove := e.World.TimePerMove
	if perMove > 0 && (timeout <= 0 || perMove < timeout) {
		return perMove
	}
	return timeout
}

func warn(err error) {
	if err != nil {
		log.Warn().Err(err).Msg("skipped part of an update")
	}
}
