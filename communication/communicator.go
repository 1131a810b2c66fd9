package communication

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"warlight/game"

	"github.com/rs/zerolog/log"
)

// Communicator abstracts the channel to the game: commands come in, answers go out.
type Communicator interface {
	// ReadCommand returns the next command, skipping blank and unknown lines.
	// It returns io.EOF once the game closes the channel.
	ReadCommand() (Command, error)
	Send(answer string) error
}

// Recorder keeps a copy of every line exchanged with the game.
type Recorder interface {
	Received(line string) error
	Sent(line string) error
}

type Option func(c *LineCommunicator)

func WithRecorder(recorder Recorder) Option {
	return func(c *LineCommunicator) {
		if recorder != nil {
			c.recorder = recorder
		}
	}
}

// LineCommunicator speaks the line protocol over a reader and a writer,
// typically the process's stdin and stdout.
type LineCommunicator struct {
	scanner  *bufio.Scanner
	writer   *bufio.Writer
	recorder Recorder
}

func NewLineCommunicator(r io.Reader, w io.Writer, options ...Option) *LineCommunicator {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024) // Neighbor lists of big maps exceed the default
	c := &LineCommunicator{
		scanner: scanner,
		writer:  bufio.NewWriter(w),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *LineCommunicator) record(fn func(string) error, line string) {
	if err := fn(line); err != nil {
		log.Warn().Err(err).Msg("failed to record line")
	}
}

func (c *LineCommunicator) ReadCommand() (Command, error) {
	for c.scanner.Scan() {
		line := strings.TrimSpace(c.scanner.Text())
		if line == "" {
			continue
		}
		if c.recorder != nil {
			c.record(c.recorder.Received, line)
		}
		cmd, err := Parse(line)
		if err != nil {
			if errors.Is(err, ErrUnknownCommand) {
				log.Warn().Err(err).Msgf("unable to parse line %q", line)
			} else {
				log.Warn().Err(err).Msg("skipping malformed line")
			}
			continue
		}
		for _, skipped := range cmd.Diagnostics() {
			log.Warn().Err(skipped).Msg("skipped part of a command")
		}
		return cmd, nil
	}
	if err := c.scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read command: %w", err)
	}
	return nil, io.EOF
}

// Send writes one answer line and flushes it, since the game waits for it.
func (c *LineCommunicator) Send(answer string) error {
	if c.recorder != nil {
		c.record(c.recorder.Sent, answer)
	}
	if _, err := c.writer.WriteString(answer + "\n"); err != nil {
		return fmt.Errorf("failed to send answer: %w", err)
	}
	if err := c.writer.Flush(); err != nil {
		return fmt.Errorf("failed to send answer: %w", err)
	}
	return nil
}

// NoMoves is the answer for a phase without moves.
const NoMoves = "No moves"

func FormatPlacements(moves []game.PlaceArmiesMove) string {
	return join(moves)
}

func FormatAttacks(moves []game.AttackTransferMove) string {
	return join(moves)
}

func join[M game.Move](moves []M) string {
	if len(moves) == 0 {
		return NoMoves
	}
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}
