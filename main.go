package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warlight/communication"
	"warlight/engine"
	"warlight/meta"
	"warlight/metrics"
	"warlight/planner"
	"warlight/state"
	"warlight/transcript"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	tuningPath := flag.String("tuning", "", "yaml file overriding the scoring constants")
	seed := flag.Uint64("seed", 0, "seed for the fallback placement (0 picks one from the clock)")
	metricsDir := flag.String("metrics", "", "directory to write per-decision metrics to")
	transcriptPath := flag.String("transcript", "", "file to record the game to (zstd compressed)")
	replayPath := flag.String("replay", "", "recorded game to replay instead of reading stdin")
	flag.Parse()

	// Stdout is the protocol channel, so logs go to stderr
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	tuning := meta.DefaultTuning()
	if *tuningPath != "" {
		var err error
		tuning, err = meta.LoadTuning(*tuningPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load tuning")
		}
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	log.Info().Uint64("seed", *seed).Msg("starting bot")

	options := []engine.Option{}
	collector := metrics.NewDummyCollector()
	if *metricsDir != "" {
		collector = metrics.NewCollector()
		options = append(options, engine.WithMetrics(collector))
	}

	var input io.Reader = os.Stdin
	if *replayPath != "" {
		recorded, err := transcript.ReadFile(*replayPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load replay")
		}
		log.Info().Int("received", len(recorded.Received)).Int("sent", len(recorded.Sent)).Msg("replaying game")
		input = recorded.Input()
	}

	commOptions := []communication.Option{}
	if *transcriptPath != "" {
		recorder, err := transcript.Create(*transcriptPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create transcript")
		}
		defer func() {
			if err := recorder.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close transcript")
			}
		}()
		commOptions = append(commOptions, communication.WithRecorder(recorder))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := engine.New(
		state.NewWorld(tuning),
		planner.New(planner.WithRand(rand.New(rand.NewSource(*seed)))),
		communication.NewLineCommunicator(input, os.Stdout, commOptions...),
		options...,
	)
	runErr := e.Run(ctx)

	if *metricsDir != "" {
		writeMetrics(*metricsDir, collector.Records())
	}
	if runErr != nil {
		log.Error().Err(runErr).Msg("bot stopped")
	}
}

func writeMetrics(dir string, records []metrics.DecisionMetric) {
	writer, err := metrics.NewWriter(dir)
	if err != nil {
		log.Error().Err(err).Msg("failed to write metrics")
		return
	}
	if err := writer.WriteRoundRecords(records); err != nil {
		log.Error().Err(err).Msg("failed to write metrics")
		return
	}
	log.Info().Str("dir", writer.Dir()).Int("decisions", len(records)).Msg("wrote metrics")
}
