package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/SeriesLens/config"
	"github.com/Alias1177/SeriesLens/internal/analyze"
	"github.com/Alias1177/SeriesLens/internal/generator"
	"github.com/Alias1177/SeriesLens/internal/ingest"
	"github.com/Alias1177/SeriesLens/internal/logging"
	"github.com/Alias1177/SeriesLens/internal/notify"
	"github.com/Alias1177/SeriesLens/models"
)

const usage = "usage: broadcast <file | preset:name>"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run returns the process exit code so deferred cleanup always happens before exiting
func run(args []string, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(args) != 1 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	cfg, err := config.Load(nil, "")
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}
	closeLog := logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(stderr, "closing log file: %v\n", err)
		}
	}()

	if len(cfg.TelegramChatIDs) == 0 {
		log.Error().Err(notify.ErrNoRecipients).Msg("TELEGRAM_CHAT_IDS not set in environment")
		return 1
	}

	result, err := load(ctx, cfg, args[0])
	if err != nil {
		log.Error().Err(err).Str("source", args[0]).Msg("Failed to analyze series")
		return 1
	}

	tg, err := notify.NewTelegram(cfg.TelegramBotToken)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize Telegram bot")
		return 1
	}

	if err := tg.Broadcast(ctx, cfg.TelegramChatIDs, notify.FormatReport(result)); err != nil {
		log.Error().Err(err).Msg("Broadcast finished with errors")
		return 1
	}

	log.Info().
		Int("chats", len(cfg.TelegramChatIDs)).
		Int("anomalies", result.Summary.AnomalyCount).
		Msg("Broadcast completed")
	return 0
}

// load analyzes a file, or a generated series when the argument names a preset
func load(ctx context.Context, cfg *models.Config, arg string) (*analyze.Result, error) {
	if name, ok := strings.CutPrefix(arg, "preset:"); ok {
		preset, err := generator.LookupPreset(name)
		if err != nil {
			return nil, err
		}
		return analyze.RunSeries(generator.New(nil).Generate(preset.Config), analyze.SourceGenerated)
	}

	raw, err := ingest.FileSource{Path: arg}.LoadSeries(ctx)
	if err != nil {
		return nil, err
	}
	return analyze.Run(raw, analyze.Options{
		WindowSize:          cfg.WindowSize,
		ThresholdMultiplier: cfg.ThresholdMultiplier,
		Source:              analyze.SourceUpload,
	})
}
