package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/SeriesLens/internal/analyze"
	"github.com/Alias1177/SeriesLens/internal/export"
	"github.com/Alias1177/SeriesLens/internal/ingest"
	"github.com/Alias1177/SeriesLens/internal/notify"
	"github.com/Alias1177/SeriesLens/models"
)

func newAnalyzeCommand(a *app) *cobra.Command {
	var (
		csvOut     string
		sendReport bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Label a series and report statistics and insights",
		Long: `Analyze reads a series from a CSV, Excel, JSON or YAML file, labels every point
against its trailing rolling mean and prints statistics, insights and the
detected anomalies.`,
		Example: `  # Analyze a CSV export
  serieslens analyze sales.csv

  # Stricter detector with JSON output
  serieslens analyze sales.csv --threshold 2.5 -o json

  # Save the labeled table and send the report to Telegram
  serieslens analyze sales.csv --csv-out labeled.csv --notify`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source models.SeriesSource = ingest.FileSource{Path: args[0]}
			raw, err := source.LoadSeries(cmd.Context())
			if err != nil {
				return err
			}

			result, err := analyze.Run(raw, a.analyzeOptions(analyze.SourceUpload))
			if err != nil {
				return err
			}

			if csvOut != "" {
				if err := writeLabeledCSV(csvOut, result.Series); err != nil {
					return err
				}
			}
			if sendReport {
				if err := a.broadcast(cmd.Context(), result); err != nil {
					return err
				}
			}
			return a.render(result)
		},
	}

	cmd.Flags().StringVar(&csvOut, "csv-out", "", "write the labeled series as CSV to this path")
	cmd.Flags().BoolVar(&sendReport, "notify", false, "send the report to the configured Telegram chats")
	return cmd
}

func (a *app) analyzeOptions(source analyze.Source) analyze.Options {
	return analyze.Options{
		WindowSize:          a.cfg.WindowSize,
		ThresholdMultiplier: a.cfg.ThresholdMultiplier,
		Source:              source,
	}
}

func (a *app) render(result *analyze.Result) error {
	format, err := a.format()
	if err != nil {
		return err
	}
	return export.NewReport(result, time.Now()).Render(a.out, format)
}

func (a *app) broadcast(ctx context.Context, result *analyze.Result) error {
	tg, err := notify.NewTelegram(a.cfg.TelegramBotToken)
	if err != nil {
		return err
	}
	var notifier models.Notifier = tg
	return notifier.Broadcast(ctx, a.cfg.TelegramChatIDs, notify.FormatReport(result))
}

func writeLabeledCSV(path string, series models.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, series); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("points", len(series)).Msg("Labeled series written")
	return f.Close()
}
