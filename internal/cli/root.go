package cli

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Alias1177/SeriesLens/config"
	"github.com/Alias1177/SeriesLens/internal/export"
	"github.com/Alias1177/SeriesLens/internal/logging"
	"github.com/Alias1177/SeriesLens/models"
)

// app carries state shared by every command of one invocation
type app struct {
	v        *viper.Viper
	cfg      *models.Config
	out      io.Writer
	cfgFile  string
	output   string
	closeLog func() error
}

func (a *app) format() (export.Format, error) {
	return export.ParseFormat(a.output)
}

// Execute runs the root command against stdout. Cancelling ctx stops long-running commands.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree writing results to out
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out}

	root := &cobra.Command{
		Use:   "serieslens",
		Short: "Anomaly detection and pattern insights for time series",
		Long: `SeriesLens labels the points of a time series as normal or anomalous,
computes descriptive statistics and reports cyclical patterns, volatility,
trend shifts and recommendations.

Series can be loaded from CSV, Excel, JSON or YAML files or synthesized from
built-in presets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.closeLog = logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
			if _, err := a.format(); err != nil {
				return err
			}
			log.Debug().Str("command", cmd.Name()).Msg("Configuration loaded")
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml)")
	flags.StringVarP(&a.output, "output", "o", "text", "Output format: text, json, yaml")
	flags.String("log-level", "info", "log level")
	flags.String("log-file", "", "also write logs to this rotating file")
	flags.Int("window", 10, "rolling window size of the detector")
	flags.Float64("threshold", 1.5, "stddev multiplier of the detector")

	// Bind flags to viper
	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log_file", flags.Lookup("log-file"))
	_ = a.v.BindPFlag("window_size", flags.Lookup("window"))
	_ = a.v.BindPFlag("threshold_multiplier", flags.Lookup("threshold"))

	root.AddCommand(
		newAnalyzeCommand(a),
		newGenerateCommand(a),
		newFilterCommand(a),
		newAskCommand(a),
		newServeCommand(a),
		newPresetsCommand(a),
	)
	return root
}
