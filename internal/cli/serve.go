package cli

import (
	"github.com/spf13/cobra"

	"github.com/Alias1177/SeriesLens/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Example: `  serieslens serve --addr :9090`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []server.Option
			if a.cfg.AssistantURL != "" {
				opts = append(opts, server.WithAsker(a.assistant()))
			}
			return server.New(a.cfg, opts...).Run(cmd.Context())
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	_ = a.v.BindPFlag("http_addr", cmd.Flags().Lookup("addr"))
	return cmd
}
