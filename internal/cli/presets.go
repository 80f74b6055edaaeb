package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Alias1177/SeriesLens/internal/export"
	"github.com/Alias1177/SeriesLens/internal/generator"
)

func newPresetsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in generator presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := generator.Presets()

			format, err := a.format()
			if err != nil {
				return err
			}
			switch format {
			case export.FormatJSON:
				return writeJSON(a.out, presets)
			case export.FormatYAML:
				return writeYAML(a.out, presets)
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTITLE\tCONFIG")
			for _, p := range presets {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Title, p.Config)
			}
			return tw.Flush()
		},
	}
}
