package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alias1177/SeriesLens/internal/analyze"
	"github.com/Alias1177/SeriesLens/internal/api/assistant"
	"github.com/Alias1177/SeriesLens/internal/ingest"
)

func newAskCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <file> <question>",
		Short: "Ask a question about the anomalies of a series",
		Long: `Ask analyzes the file, describes its anomalies in plain sentences and
forwards the question together with that description to the
question-answering service at ASSISTANT_URL.`,
		Example: `  serieslens ask sales.csv "When was the largest spike?"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := ingest.FileSource{Path: args[0]}.LoadSeries(cmd.Context())
			if err != nil {
				return err
			}
			result, err := analyze.Run(raw, a.analyzeOptions(analyze.SourceUpload))
			if err != nil {
				return err
			}

			answer, err := a.assistant().Ask(cmd.Context(), args[1], assistant.BuildContext(result.Series))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, answer)
			return err
		},
	}
}

func (a *app) assistant() *assistant.Client {
	return assistant.NewClient(assistant.ClientOptions{
		URL:            a.cfg.AssistantURL,
		RequestTimeout: time.Duration(a.cfg.RequestTimeout) * time.Second,
		RequestsPerSec: a.cfg.RequestsPerSec,
	})
}
