package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/convobudget/convobudget/pkg/budget"
	"github.com/convobudget/convobudget/pkg/logging"
	"github.com/convobudget/convobudget/pkg/summarize"
	"github.com/convobudget/convobudget/pkg/transcript"
)

// headlineSummaryBudget caps the deterministic headline summary.
const headlineSummaryBudget = 500

func newRollupCommand() *cobra.Command {
	var keepLast int
	var backend string

	cmd := &cobra.Command{
		Use:   "rollup [transcript-file]",
		Short: "Condense older history into a single memory message",
		Long: `rollup splits the transcript into an older head and a recent tail,
replaces the head with one compact summary message and keeps the tail.
The openai and anthropic backends call the respective API; the head
backend is deterministic and needs no network.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, format, err := loadTranscript(cmd, args)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("keep-last") {
				keepLast = activeConfig().GetRollupKeepLastN()
			}

			var fn budget.SummarizeFunc
			var backendErr func() error
			switch backend {
			case "openai":
				s := summarize.NewOpenAISummarizer(summarize.WithOpenAIConfigManager(activeConfig()))
				fn = s.Func(cmd.Context())
				backendErr = s.Err
			case "anthropic":
				s := summarize.NewAnthropicSummarizer(summarize.WithAnthropicConfigManager(activeConfig()))
				fn = s.Func(cmd.Context())
				backendErr = s.Err
			case "head":
				fn = summarize.Headline(headlineSummaryBudget)
				backendErr = func() error { return nil }
			default:
				return fmt.Errorf("unknown summarizer backend %q (want openai, anthropic or head)", backend)
			}

			rolled := budget.RollupHistory(msgs, fn, keepLast)
			if err := backendErr(); err != nil {
				logging.GetGlobalLogger().Warn("summarizer degraded to placeholder", "error", err)
			}

			logging.GetGlobalLogger().Info("rolled up transcript",
				"backend", backend,
				"keep_last", keepLast,
				"before_messages", len(msgs),
				"after_messages", len(rolled),
			)

			return transcript.Save(cmd.OutOrStdout(), rolled, format)
		},
	}

	cmd.Flags().IntVar(&keepLast, "keep-last", 6, "number of recent messages kept verbatim")
	cmd.Flags().StringVar(&backend, "summarizer", "head", "summarizer backend: openai, anthropic or head")

	return cmd
}
