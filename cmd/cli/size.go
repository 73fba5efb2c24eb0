package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/convobudget/convobudget/pkg/budget"
	"github.com/convobudget/convobudget/pkg/logging"
	"github.com/convobudget/convobudget/pkg/tokens"
)

const previewChars = 60

func newSizeCommand() *cobra.Command {
	var keepSystem int
	var showMessages bool

	cmd := &cobra.Command{
		Use:   "size [transcript-file]",
		Short: "Report transcript size before and after trimming",
		Long: `size reports the character cost of a transcript, what would survive
trimming, and an approximate token count so the safety ratio can be
calibrated against the provider's real accounting.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, _, err := loadTranscript(cmd, args)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("keep-system") {
				keepSystem = activeConfig().GetKeepLastNSystem()
			}

			cfg := resolveBudgetConfig()
			trimmed := budget.BudgetMessages(msgs, cfg, keepSystem)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Messages:        %d\n", len(msgs))
			fmt.Fprintf(out, "Original chars:  %d\n", budget.MessagesSize(msgs))
			fmt.Fprintf(out, "Effective budget: %d\n", cfg.EffectiveBudget())
			fmt.Fprintf(out, "Trimmed chars:   %d (%d messages kept)\n",
				budget.MessagesSize(trimmed), len(trimmed))

			if counter, err := tokens.NewCounter(activeConfig().GetModel()); err != nil {
				logging.GetGlobalLogger().Warn("token counting unavailable", "error", err)
			} else {
				fmt.Fprintf(out, "Original tokens: %d (approx)\n", counter.CountMessages(msgs))
				fmt.Fprintf(out, "Trimmed tokens:  %d (approx)\n", counter.CountMessages(trimmed))
			}

			if showMessages {
				for i, m := range trimmed {
					fmt.Fprintf(out, "[%d] role=%q content_len=%d preview=%q\n",
						i, m.Role, len(m.Content), budget.TruncateText(m.Content, previewChars))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&keepSystem, "keep-system", 1, "number of trailing system messages to pin")
	cmd.Flags().BoolVar(&showMessages, "messages", false, "list the kept messages with previews")

	return cmd
}
