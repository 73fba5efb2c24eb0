package cli

import (
	"github.com/spf13/cobra"

	"github.com/convobudget/convobudget/pkg/budget"
	"github.com/convobudget/convobudget/pkg/logging"
	"github.com/convobudget/convobudget/pkg/transcript"
)

func newTrimCommand() *cobra.Command {
	var keepSystem int

	cmd := &cobra.Command{
		Use:   "trim [transcript-file]",
		Short: "Trim a transcript to fit the character budget",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, format, err := loadTranscript(cmd, args)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("keep-system") {
				keepSystem = activeConfig().GetKeepLastNSystem()
			}

			cfg := resolveBudgetConfig()
			before := budget.MessagesSize(msgs)
			trimmed := budget.BudgetMessages(msgs, cfg, keepSystem)

			logging.GetGlobalLogger().Info("trimmed transcript",
				"budget", cfg.EffectiveBudget(),
				"before_chars", before,
				"after_chars", budget.MessagesSize(trimmed),
				"before_messages", len(msgs),
				"after_messages", len(trimmed),
			)

			return transcript.Save(cmd.OutOrStdout(), trimmed, format)
		},
	}

	cmd.Flags().IntVar(&keepSystem, "keep-system", 1, "number of trailing system messages to pin")

	return cmd
}
