package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/convobudget/convobudget/pkg/budget"
)

func newDocCommand() *cobra.Command {
	var chunkSize int

	cmd := &cobra.Command{
		Use:   "doc [text-file]",
		Short: "Fit a single document within the character budget",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args)
			if err != nil {
				return err
			}

			if chunkSize > 0 {
				for i, chunk := range budget.ChunkText(doc, chunkSize) {
					if i > 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "---")
					}
					fmt.Fprintln(cmd.OutOrStdout(), chunk)
				}
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), budget.BudgetDocument(doc, resolveBudgetConfig()))
			return nil
		},
	}

	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "split into fixed-size chunks instead of truncating")

	return cmd
}
