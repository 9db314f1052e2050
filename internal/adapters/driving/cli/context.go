package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
)

var contextFull bool

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Show the assembled document context",
	Long: `Assembles the document context for the current selection and shows
a summary: contributing artifacts, estimated tokens, and whether the
token budget forced truncation. Pass --full to print the context text
itself.`,
	RunE: runContext,
}

func init() {
	contextCmd.Flags().BoolVar(&contextFull, "full", false, "Print the full context text")
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, _ []string) error {
	if contextService == nil {
		return errors.New("context service not configured")
	}

	ctx := context.Background()

	var selected []string
	if workspace != nil {
		selected = workspace.Selection()
	}
	budget := 0
	if configStore != nil {
		budget = configStore.GetInt(driven.ConfigKeyTokenBudget)
	}

	assembled, err := contextService.Assemble(ctx, selected, budget)
	if err != nil {
		return fmt.Errorf("failed to assemble context: %w", err)
	}

	if assembled.IsEmpty() {
		cmd.Println(assembled.Text)
		return nil
	}

	if contextFull {
		cmd.Println(assembled.Text)
		return nil
	}

	cmd.Printf("Artifacts:        %d\n", assembled.ArtifactCount)
	cmd.Printf("Estimated tokens: %d\n", domain.EstimateTokens(assembled.Text))
	if assembled.Truncated {
		cmd.Println("Truncated:        yes (narrow the selection for full coverage)")
	} else {
		cmd.Println("Truncated:        no")
	}
	return nil
}
