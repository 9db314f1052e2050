package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the selected documents",
	Long: `Asks a question answered from the uploaded documents.

The question and the answer are recorded in the current session, so a
follow-up question can refer back to earlier turns. Only the selected
groups contribute context (see 'finsight select'); with no selection,
all groups do.

Examples:
  finsight ask "What was operating margin in 2024?"
  finsight ask "How does acme's revenue compare to globex's?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}
	if !chatService.Ready() {
		return errors.New("no API key configured. Set one with 'finsight config set api_key'")
	}

	question := args[0]
	ctx := context.Background()

	result, err := chatService.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if result.ContextTruncated {
		cmd.Println("Warning: document context was truncated to fit the token budget.")
		cmd.Println("Narrow the group selection with 'finsight select' for full coverage.")
		cmd.Println()
	}

	cmd.Println(result.Answer)
	return nil
}
