package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
)

var selectClear bool

var selectCmd = &cobra.Command{
	Use:   "select [groups...]",
	Short: "Choose which groups answer questions",
	Long: `Selects the groups whose documents are sent to the model.

With no arguments, shows the current selection. An empty selection
means every group contributes. Selecting two or more groups enables
comparison questions across them.

The selection persists across runs.`,
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().BoolVar(&selectClear, "clear", false, "Clear the selection (use all groups)")
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	if groupService == nil {
		return errors.New("group service not configured")
	}

	ctx := context.Background()

	if selectClear {
		return applySelection(cmd, nil)
	}
	if len(args) == 0 {
		return showSelection(cmd)
	}

	// Reject unknown names up front so a typo doesn't silently narrow
	// the context to nothing.
	groups, err := groupService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}
	known := make(map[string]bool, len(groups))
	for _, g := range groups {
		known[g.Name] = true
	}
	for _, name := range args {
		if !known[name] {
			return fmt.Errorf("unknown group %q", name)
		}
	}

	return applySelection(cmd, args)
}

func applySelection(cmd *cobra.Command, selected []string) error {
	if workspace != nil {
		workspace.SetSelection(selected)
	}
	if configStore != nil {
		if err := configStore.Set(driven.ConfigKeySelectedGroups, selected); err != nil {
			return fmt.Errorf("failed to save selection: %w", err)
		}
	}

	if len(selected) == 0 {
		cmd.Println("Selection cleared: all groups contribute context.")
		return nil
	}
	cmd.Printf("Selected %s.\n", strings.Join(selected, ", "))
	return nil
}

func showSelection(cmd *cobra.Command) error {
	var selected []string
	if workspace != nil {
		selected = workspace.Selection()
	}
	if len(selected) == 0 {
		cmd.Println("No selection: all groups contribute context.")
		return nil
	}
	cmd.Printf("Selected groups: %s\n", strings.Join(selected, ", "))
	return nil
}
