package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage document groups",
	Long: `Manage the named groups documents are organised into.

Groups usually map to companies: one group per company, holding that
company's uploaded reports. Questions are answered from the groups
currently selected (see 'finsight select').`,
	RunE: runGroupList,
}

var groupAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a new group",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupAdd,
}

var groupRenameCmd = &cobra.Command{
	Use:   "rename [old] [new]",
	Short: "Rename a group and all its documents",
	Args:  cobra.ExactArgs(2),
	RunE:  runGroupRename,
}

var groupRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Delete a group and all its documents",
	Long: `Deletes the group along with every artifact and stored file it owns.
This cannot be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: runGroupRemove,
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all groups",
	RunE:  runGroupList,
}

func init() {
	groupCmd.AddCommand(groupAddCmd)
	groupCmd.AddCommand(groupRenameCmd)
	groupCmd.AddCommand(groupRemoveCmd)
	groupCmd.AddCommand(groupListCmd)
	rootCmd.AddCommand(groupCmd)
}

func runGroupAdd(cmd *cobra.Command, args []string) error {
	if groupService == nil {
		return errors.New("group service not configured")
	}

	name := args[0]
	ctx := context.Background()

	created, err := groupService.Add(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to add group: %w", err)
	}
	if !created {
		cmd.Printf("Group %q already exists.\n", name)
		return nil
	}

	cmd.Printf("Created group %q.\n", name)
	return nil
}

func runGroupRename(cmd *cobra.Command, args []string) error {
	if groupService == nil {
		return errors.New("group service not configured")
	}

	oldName, newName := args[0], args[1]
	ctx := context.Background()

	renamed, err := groupService.Rename(ctx, oldName, newName)
	if err != nil {
		return fmt.Errorf("failed to rename group: %w", err)
	}
	if !renamed {
		cmd.Printf("Cannot rename %q to %q: the old name must exist and the new name must be free.\n", oldName, newName)
		return nil
	}

	if workspace != nil {
		workspace.InvalidateContext()
	}
	cmd.Printf("Renamed group %q to %q.\n", oldName, newName)
	return nil
}

func runGroupRemove(cmd *cobra.Command, args []string) error {
	if groupService == nil {
		return errors.New("group service not configured")
	}

	name := args[0]
	ctx := context.Background()

	report, err := groupService.Remove(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to remove group: %w", err)
	}

	if workspace != nil {
		workspace.InvalidateContext()
	}
	cmd.Printf("Removed group %q (%d artifacts, %d stored files).\n",
		name, report.ArtifactsRemoved, report.FilesRemoved)
	for _, w := range report.Warnings {
		cmd.Printf("  warning: %s\n", w)
	}
	return nil
}

func runGroupList(cmd *cobra.Command, _ []string) error {
	if groupService == nil {
		return errors.New("group service not configured")
	}

	ctx := context.Background()

	groups, err := groupService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}

	if len(groups) == 0 {
		cmd.Println("No groups yet. Create one with 'finsight group add <name>'.")
		return nil
	}

	cmd.Println("Groups:")
	for _, g := range groups {
		suffix := ""
		if g.AutoMigrated {
			suffix = " (auto-migrated)"
		}
		cmd.Printf("  %-24s %d files%s\n", g.Name, g.FileCount, suffix)
	}
	cmd.Printf("\nTotal: %d groups\n", len(groups))
	return nil
}
