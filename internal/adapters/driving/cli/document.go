package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage uploaded documents",
	Long:  `List or remove documents that have been uploaded into groups.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list [group]",
	Short: "List documents, optionally scoped to one group",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDocumentList,
}

var documentRemoveCmd = &cobra.Command{
	Use:   "remove [group] [file]",
	Short: "Remove one document and its artifact",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentRemove,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	group := ""
	if len(args) > 0 {
		group = args[0]
	}
	ctx := context.Background()

	keys, err := ingestService.ListFiles(ctx, group)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(keys) == 0 {
		if group != "" {
			cmd.Printf("No documents in group %q.\n", group)
		} else {
			cmd.Println("No documents uploaded yet.")
		}
		return nil
	}

	for _, key := range keys {
		cmd.Printf("  %-24s %s\n", key.Group, key.File)
	}
	cmd.Printf("\nTotal: %d documents\n", len(keys))
	return nil
}

func runDocumentRemove(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	key := domain.ArtifactKey{Group: args[0], File: args[1]}
	ctx := context.Background()

	removed, err := ingestService.DeleteFile(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}
	if !removed {
		cmd.Printf("No document %q in group %q.\n", key.File, key.Group)
		return nil
	}

	if workspace != nil {
		workspace.InvalidateContext()
	}
	cmd.Printf("Removed %s.\n", key)
	return nil
}
