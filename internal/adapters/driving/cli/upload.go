package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [group] [files...]",
	Short: "Upload documents into a group",
	Long: `Uploads one or more PDF documents into an existing group.

Each file is copied into the data directory, its text and tables are
extracted with pdftotext, and the result is stored as an artifact. A
file that fails to extract does not abort the rest of the batch.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	group := args[0]
	paths := args[1:]
	ctx := context.Background()

	report, err := ingestService.IngestBatch(ctx, group, paths)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	for _, key := range report.Succeeded {
		cmd.Printf("  ok      %s\n", key.File)
	}
	for _, item := range report.Failed {
		cmd.Printf("  failed  %s: %v\n", item.Path, item.Err)
	}
	cmd.Printf("\nUploaded %d of %d files into %q.\n", len(report.Succeeded), len(paths), group)

	if workspace != nil && len(report.Succeeded) > 0 {
		workspace.InvalidateContext()
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d of %d files failed", len(report.Failed), len(paths))
	}
	return nil
}
