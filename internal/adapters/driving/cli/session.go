package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage conversation sessions",
	Long: `Manage the persisted conversation sessions.

Every question and answer is recorded in the current session. Switch
between sessions to keep separate lines of questioning, or start a new
one to begin with a clean history.`,
	RunE: runSessionList,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, most recent first",
	RunE:  runSessionList,
}

var sessionSwitchCmd = &cobra.Command{
	Use:   "switch [session-id]",
	Short: "Switch to another session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionSwitch,
}

var sessionNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a fresh session",
	RunE:  runSessionNew,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionDelete,
}

func init() {
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionSwitchCmd)
	sessionCmd.AddCommand(sessionNewCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionList(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	ctx := context.Background()

	infos, err := sessionService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(infos) == 0 {
		cmd.Println("No sessions yet. Ask a question to start one.")
		return nil
	}

	currentID := ""
	if workspace != nil {
		if s := workspace.Session(); s != nil {
			currentID = s.ID
		}
	}

	for _, info := range infos {
		marker := " "
		if info.ID == currentID {
			marker = "*"
		}
		cmd.Printf("%s %s  %3d messages  updated %s\n",
			marker, info.ID, info.MessageCount, info.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runSessionSwitch(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	incomingID := args[0]
	ctx := context.Background()

	var outgoing *domain.Session
	if workspace != nil {
		outgoing = workspace.Session()
	}

	session, err := sessionService.Switch(ctx, outgoing, incomingID)
	if err != nil {
		return fmt.Errorf("failed to switch session: %w", err)
	}

	if err := adoptSession(session); err != nil {
		return err
	}
	cmd.Printf("Switched to session %s (%d messages).\n", session.ID, len(session.Messages))
	return nil
}

func runSessionNew(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	ctx := context.Background()

	var outgoing *domain.Session
	if workspace != nil {
		outgoing = workspace.Session()
	}

	session, err := sessionService.StartNew(ctx, outgoing)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	if err := adoptSession(session); err != nil {
		return err
	}
	cmd.Printf("Started session %s.\n", session.ID)
	return nil
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	sessionID := args[0]
	ctx := context.Background()

	if workspace != nil {
		if s := workspace.Session(); s != nil && s.ID == sessionID {
			return errors.New("cannot delete the current session; switch away first")
		}
	}

	removed, err := sessionService.Delete(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if !removed {
		cmd.Printf("No session %s.\n", sessionID)
		return nil
	}

	cmd.Printf("Deleted session %s.\n", sessionID)
	return nil
}

// adoptSession points the workspace and the persisted current-session
// pointer at the given session.
func adoptSession(session *domain.Session) error {
	if workspace != nil {
		workspace.SetSession(session)
	}
	if configStore != nil {
		if err := configStore.Set(driven.ConfigKeyCurrentSession, session.ID); err != nil {
			return fmt.Errorf("failed to save session pointer: %w", err)
		}
	}
	return nil
}
