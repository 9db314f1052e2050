package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change configuration values.

Keys:
  api_key       Anthropic API key (shown masked)
  model         Model name override
  token_budget  Context token budget
  year_filter   Year-based context narrowing (true/false)
  data_dir      Root of all persisted state

Environment variables override the file: FINSIGHT_<KEY> for any key,
plus ANTHROPIC_API_KEY for the API key.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets a configuration value and persists it immediately.

Setting api_key without a value prompts for it without echoing,
so the key stays out of shell history.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Printf("Config file: %s\n\n", configStore.Path())

	apiKey := configStore.GetString(driven.ConfigKeyAPIKey)
	if apiKey == "" {
		cmd.Printf("  %-16s (not set)\n", driven.ConfigKeyAPIKey)
	} else {
		cmd.Printf("  %-16s %s\n", driven.ConfigKeyAPIKey, maskAPIKey(apiKey))
	}

	for _, key := range []string{
		driven.ConfigKeyModel,
		driven.ConfigKeyTokenBudget,
		driven.ConfigKeyYearFilter,
		driven.ConfigKeyDataDir,
	} {
		value, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("  %-16s (default)\n", key)
			continue
		}
		cmd.Printf("  %-16s %v\n", key, value)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	value, ok := configStore.Get(key)
	if !ok {
		cmd.Printf("%s is not set\n", key)
		return nil
	}
	if key == driven.ConfigKeyAPIKey {
		cmd.Println(maskAPIKey(fmt.Sprintf("%v", value)))
		return nil
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		if key != driven.ConfigKeyAPIKey {
			return fmt.Errorf("missing value for %s", key)
		}
		cmd.Print("Enter API key: ")
		value = readPassword()
		cmd.Println()
	}
	if value == "" {
		return fmt.Errorf("empty value for %s", key)
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if key == driven.ConfigKeyAPIKey {
		cmd.Println("API key saved.")
		return nil
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Read without echo when attached to a terminal.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
