package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindwell-labs/sanara/internal/core/domain"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Manage the content corpus",
	Long:  `Load and remove therapeutic content items.`,
}

var contentLoadCmd = &cobra.Command{
	Use:   "load [file.json]",
	Short: "Load content items from a JSON file",
	Long: `Loads a JSON array of content items into the corpus. Items
without an embedding are embedded on the way in when an embedding
provider is configured. Cached search results referencing changed
items are invalidated.`,
	Args: cobra.ExactArgs(1),
	RunE: runContentLoad,
}

var contentRemoveCmd = &cobra.Command{
	Use:   "remove [id...]",
	Short: "Remove content items by ID",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runContentRemove,
}

func init() {
	contentCmd.AddCommand(contentLoadCmd)
	contentCmd.AddCommand(contentRemoveCmd)
	rootCmd.AddCommand(contentCmd)
}

func runContentLoad(cmd *cobra.Command, args []string) error {
	if contentManager == nil {
		return errors.New("content manager not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var items []domain.ContentItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}
	if len(items) == 0 {
		return fmt.Errorf("%s contains no content items", args[0])
	}

	stored, err := contentManager.Load(cmd.Context(), items)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	cmd.Printf("Loaded %d content item(s).\n", stored)
	return nil
}

func runContentRemove(cmd *cobra.Command, args []string) error {
	if contentManager == nil {
		return errors.New("content manager not configured")
	}

	if err := contentManager.Remove(cmd.Context(), args); err != nil {
		return fmt.Errorf("removing content: %w", err)
	}

	cmd.Printf("Removed %d content item(s).\n", len(args))
	return nil
}
