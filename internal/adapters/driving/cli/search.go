package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindwell-labs/sanara/internal/core/domain"
)

var (
	searchLimit       int
	searchJSON        bool
	searchCultural    []string
	searchTherapeutic []string
	searchStrategy    string
	searchUser        string
	searchNoCache     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the therapeutic content corpus",
	Long: `Retrieves and ranks content for the described issue or theme.
Multiple retrieval strategies run in parallel and their results are
merged, scored, and filtered for bias and diversity.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringSliceVar(&searchCultural, "cultural", nil, "cultural traditions to prefer (e.g. buddhist,taoist)")
	searchCmd.Flags().StringSliceVar(&searchTherapeutic, "therapeutic", nil, "therapeutic themes to prefer (e.g. mindfulness)")
	searchCmd.Flags().StringVar(&searchStrategy, "strategy", "", "ranking strategy: hybrid, semantic, bm25, collaborative, therapeutic")
	searchCmd.Flags().StringVar(&searchUser, "user", "", "user ID for personalized ranking")
	searchCmd.Flags().BoolVar(&searchNoCache, "no-cache", false, "bypass the result cache")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		MaxResults:             searchLimit,
		CulturalContext:        searchCultural,
		TherapeuticContext:     searchTherapeutic,
		Strategy:               domain.RankingStrategy(searchStrategy),
		UserID:                 searchUser,
		IncludePersonalization: searchUser != "",
		EnableCaching:          !searchNoCache,
		EnableExpansion:        true,
		EnableTypoCorrection:   true,
		BiasThreshold:          settings.Search.BiasThreshold,
		DiversityFactor:        settings.Search.DiversityFactor,
	}
	if opts.MaxResults == 0 {
		opts.MaxResults = settings.Search.MaxResults
	}
	if opts.Strategy == "" {
		opts.Strategy = settings.Search.Strategy
	}

	resp, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, resp)
	}

	return outputSearchTable(cmd, resp)
}

func outputSearchJSON(cmd *cobra.Command, resp *domain.SearchResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, resp *domain.SearchResponse) error {
	for _, c := range resp.TyposCorrected {
		cmd.Printf("Did you mean %q instead of %q?\n", c.Corrected, c.Original)
	}

	if len(resp.Results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	if resp.Status == domain.StatusDegraded {
		cmd.Println("Note: some retrieval strategies were unavailable; results may be incomplete.")
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range resp.Results {
		res := &resp.Results[i]
		title := res.Item.Title
		if title == "" {
			title = res.Item.ID
		}

		cmd.Printf("  [%d] %s (%.2f)\n", res.Rank, title, res.Score)
		cmd.Printf("      Type: %s\n", res.Item.Type)
		if len(res.Item.CulturalTags) > 0 {
			cmd.Printf("      Tradition: %s\n", strings.Join(res.Item.CulturalTags, ", "))
		}
		if snippet := firstLine(res.Item.Body); snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
		cmd.Println()
	}

	if resp.CacheHit {
		cmd.Printf("(cached, %s)\n", resp.ProcessingTime.Round(time.Millisecond))
	}

	return nil
}

// firstLine returns the first line of text, truncated to 120 runes.
func firstLine(text string) string {
	line := text
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	runes := []rune(line)
	if len(runes) > 120 {
		return string(runes[:120]) + "..."
	}
	return line
}
