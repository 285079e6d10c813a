// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/caselaw-engine/internal/citation"
	"github.com/pdiddy/caselaw-engine/internal/httputil"
	"github.com/pdiddy/caselaw-engine/internal/search"
	"github.com/pdiddy/caselaw-engine/internal/secrets"
	"github.com/pdiddy/caselaw-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [citation]",
	Short: "Look up case law for a legal citation",
	Long: `Search parses a free-form legal citation (e.g. "Miller v. McDonald,
944 F.3d 1050") and runs a cascade of CourtListener queries: modern full-text
search, the citation-lookup endpoint, legacy structured-field queries, and a
broadened fallback. The first stage that yields documents wins.

The --mode flag tunes the full-text stage: exact keeps strict quoted
variants, related adds party-name and court variants, comprehensive tries
everything.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	raw := strings.Join(args, " ")

	modeStr, _ := cmd.Flags().GetString("mode")
	mode, err := search.ParseMode(modeStr)
	if err != nil {
		return err
	}

	cfg := searchConfigFromFlags(cmd)

	timeout, _ := cmd.Flags().GetDuration("deadline")
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cit := citation.Parse(raw)
	if !cit.IsValid {
		fmt.Fprintf(os.Stderr, "warning: %q did not parse as a structured citation; searching by case name only\n", raw)
	}

	client := search.NewClient(cfg, httputil.NewClient(cfg))
	orch := search.NewOrchestrator(client, os.Stderr)
	res := orch.Search(ctx, cit, mode)

	for _, msg := range res.Errors {
		fmt.Fprintln(os.Stderr, "note:", msg)
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := search.WriteQueryFile(savePath, cit, mode, res); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved search to %s\n", savePath)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return search.FormatJSON(res, os.Stdout)
	}
	search.FormatTable(res, os.Stdout)
	return nil
}

func searchConfigFromFlags(cmd *cobra.Command) types.SearchConfig {
	apiKey, _ := cmd.Flags().GetString("api-key")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	interval, _ := cmd.Flags().GetDuration("min-interval")

	userAgent := viper.GetString("search.user_agent")
	if userAgent == "" {
		userAgent = "caselaw-engine/" + version
	}

	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		APIKey:             secrets.CourtListenerToken(loadedSecrets, apiKey),
		MaxResults:         maxResults,
		MinRequestInterval: interval,
		MaxRetries:         viper.GetInt("search.max_retries"),
	}
}

func init() {
	searchCmd.Flags().String("mode", "exact", "search mode: exact, related, or comprehensive")
	searchCmd.Flags().String("api-key", "", "CourtListener API token (overrides secrets and environment)")
	searchCmd.Flags().Int("max-results", 20, "maximum number of results per endpoint query")
	searchCmd.Flags().Duration("timeout", 30*time.Second, "HTTP request timeout")
	searchCmd.Flags().Duration("min-interval", time.Second, "minimum delay between outbound requests")
	searchCmd.Flags().Duration("deadline", 2*time.Minute, "overall deadline for the search cascade (0 = none)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "save the search and its results to a YAML query file")

	rootCmd.AddCommand(searchCmd)
}
