// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/caselaw-engine/internal/citation"
)

var parseCmd = &cobra.Command{
	Use:   "parse [citation]",
	Short: "Parse a legal citation into structured components",
	Long: `Parse shows how a free-form citation breaks down into case name,
volume, reporter, page, and the optional court and year. Parsing never
fails: unrecognized input degrades to a best-effort case name with
is_valid=false.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cit := citation.Parse(strings.Join(args, " "))

		queries, _ := cmd.Flags().GetBool("queries")
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if queries {
			return enc.Encode(citation.GenerateQueries(cit))
		}
		return enc.Encode(cit)
	},
}

func init() {
	parseCmd.Flags().Bool("queries", false, "show the structured queries derived from the citation")

	rootCmd.AddCommand(parseCmd)
}
