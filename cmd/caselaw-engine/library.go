// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/caselaw-engine/internal/library"
	"github.com/pdiddy/caselaw-engine/internal/search"
	"github.com/pdiddy/caselaw-engine/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the local research library (store, retrieve, export)",
	Long: `Library manages a local SQLite library of case documents saved from
searches. Use subcommands to ingest documents from a saved query file,
query them with full-text search, or export the library.`,
}

// --- store subcommand ---

var libraryStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Ingest documents from a saved query file into the library",
	Long: `Store reads a query file written by "search --save" and upserts its
documents into the library database. Pass --ids to store only specific
documents from the file.`,
	RunE: runLibraryStore,
}

func runLibraryStore(cmd *cobra.Command, args []string) error {
	fromPath, _ := cmd.Flags().GetString("from")
	if fromPath == "" {
		return fmt.Errorf("query file required: pass --from <path>")
	}

	qf, err := search.ReadQueryFile(fromPath)
	if err != nil {
		return err
	}

	docs := qf.Documents
	if ids, _ := cmd.Flags().GetStringSlice("ids"); len(ids) > 0 {
		wanted := make(map[string]bool, len(ids))
		for _, id := range ids {
			wanted[id] = true
		}
		var selected []types.CaseDocument
		for _, d := range docs {
			if wanted[d.ID] {
				d.IsSelected = true
				selected = append(selected, d)
			}
		}
		docs = selected
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents to store from %s", fromPath)
	}

	store, err := library.NewStore(libraryConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Save(context.Background(), docs, os.Stdout)
	return err
}

// --- retrieve subcommand ---

var libraryRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the library with full-text search and filters",
	RunE:  runLibraryRetrieve,
}

func runLibraryRetrieve(cmd *cobra.Command, args []string) error {
	store, err := library.NewStore(libraryConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := libraryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --type, or --court")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatLibraryOutput(results, jsonOutput)
}

func formatLibraryOutput(results []library.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No documents found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-16s  %-44s  %-30s  %s\n",
		"Rank", "Type", "Title", "Court", "ID")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%-4d  %-16s  %-44s  %-30s  %s\n",
			i+1, r.Type, search.Truncate(r.Title, 44), search.Truncate(r.Court, 30), r.ID)
	}

	fmt.Fprintf(os.Stdout, "\n%d documents\n", len(results))
	return nil
}

// --- export subcommand ---

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the library to YAML or JSON",
	Long: `Export writes the full library (or a filtered subset) to
export.yaml or export.json in the library directory. Supports the same
filter flags as retrieve.`,
	RunE: runLibraryExport,
}

func runLibraryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := library.NewStore(libraryConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := libraryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to export.yaml")
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func libraryConfig(cmd *cobra.Command) types.LibraryConfig {
	libraryDir, _ := cmd.Flags().GetString("library-dir")
	if libraryDir == "" {
		libraryDir = "library"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.LibraryConfig{
		LibraryDir: libraryDir,
		MaxResults: maxResults,
	}
}

func libraryOptsFromFlags(cmd *cobra.Command, args []string) library.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	docType, _ := cmd.Flags().GetString("type")
	court, _ := cmd.Flags().GetString("court")
	limit, _ := cmd.Flags().GetInt("limit")

	return library.QueryOptions{
		Query:      queryText,
		Type:       types.DocumentType(docType),
		Court:      court,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	libraryCmd.PersistentFlags().String("library-dir", "library", "base directory for the library database and exports")
	libraryCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Store flags.
	libraryStoreCmd.Flags().String("from", "", "query file written by search --save")
	libraryStoreCmd.Flags().StringSlice("ids", nil, "store only these document IDs")

	// Retrieve flags.
	libraryRetrieveCmd.Flags().String("query", "", "full-text search query")
	libraryRetrieveCmd.Flags().String("type", "", "filter by document type: decision, dissent, concurrence, record")
	libraryRetrieveCmd.Flags().String("court", "", "filter by court name substring")
	libraryRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	libraryRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	libraryExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	libraryExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	libraryExportCmd.Flags().String("type", "", "filter by document type for partial export")
	libraryExportCmd.Flags().String("court", "", "filter by court for partial export")
	libraryExportCmd.Flags().Int("limit", 0, "maximum documents to export (0 = all)")

	// Wire subcommands.
	libraryCmd.AddCommand(libraryStoreCmd)
	libraryCmd.AddCommand(libraryRetrieveCmd)
	libraryCmd.AddCommand(libraryExportCmd)

	rootCmd.AddCommand(libraryCmd)
}
