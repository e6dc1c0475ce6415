// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pptx2pro/internal/catalog"
	"github.com/pdiddy/pptx2pro/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the song catalog (list, export)",
	Long: `Catalog reads the SQLite record of converted songs. Every batch run
updates it with each deck's title, credit, status and classified verses.`,
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded songs",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	opts := catalogOptsFromFlags(cmd)
	entries, err := store.List(cmd.Context(), opts)
	if err != nil {
		return err
	}
	counts, err := store.Counts(cmd.Context(), opts.Prefix)
	if err != nil {
		return err
	}
	return formatList(cmd.OutOrStdout(), entries, counts)
}

func formatList(w io.Writer, entries []catalog.Entry, counts map[types.DocumentStatus]int) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No songs recorded.")
		return err
	}

	fmt.Fprintf(w, "%-7s  %-9s  %-40s  %-30s  %-4s  %s\n",
		"Song", "Status", "Title", "Author", "Year", "Verses")
	fmt.Fprintln(w, strings.Repeat("-", 105))

	for _, e := range entries {
		fmt.Fprintf(w, "%-7s  %-9s  %-40s  %-30s  %-4s  %d\n",
			strings.ToUpper(e.Prefix)+e.ID, e.Status, clip(e.Title, 40), clip(e.Author, 30), e.Year, len(e.Verses))
	}

	_, err := fmt.Fprintf(w, "\n%d songs: %d converted, %d empty, %d failed\n", len(entries),
		counts[types.DocumentConverted], counts[types.DocumentEmpty], counts[types.DocumentFailed])
	return err
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the song catalog to YAML or JSON",
	Long: `Export writes every recorded song (or those matching --prefix and
--status) with its verses. Output goes to stdout unless --output is given.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	if err := store.Export(cmd.Context(), w, format, catalogOptsFromFlags(cmd)); err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", output)
	}
	return nil
}

// --- shared helpers ---

func openCatalog() (*catalog.Store, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return catalog.Open(cfg.Catalog)
}

func catalogOptsFromFlags(cmd *cobra.Command) catalog.QueryOptions {
	prefix, _ := cmd.Flags().GetString("prefix")
	status, _ := cmd.Flags().GetString("status")
	return catalog.QueryOptions{
		Prefix: strings.ToLower(prefix),
		Status: types.DocumentStatus(status),
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("prefix", "", "filter by hymnal prefix (ph or sb)")
	catalogCmd.PersistentFlags().String("status", "", "filter by status: converted, empty, failed")
	catalogCmd.PersistentFlags().String("db", "", "catalog database file (default from config)")
	_ = viper.BindPFlag("catalog.path", catalogCmd.PersistentFlags().Lookup("db"))

	catalogExportCmd.Flags().String("format", catalog.FormatYAML, "export format: yaml or json")
	catalogExportCmd.Flags().String("output", "", "write to this file instead of stdout")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
