// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pptx2pro/internal/bundle"
	"github.com/pdiddy/pptx2pro/internal/catalog"
	"github.com/pdiddy/pptx2pro/internal/convert"
	"github.com/pdiddy/pptx2pro/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [prefix...]",
	Short: "Convert the decks of one or more hymnal batches",
	Long: `Convert processes src-<prefix>/ for each given prefix (default: the
configured prefixes, ph then sb). The output directory is cleared at the
start of each batch, every deck is converted concurrently, and the results
are zipped into bundle-<prefix>.pro6x.

A deck that cannot be read is reported and skipped; only setup problems such
as a missing source directory stop the run.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("source-root", "", "directory containing src-<prefix>/ folders")
	convertCmd.Flags().String("output-dir", "", "directory for rendered documents (cleared per batch)")
	convertCmd.Flags().String("bundle-dir", "", "directory for bundle-<prefix>.pro6x archives")
	convertCmd.Flags().Int("concurrency", 0, "maximum decks converted at once (0 = no limit)")
	convertCmd.Flags().Bool("no-catalog", false, "do not record results in the song catalog")

	_ = viper.BindPFlag("convert.source_root", convertCmd.Flags().Lookup("source-root"))
	_ = viper.BindPFlag("convert.output_dir", convertCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("convert.bundle_dir", convertCmd.Flags().Lookup("bundle-dir"))
	_ = viper.BindPFlag("convert.concurrency", convertCmd.Flags().Lookup("concurrency"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if noCatalog, _ := cmd.Flags().GetBool("no-catalog"); noCatalog {
		cfg.Catalog.Enabled = false
	}
	if len(args) > 0 {
		cfg.Convert.Prefixes = args
	}

	results, err := run(cmd.Context(), cfg, runLogger(cfg))
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.HasFailures() {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d deck(s) failed; see the log above\n", r.Failed)
			break
		}
	}
	return nil
}

// run converts each configured prefix in order and returns the per-batch
// results.
func run(ctx context.Context, cfg types.Config, log zerolog.Logger) ([]convert.BatchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var store *catalog.Store
	if cfg.Catalog.Enabled {
		s, err := catalog.Open(cfg.Catalog)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		store = s
	}

	var results []convert.BatchResult
	for _, prefix := range cfg.Convert.Prefixes {
		prefix = strings.ToLower(strings.TrimSpace(prefix))
		if prefix == "" {
			continue
		}
		r, err := runPrefix(ctx, cfg.Convert, prefix, log)
		if err != nil {
			return results, fmt.Errorf("batch %s: %w", prefix, err)
		}
		if store != nil {
			store.RecordBatch(ctx, prefix, r, log)
		}
		results = append(results, r)
	}
	log.Info().Msg("done")
	return results, nil
}

// runPrefix runs one batch: remove the old bundle, convert every deck,
// then bundle the output directory.
func runPrefix(ctx context.Context, cfg types.ConvertConfig, prefix string, log zerolog.Logger) (convert.BatchResult, error) {
	bundlePath := bundle.Path(cfg.BundleDir, prefix, cfg.Extension)
	if err := bundle.Remove(bundlePath); err != nil {
		return convert.BatchResult{}, err
	}

	job := convert.Job{
		Prefix:      prefix,
		SourceDir:   filepath.Join(cfg.SourceRoot, "src-"+prefix),
		OutputDir:   cfg.OutputDir,
		Ext:         cfg.Extension,
		Concurrency: cfg.Concurrency,
	}
	result, err := convert.Batch(ctx, job, log)
	if err != nil {
		return result, err
	}

	log.Info().Str("bundle", bundlePath).Msg("creating bundle")
	n, err := bundle.Write(bundlePath, cfg.OutputDir, cfg.Extension)
	if err != nil {
		return result, err
	}
	log.Info().Str("bundle", bundlePath).Int("documents", n).Msg("bundle written")
	return result, nil
}
