package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tsawler/contour/batch"
)

func batchCmd() *cobra.Command {
	var (
		out          string
		workers      int
		strategy     string
		noLangFilter bool
		ocrFallback  bool
		detectTables bool
		formatName   string
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Extract every PDF in a directory into per-document artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artifactFormat, err := batch.ParseFormat(formatName)
			if err != nil {
				return err
			}

			cfg := batch.DefaultConfig(args[0])
			cfg.Format = artifactFormat
			cfg.Strategy = strategy
			cfg.LanguageFilter = !noLangFilter
			cfg.OCR = ocrFallback
			cfg.DetectTables = detectTables
			if out != "" {
				cfg.OutputDir = out
			}
			if workers > 0 {
				cfg.Workers = workers
			}

			runner, err := batch.New(cfg)
			if err != nil {
				return err
			}
			results, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			summary := batch.Summarize(results)
			fmt.Fprintln(cmd.OutOrStdout(), summary)

			// Partial failure is normal for mixed directories; only a run
			// where nothing succeeded exits non-zero.
			if len(results) > 0 && summary.Processed == 0 {
				return fmt.Errorf("all %d documents failed", len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "artifact directory (default <dir>/output)")
	cmd.Flags().IntVar(&workers, "workers", envInt("CONTOUR_WORKERS", 0), "concurrent documents (default: CPU count, capped at 8)")
	cmd.Flags().StringVar(&strategy, "strategy", "size", "heading strategy: size|font|font+size")
	cmd.Flags().BoolVar(&noLangFilter, "no-lang-filter", false, "disable the language-adaptive heading filter")
	cmd.Flags().BoolVar(&ocrFallback, "ocr", false, "recover text of image-only pages with OCR (needs an ocr-tagged build)")
	cmd.Flags().BoolVar(&detectTables, "tables", false, "include detected tables in the artifacts")
	cmd.Flags().StringVar(&formatName, "format", getenv("CONTOUR_FORMAT", "json"), "artifact format: json|md|text")

	return cmd
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
