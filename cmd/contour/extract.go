package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/contour"
	"github.com/tsawler/contour/batch"
	"github.com/tsawler/contour/images"
)

func extractCmd() *cobra.Command {
	var (
		out          string
		strategy     string
		noLangFilter bool
		ocrFallback  bool
		detectTables bool
		pagesSpec    string
		formatName   string
		imagesDir    string
	)

	cmd := &cobra.Command{
		Use:   "extract <pdf>",
		Short: "Extract the title and outline of one PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artifactFormat, err := batch.ParseFormat(formatName)
			if err != nil {
				return err
			}

			ext := contour.Open(args[0]).
				LanguageFilter(!noLangFilter).
				OCRFallback(ocrFallback).
				DetectTables(detectTables)
			if strategy != "" {
				ext = ext.Strategy(strategy)
			}
			if pagesSpec != "" {
				pages, err := parsePages(pagesSpec)
				if err != nil {
					return err
				}
				ext = ext.Pages(pages...)
			}

			doc, warnings, err := ext.Document()
			if err != nil {
				return err
			}
			for _, w := range warnings {
				slog.Warn("extraction warning", "warning", w.String())
			}

			if imagesDir != "" {
				if err := images.Export(args[0], imagesDir); err != nil {
					slog.Warn("image export failed", "error", err)
				} else {
					slog.Info("images exported", "dir", imagesDir)
				}
			}

			if out == "" {
				return batch.Write(doc, cmd.OutOrStdout(), artifactFormat)
			}
			if err := batch.WriteDocument(doc, out, artifactFormat); err != nil {
				return err
			}
			slog.Info("artifact written", "path", out, "entries", len(doc.Outline))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the artifact to this file instead of stdout")
	cmd.Flags().StringVar(&strategy, "strategy", "size", "heading strategy: size|font|font+size")
	cmd.Flags().BoolVar(&noLangFilter, "no-lang-filter", false, "disable the language-adaptive heading filter")
	cmd.Flags().BoolVar(&ocrFallback, "ocr", false, "recover text of image-only pages with OCR (needs an ocr-tagged build)")
	cmd.Flags().BoolVar(&detectTables, "tables", false, "include detected tables in the artifact")
	cmd.Flags().StringVar(&pagesSpec, "pages", "", "restrict extraction to pages, e.g. 1,3-5")
	cmd.Flags().StringVar(&formatName, "format", getenv("CONTOUR_FORMAT", "json"), "artifact format: json|md|text")
	cmd.Flags().StringVar(&imagesDir, "images-dir", "", "export embedded images into this directory")

	return cmd
}

// parsePages expands a page spec like "1,3-5" into 1-based page numbers.
func parsePages(spec string) ([]int, error) {
	var pages []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			from, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, fmt.Errorf("bad page range %q", part)
			}
			to, err := strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("bad page range %q", part)
			}
			if from < 1 || from > to {
				return nil, fmt.Errorf("bad page range %q", part)
			}
			for p := from; p <= to; p++ {
				pages = append(pages, p)
			}
			continue
		}
		p, err := strconv.Atoi(part)
		if err != nil || p < 1 {
			return nil, fmt.Errorf("bad page number %q", part)
		}
		pages = append(pages, p)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("empty page spec %q", spec)
	}
	return pages, nil
}
