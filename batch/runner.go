package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/contour"
	"github.com/tsawler/contour/format"
)

// maxDefaultWorkers caps the automatic worker count. Extraction is mostly
// CPU-bound, and beyond a handful of workers the page decoders just fight
// over memory bandwidth.
const maxDefaultWorkers = 8

// Config controls a batch run.
type Config struct {
	// InputDir is the directory scanned for PDF files. Required. Only the
	// directory's immediate files are considered; subdirectories are not
	// descended into.
	InputDir string

	// OutputDir receives one artifact per processed document, created with
	// MkdirAll when missing. Defaults to an "output" directory inside
	// InputDir.
	OutputDir string

	// Workers bounds how many documents are processed concurrently.
	// Defaults to the CPU count, capped at 8.
	Workers int

	// Format selects the artifact rendering. Default FormatJSON.
	Format ArtifactFormat

	// Strategy names the heading strategy ("size", "font", "font+size").
	// Empty means the extractor default.
	Strategy string

	// LanguageFilter applies the language-adaptive heading filter in size
	// mode. DefaultConfig enables it.
	LanguageFilter bool

	// OCR recovers page text of image-only pages via OCR. Requires a
	// binary built with the ocr tag; without it pages stay empty and the
	// document still succeeds.
	OCR bool

	// DetectTables includes detected table grids in each artifact.
	DetectTables bool

	// Logger receives run progress. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the settings a plain run of inputDir uses: JSON
// artifacts under <inputDir>/output, the size strategy with the language
// filter on, and one worker per CPU capped at 8.
func DefaultConfig(inputDir string) Config {
	return Config{
		InputDir:       inputDir,
		OutputDir:      filepath.Join(inputDir, "output"),
		Workers:        defaultWorkers(),
		Format:         FormatJSON,
		Strategy:       "size",
		LanguageFilter: true,
	}
}

func defaultWorkers() int {
	n := runtime.NumCPU()
	if n > maxDefaultWorkers {
		n = maxDefaultWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Result reports the outcome of one document.
type Result struct {
	// File is the input file's name within InputDir.
	File string

	// OutputPath is the artifact path. Empty when the document failed.
	OutputPath string

	// Entries is the number of outline entries extracted.
	Entries int

	// Duration is how long the document took, including artifact writing.
	Duration time.Duration

	// Err is the document's failure, nil on success. A failed document
	// never affects its siblings.
	Err error
}

// Summary aggregates a run's per-document results.
type Summary struct {
	// Processed counts documents that produced an artifact.
	Processed int

	// Failed counts documents that produced no artifact.
	Failed int

	// Entries is the total outline entry count across artifacts.
	Entries int
}

// String renders the summary as a single line.
func (s Summary) String() string {
	return fmt.Sprintf("processed %d, failed %d, %d outline entries",
		s.Processed, s.Failed, s.Entries)
}

// Summarize folds per-document results into run totals.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			continue
		}
		s.Processed++
		s.Entries += r.Entries
	}
	return s
}

// Runner processes every PDF in a directory into per-document artifacts.
type Runner struct {
	cfg    Config
	logger *slog.Logger
}

// New validates the configuration, fills defaults, and returns a Runner.
func New(cfg Config) (*Runner, error) {
	if cfg.InputDir == "" {
		return nil, fmt.Errorf("batch: InputDir is required")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(cfg.InputDir, "output")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Runner{cfg: cfg, logger: cfg.Logger}, nil
}

// Run processes the input directory and returns one Result per candidate
// file, in directory (name) order. Candidates are the files with a .pdf
// extension, case-insensitively; each is then magic-verified, and files
// that are not actually PDFs fail with an error wrapping contour.ErrNotPDF.
//
// The returned error covers run-level problems only: an unreadable input
// directory, an uncreatable output directory, or context cancellation.
// Per-document failures live in the Results. Cancelling ctx stops new
// documents from being scheduled; documents already underway finish.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	entries, err := os.ReadDir(r.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("batch: read input dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, entry.Name())
		}
	}
	if len(files) == 0 {
		r.logger.Info("no pdf files found", "dir", r.cfg.InputDir)
		return nil, nil
	}

	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("batch: create output dir: %w", err)
	}

	r.logger.Info("batch starting",
		"dir", r.cfg.InputDir, "files", len(files), "workers", r.cfg.Workers)

	// Each task owns exactly one slot, so the slice needs no lock.
	results := make([]Result, len(files))
	g := new(errgroup.Group)
	g.SetLimit(r.cfg.Workers)

	for i, name := range files {
		i, name := i, name
		if ctx.Err() != nil {
			results[i] = Result{File: name, Err: ctx.Err()}
			continue
		}
		g.Go(func() error {
			results[i] = r.processOne(name)
			return nil
		})
	}
	// Task funcs never return errors; failures live in the results.
	_ = g.Wait()

	return results, ctx.Err()
}

// processOne extracts one document and writes its artifact. Panics inside
// the extraction stack are recovered into the Result so one malformed
// document cannot take down the batch.
func (r *Runner) processOne(name string) (res Result) {
	start := time.Now()
	res.File = name
	defer func() {
		if p := recover(); p != nil {
			res.Err = fmt.Errorf("panic: %v", p)
		}
		res.Duration = time.Since(start)
		if res.Err != nil {
			r.logger.Error("document failed", "file", name, "error", res.Err)
		} else {
			r.logger.Info("extracted",
				"file", name, "entries", res.Entries, "duration", res.Duration)
		}
	}()

	path := filepath.Join(r.cfg.InputDir, name)

	kind, err := format.SniffFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	if kind != format.PDF {
		res.Err = fmt.Errorf("%s: detected %s: %w", name, kind, contour.ErrNotPDF)
		return res
	}

	ext := contour.Open(path).
		LanguageFilter(r.cfg.LanguageFilter).
		OCRFallback(r.cfg.OCR).
		DetectTables(r.cfg.DetectTables)
	if r.cfg.Strategy != "" {
		ext = ext.Strategy(r.cfg.Strategy)
	}

	doc, warnings, err := ext.Document()
	if err != nil {
		res.Err = err
		return res
	}
	for _, w := range warnings {
		r.logger.Debug("extraction warning", "file", name, "warning", w.String())
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	outPath := filepath.Join(r.cfg.OutputDir, base+r.cfg.Format.FileExtension())
	if err := WriteDocument(doc, outPath, r.cfg.Format); err != nil {
		res.Err = err
		return res
	}

	res.OutputPath = outPath
	res.Entries = len(doc.Outline)
	return res
}
