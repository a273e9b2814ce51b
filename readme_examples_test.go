package contour_test

import (
	"context"
	"fmt"
	"log"

	"github.com/tsawler/contour"
	"github.com/tsawler/contour/batch"
	"github.com/tsawler/contour/outline"
	"github.com/tsawler/contour/reader"
)

// These examples verify the README code samples compile correctly.
// They are not meant to be run as actual tests since they require files.

func Example_inferOutline() {
	ol, warnings, err := contour.Open("document.pdf").Outline()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Title:", ol.Title)
	for _, entry := range ol.Entries {
		fmt.Printf("%s %s (page %d)\n", entry.Level, entry.Text, entry.Page)
	}

	for _, w := range warnings {
		fmt.Println("Warning:", w.Message)
	}
}

func Example_extractWithOptions() {
	ol, warnings, err := contour.Open("document.pdf").
		Pages(1, 2, 3).        // Specific pages
		Strategy("font+size"). // Font-name signal with size fallback
		LanguageFilter(false). // Keep headings without numbering or colon cues
		Outline()
	_ = ol
	_ = warnings
	_ = err
}

func Example_buildDocument() {
	doc, _, err := contour.Open("report.pdf").
		DetectTables(true).
		OCRFallback(true). // Needs a binary built with the ocr tag
		Document()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Title:", doc.Title)
	fmt.Println("Outline entries:", len(doc.Outline))
	fmt.Println("Pages:", doc.PageCount())
	fmt.Println("Tables:", len(doc.Tables))
	fmt.Println("Images:", len(doc.Images))
}

func Example_strategies() {
	// Rank rounded font sizes by aggregate word count (the default).
	ol, _, _ := contour.Open("doc.pdf").Strategy("size").Outline()
	_ = ol

	// Rank weighted font names (bold, black, heavy, medium) by span count.
	ol, _, _ = contour.Open("doc.pdf").Strategy("font").Outline()
	_ = ol

	// Font signal first, size ranking as fallback when no font qualifies.
	ol, _, _ = contour.Open("doc.pdf").Strategy("font+size").Outline()
	_ = ol
}

func Example_customConfig() {
	cfg := outline.DefaultConfig()
	cfg.MinWidthRatio = 0.4  // Accept narrower single-span headings
	cfg.MaxHeadingChars = 80 // Reject longer candidates

	ol, _, err := contour.Open("doc.pdf").
		WithOutlineConfig(cfg).
		Outline()
	_ = ol
	_ = err
}

func Example_openDocuments() {
	// From file path
	ext := contour.Open("document.pdf")
	_ = ext

	// From an existing reader; the caller owns its lifecycle
	r, err := reader.Open("document.pdf")
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()
	ext = contour.FromReader(r)
	_ = ext
}

func Example_batchProcessing() {
	runner, err := batch.New(batch.DefaultConfig("./pdfs"))
	if err != nil {
		log.Fatal(err)
	}

	results, err := runner.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	for _, res := range results {
		if res.Err != nil {
			log.Printf("%s failed: %v", res.File, res.Err)
			continue
		}
		fmt.Printf("%s -> %s (%d entries)\n", res.File, res.OutputPath, res.Entries)
	}
	fmt.Println(batch.Summarize(results))
}

func Example_warnings() {
	ol, warnings, err := contour.Open("document.pdf").Outline()
	if err != nil {
		log.Fatal(err) // Fatal error
	}
	_ = ol

	for _, w := range warnings {
		log.Println("Warning:", w.Message) // Non-fatal issues
	}

	// Format all warnings
	formatted := contour.FormatWarnings(warnings)
	_ = formatted
}

func Example_errorHandling() {
	// Panic on error (for scripts/tests)
	ol := contour.MustOutline(contour.Open("doc.pdf").Outline())
	count := contour.Must(contour.Open("doc.pdf").PageCount())
	title := contour.Must(contour.Open("doc.pdf").Title())
	_ = ol
	_ = count
	_ = title
}
