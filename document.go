package contour

import (
	"strings"

	"github.com/tsawler/contour/images"
	"github.com/tsawler/contour/model"
	"github.com/tsawler/contour/ocr"
	"github.com/tsawler/contour/tables"
)

// Document builds the complete extraction artifact: title, outline,
// metadata, per-page text, and any tables, images, links and annotations
// the document carries. This is a terminal operation that closes the
// underlying reader.
//
// Collaborator failures inside a section (a page that will not decode, an
// image scan that errors, OCR unavailable) degrade that section and record
// a warning; they never abort the document.
//
// Example:
//
//	doc, warnings, err := contour.Open("report.pdf").
//	    DetectTables(true).
//	    Document()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Title, len(doc.Outline))
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	pages, err := e.collectPages()
	if err != nil {
		return nil, e.warnings, err
	}

	ol, err := e.inferOutline(pages)
	if err != nil {
		return nil, e.warnings, err
	}

	doc := model.NewDocument(ol.Title)
	doc.SetOutline(ol)
	doc.Metadata = e.reader.Metadata()
	doc.Pages = e.buildPages(pages)

	if e.options.detectTables {
		doc.Tables = e.detectTables(pages)
	}

	// Image inventory re-reads the file by path, so it is unavailable for
	// extractors built over a caller-owned reader.
	if e.filename != "" {
		imgs, err := images.Inventory(e.filename)
		if err != nil {
			e.addWarning(WarnImageScan, 0, "%v", err)
		} else {
			doc.Images = imgs
		}
	}

	for _, pd := range pages {
		doc.Links = append(doc.Links, e.reader.PageLinks(pd.number)...)
		doc.Annotations = append(doc.Annotations, e.reader.PageAnnotations(pd.number)...)
	}

	return doc, e.warnings, nil
}

// buildPages turns collected pages into artifact records. Pages without
// embedded text fall back to OCR when enabled; OCR text feeds the page
// record only, never outline inference, which needs font geometry.
func (e *Extractor) buildPages(pages []pageData) []model.PageInfo {
	var ocrClient *ocr.Client
	ocrTried := false
	defer func() {
		if ocrClient != nil {
			ocrClient.Close()
		}
	}()

	infos := make([]model.PageInfo, 0, len(pages))
	for _, pd := range pages {
		info := model.PageInfo{
			Number: pd.number,
			Width:  pd.width,
			Height: pd.height,
			Lines:  len(pd.lines),
			Text:   pageText(pd.lines),
		}

		if info.Text == "" && e.options.ocrFallback && e.filename != "" {
			if !ocrTried {
				ocrTried = true
				client, err := ocr.New()
				if err != nil {
					e.addWarning(WarnOCRUnavailable, 0, "%v", err)
				} else {
					ocrClient = client
				}
			}
			if ocrClient != nil {
				text, err := ocrClient.RecognizePage(e.filename, pd.number)
				if err != nil {
					e.addWarning(WarnOCRFailed, pd.number, "%v", err)
				} else if text != "" {
					info.Text = text
					info.OCR = true
				}
			}
		}

		infos = append(infos, info)
	}
	return infos
}

// detectTables runs the registered geometric detector over each decodable
// page's fragment rows.
func (e *Extractor) detectTables(pages []pageData) []model.Table {
	detector := tables.GetDetector("geometric")
	if detector == nil {
		return nil
	}

	var found []model.Table
	for _, pd := range pages {
		if pd.err != nil {
			continue
		}
		rows, err := e.reader.PageFragments(pd.number)
		if err != nil {
			e.addWarning(WarnTableDetect, pd.number, "%v", err)
			continue
		}
		pageTables, err := detector.Detect(pd.number, rows)
		if err != nil {
			e.addWarning(WarnTableDetect, pd.number, "%v", err)
			continue
		}
		found = append(found, pageTables...)
	}
	return found
}

// pageText joins a page's non-blank lines with newlines.
func pageText(lines []model.Line) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if t := strings.TrimSpace(line.Text()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}
