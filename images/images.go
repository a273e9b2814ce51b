// Package images inventories and exports the raster images embedded in a
// PDF. It rides on pdfcpu's optimized cross-reference table, which indexes
// image XObjects per page; documents whose optimization data is unavailable
// fall back to a raw xref scan that finds images without page attribution.
package images

import (
	"fmt"
	"os"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/contour/model"
)

// Inventory lists the image XObjects in the document, page by page. Images
// found only through the xref fallback carry Page 0, meaning the page is
// unknown.
func Inventory(path string) ([]model.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := pdfmodel.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	if ctx.Optimize != nil {
		var imgs []model.Image
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			objNrs := pdfcpu.ImageObjNrs(ctx, pageNr)
			sort.Ints(objNrs)
			for _, objNr := range objNrs {
				imgs = append(imgs, model.Image{Page: pageNr, ObjectNumber: objNr})
			}
		}
		return imgs, nil
	}

	return scanXRef(ctx), nil
}

// scanXRef walks the raw cross-reference table for image stream
// dictionaries. Page numbers are not recoverable on this path.
func scanXRef(ctx *pdfmodel.Context) []model.Image {
	objNrs := make([]int, 0, len(ctx.Table))
	for objNr := range ctx.Table {
		objNrs = append(objNrs, objNr)
	}
	sort.Ints(objNrs)

	var imgs []model.Image
	for _, objNr := range objNrs {
		entry := ctx.Table[objNr]
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		subtype, found := sd.Find("Subtype")
		if !found {
			continue
		}
		if name, isName := subtype.(types.Name); isName && name == "Image" {
			imgs = append(imgs, model.Image{Page: 0, ObjectNumber: objNr})
		}
	}
	return imgs
}

// Export writes every embedded image to outDir using pdfcpu's extractor.
// File names follow pdfcpu's convention (<basename>_<page>_<object>.<ext>).
func Export(path, outDir string) error {
	conf := pdfmodel.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(path, outDir, nil, conf); err != nil {
		return fmt.Errorf("extract images: %w", err)
	}
	return nil
}

// PageSet returns the set of pages known to carry at least one image.
func PageSet(imgs []model.Image) map[int]bool {
	pages := make(map[int]bool, len(imgs))
	for _, img := range imgs {
		if img.Page > 0 {
			pages[img.Page] = true
		}
	}
	return pages
}
