package reader

import (
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/contour/model"
)

// PageLinks returns the link annotations of one page that carry a URI
// action. Malformed annotation values are skipped.
func (r *Reader) PageLinks(pageNum int) (links []model.Link) {
	defer func() { recover() }()

	r.eachAnnot(pageNum, func(a pdf.Value) {
		if a.Key("Subtype").Name() != "Link" {
			return
		}
		action := a.Key("A")
		if action.Kind() != pdf.Dict || action.Key("S").Name() != "URI" {
			return
		}
		uri := strings.TrimSpace(action.Key("URI").Text())
		if uri == "" {
			return
		}
		links = append(links, model.Link{
			Page: pageNum,
			URI:  uri,
			Rect: rectValue(a.Key("Rect")),
		})
	})
	return links
}

// PageAnnotations returns every annotation on one page that declares a
// Subtype. Malformed annotation values are skipped.
func (r *Reader) PageAnnotations(pageNum int) (annots []model.Annotation) {
	defer func() { recover() }()

	r.eachAnnot(pageNum, func(a pdf.Value) {
		subtype := a.Key("Subtype").Name()
		if subtype == "" {
			return
		}
		annots = append(annots, model.Annotation{
			Page:     pageNum,
			Subtype:  subtype,
			Contents: strings.TrimSpace(a.Key("Contents").Text()),
			Rect:     rectValue(a.Key("Rect")),
		})
	})
	return annots
}

// Links returns the URI links of every page, pages ascending.
func (r *Reader) Links() []model.Link {
	var links []model.Link
	for n := 1; n <= r.pdf.NumPage(); n++ {
		links = append(links, r.PageLinks(n)...)
	}
	return links
}

// Annotations returns the annotations of every page, pages ascending.
func (r *Reader) Annotations() []model.Annotation {
	var annots []model.Annotation
	for n := 1; n <= r.pdf.NumPage(); n++ {
		annots = append(annots, r.PageAnnotations(n)...)
	}
	return annots
}

// eachAnnot walks the page Annots array, calling fn for each dictionary
// entry.
func (r *Reader) eachAnnot(pageNum int, fn func(a pdf.Value)) {
	if pageNum < 1 || pageNum > r.pdf.NumPage() {
		return
	}
	page := r.pdf.Page(pageNum)
	if page.V.IsNull() {
		return
	}
	annots := page.V.Key("Annots")
	if annots.Kind() != pdf.Array {
		return
	}
	for i := 0; i < annots.Len(); i++ {
		if a := annots.Index(i); a.Kind() == pdf.Dict {
			fn(a)
		}
	}
}

// rectValue converts a PDF Rect array [x0 y0 x1 y1] into a BBox.
func rectValue(v pdf.Value) model.BBox {
	if v.Kind() != pdf.Array || v.Len() != 4 {
		return model.BBox{}
	}
	return model.NewBBoxFromCorners(
		numValue(v.Index(0)),
		numValue(v.Index(1)),
		numValue(v.Index(2)),
		numValue(v.Index(3)),
	)
}
