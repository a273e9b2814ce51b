//go:build ocr

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/gen2brain/go-fitz"
	xdraw "golang.org/x/image/draw"
)

// minRenderWidth is the pixel width below which a rendered page is upscaled
// before recognition. Tesseract accuracy degrades sharply on low-resolution
// renders.
const minRenderWidth = 2000

// RecognizePage renders one page (1-based) of the document to an image and
// runs OCR over it.
func (c *Client) RecognizePage(path string, pageNum int) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("open for render: %w", err)
	}
	defer doc.Close()

	if pageNum < 1 || pageNum > doc.NumPage() {
		return "", fmt.Errorf("page %d out of range [1, %d]", pageNum, doc.NumPage())
	}
	img, err := doc.Image(pageNum - 1)
	if err != nil {
		return "", fmt.Errorf("render page %d: %w", pageNum, err)
	}

	data, err := encodePNG(upscale(img))
	if err != nil {
		return "", err
	}
	return c.RecognizeImage(data)
}

// upscale doubles low-resolution renders with Catmull-Rom resampling.
func upscale(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() >= minRenderWidth {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*2, bounds.Dy()*2))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

// encodePNG serializes a rendered page for Tesseract.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode render: %w", err)
	}
	return buf.Bytes(), nil
}
