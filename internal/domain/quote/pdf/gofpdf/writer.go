package gofpdf

import (
	"bytes"
	"errors"
	"log"

	"github.com/jung-kurt/gofpdf"

	"cotizador/go_backend/internal/domain/quote/pdf"
)

const previewImage = "preview"

// PagedWriter registers the captured preview once and draws it on every
// page, shifted up by the page offset so each page shows the next band.
type PagedWriter struct{}

func NewPagedWriter() *PagedWriter { return &PagedWriter{} }

func (w *PagedWriter) WritePages(img pdf.Image, pages []pdf.Page, paper pdf.PaperSize) ([]byte, error) {
	if len(img.PNG) == 0 {
		return nil, errors.New("quote pdf: empty image")
	}
	if len(pages) == 0 {
		return nil, errors.New("quote pdf: no pages")
	}

	doc := newDocument(paper)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	opts := gofpdf.ImageOptions{ImageType: "PNG", AllowNegativePosition: true}
	doc.RegisterImageOptionsReader(previewImage, opts, bytes.NewReader(img.PNG))
	if err := doc.Error(); err != nil {
		return nil, err
	}

	for _, p := range pages {
		doc.AddPage()
		doc.ImageOptions(previewImage, 0, p.OffsetY, p.Width, p.Height, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		log.Printf("quote pdf: paged output failed pages=%d: %v", len(pages), err)
		return nil, err
	}
	return buf.Bytes(), nil
}
