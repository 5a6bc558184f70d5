package pdf

import "cotizador/go_backend/internal/domain/quote"

// Generator lays a preview out as a printable document directly, without
// going through a captured image.
type Generator interface {
	Generate(p quote.Preview) ([]byte, error)
}

// Image is a captured preview surface, PNG encoded. Width and Height are in pixels.
type Image struct {
	PNG    []byte
	Width  int
	Height int
}

// PagedWriter draws one captured image across the given pages.
type PagedWriter interface {
	WritePages(img Image, pages []Page, paper PaperSize) ([]byte, error)
}
