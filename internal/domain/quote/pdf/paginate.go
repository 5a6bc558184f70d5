package pdf

import (
	"errors"
	"math"
)

var ErrInvalidGeometry = errors.New("pdf: invalid page geometry")

// Page places the scaled surface on one output page. The same full image is
// drawn on every page at OffsetY; the page viewport shows only the band
// [SourceTop, SourceBottom) of the captured surface.
type Page struct {
	Index   int     `json:"index"`
	OffsetY float64 `json:"offset_y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`

	SourceTop    float64 `json:"source_top"`
	SourceBottom float64 `json:"source_bottom"`
}

// Paginate slices a surface of surfaceWidth x surfaceHeight into pages of
// pageWidth x pageHeight. The surface is scaled to the page width keeping
// its aspect ratio. Content that is an exact multiple of pageHeight does not
// produce a trailing blank page.
func Paginate(surfaceWidth, surfaceHeight, pageWidth, pageHeight float64) ([]Page, error) {
	if !positive(pageWidth) || !positive(pageHeight) || !positive(surfaceWidth) {
		return nil, ErrInvalidGeometry
	}
	if math.IsNaN(surfaceHeight) || math.IsInf(surfaceHeight, 0) || surfaceHeight < 0 {
		return nil, ErrInvalidGeometry
	}

	scale := pageWidth / surfaceWidth
	scaledHeight := surfaceHeight * scale

	band := pageHeight / scale
	place := func(i int, consumed float64) Page {
		top := consumed / scale
		return Page{
			Index:        i,
			OffsetY:      -consumed,
			Width:        pageWidth,
			Height:       scaledHeight,
			SourceTop:    top,
			SourceBottom: math.Min(top+band, surfaceHeight),
		}
	}

	pages := []Page{place(0, 0)}
	consumed := pageHeight
	remaining := scaledHeight - pageHeight
	// Scaling leaves float noise; a remainder below eps is not content.
	eps := pageHeight * 1e-9
	for remaining > eps {
		pages = append(pages, place(len(pages), consumed))
		consumed += pageHeight
		remaining -= pageHeight
	}
	return pages, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
