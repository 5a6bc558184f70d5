package pdf

import "strings"

// PaperSize is a portrait page in millimetres.
type PaperSize struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var (
	A4     = PaperSize{Name: "A4", Width: 210, Height: 297}
	Letter = PaperSize{Name: "Letter", Width: 215.9, Height: 279.4}
)

// PaperSizeByName looks a paper size up case-insensitively.
func PaperSizeByName(name string) (PaperSize, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "a4":
		return A4, true
	case "letter":
		return Letter, true
	}
	return PaperSize{}, false
}
