package gofpdf

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/jung-kurt/gofpdf"

	"cotizador/go_backend/internal/domain/quote"
	"cotizador/go_backend/internal/domain/quote/pdf"
)

// Generator is the print path: it lays the preview out as flowing text with
// automatic page breaks instead of placing a captured image.
type Generator struct {
	Paper pdf.PaperSize
	Now   func() time.Time
}

func New(paper pdf.PaperSize) *Generator { return &Generator{Paper: paper, Now: time.Now} }

func (g *Generator) Generate(p quote.Preview) ([]byte, error) {
	doc := newDocument(g.Paper)
	doc.SetAutoPageBreak(true, 15)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, tr("Cotización"))
	doc.Ln(12)

	section(doc, tr, "Cliente", p.Customer)
	section(doc, tr, "Vehículo", p.Vehicle)

	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(30, 6, tr("Servicio:"))
	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 6, tr(p.Service), "", "L", false)
	doc.Ln(4)

	widths := []float64{18, 82, 30, 30, 30}
	doc.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"Cant.", "Descripción", "P. unitario", "Importe", "M.O."} {
		align := "R"
		if i < 2 {
			align = "L"
		}
		doc.CellFormat(widths[i], 7, tr(h), "B", 0, align, false, 0, "")
	}
	doc.Ln(8)

	doc.SetFont("Helvetica", "", 10)
	for _, row := range p.Items {
		doc.CellFormat(widths[0], 6, tr(row.Quantity), "", 0, "L", false, 0, "")
		doc.CellFormat(widths[1], 6, tr(trim(row.Description, 45)), "", 0, "L", false, 0, "")
		doc.CellFormat(widths[2], 6, tr(row.UnitPrice), "", 0, "R", false, 0, "")
		doc.CellFormat(widths[3], 6, tr(row.Amount), "", 0, "R", false, 0, "")
		doc.CellFormat(widths[4], 6, tr(row.Labor), "", 1, "R", false, 0, "")
	}
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 7, tr("Observaciones"))
	doc.Ln(7)
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, 5, tr(p.Notes), "", "L", false)
	doc.Ln(4)

	totals := []struct{ label, value string }{
		{"Mano de obra", p.Totals.Labor},
		{"Refacciones", p.Totals.Parts},
		{"Subtotal", p.Totals.Subtotal},
		{"IVA", p.Totals.Tax},
		{"Total", p.Totals.Total},
	}
	for i, t := range totals {
		style := ""
		if i == len(totals)-1 {
			style = "B"
		}
		doc.SetFont("Helvetica", style, 11)
		doc.CellFormat(150, 6, tr(t.label), "", 0, "R", false, 0, "")
		doc.CellFormat(40, 6, tr(t.value), "", 1, "R", false, 0, "")
	}

	doc.Ln(4)
	doc.SetFont("Helvetica", "", 9)
	doc.Cell(0, 5, tr(fmt.Sprintf("Generado: %s", g.Now().Format("02/01/2006 15:04"))))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		log.Printf("quote pdf: print output failed: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(doc *gofpdf.Fpdf, tr func(string) string, title string, entries []quote.Entry) {
	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 7, tr(title))
	doc.Ln(7)
	for _, e := range entries {
		doc.SetFont("Helvetica", "B", 10)
		doc.Cell(30, 5, tr(e.Label+":"))
		doc.SetFont("Helvetica", "", 10)
		doc.Cell(0, 5, tr(trim(e.Value, 80)))
		doc.Ln(5)
	}
	doc.Ln(3)
}

func newDocument(paper pdf.PaperSize) *gofpdf.Fpdf {
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: paper.Width, Ht: paper.Height},
	})
	doc.SetTitle("Cotización", true)
	return doc
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
