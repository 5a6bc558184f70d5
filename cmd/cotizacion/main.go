// Command cotizacion renders quote form files offline: it prints the
// preview or exports the paginated PDF into a directory.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"cotizador/go_backend/internal/domain/quote"
	"cotizador/go_backend/internal/domain/quote/export"
	"cotizador/go_backend/internal/domain/quote/pdf"
	pdfgen "cotizador/go_backend/internal/domain/quote/pdf/gofpdf"
	"cotizador/go_backend/internal/domain/quote/raster"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "cotizacion",
		Usage: "render and export vehicle service quotes",
		Commands: []*cli.Command{
			{
				Name:   "preview",
				Usage:  "print the rendered preview",
				Flags:  []cli.Flag{inFlag()},
				Action: previewAction,
			},
			{
				Name:  "export",
				Usage: "export the quote as a paginated PDF",
				Flags: []cli.Flag{
					inFlag(),
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: ".", Usage: "output directory"},
					&cli.StringFlag{Name: "paper", Value: pdf.A4.Name, Usage: "A4 or Letter"},
					&cli.IntFlag{Name: "width", Value: raster.DefaultOptions().Width, Usage: "capture width in pixels"},
					&cli.Float64Flag{Name: "scale", Value: raster.DefaultOptions().Scale, Usage: "capture scale"},
					&cli.BoolFlag{Name: "print", Usage: "skip the capture and use the print layout"},
				},
				Action: exportAction,
			},
		},
	}
}

func inFlag() cli.Flag {
	return &cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "quote form JSON (- for stdin)", Required: true}
}

func loadEditor(path string, stdin io.Reader) (*quote.Editor, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	var form quote.RawForm
	if err := json.Unmarshal(b, &form); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	e := quote.NewEditor()
	e.Load(form)
	return e, nil
}

func previewAction(c *cli.Context) error {
	e, err := loadEditor(c.String("in"), c.App.Reader)
	if err != nil {
		return err
	}
	p := e.View().Preview

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	for _, en := range p.Header() {
		fmt.Fprintf(w, "%s:\t%s\n", en.Label, en.Value)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cant.\tDescripción\tP. unitario\tImporte\tM.O.")
	for _, r := range p.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Quantity, r.Description, r.UnitPrice, r.Amount, r.Labor)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Observaciones:\t%s\n", p.Notes)
	fmt.Fprintf(w, "Mano de obra:\t%s\n", p.Totals.Labor)
	fmt.Fprintf(w, "Refacciones:\t%s\n", p.Totals.Parts)
	fmt.Fprintf(w, "Subtotal:\t%s\n", p.Totals.Subtotal)
	fmt.Fprintf(w, "IVA:\t%s\n", p.Totals.Tax)
	fmt.Fprintf(w, "Total:\t%s\n", p.Totals.Total)
	return w.Flush()
}

func exportAction(c *cli.Context) error {
	paper, ok := pdf.PaperSizeByName(c.String("paper"))
	if !ok {
		return cli.Exit(fmt.Sprintf("unknown paper size %q", c.String("paper")), 2)
	}
	e, err := loadEditor(c.String("in"), c.App.Reader)
	if err != nil {
		return err
	}

	ex := &export.Exporter{Print: pdfgen.New(paper), Paper: paper}
	if !c.Bool("print") {
		ex.Capture = raster.NewCapturer(raster.Options{Width: c.Int("width"), Scale: c.Float64("scale")})
		ex.Writer = pdfgen.NewPagedWriter()
	}

	view := e.View()
	res, err := ex.Export(c.Context, view.Preview, view.Filename)
	if err != nil {
		return err
	}
	sink := export.NewFileSink(c.String("out"))
	if err := export.Deliver(c.Context, sink, res); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s mode=%s pages=%d\n", sink.Path(res.Filename), res.Mode, res.Pages)
	return nil
}
