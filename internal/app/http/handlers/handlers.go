package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"cotizador/go_backend/internal/app/config"
	"cotizador/go_backend/internal/domain/quote/export"
	"cotizador/go_backend/internal/domain/quote/pdf"
	pdfgen "cotizador/go_backend/internal/domain/quote/pdf/gofpdf"
	"cotizador/go_backend/internal/domain/quote/raster"
	"cotizador/go_backend/internal/infra/db/postgres"
)

type Handlers struct {
	DB       *postgres.DB
	Cfg      config.Config
	Paper    pdf.PaperSize
	Exporter *export.Exporter
}

// New wires the export pipeline. db may be nil, in which case exported
// documents are not archived.
func New(db *postgres.DB, cfg config.Config) *Handlers {
	paper, ok := pdf.PaperSizeByName(cfg.PaperSize)
	if !ok {
		log.Printf("config: unknown paper size %q, using %s", cfg.PaperSize, pdf.A4.Name)
		paper = pdf.A4
	}
	return &Handlers{
		DB:    db,
		Cfg:   cfg,
		Paper: paper,
		Exporter: &export.Exporter{
			Capture: raster.NewCapturer(raster.Options{Width: cfg.CaptureWidth, Scale: cfg.CaptureScale}),
			Writer:  pdfgen.NewPagedWriter(),
			Print:   pdfgen.New(paper),
			Paper:   paper,
		},
	}
}

// sink adds the archive copy to primary when a database is configured.
func (h *Handlers) sink(primary export.Sink) export.Sink {
	if h.DB == nil {
		return primary
	}
	return export.Tee{Primary: primary, Archive: h.DB}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("http: encode response failed: %v", err)
	}
}
