package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"cotizador/go_backend/internal/domain/quote"
	"cotizador/go_backend/internal/domain/quote/export"
	"cotizador/go_backend/internal/domain/quote/pdf"
)

type ExportResponse struct {
	File  string      `json:"file"`
	Path  string      `json:"path"`
	Mode  export.Mode `json:"mode"`
	Pages int         `json:"pages"`
}

type PagesResponse struct {
	Paper pdf.PaperSize `json:"paper"`
	Pages []pdf.Page    `json:"pages"`
}

// decodeForm reads the posted form state. A blank currency takes the
// configured default.
func (h *Handlers) decodeForm(w http.ResponseWriter, r *http.Request) (quote.RawForm, bool) {
	var form quote.RawForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		log.Printf("quote: bad request: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return form, false
	}
	if strings.TrimSpace(string(form.Fields.Currency)) == "" {
		form.Fields.Currency = quote.Text(h.Cfg.DefaultCurrency)
	}
	return form, true
}

func (h *Handlers) PreviewQuote(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, quote.Build(form))
}

func (h *Handlers) QuotePages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sw, errW := strconv.ParseFloat(q.Get("surface_width"), 64)
	sh, errH := strconv.ParseFloat(q.Get("surface_height"), 64)
	if errW != nil || errH != nil {
		http.Error(w, "surface_width and surface_height are required", http.StatusBadRequest)
		return
	}
	pages, err := pdf.Paginate(sw, sh, h.Paper.Width, h.Paper.Height)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, PagesResponse{Paper: h.Paper, Pages: pages})
}

// ExportQuote renders the posted form and delivers the document. With
// EXPORT_DIR set the document is stored there and described in JSON;
// otherwise it is sent back as a download.
func (h *Handlers) ExportQuote(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	view := quote.Build(form)

	res, err := h.Exporter.Export(r.Context(), view.Preview, view.Filename)
	if err != nil {
		log.Printf("quote export: file=%s failed: %v", view.Filename, err)
		status := http.StatusInternalServerError
		if errors.Is(err, pdf.ErrInvalidGeometry) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, "export failed", status)
		return
	}

	if h.Cfg.ExportDir != "" {
		fs := export.NewFileSink(h.Cfg.ExportDir)
		if err := export.Deliver(r.Context(), h.sink(fs), res); err != nil {
			log.Printf("quote export: %v", err)
			http.Error(w, "export write failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, ExportResponse{
			File:  res.Filename,
			Path:  fs.Path(res.Filename),
			Mode:  res.Mode,
			Pages: res.Pages,
		})
		return
	}

	if err := export.Deliver(r.Context(), h.sink(export.DownloadSink{W: w}), res); err != nil {
		// headers are already on the wire
		log.Printf("quote export: %v", err)
	}
}
