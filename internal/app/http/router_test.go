package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cotizador/go_backend/internal/app/config"
	"cotizador/go_backend/internal/app/http/handlers"
	"cotizador/go_backend/internal/domain/quote"
)

func testConfig() config.Config {
	return config.Config{
		CORSAllowOrigin: "*",
		DefaultCurrency: "MXN",
		PaperSize:       "A4",
		CaptureWidth:    600,
		CaptureScale:    1,
	}
}

const sampleBody = `{
	"fields": {"requester": "Ana", "plate": "ABC 123", "tax_percent": "16", "currency": ""},
	"items": [
		{"quantity": "2", "description": "Balatas", "unit_price": "450", "labor": "300"},
		{"quantity": 1, "description": "Aceite", "unit_price": 200, "labor": ""}
	]
}`

func TestHealth(t *testing.T) {
	srv := NewRouter(testConfig(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("GET /health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestPreviewQuote(t *testing.T) {
	srv := NewRouter(testConfig(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/quotes/preview", strings.NewReader(sampleBody)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var view quote.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Totals.Subtotal != 1400 || view.Fields.Currency != "MXN" {
		t.Errorf("view = %+v", view)
	}
	if view.Filename != "Cotizacion-ABC_123.pdf" {
		t.Errorf("Filename = %q", view.Filename)
	}
	if len(view.Preview.Items) != 2 || view.Preview.Items[1].Description != "Aceite" {
		t.Errorf("rows = %+v", view.Preview.Items)
	}
}

func TestPreviewQuoteBadRequest(t *testing.T) {
	srv := NewRouter(testConfig(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/quotes/preview", strings.NewReader("{")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestQuotePages(t *testing.T) {
	srv := NewRouter(testConfig(), nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/quotes/pages?surface_width=210&surface_height=600", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp handlers.PagesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Pages) != 3 || resp.Paper.Name != "A4" {
		t.Errorf("pages = %d paper = %+v, want 3 on A4", len(resp.Pages), resp.Paper)
	}

	for _, q := range []string{"", "?surface_width=0&surface_height=10", "?surface_width=x&surface_height=10"} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/quotes/pages"+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET pages%s = %d, want 400", q, rec.Code)
		}
	}
}

func TestExportQuoteDownload(t *testing.T) {
	srv := NewRouter(testConfig(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/quotes/export", strings.NewReader(sampleBody)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Cotizacion-ABC_123.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body is not a PDF")
	}
}

func TestExportQuoteToDir(t *testing.T) {
	cfg := testConfig()
	cfg.ExportDir = t.TempDir()
	srv := NewRouter(cfg, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/quotes/export", strings.NewReader(sampleBody)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp handlers.ExportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Mode != "paged" || resp.Pages < 1 {
		t.Errorf("response = %+v", resp)
	}
	if resp.Path != filepath.Join(cfg.ExportDir, "Cotizacion-ABC_123.pdf") {
		t.Errorf("Path = %q", resp.Path)
	}
	if b, err := os.ReadFile(resp.Path); err != nil || !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Errorf("stored document unreadable: %v", err)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := NewRouter(testConfig(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/v1/quotes/export", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
