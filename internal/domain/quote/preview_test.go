package quote

import (
	"reflect"
	"testing"
)

func TestRenderFallbacks(t *testing.T) {
	p := Render(Fields{Currency: "MXN"}, nil, Totals{})

	for _, e := range p.Header() {
		if e.Value != FallbackEmpty {
			t.Errorf("%s = %q, want %q", e.Key, e.Value, FallbackEmpty)
		}
	}
	if p.Notes != FallbackNotes {
		t.Errorf("Notes = %q, want %q", p.Notes, FallbackNotes)
	}
	zero := FormatCurrency(0, "MXN")
	for name, v := range map[string]string{
		"labor": p.Totals.Labor, "parts": p.Totals.Parts, "subtotal": p.Totals.Subtotal,
		"tax": p.Totals.Tax, "total": p.Totals.Total,
	} {
		if v != zero {
			t.Errorf("totals %s = %q, want %q", name, v, zero)
		}
	}
	if len(p.Items) != 0 {
		t.Errorf("Items = %v, want none", p.Items)
	}
}

func TestRenderRows(t *testing.T) {
	items := []LineItem{
		{Quantity: 2, UnitPrice: 100, Labor: 0, Description: "Filtro"},
		{Quantity: 0, UnitPrice: 0, Labor: 250, Description: ""},
		{Quantity: 1.5, UnitPrice: 10},
	}
	p := Render(Fields{Currency: "MXN"}, items, Compute(items, 0))

	want := []PreviewRow{
		{Quantity: "2", Description: "Filtro", UnitPrice: FormatCurrency(100, "MXN"), Amount: FormatCurrency(200, "MXN")},
		{Labor: FormatCurrency(250, "MXN")},
		{Quantity: "1.5", UnitPrice: FormatCurrency(10, "MXN"), Amount: FormatCurrency(15, "MXN")},
	}
	if !reflect.DeepEqual(p.Items, want) {
		t.Errorf("Items =\n%+v\nwant\n%+v", p.Items, want)
	}
}

func TestRenderHeaderOrder(t *testing.T) {
	f := Fields{
		Customer: Customer{Name: " Ana ", Phone: "555"},
		Vehicle:  Vehicle{Plate: "XYZ"},
		Service:  "Frenos",
	}
	h := Render(f, nil, Totals{}).Header()

	keys := make([]string, len(h))
	for i, e := range h {
		keys[i] = e.Key
	}
	want := []string{"requester", "phone", "email", "address", "make", "type", "color", "model", "plate", "mileage", "service"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("header keys = %v, want %v", keys, want)
	}
	if h[0].Value != "Ana" || h[8].Value != "XYZ" || h[10].Value != "Frenos" {
		t.Errorf("header = %+v", h)
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct{ plate, want string }{
		{"", "Cotizacion-vehiculo.pdf"},
		{"   ", "Cotizacion-vehiculo.pdf"},
		{"ABC 123", "Cotizacion-ABC_123.pdf"},
		{" AB  12\tC ", "Cotizacion-AB_12_C.pdf"},
	}
	for _, tt := range tests {
		if got := ExportFilename(tt.plate); got != tt.want {
			t.Errorf("ExportFilename(%q) = %q, want %q", tt.plate, got, tt.want)
		}
	}
}
