package quote

import (
	"regexp"
	"strconv"
)

const (
	FallbackEmpty = "-"
	FallbackNotes = "Sin observaciones."
)

// Preview is the display-ready projection of a quote. It is rebuilt in full
// on every change.
type Preview struct {
	Customer []Entry       `json:"customer"`
	Vehicle  []Entry       `json:"vehicle"`
	Service  string        `json:"service"`
	Items    []PreviewRow  `json:"items"`
	Notes    string        `json:"notes"`
	Totals   PreviewTotals `json:"totals"`
	Currency string        `json:"currency"`
}

// Entry is one labelled header value.
type Entry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// PreviewRow is an item row. Zero-valued cells are blank.
type PreviewRow struct {
	Quantity    string `json:"quantity"`
	Description string `json:"description"`
	UnitPrice   string `json:"unit_price"`
	Amount      string `json:"amount"`
	Labor       string `json:"labor"`
}

type PreviewTotals struct {
	Labor    string `json:"labor"`
	Parts    string `json:"parts"`
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// Render maps a snapshot and its totals to display strings.
func Render(f Fields, items []LineItem, t Totals) Preview {
	cur := f.Currency
	p := Preview{
		Customer: []Entry{
			entry("requester", "Solicitante", f.Customer.Name),
			entry("phone", "Celular", f.Customer.Phone),
			entry("email", "Correo", f.Customer.Email),
			entry("address", "Dirección", f.Customer.Address),
		},
		Vehicle: []Entry{
			entry("make", "Marca", f.Vehicle.Make),
			entry("type", "Tipo", f.Vehicle.Type),
			entry("color", "Color", f.Vehicle.Color),
			entry("model", "Modelo", f.Vehicle.Model),
			entry("plate", "Placas", f.Vehicle.Plate),
			entry("mileage", "Kilometraje", f.Vehicle.Mileage),
		},
		Service:  SafeText(f.Service, FallbackEmpty),
		Notes:    SafeText(f.Notes, FallbackNotes),
		Items:    make([]PreviewRow, 0, len(items)),
		Currency: cur,
		Totals: PreviewTotals{
			Labor:    FormatCurrency(t.Labor, cur),
			Parts:    FormatCurrency(t.Parts, cur),
			Subtotal: FormatCurrency(t.Subtotal, cur),
			Tax:      FormatCurrency(t.Tax, cur),
			Total:    FormatCurrency(t.Total, cur),
		},
	}
	for _, it := range items {
		row := PreviewRow{
			Description: SafeText(it.Description, ""),
			UnitPrice:   money(it.UnitPrice, cur),
			Amount:      money(it.LineTotal(), cur),
			Labor:       money(it.Labor, cur),
		}
		if it.Quantity != 0 {
			row.Quantity = strconv.FormatFloat(it.Quantity, 'f', -1, 64)
		}
		p.Items = append(p.Items, row)
	}
	return p
}

// Header returns the customer and vehicle entries followed by the service.
func (p Preview) Header() []Entry {
	out := make([]Entry, 0, len(p.Customer)+len(p.Vehicle)+1)
	out = append(out, p.Customer...)
	out = append(out, p.Vehicle...)
	return append(out, Entry{Key: "service", Label: "Servicio", Value: p.Service})
}

func entry(key, label, value string) Entry {
	return Entry{Key: key, Label: label, Value: SafeText(value, FallbackEmpty)}
}

func money(v float64, cur string) string {
	if v == 0 {
		return ""
	}
	return FormatCurrency(v, cur)
}

var whitespace = regexp.MustCompile(`\s+`)

// ExportFilename is the document name for a vehicle plate.
func ExportFilename(plate string) string {
	return "Cotizacion-" + whitespace.ReplaceAllString(SafeText(plate, "vehiculo"), "_") + ".pdf"
}
