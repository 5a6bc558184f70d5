package quote

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericPrefix matches the leading number a browser number parser would
// accept, so "12abc" reads as 12.
var numericPrefix = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

// Number coerces raw text to a finite float. Anything unparsable is 0.
func Number(raw Text) float64 {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return 0
	}
	m := numericPrefix.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Snapshot coerces raw form state into the canonical fields and items. raw is
// not modified; every call returns fresh values.
func Snapshot(raw RawForm) (Fields, []LineItem) {
	rf := raw.Fields
	currency := strings.ToUpper(strings.TrimSpace(string(rf.Currency)))
	if currency == "" {
		currency = DefaultCurrency
	}

	fields := Fields{
		Customer: Customer{
			Name:    string(rf.Requester),
			Phone:   string(rf.Phone),
			Email:   string(rf.Email),
			Address: string(rf.Address),
		},
		Vehicle: Vehicle{
			Make:    string(rf.Make),
			Type:    string(rf.Type),
			Color:   string(rf.Color),
			Model:   string(rf.Model),
			Plate:   string(rf.Plate),
			Mileage: string(rf.Mileage),
		},
		Service:    string(rf.Service),
		Notes:      string(rf.Notes),
		TaxPercent: Number(rf.TaxPercent),
		Currency:   currency,
	}

	items := make([]LineItem, 0, len(raw.Items))
	for _, r := range raw.Items {
		items = append(items, LineItem{
			Quantity:    Number(r.Quantity),
			UnitPrice:   Number(r.UnitPrice),
			Labor:       Number(r.Labor),
			Description: strings.TrimSpace(string(r.Description)),
		})
	}
	return fields, items
}

// View is the output of one render cycle.
type View struct {
	Fields   Fields     `json:"fields"`
	Items    []LineItem `json:"items"`
	Totals   Totals     `json:"totals"`
	Preview  Preview    `json:"preview"`
	Filename string     `json:"filename"`
}

// Build runs snapshot, totals and render over raw.
func Build(raw RawForm) View {
	fields, items := Snapshot(raw)
	totals := Compute(items, fields.TaxRate())
	return View{
		Fields:   fields,
		Items:    items,
		Totals:   totals,
		Preview:  Render(fields, items, totals),
		Filename: ExportFilename(fields.Vehicle.Plate),
	}
}
