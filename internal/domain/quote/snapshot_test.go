package quote

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		raw  Text
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"12", 12},
		{" 3.5 ", 3.5},
		{"12abc", 12},
		{"abc", 0},
		{".5", 0.5},
		{"-4", -4},
		{"1,5", 1},
		{"1e3", 1000},
		{"1e999", 0},
		{"NaN", 0},
		{"Infinity", 0},
	}
	for _, tt := range tests {
		if got := Number(tt.raw); got != tt.want {
			t.Errorf("Number(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestSnapshotCoercion(t *testing.T) {
	raw := RawForm{
		Fields: RawFields{Requester: "Ana", Plate: "ABC 123", TaxPercent: "16", Currency: " "},
		Items: []RawItem{
			{Quantity: "2", Description: "  Balatas  ", UnitPrice: "450.5", Labor: "x"},
			{Quantity: "", Description: "", UnitPrice: "", Labor: ""},
		},
	}
	fields, items := Snapshot(raw)

	if fields.TaxPercent != 16 || fields.TaxRate() != 0.16 {
		t.Errorf("tax = %v (%v), want 16 (0.16)", fields.TaxPercent, fields.TaxRate())
	}
	if fields.Currency != DefaultCurrency {
		t.Errorf("Currency = %q, want %q", fields.Currency, DefaultCurrency)
	}
	if fields.Customer.Name != "Ana" || fields.Vehicle.Plate != "ABC 123" {
		t.Errorf("fields = %+v", fields)
	}

	want := []LineItem{
		{Quantity: 2, UnitPrice: 450.5, Labor: 0, Description: "Balatas"},
		{},
	}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("items = %+v, want %+v", items, want)
	}
	if raw.Items[0].Description != "  Balatas  " {
		t.Errorf("Snapshot mutated its input: %q", raw.Items[0].Description)
	}
}

func TestBuildIdempotent(t *testing.T) {
	raw := RawForm{
		Fields: RawFields{Make: "Nissan", TaxPercent: "16", Notes: "Urgente"},
		Items:  []RawItem{{Quantity: "1", Description: "Afinación", UnitPrice: "1200", Labor: "350"}},
	}
	a, b := Build(raw), Build(raw)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Build is not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestTextUnmarshal(t *testing.T) {
	var form RawForm
	body := `{"fields":{"tax_percent":16,"currency":"USD","notes":null},"items":[{"quantity":2,"unit_price":"9.5"}]}`
	if err := json.Unmarshal([]byte(body), &form); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if form.Fields.TaxPercent != "16" || form.Fields.Currency != "USD" || form.Fields.Notes != "" {
		t.Errorf("fields = %+v", form.Fields)
	}
	if form.Items[0].Quantity != "2" || form.Items[0].UnitPrice != "9.5" {
		t.Errorf("items = %+v", form.Items)
	}
}
