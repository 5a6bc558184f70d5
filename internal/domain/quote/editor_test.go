package quote

import (
	"errors"
	"testing"
)

func TestEditorReset(t *testing.T) {
	e := NewEditor()
	if n := len(e.RowIDs()); n != 1 {
		t.Fatalf("rows after reset = %d, want 1", n)
	}
	v := e.View()
	if v.Fields.Currency != DefaultCurrency {
		t.Errorf("Currency = %q, want %q", v.Fields.Currency, DefaultCurrency)
	}
	if len(v.Preview.Items) != 1 || v.Preview.Items[0] != (PreviewRow{}) {
		t.Errorf("preview rows = %+v, want one blank row", v.Preview.Items)
	}
}

func TestEditorRerendersOnEveryChange(t *testing.T) {
	e := NewEditor()
	id := e.RowIDs()[0]

	e.UpdateRow(id, RawItem{Quantity: "2", UnitPrice: "100", Labor: "50"})
	if got := e.View().Totals.Subtotal; got != 250 {
		t.Errorf("Subtotal = %v, want 250", got)
	}

	if err := e.SetField("tax_percent", "16"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if got := e.View().Totals.Total; got != 290 {
		t.Errorf("Total = %v, want 290", got)
	}

	if err := e.SetField("plate", "JAL 44 A"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if got := e.View().Filename; got != "Cotizacion-JAL_44_A.pdf" {
		t.Errorf("Filename = %q", got)
	}

	if err := e.SetField("nope", "x"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("SetField(unknown) err = %v, want ErrUnknownField", err)
	}
}

func TestEditorRemovePreservesOrder(t *testing.T) {
	e := NewEditor()
	e.RemoveRow(e.RowIDs()[0])

	e.AddRow(RawItem{Description: "A"})
	b := e.AddRow(RawItem{Description: "B"})
	e.AddRow(RawItem{Description: "C"})

	if !e.RemoveRow(b) {
		t.Fatal("RemoveRow(B) = false")
	}
	if e.RemoveRow(b) {
		t.Error("RemoveRow on a removed row = true")
	}

	rows := e.View().Preview.Items
	if len(rows) != 2 || rows[0].Description != "A" || rows[1].Description != "C" {
		t.Errorf("rows = %+v, want [A C]", rows)
	}
}

func TestEditorLoad(t *testing.T) {
	raw := RawForm{
		Fields: RawFields{Requester: "Luis", TaxPercent: "8"},
		Items:  []RawItem{{Quantity: "1", UnitPrice: "10"}, {Quantity: "2", UnitPrice: "5"}},
	}
	e := NewEditor()
	e.Load(raw)

	if got := e.View().Totals.Parts; got != 20 {
		t.Errorf("Parts = %v, want 20", got)
	}
	back := e.Raw()
	if back.Fields != raw.Fields || len(back.Items) != 2 {
		t.Errorf("Raw() = %+v", back)
	}
}
