package quote

import (
	"bytes"
	"encoding/json"
)

// DefaultCurrency is used whenever the currency field is left blank.
const DefaultCurrency = "MXN"

// Fields is the coerced header of a quote.
type Fields struct {
	Customer Customer `json:"customer"`
	Vehicle  Vehicle  `json:"vehicle"`

	Service    string  `json:"service"`
	Notes      string  `json:"notes"`
	TaxPercent float64 `json:"tax_percent"`
	Currency   string  `json:"currency"`
}

// TaxRate returns TaxPercent as a fraction (16 -> 0.16).
func (f Fields) TaxRate() float64 { return f.TaxPercent / 100 }

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type Vehicle struct {
	Make    string `json:"make"`
	Type    string `json:"type"`
	Color   string `json:"color"`
	Model   string `json:"model"`
	Plate   string `json:"plate"`
	Mileage string `json:"mileage"`
}

// LineItem is one billable row. Labor is billed on top of the parts amount.
type LineItem struct {
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Labor       float64 `json:"labor"`
	Description string  `json:"description"`
}

// LineTotal is the parts amount of the row. Labor is not included.
func (it LineItem) LineTotal() float64 { return it.Quantity * it.UnitPrice }

// Totals is always derived from the item list and the tax rate.
type Totals struct {
	Labor    float64 `json:"labor"`
	Parts    float64 `json:"parts"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Text is a raw form value. It decodes from a JSON string or a bare JSON
// number so clients can post either; null decodes to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(b)
	return nil
}

// RawFields holds the header inputs exactly as typed.
type RawFields struct {
	Requester  Text `json:"requester"`
	Phone      Text `json:"phone"`
	Email      Text `json:"email"`
	Address    Text `json:"address"`
	Make       Text `json:"make"`
	Type       Text `json:"type"`
	Color      Text `json:"color"`
	Model      Text `json:"model"`
	Plate      Text `json:"plate"`
	Mileage    Text `json:"mileage"`
	Service    Text `json:"service"`
	Notes      Text `json:"notes"`
	TaxPercent Text `json:"tax_percent"`
	Currency   Text `json:"currency"`
}

// Set assigns the field named by its JSON key. It reports false for unknown keys.
func (f *RawFields) Set(key string, value Text) bool {
	switch key {
	case "requester":
		f.Requester = value
	case "phone":
		f.Phone = value
	case "email":
		f.Email = value
	case "address":
		f.Address = value
	case "make":
		f.Make = value
	case "type":
		f.Type = value
	case "color":
		f.Color = value
	case "model":
		f.Model = value
	case "plate":
		f.Plate = value
	case "mileage":
		f.Mileage = value
	case "service":
		f.Service = value
	case "notes":
		f.Notes = value
	case "tax_percent":
		f.TaxPercent = value
	case "currency":
		f.Currency = value
	default:
		return false
	}
	return true
}

// RawItem is one item row exactly as typed.
type RawItem struct {
	Quantity    Text `json:"quantity"`
	Description Text `json:"description"`
	UnitPrice   Text `json:"unit_price"`
	Labor       Text `json:"labor"`
}

// RawForm is the whole form state pulled on every edit.
type RawForm struct {
	Fields RawFields `json:"fields"`
	Items  []RawItem `json:"items"`
}

// DefaultFields is the state of a freshly reset form.
func DefaultFields() RawFields {
	return RawFields{Currency: DefaultCurrency}
}
