// Package ingest converts the extraction collaborator's JSON output into the
// canonical invoice model. The extractor is untyped and its shapes drift
// between invocations; this adapter is the only place that branches on shape.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Ybranco/soprema-reconquest/internal/common"
	"github.com/Ybranco/soprema-reconquest/internal/model"
)

// flexBool accepts JSON booleans as well as the "true"/"false" strings the
// extractor sometimes emits.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = flexBool(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			*b = false
			return nil
		}
		*b = flexBool(parsed)
		return nil
	}

	*b = false
	return nil
}

// flexFloat accepts numbers, numeric strings and null; anything else is zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = flexFloat(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat(parsed)
		return nil
	}

	*f = 0
	return nil
}

type rawLine struct {
	Designation  string    `json:"designation"`
	Name         string    `json:"name"`
	Nom          string    `json:"nom"`
	Reference    string    `json:"reference"`
	Brand        string    `json:"brand"`
	Marque       string    `json:"marque"`
	Type         string    `json:"type"`
	TotalPrice   flexFloat `json:"totalPrice"`
	TotalAlt     flexFloat `json:"total_price"`
	IsSoprema    flexBool  `json:"isSoprema"`
	IsCompetitor flexBool  `json:"isCompetitor"`
}

type rawInvoice struct {
	ID            string          `json:"id"`
	Number        string          `json:"invoiceNumber"`
	NumberAlt     string          `json:"number"`
	Client        json.RawMessage `json:"client"`
	ClientName    string          `json:"clientName"`
	CustomerName  string          `json:"customerName"`
	Supplier      string          `json:"supplier"`
	Products      []rawLine       `json:"products"`
	TotalAmount   flexFloat       `json:"totalAmount"`
	TotalAlt      flexFloat       `json:"total_amount"`
	ClientAddress string          `json:"clientAddress"`
}

// ParseInvoices decodes either a single invoice object or an array of them.
func ParseInvoices(data []byte) ([]model.Invoice, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, common.ErrInvalidInvoice
	}

	if trimmed[0] == '[' {
		var raws []rawInvoice
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidInvoice, err)
		}
		invoices := make([]model.Invoice, 0, len(raws))
		for i := range raws {
			invoices = append(invoices, convertInvoice(raws[i]))
		}
		return invoices, nil
	}

	var raw rawInvoice
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInvoice, err)
	}
	return []model.Invoice{convertInvoice(raw)}, nil
}

func convertInvoice(raw rawInvoice) model.Invoice {
	invoice := model.Invoice{
		ID:          raw.ID,
		Number:      firstNonEmpty(raw.Number, raw.NumberAlt),
		Supplier:    raw.Supplier,
		TotalAmount: float64(raw.TotalAmount) + float64(raw.TotalAlt),
	}

	name, address := resolveClient(raw)
	invoice.Client = model.Client{Name: name, Address: address}

	if len(raw.Products) > 0 {
		invoice.Products = make([]model.InvoiceLine, 0, len(raw.Products))
		for _, l := range raw.Products {
			invoice.Products = append(invoice.Products, convertLine(l))
		}
	}
	return invoice
}

func convertLine(raw rawLine) model.InvoiceLine {
	line := model.InvoiceLine{
		Designation:  firstNonEmpty(raw.Designation, raw.Name, raw.Nom),
		Reference:    raw.Reference,
		Brand:        firstNonEmpty(raw.Brand, raw.Marque),
		TotalPrice:   float64(raw.TotalPrice) + float64(raw.TotalAlt),
		IsSoprema:    bool(raw.IsSoprema),
		IsCompetitor: bool(raw.IsCompetitor),
	}

	switch strings.ToLower(strings.TrimSpace(raw.Type)) {
	case string(model.ProductTypeSoprema):
		line.Type = model.ProductTypeSoprema
	case string(model.ProductTypeCompetitor):
		line.Type = model.ProductTypeCompetitor
	}
	return line
}

// resolveClient tries the structured client object's name, then the client
// string, then the flat clientName and customerName fields.
func resolveClient(raw rawInvoice) (name, address string) {
	if len(raw.Client) > 0 {
		var obj struct {
			Name    string `json:"name"`
			Nom     string `json:"nom"`
			Address string `json:"address"`
		}
		if err := json.Unmarshal(raw.Client, &obj); err == nil {
			name = firstNonEmpty(obj.Name, obj.Nom)
			address = obj.Address
		}
		if name == "" {
			var s string
			if err := json.Unmarshal(raw.Client, &s); err == nil {
				name = s
			}
		}
	}

	name = firstNonEmpty(name, raw.ClientName, raw.CustomerName)
	address = firstNonEmpty(address, raw.ClientAddress)
	return strings.TrimSpace(name), address
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
