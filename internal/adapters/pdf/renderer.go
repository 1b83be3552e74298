package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
)

// Renderer produces printable estimate and invoice documents.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

var _ portssvc.PDFRenderer = (*Renderer)(nil)

func (r *Renderer) RenderEstimate(company *domain.Company, customer *domain.Customer, estimate *domain.Estimate) ([]byte, error) {
	doc := documentData{
		Kind:      "ESTIMATE",
		Number:    estimate.EstimateNumber,
		Title:     estimate.Title,
		Date:      estimate.CreatedAt,
		DateLabel: "Valid until",
		DateValue: estimate.ValidUntil,
		LineItems: estimate.LineItems,
		Subtotal:  estimate.Subtotal,
		TaxRate:   estimate.TaxRate,
		Tax:       estimate.Tax,
		Total:     estimate.Total,
		Notes:     estimate.Notes,
	}
	return render(company, customer, doc)
}

func (r *Renderer) RenderInvoice(company *domain.Company, customer *domain.Customer, invoice *domain.Invoice) ([]byte, error) {
	doc := documentData{
		Kind:       "INVOICE",
		Number:     invoice.InvoiceNumber,
		Title:      invoice.Title,
		Date:       invoice.CreatedAt,
		DateLabel:  "Due date",
		DateValue:  invoice.DueDate,
		LineItems:  invoice.LineItems,
		Subtotal:   invoice.Subtotal,
		TaxRate:    invoice.TaxRate,
		Tax:        invoice.Tax,
		Total:      invoice.Total,
		AmountPaid: &invoice.AmountPaid,
		Notes:      invoice.Notes,
	}
	return render(company, customer, doc)
}

type documentData struct {
	Kind       string
	Number     string
	Title      string
	Date       time.Time
	DateLabel  string
	DateValue  *time.Time
	LineItems  []domain.LineItem
	Subtotal   decimal.Decimal
	TaxRate    decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	AmountPaid *decimal.Decimal
	Notes      string
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func render(company *domain.Company, customer *domain.Customer, doc documentData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header: document kind and company identity.
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 10, doc.Kind, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, doc.Number, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 5, company.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if company.Address != "" {
		pdf.CellFormat(0, 4, company.Address, "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 4, fmt.Sprintf("%s, %s %s", company.City, company.State, company.Zip), "", 1, "L", false, 0, "")
	}
	if company.Phone != "" {
		pdf.CellFormat(0, 4, company.Phone, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Bill-to block and dates.
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(95, 4, "Bill To", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 4, fmt.Sprintf("Date: %s", doc.Date.Format("Jan 2, 2006")), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(95, 4, customer.FirstName+" "+customer.LastName, "", 0, "L", false, 0, "")
	if doc.DateValue != nil {
		pdf.CellFormat(0, 4, fmt.Sprintf("%s: %s", doc.DateLabel, doc.DateValue.Format("Jan 2, 2006")), "", 1, "R", false, 0, "")
	} else {
		pdf.Ln(4)
	}
	if customer.Address != "" {
		pdf.CellFormat(95, 4, customer.Address, "", 1, "L", false, 0, "")
		pdf.CellFormat(95, 4, fmt.Sprintf("%s, %s %s", customer.City, customer.State, customer.Zip), "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	if doc.Title != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, doc.Title, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	// Line items table.
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(90, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range doc.LineItems {
		pdf.CellFormat(90, 6, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, item.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, money(item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, money(item.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	// Totals.
	totalsRow := func(label, value string, bold bool) {
		if bold {
			pdf.SetFont("Helvetica", "B", 10)
		} else {
			pdf.SetFont("Helvetica", "", 9)
		}
		pdf.CellFormat(145, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, value, "", 1, "R", false, 0, "")
	}
	totalsRow("Subtotal", money(doc.Subtotal), false)
	if !doc.TaxRate.IsZero() {
		totalsRow(fmt.Sprintf("Tax (%s%%)", doc.TaxRate.String()), money(doc.Tax), false)
	}
	totalsRow("Total", money(doc.Total), true)
	if doc.AmountPaid != nil && !doc.AmountPaid.IsZero() {
		totalsRow("Paid", money(*doc.AmountPaid), false)
		totalsRow("Balance Due", money(doc.Total.Sub(*doc.AmountPaid)), true)
	}

	if doc.Notes != "" {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, 5, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, doc.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render %s pdf: %w", doc.Kind, err)
	}
	return buf.Bytes(), nil
}
