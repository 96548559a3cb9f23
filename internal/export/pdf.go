package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/rhpisos/quoting-api/internal/customer"
	"github.com/rhpisos/quoting-api/internal/quote"
)

const (
	pageLeft   = 15.0
	pageRight  = 195.0
	lineHeight = 6.0
	tableBreak = 270.0
)

// PDF renders quotes as A4 documents with gofpdf.
type PDF struct {
	Company Company
}

// NewPDF constructs a PDF generator with the given company header block.
func NewPDF(company Company) *PDF {
	return &PDF{Company: company}
}

// Generate renders the quote. The layout is a header with the company block
// and quote number, the customer block, the line-item table and the totals,
// closed by the terms text. Long tables flow onto extra pages with the table
// header repeated.
func (g *PDF) Generate(q quote.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Presupuesto "+q.Number, false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	y := g.header(pdf, tr, q)
	y = g.customerBlock(pdf, tr, q, y)
	y = g.itemsTable(pdf, tr, q, y)
	y = g.totalsBlock(pdf, tr, q, y)
	g.termsBlock(pdf, tr, q, y)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *PDF) header(pdf *gofpdf.Fpdf, tr func(string) string, q quote.Quote) float64 {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(pageLeft, 20, tr(g.Company.Name))
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(pageLeft, 26, tr(g.Company.Address))
	pdf.Text(pageLeft, 31, tr("Tel: "+g.Company.Phone))
	pdf.Text(pageLeft, 36, tr("Email: "+g.Company.Email))

	pdf.SetFont("Helvetica", "B", 24)
	rightText(pdf, 22, "PRESUPUESTO")
	pdf.SetFont("Helvetica", "B", 10)
	rightText(pdf, 30, tr("N° "+q.Number))
	pdf.SetFont("Helvetica", "", 10)
	rightText(pdf, 36, "FECHA: "+formatDate(q.Customer.Date))

	pdf.SetDrawColor(156, 163, 175)
	pdf.SetLineWidth(0.5)
	pdf.Line(pageLeft, 42, pageRight, 42)
	return 50
}

func (g *PDF) customerBlock(pdf *gofpdf.Fpdf, tr func(string) string, q quote.Quote, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(pageLeft, y, "Datos del Cliente")
	y += 8

	left := [][2]string{
		{"Razón Social:", q.Customer.CompanyName},
		{"CUIT:", q.Customer.TaxID},
		{"Domicilio:", q.Customer.Address},
		{"Localidad:", q.Customer.Locality},
		{"Provincia:", q.Customer.Province},
	}
	right := [][2]string{
		{"Condición IVA:", taxCategoryLabel(q.Customer.TaxCategory)},
		{"Teléfono:", q.Customer.Phone},
		{"Email:", q.Customer.Email},
		{"Observaciones:", q.Customer.Notes},
	}
	leftY := fieldColumn(pdf, tr, pageLeft, y, left)
	rightY := fieldColumn(pdf, tr, 110, y, right)
	if leftY > rightY {
		return leftY + 6
	}
	return rightY + 6
}

func fieldColumn(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, fields [][2]string) float64 {
	pdf.SetFontSize(10)
	for _, f := range fields {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(x, y, tr(f[0]))
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(x+32, y, tr(f[1]))
		y += lineHeight
	}
	return y
}

func (g *PDF) itemsTable(pdf *gofpdf.Fpdf, tr func(string) string, q quote.Quote, y float64) float64 {
	y = tableHeader(pdf, y)
	pdf.SetFont("Helvetica", "", 9)
	for _, item := range q.Items {
		if y > tableBreak {
			pdf.AddPage()
			y = tableHeader(pdf, 20)
			pdf.SetFont("Helvetica", "", 9)
		}
		desc := item.Description
		if item.MaterialCode != "" {
			desc = item.MaterialCode + " - " + desc
		}
		pdf.Text(pageLeft, y, tr(truncate(desc, 48)))
		rightTextAt(pdf, 120, y, item.Quantity.String())
		rightTextAt(pdf, 150, y, formatMoney(item.UnitPrice))
		rightTextAt(pdf, 163, y, item.DiscountPct.String()+"%")
		rightTextAt(pdf, pageRight, y, formatMoney(item.Subtotal))
		y += lineHeight
	}
	return y + 4
}

func tableHeader(pdf *gofpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(pageLeft, y, "Descripción")
	rightTextAt(pdf, 120, y, "Cant.")
	rightTextAt(pdf, 150, y, "P. Unitario")
	rightTextAt(pdf, 163, y, "Dto.")
	rightTextAt(pdf, pageRight, y, "Subtotal")
	pdf.SetDrawColor(156, 163, 175)
	pdf.Line(pageLeft, y+2, pageRight, y+2)
	return y + 8
}

func (g *PDF) totalsBlock(pdf *gofpdf.Fpdf, tr func(string) string, q quote.Quote, y float64) float64 {
	if y > tableBreak-40 {
		pdf.AddPage()
		y = 20
	}
	labelX := 140.0
	rows := [][2]string{
		{"Cantidad de items:", q.ItemCount.String()},
		{"Subtotal:", formatMoney(q.Subtotal)},
	}
	if q.DiscountPct.Sign() > 0 {
		rows = append(rows,
			[2]string{"Descuento (" + q.DiscountPct.String() + "%):", "-" + formatMoney(q.DiscountAmount)},
			[2]string{"Precio neto:", formatMoney(q.NetPrice)})
	}
	rows = append(rows, [2]string{"IVA (" + q.TaxPct.String() + "%):", formatMoney(q.TaxAmount)})

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.Text(labelX, y, tr(row[0]))
		rightTextAt(pdf, pageRight, y, row[1])
		y += lineHeight
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(labelX, y+1, "Total:")
	rightTextAt(pdf, pageRight, y+1, formatMoney(q.Total))
	return y + 12
}

func (g *PDF) termsBlock(pdf *gofpdf.Fpdf, tr func(string) string, q quote.Quote, y float64) {
	if q.Terms == "" && q.DueDate == "" && q.Seller == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(pageLeft, y, "Condiciones")
	y += lineHeight
	pdf.SetFont("Helvetica", "", 9)
	if q.Seller != "" {
		pdf.Text(pageLeft, y, tr("Vendedor: "+q.Seller))
		y += lineHeight
	}
	if q.DueDate != "" {
		pdf.Text(pageLeft, y, tr("Válido hasta: "+formatDate(q.DueDate)))
		y += lineHeight
	}
	for _, line := range strings.Split(q.Terms, "\n") {
		pdf.Text(pageLeft, y, tr(line))
		y += lineHeight - 1
	}
}

func rightText(pdf *gofpdf.Fpdf, y float64, s string) {
	rightTextAt(pdf, pageRight, y, s)
}

func rightTextAt(pdf *gofpdf.Fpdf, x, y float64, s string) {
	pdf.Text(x-pdf.GetStringWidth(s), y, s)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func taxCategoryLabel(c customer.TaxCategory) string {
	switch c {
	case customer.RegisteredResponsible:
		return "Responsable Inscripto"
	case customer.SmallTaxpayer:
		return "Monotributista"
	case customer.Exempt:
		return "Exento"
	default:
		return "Consumidor Final"
	}
}

// formatMoney renders an amount the Argentine way: dot thousands separator,
// comma decimals, two decimal places.
func formatMoney(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")
	parts := strings.SplitN(fixed, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	sign := ""
	if neg {
		sign = "-"
	}
	return "$ " + sign + b.String() + "," + decPart
}

// formatDate converts YYYY-MM-DD to DD/MM/YYYY, passing through anything it
// cannot parse.
func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}
