// Package export renders a computed quote into the downloadable document the
// operator hands to the customer.
package export

import (
	"strings"

	"github.com/rhpisos/quoting-api/internal/quote"
)

// Generator turns a computed quote into document bytes.
type Generator interface {
	Generate(q quote.Quote) ([]byte, error)
}

// Company is the static header block printed on every document.
type Company struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// Filename builds the download name for a quote document. The customer name
// is truncated to 20 characters with whitespace collapsed to underscores.
func Filename(q quote.Quote) string {
	name := strings.Join(strings.Fields(q.Customer.CompanyName), "_")
	if r := []rune(name); len(r) > 20 {
		name = string(r[:20])
	}
	return "Presupuesto_" + q.Number + "_" + name + ".pdf"
}
