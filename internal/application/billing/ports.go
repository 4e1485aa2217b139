package billing

import (
	"context"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
)

// RenderResult what the renderer produced.
type RenderResult struct {
	Path  string // public path served by the API, e.g. /invoices/invoice-abc-1718822400000.pdf
	File  string // absolute path of the artifact on disk
	Pages int
}

// InvoiceRenderer draws the order invoice PDF and persists the artifact.
// Every call produces a fresh, uniquely named file.
type InvoiceRenderer interface {
	Render(ctx context.Context, order *entity.Order, customer *entity.User) (*RenderResult, error)
}

// PackingSlipGenerator produces the warehouse packing slip for fulfilment.
type PackingSlipGenerator interface {
	PackingSlip(order *entity.Order, customer *entity.User) ([]byte, error)
}

// Mailer sends the order confirmation with the invoice attached.
type Mailer interface {
	SendOrderInvoice(to, name string, order *entity.Order, attachment string) error
}
