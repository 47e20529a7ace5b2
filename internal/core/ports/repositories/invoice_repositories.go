package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/quillbooks/invoicing_backend/internal/core/domain"
)

// InvoiceListFilter narrows ListInvoices results. Zero values mean "no filter".
type InvoiceListFilter struct {
	ClientID string
	Type     domain.InvoiceType
	Status   domain.InvoiceStatus
}

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its line items.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoices newest-first using an opaque pagination token.
	ListInvoices(ctx context.Context, filter InvoiceListFilter, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// ListOverdueCandidates retrieves invoices with status in {sent, overdue}
	// whose due date is before the given instant.
	ListOverdueCandidates(ctx context.Context, now time.Time) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice and its items, assigning a fresh
	// immutable number from the invoice number sequence. Any caller-supplied
	// number is ignored. Returns the stored invoice.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error)

	// UpdateInvoice updates an invoice's mutable fields and replaces its items.
	// The number, type and conversion latch are never written by this method.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoiceStatus sets the invoice status and payment date.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, paymentDate *time.Time, userID string, now time.Time) error

	// DeleteInvoice removes the invoice and its items. Payments and reminders
	// referencing the invoice are left in place.
	DeleteInvoice(ctx context.Context, invoiceID string) error

	// SaveConversion durably creates the final invoice (fresh number assigned)
	// and sets the source proforma's conversion latch and back-reference, both
	// within a single transaction. Returns the stored final invoice.
	SaveConversion(ctx context.Context, final domain.Invoice, proformaID string, userID string, now time.Time) (*domain.Invoice, error)
}

// InvoiceTransactionSupport defines invoice operations used inside an external
// transaction, e.g. payment reconciliation.
type InvoiceTransactionSupport interface {
	// FindInvoiceForUpdate retrieves the invoice row and locks it for update.
	// Line items are not loaded. Must be called within a transaction.
	FindInvoiceForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error)

	// UpdateInvoiceStatusInTx sets status and payment date within a transaction.
	UpdateInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus, paymentDate *time.Time, userID string, now time.Time) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
	InvoiceTransactionSupport
}
