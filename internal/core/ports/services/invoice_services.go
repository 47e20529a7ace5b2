package services

import (
	"context"

	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	"github.com/quillbooks/invoicing_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its line items.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a page of invoices with optional filters.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice creates a new invoice with a server-assigned number.
	// Creating a final invoice decrements stock for physical line items.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// UpdateInvoice updates an invoice's mutable fields. The number is never altered.
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error)

	// SetStatus unconditionally overrides the invoice status (manual UI action).
	// Reconciliation remains the authoritative automatic path.
	SetStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, userID string) (*domain.Invoice, error)

	// ConvertToFinal converts a pro-forma into a final invoice, at most once.
	ConvertToFinal(ctx context.Context, proformaID string, userID string) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice. Payments and reminders are not cascaded.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
