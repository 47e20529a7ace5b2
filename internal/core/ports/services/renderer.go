package services

import (
	"github.com/quillbooks/invoicing_backend/internal/core/domain"
)

// DocumentRenderer is the document-rendering collaborator. Purely
// presentational; no core-state side effects.
type DocumentRenderer interface {
	// RenderInvoiceDocument produces a human-readable HTML document for an
	// invoice and its client.
	RenderInvoiceDocument(invoice *domain.Invoice, client *domain.Client) (string, error)

	// RenderReminderNotice produces the subject and body of a payment reminder
	// notice for the given invoice.
	RenderReminderNotice(invoice *domain.Invoice, client *domain.Client, reminderCount int) (subject string, body string, err error)
}
