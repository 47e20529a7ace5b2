package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType mirrors domain.InvoiceType for DB storage.
type InvoiceType string

// InvoiceStatus mirrors domain.InvoiceStatus for DB storage.
type InvoiceStatus string

// Invoice represents an invoice row. Line items live in invoice_items and are
// loaded alongside the invoice.
type Invoice struct {
	InvoiceID        string          `db:"invoice_id"`
	Number           string          `db:"number"` // Unique, written once at insert
	Type             InvoiceType     `db:"type"`
	ClientID         string          `db:"client_id"`
	Subtotal         decimal.Decimal `db:"subtotal"`
	Tax              decimal.Decimal `db:"tax"`
	Total            decimal.Decimal `db:"total"`
	Status           InvoiceStatus   `db:"status"`
	IssueDate        time.Time       `db:"issue_date"`
	DueDate          time.Time       `db:"due_date"`
	PaymentDate      *time.Time      `db:"payment_date"` // Nullable
	ConvertedToFinal bool            `db:"converted_to_final"`
	FinalInvoiceID   string          `db:"final_invoice_id"` // Nullable
	Notes            string          `db:"notes"`
	AuditFields
}

// InvoiceItem represents a single line item row belonging to an invoice.
type InvoiceItem struct {
	InvoiceID   string          `db:"invoice_id"`
	LineNo      int             `db:"line_no"` // Preserves item ordering
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"product_name"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Quantity    int64           `db:"quantity"`
	Total       decimal.Decimal `db:"total"`
}
