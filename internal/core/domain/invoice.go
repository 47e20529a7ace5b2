package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes preliminary pro-forma invoices from final ones.
type InvoiceType string

const (
	InvoiceTypeProforma InvoiceType = "proforma"
	InvoiceTypeFinal    InvoiceType = "final"
)

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
)

// InvoiceItem is a line item on an invoice. Product name and unit price are
// captured at invoicing time; later product edits do not change historical invoices.
type InvoiceItem struct {
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int64           `json:"quantity"`
	Total       decimal.Decimal `json:"total"` // quantity * unitPrice
}

// Invoice represents an invoice within the core domain. Items are embedded and
// owned by the invoice; they have no independent lifecycle.
type Invoice struct {
	InvoiceID        string          `json:"invoiceID"` // Primary key (UUID)
	Number           string          `json:"number"`    // Assigned once at creation, immutable
	Type             InvoiceType     `json:"type"`
	ClientID         string          `json:"clientID"`
	Items            []InvoiceItem   `json:"items"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Tax              decimal.Decimal `json:"tax"`
	Total            decimal.Decimal `json:"total"`
	Status           InvoiceStatus   `json:"status"`
	IssueDate        time.Time       `json:"issueDate"`
	DueDate          time.Time       `json:"dueDate"`
	PaymentDate      *time.Time      `json:"paymentDate"` // Set when fully paid, cleared otherwise
	ConvertedToFinal bool            `json:"convertedToFinal"`
	FinalInvoiceID   string          `json:"finalInvoiceID"` // Back-reference set on the proforma once converted
	Notes            string          `json:"notes"`
	AuditFields
}

// IsConvertible reports whether the invoice is a pro-forma that has not been
// converted yet.
func (i Invoice) IsConvertible() bool {
	return i.Type == InvoiceTypeProforma && !i.ConvertedToFinal
}

// ReconcileStatus derives the invoice status from the sum of completed payments
// against it. A zero completed total reverts to sent, never back to draft.
func (i Invoice) ReconcileStatus(totalPaid decimal.Decimal) InvoiceStatus {
	switch {
	case totalPaid.IsPositive() && totalPaid.GreaterThanOrEqual(i.Total):
		return InvoiceStatusPaid
	case totalPaid.IsPositive():
		return InvoiceStatusPartiallyPaid
	default:
		return InvoiceStatusSent
	}
}
