package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the channel a payment was made through.
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCheck    PaymentMethod = "check"
)

// PaymentStatus represents the settlement state of a payment.
// Only completed payments count towards invoice reconciliation.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment is a payment recorded against an invoice. Payments reference the
// invoice by id but are not owned by it; deleting an invoice leaves its
// payments in place as an audit trail.
type Payment struct {
	PaymentID string          `json:"paymentID"` // Primary key (UUID)
	InvoiceID string          `json:"invoiceID"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Method    PaymentMethod   `json:"method"`
	Status    PaymentStatus   `json:"status"`
	Reference string          `json:"reference"` // Optional external reference
	AuditFields
}
