package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod mirrors domain.PaymentMethod for DB storage.
type PaymentMethod string

// PaymentStatus mirrors domain.PaymentStatus for DB storage.
type PaymentStatus string

// Payment represents a payment row recorded against an invoice.
type Payment struct {
	PaymentID string          `db:"payment_id"`
	InvoiceID string          `db:"invoice_id"`
	Amount    decimal.Decimal `db:"amount"`
	Date      time.Time       `db:"date"`
	Method    PaymentMethod   `db:"method"`
	Status    PaymentStatus   `db:"status"`
	Reference string          `db:"reference"` // Nullable
	AuditFields
}
