package dto

import (
	"time"

	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines the data needed to record a payment against an
// invoice. No ceiling against the remaining balance is enforced; overpayment
// is accepted.
type CreatePaymentRequest struct {
	InvoiceID string               `json:"invoiceID" binding:"required"`
	Amount    decimal.Decimal      `json:"amount" binding:"required"`
	Date      *time.Time           `json:"date"`
	Method    domain.PaymentMethod `json:"method" binding:"required,paymentmethod"`
	Status    domain.PaymentStatus `json:"status" binding:"omitempty,paymentstatus"`
	Reference string               `json:"reference"`
}

// UpdatePaymentRequest defines the mutable fields of a payment. Changing amount
// or status re-reconciles the parent invoice.
type UpdatePaymentRequest struct {
	Amount    *decimal.Decimal      `json:"amount"`
	Date      *time.Time            `json:"date"`
	Method    *domain.PaymentMethod `json:"method" binding:"omitempty,paymentmethod"`
	Status    *domain.PaymentStatus `json:"status" binding:"omitempty,paymentstatus"`
	Reference *string               `json:"reference"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID string               `json:"paymentID"`
	InvoiceID string               `json:"invoiceID"`
	Amount    decimal.Decimal      `json:"amount"`
	Date      time.Time            `json:"date"`
	Method    domain.PaymentMethod `json:"method"`
	Status    domain.PaymentStatus `json:"status"`
	Reference string               `json:"reference,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID: p.PaymentID,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		Date:      p.Date,
		Method:    p.Method,
		Status:    p.Status,
		Reference: p.Reference,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.LastUpdatedAt,
	}
}

// ListPaymentsResponse wraps the list of payments for an invoice.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}
