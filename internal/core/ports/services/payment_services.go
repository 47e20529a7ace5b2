package services

import (
	"context"

	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	"github.com/quillbooks/invoicing_backend/internal/dto"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a specific payment by its unique identifier.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByInvoice retrieves all payments recorded against an invoice.
	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)
}

// PaymentWriterSvc defines write operations for payment data
type PaymentWriterSvc interface {
	// RecordPayment creates a payment and, when it is completed, reconciles the
	// parent invoice's status.
	RecordPayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error)

	// UpdatePayment updates a payment and re-reconciles the parent invoice
	// whenever the completed total could have changed.
	UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, userID string) (*domain.Payment, error)

	// DeletePayment removes a payment and re-reconciles the parent invoice.
	DeletePayment(ctx context.Context, paymentID string, userID string) error
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
