package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByInvoiceID retrieves all payments recorded against an invoice.
	ListPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePayment persists a new payment.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// UpdatePayment updates a payment's amount, status, method, date and reference.
	UpdatePayment(ctx context.Context, payment domain.Payment) error

	// DeletePayment removes a payment.
	DeletePayment(ctx context.Context, paymentID string) error
}

// PaymentTransactionSupport defines payment operations used inside a
// reconciliation transaction.
type PaymentTransactionSupport interface {
	// SumCompletedByInvoiceInTx sums the amounts of completed payments for the
	// invoice within the given transaction.
	SumCompletedByInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string) (decimal.Decimal, error)
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
	PaymentTransactionSupport
}

// PaymentRepositoryWithTx extends PaymentRepositoryFacade with transaction management
type PaymentRepositoryWithTx interface {
	PaymentRepositoryFacade
	TransactionManager
}
