package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quillbooks/invoicing_backend/internal/apperrors"
	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	portsrepo "github.com/quillbooks/invoicing_backend/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/invoicing_backend/internal/core/ports/services"
	"github.com/quillbooks/invoicing_backend/internal/dto"
	"github.com/quillbooks/invoicing_backend/internal/middleware"
)

// paymentService records payments and derives the parent invoice's status from
// the set of completed payments against it.
type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryWithTx
	invoiceRepo portsrepo.InvoiceRepositoryFacade
}

// NewPaymentService creates a new payment service.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryWithTx, invoiceRepo portsrepo.InvoiceRepositoryFacade) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) RecordPayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.invoiceRepo.FindInvoiceByID(ctx, req.InvoiceID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invoice %s not found", apperrors.ErrValidation, req.InvoiceID)
		}
		return nil, err
	}

	now := time.Now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	status := req.Status
	if status == "" {
		status = domain.PaymentStatusCompleted
	}

	// No ceiling against the remaining balance: overpayment is accepted.
	payment := domain.Payment{
		PaymentID: uuid.NewString(),
		InvoiceID: req.InvoiceID,
		Amount:    req.Amount,
		Date:      date,
		Method:    req.Method,
		Status:    status,
		Reference: req.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		logger.Error("Failed to save payment in repository", slog.String("error", err.Error()), slog.String("payment_id", payment.PaymentID))
		return nil, err
	}

	// Only completed payments move the invoice; pending and failed ones don't.
	if payment.Status == domain.PaymentStatusCompleted {
		if err := s.reconcileInvoice(ctx, payment.InvoiceID, payment.Date, userID); err != nil {
			return nil, err
		}
	}

	logger.Info("Payment recorded", slog.String("payment_id", payment.PaymentID), slog.String("invoice_id", payment.InvoiceID), slog.String("status", string(payment.Status)))
	return &payment, nil
}

func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find payment by ID in repository", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	payments, err := s.paymentRepo.ListPaymentsByInvoiceID(ctx, invoiceID)
	if err != nil {
		logger.Error("Failed to list payments from repository", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to list payments for invoice %s: %w", invoiceID, err)
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}

func (s *paymentService) UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, userID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	// Amount or status changes can alter the completed total for the invoice.
	needsReconcile := false
	if req.Amount != nil && !req.Amount.Equal(payment.Amount) {
		payment.Amount = *req.Amount
		needsReconcile = true
	}
	if req.Status != nil && *req.Status != payment.Status {
		payment.Status = *req.Status
		needsReconcile = true
	}
	if req.Date != nil {
		payment.Date = *req.Date
	}
	if req.Method != nil {
		payment.Method = *req.Method
	}
	if req.Reference != nil {
		payment.Reference = *req.Reference
	}
	payment.LastUpdatedAt = time.Now()
	payment.LastUpdatedBy = userID

	if err := s.paymentRepo.UpdatePayment(ctx, *payment); err != nil {
		logger.Error("Failed to update payment in repository", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return nil, err
	}

	if needsReconcile {
		if err := s.reconcileInvoice(ctx, payment.InvoiceID, payment.Date, userID); err != nil {
			return nil, err
		}
	}

	logger.Info("Payment updated", slog.String("payment_id", paymentID))
	return payment, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, paymentID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}

	if err := s.paymentRepo.DeletePayment(ctx, paymentID); err != nil {
		logger.Error("Failed to delete payment in repository", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return err
	}

	// Removing a completed payment can drop the invoice back to
	// partially_paid or sent.
	if payment.Status == domain.PaymentStatusCompleted {
		if err := s.reconcileInvoice(ctx, payment.InvoiceID, payment.Date, userID); err != nil {
			return err
		}
	}

	logger.Info("Payment deleted", slog.String("payment_id", paymentID), slog.String("invoice_id", payment.InvoiceID))
	return nil
}

// reconcileInvoice recomputes the invoice status from the sum of completed
// payments. The whole sequence runs in one transaction with the invoice row
// locked, so two concurrent payments cannot produce a lost update.
func (s *paymentService) reconcileInvoice(ctx context.Context, invoiceID string, triggerDate time.Time, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	tx, err := s.paymentRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reconciliation for invoice %s: %w", invoiceID, err)
	}
	defer s.paymentRepo.Rollback(ctx, tx)

	invoice, err := s.invoiceRepo.FindInvoiceForUpdate(ctx, tx, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// The invoice was deleted while its payments remained; nothing to
			// reconcile against.
			logger.Warn("Invoice not found during reconciliation, skipping", slog.String("invoice_id", invoiceID))
			return nil
		}
		return fmt.Errorf("failed to lock invoice %s for reconciliation: %w", invoiceID, err)
	}

	totalPaid, err := s.paymentRepo.SumCompletedByInvoiceInTx(ctx, tx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to sum completed payments for invoice %s: %w", invoiceID, err)
	}

	newStatus := invoice.ReconcileStatus(totalPaid)
	var paymentDate *time.Time
	if newStatus == domain.InvoiceStatusPaid {
		paymentDate = &triggerDate
	}

	if err := s.invoiceRepo.UpdateInvoiceStatusInTx(ctx, tx, invoiceID, newStatus, paymentDate, userID, now); err != nil {
		return fmt.Errorf("failed to update invoice %s during reconciliation: %w", invoiceID, err)
	}

	if err := s.paymentRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit reconciliation for invoice %s: %w", invoiceID, err)
	}

	logger.Info("Invoice reconciled",
		slog.String("invoice_id", invoiceID),
		slog.String("status", string(newStatus)),
		slog.String("total_paid", totalPaid.String()))
	return nil
}
