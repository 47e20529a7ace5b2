package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/quillbooks/invoicing_backend/internal/apperrors"
	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	portssvc "github.com/quillbooks/invoicing_backend/internal/core/ports/services"
	"github.com/quillbooks/invoicing_backend/internal/core/services"
	"github.com/quillbooks/invoicing_backend/internal/dto"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockInvoiceRepo *MockInvoiceRepository
	service         portssvc.PaymentSvcFacade
	ctx             context.Context
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.service = services.NewPaymentService(suite.mockPaymentRepo, suite.mockInvoiceRepo)
	suite.ctx = context.Background()
}

// expectReconciliation wires the transactional reconciliation sequence: begin,
// lock the invoice, sum completed payments, write the derived status, commit.
func (suite *PaymentServiceTestSuite) expectReconciliation(invoice *domain.Invoice, totalPaid decimal.Decimal, wantStatus domain.InvoiceStatus, wantPaymentDate bool) {
	suite.mockPaymentRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockPaymentRepo.On("Rollback", suite.ctx, nil).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceForUpdate", suite.ctx, nil, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("SumCompletedByInvoiceInTx", suite.ctx, nil, invoice.InvoiceID).Return(totalPaid, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatusInTx", suite.ctx, nil, invoice.InvoiceID, wantStatus, mock.MatchedBy(func(pd *time.Time) bool {
		return (pd != nil) == wantPaymentDate
	}), "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPaymentRepo.On("Commit", suite.ctx, nil).Return(nil).Once()
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_FullAmountMarksPaid() {
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Type:      domain.InvoiceTypeFinal,
		Status:    domain.InvoiceStatusSent,
		Total:     decimal.NewFromInt(500),
	}
	req := dto.CreatePaymentRequest{
		InvoiceID: invoice.InvoiceID,
		Amount:    decimal.NewFromInt(500),
		Method:    domain.PaymentMethodTransfer,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", suite.ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", suite.ctx, mock.AnythingOfType("domain.Payment")).
		Run(func(args mock.Arguments) {
			saved := args.Get(1).(domain.Payment)
			suite.Equal(domain.PaymentStatusCompleted, saved.Status)
			suite.True(saved.Amount.Equal(decimal.NewFromInt(500)))
		}).
		Return(nil).Once()
	suite.expectReconciliation(invoice, decimal.NewFromInt(500), domain.InvoiceStatusPaid, true)

	payment, err := suite.service.RecordPayment(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentStatusCompleted, payment.Status)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_PartialAmountMarksPartiallyPaid() {
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Type:      domain.InvoiceTypeFinal,
		Status:    domain.InvoiceStatusSent,
		Total:     decimal.NewFromInt(500),
	}
	req := dto.CreatePaymentRequest{
		InvoiceID: invoice.InvoiceID,
		Amount:    decimal.NewFromInt(200),
		Method:    domain.PaymentMethodCash,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", suite.ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", suite.ctx, mock.AnythingOfType("domain.Payment")).Return(nil).Once()
	suite.expectReconciliation(invoice, decimal.NewFromInt(200), domain.InvoiceStatusPartiallyPaid, false)

	_, err := suite.service.RecordPayment(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_PendingSkipsReconciliation() {
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Type:      domain.InvoiceTypeFinal,
		Status:    domain.InvoiceStatusSent,
		Total:     decimal.NewFromInt(500),
	}
	req := dto.CreatePaymentRequest{
		InvoiceID: invoice.InvoiceID,
		Amount:    decimal.NewFromInt(500),
		Method:    domain.PaymentMethodTransfer,
		Status:    domain.PaymentStatusPending,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", suite.ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", suite.ctx, mock.AnythingOfType("domain.Payment")).Return(nil).Once()

	payment, err := suite.service.RecordPayment(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentStatusPending, payment.Status)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_InvoiceNotFound() {
	invoiceID := uuid.NewString()
	req := dto.CreatePaymentRequest{
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(100),
		Method:    domain.PaymentMethodCard,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", suite.ctx, invoiceID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RecordPayment(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_OverpaymentStillPaid() {
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Type:      domain.InvoiceTypeFinal,
		Status:    domain.InvoiceStatusPartiallyPaid,
		Total:     decimal.NewFromInt(500),
	}
	req := dto.CreatePaymentRequest{
		InvoiceID: invoice.InvoiceID,
		Amount:    decimal.NewFromInt(700),
		Method:    domain.PaymentMethodTransfer,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", suite.ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", suite.ctx, mock.AnythingOfType("domain.Payment")).Return(nil).Once()
	suite.expectReconciliation(invoice, decimal.NewFromInt(700), domain.InvoiceStatusPaid, true)

	_, err := suite.service.RecordPayment(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestUpdatePayment_AmountChangeReconciles() {
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID: invoiceID,
		Type:      domain.InvoiceTypeFinal,
		Status:    domain.InvoiceStatusPartiallyPaid,
		Total:     decimal.NewFromInt(500),
	}
	existing := &domain.Payment{
		PaymentID: uuid.NewString(),
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(200),
		Date:      time.Now().Add(-time.Hour),
		Method:    domain.PaymentMethodTransfer,
		Status:    domain.PaymentStatusCompleted,
	}
	newAmount := decimal.NewFromInt(500)
	req := dto.UpdatePaymentRequest{Amount: &newAmount}

	suite.mockPaymentRepo.On("FindPaymentByID", suite.ctx, existing.PaymentID).Return(existing, nil).Once()
	suite.mockPaymentRepo.On("UpdatePayment", suite.ctx, mock.AnythingOfType("domain.Payment")).
		Run(func(args mock.Arguments) {
			updated := args.Get(1).(domain.Payment)
			suite.True(updated.Amount.Equal(decimal.NewFromInt(500)))
		}).
		Return(nil).Once()
	suite.expectReconciliation(invoice, decimal.NewFromInt(500), domain.InvoiceStatusPaid, true)

	_, err := suite.service.UpdatePayment(suite.ctx, existing.PaymentID, req, "user-1")

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestUpdatePayment_ReferenceOnlySkipsReconciliation() {
	existing := &domain.Payment{
		PaymentID: uuid.NewString(),
		InvoiceID: uuid.NewString(),
		Amount:    decimal.NewFromInt(200),
		Method:    domain.PaymentMethodTransfer,
		Status:    domain.PaymentStatusCompleted,
	}
	ref := "bank stmt 2026-08"
	req := dto.UpdatePaymentRequest{Reference: &ref}

	suite.mockPaymentRepo.On("FindPaymentByID", suite.ctx, existing.PaymentID).Return(existing, nil).Once()
	suite.mockPaymentRepo.On("UpdatePayment", suite.ctx, mock.AnythingOfType("domain.Payment")).Return(nil).Once()

	updated, err := suite.service.UpdatePayment(suite.ctx, existing.PaymentID, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(ref, updated.Reference)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_CompletedRevertsInvoice() {
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID: invoiceID,
		Type:      domain.InvoiceTypeFinal,
		Status:    domain.InvoiceStatusPaid,
		Total:     decimal.NewFromInt(500),
	}
	existing := &domain.Payment{
		PaymentID: uuid.NewString(),
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(500),
		Date:      time.Now().Add(-time.Hour),
		Status:    domain.PaymentStatusCompleted,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", suite.ctx, existing.PaymentID).Return(existing, nil).Once()
	suite.mockPaymentRepo.On("DeletePayment", suite.ctx, existing.PaymentID).Return(nil).Once()
	// With the only completed payment gone the sum drops to zero and the
	// invoice reverts to sent with no payment date.
	suite.expectReconciliation(invoice, decimal.Zero, domain.InvoiceStatusSent, false)

	err := suite.service.DeletePayment(suite.ctx, existing.PaymentID, "user-1")

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_PendingSkipsReconciliation() {
	existing := &domain.Payment{
		PaymentID: uuid.NewString(),
		InvoiceID: uuid.NewString(),
		Amount:    decimal.NewFromInt(100),
		Status:    domain.PaymentStatusPending,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", suite.ctx, existing.PaymentID).Return(existing, nil).Once()
	suite.mockPaymentRepo.On("DeletePayment", suite.ctx, existing.PaymentID).Return(nil).Once()

	err := suite.service.DeletePayment(suite.ctx, existing.PaymentID, "user-1")

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestReconciliation_DeletedInvoiceIsSkipped() {
	invoiceID := uuid.NewString()
	existing := &domain.Payment{
		PaymentID: uuid.NewString(),
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(500),
		Status:    domain.PaymentStatusCompleted,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", suite.ctx, existing.PaymentID).Return(existing, nil).Once()
	suite.mockPaymentRepo.On("DeletePayment", suite.ctx, existing.PaymentID).Return(nil).Once()
	suite.mockPaymentRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockPaymentRepo.On("Rollback", suite.ctx, nil).Return(nil).Once()
	// Payments outlive their invoice as an audit trail; reconciling against a
	// deleted invoice is a no-op, not an error.
	suite.mockInvoiceRepo.On("FindInvoiceForUpdate", suite.ctx, nil, invoiceID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeletePayment(suite.ctx, existing.PaymentID, "user-1")

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SumCompletedByInvoiceInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatusInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
