package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	portsrepo "github.com/quillbooks/invoicing_backend/internal/core/ports/repositories"
)

// MockClientRepository is a mock type for the ClientRepositoryFacade interface
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeactivateClient(ctx context.Context, clientID string, userID string, now time.Time) error {
	args := m.Called(ctx, clientID, userID, now)
	return args.Error(0)
}

// MockProductRepository is a mock type for the ProductRepositoryFacade interface
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, productID string, quantity int64, allowNegative bool, userID string, now time.Time) (bool, error) {
	args := m.Called(ctx, productID, quantity, allowNegative, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) IncrementStock(ctx context.Context, productID string, quantity int64, userID string, now time.Time) error {
	args := m.Called(ctx, productID, quantity, userID, now)
	return args.Error(0)
}

func (m *MockProductRepository) DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	args := m.Called(ctx, productID, userID, now)
	return args.Error(0)
}

// MockInvoiceRepository is a mock type for the InvoiceRepositoryFacade interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceListFilter, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var invoices []domain.Invoice
	if args.Get(0) != nil {
		invoices = args.Get(0).([]domain.Invoice)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return invoices, token, args.Error(2)
}

func (m *MockInvoiceRepository) ListOverdueCandidates(ctx context.Context, now time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, paymentDate *time.Time, userID string, now time.Time) error {
	args := m.Called(ctx, invoiceID, status, paymentDate, userID, now)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveConversion(ctx context.Context, final domain.Invoice, proformaID string, userID string, now time.Time) (*domain.Invoice, error) {
	args := m.Called(ctx, final, proformaID, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, tx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus, paymentDate *time.Time, userID string, now time.Time) error {
	args := m.Called(ctx, tx, invoiceID, status, paymentDate, userID, now)
	return args.Error(0)
}

// MockPaymentRepository is a mock type for the PaymentRepositoryWithTx interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

func (m *MockPaymentRepository) SumCompletedByInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, invoiceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPaymentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPaymentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockReminderRepository is a mock type for the ReminderRepositoryFacade interface
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) FindReminderByID(ctx context.Context, reminderID string) (*domain.Reminder, error) {
	args := m.Called(ctx, reminderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reminder), args.Error(1)
}

func (m *MockReminderRepository) FindLatestByInvoiceID(ctx context.Context, invoiceID string) (*domain.Reminder, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reminder), args.Error(1)
}

func (m *MockReminderRepository) CountByInvoiceID(ctx context.Context, invoiceID string) (int, error) {
	args := m.Called(ctx, invoiceID)
	return args.Int(0), args.Error(1)
}

func (m *MockReminderRepository) ListDueOn(ctx context.Context, day time.Time) ([]domain.Reminder, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reminder), args.Error(1)
}

func (m *MockReminderRepository) ListReminders(ctx context.Context, limit int, offset int) ([]domain.Reminder, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reminder), args.Error(1)
}

func (m *MockReminderRepository) SaveReminder(ctx context.Context, reminder domain.Reminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) UpdateReminderStatus(ctx context.Context, reminderID string, status domain.ReminderStatus, userID string, now time.Time) error {
	args := m.Called(ctx, reminderID, status, userID, now)
	return args.Error(0)
}

// MockNotifier is a mock type for the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, to string, subject string, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// MockRenderer is a mock type for the DocumentRenderer interface
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderInvoiceDocument(invoice *domain.Invoice, client *domain.Client) (string, error) {
	args := m.Called(invoice, client)
	return args.String(0), args.Error(1)
}

func (m *MockRenderer) RenderReminderNotice(invoice *domain.Invoice, client *domain.Client, reminderCount int) (string, string, error) {
	args := m.Called(invoice, client, reminderCount)
	return args.String(0), args.String(1), args.Error(2)
}
