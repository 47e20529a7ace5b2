package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/quillbooks/invoicing_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	clientRepo := newPgxClientRepository(dbPool)
	productRepo := newPgxProductRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	reminderRepo := newPgxReminderRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ClientRepo:   clientRepo,
		ProductRepo:  productRepo,
		InvoiceRepo:  invoiceRepo,
		PaymentRepo:  paymentRepo,
		ReminderRepo: reminderRepo,
	}
}
