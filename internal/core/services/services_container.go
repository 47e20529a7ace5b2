package services

import (
	portsrepo "github.com/quillbooks/invoicing_backend/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/invoicing_backend/internal/core/ports/services"
	"github.com/quillbooks/invoicing_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.Notifier, renderer portssvc.DocumentRenderer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Client = NewClientService(repos.ClientRepo)
	container.Product = NewProductService(repos.ProductRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.ProductRepo, repos.ClientRepo, cfg.AllowOversell)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.InvoiceRepo)
	container.Reminder = NewReminderService(repos.ReminderRepo, repos.InvoiceRepo, repos.ClientRepo, notifier, renderer)
	container.Renderer = renderer

	return container
}

// Compile-time interface implementation checks
var (
	_ portssvc.ClientSvcFacade   = (*clientService)(nil)
	_ portssvc.ProductSvcFacade  = (*productService)(nil)
	_ portssvc.InvoiceSvcFacade  = (*invoiceService)(nil)
	_ portssvc.PaymentSvcFacade  = (*paymentService)(nil)
	_ portssvc.ReminderSvcFacade = (*reminderService)(nil)
)
