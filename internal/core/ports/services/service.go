package services

// ServiceContainer holds all service facades needed by the HTTP layer.
// Constructed once at startup and passed to route registration.
type ServiceContainer struct {
	Client   ClientSvcFacade
	Product  ProductSvcFacade
	Invoice  InvoiceSvcFacade
	Payment  PaymentSvcFacade
	Reminder ReminderSvcFacade
	Renderer DocumentRenderer
}
