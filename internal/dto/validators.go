package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/quillbooks/invoicing_backend/internal/core/domain"
)

// RegisterCustomValidators wires the domain enum validators into gin's binding
// validator. Must be called once during startup before any request binding.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("invoicetype", validateInvoiceType)
	v.RegisterValidation("invoicestatus", validateInvoiceStatus)
	v.RegisterValidation("paymentmethod", validatePaymentMethod)
	v.RegisterValidation("paymentstatus", validatePaymentStatus)
}

func validateInvoiceType(fl validator.FieldLevel) bool {
	switch domain.InvoiceType(fl.Field().String()) {
	case domain.InvoiceTypeProforma, domain.InvoiceTypeFinal:
		return true
	}
	return false
}

func validateInvoiceStatus(fl validator.FieldLevel) bool {
	switch domain.InvoiceStatus(fl.Field().String()) {
	case domain.InvoiceStatusDraft, domain.InvoiceStatusSent, domain.InvoiceStatusPaid,
		domain.InvoiceStatusPartiallyPaid, domain.InvoiceStatusOverdue:
		return true
	}
	return false
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch domain.PaymentMethod(fl.Field().String()) {
	case domain.PaymentMethodCard, domain.PaymentMethodTransfer,
		domain.PaymentMethodCash, domain.PaymentMethodCheck:
		return true
	}
	return false
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	switch domain.PaymentStatus(fl.Field().String()) {
	case domain.PaymentStatusPending, domain.PaymentStatusCompleted, domain.PaymentStatusFailed:
		return true
	}
	return false
}
