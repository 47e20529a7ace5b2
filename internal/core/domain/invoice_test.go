package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/quillbooks/invoicing_backend/internal/core/domain"
)

func TestInvoice_IsConvertible(t *testing.T) {
	tests := []struct {
		name    string
		invoice domain.Invoice
		want    bool
	}{
		{
			name: "unconverted proforma",
			invoice: domain.Invoice{
				Type:             domain.InvoiceTypeProforma,
				ConvertedToFinal: false,
			},
			want: true,
		},
		{
			name: "already converted proforma",
			invoice: domain.Invoice{
				Type:             domain.InvoiceTypeProforma,
				ConvertedToFinal: true,
				FinalInvoiceID:   "final-1",
			},
			want: false,
		},
		{
			name: "final invoice",
			invoice: domain.Invoice{
				Type: domain.InvoiceTypeFinal,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.invoice.IsConvertible()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvoice_ReconcileStatus(t *testing.T) {
	invoice := domain.Invoice{
		Type:   domain.InvoiceTypeFinal,
		Status: domain.InvoiceStatusSent,
		Total:  decimal.NewFromInt(100),
	}

	tests := []struct {
		name      string
		totalPaid decimal.Decimal
		want      domain.InvoiceStatus
	}{
		{
			name:      "no completed payments reverts to sent",
			totalPaid: decimal.Zero,
			want:      domain.InvoiceStatusSent,
		},
		{
			name:      "partial payment",
			totalPaid: decimal.NewFromInt(40),
			want:      domain.InvoiceStatusPartiallyPaid,
		},
		{
			name:      "exact payment",
			totalPaid: decimal.NewFromInt(100),
			want:      domain.InvoiceStatusPaid,
		},
		{
			name:      "overpayment",
			totalPaid: decimal.NewFromInt(150),
			want:      domain.InvoiceStatusPaid,
		},
		{
			name:      "fractional cents below total",
			totalPaid: decimal.RequireFromString("99.99"),
			want:      domain.InvoiceStatusPartiallyPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoice.ReconcileStatus(tt.totalPaid)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvoice_ReconcileStatus_ZeroTotal(t *testing.T) {
	// An invoice with a zero total never flips to paid on a zero completed sum.
	invoice := domain.Invoice{
		Type:   domain.InvoiceTypeFinal,
		Status: domain.InvoiceStatusSent,
		Total:  decimal.Zero,
	}

	assert.Equal(t, domain.InvoiceStatusSent, invoice.ReconcileStatus(decimal.Zero))
	assert.Equal(t, domain.InvoiceStatusPaid, invoice.ReconcileStatus(decimal.NewFromInt(1)))
}
