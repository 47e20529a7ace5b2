package dto

import (
	"time"

	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is a single line item in an invoice create/update request.
// Product name and unit price are snapshotted server-side from the product.
type InvoiceItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// CreateInvoiceRequest defines the data needed to create a new invoice.
// A number field, if supplied, is discarded; numbers are assigned server-side.
type CreateInvoiceRequest struct {
	Type      domain.InvoiceType   `json:"type" binding:"required,invoicetype"`
	ClientID  string               `json:"clientID" binding:"required"`
	Items     []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	Tax       decimal.Decimal      `json:"tax"`
	Status    domain.InvoiceStatus `json:"status" binding:"omitempty,invoicestatus"`
	IssueDate *time.Time           `json:"issueDate"`
	DueDate   time.Time            `json:"dueDate" binding:"required"`
	Notes     string               `json:"notes"`
}

// UpdateInvoiceRequest defines the mutable fields of an invoice. Number, type
// and the conversion latch are not updatable.
type UpdateInvoiceRequest struct {
	ClientID *string              `json:"clientID"`
	Items    []InvoiceItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	Tax      *decimal.Decimal     `json:"tax"`
	DueDate  *time.Time           `json:"dueDate"`
	Notes    *string              `json:"notes"`
}

// SetInvoiceStatusRequest carries a manual status override.
type SetInvoiceStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required,invoicestatus"`
}

// InvoiceItemResponse is a line item as returned to the caller.
type InvoiceItemResponse struct {
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int64           `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID        string                `json:"invoiceID"`
	Number           string                `json:"number"`
	Type             domain.InvoiceType    `json:"type"`
	ClientID         string                `json:"clientID"`
	Items            []InvoiceItemResponse `json:"items"`
	Subtotal         decimal.Decimal       `json:"subtotal"`
	Tax              decimal.Decimal       `json:"tax"`
	Total            decimal.Decimal       `json:"total"`
	Status           domain.InvoiceStatus  `json:"status"`
	IssueDate        time.Time             `json:"issueDate"`
	DueDate          time.Time             `json:"dueDate"`
	PaymentDate      *time.Time            `json:"paymentDate,omitempty"`
	ConvertedToFinal bool                  `json:"convertedToFinal"`
	FinalInvoiceID   string                `json:"finalInvoiceID,omitempty"`
	Notes            string                `json:"notes,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = InvoiceItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Total:       it.Total,
		}
	}
	return InvoiceResponse{
		InvoiceID:        inv.InvoiceID,
		Number:           inv.Number,
		Type:             inv.Type,
		ClientID:         inv.ClientID,
		Items:            items,
		Subtotal:         inv.Subtotal,
		Tax:              inv.Tax,
		Total:            inv.Total,
		Status:           inv.Status,
		IssueDate:        inv.IssueDate,
		DueDate:          inv.DueDate,
		PaymentDate:      inv.PaymentDate,
		ConvertedToFinal: inv.ConvertedToFinal,
		FinalInvoiceID:   inv.FinalInvoiceID,
		Notes:            inv.Notes,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.LastUpdatedAt,
	}
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit     int                  `form:"limit,default=20"`
	NextToken *string              `form:"nextToken"`
	ClientID  string               `form:"clientID"`
	Type      domain.InvoiceType   `form:"type" binding:"omitempty,invoicetype"`
	Status    domain.InvoiceStatus `form:"status" binding:"omitempty,invoicestatus"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}
