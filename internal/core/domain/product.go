package domain

import (
	"github.com/shopspring/decimal"
)

// Product represents a sellable product or service.
// Stock is only meaningful when IsService is false; services carry no inventory.
type Product struct {
	ProductID   string          `json:"productID"` // Primary key (UUID)
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"` // Current unit price; invoices snapshot it
	IsService   bool            `json:"isService"`
	Stock       int64           `json:"stock"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}

// HasSufficientStock reports whether quantity units can be taken from inventory.
// Always true for services.
func (p Product) HasSufficientStock(quantity int64) bool {
	if p.IsService {
		return true
	}
	return p.Stock >= quantity
}
