package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a sellable product or service row.
// stock is only meaningful when is_service = FALSE.
type Product struct {
	ProductID   string          `db:"product_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Category    string          `db:"category"`
	Price       decimal.Decimal `db:"price"`
	IsService   bool            `db:"is_service"`
	Stock       int64           `db:"stock"`
	IsActive    bool            `db:"is_active"`
	AuditFields
}
