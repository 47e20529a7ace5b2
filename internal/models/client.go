package models

// Client represents a billable customer row.
type Client struct {
	ClientID    string `db:"client_id"`
	Name        string `db:"name"`
	Email       string `db:"email"`
	Phone       string `db:"phone"`
	TaxID       string `db:"tax_id"` // Nullable
	AddressLine string `db:"address_line"`
	City        string `db:"city"`
	PostalCode  string `db:"postal_code"`
	Country     string `db:"country"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
