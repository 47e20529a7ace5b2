package domain

// Client represents a billable customer of the business.
// Referenced by invoices; never mutated by the invoice lifecycle logic.
type Client struct {
	ClientID    string `json:"clientID"` // Primary key (UUID)
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	TaxID       string `json:"taxID"` // Optional tax registration number
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
