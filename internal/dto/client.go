package dto

import (
	"time"

	"github.com/quillbooks/invoicing_backend/internal/core/domain"
)

// CreateClientRequest defines the data needed to create a new client.
type CreateClientRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	TaxID       string `json:"taxID"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
}

// UpdateClientRequest defines the data allowed for updating a client.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateClientRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	TaxID       *string `json:"taxID"`
	AddressLine *string `json:"addressLine"`
	City        *string `json:"city"`
	PostalCode  *string `json:"postalCode"`
	Country     *string `json:"country"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID    string    `json:"clientID"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	TaxID       string    `json:"taxID"`
	AddressLine string    `json:"addressLine"`
	City        string    `json:"city"`
	PostalCode  string    `json:"postalCode"`
	Country     string    `json:"country"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:    c.ClientID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		TaxID:       c.TaxID,
		AddressLine: c.AddressLine,
		City:        c.City,
		PostalCode:  c.PostalCode,
		Country:     c.Country,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.LastUpdatedAt,
	}
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListClientsResponse wraps the list of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}
