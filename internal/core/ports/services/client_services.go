package services

import (
	"context"

	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	"github.com/quillbooks/invoicing_backend/internal/dto"
)

// ClientReaderSvc defines read operations for client data
type ClientReaderSvc interface {
	// GetClientByID retrieves a specific client by its unique identifier.
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves a paginated list of active clients.
	ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client data
type ClientWriterSvc interface {
	// CreateClient persists a new client.
	CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error)

	// UpdateClient updates an existing client's details.
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error)

	// DeactivateClient marks a client as inactive.
	DeactivateClient(ctx context.Context, clientID string, userID string) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
