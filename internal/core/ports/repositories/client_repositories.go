package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/invoicing_backend/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a specific client by its unique identifier.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves a paginated list of active clients.
	ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates an existing client's details.
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeactivateClient marks a client as inactive.
	DeactivateClient(ctx context.Context, clientID string, userID string, now time.Time) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
