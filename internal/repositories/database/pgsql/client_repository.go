package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillbooks/invoicing_backend/internal/apperrors"
	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	portsrepo "github.com/quillbooks/invoicing_backend/internal/core/ports/repositories"
	"github.com/quillbooks/invoicing_backend/internal/models"
)

type PgxClientRepository struct {
	pool *pgxpool.Pool
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{pool: pool}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

// Helper to convert domain.Client to models.Client for DB storage
func toModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:    d.ClientID,
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		TaxID:       d.TaxID,
		AddressLine: d.AddressLine,
		City:        d.City,
		PostalCode:  d.PostalCode,
		Country:     d.Country,
		IsActive:    d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Client from DB to domain.Client
func toDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:    m.ClientID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		TaxID:       m.TaxID,
		AddressLine: m.AddressLine,
		City:        m.City,
		PostalCode:  m.PostalCode,
		Country:     m.Country,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// SaveClient inserts a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	modelClient := toModelClient(client)

	query := `
		INSERT INTO clients (client_id, name, email, phone, tax_id, address_line, city, postal_code, country, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	var taxID sql.NullString
	if modelClient.TaxID != "" {
		taxID = sql.NullString{String: modelClient.TaxID, Valid: true}
	}

	_, err := r.pool.Exec(ctx, query,
		modelClient.ClientID,
		modelClient.Name,
		modelClient.Email,
		modelClient.Phone,
		taxID,
		modelClient.AddressLine,
		modelClient.City,
		modelClient.PostalCode,
		modelClient.Country,
		modelClient.IsActive,
		modelClient.CreatedAt,
		modelClient.CreatedBy,
		modelClient.LastUpdatedAt,
		modelClient.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: client with ID %s already exists", apperrors.ErrDuplicate, modelClient.ClientID)
		}
		return fmt.Errorf("failed to save client %s: %w", modelClient.ClientID, err)
	}
	return nil
}

const clientColumns = `client_id, name, email, phone, tax_id, address_line, city, postal_code, country, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	var taxID sql.NullString
	err := row.Scan(
		&m.ClientID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&taxID,
		&m.AddressLine,
		&m.City,
		&m.PostalCode,
		&m.Country,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Client{}, err
	}
	if taxID.Valid {
		m.TaxID = taxID.String
	}
	return m, nil
}

// FindClientByID retrieves a client by its ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE client_id = $1;`, clientColumns)

	m, err := scanClient(r.pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}

	domainClient := toDomainClient(m)
	return &domainClient, nil
}

// ListClients retrieves a paginated list of active clients ordered by name.
func (r *PgxClientRepository) ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
		SELECT %s FROM clients
		WHERE is_active = TRUE
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`, clientColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, toDomainClient(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", rows.Err())
	}
	return clients, nil
}

// UpdateClient updates an existing client in the database.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	modelClient := toModelClient(client)

	query := `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, tax_id = $5, address_line = $6, city = $7, postal_code = $8, country = $9, last_updated_at = $10, last_updated_by = $11
		WHERE client_id = $1;
	`
	var taxID sql.NullString
	if modelClient.TaxID != "" {
		taxID = sql.NullString{String: modelClient.TaxID, Valid: true}
	}

	cmdTag, err := r.pool.Exec(ctx, query,
		modelClient.ClientID,
		modelClient.Name,
		modelClient.Email,
		modelClient.Phone,
		taxID,
		modelClient.AddressLine,
		modelClient.City,
		modelClient.PostalCode,
		modelClient.Country,
		modelClient.LastUpdatedAt,
		modelClient.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update client %s: %w", modelClient.ClientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateClient marks a client as inactive.
func (r *PgxClientRepository) DeactivateClient(ctx context.Context, clientID string, userID string, now time.Time) error {
	query := `
		UPDATE clients
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE client_id = $1 AND is_active = TRUE;
	`

	cmdTag, err := r.pool.Exec(ctx, query, clientID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate client %s: %w", clientID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindClientByID(ctx, clientID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check client status after deactivation attempt for %s: %w", clientID, findErr)
		}
		// Client exists but was already inactive.
		return apperrors.ErrValidation
	}
	return nil
}
