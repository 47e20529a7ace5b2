package pgsql

import (
	"context"
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

type PgxProductRepository struct {
	pool *pgxpool.Pool
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{pool: pool}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func toModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:   d.ProductID,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price,
		IsService:   d.IsService,
		Stock:       d.Stock,
		IsActive:    d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:   m.ProductID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		Price:       m.Price,
		IsService:   m.IsService,
		Stock:       m.Stock,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const productColumns = `product_id, name, description, category, price, is_service, stock, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Name,
		&m.Description,
		&m.Category,
		&m.Price,
		&m.IsService,
		&m.Stock,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveProduct inserts a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := toModelProduct(product)

	query := `
		INSERT INTO products (product_id, name, description, category, price, is_service, stock, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.Description,
		m.Category,
		m.Price,
		m.IsService,
		m.Stock,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: product with ID %s already exists", apperrors.ErrDuplicate, m.ProductID)
		}
		return fmt.Errorf("failed to save product %s: %w", m.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE product_id = $1;`, productColumns)

	m, err := scanProduct(r.pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}

	domainProduct := toDomainProduct(m)
	return &domainProduct, nil
}

// FindProductsByIDs retrieves multiple products by their IDs.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE product_id = ANY($1);`, productColumns)

	rows, err := r.pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	productsMap := make(map[string]domain.Product)
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row during batch fetch: %w", err)
		}
		productsMap[m.ProductID] = toDomainProduct(m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows during batch fetch: %w", err)
	}

	// The map may not contain all requested IDs; the caller decides whether
	// missing products are an error.
	return productsMap, nil
}

// ListProducts retrieves a paginated list of active products ordered by name.
func (r *PgxProductRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
		SELECT %s FROM products
		WHERE is_active = TRUE
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`, productColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, toDomainProduct(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", rows.Err())
	}
	return products, nil
}

// UpdateProduct updates an existing product. Stock is written here too; the
// guarded decrement path is DecrementStock.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := toModelProduct(product)

	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, price = $5, stock = $6, last_updated_at = $7, last_updated_by = $8
		WHERE product_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.Description,
		m.Category,
		m.Price,
		m.Stock,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update product %s: %w", m.ProductID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DecrementStock subtracts quantity from stock. When allowNegative is false
// the write is guarded by stock >= quantity; a guard miss is reported through
// the returned bool, not an error.
func (r *PgxProductRepository) DecrementStock(ctx context.Context, productID string, quantity int64, allowNegative bool, userID string, now time.Time) (bool, error) {
	query := `
		UPDATE products
		SET stock = stock - $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1 AND is_service = FALSE
	`
	if !allowNegative {
		query += ` AND stock >= $2`
	}

	cmdTag, err := r.pool.Exec(ctx, query, productID, quantity, now, userID)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock for product %s: %w", productID, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// IncrementStock adds quantity back to stock for explicit reversal flows.
func (r *PgxProductRepository) IncrementStock(ctx context.Context, productID string, quantity int64, userID string, now time.Time) error {
	query := `
		UPDATE products
		SET stock = stock + $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1 AND is_service = FALSE;
	`
	cmdTag, err := r.pool.Exec(ctx, query, productID, quantity, now, userID)
	if err != nil {
		return fmt.Errorf("failed to increment stock for product %s: %w", productID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateProduct marks a product as inactive.
func (r *PgxProductRepository) DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	query := `
		UPDATE products
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE product_id = $1 AND is_active = TRUE;
	`

	cmdTag, err := r.pool.Exec(ctx, query, productID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate product %s: %w", productID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindProductByID(ctx, productID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check product status after deactivation attempt for %s: %w", productID, findErr)
		}
		return apperrors.ErrValidation
	}
	return nil
}
