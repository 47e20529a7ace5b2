package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/invoicing_backend/internal/core/domain"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a specific product by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductsByIDs retrieves multiple products by their IDs.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	// ListProducts retrieves a paginated list of active products.
	ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates an existing product's details.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DecrementStock subtracts quantity from the product's stock. When
	// allowNegative is false the update is guarded by stock >= quantity and the
	// returned bool reports whether the decrement was applied.
	DecrementStock(ctx context.Context, productID string, quantity int64, allowNegative bool, userID string, now time.Time) (bool, error)

	// IncrementStock adds quantity back to the product's stock (explicit reversal flows).
	IncrementStock(ctx context.Context, productID string, quantity int64, userID string, now time.Time) error

	// DeactivateProduct marks a product as inactive.
	DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
