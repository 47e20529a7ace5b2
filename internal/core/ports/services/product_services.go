package services

import (
	"context"

	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	"github.com/quillbooks/invoicing_backend/internal/dto"
)

// ProductReaderSvc defines read operations for product data
type ProductReaderSvc interface {
	// GetProductByID retrieves a specific product by its unique identifier.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a paginated list of active products.
	ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)
}

// ProductWriterSvc defines write operations for product data
type ProductWriterSvc interface {
	// CreateProduct persists a new product or service.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error)

	// UpdateProduct updates an existing product's details.
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)

	// DeactivateProduct marks a product as inactive.
	DeactivateProduct(ctx context.Context, productID string, userID string) error
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
