package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quillbooks/invoicing_backend/internal/apperrors"
	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	portsrepo "github.com/quillbooks/invoicing_backend/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/invoicing_backend/internal/core/ports/services"
	"github.com/quillbooks/invoicing_backend/internal/dto"
	"github.com/quillbooks/invoicing_backend/internal/middleware"
)

type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates a new product service.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.IsService && req.Stock != 0 {
		return nil, fmt.Errorf("%w: services do not carry stock", apperrors.ErrValidation)
	}

	now := time.Now()
	product := domain.Product{
		ProductID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		IsService:   req.IsService,
		Stock:       req.Stock,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product in repository", slog.String("error", err.Error()), slog.String("product_id", product.ProductID))
		return nil, err
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID))
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find product by ID in repository", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	products, err := s.productRepo.ListProducts(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list products from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if product.IsService {
			return nil, fmt.Errorf("%w: services do not carry stock", apperrors.ErrValidation)
		}
		product.Stock = *req.Stock
	}
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = userID

	// Price changes do not touch historical invoices; items snapshot the
	// price at invoicing time.
	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		logger.Error("Failed to update product in repository", slog.String("error", err.Error()), slog.String("product_id", productID))
		return nil, err
	}

	logger.Info("Product updated", slog.String("product_id", productID))
	return product, nil
}

func (s *productService) DeactivateProduct(ctx context.Context, productID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.productRepo.DeactivateProduct(ctx, productID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to deactivate product in repository", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return err
	}

	logger.Info("Product deactivated", slog.String("product_id", productID))
	return nil
}
