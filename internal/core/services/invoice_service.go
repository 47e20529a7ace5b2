package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/invoicing_backend/internal/apperrors"
	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	portsrepo "github.com/quillbooks/invoicing_backend/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/invoicing_backend/internal/core/ports/services"
	"github.com/quillbooks/invoicing_backend/internal/dto"
	"github.com/quillbooks/invoicing_backend/internal/middleware"
)

// invoiceService owns the invoice lifecycle: creation with server-assigned
// numbers, manual status overrides, pro-forma conversion and the stock
// adjustment side effect for physical line items.
type invoiceService struct {
	invoiceRepo   portsrepo.InvoiceRepositoryFacade
	productRepo   portsrepo.ProductRepositoryFacade
	clientRepo    portsrepo.ClientRepositoryFacade
	allowOversell bool
}

// NewInvoiceService creates a new invoice service. allowOversell controls
// whether stock decrements may drive stock below zero; when false,
// insufficient stock is logged and the decrement skipped.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, productRepo portsrepo.ProductRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade, allowOversell bool) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:   invoiceRepo,
		productRepo:   productRepo,
		clientRepo:    clientRepo,
		allowOversell: allowOversell,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// buildItems snapshots product name and unit price into line items and returns
// the items with the computed subtotal.
func (s *invoiceService) buildItems(ctx context.Context, reqItems []dto.InvoiceItemRequest) ([]domain.InvoiceItem, decimal.Decimal, error) {
	productIDs := make([]string, 0, len(reqItems))
	for _, it := range reqItems {
		productIDs = append(productIDs, it.ProductID)
	}

	products, err := s.productRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load products for invoice items: %w", err)
	}

	items := make([]domain.InvoiceItem, 0, len(reqItems))
	subtotal := decimal.Zero
	for _, it := range reqItems {
		product, found := products[it.ProductID]
		if !found {
			return nil, decimal.Zero, fmt.Errorf("%w: product %s not found", apperrors.ErrValidation, it.ProductID)
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(it.Quantity))
		items = append(items, domain.InvoiceItem{
			ProductID:   product.ProductID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    it.Quantity,
			Total:       lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}
	return items, subtotal, nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: client %s not found", apperrors.ErrValidation, req.ClientID)
		}
		return nil, err
	}

	items, subtotal, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}
	status := req.Status
	if status == "" {
		status = domain.InvoiceStatusDraft
	}

	invoice := domain.Invoice{
		InvoiceID: uuid.NewString(),
		// Number is assigned by the repository from the invoice sequence;
		// caller-supplied numbers are never trusted.
		Type:      req.Type,
		ClientID:  req.ClientID,
		Items:     items,
		Subtotal:  subtotal,
		Tax:       req.Tax,
		Total:     subtotal.Add(req.Tax),
		Status:    status,
		IssueDate: issueDate,
		DueDate:   req.DueDate,
		Notes:     req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	stored, err := s.invoiceRepo.SaveInvoice(ctx, invoice)
	if err != nil {
		logger.Error("Failed to save invoice in repository", slog.String("error", err.Error()), slog.String("invoice_id", invoice.InvoiceID))
		return nil, err
	}

	// Stock is decremented at direct creation of a final invoice, never for
	// pro-formas. Best-effort: a failed item never blocks invoice creation.
	if stored.Type == domain.InvoiceTypeFinal {
		s.adjustStockForItems(ctx, stored.Items, userID)
	}

	logger.Info("Invoice created", slog.String("invoice_id", stored.InvoiceID), slog.String("number", stored.Number), slog.String("type", string(stored.Type)))
	return stored, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find invoice by ID in repository", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.InvoiceListFilter{
		ClientID: params.ClientID,
		Type:     params.Type,
		Status:   params.Status,
	}
	invoices, nextToken, err := s.invoiceRepo.ListInvoices(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list invoices from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	responses := make([]dto.InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = dto.ToInvoiceResponse(&inv)
	}
	return &dto.ListInvoicesResponse{Invoices: responses, NextToken: nextToken}, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.ClientID != nil {
		if _, err := s.clientRepo.FindClientByID(ctx, *req.ClientID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: client %s not found", apperrors.ErrValidation, *req.ClientID)
			}
			return nil, err
		}
		invoice.ClientID = *req.ClientID
	}
	if req.Items != nil {
		items, subtotal, err := s.buildItems(ctx, req.Items)
		if err != nil {
			return nil, err
		}
		invoice.Items = items
		invoice.Subtotal = subtotal
	}
	if req.Tax != nil {
		invoice.Tax = *req.Tax
	}
	invoice.Total = invoice.Subtotal.Add(invoice.Tax)
	if req.DueDate != nil {
		invoice.DueDate = *req.DueDate
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	invoice.LastUpdatedAt = time.Now()
	invoice.LastUpdatedBy = userID

	// UpdateInvoice never writes the number, type or conversion latch columns.
	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		logger.Error("Failed to update invoice in repository", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, err
	}

	logger.Info("Invoice updated", slog.String("invoice_id", invoiceID))
	return invoice, nil
}

// SetStatus is the permissive manual override used by the dashboard's
// "mark as sent/paid/overdue" actions. No transition guard is applied;
// reconciliation remains the authoritative automatic path.
func (s *invoiceService) SetStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var paymentDate *time.Time
	if status == domain.InvoiceStatusPaid {
		if invoice.PaymentDate != nil {
			paymentDate = invoice.PaymentDate
		} else {
			paymentDate = &now
		}
	}

	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, status, paymentDate, userID, now); err != nil {
		logger.Error("Failed to set invoice status", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID), slog.String("status", string(status)))
		return nil, err
	}

	invoice.Status = status
	invoice.PaymentDate = paymentDate
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID

	logger.Info("Invoice status set", slog.String("invoice_id", invoiceID), slog.String("status", string(status)))
	return invoice, nil
}

// ConvertToFinal clones a pro-forma into a final invoice, exactly once. The
// final invoice creation and the latch write on the source happen within a
// single repository transaction so a crash cannot double-create.
func (s *invoiceService) ConvertToFinal(ctx context.Context, proformaID string, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	proforma, err := s.invoiceRepo.FindInvoiceByID(ctx, proformaID)
	if err != nil {
		return nil, err
	}

	if proforma.Type != domain.InvoiceTypeProforma {
		return nil, fmt.Errorf("%w: invoice %s is not a proforma", apperrors.ErrInvalidState, proformaID)
	}
	if proforma.ConvertedToFinal {
		return nil, fmt.Errorf("%w: proforma %s", apperrors.ErrAlreadyConverted, proformaID)
	}

	now := time.Now()
	items := make([]domain.InvoiceItem, len(proforma.Items))
	copy(items, proforma.Items)

	final := domain.Invoice{
		InvoiceID: uuid.NewString(),
		// Fresh number from the sequence; the proforma's number is not reused.
		Type:        domain.InvoiceTypeFinal,
		ClientID:    proforma.ClientID,
		Items:       items,
		Subtotal:    proforma.Subtotal,
		Tax:         proforma.Tax,
		Total:       proforma.Total,
		Status:      proforma.Status,
		IssueDate:   proforma.IssueDate,
		DueDate:     proforma.DueDate,
		PaymentDate: proforma.PaymentDate,
		Notes:       proforma.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	stored, err := s.invoiceRepo.SaveConversion(ctx, final, proformaID, userID, now)
	if err != nil {
		logger.Error("Failed to convert proforma", slog.String("error", err.Error()), slog.String("proforma_id", proformaID))
		return nil, err
	}

	// Stock is decremented once, at conversion, for the new final invoice.
	s.adjustStockForItems(ctx, stored.Items, userID)

	logger.Info("Proforma converted to final invoice",
		slog.String("proforma_id", proformaID),
		slog.String("final_invoice_id", stored.InvoiceID),
		slog.String("number", stored.Number))
	return stored, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Payments and reminders referencing the invoice are not cascaded; they
	// remain as an audit trail.
	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		}
		return err
	}

	logger.Info("Invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}

// adjustStockForItems decrements stock for every physical line item. Each item
// is processed independently: insufficient stock or a repository error is
// logged and the loop continues. Nothing here ever fails the invoice.
func (s *invoiceService) adjustStockForItems(ctx context.Context, items []domain.InvoiceItem, userID string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	for _, item := range items {
		product, err := s.productRepo.FindProductByID(ctx, item.ProductID)
		if err != nil {
			logger.Error("Failed to load product for stock adjustment", slog.String("error", err.Error()), slog.String("product_id", item.ProductID))
			continue
		}
		if product.IsService {
			continue
		}
		if !s.allowOversell && !product.HasSufficientStock(item.Quantity) {
			logger.Warn("Insufficient stock, leaving stock unchanged",
				slog.String("product_id", product.ProductID),
				slog.Int64("stock", product.Stock),
				slog.Int64("requested", item.Quantity))
			continue
		}

		applied, err := s.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity, s.allowOversell, userID, now)
		if err != nil {
			logger.Error("Failed to decrement stock", slog.String("error", err.Error()), slog.String("product_id", item.ProductID))
			continue
		}
		if !applied {
			// Guarded decrement lost a race with another writer; same policy
			// as the pre-check, oversell is tolerated rather than blocked.
			logger.Warn("Insufficient stock at decrement time, leaving stock unchanged",
				slog.String("product_id", item.ProductID),
				slog.Int64("requested", item.Quantity))
		}
	}
}
