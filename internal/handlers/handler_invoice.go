package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quillbooks/invoicing_backend/internal/apperrors"
	portssvc "github.com/quillbooks/invoicing_backend/internal/core/ports/services"
	"github.com/quillbooks/invoicing_backend/internal/dto"
	"github.com/quillbooks/invoicing_backend/internal/middleware"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	clientService  portssvc.ClientSvcFacade
	renderer       portssvc.DocumentRenderer
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade, cs portssvc.ClientSvcFacade, r portssvc.DocumentRenderer) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
		clientService:  cs,
		renderer:       r,
	}
}

// RegisterInvoiceRoutes registers routes related to invoices.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, clientService portssvc.ClientSvcFacade, renderer portssvc.DocumentRenderer) {
	h := newInvoiceHandler(invoiceService, clientService, renderer)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:id", h.getInvoiceByID)
		invoices.PUT("/:id", h.updateInvoice)
		invoices.DELETE("/:id", h.deleteInvoice)
		invoices.PUT("/:id/status", h.setInvoiceStatus)
		invoices.POST("/:id/convert-to-final", h.convertToFinal)
		invoices.GET("/:id/document", h.getInvoiceDocument)
	}
}

// createInvoice godoc
// @Summary Create a new invoice
// @Description Creates a pro-forma or final invoice. The invoice number is assigned server-side. Creating a final invoice decrements stock for physical line items.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	createdInvoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		}
		return
	}

	logger.Info("Invoice created successfully",
		slog.String("invoice_id", createdInvoice.InvoiceID),
		slog.String("number", createdInvoice.Number),
	)
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(createdInvoice))
}

// getInvoiceByID godoc
// @Summary Get an invoice by ID
// @Description Retrieves an invoice with its line items
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoiceByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")
	logger = logger.With(slog.String("invoice_id", invoiceID))

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.Error("Failed to get invoice from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Retrieves invoices newest-first with optional client, type and status filters
// @Tags invoices
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from a previous page"
// @Param   clientID query string false "Filter by client"
// @Param   type query string false "Filter by type (proforma|final)"
// @Param   status query string false "Filter by status"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination token"})
		} else {
			logger.Error("Failed to list invoices from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Updates an invoice's mutable fields and replaces its line items. The number, type and conversion latch never change.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Param   invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to update invoice"
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")
	logger = logger.With(slog.String("invoice_id", invoiceID))

	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updatedInvoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), invoiceID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		}
		return
	}

	logger.Info("Invoice updated successfully")
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(updatedInvoice))
}

// setInvoiceStatus godoc
// @Summary Set an invoice's status
// @Description Manually overrides the invoice status. Payment reconciliation remains the authoritative automatic path.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Param   status body dto.SetInvoiceStatusRequest true "New status"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to set invoice status"
// @Security BearerAuth
// @Router /invoices/{id}/status [put]
func (h *invoiceHandler) setInvoiceStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")
	logger = logger.With(slog.String("invoice_id", invoiceID))

	var req dto.SetInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetInvoiceStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updatedInvoice, err := h.invoiceService.SetStatus(c.Request.Context(), invoiceID, req.Status, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found for status change")
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.Error("Failed to set invoice status in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set invoice status"})
		}
		return
	}

	logger.Info("Invoice status set successfully", slog.String("status", string(req.Status)))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(updatedInvoice))
}

// convertToFinal godoc
// @Summary Convert a pro-forma invoice to a final invoice
// @Description Creates a final invoice from the pro-forma with a fresh number. A pro-forma can be converted at most once; stock is decremented for physical line items.
// @Tags invoices
// @Produce  json
// @Param   id path string true "Pro-forma invoice ID"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Not convertible or already converted"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to convert invoice"
// @Security BearerAuth
// @Router /invoices/{id}/convert-to-final [post]
func (h *invoiceHandler) convertToFinal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	proformaID := c.Param("id")
	logger = logger.With(slog.String("proforma_id", proformaID))

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	finalInvoice, err := h.invoiceService.ConvertToFinal(c.Request.Context(), proformaID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found for conversion")
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else if errors.Is(err, apperrors.ErrAlreadyConverted) {
			logger.Warn("Invoice already converted")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invoice has already been converted to a final invoice"})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			logger.Warn("Invoice is not convertible", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only pro-forma invoices can be converted"})
		} else {
			logger.Error("Failed to convert invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert invoice"})
		}
		return
	}

	logger.Info("Invoice converted successfully",
		slog.String("final_invoice_id", finalInvoice.InvoiceID),
		slog.String("number", finalInvoice.Number),
	)
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(finalInvoice))
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Description Removes the invoice and its line items. Payments and reminders referencing it are kept as an audit trail.
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 204 "Invoice deleted"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to delete invoice"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")
	logger = logger.With(slog.String("invoice_id", invoiceID))

	err := h.invoiceService.DeleteInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found for deletion")
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.Error("Failed to delete invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		}
		return
	}

	logger.Info("Invoice deleted successfully")
	c.Status(http.StatusNoContent)
}

// getInvoiceDocument godoc
// @Summary Render an invoice document
// @Description Produces a printable HTML document for the invoice
// @Tags invoices
// @Produce  html
// @Param   id path string true "Invoice ID"
// @Success 200 {string} string "HTML document"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to render document"
// @Security BearerAuth
// @Router /invoices/{id}/document [get]
func (h *invoiceHandler) getInvoiceDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")
	logger = logger.With(slog.String("invoice_id", invoiceID))

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found for document rendering")
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.Error("Failed to get invoice for document", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render document"})
		}
		return
	}

	client, err := h.clientService.GetClientByID(c.Request.Context(), invoice.ClientID)
	if err != nil {
		logger.Error("Failed to get client for document", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render document"})
		return
	}

	doc, err := h.renderer.RenderInvoiceDocument(invoice, client)
	if err != nil {
		logger.Error("Failed to render invoice document", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render document"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}
