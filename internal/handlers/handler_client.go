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

// clientHandler handles HTTP requests related to clients.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

// newClientHandler creates a new clientHandler.
func newClientHandler(cs portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{
		clientService: cs,
	}
}

// registerClientRoutes registers routes related to clients.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := newClientHandler(clientService)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:id", h.getClientByID)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", h.deactivateClient)
	}
}

// createClient godoc
// @Summary Create a new client
// @Description Adds a new billable client
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Client already exists"
// @Failure 500 {object} map[string]string "Failed to create client"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	createdClient, err := h.clientService.CreateClient(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempted to create duplicate client", slog.String("name", req.Name))
			c.JSON(http.StatusConflict, gin.H{"error": "Client already exists"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating client", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create client in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		}
		return
	}

	logger.Info("Client created successfully", slog.String("client_id", createdClient.ClientID))
	c.JSON(http.StatusCreated, dto.ToClientResponse(createdClient))
}

// getClientByID godoc
// @Summary Get a client by ID
// @Description Retrieves details for a specific client
// @Tags clients
// @Produce  json
// @Param   id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Failed to retrieve client"
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClientByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")
	logger = logger.With(slog.String("client_id", clientID))

	client, err := h.clientService.GetClientByID(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			logger.Error("Failed to get client from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List clients
// @Description Retrieves a paginated list of active clients
// @Tags clients
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListClientsResponse
// @Failure 500 {object} map[string]string "Failed to list clients"
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListClients", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list clients from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
		return
	}

	clientResponses := make([]dto.ClientResponse, len(clients))
	for i, cl := range clients {
		clientResponses[i] = dto.ToClientResponse(&cl)
	}

	c.JSON(http.StatusOK, dto.ListClientsResponse{Clients: clientResponses})
}

// updateClient godoc
// @Summary Update a client
// @Description Updates an existing client's details
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   id path string true "Client ID"
// @Param   client body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Failed to update client"
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")
	logger = logger.With(slog.String("client_id", clientID))

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updatedClient, err := h.clientService.UpdateClient(c.Request.Context(), clientID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating client", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update client in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		}
		return
	}

	logger.Info("Client updated successfully")
	c.JSON(http.StatusOK, dto.ToClientResponse(updatedClient))
}

// deactivateClient godoc
// @Summary Deactivate a client
// @Description Marks a client as inactive; historical invoices are unaffected
// @Tags clients
// @Produce  json
// @Param   id path string true "Client ID"
// @Success 204 "Client deactivated"
// @Failure 400 {object} map[string]string "Client already inactive"
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Failed to deactivate client"
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *clientHandler) deactivateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")
	logger = logger.With(slog.String("client_id", clientID))

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.clientService.DeactivateClient(c.Request.Context(), clientID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found for deactivation")
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Client already inactive")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Client is already inactive"})
		} else {
			logger.Error("Failed to deactivate client in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate client"})
		}
		return
	}

	logger.Info("Client deactivated successfully")
	c.Status(http.StatusNoContent)
}
