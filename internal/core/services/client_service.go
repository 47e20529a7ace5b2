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

type clientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new client service.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	client := domain.Client{
		ClientID:    uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		TaxID:       req.TaxID,
		AddressLine: req.AddressLine,
		City:        req.City,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		logger.Error("Failed to save client in repository", slog.String("error", err.Error()), slog.String("client_id", client.ClientID))
		return nil, err
	}

	logger.Info("Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find client by ID in repository", slog.String("error", err.Error()), slog.String("client_id", clientID))
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	clients, err := s.clientRepo.ListClients(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list clients from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.TaxID != nil {
		client.TaxID = *req.TaxID
	}
	if req.AddressLine != nil {
		client.AddressLine = *req.AddressLine
	}
	if req.City != nil {
		client.City = *req.City
	}
	if req.PostalCode != nil {
		client.PostalCode = *req.PostalCode
	}
	if req.Country != nil {
		client.Country = *req.Country
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = userID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		logger.Error("Failed to update client in repository", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}

	logger.Info("Client updated", slog.String("client_id", clientID))
	return client, nil
}

func (s *clientService) DeactivateClient(ctx context.Context, clientID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.clientRepo.DeactivateClient(ctx, clientID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to deactivate client in repository", slog.String("error", err.Error()), slog.String("client_id", clientID))
		}
		return err
	}

	logger.Info("Client deactivated", slog.String("client_id", clientID))
	return nil
}
