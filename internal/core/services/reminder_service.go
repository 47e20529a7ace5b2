package services

import (
	"context"
	"errors"
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

// reminderCooldown is the minimum interval between reminders for one invoice.
const reminderCooldown = 7 * 24 * time.Hour

// reminderService generates payment reminders for overdue invoices and weekly
// follow-ups, delivering notices through the notification collaborator.
type reminderService struct {
	reminderRepo portsrepo.ReminderRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	clientRepo   portsrepo.ClientRepositoryFacade
	notifier     portssvc.Notifier
	renderer     portssvc.DocumentRenderer
}

// NewReminderService creates a new reminder service.
func NewReminderService(reminderRepo portsrepo.ReminderRepositoryFacade, invoiceRepo portsrepo.InvoiceRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade, notifier portssvc.Notifier, renderer portssvc.DocumentRenderer) portssvc.ReminderSvcFacade {
	return &reminderService{
		reminderRepo: reminderRepo,
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		notifier:     notifier,
		renderer:     renderer,
	}
}

var _ portssvc.ReminderSvcFacade = (*reminderService)(nil)

func (s *reminderService) SweepOverdue(ctx context.Context, userID string) (*dto.SweepResultResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	invoices, err := s.invoiceRepo.ListOverdueCandidates(ctx, now)
	if err != nil {
		logger.Error("Failed to list overdue candidates", slog.String("error", err.Error()))
		return nil, err
	}

	result := &dto.SweepResultResponse{Examined: len(invoices)}
	for _, inv := range invoices {
		latest, err := s.reminderRepo.FindLatestByInvoiceID(ctx, inv.InvoiceID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to load latest reminder", slog.String("error", err.Error()), slog.String("invoice_id", inv.InvoiceID))
			continue
		}
		// Cooldown: one reminder per invoice per window.
		if latest != nil && now.Sub(latest.CreatedAt) < reminderCooldown {
			continue
		}

		count, err := s.reminderRepo.CountByInvoiceID(ctx, inv.InvoiceID)
		if err != nil {
			logger.Error("Failed to count reminders", slog.String("error", err.Error()), slog.String("invoice_id", inv.InvoiceID))
			continue
		}

		reminder := domain.Reminder{
			ReminderID:       uuid.NewString(),
			InvoiceID:        inv.InvoiceID,
			Type:             domain.ReminderTypeOverdue,
			ReminderCount:    count + 1,
			NextReminderDate: now.Add(reminderCooldown),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		reminder.Status = s.deliverNotice(ctx, &inv, reminder.ReminderCount)

		if err := s.reminderRepo.SaveReminder(ctx, reminder); err != nil {
			logger.Error("Failed to save reminder", slog.String("error", err.Error()), slog.String("invoice_id", inv.InvoiceID))
			continue
		}
		result.RemindersCreated++

		if inv.Status != domain.InvoiceStatusOverdue {
			if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, inv.InvoiceID, domain.InvoiceStatusOverdue, nil, userID, now); err != nil {
				logger.Error("Failed to mark invoice overdue", slog.String("error", err.Error()), slog.String("invoice_id", inv.InvoiceID))
			}
		}
	}

	logger.Info("Overdue sweep completed", slog.Int("examined", result.Examined), slog.Int("created", result.RemindersCreated))
	return result, nil
}

func (s *reminderService) SweepWeekly(ctx context.Context, userID string) (*dto.SweepResultResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	due, err := s.reminderRepo.ListDueOn(ctx, now)
	if err != nil {
		logger.Error("Failed to list reminders due today", slog.String("error", err.Error()))
		return nil, err
	}

	result := &dto.SweepResultResponse{Examined: len(due)}
	for _, prev := range due {
		invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, prev.InvoiceID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Invoice for due reminder no longer exists", slog.String("invoice_id", prev.InvoiceID))
			} else {
				logger.Error("Failed to load invoice for due reminder", slog.String("error", err.Error()), slog.String("invoice_id", prev.InvoiceID))
			}
			continue
		}
		// A paid invoice ends the follow-up chain.
		if invoice.Status == domain.InvoiceStatusPaid {
			continue
		}

		followUp := domain.Reminder{
			ReminderID:       uuid.NewString(),
			InvoiceID:        invoice.InvoiceID,
			Type:             domain.ReminderTypeWeekly,
			ReminderCount:    prev.ReminderCount + 1,
			NextReminderDate: now.Add(reminderCooldown),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		followUp.Status = s.deliverNotice(ctx, invoice, followUp.ReminderCount)

		if err := s.reminderRepo.SaveReminder(ctx, followUp); err != nil {
			logger.Error("Failed to save follow-up reminder", slog.String("error", err.Error()), slog.String("invoice_id", invoice.InvoiceID))
			continue
		}
		result.RemindersCreated++
	}

	logger.Info("Weekly sweep completed", slog.Int("examined", result.Examined), slog.Int("created", result.RemindersCreated))
	return result, nil
}

func (s *reminderService) CancelReminder(ctx context.Context, reminderID string, userID string) (*domain.Reminder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reminder, err := s.reminderRepo.FindReminderByID(ctx, reminderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.reminderRepo.UpdateReminderStatus(ctx, reminderID, domain.ReminderStatusCancelled, userID, now); err != nil {
		logger.Error("Failed to cancel reminder", slog.String("error", err.Error()), slog.String("reminder_id", reminderID))
		return nil, err
	}

	reminder.Status = domain.ReminderStatusCancelled
	reminder.LastUpdatedAt = now
	reminder.LastUpdatedBy = userID

	logger.Info("Reminder cancelled", slog.String("reminder_id", reminderID))
	return reminder, nil
}

func (s *reminderService) ListReminders(ctx context.Context, limit int, offset int) ([]domain.Reminder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	reminders, err := s.reminderRepo.ListReminders(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list reminders from repository", slog.String("error", err.Error()))
		return nil, err
	}
	if reminders == nil {
		return []domain.Reminder{}, nil
	}
	return reminders, nil
}

// deliverNotice renders and sends a reminder notice. Delivery is attempted
// once; the returned status records the outcome and no retry is scheduled.
func (s *reminderService) deliverNotice(ctx context.Context, invoice *domain.Invoice, reminderCount int) domain.ReminderStatus {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.clientRepo.FindClientByID(ctx, invoice.ClientID)
	if err != nil {
		logger.Error("Failed to load client for reminder notice", slog.String("error", err.Error()), slog.String("invoice_id", invoice.InvoiceID))
		return domain.ReminderStatusFailed
	}

	subject, body, err := s.renderer.RenderReminderNotice(invoice, client, reminderCount)
	if err != nil {
		logger.Error("Failed to render reminder notice", slog.String("error", err.Error()), slog.String("invoice_id", invoice.InvoiceID))
		return domain.ReminderStatusFailed
	}

	if err := s.notifier.Send(ctx, client.Email, subject, body); err != nil {
		logger.Warn("Failed to deliver reminder notice", slog.String("error", err.Error()), slog.String("invoice_id", invoice.InvoiceID), slog.String("recipient", client.Email))
		return domain.ReminderStatusFailed
	}

	return domain.ReminderStatusSent
}
