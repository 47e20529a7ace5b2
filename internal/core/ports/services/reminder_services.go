package services

import (
	"context"

	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	"github.com/quillbooks/invoicing_backend/internal/dto"
)

// ReminderSvcFacade defines the reminder generation and management operations.
type ReminderSvcFacade interface {
	// SweepOverdue creates overdue reminders for unpaid invoices past their due
	// date, honoring the per-invoice cooldown, and flips their status to overdue.
	SweepOverdue(ctx context.Context, userID string) (*dto.SweepResultResponse, error)

	// SweepWeekly creates follow-up reminders for reminders due today whose
	// invoices remain unpaid.
	SweepWeekly(ctx context.Context, userID string) (*dto.SweepResultResponse, error)

	// CancelReminder sets a reminder's status to cancelled. The invoice is untouched.
	CancelReminder(ctx context.Context, reminderID string, userID string) (*domain.Reminder, error)

	// ListReminders retrieves a paginated list of reminders, newest first.
	ListReminders(ctx context.Context, limit int, offset int) ([]domain.Reminder, error)
}
