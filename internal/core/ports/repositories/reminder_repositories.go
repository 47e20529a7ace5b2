package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/invoicing_backend/internal/core/domain"
)

// ReminderReader defines read operations for reminder data
type ReminderReader interface {
	// FindReminderByID retrieves a specific reminder by its unique identifier.
	FindReminderByID(ctx context.Context, reminderID string) (*domain.Reminder, error)

	// FindLatestByInvoiceID retrieves the most recently created reminder for an
	// invoice, or apperrors.ErrNotFound when none exists.
	FindLatestByInvoiceID(ctx context.Context, invoiceID string) (*domain.Reminder, error)

	// CountByInvoiceID counts all reminders ever created for an invoice.
	CountByInvoiceID(ctx context.Context, invoiceID string) (int, error)

	// ListDueOn retrieves sent reminders whose next reminder date falls within
	// the day containing the given instant (midnight-to-midnight).
	ListDueOn(ctx context.Context, day time.Time) ([]domain.Reminder, error)

	// ListReminders retrieves a paginated list of reminders, newest first.
	ListReminders(ctx context.Context, limit int, offset int) ([]domain.Reminder, error)
}

// ReminderWriter defines write operations for reminder data
type ReminderWriter interface {
	// SaveReminder persists a new reminder.
	SaveReminder(ctx context.Context, reminder domain.Reminder) error

	// UpdateReminderStatus sets a reminder's delivery status.
	UpdateReminderStatus(ctx context.Context, reminderID string, status domain.ReminderStatus, userID string, now time.Time) error
}

// ReminderRepositoryFacade combines all reminder-related repository interfaces
type ReminderRepositoryFacade interface {
	ReminderReader
	ReminderWriter
}
