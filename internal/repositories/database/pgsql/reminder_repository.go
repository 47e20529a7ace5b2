package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillbooks/invoicing_backend/internal/apperrors"
	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	portsrepo "github.com/quillbooks/invoicing_backend/internal/core/ports/repositories"
	"github.com/quillbooks/invoicing_backend/internal/models"
)

type PgxReminderRepository struct {
	pool *pgxpool.Pool
}

// newPgxReminderRepository creates a new repository for reminder data.
func newPgxReminderRepository(pool *pgxpool.Pool) portsrepo.ReminderRepositoryFacade {
	return &PgxReminderRepository{pool: pool}
}

var _ portsrepo.ReminderRepositoryFacade = (*PgxReminderRepository)(nil)

func toModelReminder(d domain.Reminder) models.Reminder {
	return models.Reminder{
		ReminderID:       d.ReminderID,
		InvoiceID:        d.InvoiceID,
		Type:             models.ReminderType(d.Type),
		ReminderCount:    d.ReminderCount,
		NextReminderDate: d.NextReminderDate,
		Status:           models.ReminderStatus(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainReminder(m models.Reminder) domain.Reminder {
	return domain.Reminder{
		ReminderID:       m.ReminderID,
		InvoiceID:        m.InvoiceID,
		Type:             domain.ReminderType(m.Type),
		ReminderCount:    m.ReminderCount,
		NextReminderDate: m.NextReminderDate,
		Status:           domain.ReminderStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const reminderColumns = `reminder_id, invoice_id, type, reminder_count, next_reminder_date, status, created_at, created_by, last_updated_at, last_updated_by`

func scanReminder(row pgx.Row) (models.Reminder, error) {
	var m models.Reminder
	err := row.Scan(
		&m.ReminderID,
		&m.InvoiceID,
		&m.Type,
		&m.ReminderCount,
		&m.NextReminderDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveReminder inserts a new reminder.
func (r *PgxReminderRepository) SaveReminder(ctx context.Context, reminder domain.Reminder) error {
	m := toModelReminder(reminder)

	query := `
		INSERT INTO reminders (reminder_id, invoice_id, type, reminder_count, next_reminder_date, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ReminderID,
		m.InvoiceID,
		m.Type,
		m.ReminderCount,
		m.NextReminderDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: reminder with ID %s already exists", apperrors.ErrDuplicate, m.ReminderID)
		}
		return fmt.Errorf("failed to save reminder %s: %w", m.ReminderID, err)
	}
	return nil
}

// FindReminderByID retrieves a reminder by its ID.
func (r *PgxReminderRepository) FindReminderByID(ctx context.Context, reminderID string) (*domain.Reminder, error) {
	query := fmt.Sprintf(`SELECT %s FROM reminders WHERE reminder_id = $1;`, reminderColumns)

	m, err := scanReminder(r.pool.QueryRow(ctx, query, reminderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reminder by ID %s: %w", reminderID, err)
	}

	domainReminder := toDomainReminder(m)
	return &domainReminder, nil
}

// FindLatestByInvoiceID retrieves the most recently created reminder for an
// invoice. The creation time ordering is what the sweep cooldown relies on.
func (r *PgxReminderRepository) FindLatestByInvoiceID(ctx context.Context, invoiceID string) (*domain.Reminder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM reminders
		WHERE invoice_id = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`, reminderColumns)

	m, err := scanReminder(r.pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest reminder for invoice %s: %w", invoiceID, err)
	}

	domainReminder := toDomainReminder(m)
	return &domainReminder, nil
}

// CountByInvoiceID counts all reminders ever created for an invoice.
func (r *PgxReminderRepository) CountByInvoiceID(ctx context.Context, invoiceID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reminders WHERE invoice_id = $1;`, invoiceID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reminders for invoice %s: %w", invoiceID, err)
	}
	return count, nil
}

// ListDueOn retrieves sent reminders whose next reminder date falls on the day
// containing the given instant.
func (r *PgxReminderRepository) ListDueOn(ctx context.Context, day time.Time) ([]domain.Reminder, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := fmt.Sprintf(`
		SELECT %s FROM reminders
		WHERE status = $1 AND next_reminder_date >= $2 AND next_reminder_date < $3
		ORDER BY next_reminder_date;
	`, reminderColumns)

	rows, err := r.pool.Query(ctx, query, string(domain.ReminderStatusSent), dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders due on %s: %w", dayStart.Format("2006-01-02"), err)
	}
	defer rows.Close()

	reminders := []domain.Reminder{}
	for rows.Next() {
		m, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder row: %w", err)
		}
		reminders = append(reminders, toDomainReminder(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reminder rows: %w", rows.Err())
	}
	return reminders, nil
}

// ListReminders retrieves a paginated list of reminders, newest first.
func (r *PgxReminderRepository) ListReminders(ctx context.Context, limit int, offset int) ([]domain.Reminder, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
		SELECT %s FROM reminders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`, reminderColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	reminders := []domain.Reminder{}
	for rows.Next() {
		m, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder row: %w", err)
		}
		reminders = append(reminders, toDomainReminder(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reminder rows: %w", rows.Err())
	}
	return reminders, nil
}

// UpdateReminderStatus sets a reminder's delivery status.
func (r *PgxReminderRepository) UpdateReminderStatus(ctx context.Context, reminderID string, status domain.ReminderStatus, userID string, now time.Time) error {
	query := `
		UPDATE reminders
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE reminder_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, reminderID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of reminder %s: %w", reminderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
