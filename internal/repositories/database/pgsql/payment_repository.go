package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/invoicing_backend/internal/apperrors"
	"github.com/quillbooks/invoicing_backend/internal/core/domain"
	portsrepo "github.com/quillbooks/invoicing_backend/internal/core/ports/repositories"
	"github.com/quillbooks/invoicing_backend/internal/models"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data. It also
// carries transaction management because reconciliation runs through it.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryWithTx {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryWithTx = (*PgxPaymentRepository)(nil)

func toModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID: d.PaymentID,
		InvoiceID: d.InvoiceID,
		Amount:    d.Amount,
		Date:      d.Date,
		Method:    models.PaymentMethod(d.Method),
		Status:    models.PaymentStatus(d.Status),
		Reference: d.Reference,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID: m.PaymentID,
		InvoiceID: m.InvoiceID,
		Amount:    m.Amount,
		Date:      m.Date,
		Method:    domain.PaymentMethod(m.Method),
		Status:    domain.PaymentStatus(m.Status),
		Reference: m.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const paymentColumns = `payment_id, invoice_id, amount, date, method, status, reference, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	var reference sql.NullString
	err := row.Scan(
		&m.PaymentID,
		&m.InvoiceID,
		&m.Amount,
		&m.Date,
		&m.Method,
		&m.Status,
		&reference,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if reference.Valid {
		m.Reference = reference.String
	}
	return m, err
}

// SavePayment inserts a new payment.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := toModelPayment(payment)

	query := `
		INSERT INTO payments (payment_id, invoice_id, amount, date, method, status, reference, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PaymentID,
		m.InvoiceID,
		m.Amount,
		m.Date,
		m.Method,
		m.Status,
		nullableID(m.Reference),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: payment with ID %s already exists", apperrors.ErrDuplicate, m.PaymentID)
		}
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, err)
	}
	return nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE payment_id = $1;`, paymentColumns)

	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}

	domainPayment := toDomainPayment(m)
	return &domainPayment, nil
}

// ListPaymentsByInvoiceID retrieves all payments for an invoice, oldest first.
func (r *PgxPaymentRepository) ListPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM payments
		WHERE invoice_id = $1
		ORDER BY date, created_at;
	`, paymentColumns)

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, toDomainPayment(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", rows.Err())
	}
	return payments, nil
}

// UpdatePayment updates a payment's mutable fields.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	m := toModelPayment(payment)

	query := `
		UPDATE payments
		SET amount = $2, date = $3, method = $4, status = $5, reference = $6, last_updated_at = $7, last_updated_by = $8
		WHERE payment_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.PaymentID,
		m.Amount,
		m.Date,
		m.Method,
		m.Status,
		nullableID(m.Reference),
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update payment %s: %w", m.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePayment removes a payment row.
func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SumCompletedByInvoiceInTx sums completed payment amounts for the invoice
// within the reconciliation transaction, so the sum and the resulting status
// write observe the same snapshot.
func (r *PgxPaymentRepository) SumCompletedByInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE invoice_id = $1 AND status = $2;
	`
	var total decimal.Decimal
	err := tx.QueryRow(ctx, query, invoiceID, string(domain.PaymentStatusCompleted)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum completed payments for invoice %s: %w", invoiceID, err)
	}
	return total, nil
}
