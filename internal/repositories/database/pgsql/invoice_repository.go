package pgsql

import (
	"context"
	"database/sql"
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
	"github.com/quillbooks/invoicing_backend/internal/utils/pagination"
)

type PgxInvoiceRepository struct {
	pool *pgxpool.Pool
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{pool: pool}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func toModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:        d.InvoiceID,
		Number:           d.Number,
		Type:             models.InvoiceType(d.Type),
		ClientID:         d.ClientID,
		Subtotal:         d.Subtotal,
		Tax:              d.Tax,
		Total:            d.Total,
		Status:           models.InvoiceStatus(d.Status),
		IssueDate:        d.IssueDate,
		DueDate:          d.DueDate,
		PaymentDate:      d.PaymentDate,
		ConvertedToFinal: d.ConvertedToFinal,
		FinalInvoiceID:   d.FinalInvoiceID,
		Notes:            d.Notes,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainInvoice(m models.Invoice, items []models.InvoiceItem) domain.Invoice {
	domainItems := make([]domain.InvoiceItem, 0, len(items))
	for _, item := range items {
		domainItems = append(domainItems, domain.InvoiceItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Total:       item.Total,
		})
	}
	return domain.Invoice{
		InvoiceID:        m.InvoiceID,
		Number:           m.Number,
		Type:             domain.InvoiceType(m.Type),
		ClientID:         m.ClientID,
		Items:            domainItems,
		Subtotal:         m.Subtotal,
		Tax:              m.Tax,
		Total:            m.Total,
		Status:           domain.InvoiceStatus(m.Status),
		IssueDate:        m.IssueDate,
		DueDate:          m.DueDate,
		PaymentDate:      m.PaymentDate,
		ConvertedToFinal: m.ConvertedToFinal,
		FinalInvoiceID:   m.FinalInvoiceID,
		Notes:            m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const invoiceColumns = `invoice_id, number, type, client_id, subtotal, tax, total, status, issue_date, due_date, payment_date, converted_to_final, final_invoice_id, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	var finalInvoiceID sql.NullString
	err := row.Scan(
		&m.InvoiceID,
		&m.Number,
		&m.Type,
		&m.ClientID,
		&m.Subtotal,
		&m.Tax,
		&m.Total,
		&m.Status,
		&m.IssueDate,
		&m.DueDate,
		&m.PaymentDate,
		&m.ConvertedToFinal,
		&finalInvoiceID,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if finalInvoiceID.Valid {
		m.FinalInvoiceID = finalInvoiceID.String
	}
	return m, err
}

func nullableID(id string) interface{} {
	if id == "" {
		return nil
	}
	return id
}

// nextInvoiceNumber atomically advances the per-year, per-type sequence row and
// formats the resulting number, e.g. INV-2026-000042 or PRO-2026-000007.
// Must run inside the transaction that inserts the invoice so a failed insert
// does not burn a number without also rolling the sequence back.
func nextInvoiceNumber(ctx context.Context, tx pgx.Tx, invoiceType domain.InvoiceType, issueDate time.Time) (string, error) {
	prefix := "INV"
	if invoiceType == domain.InvoiceTypeProforma {
		prefix = "PRO"
	}
	year := issueDate.UTC().Year()

	query := `
		INSERT INTO invoice_sequences (year, type, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (year, type)
		DO UPDATE SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value;
	`
	var nextValue int64
	if err := tx.QueryRow(ctx, query, year, string(invoiceType)).Scan(&nextValue); err != nil {
		return "", fmt.Errorf("failed to advance invoice number sequence (%d/%s): %w", year, invoiceType, err)
	}

	return fmt.Sprintf("%s-%d-%06d", prefix, year, nextValue), nil
}

func insertInvoiceTx(ctx context.Context, tx pgx.Tx, m models.Invoice) error {
	query := `
		INSERT INTO invoices (invoice_id, number, type, client_id, subtotal, tax, total, status, issue_date, due_date, payment_date, converted_to_final, final_invoice_id, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, query,
		m.InvoiceID,
		m.Number,
		m.Type,
		m.ClientID,
		m.Subtotal,
		m.Tax,
		m.Total,
		m.Status,
		m.IssueDate,
		m.DueDate,
		m.PaymentDate,
		m.ConvertedToFinal,
		nullableID(m.FinalInvoiceID),
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: invoice with ID %s already exists", apperrors.ErrDuplicate, m.InvoiceID)
		}
		return fmt.Errorf("failed to insert invoice %s: %w", m.InvoiceID, err)
	}
	return nil
}

func insertInvoiceItemsTx(ctx context.Context, tx pgx.Tx, invoiceID string, items []domain.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (invoice_id, line_no, product_id, product_name, unit_price, quantity, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for lineNo, item := range items {
		_, err := tx.Exec(ctx, query,
			invoiceID,
			lineNo,
			item.ProductID,
			item.ProductName,
			item.UnitPrice,
			item.Quantity,
			item.Total,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item %d of invoice %s: %w", lineNo, invoiceID, err)
		}
	}
	return nil
}

func (r *PgxInvoiceRepository) loadItems(ctx context.Context, invoiceID string) ([]models.InvoiceItem, error) {
	query := `
		SELECT invoice_id, line_no, product_id, product_name, unit_price, quantity, total
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY line_no;
	`
	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	items := []models.InvoiceItem{}
	for rows.Next() {
		var item models.InvoiceItem
		if err := rows.Scan(&item.InvoiceID, &item.LineNo, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity, &item.Total); err != nil {
			return nil, fmt.Errorf("failed to scan item row for invoice %s: %w", invoiceID, err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating item rows for invoice %s: %w", invoiceID, rows.Err())
	}
	return items, nil
}

// SaveInvoice persists a new invoice with its items in a single transaction,
// assigning the number from the sequence. The stored invoice is returned so the
// caller sees the assigned number.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for invoice save: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	number, err := nextInvoiceNumber(ctx, tx, invoice.Type, invoice.IssueDate)
	if err != nil {
		return nil, err
	}
	invoice.Number = number

	if err := insertInvoiceTx(ctx, tx, toModelInvoice(invoice)); err != nil {
		return nil, err
	}
	if err := insertInvoiceItemsTx(ctx, tx, invoice.InvoiceID, invoice.Items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit invoice save for %s: %w", invoice.InvoiceID, err)
	}
	return &invoice, nil
}

// FindInvoiceByID retrieves an invoice with its line items.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE invoice_id = $1;`, invoiceColumns)

	m, err := scanInvoice(r.pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}

	items, err := r.loadItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	domainInvoice := toDomainInvoice(m, items)
	return &domainInvoice, nil
}

// UpdateInvoice updates the invoice's mutable fields and replaces its line
// items. The number, type and conversion latch are left untouched.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := toModelInvoice(invoice)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for invoice update: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE invoices
		SET client_id = $2, subtotal = $3, tax = $4, total = $5, status = $6, issue_date = $7, due_date = $8, payment_date = $9, notes = $10, last_updated_at = $11, last_updated_by = $12
		WHERE invoice_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.InvoiceID,
		m.ClientID,
		m.Subtotal,
		m.Tax,
		m.Total,
		m.Status,
		m.IssueDate,
		m.DueDate,
		m.PaymentDate,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update invoice %s: %w", m.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, m.InvoiceID); err != nil {
		return fmt.Errorf("failed to clear items for invoice %s: %w", m.InvoiceID, err)
	}
	if err := insertInvoiceItemsTx(ctx, tx, m.InvoiceID, invoice.Items); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit invoice update for %s: %w", m.InvoiceID, err)
	}
	return nil
}

// UpdateInvoiceStatus sets the invoice status and payment date.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, paymentDate *time.Time, userID string, now time.Time) error {
	query := `
		UPDATE invoices
		SET status = $2, payment_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, invoiceID, string(status), paymentDate, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of invoice %s: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteInvoice removes the invoice and its items. Payments and reminders that
// reference the invoice are deliberately left in place.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for invoice delete: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, invoiceID); err != nil {
		return fmt.Errorf("failed to delete items of invoice %s: %w", invoiceID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit invoice delete for %s: %w", invoiceID, err)
	}
	return nil
}

// SaveConversion creates the final invoice and latches the source pro-forma in
// one transaction. The latch update is guarded so a concurrent conversion of
// the same pro-forma fails with ErrAlreadyConverted instead of producing two
// final invoices.
func (r *PgxInvoiceRepository) SaveConversion(ctx context.Context, final domain.Invoice, proformaID string, userID string, now time.Time) (*domain.Invoice, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for conversion: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	number, err := nextInvoiceNumber(ctx, tx, final.Type, final.IssueDate)
	if err != nil {
		return nil, err
	}
	final.Number = number

	if err := insertInvoiceTx(ctx, tx, toModelInvoice(final)); err != nil {
		return nil, err
	}
	if err := insertInvoiceItemsTx(ctx, tx, final.InvoiceID, final.Items); err != nil {
		return nil, err
	}

	latchQuery := `
		UPDATE invoices
		SET converted_to_final = TRUE, final_invoice_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1 AND converted_to_final = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, latchQuery, proformaID, final.InvoiceID, now, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to latch pro-forma %s during conversion: %w", proformaID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindInvoiceByID(ctx, proformaID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: pro-forma %s is already converted", apperrors.ErrAlreadyConverted, proformaID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit conversion of pro-forma %s: %w", proformaID, err)
	}
	return &final, nil
}

// FindInvoiceForUpdate retrieves the invoice row within the given transaction
// and locks it until the transaction ends. Items are not loaded.
func (r *PgxInvoiceRepository) FindInvoiceForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE invoice_id = $1 FOR UPDATE;`, invoiceColumns)

	m, err := scanInvoice(tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock invoice %s for update: %w", invoiceID, err)
	}

	domainInvoice := toDomainInvoice(m, nil)
	return &domainInvoice, nil
}

// UpdateInvoiceStatusInTx sets status and payment date within a transaction.
func (r *PgxInvoiceRepository) UpdateInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus, paymentDate *time.Time, userID string, now time.Time) error {
	query := `
		UPDATE invoices
		SET status = $2, payment_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, invoiceID, string(status), paymentDate, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of invoice %s in transaction: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListInvoices retrieves invoices newest-first (issue date, then creation
// time) using a keyset pagination token. Items are loaded for each returned
// invoice.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceListFilter, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE 1=1`, invoiceColumns)
	args := []interface{}{}
	argPos := 1

	if filter.ClientID != "" {
		query += fmt.Sprintf(` AND client_id = $%d`, argPos)
		args = append(args, filter.ClientID)
		argPos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(` AND type = $%d`, argPos)
		args = append(args, string(filter.Type))
		argPos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, string(filter.Status))
		argPos++
	}

	if nextToken != nil && *nextToken != "" {
		issueDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(` AND (issue_date < $%d OR (issue_date = $%d AND created_at < $%d))`, argPos, argPos, argPos+1)
		args = append(args, issueDate, createdAt)
		argPos += 2
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY issue_date DESC, created_at DESC LIMIT $%d;`, argPos)
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	modelInvoices := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		modelInvoices = append(modelInvoices, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating invoice rows: %w", rows.Err())
	}

	var newNextToken *string
	if len(modelInvoices) > limit {
		modelInvoices = modelInvoices[:limit]
		last := modelInvoices[len(modelInvoices)-1]
		token := pagination.EncodeToken(last.IssueDate, last.CreatedAt)
		newNextToken = &token
	}

	invoices := make([]domain.Invoice, 0, len(modelInvoices))
	for _, m := range modelInvoices {
		items, err := r.loadItems(ctx, m.InvoiceID)
		if err != nil {
			return nil, nil, err
		}
		invoices = append(invoices, toDomainInvoice(m, items))
	}

	return invoices, newNextToken, nil
}

// ListOverdueCandidates retrieves invoices with status sent or overdue whose
// due date has passed. Items are not loaded; reminder sweeps do not need them.
func (r *PgxInvoiceRepository) ListOverdueCandidates(ctx context.Context, now time.Time) ([]domain.Invoice, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM invoices
		WHERE status = ANY($1) AND due_date < $2
		ORDER BY due_date;
	`, invoiceColumns)

	statuses := []string{string(domain.InvoiceStatusSent), string(domain.InvoiceStatusOverdue)}
	rows, err := r.pool.Query(ctx, query, statuses, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue candidates: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overdue candidate row: %w", err)
		}
		invoices = append(invoices, toDomainInvoice(m, nil))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating overdue candidate rows: %w", rows.Err())
	}
	return invoices, nil
}
