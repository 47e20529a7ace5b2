package models

import "time"

// ReminderType mirrors domain.ReminderType for DB storage.
type ReminderType string

// ReminderStatus mirrors domain.ReminderStatus for DB storage.
type ReminderStatus string

// Reminder represents a payment reminder row.
type Reminder struct {
	ReminderID       string         `db:"reminder_id"`
	InvoiceID        string         `db:"invoice_id"`
	Type             ReminderType   `db:"type"`
	ReminderCount    int            `db:"reminder_count"`
	NextReminderDate time.Time      `db:"next_reminder_date"`
	Status           ReminderStatus `db:"status"`
	AuditFields
}
